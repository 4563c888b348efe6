// Package search implements plain-text search over document content.
//
// Matching is case-sensitive and exact, and ignores styling entirely.
// All offsets are char (rune) offsets, matching the coordinate system
// of the rest of the engine. A search scans forward from a starting
// position and wraps to the top of the text when the tail holds no
// occurrence.
package search

import (
	"strings"
	"unicode/utf8"
)

// Match describes one occurrence of a needle in a text.
type Match struct {
	// Start is the char offset of the first matched character.
	Start int

	// End is the char offset just past the match.
	End int

	// Wrapped is true when the scan passed the end of the text and
	// resumed from the top to find this occurrence.
	Wrapped bool
}

// Len returns the length of the match in chars.
func (m Match) Len() int {
	return m.End - m.Start
}

// Find returns the first occurrence of needle strictly after the char
// offset from. When the tail of the text holds no occurrence the scan
// wraps to the top, and a match found there is flagged Wrapped. Pass
// from = -1 to scan from the very beginning.
//
// An empty needle never matches.
func Find(text, needle string, from int) (Match, bool) {
	if needle == "" || text == "" {
		return Match{}, false
	}

	needleChars := utf8.RuneCountInString(needle)
	textChars := utf8.RuneCountInString(text)

	start := from + 1
	if start < 0 {
		start = 0
	}

	if start <= textChars {
		base := byteOffset(text, start)
		if idx := strings.Index(text[base:], needle); idx >= 0 {
			at := utf8.RuneCountInString(text[:base+idx])
			return Match{Start: at, End: at + needleChars}, true
		}
	}

	if idx := strings.Index(text, needle); idx >= 0 {
		at := utf8.RuneCountInString(text[:idx])
		return Match{Start: at, End: at + needleChars, Wrapped: true}, true
	}

	return Match{}, false
}

// FindAll returns every occurrence of needle in text in ascending
// order. Occurrences do not overlap; scanning resumes just past each
// match. Returns nil when there are none.
func FindAll(text, needle string) []Match {
	if needle == "" || text == "" {
		return nil
	}

	needleChars := utf8.RuneCountInString(needle)

	var matches []Match
	base := 0
	chars := 0
	for {
		idx := strings.Index(text[base:], needle)
		if idx < 0 {
			return matches
		}

		chars += utf8.RuneCountInString(text[base : base+idx])
		matches = append(matches, Match{Start: chars, End: chars + needleChars})

		chars += needleChars
		base += idx + len(needle)
	}
}

// Count returns the number of non-overlapping occurrences of needle.
func Count(text, needle string) int {
	if needle == "" {
		return 0
	}
	return strings.Count(text, needle)
}

// byteOffset returns the byte index of the given char offset in s.
// Offsets past the end map to len(s).
func byteOffset(s string, char int) int {
	if char <= 0 {
		return 0
	}

	count := 0
	for i := range s {
		if count == char {
			return i
		}
		count++
	}
	return len(s)
}

// Session tracks successive searches through changing text, cycling
// through occurrences with wraparound. A fresh session anchors before
// the start of the text so the first Next finds the first occurrence.
//
// The text is passed on every call rather than captured, so a session
// stays valid while the underlying document is edited.
type Session struct {
	needle string
	anchor int
}

// NewSession creates a search session for the given needle.
func NewSession(needle string) *Session {
	return &Session{needle: needle, anchor: -1}
}

// Needle returns the current search term.
func (s *Session) Needle() string {
	return s.needle
}

// SetNeedle changes the search term. The anchor is kept, so the next
// search continues from the last match position.
func (s *Session) SetNeedle(needle string) {
	s.needle = needle
}

// Next returns the next occurrence after the previous match, wrapping
// at the end of the text. A successful match moves the anchor; a failed
// one leaves it in place.
func (s *Session) Next(text string) (Match, bool) {
	m, ok := Find(text, s.needle, s.anchor)
	if !ok {
		return Match{}, false
	}

	s.anchor = m.Start
	return m, true
}

// MoveTo re-anchors the session at the given char offset. The next
// search starts strictly after it.
func (s *Session) MoveTo(offset int) {
	s.anchor = offset
}

// Reset re-anchors the session before the start of the text.
func (s *Session) Reset() {
	s.anchor = -1
}
