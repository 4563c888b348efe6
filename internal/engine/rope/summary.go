package rope

import (
	"strings"
	"unicode/utf8"
)

// Summary aggregates the measurable dimensions of a span of text. Every
// chunk and node caches one, so offset and line lookups descend the tree
// without touching text. Summaries combine associatively with Add.
type Summary struct {
	// Bytes is the UTF-8 encoded length.
	Bytes int

	// Chars is the number of runes. All public rope offsets count chars.
	Chars int

	// Newlines is the number of '\n' bytes.
	Newlines int
}

// Add accumulates another summary into s.
func (s *Summary) Add(other Summary) {
	s.Bytes += other.Bytes
	s.Chars += other.Chars
	s.Newlines += other.Newlines
}

// summarize measures a string.
func summarize(text string) Summary {
	return Summary{
		Bytes:    len(text),
		Chars:    utf8.RuneCountInString(text),
		Newlines: strings.Count(text, "\n"),
	}
}
