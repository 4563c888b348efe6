// Package style defines the font model for styled text: the Font descriptor
// attached to every character, the StyledChar pairing used at clipboard and
// edit boundaries, and the Run and Segment groupings derived from contiguous
// equal-font spans.
package style

import (
	"fmt"
	"strings"
)

// Style bit flags as persisted in the styled file format.
// Bold and italic are independently combinable.
const (
	// BitBold marks bold text (bit 0).
	BitBold = 1 << 0

	// BitItalic marks italic text (bit 1).
	BitItalic = 1 << 1
)

// Default baseline attributes applied to characters with no explicit styling.
const (
	// DefaultFamily is the baseline font family.
	DefaultFamily = "Monospaced"

	// DefaultSize is the baseline point size.
	DefaultSize = 14
)

// Font describes the typeface of a character: family name, bold and italic
// flags, and point size. Font is an immutable value type; derivation methods
// return a new Font and never modify the receiver. Two fonts are equal iff
// all fields match, so Font values compare correctly with ==.
type Font struct {
	Family string
	Bold   bool
	Italic bool
	Size   int
}

// NewFont creates a plain font with the given family and size.
func NewFont(family string, size int) Font {
	return Font{Family: family, Size: size}
}

// Baseline returns the default descriptor: monospaced, plain, size 14.
func Baseline() Font {
	return Font{Family: DefaultFamily, Size: DefaultSize}
}

// FromBits builds a font from a family, a persisted style bitmask, and a
// point size. Bits beyond bold and italic are ignored.
func FromBits(family string, bits, size int) Font {
	return Font{
		Family: family,
		Bold:   bits&BitBold != 0,
		Italic: bits&BitItalic != 0,
		Size:   size,
	}
}

// Bits returns the persisted style bitmask for this font:
// 0 plain, 1 bold, 2 italic, 3 bold italic.
func (f Font) Bits() int {
	bits := 0
	if f.Bold {
		bits |= BitBold
	}
	if f.Italic {
		bits |= BitItalic
	}
	return bits
}

// IsZero returns true for the zero Font, which is not a valid descriptor.
func (f Font) IsZero() bool {
	return f == Font{}
}

// WithFamily returns a copy of the font with the family replaced.
func (f Font) WithFamily(family string) Font {
	f.Family = family
	return f
}

// WithSize returns a copy of the font with the point size replaced.
func (f Font) WithSize(size int) Font {
	f.Size = size
	return f
}

// WithBold returns a copy of the font with the bold flag set or cleared.
func (f Font) WithBold(bold bool) Font {
	f.Bold = bold
	return f
}

// WithItalic returns a copy of the font with the italic flag set or cleared.
func (f Font) WithItalic(italic bool) Font {
	f.Italic = italic
	return f
}

// String returns a human-readable form such as "Arial bold 16".
func (f Font) String() string {
	var sb strings.Builder
	sb.WriteString(f.Family)
	if f.Bold {
		sb.WriteString(" bold")
	}
	if f.Italic {
		sb.WriteString(" italic")
	}
	fmt.Fprintf(&sb, " %d", f.Size)
	return sb.String()
}

// StyledChar is a single character paired with its font.
// It is copied by value between the buffer and the clipboard.
type StyledChar struct {
	R    rune
	Font Font
}

// Chars pairs every rune of text with the same font. This is the shape of a
// plain typed insertion, where one descriptor governs the whole string.
func Chars(text string, f Font) []StyledChar {
	chars := make([]StyledChar, 0, len(text))
	for _, r := range text {
		chars = append(chars, StyledChar{R: r, Font: f})
	}
	return chars
}

// Text flattens styled characters back to their plain string.
func Text(chars []StyledChar) string {
	var sb strings.Builder
	for _, c := range chars {
		sb.WriteRune(c.R)
	}
	return sb.String()
}

// Segment is a run of text sharing one font, the unit used to build styled
// buffers and to carry decoded file content.
type Segment struct {
	Text string
	Font Font
}

// Segments groups consecutive styled characters with equal fonts into the
// minimal segment list whose concatenation reproduces the input.
func Segments(chars []StyledChar) []Segment {
	if len(chars) == 0 {
		return nil
	}

	var segs []Segment
	var sb strings.Builder
	current := chars[0].Font

	for _, c := range chars {
		if c.Font != current {
			segs = append(segs, Segment{Text: sb.String(), Font: current})
			sb.Reset()
			current = c.Font
		}
		sb.WriteRune(c.R)
	}
	segs = append(segs, Segment{Text: sb.String(), Font: current})

	return segs
}

// Run is a maximal contiguous span of characters sharing one font.
// Start is inclusive, End exclusive, both in character offsets.
type Run struct {
	Start int
	End   int
	Font  Font
}

// Len returns the number of characters covered by the run.
func (r Run) Len() int {
	return r.End - r.Start
}

// String returns a human-readable form such as "[0,5) Arial bold 16".
func (r Run) String() string {
	return fmt.Sprintf("[%d,%d) %s", r.Start, r.End, r.Font)
}
