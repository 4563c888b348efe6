package buffer

import (
	"errors"
	"unicode"
	"unicode/utf8"

	"github.com/cmathes/inkwell/internal/engine/rope"
	"github.com/cmathes/inkwell/internal/style"
)

// Errors returned by buffer operations.
var (
	// ErrOutOfRange reports an offset or index outside the buffer bounds.
	ErrOutOfRange = errors.New("offset out of range")

	// ErrInvalidRange reports a range whose end precedes its start.
	ErrInvalidRange = errors.New("invalid range")
)

// Buffer wraps a styled rope with validated editing operations and
// revision tracking. It is the primary interface for text manipulation.
//
// A Buffer belongs to a single writer and its methods are not
// synchronized. Callers that share buffer content across goroutines hand
// out Snapshots, which are immutable and safe for concurrent reads.
type Buffer struct {
	rope     rope.Rope
	revision RevisionID
	tabWidth int
}

// New creates a new empty buffer.
func New(opts ...Option) *Buffer {
	b := &Buffer{
		rope:     rope.New(),
		revision: NewRevisionID(),
		tabWidth: 4,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// NewFromText creates a buffer whose initial content all carries one font.
func NewFromText(text string, f style.Font, opts ...Option) *Buffer {
	b := New(opts...)
	b.rope = rope.FromText(text, f)
	return b
}

// NewFromSegments creates a buffer with styled initial content.
func NewFromSegments(segs []style.Segment, opts ...Option) *Buffer {
	b := New(opts...)
	b.rope = rope.FromSegments(segs)
	return b
}

// Read Operations

// Text returns the full buffer content as a string.
// For large buffers, prefer TextRange or the line iterator.
func (b *Buffer) Text() string {
	return b.rope.String()
}

// TextRange returns the plain text in the given char range.
// Offsets are clamped to the buffer bounds.
func (b *Buffer) TextRange(start, end CharOffset) string {
	return b.rope.Slice(start, end)
}

// StyledRange returns the characters in [start, end) paired with their
// fonts. Offsets are clamped to the buffer bounds.
func (b *Buffer) StyledRange(start, end CharOffset) []style.StyledChar {
	return b.rope.StyledSlice(start, end)
}

// Len returns the total length of the buffer in chars.
func (b *Buffer) Len() CharOffset {
	return b.rope.Len()
}

// IsEmpty returns true if the buffer is empty.
func (b *Buffer) IsEmpty() bool {
	return b.rope.IsEmpty()
}

// LineCount returns the number of lines (newlines + 1).
func (b *Buffer) LineCount() int {
	return b.rope.LineCount()
}

// Line returns the text of a specific line without its newline.
func (b *Buffer) Line(line int) (string, error) {
	if line < 0 || line >= b.rope.LineCount() {
		return "", ErrOutOfRange
	}
	return b.rope.Line(line), nil
}

// LineLen returns the length of a specific line in chars, without its
// newline.
func (b *Buffer) LineLen(line int) (int, error) {
	if line < 0 || line >= b.rope.LineCount() {
		return 0, ErrOutOfRange
	}
	return b.rope.LineEnd(line) - b.rope.LineStart(line), nil
}

// LineStart returns the char offset of the start of a line.
func (b *Buffer) LineStart(line int) CharOffset {
	return b.rope.LineStart(line)
}

// LineEnd returns the char offset of the end of a line (before the
// newline).
func (b *Buffer) LineEnd(line int) CharOffset {
	return b.rope.LineEnd(line)
}

// LineAt returns the 0-indexed line containing the given char offset.
func (b *Buffer) LineAt(offset CharOffset) int {
	return b.rope.LineAt(offset)
}

// Lines returns an iterator over all lines in the buffer. The iterator
// reads the buffer state at the time of the call.
func (b *Buffer) Lines() *rope.LineIterator {
	return b.rope.Lines()
}

// CharAt returns the character at the given offset.
func (b *Buffer) CharAt(offset CharOffset) (rune, error) {
	r, ok := b.rope.CharAt(offset)
	if !ok {
		return 0, ErrOutOfRange
	}
	return r, nil
}

// StyledAt returns the character and its font at the given offset.
func (b *Buffer) StyledAt(offset CharOffset) (style.StyledChar, error) {
	sc, ok := b.rope.StyledAt(offset)
	if !ok {
		return style.StyledChar{}, ErrOutOfRange
	}
	return sc, nil
}

// FontAt returns the font of the character at the given offset.
func (b *Buffer) FontAt(offset CharOffset) (style.Font, error) {
	f, ok := b.rope.FontAt(offset)
	if !ok {
		return style.Font{}, ErrOutOfRange
	}
	return f, nil
}

// Runs returns the maximal contiguous equal-font spans covering the
// buffer in ascending order.
func (b *Buffer) Runs() []style.Run {
	return b.rope.Runs()
}

// Coordinate Conversion

// OffsetToPoint converts a char offset to line/column.
func (b *Buffer) OffsetToPoint(offset CharOffset) Point {
	return b.rope.OffsetToPoint(offset)
}

// PointToOffset converts line/column to a char offset.
func (b *Buffer) PointToOffset(point Point) CharOffset {
	return b.rope.PointToOffset(point)
}

// WordRange returns the span of the word containing the character at
// the given offset. Words are runs of letters, digits, and underscores.
// When the character at the offset is not part of a word, or the offset
// sits at the end of the buffer, the result is empty at that offset.
func (b *Buffer) WordRange(offset CharOffset) (Range, error) {
	if offset < 0 || offset > b.rope.Len() {
		return Range{}, ErrOutOfRange
	}

	r, ok := b.rope.CharAt(offset)
	if !ok || !isWordChar(r) {
		return Range{Start: offset, End: offset}, nil
	}

	start := offset
	for start > 0 {
		prev, ok := b.rope.CharAt(start - 1)
		if !ok || !isWordChar(prev) {
			break
		}
		start--
	}

	end := offset + 1
	for end < b.rope.Len() {
		next, ok := b.rope.CharAt(end)
		if !ok || !isWordChar(next) {
			break
		}
		end++
	}

	return Range{Start: start, End: end}, nil
}

// isWordChar reports whether r belongs to a word for word selection.
func isWordChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Write Operations

// Insert inserts text at the given offset, every character taking the
// given font. Returns the char offset just past the inserted text.
func (b *Buffer) Insert(offset CharOffset, text string, f style.Font) (CharOffset, error) {
	if offset < 0 || offset > b.rope.Len() {
		return 0, ErrOutOfRange
	}
	if text == "" {
		return offset, nil
	}

	before := b.rope.Len()
	b.rope = b.rope.Insert(offset, text, f)
	b.revision = NewRevisionID()

	return offset + (b.rope.Len() - before), nil
}

// InsertChars inserts styled characters at the given offset, each
// keeping its own font. Returns the char offset just past the inserted
// text.
func (b *Buffer) InsertChars(offset CharOffset, chars []style.StyledChar) (CharOffset, error) {
	return b.InsertSegments(offset, style.Segments(chars))
}

// InsertSegments inserts styled segments at the given offset.
// Returns the char offset just past the inserted text.
func (b *Buffer) InsertSegments(offset CharOffset, segs []style.Segment) (CharOffset, error) {
	if offset < 0 || offset > b.rope.Len() {
		return 0, ErrOutOfRange
	}
	if len(segs) == 0 {
		return offset, nil
	}

	before := b.rope.Len()
	b.rope = b.rope.InsertSegments(offset, segs)
	if b.rope.Len() != before {
		b.revision = NewRevisionID()
	}

	return offset + (b.rope.Len() - before), nil
}

// Delete removes the char range [start, end).
func (b *Buffer) Delete(start, end CharOffset) error {
	if err := b.validateRange(start, end); err != nil {
		return err
	}
	if start == end {
		return nil
	}

	b.rope = b.rope.Delete(start, end)
	b.revision = NewRevisionID()
	return nil
}

// Replace substitutes the char range [start, end) with text in one
// font. Returns the char offset just past the replacement text.
func (b *Buffer) Replace(start, end CharOffset, text string, f style.Font) (CharOffset, error) {
	if err := b.validateRange(start, end); err != nil {
		return 0, err
	}

	b.rope = b.rope.Replace(start, end, text, f)
	b.revision = NewRevisionID()

	return start + utf8.RuneCountInString(text), nil
}

// SetFont applies one font to every character in [start, end).
// Text is unchanged.
func (b *Buffer) SetFont(start, end CharOffset, f style.Font) error {
	return b.MapFonts(start, end, func(style.Font) style.Font { return f })
}

// MapFonts rewrites the font of every character in [start, end) through
// fn. Text is unchanged.
func (b *Buffer) MapFonts(start, end CharOffset, fn func(style.Font) style.Font) error {
	if err := b.validateRange(start, end); err != nil {
		return err
	}
	if start == end || fn == nil {
		return nil
	}

	b.rope = b.rope.MapFonts(start, end, fn)
	b.revision = NewRevisionID()
	return nil
}

// Buffer State

// Revision returns the current revision ID.
func (b *Buffer) Revision() RevisionID {
	return b.revision
}

// TabWidth returns the buffer's tab width.
func (b *Buffer) TabWidth() int {
	return b.tabWidth
}

// SetTabWidth sets the buffer's tab width.
func (b *Buffer) SetTabWidth(width int) {
	if width > 0 {
		b.tabWidth = width
	}
}

// Snapshot returns a read-only snapshot of the current buffer state.
// Safe for concurrent access from other goroutines.
func (b *Buffer) Snapshot() *Snapshot {
	return &Snapshot{
		rope:     b.rope, // Ropes are immutable, safe to share
		revision: b.revision,
		tabWidth: b.tabWidth,
	}
}

func (b *Buffer) validateRange(start, end CharOffset) error {
	if end < start {
		return ErrInvalidRange
	}
	if start < 0 || end > b.rope.Len() {
		return ErrOutOfRange
	}
	return nil
}
