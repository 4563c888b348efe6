package buffer

import (
	"github.com/cmathes/inkwell/internal/engine/rope"
	"github.com/cmathes/inkwell/internal/style"
)

// Snapshot provides a read-only view of a buffer at a specific point in
// time. It is safe for concurrent access and will not change even if the
// original buffer is modified.
type Snapshot struct {
	rope     rope.Rope
	revision RevisionID
	tabWidth int
}

// Text returns the full snapshot content as a string.
func (s *Snapshot) Text() string {
	return s.rope.String()
}

// TextRange returns the plain text in the given char range.
// Offsets are clamped to the snapshot bounds.
func (s *Snapshot) TextRange(start, end CharOffset) string {
	return s.rope.Slice(start, end)
}

// StyledRange returns the characters in [start, end) paired with their
// fonts. Offsets are clamped to the snapshot bounds.
func (s *Snapshot) StyledRange(start, end CharOffset) []style.StyledChar {
	return s.rope.StyledSlice(start, end)
}

// Len returns the total length of the snapshot in chars.
func (s *Snapshot) Len() CharOffset {
	return s.rope.Len()
}

// IsEmpty returns true if the snapshot is empty.
func (s *Snapshot) IsEmpty() bool {
	return s.rope.IsEmpty()
}

// LineCount returns the number of lines.
func (s *Snapshot) LineCount() int {
	return s.rope.LineCount()
}

// Line returns the text of a specific line without its newline.
// Out-of-range lines yield the empty string.
func (s *Snapshot) Line(line int) string {
	if line < 0 || line >= s.rope.LineCount() {
		return ""
	}
	return s.rope.Line(line)
}

// LineStart returns the char offset of the start of a line.
func (s *Snapshot) LineStart(line int) CharOffset {
	return s.rope.LineStart(line)
}

// LineEnd returns the char offset of the end of a line (before the
// newline).
func (s *Snapshot) LineEnd(line int) CharOffset {
	return s.rope.LineEnd(line)
}

// CharAt returns the character at the given offset.
func (s *Snapshot) CharAt(offset CharOffset) (rune, bool) {
	return s.rope.CharAt(offset)
}

// FontAt returns the font of the character at the given offset.
func (s *Snapshot) FontAt(offset CharOffset) (style.Font, bool) {
	return s.rope.FontAt(offset)
}

// Runs returns the maximal contiguous equal-font spans covering the
// snapshot in ascending order.
func (s *Snapshot) Runs() []style.Run {
	return s.rope.Runs()
}

// OffsetToPoint converts a char offset to line/column.
func (s *Snapshot) OffsetToPoint(offset CharOffset) Point {
	return s.rope.OffsetToPoint(offset)
}

// PointToOffset converts line/column to a char offset.
func (s *Snapshot) PointToOffset(point Point) CharOffset {
	return s.rope.PointToOffset(point)
}

// Revision returns the revision ID of this snapshot.
func (s *Snapshot) Revision() RevisionID {
	return s.revision
}

// TabWidth returns the snapshot's tab width.
func (s *Snapshot) TabWidth() int {
	return s.tabWidth
}

// Segments returns an iterator over the styled segments in the snapshot.
func (s *Snapshot) Segments() *rope.SegmentIterator {
	return s.rope.Segments()
}

// Lines returns an iterator over all lines in the snapshot.
func (s *Snapshot) Lines() *rope.LineIterator {
	return s.rope.Lines()
}
