package rope

import (
	"strings"

	"github.com/cmathes/inkwell/internal/style"
)

// Rope is an immutable rope of styled text. Every character carries a
// font; chunks group equal-font neighbors so styling costs nothing per
// character. Operations return new Rope values and never modify the
// original, which makes snapshots cheap and concurrent reads safe.
//
// All offsets are char (rune) offsets, not byte offsets. Offsets passed
// to rope operations are clamped to the valid range.
type Rope struct {
	root *node
}

// New creates an empty rope.
func New() Rope {
	return Rope{root: newLeaf(nil)}
}

// FromText creates a rope whose every character carries the same font.
func FromText(text string, f style.Font) Rope {
	return FromSegments([]style.Segment{{Text: text, Font: f}})
}

// FromSegments creates a rope from ordered styled segments.
func FromSegments(segs []style.Segment) Rope {
	b := NewBuilder()
	for _, seg := range segs {
		b.Append(seg.Text, seg.Font)
	}
	return b.Build()
}

// FromChars creates a rope from styled characters, grouping equal-font
// neighbors into shared chunks.
func FromChars(chars []style.StyledChar) Rope {
	return FromSegments(style.Segments(chars))
}

// Len returns the total length in chars.
func (r Rope) Len() int {
	if r.root == nil {
		return 0
	}
	return r.root.sum.Chars
}

// Bytes returns the UTF-8 encoded length of the text.
func (r Rope) Bytes() int {
	if r.root == nil {
		return 0
	}
	return r.root.sum.Bytes
}

// LineCount returns the number of lines (newlines + 1).
func (r Rope) LineCount() int {
	if r.root == nil {
		return 1
	}
	return r.root.sum.Newlines + 1
}

// IsEmpty returns true if the rope contains no text.
func (r Rope) IsEmpty() bool {
	return r.Len() == 0
}

// Summary returns the aggregated metrics for the entire rope.
func (r Rope) Summary() Summary {
	if r.root == nil {
		return Summary{}
	}
	return r.root.sum
}

// String returns the full text as a string.
// Use sparingly for large ropes.
func (r Rope) String() string {
	if r.root == nil {
		return ""
	}

	var sb strings.Builder
	sb.Grow(r.root.sum.Bytes)
	it := r.Segments()
	for it.Next() {
		sb.WriteString(it.Text())
	}
	return sb.String()
}

// Slice returns the plain text in the char range [start, end).
func (r Rope) Slice(start, end int) string {
	start, end = r.clampRange(start, end)
	if r.root == nil || start >= end {
		return ""
	}
	return r.root.textInRange(start, end)
}

// StyledSlice returns the characters in [start, end) paired with their
// fonts, in document order.
func (r Rope) StyledSlice(start, end int) []style.StyledChar {
	start, end = r.clampRange(start, end)
	if r.root == nil || start >= end {
		return nil
	}

	chars := make([]style.StyledChar, 0, end-start)
	r.root.walkRange(start, end, func(text string, f style.Font) {
		for _, ch := range text {
			chars = append(chars, style.StyledChar{R: ch, Font: f})
		}
	})
	return chars
}

// StyledAt returns the character and font at the given offset.
// Returns false if the offset is out of range.
func (r Rope) StyledAt(offset int) (style.StyledChar, bool) {
	if r.root == nil || offset < 0 || offset >= r.root.sum.Chars {
		return style.StyledChar{}, false
	}
	ch, f := r.root.styledAt(offset)
	return style.StyledChar{R: ch, Font: f}, true
}

// CharAt returns the character at the given offset.
// Returns false if the offset is out of range.
func (r Rope) CharAt(offset int) (rune, bool) {
	sc, ok := r.StyledAt(offset)
	return sc.R, ok
}

// FontAt returns the font of the character at the given offset.
// Returns false if the offset is out of range.
func (r Rope) FontAt(offset int) (style.Font, bool) {
	sc, ok := r.StyledAt(offset)
	return sc.Font, ok
}

// Runs returns the maximal contiguous spans of equal fonts covering the
// whole rope in ascending order. An empty rope yields nil.
func (r Rope) Runs() []style.Run {
	var runs []style.Run
	it := r.Segments()
	for it.Next() {
		if n := len(runs); n > 0 && runs[n-1].Font == it.Font() {
			runs[n-1].End = it.End()
			continue
		}
		runs = append(runs, style.Run{Start: it.Start(), End: it.End(), Font: it.Font()})
	}
	return runs
}

// Insert inserts text at the given char offset, every character taking
// the given font. Returns a new rope; the original is unchanged.
func (r Rope) Insert(offset int, text string, f style.Font) Rope {
	return r.InsertSegments(offset, []style.Segment{{Text: text, Font: f}})
}

// InsertSegments inserts styled segments at the given char offset.
// Returns a new rope; the original is unchanged.
func (r Rope) InsertSegments(offset int, segs []style.Segment) Rope {
	mid := FromSegments(segs)
	if mid.IsEmpty() {
		return r
	}
	if r.root == nil || r.Len() == 0 {
		return mid
	}

	offset = r.clampOffset(offset)
	if offset == 0 {
		return mid.Concat(r)
	}
	if offset == r.Len() {
		return r.Concat(mid)
	}

	left, right := r.Split(offset)
	return left.Concat(mid).Concat(right)
}

// Delete removes the char range [start, end).
// Returns a new rope; the original is unchanged.
func (r Rope) Delete(start, end int) Rope {
	start, end = r.clampRange(start, end)
	if r.root == nil || start >= end {
		return r
	}

	if start == 0 && end >= r.Len() {
		return New()
	}
	if start == 0 {
		_, right := r.Split(end)
		return right
	}
	if end >= r.Len() {
		left, _ := r.Split(start)
		return left
	}

	// Split around the deleted region
	left, rest := r.Split(start)
	_, right := rest.Split(end - start)
	return left.Concat(right)
}

// Replace substitutes the char range [start, end) with text in one font.
// Returns a new rope; the original is unchanged.
func (r Rope) Replace(start, end int, text string, f style.Font) Rope {
	start, end = r.clampRange(start, end)
	if start >= end {
		return r.Insert(start, text, f)
	}
	if text == "" {
		return r.Delete(start, end)
	}
	return r.Delete(start, end).Insert(start, text, f)
}

// MapFonts rewrites the font of every character in [start, end) through
// fn, leaving text unchanged. Returns a new rope; the original is
// unchanged.
func (r Rope) MapFonts(start, end int, fn func(style.Font) style.Font) Rope {
	start, end = r.clampRange(start, end)
	if r.root == nil || start >= end || fn == nil {
		return r
	}

	left, rest := r.Split(start)
	mid, right := rest.Split(end - start)

	segs := make([]style.Segment, 0, 4)
	it := mid.Segments()
	for it.Next() {
		segs = append(segs, style.Segment{Text: it.Text(), Font: fn(it.Font())})
	}

	return left.Concat(FromSegments(segs)).Concat(right)
}

// SetFont applies one font to every character in [start, end).
// Returns a new rope; the original is unchanged.
func (r Rope) SetFont(start, end int, f style.Font) Rope {
	return r.MapFonts(start, end, func(style.Font) style.Font { return f })
}

// Split splits the rope at a char offset. Left contains [0, offset),
// right contains [offset, end).
func (r Rope) Split(offset int) (Rope, Rope) {
	if r.root == nil || offset <= 0 {
		return New(), r
	}
	if offset >= r.Len() {
		return r, New()
	}

	leftRoot, rightRoot := r.root.split(offset)
	return Rope{root: leftRoot}, Rope{root: rightRoot}
}

// Concat concatenates two ropes.
// Returns a new rope; originals are unchanged.
func (r Rope) Concat(other Rope) Rope {
	if r.root == nil || r.Len() == 0 {
		return other
	}
	if other.root == nil || other.Len() == 0 {
		return r
	}
	return Rope{root: concat(r.root, other.root)}
}

// LineStart returns the char offset where the given line begins.
// Lines are 0-indexed.
func (r Rope) LineStart(line int) int {
	if r.root == nil || line <= 0 {
		return 0
	}
	if line >= r.LineCount() {
		return r.Len()
	}
	return r.root.charOfNewline(line-1) + 1
}

// LineEnd returns the char offset where the given line ends, not
// counting its newline.
func (r Rope) LineEnd(line int) int {
	if r.root == nil {
		return 0
	}
	if line >= r.LineCount()-1 {
		return r.Len()
	}
	if line < 0 {
		line = 0
	}
	return r.root.charOfNewline(line)
}

// Line returns the text of the given line without its newline.
func (r Rope) Line(line int) string {
	return r.Slice(r.LineStart(line), r.LineEnd(line))
}

// LineAt returns the 0-indexed line containing the given char offset.
func (r Rope) LineAt(offset int) int {
	if r.root == nil {
		return 0
	}
	return r.root.newlinesBefore(r.clampOffset(offset))
}

// Point is a line and column position. Both are 0-indexed and counted
// in chars; the column never includes the line's newline.
type Point struct {
	Line   int
	Column int
}

// OffsetToPoint converts a char offset to a line/column position.
func (r Rope) OffsetToPoint(offset int) Point {
	offset = r.clampOffset(offset)
	line := r.LineAt(offset)
	return Point{Line: line, Column: offset - r.LineStart(line)}
}

// PointToOffset converts a line/column position to a char offset.
// Columns past the end of the line map to the line end.
func (r Rope) PointToOffset(p Point) int {
	if p.Line < 0 {
		return 0
	}
	if p.Line >= r.LineCount() {
		return r.Len()
	}

	start, end := r.LineStart(p.Line), r.LineEnd(p.Line)
	if p.Column <= 0 {
		return start
	}
	if start+p.Column >= end {
		return end
	}
	return start + p.Column
}

// Height returns the height of the rope tree.
// Useful for debugging and testing balance.
func (r Rope) Height() int {
	if r.root == nil {
		return 0
	}
	return r.root.height + 1
}

// ChunkCount returns the total number of chunks in the rope.
// Useful for debugging.
func (r Rope) ChunkCount() int {
	if r.root == nil {
		return 0
	}
	return countChunks(r.root)
}

func countChunks(n *node) int {
	if n.isLeaf() {
		return len(n.chunks)
	}
	count := 0
	for _, child := range n.children {
		count += countChunks(child)
	}
	return count
}

func (r Rope) clampOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	if n := r.Len(); offset > n {
		return n
	}
	return offset
}

func (r Rope) clampRange(start, end int) (int, int) {
	start = r.clampOffset(start)
	end = r.clampOffset(end)
	if end < start {
		end = start
	}
	return start, end
}
