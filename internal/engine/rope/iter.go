package rope

import "github.com/cmathes/inkwell/internal/style"

// segFrame represents a position in the tree traversal.
type segFrame struct {
	node *node
	idx  int // next child (internal) or chunk (leaf) index to visit
}

// SegmentIterator walks a rope's chunks in document order, yielding each
// as a styled segment with its char offsets. Obtain one from
// Rope.Segments.
type SegmentIterator struct {
	stack []segFrame
	text  string
	font  style.Font
	start int
	end   int
}

// Segments returns an iterator over the rope's styled segments. Adjacent
// segments can share a font; callers that need maximal spans merge them,
// as Runs does.
func (r Rope) Segments() *SegmentIterator {
	it := &SegmentIterator{stack: make([]segFrame, 0, 8)}
	if r.root != nil && r.root.sum.Bytes > 0 {
		it.stack = append(it.stack, segFrame{node: r.root})
	}
	return it
}

// Next advances to the next segment.
// Returns true if there is a segment, false if iteration is complete.
func (it *SegmentIterator) Next() bool {
	for len(it.stack) > 0 {
		frame := &it.stack[len(it.stack)-1]

		if frame.node.isLeaf() {
			if frame.idx < len(frame.node.chunks) {
				c := frame.node.chunks[frame.idx]
				frame.idx++
				it.text = c.text
				it.font = c.font
				it.start = it.end
				it.end = it.start + c.sum.Chars
				return true
			}
			// Done with this leaf, pop
			it.stack = it.stack[:len(it.stack)-1]
			continue
		}

		// Internal node, descend to next unvisited child
		if frame.idx < len(frame.node.children) {
			child := frame.node.children[frame.idx]
			frame.idx++
			it.stack = append(it.stack, segFrame{node: child})
			continue
		}
		it.stack = it.stack[:len(it.stack)-1]
	}
	return false
}

// Text returns the current segment's text.
func (it *SegmentIterator) Text() string {
	return it.text
}

// Font returns the current segment's font.
func (it *SegmentIterator) Font() style.Font {
	return it.font
}

// Start returns the char offset of the start of the current segment.
func (it *SegmentIterator) Start() int {
	return it.start
}

// End returns the char offset just past the current segment.
func (it *SegmentIterator) End() int {
	return it.end
}

// LineIterator iterates over lines in a rope.
type LineIterator struct {
	rope    Rope
	line    int
	start   int
	end     int
	text    string
	started bool
	done    bool
}

// Lines returns an iterator over all lines in the rope.
// An empty rope yields a single empty line.
func (r Rope) Lines() *LineIterator {
	return &LineIterator{rope: r}
}

// Next advances to the next line.
// Returns true if there is a line, false if iteration is complete.
func (it *LineIterator) Next() bool {
	if it.done {
		return false
	}

	if !it.started {
		it.started = true
	} else {
		it.line++
	}

	if it.line >= it.rope.LineCount() {
		it.done = true
		return false
	}

	it.start = it.rope.LineStart(it.line)
	it.end = it.rope.LineEnd(it.line)
	it.text = it.rope.Slice(it.start, it.end)
	return true
}

// Text returns the text of the current line (without newline).
func (it *LineIterator) Text() string {
	return it.text
}

// Line returns the current line number (0-indexed).
func (it *LineIterator) Line() int {
	return it.line
}

// Start returns the char offset of the start of the current line.
func (it *LineIterator) Start() int {
	return it.start
}

// End returns the char offset of the end of the current line.
func (it *LineIterator) End() int {
	return it.end
}
