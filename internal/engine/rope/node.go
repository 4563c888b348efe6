package rope

import (
	"strings"
	"unicode/utf8"

	"github.com/cmathes/inkwell/internal/style"
)

// Tree structure constants
const (
	// MaxChildren is the maximum children per internal node before splitting.
	MaxChildren = 8

	// MaxChunksPerLeaf is the maximum chunks in a leaf node.
	MaxChunksPerLeaf = 4
)

// node is a vertex of the rope B+ tree. Leaf nodes (height == 0) carry
// styled chunks; internal nodes (height > 0) carry child references.
// Nodes are shared freely between rope versions and never mutated after
// construction.
type node struct {
	height int
	sum    Summary

	// Internal node fields (height > 0)
	children []*node

	// Leaf node fields (height == 0)
	chunks []chunk
}

// newLeaf creates a leaf node holding the given chunks. An empty chunk
// slice yields the canonical empty node.
func newLeaf(chunks []chunk) *node {
	n := &node{chunks: chunks}
	for _, c := range chunks {
		n.sum.Add(c.sum)
	}
	return n
}

// newInternal creates an internal node over the given children.
func newInternal(children []*node) *node {
	if len(children) == 0 {
		return newLeaf(nil)
	}
	n := &node{
		height:   children[0].height + 1,
		children: children,
	}
	for _, child := range children {
		n.sum.Add(child.sum)
	}
	return n
}

// isLeaf returns true if this is a leaf node.
func (n *node) isLeaf() bool {
	return n.height == 0
}

// split divides the subtree at a char offset. Left holds [0, char),
// right holds [char, end).
func (n *node) split(char int) (*node, *node) {
	if char <= 0 {
		return newLeaf(nil), n
	}
	if char >= n.sum.Chars {
		return n, newLeaf(nil)
	}
	if n.isLeaf() {
		return n.splitLeaf(char)
	}
	return n.splitInternal(char)
}

// splitLeaf splits a leaf node at the given char offset.
func (n *node) splitLeaf(char int) (*node, *node) {
	var leftChunks, rightChunks []chunk
	off := 0

	for _, c := range n.chunks {
		switch {
		case off+c.sum.Chars <= char:
			// Entire chunk goes to left
			leftChunks = append(leftChunks, c)
		case off >= char:
			// Entire chunk goes to right
			rightChunks = append(rightChunks, c)
		default:
			l, r := c.split(char - off)
			if l.sum.Bytes > 0 {
				leftChunks = append(leftChunks, l)
			}
			if r.sum.Bytes > 0 {
				rightChunks = append(rightChunks, r)
			}
		}
		off += c.sum.Chars
	}

	return newLeaf(leftChunks), newLeaf(rightChunks)
}

// splitInternal splits an internal node at the given char offset.
func (n *node) splitInternal(char int) (*node, *node) {
	var leftChildren, rightChildren []*node
	off := 0

	for _, child := range n.children {
		switch {
		case off+child.sum.Chars <= char:
			leftChildren = append(leftChildren, child)
		case off >= char:
			rightChildren = append(rightChildren, child)
		default:
			l, r := child.split(char - off)
			if l.sum.Bytes > 0 {
				leftChildren = append(leftChildren, l)
			}
			if r.sum.Bytes > 0 {
				rightChildren = append(rightChildren, r)
			}
		}
		off += child.sum.Chars
	}

	return buildNodeFromChildren(leftChildren), buildNodeFromChildren(rightChildren)
}

// buildNodeFromChildren creates a tree from a list of child nodes.
func buildNodeFromChildren(children []*node) *node {
	if len(children) == 0 {
		return newLeaf(nil)
	}
	if len(children) == 1 {
		return children[0]
	}
	if len(children) <= MaxChildren {
		return newInternal(children)
	}

	// Need to split into multiple levels
	var parents []*node
	for i := 0; i < len(children); i += MaxChildren {
		end := i + MaxChildren
		if end > len(children) {
			end = len(children)
		}
		parents = append(parents, newInternal(children[i:end:end]))
	}
	return buildNodeFromChildren(parents)
}

// buildTree creates a tree from an ordered list of chunks.
func buildTree(chunks []chunk) *node {
	if len(chunks) == 0 {
		return newLeaf(nil)
	}

	var leaves []*node
	for i := 0; i < len(chunks); i += MaxChunksPerLeaf {
		end := i + MaxChunksPerLeaf
		if end > len(chunks) {
			end = len(chunks)
		}
		leaves = append(leaves, newLeaf(chunks[i:end:end]))
	}
	return buildNodeFromChildren(leaves)
}

// concat concatenates two subtrees.
func concat(left, right *node) *node {
	if left == nil || left.sum.Bytes == 0 {
		if right == nil {
			return newLeaf(nil)
		}
		return right
	}
	if right == nil || right.sum.Bytes == 0 {
		return left
	}

	// If both are leaves, try to merge
	if left.isLeaf() && right.isLeaf() {
		return concatLeaves(left, right)
	}

	// Bring to same height by wrapping the shorter one
	for left.height < right.height {
		left = newInternal([]*node{left})
	}
	for right.height < left.height {
		right = newInternal([]*node{right})
	}

	return mergeNodes(left, right)
}

// concatLeaves concatenates two leaf nodes, coalescing chunks across the
// seam so equal-font neighbors merge back together.
func concatLeaves(left, right *node) *node {
	chunks := make([]chunk, 0, len(left.chunks)+len(right.chunks))
	chunks = append(chunks, left.chunks...)
	chunks = append(chunks, right.chunks...)
	chunks = coalesce(chunks)

	if len(chunks) <= MaxChunksPerLeaf {
		return newLeaf(chunks)
	}

	mid := (len(chunks) + 1) / 2
	return newInternal([]*node{newLeaf(chunks[:mid:mid]), newLeaf(chunks[mid:])})
}

// mergeNodes merges two nodes of the same height.
func mergeNodes(left, right *node) *node {
	if left.isLeaf() {
		return concatLeaves(left, right)
	}

	children := make([]*node, 0, len(left.children)+len(right.children))
	children = append(children, left.children...)
	children = append(children, right.children...)

	if len(children) <= MaxChildren {
		return newInternal(children)
	}
	return buildNodeFromChildren(children)
}

// styledAt returns the rune and font at a char offset.
// The caller guarantees 0 <= char < n.sum.Chars.
func (n *node) styledAt(char int) (rune, style.Font) {
	if n.isLeaf() {
		off := 0
		for _, c := range n.chunks {
			if char < off+c.sum.Chars {
				i := c.charIndex(char - off)
				r, _ := utf8.DecodeRuneInString(c.text[i:])
				return r, c.font
			}
			off += c.sum.Chars
		}
		return 0, style.Font{}
	}

	off := 0
	for _, child := range n.children {
		if char < off+child.sum.Chars {
			return child.styledAt(char - off)
		}
		off += child.sum.Chars
	}
	return 0, style.Font{}
}

// walkRange visits each chunk substring overlapping [start, end) in
// document order, handing the visitor the text slice and its font.
func (n *node) walkRange(start, end int, visit func(text string, f style.Font)) {
	if start >= end {
		return
	}

	if n.isLeaf() {
		off := 0
		for _, c := range n.chunks {
			chunkEnd := off + c.sum.Chars
			if chunkEnd <= start {
				off = chunkEnd
				continue
			}
			if off >= end {
				break
			}

			// Overlap bounds in chars within the chunk
			from := 0
			if start > off {
				from = start - off
			}
			to := c.sum.Chars
			if end < chunkEnd {
				to = end - off
			}

			visit(c.text[c.charIndex(from):c.charIndex(to)], c.font)
			off = chunkEnd
		}
		return
	}

	off := 0
	for _, child := range n.children {
		childEnd := off + child.sum.Chars
		if childEnd <= start {
			off = childEnd
			continue
		}
		if off >= end {
			break
		}

		childStart := 0
		if start > off {
			childStart = start - off
		}
		childEndAdj := child.sum.Chars
		if end < childEnd {
			childEndAdj = end - off
		}

		child.walkRange(childStart, childEndAdj, visit)
		off = childEnd
	}
}

// textInRange extracts plain text in the char range [start, end).
func (n *node) textInRange(start, end int) string {
	if start >= end {
		return ""
	}

	var sb strings.Builder
	n.walkRange(start, end, func(text string, _ style.Font) {
		sb.WriteString(text)
	})
	return sb.String()
}

// newlinesBefore counts '\n' characters strictly before the char offset.
func (n *node) newlinesBefore(char int) int {
	if char <= 0 {
		return 0
	}
	if char >= n.sum.Chars {
		return n.sum.Newlines
	}

	if n.isLeaf() {
		count, off := 0, 0
		for _, c := range n.chunks {
			if char <= off {
				break
			}
			if char >= off+c.sum.Chars {
				count += c.sum.Newlines
			} else {
				count += strings.Count(c.text[:c.charIndex(char-off)], "\n")
			}
			off += c.sum.Chars
		}
		return count
	}

	count, off := 0, 0
	for _, child := range n.children {
		if char <= off {
			break
		}
		if char >= off+child.sum.Chars {
			count += child.sum.Newlines
		} else {
			count += child.newlinesBefore(char - off)
		}
		off += child.sum.Chars
	}
	return count
}

// charOfNewline returns the char offset of the i-th newline (0-based).
// The caller guarantees 0 <= i < n.sum.Newlines.
func (n *node) charOfNewline(i int) int {
	if n.isLeaf() {
		off := 0
		for _, c := range n.chunks {
			if i < c.sum.Newlines {
				chars := 0
				for _, r := range c.text {
					if r == '\n' {
						if i == 0 {
							return off + chars
						}
						i--
					}
					chars++
				}
			}
			i -= c.sum.Newlines
			off += c.sum.Chars
		}
		return n.sum.Chars
	}

	off := 0
	for _, child := range n.children {
		if i < child.sum.Newlines {
			return off + child.charOfNewline(i)
		}
		i -= child.sum.Newlines
		off += child.sum.Chars
	}
	return n.sum.Chars
}
