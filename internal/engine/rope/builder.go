package rope

import (
	"strings"
	"unicode/utf8"

	"github.com/cmathes/inkwell/internal/style"
)

// Builder provides efficient incremental construction of a rope from
// styled pieces appended in document order. It buffers text per font and
// builds the tree once when Build is called.
type Builder struct {
	chunks []chunk
	buf    strings.Builder
	font   style.Font
	chars  int
}

// NewBuilder creates a new rope builder.
func NewBuilder() *Builder {
	return &Builder{chunks: make([]chunk, 0, 16)}
}

// Append adds text in the given font to the end of the rope under
// construction.
func (b *Builder) Append(text string, f style.Font) {
	if len(text) == 0 {
		return
	}
	if b.buf.Len() > 0 && f != b.font {
		b.flush()
	}
	b.font = f
	b.buf.WriteString(text)
	b.chars += utf8.RuneCountInString(text)

	if b.buf.Len() >= MaxChunkBytes*2 {
		b.flush()
	}
}

// AppendRune adds a single character in the given font.
func (b *Builder) AppendRune(r rune, f style.Font) {
	if b.buf.Len() > 0 && f != b.font {
		b.flush()
	}
	b.font = f
	b.buf.WriteRune(r)
	b.chars++

	if b.buf.Len() >= MaxChunkBytes*2 {
		b.flush()
	}
}

// flush converts the buffered text to chunks.
func (b *Builder) flush() {
	if b.buf.Len() == 0 {
		return
	}

	s := b.buf.String()
	b.buf.Reset()

	for _, part := range splitText(s) {
		b.chunks = append(b.chunks, newChunk(part, b.font))
	}
}

// Len returns the total number of chars appended so far.
func (b *Builder) Len() int {
	return b.chars
}

// Reset clears the builder for reuse.
func (b *Builder) Reset() {
	b.chunks = b.chunks[:0]
	b.buf.Reset()
	b.chars = 0
}

// Build creates the rope from accumulated pieces.
// After calling Build, the builder is reset.
func (b *Builder) Build() Rope {
	b.flush()
	chunks := coalesce(b.chunks)
	b.Reset()
	return Rope{root: buildTree(chunks)}
}
