package rope

import (
	"unicode/utf8"

	"github.com/cmathes/inkwell/internal/style"
)

// Chunk size constants control the granularity of text storage.
const (
	// MaxChunkBytes is the maximum bytes per chunk before splitting.
	MaxChunkBytes = 256

	// TargetChunkBytes is the preferred chunk size when building, leaving
	// fresh chunks room to grow before they hit the maximum.
	TargetChunkBytes = 192
)

// chunk is a bounded run of text rendered in a single font. A chunk never
// spans a style boundary: where the font changes, a new chunk begins.
// Chunks are immutable and share string storage with the text they were
// cut from.
type chunk struct {
	text string
	font style.Font
	sum  Summary
}

// newChunk creates a chunk, computing its summary eagerly.
func newChunk(text string, f style.Font) chunk {
	return chunk{text: text, font: f, sum: summarize(text)}
}

// charIndex returns the byte index of the given rune index. It accepts
// 0 through sum.Chars inclusive, the latter mapping to len(text).
func (c chunk) charIndex(char int) int {
	if c.sum.Bytes == c.sum.Chars {
		// Pure ASCII, rune index equals byte index.
		return char
	}
	i := 0
	for ; char > 0; char-- {
		_, size := utf8.DecodeRuneInString(c.text[i:])
		i += size
	}
	return i
}

// split divides the chunk at a rune index. Both halves keep the font and
// share the original string storage.
func (c chunk) split(char int) (chunk, chunk) {
	i := c.charIndex(char)
	return newChunk(c.text[:i], c.font), newChunk(c.text[i:], c.font)
}

// splitText cuts text into pieces no larger than MaxChunkBytes, aiming for
// TargetChunkBytes, never splitting inside a rune.
func splitText(text string) []string {
	if len(text) <= MaxChunkBytes {
		return []string{text}
	}

	parts := make([]string, 0, len(text)/TargetChunkBytes+1)
	for len(text) > MaxChunkBytes {
		cut := TargetChunkBytes
		for !utf8.RuneStart(text[cut]) {
			cut--
		}
		parts = append(parts, text[:cut])
		text = text[cut:]
	}
	return append(parts, text)
}

// coalesce merges adjacent chunks that share a font while the combined text
// stays under the target size, and drops empty chunks. Style edits fragment
// chunks over time; coalescing on rebuild keeps leaves compact.
func coalesce(chunks []chunk) []chunk {
	var out []chunk
	for _, c := range chunks {
		if c.sum.Bytes == 0 {
			continue
		}
		if n := len(out); n > 0 {
			prev := out[n-1]
			if prev.font == c.font && prev.sum.Bytes+c.sum.Bytes <= TargetChunkBytes {
				out[n-1] = newChunk(prev.text+c.text, prev.font)
				continue
			}
		}
		out = append(out, c)
	}
	return out
}
