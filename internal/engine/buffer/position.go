package buffer

import (
	"sync/atomic"

	"github.com/cmathes/inkwell/internal/engine/rope"
)

// CharOffset represents a character (rune) position in the buffer.
// This is the fundamental position type: all buffer offsets count chars,
// never bytes, so multi-byte text addresses identically everywhere.
type CharOffset = int

// Point is a line and column position, both 0-indexed and measured in
// chars. The buffer exposes the rope's Point directly.
type Point = rope.Point

// RevisionID uniquely identifies a buffer revision.
// Each modification to the buffer creates a new revision.
type RevisionID uint64

// revisionCounter is used to generate unique revision IDs.
var revisionCounter uint64

// NewRevisionID generates a new unique revision ID.
// This is thread-safe using atomic operations.
func NewRevisionID() RevisionID {
	return RevisionID(atomic.AddUint64(&revisionCounter, 1))
}
