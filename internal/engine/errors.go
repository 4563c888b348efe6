package engine

import (
	"errors"

	"github.com/cmathes/inkwell/internal/engine/buffer"
)

// Errors returned by document operations.
var (
	// ErrOutOfRange indicates a position outside the valid document bounds.
	ErrOutOfRange = buffer.ErrOutOfRange

	// ErrInvalidRange indicates a range whose end precedes its start.
	ErrInvalidRange = buffer.ErrInvalidRange

	// ErrInvalidFont indicates a font descriptor that violates its
	// contract, such as a non-positive size.
	ErrInvalidFont = errors.New("invalid font")
)
