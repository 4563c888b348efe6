package codec

import (
	"errors"
	"fmt"
)

// ErrMalformedHeaderLine marks a header line skipped during decode.
// HeaderError diagnostics unwrap to it.
var ErrMalformedHeaderLine = errors.New("malformed header line")

// HeaderError describes one skipped header line: where it was, what it
// said, and why it could not be applied. Decode collects these as
// diagnostics so callers can surface lost styling; they are never fatal.
type HeaderError struct {
	Line   int    // 1-based line number in the input
	Raw    string // the line as read
	Reason string // why the line was skipped
}

func (e HeaderError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Raw)
}

func (e HeaderError) Unwrap() error {
	return ErrMalformedHeaderLine
}
