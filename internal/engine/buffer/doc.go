// Package buffer provides a styled text buffer built on top of the rope
// data structure. It serves as the primary interface for document
// editing in the engine.
//
// The buffer package provides:
//
//   - Validated editing operations with explicit error returns
//   - Per-character font attribution through the underlying rope
//   - Coordinate conversion between char offsets and line/column positions
//   - Word range lookup for selection expansion
//   - Read-only snapshots for concurrent access
//   - Revision tracking for change detection
//
// Basic usage:
//
//	// Create a buffer with some text
//	buf := buffer.NewFromText("Hello, World!", style.Baseline())
//
//	// Insert text
//	buf.Insert(7, "Beautiful ", style.Baseline())  // "Hello, Beautiful World!"
//
//	// Style a range
//	buf.SetFont(0, 5, style.Baseline().WithBold(true))
//
//	// Get a snapshot for concurrent reading
//	snap := buf.Snapshot()
//	go func() {
//	    text := snap.Text()
//	    // Process text...
//	}()
//
// Position Types:
//
// All offsets are char (rune) counts from the start of the buffer, not
// byte positions. Point carries a 0-indexed line and a char column
// within that line.
//
// Concurrency:
//
// A Buffer belongs to a single writer and its methods are not
// synchronized. Use Snapshot() to obtain a consistent read-only view
// that other goroutines can read while the owner keeps editing.
package buffer
