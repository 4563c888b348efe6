// Package engine provides the styled text document engine for Inkwell.
//
// The engine package serves as the main facade, combining the rope-backed
// buffer, derived style runs, clipboard transfer, and substring search
// into a single Document API suitable for embedding under a UI layer.
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - rope: B+ tree rope of style-uniform chunks (O(log n) operations)
//   - buffer: validated editing operations, coordinate conversion,
//     revision tracking, and snapshots
//   - clipboard: single-slot styled span store shared across documents
//   - search: linear substring scan with wraparound
//
// # Concurrency
//
// A Document belongs to a single writer: the embedding application
// serializes all mutating calls, typically by confining them to one
// event-processing goroutine. Every operation runs to completion on the
// calling goroutine; nothing suspends mid-call. Renderers and other
// concurrent readers take a Snapshot, which is immutable. The clipboard
// is the one shared piece of state and carries its own lock.
//
// # Basic Usage
//
// Create a document and perform edits:
//
//	// Start empty with the baseline font
//	doc := engine.New()
//
//	// Insert text
//	doc.InsertText(0, "Hello, World!")
//
//	// Style a range
//	doc.SetBold(0, 5, true)
//
//	// Read content
//	text := doc.Text()   // "Hello, World!"
//	runs := doc.Runs()   // [0,5) bold, [5,13) plain
//
// # Clipboard Transfer
//
// Cut, copy, and paste move styled spans through a clipboard handle:
//
//	doc.Copy(0, 5)
//	doc.Paste(13)      // appends a styled copy of "Hello"
//	doc.Paste(13)      // the clipboard survives repeated pastes
//
// Documents share the process-wide clipboard by default; tests and
// multi-document hosts can isolate one via WithClipboard.
//
// # Search
//
// Searching is case-sensitive, style-blind, and wraps at the end:
//
//	m, ok := doc.FindNext("World", -1)      // first occurrence
//	m, ok = doc.FindNext("World", m.Start)  // next, wrapping
//
// # Error Handling
//
// The package surfaces two sentinel errors for positional misuse:
//
//   - ErrOutOfRange: a position argument violates its stated bound
//   - ErrInvalidRange: a range whose end precedes its start
//
// Both indicate caller bugs. No operation mutates state before its
// bounds checks pass.
package engine
