// Package rope provides an immutable rope data structure for styled text.
//
// A rope is a B+ tree whose leaf nodes contain text chunks and whose
// internal nodes store aggregated metrics (byte count, char count, line
// count). Each chunk carries a single font descriptor and never spans a
// style boundary, so styling information lives in the same tree as the
// text and stays aligned with it through every edit.
//
// Key features:
//   - O(log n) insertion, deletion, and access operations
//   - Immutable operations return new ropes; originals are never modified
//   - All offsets count chars (runes), so multi-byte text indexes cleanly
//   - Style runs derive directly from chunk boundaries via Runs
//   - Copy-on-write semantics enable cheap snapshots
//
// Basic usage:
//
//	f := style.Baseline()
//	r := rope.FromText("hello world", f)
//	r = r.Insert(5, ",", f)                    // "hello, world"
//	r = r.SetFont(0, 5, f.WithBold(true))      // style "hello"
//	runs := r.Runs()                           // [{0 5 bold} {5 12 plain}]
//
// The rope handles large documents efficiently while keeping random
// access, edits, and style changes fast.
package rope
