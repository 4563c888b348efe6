package engine

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/cmathes/inkwell/internal/clipboard"
	"github.com/cmathes/inkwell/internal/engine/buffer"
	"github.com/cmathes/inkwell/internal/engine/rope"
	"github.com/cmathes/inkwell/internal/search"
	"github.com/cmathes/inkwell/internal/style"
)

// Re-export commonly used types for convenience.
type (
	// CharOffset is a character position in the document.
	CharOffset = buffer.CharOffset

	// Point represents a line/column position.
	Point = buffer.Point

	// Range represents a character range in the document.
	Range = buffer.Range

	// RevisionID uniquely identifies a document revision.
	RevisionID = buffer.RevisionID

	// Snapshot is a read-only view of the document at a point in time.
	Snapshot = buffer.Snapshot

	// Font describes the typeface of a character.
	Font = style.Font

	// StyledChar pairs one character with its font.
	StyledChar = style.StyledChar

	// Segment is a styled piece of text.
	Segment = style.Segment

	// Run is a maximal span of characters sharing one font.
	Run = style.Run

	// Match describes one search hit.
	Match = search.Match
)

// Document is the facade for the styled text engine. It owns exactly
// one buffer, holds the baseline font applied to unstyled text, and
// carries a clipboard handle for cut/copy/paste.
//
// A Document belongs to a single writer; the embedding application
// serializes calls. Concurrent readers take a Snapshot. The clipboard
// handle is internally synchronized so it can be shared across
// documents.
type Document struct {
	buf      *buffer.Buffer
	baseline style.Font
	clip     *clipboard.Clipboard

	id       string
	path     string
	modified bool
}

// New creates a new empty document with a freshly assigned identity.
func New(opts ...Option) *Document {
	d := &Document{
		buf:      buffer.New(buffer.WithTabWidth(DefaultTabWidth)),
		baseline: style.Baseline(),
		id:       uuid.New().String(),
	}

	for _, opt := range opts {
		opt(d)
	}

	if d.clip == nil {
		d.clip = clipboard.Default()
	}

	return d
}

// NewFromText creates a document whose content all carries the
// baseline font.
func NewFromText(text string, opts ...Option) *Document {
	d := New(opts...)
	d.buf = buffer.NewFromText(text, d.baseline, buffer.WithTabWidth(d.buf.TabWidth()))
	return d
}

// NewFromSegments creates a document with styled initial content.
func NewFromSegments(segs []style.Segment, opts ...Option) *Document {
	d := New(opts...)
	d.buf = buffer.NewFromSegments(segs, buffer.WithTabWidth(d.buf.TabWidth()))
	return d
}

// ============================================================================
// Read Operations
// ============================================================================

// Text returns the plain-text projection of the whole document.
func (d *Document) Text() string {
	return d.buf.Text()
}

// TextRange returns the plain text in [start, end), clamped to the
// document bounds.
func (d *Document) TextRange(start, end CharOffset) string {
	return d.buf.TextRange(start, end)
}

// StyledRange returns the characters in [start, end) with their fonts,
// clamped to the document bounds.
func (d *Document) StyledRange(start, end CharOffset) []StyledChar {
	return d.buf.StyledRange(start, end)
}

// Len returns the number of characters in the document.
func (d *Document) Len() CharOffset {
	return d.buf.Len()
}

// IsEmpty returns true if the document holds no characters.
func (d *Document) IsEmpty() bool {
	return d.buf.IsEmpty()
}

// CharAt returns the character at the given offset.
func (d *Document) CharAt(offset CharOffset) (rune, error) {
	return d.buf.CharAt(offset)
}

// StyledCharAt returns the character and its font at the given offset.
func (d *Document) StyledCharAt(offset CharOffset) (StyledChar, error) {
	return d.buf.StyledAt(offset)
}

// FontAt returns the font governing the character at the given offset.
func (d *Document) FontAt(offset CharOffset) (Font, error) {
	return d.buf.FontAt(offset)
}

// Runs returns the maximal uniform-font spans covering the document in
// ascending order. The result is derived from the live buffer on every
// call, never cached.
func (d *Document) Runs() []Run {
	return d.buf.Runs()
}

// ============================================================================
// Line Operations
// ============================================================================

// LineCount returns the number of lines (newlines + 1).
func (d *Document) LineCount() int {
	return d.buf.LineCount()
}

// Line returns the styled characters of a line, without its newline.
func (d *Document) Line(line int) ([]StyledChar, error) {
	if line < 0 || line >= d.buf.LineCount() {
		return nil, ErrOutOfRange
	}
	return d.buf.StyledRange(d.buf.LineStart(line), d.buf.LineEnd(line)), nil
}

// LineText returns the plain text of a line, without its newline.
func (d *Document) LineText(line int) (string, error) {
	return d.buf.Line(line)
}

// Lines returns an iterator over all lines. The iterator reads the
// document state at the time of the call.
func (d *Document) Lines() *rope.LineIterator {
	return d.buf.Lines()
}

// OffsetToPoint converts a char offset to line/column.
func (d *Document) OffsetToPoint(offset CharOffset) Point {
	return d.buf.OffsetToPoint(offset)
}

// PointToOffset converts line/column to a char offset.
func (d *Document) PointToOffset(point Point) CharOffset {
	return d.buf.PointToOffset(point)
}

// WordRange returns the span of the word containing the character at
// the given offset. Empty at the offset when no word surrounds it.
func (d *Document) WordRange(offset CharOffset) (Range, error) {
	return d.buf.WordRange(offset)
}

// ============================================================================
// Write Operations
// ============================================================================

// Insert inserts text at the given offset with every character taking
// the given font. Returns the offset just past the inserted text.
func (d *Document) Insert(offset CharOffset, text string, f Font) (CharOffset, error) {
	rev := d.buf.Revision()
	end, err := d.buf.Insert(offset, text, f)
	d.trackChange(rev)
	return end, err
}

// InsertText inserts text carrying the baseline font.
func (d *Document) InsertText(offset CharOffset, text string) (CharOffset, error) {
	return d.Insert(offset, text, d.baseline)
}

// InsertChars inserts styled characters, each keeping its own font.
// Returns the offset just past the inserted text.
func (d *Document) InsertChars(offset CharOffset, chars []StyledChar) (CharOffset, error) {
	rev := d.buf.Revision()
	end, err := d.buf.InsertChars(offset, chars)
	d.trackChange(rev)
	return end, err
}

// Delete removes the character range [start, end).
func (d *Document) Delete(start, end CharOffset) error {
	rev := d.buf.Revision()
	err := d.buf.Delete(start, end)
	d.trackChange(rev)
	return err
}

// Replace substitutes [start, end) with text in one font. Returns the
// offset just past the replacement.
func (d *Document) Replace(start, end CharOffset, text string, f Font) (CharOffset, error) {
	rev := d.buf.Revision()
	pos, err := d.buf.Replace(start, end, text, f)
	d.trackChange(rev)
	return pos, err
}

// ============================================================================
// Style Operations
// ============================================================================

// SetFont reassigns the font of every character in [start, end).
// The text itself never changes.
func (d *Document) SetFont(start, end CharOffset, f Font) error {
	rev := d.buf.Revision()
	err := d.buf.SetFont(start, end, f)
	d.trackChange(rev)
	return err
}

// UpdateFont rewrites the font of every character in [start, end)
// through fn, preserving whatever attributes fn leaves alone.
func (d *Document) UpdateFont(start, end CharOffset, fn func(Font) Font) error {
	rev := d.buf.Revision()
	err := d.buf.MapFonts(start, end, fn)
	d.trackChange(rev)
	return err
}

// SetFamily changes the font family over a range, keeping size and
// style flags.
func (d *Document) SetFamily(start, end CharOffset, family string) error {
	return d.UpdateFont(start, end, func(f Font) Font {
		return f.WithFamily(family)
	})
}

// SetSize changes the point size over a range, keeping family and
// style flags.
func (d *Document) SetSize(start, end CharOffset, size int) error {
	if size <= 0 {
		return fmt.Errorf("%w: size %d", ErrInvalidFont, size)
	}
	return d.UpdateFont(start, end, func(f Font) Font {
		return f.WithSize(size)
	})
}

// SetBold sets or clears the bold flag over a range.
func (d *Document) SetBold(start, end CharOffset, bold bool) error {
	return d.UpdateFont(start, end, func(f Font) Font {
		return f.WithBold(bold)
	})
}

// SetItalic sets or clears the italic flag over a range.
func (d *Document) SetItalic(start, end CharOffset, italic bool) error {
	return d.UpdateFont(start, end, func(f Font) Font {
		return f.WithItalic(italic)
	})
}

// ============================================================================
// Clipboard Operations
// ============================================================================

// Copy replaces the clipboard contents with the styled span [start,
// end). The end offset clamps to the document length; an empty range
// leaves an empty clipboard.
func (d *Document) Copy(start, end CharOffset) error {
	if end < start {
		return ErrInvalidRange
	}
	if start < 0 {
		return ErrOutOfRange
	}
	if end > d.buf.Len() {
		end = d.buf.Len()
	}

	if start >= end {
		d.clip.Clear()
		return nil
	}

	d.clip.Write(d.buf.StyledRange(start, end))
	return nil
}

// Cut removes the styled span [start, end) from the document and
// stores it in the clipboard. The end offset clamps to the document
// length. Validation happens before any mutation, so a failed cut
// changes neither the document nor the clipboard.
func (d *Document) Cut(start, end CharOffset) error {
	if end < start {
		return ErrInvalidRange
	}
	if start < 0 || start > d.buf.Len() {
		return ErrOutOfRange
	}
	if end > d.buf.Len() {
		end = d.buf.Len()
	}

	d.clip.Write(d.buf.StyledRange(start, end))
	if start == end {
		return nil
	}

	rev := d.buf.Revision()
	err := d.buf.Delete(start, end)
	d.trackChange(rev)
	return err
}

// Paste inserts the clipboard contents at the given offset, each
// character keeping its stored font. The clipboard is not cleared, so
// repeated pastes reproduce the span. Returns the offset just past the
// pasted text.
func (d *Document) Paste(offset CharOffset) (CharOffset, error) {
	rev := d.buf.Revision()
	end, err := d.buf.InsertChars(offset, d.clip.Read())
	d.trackChange(rev)
	return end, err
}

// Clipboard returns the clipboard handle this document writes to.
func (d *Document) Clipboard() *clipboard.Clipboard {
	return d.clip
}

// ============================================================================
// Search Operations
// ============================================================================

// FindNext returns the first occurrence of needle strictly after the
// char offset from, wrapping to the top of the document when the tail
// holds none. Pass from = -1 to scan from the beginning. Matching is
// case-sensitive and ignores styling.
func (d *Document) FindNext(needle string, from int) (Match, bool) {
	return search.Find(d.buf.Text(), needle, from)
}

// FindAll returns every non-overlapping occurrence of needle in
// ascending order.
func (d *Document) FindAll(needle string) []Match {
	return search.FindAll(d.buf.Text(), needle)
}

// ============================================================================
// Metadata
// ============================================================================

// ID returns the document's unique identity, assigned at creation.
func (d *Document) ID() string {
	return d.id
}

// Path returns the backing file path, or "" for an unsaved document.
func (d *Document) Path() string {
	return d.path
}

// SetPath associates the document with a file path.
func (d *Document) SetPath(path string) {
	d.path = path
}

// Name returns the display name derived from the path.
func (d *Document) Name() string {
	if d.path == "" {
		return "untitled"
	}
	return filepath.Base(d.path)
}

// Modified reports whether the document changed since it was created,
// loaded, or last marked saved.
func (d *Document) Modified() bool {
	return d.modified
}

// MarkSaved clears the modified flag.
func (d *Document) MarkSaved() {
	d.modified = false
}

// Revision returns the current revision ID.
func (d *Document) Revision() RevisionID {
	return d.buf.Revision()
}

// ============================================================================
// Configuration
// ============================================================================

// Baseline returns the font applied to unstyled text.
func (d *Document) Baseline() Font {
	return d.baseline
}

// SetBaseline replaces the baseline font. Zero fonts are ignored.
func (d *Document) SetBaseline(f Font) {
	if !f.IsZero() {
		d.baseline = f
	}
}

// TabWidth returns the document's tab width.
func (d *Document) TabWidth() int {
	return d.buf.TabWidth()
}

// SetTabWidth sets the document's tab width.
func (d *Document) SetTabWidth(width int) {
	d.buf.SetTabWidth(width)
}

// ============================================================================
// Snapshots
// ============================================================================

// Snapshot returns a read-only view of the current document state,
// safe for concurrent access from other goroutines.
func (d *Document) Snapshot() *Snapshot {
	return d.buf.Snapshot()
}

func (d *Document) trackChange(before RevisionID) {
	if d.buf.Revision() != before {
		d.modified = true
	}
}
