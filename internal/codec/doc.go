// Package codec reads and writes the styled document file format.
//
// A styled file is UTF-8 text in three parts: zero or more header lines,
// a separator line, and the body:
//
//	<start>,<end>,<family>,<styleBits>,<size>
//	---
//	<body text, possibly multi-line>
//
// Each header line declares the font for a character range of the body.
// Offsets count characters (runes), start inclusive, end exclusive.
// styleBits is a bitmask with bit 0 bold and bit 1 italic; higher bits are
// ignored on read and never written. The size field may be omitted on read,
// in which case the baseline size applies.
//
// Header ranges apply in declaration order and the last line wins for any
// position it covers. Positions past the end of the body are ignored.
// Characters no header covers receive the baseline descriptor. A header
// line that cannot be parsed is skipped, reported as a HeaderError
// diagnostic, and logged at warn level; a bad line never aborts a load.
//
// If no separator line is present the entire input is body text with
// baseline styling throughout. When a separator is present the body is the
// input after it, byte for byte, so decoding an encoded document reproduces
// its text and per-character fonts exactly.
//
// Font family names must not contain a comma or a newline; the format
// cannot represent them and Encode does not escape.
package codec
