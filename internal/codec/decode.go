package codec

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/cmathes/inkwell/internal/engine"
	"github.com/cmathes/inkwell/internal/logging"
	"github.com/cmathes/inkwell/internal/style"
)

// Separator is the line dividing style headers from body text.
const Separator = "---"

type options struct {
	baseline style.Font
	logger   *log.Logger
}

// Option configures decoding.
type Option func(*options)

// WithBaseline sets the descriptor applied to characters no header range
// covers. The zero Font is ignored.
func WithBaseline(f style.Font) Option {
	return func(o *options) {
		if !f.IsZero() {
			o.baseline = f
		}
	}
}

// WithLogger sets the logger used to report skipped header lines.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		baseline: style.Baseline(),
		logger:   logging.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Decode reads a styled document from r. Malformed header lines are
// skipped and returned as diagnostics; only I/O failure is an error.
func Decode(r io.Reader, opts ...Option) (*engine.Document, []HeaderError, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("reading document: %w", err)
	}
	doc, diags := decode(string(data), newOptions(opts))
	return doc, diags, nil
}

// DecodeFile reads a styled document from the file at path and records
// the path on the resulting document.
func DecodeFile(path string, opts ...Option) (*engine.Document, []HeaderError, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, diags := decode(string(data), newOptions(opts))
	doc.SetPath(path)
	return doc, diags, nil
}

func decode(input string, o options) (*engine.Document, []HeaderError) {
	lines := strings.Split(input, "\n")

	sep := -1
	for i, line := range lines {
		if isSeparator(line) {
			sep = i
			break
		}
	}

	var headerLines []string
	body := input
	if sep >= 0 {
		headerLines = lines[:sep]
		body = strings.Join(lines[sep+1:], "\n")
	}

	chars := []rune(body)
	fonts := make([]style.Font, len(chars))
	for i := range fonts {
		fonts[i] = o.baseline
	}

	var diags []HeaderError
	for i, line := range headerLines {
		h, reason := parseHeaderLine(line, o.baseline)
		if reason != "" {
			diag := HeaderError{Line: i + 1, Raw: line, Reason: reason}
			diags = append(diags, diag)
			o.logger.Warn("skipping malformed header line",
				logging.FieldLine, diag.Line,
				logging.FieldReason, diag.Reason,
				logging.FieldRaw, diag.Raw)
			continue
		}

		end := h.end
		if end > len(chars) {
			end = len(chars)
		}
		for pos := h.start; pos < end; pos++ {
			fonts[pos] = h.font
		}
	}

	styled := make([]style.StyledChar, len(chars))
	for i, r := range chars {
		styled[i] = style.StyledChar{R: r, Font: fonts[i]}
	}

	doc := engine.NewFromSegments(style.Segments(styled), engine.WithBaseline(o.baseline))
	return doc, diags
}

// isSeparator reports whether line is the header separator. A trailing
// carriage return is tolerated so files with CRLF line endings still split.
func isSeparator(line string) bool {
	return line == Separator || line == Separator+"\r"
}

// header is one parsed style range declaration.
type header struct {
	start int
	end   int
	font  style.Font
}

// parseHeaderLine parses one "start,end,family,styleBits,size" declaration.
// The size field may be omitted, in which case the baseline size applies.
// A non-empty reason describes why the line is malformed.
func parseHeaderLine(line string, baseline style.Font) (header, string) {
	fields := strings.Split(line, ",")
	if len(fields) != 4 && len(fields) != 5 {
		return header{}, fmt.Sprintf("expected 4 or 5 fields, got %d", len(fields))
	}

	start, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return header{}, "start is not an integer"
	}
	end, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		return header{}, "end is not an integer"
	}
	family := strings.TrimSpace(fields[2])
	bits, err := strconv.Atoi(strings.TrimSpace(fields[3]))
	if err != nil {
		return header{}, "styleBits is not an integer"
	}

	size := baseline.Size
	if len(fields) == 5 {
		size, err = strconv.Atoi(strings.TrimSpace(fields[4]))
		if err != nil {
			return header{}, "size is not an integer"
		}
	}

	if start < 0 {
		return header{}, "start is negative"
	}
	if end <= start {
		return header{}, "end must be greater than start"
	}
	if size <= 0 {
		return header{}, "size must be positive"
	}

	return header{start: start, end: end, font: style.FromBits(family, bits, size)}, ""
}
