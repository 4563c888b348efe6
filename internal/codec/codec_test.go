package codec

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cmathes/inkwell/internal/engine"
	"github.com/cmathes/inkwell/internal/logging"
	"github.com/cmathes/inkwell/internal/style"
)

// quietLog keeps expected-warning tests from writing to stderr.
var quietLog = logging.New("error")

func decodeString(t *testing.T, input string, opts ...Option) (*engine.Document, []HeaderError) {
	t.Helper()
	opts = append([]Option{WithLogger(quietLog)}, opts...)
	doc, diags, err := Decode(strings.NewReader(input), opts...)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	return doc, diags
}

func fontAt(t *testing.T, doc *engine.Document, offset int) style.Font {
	t.Helper()
	f, err := doc.FontAt(offset)
	if err != nil {
		t.Fatalf("FontAt(%d) failed: %v", offset, err)
	}
	return f
}

// ============================================================================
// Decode
// ============================================================================

func TestDecodeStyledHeader(t *testing.T) {
	doc, diags := decodeString(t, "0,2,Arial,1,16\n---\nHi!")

	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if doc.Text() != "Hi!" {
		t.Fatalf("expected body 'Hi!', got %q", doc.Text())
	}

	arial := style.Font{Family: "Arial", Bold: true, Size: 16}
	if f := fontAt(t, doc, 0); f != arial {
		t.Errorf("char 0 font = %v, want %v", f, arial)
	}
	if f := fontAt(t, doc, 1); f != arial {
		t.Errorf("char 1 font = %v, want %v", f, arial)
	}
	if f := fontAt(t, doc, 2); f != style.Baseline() {
		t.Errorf("char 2 font = %v, want baseline", f)
	}
}

func TestDecodeOverlapLastWins(t *testing.T) {
	doc, diags := decodeString(t, "0,5,Arial,0,12\n2,4,Courier,2,10\n---\nabcde")

	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}

	arial := style.Font{Family: "Arial", Size: 12}
	courier := style.Font{Family: "Courier", Italic: true, Size: 10}
	wantFonts := []style.Font{arial, arial, courier, courier, arial}
	for i, want := range wantFonts {
		if f := fontAt(t, doc, i); f != want {
			t.Errorf("char %d font = %v, want %v", i, f, want)
		}
	}

	runs := doc.Runs()
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d: %v", len(runs), runs)
	}
}

func TestDecodeNoSeparator(t *testing.T) {
	doc, diags := decodeString(t, "no headers here\njust text")

	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if doc.Text() != "no headers here\njust text" {
		t.Errorf("body altered: %q", doc.Text())
	}
	if doc.LineCount() != 2 {
		t.Errorf("expected 2 lines, got %d", doc.LineCount())
	}
	if f := fontAt(t, doc, 0); f != style.Baseline() {
		t.Errorf("expected baseline styling, got %v", f)
	}
}

func TestDecodeEmptyInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"separator only", Separator},
		{"separator with newline", Separator + "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, diags := decodeString(t, tt.input)
			if len(diags) != 0 {
				t.Fatalf("unexpected diagnostics: %v", diags)
			}
			if doc.Len() != 0 {
				t.Errorf("expected empty document, got %q", doc.Text())
			}
		})
	}
}

func TestDecodeMalformedLines(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		reason string
	}{
		{"too few fields", "oops", "expected 4 or 5 fields, got 1"},
		{"too many fields", "0,2,Arial,1,16,99", "expected 4 or 5 fields, got 6"},
		{"start not integer", "x,2,Arial,0", "start is not an integer"},
		{"end not integer", "0,y,Arial,0", "end is not an integer"},
		{"bits not integer", "0,2,Arial,z", "styleBits is not an integer"},
		{"size not integer", "0,2,Arial,0,w", "size is not an integer"},
		{"negative start", "-1,2,Arial,0", "start is negative"},
		{"empty range", "3,3,Arial,0", "end must be greater than start"},
		{"inverted range", "4,2,Arial,0", "end must be greater than start"},
		{"zero size", "0,2,Arial,0,0", "size must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, diags := decodeString(t, tt.line+"\n"+Separator+"\nbody")

			if doc.Text() != "body" {
				t.Errorf("body not recovered: %q", doc.Text())
			}
			if len(diags) != 1 {
				t.Fatalf("expected 1 diagnostic, got %d: %v", len(diags), diags)
			}

			d := diags[0]
			if d.Line != 1 {
				t.Errorf("diagnostic line = %d, want 1", d.Line)
			}
			if d.Raw != tt.line {
				t.Errorf("diagnostic raw = %q, want %q", d.Raw, tt.line)
			}
			if d.Reason != tt.reason {
				t.Errorf("diagnostic reason = %q, want %q", d.Reason, tt.reason)
			}
			if f := fontAt(t, doc, 0); f != style.Baseline() {
				t.Errorf("skipped line styled the body: %v", f)
			}
		})
	}
}

func TestDecodeMalformedAmongValid(t *testing.T) {
	input := "0,1,Arial,1,16\noops\n1,3,Courier,2,12\n" + Separator + "\nabc"
	doc, diags := decodeString(t, input)

	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d: %v", len(diags), diags)
	}
	if diags[0].Line != 2 {
		t.Errorf("diagnostic line = %d, want 2", diags[0].Line)
	}

	// Valid lines on either side of the bad one still apply.
	if f := fontAt(t, doc, 0); f.Family != "Arial" {
		t.Errorf("char 0 family = %q, want Arial", f.Family)
	}
	if f := fontAt(t, doc, 2); f.Family != "Courier" {
		t.Errorf("char 2 family = %q, want Courier", f.Family)
	}
}

func TestDecodeSizeOmitted(t *testing.T) {
	doc, diags := decodeString(t, "0,2,Arial,1\n---\nhi")

	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	want := style.Font{Family: "Arial", Bold: true, Size: style.DefaultSize}
	if f := fontAt(t, doc, 0); f != want {
		t.Errorf("font = %v, want %v", f, want)
	}
}

func TestDecodeSizeOmittedUsesBaselineSize(t *testing.T) {
	georgia := style.NewFont("Georgia", 11)
	doc, diags := decodeString(t, "0,2,Arial,1\n---\nabc", WithBaseline(georgia))

	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if f := fontAt(t, doc, 0); f.Size != 11 {
		t.Errorf("omitted size should fall back to the baseline size, got %d", f.Size)
	}
	if f := fontAt(t, doc, 2); f != georgia {
		t.Errorf("uncovered char font = %v, want %v", f, georgia)
	}
	if doc.Baseline() != georgia {
		t.Errorf("document baseline = %v, want %v", doc.Baseline(), georgia)
	}
}

func TestDecodeRangeClamps(t *testing.T) {
	doc, diags := decodeString(t, "0,100,Arial,1,16\n---\nabc")

	if len(diags) != 0 {
		t.Fatalf("clamping is not a diagnostic: %v", diags)
	}
	for i := 0; i < 3; i++ {
		if f := fontAt(t, doc, i); f.Family != "Arial" {
			t.Errorf("char %d family = %q, want Arial", i, f.Family)
		}
	}

	// A range entirely past the body is ignored without complaint.
	doc, diags = decodeString(t, "5,10,Arial,1,16\n---\nabc")
	if len(diags) != 0 {
		t.Fatalf("out-of-body range is not a diagnostic: %v", diags)
	}
	if f := fontAt(t, doc, 0); f != style.Baseline() {
		t.Errorf("expected baseline styling, got %v", f)
	}
}

func TestDecodeHigherBitsIgnored(t *testing.T) {
	doc, _ := decodeString(t, "0,3,Arial,7,16\n---\nabc")

	f := fontAt(t, doc, 0)
	if !f.Bold || !f.Italic {
		t.Errorf("bits 0 and 1 should apply, got %v", f)
	}
	if f.Bits() != 3 {
		t.Errorf("higher bits should be dropped, got %d", f.Bits())
	}
}

func TestDecodeUnicodeOffsets(t *testing.T) {
	doc, diags := decodeString(t, "1,3,Arial,1,16\n---\nhéllo")

	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if f := fontAt(t, doc, 1); f.Family != "Arial" {
		t.Errorf("char 1 (é) family = %q, want Arial", f.Family)
	}
	if f := fontAt(t, doc, 2); f.Family != "Arial" {
		t.Errorf("char 2 family = %q, want Arial", f.Family)
	}
	if f := fontAt(t, doc, 0); f != style.Baseline() {
		t.Errorf("char 0 should be baseline, got %v", f)
	}
	if f := fontAt(t, doc, 3); f != style.Baseline() {
		t.Errorf("char 3 should be baseline, got %v", f)
	}
}

func TestDecodeCRLF(t *testing.T) {
	doc, diags := decodeString(t, "0,2,Arial,1,16\r\n---\r\nHi!")

	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if doc.Text() != "Hi!" {
		t.Errorf("body = %q, want 'Hi!'", doc.Text())
	}
	if f := fontAt(t, doc, 0); f.Family != "Arial" {
		t.Errorf("char 0 family = %q, want Arial", f.Family)
	}
}

func TestDecodeBodyKeepsCarriageReturns(t *testing.T) {
	doc, _ := decodeString(t, "---\nAB\r\nCD")

	if doc.Text() != "AB\r\nCD" {
		t.Errorf("body bytes altered: %q", doc.Text())
	}
}

func TestDecodeBodyMayContainSeparator(t *testing.T) {
	doc, diags := decodeString(t, "0,1,Arial,0,10\n---\na\n---\nb")

	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if doc.Text() != "a\n---\nb" {
		t.Errorf("body = %q, want 'a\\n---\\nb'", doc.Text())
	}
	if f := fontAt(t, doc, 0); f.Family != "Arial" {
		t.Errorf("char 0 family = %q, want Arial", f.Family)
	}
}

func TestDecodeReadError(t *testing.T) {
	_, _, err := Decode(errReader{}, WithLogger(quietLog))
	if err == nil {
		t.Fatal("expected read error")
	}
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

// ============================================================================
// Encode
// ============================================================================

func TestEncode(t *testing.T) {
	doc := engine.NewFromText("Hello World")
	if err := doc.SetBold(0, 5, true); err != nil {
		t.Fatalf("set bold failed: %v", err)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, doc); err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	want := "0,5,Monospaced,1,14\n5,11,Monospaced,0,14\n---\nHello World"
	if buf.String() != want {
		t.Errorf("encoded output:\ngot  %q\nwant %q", buf.String(), want)
	}
}

func TestEncodeEmptyDocument(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, engine.New()); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if buf.String() != Separator+"\n" {
		t.Errorf("empty document encoding = %q, want %q", buf.String(), Separator+"\n")
	}
}

// ============================================================================
// Round Trips
// ============================================================================

func TestRoundTrip(t *testing.T) {
	doc := engine.NewFromText("héllo wörld\nsecond line\n")
	if err := doc.SetFont(2, 8, style.NewFont("Serif", 12)); err != nil {
		t.Fatalf("set font failed: %v", err)
	}
	if err := doc.SetItalic(15, 21, true); err != nil {
		t.Fatalf("set italic failed: %v", err)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, doc); err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	decoded, diags := decodeString(t, buf.String())
	if len(diags) != 0 {
		t.Fatalf("self-produced file had diagnostics: %v", diags)
	}

	if decoded.Text() != doc.Text() {
		t.Errorf("text round trip:\ngot  %q\nwant %q", decoded.Text(), doc.Text())
	}

	got, want := decoded.Runs(), doc.Runs()
	if len(got) != len(want) {
		t.Fatalf("runs round trip: %v != %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("run %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestRoundTripCarriageReturn(t *testing.T) {
	doc := engine.NewFromText("a\rb")

	var buf bytes.Buffer
	if err := Encode(&buf, doc); err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	decoded, _ := decodeString(t, buf.String())
	if decoded.Text() != "a\rb" {
		t.Errorf("carriage return lost: %q", decoded.Text())
	}
}

// ============================================================================
// Files
// ============================================================================

func TestEncodeFileDecodeFile(t *testing.T) {
	doc := engine.NewFromText("styled on disk")
	if err := doc.SetBold(0, 6, true); err != nil {
		t.Fatalf("set bold failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "doc.iw")
	if err := EncodeFile(doc, path); err != nil {
		t.Fatalf("encode file failed: %v", err)
	}

	loaded, diags, err := DecodeFile(path, WithLogger(quietLog))
	if err != nil {
		t.Fatalf("decode file failed: %v", err)
	}
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}

	if loaded.Text() != doc.Text() {
		t.Errorf("text = %q, want %q", loaded.Text(), doc.Text())
	}
	if loaded.Path() != path {
		t.Errorf("path = %q, want %q", loaded.Path(), path)
	}
	if f := fontAt(t, loaded, 0); !f.Bold {
		t.Errorf("styling lost on disk round trip: %v", f)
	}
}

func TestDecodeFileMissing(t *testing.T) {
	_, _, err := DecodeFile(filepath.Join(t.TempDir(), "absent.iw"), WithLogger(quietLog))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected wrapped os.ErrNotExist, got %v", err)
	}
}

// ============================================================================
// Diagnostics
// ============================================================================

func TestHeaderErrorFormat(t *testing.T) {
	e := HeaderError{Line: 3, Raw: "oops", Reason: "expected 4 or 5 fields, got 1"}

	msg := e.Error()
	if !strings.Contains(msg, "line 3") {
		t.Errorf("message should name the line: %q", msg)
	}
	if !strings.Contains(msg, "oops") {
		t.Errorf("message should quote the raw line: %q", msg)
	}
	if !errors.Is(e, ErrMalformedHeaderLine) {
		t.Error("HeaderError should unwrap to ErrMalformedHeaderLine")
	}
}
