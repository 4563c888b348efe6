package codec

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/cmathes/inkwell/internal/engine"
)

// Encode writes doc to w in the styled file format: one header line per
// maximal uniform-font run in ascending start order, the separator line,
// then the body text exactly as stored.
func Encode(w io.Writer, doc *engine.Document) error {
	for _, run := range doc.Runs() {
		_, err := fmt.Fprintf(w, "%d,%d,%s,%d,%d\n",
			run.Start, run.End, run.Font.Family, run.Font.Bits(), run.Font.Size)
		if err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	if _, err := io.WriteString(w, Separator+"\n"); err != nil {
		return fmt.Errorf("writing separator: %w", err)
	}
	if _, err := io.WriteString(w, doc.Text()); err != nil {
		return fmt.Errorf("writing body: %w", err)
	}
	return nil
}

// EncodeFile writes doc to the file at path. The document is only read;
// callers decide when to clear its modified flag.
func EncodeFile(doc *engine.Document, path string) error {
	var buf bytes.Buffer
	if err := Encode(&buf, doc); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
