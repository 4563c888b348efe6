package clipboard

import (
	"sync"
	"testing"

	"github.com/cmathes/inkwell/internal/style"
)

func styledSpan(text string, f style.Font) []style.StyledChar {
	return style.Chars(text, f)
}

func TestNew(t *testing.T) {
	c := New()

	if !c.IsEmpty() {
		t.Error("new clipboard should be empty")
	}
	if c.Len() != 0 {
		t.Errorf("expected length 0, got %d", c.Len())
	}
	if got := c.Read(); got != nil {
		t.Errorf("expected nil read, got %v", got)
	}
	if c.Text() != "" {
		t.Errorf("expected empty text, got %q", c.Text())
	}
}

func TestWriteRead(t *testing.T) {
	c := New()
	bold := style.Baseline().WithBold(true)

	c.Write(styledSpan("héllo", bold))

	if c.IsEmpty() {
		t.Error("clipboard should not be empty after write")
	}
	if c.Len() != 5 {
		t.Errorf("expected length 5 chars, got %d", c.Len())
	}
	if c.Text() != "héllo" {
		t.Errorf("expected 'héllo', got %q", c.Text())
	}

	got := c.Read()
	if len(got) != 5 {
		t.Fatalf("expected 5 chars, got %d", len(got))
	}
	if got[1].R != 'é' || got[1].Font != bold {
		t.Errorf("unexpected styled char: %v", got[1])
	}
}

func TestWriteReplaces(t *testing.T) {
	c := New()

	c.Write(styledSpan("first", style.Baseline()))
	c.Write(styledSpan("x", style.Baseline()))

	if c.Text() != "x" {
		t.Errorf("write should replace contents, got %q", c.Text())
	}
}

func TestWriteEmptyClears(t *testing.T) {
	c := New()

	c.Write(styledSpan("data", style.Baseline()))
	c.Write(nil)

	if !c.IsEmpty() {
		t.Error("writing an empty span should clear the clipboard")
	}
}

func TestWriteCopiesInput(t *testing.T) {
	c := New()
	span := styledSpan("abc", style.Baseline())

	c.Write(span)
	span[0].R = 'Z'

	if c.Text() != "abc" {
		t.Errorf("clipboard should hold its own copy, got %q", c.Text())
	}
}

func TestReadCopiesOutput(t *testing.T) {
	c := New()
	c.Write(styledSpan("abc", style.Baseline()))

	got := c.Read()
	got[0].R = 'Z'

	if c.Text() != "abc" {
		t.Errorf("mutating a read result should not affect the clipboard, got %q", c.Text())
	}
}

func TestClear(t *testing.T) {
	c := New()
	c.Write(styledSpan("abc", style.Baseline()))

	c.Clear()

	if !c.IsEmpty() {
		t.Error("clipboard should be empty after clear")
	}
}

func TestDefaultIsShared(t *testing.T) {
	Default().Clear()
	defer Default().Clear()

	Default().Write(styledSpan("shared", style.Baseline()))

	if got := Default().Text(); got != "shared" {
		t.Errorf("expected 'shared' from the shared handle, got %q", got)
	}
}

func TestZeroValue(t *testing.T) {
	var c Clipboard

	if !c.IsEmpty() {
		t.Error("zero-value clipboard should be empty")
	}

	c.Write(styledSpan("ok", style.Baseline()))
	if c.Text() != "ok" {
		t.Errorf("zero-value clipboard should accept writes, got %q", c.Text())
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := New()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Write(styledSpan("span", style.Baseline()))
		}()

		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = c.Read()
			_ = c.Len()
			_ = c.IsEmpty()
		}()
	}
	wg.Wait()

	if c.Text() != "span" {
		t.Errorf("expected 'span' after concurrent writes, got %q", c.Text())
	}
}
