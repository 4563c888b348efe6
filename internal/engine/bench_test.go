package engine

import (
	"strings"
	"testing"

	"github.com/cmathes/inkwell/internal/clipboard"
)

// ============================================================================
// Setup Helpers
// ============================================================================

func setupLargeDocument(b *testing.B, lines int) *Document {
	b.Helper()
	var sb strings.Builder
	line := strings.Repeat("x", 80) + "\n"
	for i := 0; i < lines; i++ {
		sb.WriteString(line)
	}
	return NewFromText(sb.String(), WithClipboard(clipboard.New()))
}

// ============================================================================
// Read Operation Benchmarks
// ============================================================================

func BenchmarkDocumentText(b *testing.B) {
	d := setupLargeDocument(b, 10000)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = d.Text()
	}
}

func BenchmarkDocumentTextRange(b *testing.B) {
	d := setupLargeDocument(b, 10000)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = d.TextRange(1000, 2000)
	}
}

func BenchmarkDocumentLen(b *testing.B) {
	d := setupLargeDocument(b, 10000)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = d.Len()
	}
}

func BenchmarkDocumentLineCount(b *testing.B) {
	d := setupLargeDocument(b, 10000)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = d.LineCount()
	}
}

func BenchmarkDocumentLineText(b *testing.B) {
	d := setupLargeDocument(b, 10000)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = d.LineText(5000)
	}
}

func BenchmarkDocumentRuns(b *testing.B) {
	d := setupLargeDocument(b, 1000)
	bold := d.Baseline().WithBold(true)
	for i := 0; i < 100; i++ {
		_ = d.SetFont(CharOffset(i*200), CharOffset(i*200+50), bold)
	}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = d.Runs()
	}
}

// ============================================================================
// Position Conversion Benchmarks
// ============================================================================

func BenchmarkDocumentOffsetToPoint(b *testing.B) {
	d := setupLargeDocument(b, 10000)
	mid := d.Len() / 2
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = d.OffsetToPoint(mid)
	}
}

func BenchmarkDocumentPointToOffset(b *testing.B) {
	d := setupLargeDocument(b, 10000)
	point := Point{Line: 5000, Column: 40}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = d.PointToOffset(point)
	}
}

// ============================================================================
// Write Operation Benchmarks
// ============================================================================

func BenchmarkDocumentInsert(b *testing.B) {
	for i := 0; i < b.N; i++ {
		d := New(WithClipboard(clipboard.New()))
		for j := 0; j < 1000; j++ {
			_, _ = d.InsertText(CharOffset(j), "x")
		}
	}
}

func BenchmarkDocumentInsertMiddle(b *testing.B) {
	d := setupLargeDocument(b, 10000)
	mid := d.Len() / 2
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = d.InsertText(mid, "x")
	}
}

func BenchmarkDocumentDelete(b *testing.B) {
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		d := NewFromText(strings.Repeat("x", 10000), WithClipboard(clipboard.New()))
		b.StartTimer()

		for j := 0; j < 100; j++ {
			_ = d.Delete(0, 10)
		}
	}
}

func BenchmarkDocumentReplace(b *testing.B) {
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		d := NewFromText(strings.Repeat("x", 10000), WithClipboard(clipboard.New()))
		bold := d.Baseline().WithBold(true)
		b.StartTimer()

		for j := 0; j < 100; j++ {
			_, _ = d.Replace(500, 510, "yyyyyyyyyy", bold)
		}
	}
}

// ============================================================================
// Style Operation Benchmarks
// ============================================================================

func BenchmarkDocumentSetFont(b *testing.B) {
	d := setupLargeDocument(b, 1000)
	bold := d.Baseline().WithBold(true)
	mid := d.Len() / 2
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = d.SetFont(mid, mid+100, bold)
	}
}

func BenchmarkDocumentSetBoldAlternating(b *testing.B) {
	d := setupLargeDocument(b, 1000)
	mid := d.Len() / 2
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = d.SetBold(mid, mid+100, i%2 == 0)
	}
}

// ============================================================================
// Clipboard Benchmarks
// ============================================================================

func BenchmarkDocumentCopy(b *testing.B) {
	d := setupLargeDocument(b, 1000)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = d.Copy(1000, 2000)
	}
}

func BenchmarkDocumentCutPaste(b *testing.B) {
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		d := NewFromText(strings.Repeat("x", 10000), WithClipboard(clipboard.New()))
		b.StartTimer()

		for j := 0; j < 10; j++ {
			_ = d.Cut(100, 200)
			_, _ = d.Paste(500)
		}
	}
}

// ============================================================================
// Search Benchmarks
// ============================================================================

func BenchmarkDocumentFindNext(b *testing.B) {
	d := NewFromText(strings.Repeat("the quick brown fox\n", 1000), WithClipboard(clipboard.New()))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = d.FindNext("fox", -1)
	}
}

func BenchmarkDocumentFindNextWrapped(b *testing.B) {
	d := NewFromText("needle"+strings.Repeat("x", 20000), WithClipboard(clipboard.New()))
	from := d.Len() - 1
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = d.FindNext("needle", from)
	}
}

func BenchmarkDocumentFindAll(b *testing.B) {
	d := NewFromText(strings.Repeat("the quick brown fox\n", 1000), WithClipboard(clipboard.New()))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = d.FindAll("quick")
	}
}

// ============================================================================
// Snapshot Benchmarks
// ============================================================================

func BenchmarkDocumentSnapshot(b *testing.B) {
	d := setupLargeDocument(b, 10000)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = d.Snapshot()
	}
}

// ============================================================================
// Memory Benchmarks
// ============================================================================

func BenchmarkDocumentMemorySnapshots(b *testing.B) {
	d := setupLargeDocument(b, 10000)
	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		// Snapshots share rope structure with the live document.
		for j := 0; j < 100; j++ {
			_ = d.Snapshot()
		}
	}
}

func BenchmarkDocumentMemoryEdits(b *testing.B) {
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		d := New(WithClipboard(clipboard.New()))
		for j := 0; j < 1000; j++ {
			_, _ = d.InsertText(CharOffset(j), "x")
		}
	}
}
