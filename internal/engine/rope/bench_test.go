package rope

import (
	"strings"
	"testing"

	"github.com/cmathes/inkwell/internal/style"
)

func benchRope(chars int) Rope {
	return FromText(strings.Repeat("0123456789", chars/10), style.Baseline())
}

func BenchmarkFromText(b *testing.B) {
	text := strings.Repeat("0123456789", 1000)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		FromText(text, style.Baseline())
	}
}

func BenchmarkInsertAppend(b *testing.B) {
	r := benchRope(10000)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Insert(r.Len(), "x", style.Baseline())
	}
}

func BenchmarkInsertMiddle(b *testing.B) {
	r := benchRope(10000)
	mid := r.Len() / 2
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Insert(mid, "x", style.Baseline())
	}
}

func BenchmarkDeleteMiddle(b *testing.B) {
	r := benchRope(10000)
	mid := r.Len() / 2
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Delete(mid, mid+10)
	}
}

func BenchmarkSetFont(b *testing.B) {
	r := benchRope(10000)
	bold := style.Baseline().WithBold(true)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.SetFont(100, 900, bold)
	}
}

func BenchmarkRuns(b *testing.B) {
	r := benchRope(10000)
	bold := style.Baseline().WithBold(true)
	for i := 0; i < r.Len(); i += 100 {
		r = r.SetFont(i, i+50, bold)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Runs()
	}
}

func BenchmarkString(b *testing.B) {
	r := benchRope(10000)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = r.String()
	}
}

func BenchmarkLineAt(b *testing.B) {
	r := FromText(strings.Repeat("line of text\n", 1000), style.Baseline())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.LineAt(i % r.Len())
	}
}
