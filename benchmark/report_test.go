package benchmark

import (
	"net/http"
	"testing"
)

// Benchmarks against a running report server:
//
//	gantryctl report serve --addr :8080 &
//	go test -bench=. ./benchmark/...

func BenchmarkReportServer(b *testing.B) {
	b.Run("GET /healthz", func(b *testing.B) {
		b.ReportAllocs()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			r, _ := http.NewRequest("GET", "http://localhost:8080/healthz", nil)
			_, _ = http.DefaultClient.Do(r)
		}
	})

	b.Run("GET summary.html", func(b *testing.B) {
		b.ReportAllocs()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			r, _ := http.NewRequest("GET", "http://localhost:8080/", nil)
			_, _ = http.DefaultClient.Do(r)
		}
	})
}
