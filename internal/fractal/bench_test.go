package fractal

import (
	"context"
	"testing"

	"github.com/san-kum/basins/internal/compute"
)

func BenchmarkIterate(b *testing.B) {
	z := complex(2, 2)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Iterate(z, cubic, DefaultTol, DefaultMaxIter, DefaultDerivEpsilon)
	}
}

func BenchmarkRenderSerial(b *testing.B) {
	benchmarkRender(b, compute.NewSerialBackend())
}

func BenchmarkRenderCPU(b *testing.B) {
	benchmarkRender(b, compute.NewCPUBackend(0))
}

func benchmarkRender(b *testing.B, backend compute.Backend) {
	cfg := cubicConfig(128)
	r := NewRenderer(WithBackend(backend))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := r.Render(context.Background(), cfg); err != nil {
			b.Fatal(err)
		}
	}
}
