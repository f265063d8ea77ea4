package fractal_test

import (
	"context"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/basins/internal/compute"
	"github.com/san-kum/basins/internal/config"
	"github.com/san-kum/basins/internal/experiment"
	"github.com/san-kum/basins/internal/fractal"
	"github.com/san-kum/basins/internal/polynomial"
)

var _ = Describe("Render", func() {
	var (
		cubic polynomial.CubicPlusOne
		cfg   fractal.Config
	)

	BeforeEach(func() {
		cfg = fractal.DefaultConfig(cubic, cubic.Roots(), experiment.ClassicPalette)
		cfg.N = 64
	})

	Context("z^3+1 with the classic palette", func() {
		var img *fractal.Image

		BeforeEach(func() {
			var err error
			img, err = fractal.NewRenderer(fractal.WithBackend(compute.NewCPUBackend(4))).Render(context.Background(), cfg)
			Expect(err).NotTo(HaveOccurred())
		})

		It("fills every pixel from the palette", func() {
			Expect(img.Pix).To(HaveLen(64 * 64))
			for _, c := range img.Pix {
				Expect(experiment.ClassicPalette).To(ContainElement(c))
			}
		})

		It("accounts for every sample exactly once", func() {
			total := img.Count(fractal.Divergent)
			for i := range cubic.Roots() {
				n := img.Count(fractal.Classification(i))
				Expect(n).To(BeNumerically(">", 0))
				total += n
			}
			Expect(total).To(Equal(64 * 64))
		})

		It("is symmetric under complex conjugation", func() {
			// Conjugation swaps the two complex roots and fixes -1.
			mirror := map[fractal.Classification]fractal.Classification{
				0: 1, 1: 0, 2: 2, fractal.Divergent: fractal.Divergent,
			}
			agree := 0
			for row := 0; row < img.N; row++ {
				for col := 0; col < img.N; col++ {
					if img.ClassAt(img.N-1-row, col) == mirror[img.ClassAt(row, col)] {
						agree++
					}
				}
			}
			Expect(agree).To(BeNumerically(">=", 64*64*99/100))
		})

		It("matches the serial backend sample for sample", func() {
			serial, err := fractal.NewRenderer(fractal.WithBackend(compute.NewSerialBackend())).Render(context.Background(), cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(serial.Classes).To(Equal(img.Classes))
			Expect(serial.Iterations).To(Equal(img.Iterations))
		})
	})

	DescribeTable("classifying single starts",
		func(z complex128, want fractal.Classification) {
			o := fractal.Iterate(z, cubic, cfg.Tol, cfg.MaxIter, cfg.DerivEps)
			Expect(fractal.Classify(o, cubic.Roots(), cfg.MatchTol)).To(Equal(want))
		},
		Entry("on the real root", complex(-1, 0), fractal.Classification(2)),
		Entry("near the upper root", complex(0.4, 0.9), fractal.Classification(1)),
		Entry("near the lower root", complex(0.4, -0.9), fractal.Classification(0)),
		Entry("far in the upper right", complex(2, 2), fractal.Classification(1)),
		Entry("at the critical point", complex(0, 0), fractal.Divergent),
	)

	It("rejects a short palette before any sample is evaluated", func() {
		calls := 0
		cfg.Poly = fractal.PolyFunc{
			F:  func(z complex128) complex128 { calls++; return z*z*z + 1 },
			DF: func(z complex128) complex128 { return 3 * z * z },
		}
		cfg.Palette = cfg.Palette[:3]

		_, err := fractal.Render(context.Background(), cfg)
		Expect(err).To(MatchError(fractal.ErrPaletteLength))
		Expect(err).To(MatchError(fractal.ErrInvalidConfig))
		Expect(calls).To(BeZero())
	})

	It("returns ErrCanceled and no image when the context is done", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		img, err := fractal.Render(ctx, cfg)
		Expect(err).To(MatchError(fractal.ErrCanceled))
		Expect(img).To(BeNil())
	})
})

var _ = Describe("Rendering from a config file", func() {
	It("builds and renders a custom polynomial", func() {
		path := filepath.Join(GinkgoT().TempDir(), "basins.yaml")
		yaml := []byte(`polynomial: custom
roots:
  - {re: 1, im: 0}
  - {re: -1, im: 0}
resolution: 32
x_range: {min: -2, max: 2}
y_range: {min: -2, max: 2}
colors: ["#ff0000", "#0000ff", "#000000"]
backend: serial
`)
		Expect(os.WriteFile(path, yaml, 0644)).To(Succeed())

		fileCfg, err := config.Load(path)
		Expect(err).NotTo(HaveOccurred())
		fc, err := fileCfg.Build(experiment.NewRegistry())
		Expect(err).NotTo(HaveOccurred())
		backend, err := fileCfg.BuildBackend()
		Expect(err).NotTo(HaveOccurred())

		img, err := fractal.NewRenderer(fractal.WithBackend(backend)).Render(context.Background(), fc)
		Expect(err).NotTo(HaveOccurred())

		// z^2-1 splits the plane along the imaginary axis.
		Expect(img.ClassAt(16, 0)).To(Equal(fractal.Classification(1)))
		Expect(img.ClassAt(16, 31)).To(Equal(fractal.Classification(0)))
		Expect(img.At(16, 31)).To(Equal(fc.Palette[0]))
	})
})
