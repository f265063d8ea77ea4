package export

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/basins/internal/fractal"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// stripes has root 0 on the bottom row and root 1 above it, with one
// divergent sample in the top-right corner.
func stripes(t *testing.T) *fractal.Image {
	t.Helper()
	classes := []fractal.Classification{
		0, 0, 0,
		1, 1, 1,
		1, 1, fractal.Divergent,
	}
	palette := fractal.Palette{
		{R: 200, A: 255},
		{G: 200, A: 255},
		{B: 200, A: 255},
	}
	img, err := fractal.Restore(3, fractal.Range{Min: 0, Max: 1}, fractal.Range{Min: 0, Max: 1}, classes, nil, palette)
	if err != nil {
		t.Fatal(err)
	}
	return img
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"out.png", PNG, false},
		{"dir/OUT.PNG", PNG, false},
		{"a.bmp", BMP, false},
		{"a.tif", TIFF, false},
		{"a.tiff", TIFF, false},
		{"a.svg", SVG, false},
		{"a.jpg", "", true},
		{"noext", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("unexpected error state: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestWriteRasterFormats(t *testing.T) {
	img := stripes(t)
	decoders := map[Format]func(io.Reader) (image.Image, error){
		PNG:  png.Decode,
		BMP:  bmp.Decode,
		TIFF: tiff.Decode,
	}

	for f, decode := range decoders {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Write(&buf, img, f); err != nil {
				t.Fatalf("write failed: %v", err)
			}
			out, err := decode(&buf)
			if err != nil {
				t.Fatalf("decode failed: %v", err)
			}
			if out.Bounds().Dx() != 3 || out.Bounds().Dy() != 3 {
				t.Fatalf("unexpected bounds %v", out.Bounds())
			}

			// Top row of the file is the last grid row.
			r, _, _, _ := out.At(0, 2).RGBA()
			if r>>8 != 200 {
				t.Errorf("bottom-left should be root 0 red, got r=%d", r>>8)
			}
			_, _, b, _ := out.At(2, 0).RGBA()
			if b>>8 != 200 {
				t.Errorf("top-right should be divergent blue, got b=%d", b>>8)
			}
		})
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	if err := Write(io.Discard, stripes(t), Format("gif")); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestToSVG(t *testing.T) {
	svg := ToSVG(stripes(t), 2)

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("not an svg document")
	}
	if !strings.Contains(svg, `width="6"`) {
		t.Error("expected scaled width 6")
	}
	// Background is green (5 of 9); red row and blue corner are runs.
	if !strings.Contains(svg, `fill="#00c800"/>`) {
		t.Error("expected green background")
	}
	if n := strings.Count(svg, "<rect"); n != 3 {
		t.Errorf("expected background plus 2 runs, got %d rects", n)
	}
	if !strings.Contains(svg, `<rect x="0" y="4" width="6" height="2" fill="#c80000"/>`) {
		t.Error("red run should span the bottom row")
	}

	if ToSVG(nil, 1) != "" {
		t.Error("expected empty output for nil image")
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	img := stripes(t)

	for _, name := range []string{"a.png", "a.bmp", "a.tiff", "a.svg"} {
		path := filepath.Join(dir, name)
		if err := WriteFile(path, img); err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if st, err := os.Stat(path); err != nil || st.Size() == 0 {
			t.Errorf("%s: file missing or empty", name)
		}
	}

	if err := WriteFile(filepath.Join(dir, "a.jpg"), img); err == nil {
		t.Error("expected error for jpg")
	}
}
