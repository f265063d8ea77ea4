package export

import (
	"bufio"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/san-kum/basins/internal/fractal"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

type Format string

const (
	PNG  Format = "png"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
	SVG  Format = "svg"
)

var Formats = []Format{PNG, BMP, TIFF, SVG}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "png":
		return PNG, nil
	case "bmp":
		return BMP, nil
	case "tif", "tiff":
		return TIFF, nil
	case "svg":
		return SVG, nil
	}
	return "", fmt.Errorf("unsupported image format %q (want one of %v)", ext, Formats)
}

// Write encodes img with Y.Max on the top row.
func Write(w io.Writer, img *fractal.Image, f Format) error {
	switch f {
	case PNG:
		return png.Encode(w, img.RGBA())
	case BMP:
		return bmp.Encode(w, img.RGBA())
	case TIFF:
		return tiff.Encode(w, img.RGBA(), &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	case SVG:
		_, err := io.WriteString(w, ToSVG(img, 1))
		return err
	}
	return fmt.Errorf("unsupported image format %q", f)
}

func WriteFile(path string, img *fractal.Image) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	bw := bufio.NewWriter(file)
	if err := Write(bw, img, f); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	return file.Close()
}
