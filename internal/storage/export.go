package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/basins/internal/fractal"
)

// ExportData is a run flattened into one JSON document, grids as rows.
type ExportData struct {
	RunMetadata
	Classes    [][]int `json:"classes"`
	Iterations [][]int `json:"iterations"`
}

func ExportJSON(w io.Writer, meta *RunMetadata, img *fractal.Image) error {
	data := ExportData{
		RunMetadata: *meta,
		Classes:     make([][]int, img.N),
		Iterations:  make([][]int, img.N),
	}

	for row := 0; row < img.N; row++ {
		data.Classes[row] = make([]int, img.N)
		data.Iterations[row] = make([]int, img.N)
		for col := 0; col < img.N; col++ {
			data.Classes[row][col] = int(img.ClassAt(row, col))
			data.Iterations[row][col] = img.IterationsAt(row, col)
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
