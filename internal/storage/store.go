package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/basins/internal/fractal"
	"github.com/san-kum/basins/internal/viz"
)

const (
	metadataFile   = "metadata.json"
	classesFile    = "classes.csv"
	iterationsFile = "iterations.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

// Root is a complex root as stored in metadata.json.
type Root struct {
	Re float64 `json:"re"`
	Im float64 `json:"im"`
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Polynomial string             `json:"polynomial"`
	Label      string             `json:"label,omitempty"`
	Timestamp  time.Time          `json:"timestamp"`
	N          int                `json:"n"`
	X          fractal.Range      `json:"x_range"`
	Y          fractal.Range      `json:"y_range"`
	Tol        float64            `json:"tol"`
	MatchTol   float64            `json:"match_tol"`
	MaxIter    int                `json:"max_iter"`
	Roots      []Root             `json:"roots"`
	Palette    []string           `json:"palette"`
	Backend    string             `json:"backend"`
	ElapsedMS  float64            `json:"elapsed_ms"`
	Counts     []int              `json:"counts"`
	Metrics    map[string]float64 `json:"metrics"`
}

// RootSet converts the stored roots back to complex values.
func (m *RunMetadata) RootSet() fractal.RootSet {
	roots := make(fractal.RootSet, len(m.Roots))
	for i, r := range m.Roots {
		roots[i] = complex(r.Re, r.Im)
	}
	return roots
}

// ColorPalette parses the stored hex palette.
func (m *RunMetadata) ColorPalette() (fractal.Palette, error) {
	palette := make(fractal.Palette, len(m.Palette))
	for i, hex := range m.Palette {
		r, g, b, err := viz.ParseHex(hex)
		if err != nil {
			return nil, fmt.Errorf("palette[%d]: %w", i, err)
		}
		palette[i] = color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255}
	}
	return palette, nil
}

// Divergent returns the number of divergent samples, the last entry of
// Counts.
func (m *RunMetadata) Divergent() int {
	if len(m.Counts) == 0 {
		return 0
	}
	return m.Counts[len(m.Counts)-1]
}

// Run describes a finished render for Save.
type Run struct {
	Polynomial string
	Label      string
	Config     fractal.Config
	Backend    string
	Elapsed    time.Duration
	Metrics    map[string]float64
}

func (s *Store) Save(run Run, img *fractal.Image) (string, error) {
	if img == nil {
		return "", errors.New("nothing to save")
	}

	now := time.Now()
	runID, runDir, err := s.makeRunDir(run.Polynomial, now)
	if err != nil {
		return "", err
	}

	cfg := run.Config
	meta := RunMetadata{
		ID:         runID,
		Polynomial: run.Polynomial,
		Label:      run.Label,
		Timestamp:  now,
		N:          img.N,
		X:          img.X,
		Y:          img.Y,
		Tol:        cfg.Tol,
		MatchTol:   cfg.MatchTol,
		MaxIter:    cfg.MaxIter,
		Roots:      make([]Root, len(cfg.Roots)),
		Palette:    make([]string, len(cfg.Palette)),
		Backend:    run.Backend,
		ElapsedMS:  float64(run.Elapsed.Microseconds()) / 1000,
		Counts:     make([]int, len(cfg.Roots)+1),
		Metrics:    run.Metrics,
	}
	for i, r := range cfg.Roots {
		meta.Roots[i] = Root{Re: real(r), Im: imag(r)}
	}
	for i, c := range cfg.Palette {
		meta.Palette[i] = string(viz.FromRGBA(c))
	}
	for _, c := range img.Classes {
		if c.IsRoot() && int(c) < len(cfg.Roots) {
			meta.Counts[c]++
		} else {
			meta.Counts[len(cfg.Roots)]++
		}
	}
	if meta.Metrics == nil {
		meta.Metrics = map[string]float64{}
	}

	if err := writeRun(runDir, &meta, img); err != nil {
		os.RemoveAll(runDir)
		return "", fmt.Errorf("save run %s: %w", runID, err)
	}
	return runID, nil
}

func writeRun(runDir string, meta *RunMetadata, img *fractal.Image) error {
	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return err
	}
	if err := writeGrid(filepath.Join(runDir, classesFile), img.N, func(i int) int { return int(img.Classes[i]) }); err != nil {
		return err
	}
	return writeGrid(filepath.Join(runDir, iterationsFile), img.N, func(i int) int { return img.Iterations[i] })
}

// makeRunDir creates <poly>_<unix> and appends a counter when two runs land
// in the same second.
func (s *Store) makeRunDir(poly string, now time.Time) (string, string, error) {
	if err := s.Init(); err != nil {
		return "", "", err
	}
	if poly == "" {
		poly = "run"
	}
	base := fmt.Sprintf("%s_%d", poly, now.Unix())
	id := base
	for i := 2; ; i++ {
		dir := filepath.Join(s.baseDir, id)
		err := os.Mkdir(dir, 0755)
		if err == nil {
			return id, dir, nil
		}
		if !os.IsExist(err) {
			return "", "", err
		}
		id = fmt.Sprintf("%s_%d", base, i)
	}
}

// List returns all readable runs, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}

		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadClasses returns the classification grid in row-major order together
// with its resolution.
func (s *Store) LoadClasses(runID string) ([]fractal.Classification, int, error) {
	vals, n, err := readGrid(filepath.Join(s.baseDir, runID, classesFile))
	if err != nil {
		return nil, 0, err
	}
	classes := make([]fractal.Classification, len(vals))
	for i, v := range vals {
		classes[i] = fractal.Classification(v)
	}
	return classes, n, nil
}

func (s *Store) LoadIterations(runID string) ([]int, int, error) {
	return readGrid(filepath.Join(s.baseDir, runID, iterationsFile))
}

// LoadImage rebuilds the rendered image of a run from its stored grids and
// palette.
func (s *Store) LoadImage(runID string) (*RunMetadata, *fractal.Image, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	classes, n, err := s.LoadClasses(runID)
	if err != nil {
		return nil, nil, err
	}
	iters, _, err := s.LoadIterations(runID)
	if err != nil && !os.IsNotExist(err) {
		return nil, nil, err
	}

	palette, err := meta.ColorPalette()
	if err != nil {
		return nil, nil, fmt.Errorf("run %s: %w", runID, err)
	}

	img, err := fractal.Restore(n, meta.X, meta.Y, classes, iters, palette)
	if err != nil {
		return nil, nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return meta, img, nil
}

func writeJSON(path string, v any) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeGrid writes an n×n grid as n CSV rows, grid row 0 first.
func writeGrid(path string, n int, at func(i int) int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := csv.NewWriter(f)
	record := make([]string, n)
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			record[col] = strconv.Itoa(at(row*n + col))
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func readGrid(path string) ([]int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, 0, err
	}

	n := len(records)
	vals := make([]int, 0, n*n)
	for i, record := range records {
		if len(record) != n {
			return nil, 0, fmt.Errorf("%s: row %d has %d values, want %d", filepath.Base(path), i, len(record), n)
		}
		for _, field := range record {
			v, err := strconv.Atoi(field)
			if err != nil {
				return nil, 0, fmt.Errorf("%s: row %d: %w", filepath.Base(path), i, err)
			}
			vals = append(vals, v)
		}
	}
	return vals, n, nil
}
