package viz

import (
	"errors"
	"image/color"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/basins/internal/fractal"
)

func TestThemePalette(t *testing.T) {
	for _, th := range Themes {
		p := th.Palette()
		if len(p) != len(th.Basins)+1 {
			t.Errorf("%s: expected %d colors, got %d", th.Name, len(th.Basins)+1, len(p))
		}
		if p.Divergence() != ToRGBA(th.Divergence) {
			t.Errorf("%s: divergence color not last", th.Name)
		}
	}
}

func TestGetTheme(t *testing.T) {
	if GetTheme("ocean").Name != "ocean" {
		t.Error("expected ocean theme")
	}
	if GetTheme("nope").Name != ThemeCyberpunk.Name {
		t.Error("unknown theme should fall back to cyberpunk")
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("theme names out of sync")
	}
}

func TestHexRoundTrip(t *testing.T) {
	c := color.RGBA{R: 11, G: 104, B: 168, A: 255}
	if got := FromRGBA(c); got != "#0b68a8" {
		t.Errorf("FromRGBA = %s", got)
	}
	if got := ToRGBA("#0B68A8"); got != c {
		t.Errorf("ToRGBA = %v", got)
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		r, g, b int
		ok      bool
	}{
		{"#ff8800", 255, 136, 0, true},
		{"#000000", 0, 0, 0, true},
		{"ff8800", 0, 0, 0, false},
		{"#ff88", 0, 0, 0, false},
		{"#gg0000", 0, 0, 0, false},
	}
	for _, tt := range tests {
		r, g, b, err := ParseHex(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("ParseHex(%q) error = %v", tt.in, err)
			continue
		}
		if tt.ok && (r != tt.r || g != tt.g || b != tt.b) {
			t.Errorf("ParseHex(%q) = %d,%d,%d", tt.in, r, g, b)
		}
	}
}

// stripeImage has class 0 on the lower half and Divergent on the upper half.
func stripeImage(n int) *fractal.Image {
	img := &fractal.Image{
		N:       n,
		Pix:     make([]color.RGBA, n*n),
		Classes: make([]fractal.Classification, n*n),
	}
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			i := row*n + col
			if row >= n/2 {
				img.Classes[i] = fractal.Divergent
				img.Pix[i] = color.RGBA{A: 255}
			} else {
				img.Pix[i] = color.RGBA{R: 255, A: 255}
			}
		}
	}
	return img
}

func TestPreviewShape(t *testing.T) {
	out := Preview(stripeImage(16), 8)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	for i, l := range lines {
		if n := strings.Count(l, "▀"); n != 8 {
			t.Errorf("line %d: expected 8 cells, got %d", i, n)
		}
	}
	if Preview(nil, 10) != "" {
		t.Error("nil image should render empty")
	}
}

func TestBasinCanvas(t *testing.T) {
	img := stripeImage(16)
	c := BasinCanvas(img, 0, 4)
	if c.Width != 4 || c.Height != 2 {
		t.Fatalf("unexpected canvas size %dx%d", c.Width, c.Height)
	}
	// class 0 occupies the lower half, which is drawn on the last line
	for _, r := range c.Grid[0] {
		if r != 0x2800 {
			t.Errorf("top line should be empty, got %q", r)
		}
	}
	for _, r := range c.Grid[1] {
		if r != 0x28ff {
			t.Errorf("bottom line should be full, got %q", r)
		}
	}
}

func TestProgressModel(t *testing.T) {
	var m tea.Model = NewProgressModel("rendering", 10)

	m, _ = m.Update(ProgressMsg{Done: 4, Total: 10})
	m, _ = m.Update(ProgressMsg{Done: 3, Total: 10})
	pm := m.(ProgressModel)
	if pm.Percent() != 0.4 {
		t.Errorf("expected 40%%, got %v", pm.Percent())
	}
	if !strings.Contains(pm.View(), "4/10 rows") {
		t.Errorf("view missing row count: %s", pm.View())
	}

	m, cmd := m.Update(DoneMsg{Elapsed: time.Second})
	if cmd == nil {
		t.Error("expected quit command")
	}
	if !strings.Contains(m.View(), "done") {
		t.Errorf("expected done view, got %s", m.View())
	}

	failed, _ := NewProgressModel("x", 1).Update(DoneMsg{Err: errors.New("boom")})
	if !strings.Contains(failed.View(), "boom") {
		t.Errorf("expected error in view, got %s", failed.View())
	}

	canceled, _ := NewProgressModel("x", 1).Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !canceled.(ProgressModel).Canceled() {
		t.Error("ctrl+c should cancel")
	}
}

func TestSeparator(t *testing.T) {
	sep := Separator(20)
	if !strings.Contains(sep, "◆") {
		t.Errorf("separator missing marker: %q", sep)
	}
	if n := strings.Count(sep, "─"); n != 14 {
		t.Errorf("expected 14 rule characters, got %d", n)
	}
	if !strings.Contains(Separator(0), "◆") {
		t.Error("zero width should still render the marker")
	}
}
