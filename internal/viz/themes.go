package viz

import (
	"image/color"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/basins/internal/fractal"
)

// Theme defines the terminal color scheme and the basin colors it lends to
// renders.
type Theme struct {
	Name       string
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Basins     []lipgloss.Color
	Divergence lipgloss.Color
}

// Available themes
var (
	ThemeCyberpunk = Theme{
		Name:       "cyberpunk",
		Primary:    lipgloss.Color("#ff00ff"),
		Secondary:  lipgloss.Color("#00ffff"),
		Accent:     lipgloss.Color("#ffff00"),
		Muted:      lipgloss.Color("#666666"),
		Basins:     []lipgloss.Color{"#ff00ff", "#00ffff", "#ffff00", "#ff8800", "#00ff00", "#8800ff"},
		Divergence: lipgloss.Color("#0a0a0a"),
	}

	ThemeRetroGreen = Theme{
		Name:       "retro",
		Primary:    lipgloss.Color("#00ff00"), // Green phosphor
		Secondary:  lipgloss.Color("#00cc00"),
		Accent:     lipgloss.Color("#88ff88"),
		Muted:      lipgloss.Color("#005500"),
		Basins:     []lipgloss.Color{"#00ff00", "#00aa00", "#88ff88", "#005500"},
		Divergence: lipgloss.Color("#001100"),
	}

	ThemeMinimal = Theme{
		Name:       "minimal",
		Primary:    lipgloss.Color("#ffffff"),
		Secondary:  lipgloss.Color("#cccccc"),
		Accent:     lipgloss.Color("#0088ff"),
		Muted:      lipgloss.Color("#888888"),
		Basins:     []lipgloss.Color{"#ffffff", "#aaaaaa", "#555555"},
		Divergence: lipgloss.Color("#000000"),
	}

	ThemeOcean = Theme{
		Name:       "ocean",
		Primary:    lipgloss.Color("#0077be"),
		Secondary:  lipgloss.Color("#00a8cc"),
		Accent:     lipgloss.Color("#ffd700"),
		Muted:      lipgloss.Color("#4488aa"),
		Basins:     []lipgloss.Color{"#0077be", "#00a8cc", "#ffd700", "#e0f0ff", "#00ff88"},
		Divergence: lipgloss.Color("#001a33"),
	}

	ThemeSunset = Theme{
		Name:       "sunset",
		Primary:    lipgloss.Color("#ff6b6b"),
		Secondary:  lipgloss.Color("#feca57"),
		Accent:     lipgloss.Color("#ff9ff3"),
		Muted:      lipgloss.Color("#8b6b8c"),
		Basins:     []lipgloss.Color{"#ff6b6b", "#feca57", "#ff9ff3", "#5fd068", "#ffc048"},
		Divergence: lipgloss.Color("#2d1b2e"),
	}

	// Default theme
	CurrentTheme = ThemeCyberpunk

	// All available themes
	Themes = []Theme{
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCyberpunk
}

// SetTheme changes the current theme
func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// Palette returns the basin colors followed by the divergence color.
func (t Theme) Palette() fractal.Palette {
	p := make(fractal.Palette, 0, len(t.Basins)+1)
	for _, c := range t.Basins {
		p = append(p, ToRGBA(c))
	}
	return append(p, ToRGBA(t.Divergence))
}

// ToRGBA converts a "#rrggbb" lipgloss color; anything else maps to white.
func ToRGBA(c lipgloss.Color) color.RGBA {
	r, g, b := parseHex(string(c))
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255}
}

// FromRGBA is the inverse of ToRGBA, dropping alpha.
func FromRGBA(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(hexColor(int(c.R), int(c.G), int(c.B)))
}
