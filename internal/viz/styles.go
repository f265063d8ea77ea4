package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Glass panel effect with subtle border
	GlassPanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 1)

	GradientTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ffff"))

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	StatusRunning = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff88"))

	StatusFailed = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff4444"))

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)

	// Sparkline bar colors
	SparkHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	SparkMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	SparkLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

// AnimatedSpinner returns frame of animated spinner
func AnimatedSpinner(frame int) string {
	spinners := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	return spinners[frame%len(spinners)]
}

// ProgressBar renders a progress bar colored by completion
func ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	if percent > 0.8 {
		return SparkHigh.Render(bar)
	} else if percent > 0.4 {
		return SparkMid.Render(bar)
	}
	return SparkLow.Render(bar)
}

// ShareBar renders a labelled horizontal bar in the basin's own color.
func ShareBar(label string, share float64, c lipgloss.Color, width int) string {
	filled := int(share*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	bar := lipgloss.NewStyle().Foreground(c).Render(strings.Repeat("█", filled))
	return fmt.Sprintf("%s %s%s %s",
		MetricLabel.Render(fmt.Sprintf("%-10s", label)),
		bar,
		strings.Repeat(" ", width-filled),
		MetricValue.Render(fmt.Sprintf("%6.2f%%", share*100)),
	)
}

// Metric renders "label: value" with the metric styles.
func Metric(label string, value string) string {
	return MetricLabel.Render(label+":") + " " + MetricValue.Render(value)
}

// Separator draws a decorative rule
func Separator(width int) string {
	mid := width / 2
	left := strings.Repeat("─", max(mid-3, 0))
	right := strings.Repeat("─", max(width-mid-3, 0))
	return Subtle.Render(left + " ◆ " + right)
}

// ParseHex parses "#rrggbb".
func ParseHex(hex string) (r, g, b int, err error) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0, fmt.Errorf("invalid color %q: want #rrggbb", hex)
	}
	vals := [3]int{}
	for i := range vals {
		v, ok := parseHexByte(hex[1+2*i : 3+2*i])
		if !ok {
			return 0, 0, 0, fmt.Errorf("invalid color %q: bad hex digit", hex)
		}
		vals[i] = v
	}
	return vals[0], vals[1], vals[2], nil
}

func parseHex(hex string) (r, g, b int) {
	r, g, b, err := ParseHex(hex)
	if err != nil {
		return 255, 255, 255
	}
	return
}

func parseHexByte(s string) (int, bool) {
	var val int
	for _, c := range s {
		val *= 16
		switch {
		case c >= '0' && c <= '9':
			val += int(c - '0')
		case c >= 'a' && c <= 'f':
			val += int(c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			val += int(c - 'A' + 10)
		default:
			return 0, false
		}
	}
	return val, true
}

func hexColor(r, g, b int) string {
	return "#" + hexByte(r) + hexByte(g) + hexByte(b)
}

func hexByte(v int) string {
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	const hex = "0123456789abcdef"
	return string(hex[v/16]) + string(hex[v%16])
}
