package tui

import (
	"sort"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/bubble-shooter/internal/core"
)

// Theme contains all configurable visual styles.
type Theme struct {
	// Screen cell colors, keyed by the color the game draws with
	Cells map[core.Color]lipgloss.Style

	// Menu styles
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuDescription lipgloss.Style
	HUDControls     lipgloss.Style
}

func fg(c string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Cells: map[core.Color]lipgloss.Style{
			core.ColorDefault: lipgloss.NewStyle(),
			core.ColorRed:     fg("196"),
			core.ColorGreen:   fg("46"),  // Lime green
			core.ColorYellow:  fg("226"), // Bright yellow
			core.ColorBlue:    fg("33"),
			core.ColorMagenta: fg("201"),
			core.ColorCyan:    fg("51"), // Bright cyan
			core.ColorWhite:   fg("255"),
			core.ColorPink:    fg("205"), // Hot pink
			core.ColorOrange:  fg("208"),
			core.ColorPurple:  fg("135"), // Medium purple
			core.ColorGray:    fg("245"),
			core.ColorDim:     fg("237"),
		},

		MenuTitle:       fg("51").Bold(true),
		MenuItemNormal:  fg("252"),
		MenuItemActive:  fg("226").Bold(true),
		MenuDescription: fg("245"),
		HUDControls:     fg("245"),
	}
}

// NeonTheme returns a neon-style theme.
func NeonTheme() Theme {
	theme := DefaultTheme()
	theme.Cells = copyCells(theme.Cells)
	theme.Cells[core.ColorRed] = fg("197")
	theme.Cells[core.ColorGreen] = fg("118")  // Neon green
	theme.Cells[core.ColorBlue] = fg("45")    // Neon cyan-blue
	theme.Cells[core.ColorYellow] = fg("227") // Neon yellow
	theme.Cells[core.ColorPink] = fg("199")   // Neon pink
	theme.Cells[core.ColorOrange] = fg("214")
	theme.Cells[core.ColorPurple] = fg("171") // Neon purple
	theme.MenuTitle = fg("199").Bold(true)
	return theme
}

// PastelTheme returns a softer pastel theme.
func PastelTheme() Theme {
	theme := DefaultTheme()
	theme.Cells = copyCells(theme.Cells)
	theme.Cells[core.ColorRed] = fg("210")
	theme.Cells[core.ColorGreen] = fg("157") // Pastel green
	theme.Cells[core.ColorBlue] = fg("117")
	theme.Cells[core.ColorYellow] = fg("229") // Pastel yellow
	theme.Cells[core.ColorPink] = fg("218")   // Pastel pink
	theme.Cells[core.ColorOrange] = fg("223")
	theme.Cells[core.ColorPurple] = fg("183") // Pastel purple
	return theme
}

// MonochromeTheme returns a grayscale theme. Bubbles stay apart by shade only.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	theme.Cells = copyCells(theme.Cells)
	shades := map[core.Color]string{
		core.ColorRed:     "255",
		core.ColorGreen:   "252",
		core.ColorBlue:    "249",
		core.ColorYellow:  "246",
		core.ColorPink:    "243",
		core.ColorOrange:  "240",
		core.ColorPurple:  "237",
		core.ColorMagenta: "250",
		core.ColorCyan:    "250",
	}
	for c, s := range shades {
		theme.Cells[c] = fg(s)
	}
	theme.MenuTitle = fg("255").Bold(true)
	theme.MenuItemActive = fg("255").Bold(true).Underline(true)
	return theme
}

func copyCells(in map[core.Color]lipgloss.Style) map[core.Color]lipgloss.Style {
	out := make(map[core.Color]lipgloss.Style, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

var themes = map[string]func() Theme{
	"default": DefaultTheme,
	"neon":    NeonTheme,
	"pastel":  PastelTheme,
	"mono":    MonochromeTheme,
}

// ThemeByName returns the named theme. Unknown names return the default and false.
func ThemeByName(name string) (Theme, bool) {
	f, ok := themes[name]
	if !ok {
		return DefaultTheme(), false
	}
	return f(), true
}

// ThemeNames returns the names of all built-in themes, sorted.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for n := range themes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Global theme (can be changed at runtime)
var (
	themeMu      sync.RWMutex
	currentTheme = DefaultTheme()
)

// SetTheme sets the global theme.
func SetTheme(theme Theme) {
	themeMu.Lock()
	defer themeMu.Unlock()
	currentTheme = theme
}

// GetTheme returns the current global theme.
func GetTheme() Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTheme
}
