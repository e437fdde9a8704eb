package core

// Color identifies a bubble color.
type Color uint8

const (
	ColorRed Color = iota
	ColorGreen
	ColorBlue
	ColorYellow
	ColorPink
	ColorOrange
	ColorPurple
	ColorCount // Sentinel value for iteration
)

// String returns the string representation of a color.
func (c Color) String() string {
	switch c {
	case ColorRed:
		return "red"
	case ColorGreen:
		return "green"
	case ColorBlue:
		return "blue"
	case ColorYellow:
		return "yellow"
	case ColorPink:
		return "pink"
	case ColorOrange:
		return "orange"
	case ColorPurple:
		return "purple"
	default:
		return "unknown"
	}
}

// Char returns a letter for the color, for displays that cannot show it.
func (c Color) Char() rune {
	switch c {
	case ColorRed:
		return 'R'
	case ColorGreen:
		return 'G'
	case ColorBlue:
		return 'B'
	case ColorYellow:
		return 'Y'
	case ColorPink:
		return 'K'
	case ColorOrange:
		return 'O'
	case ColorPurple:
		return 'P'
	default:
		return '?'
	}
}

// AllColors returns a slice of all valid colors in palette order.
func AllColors() []Color {
	return []Color{ColorRed, ColorGreen, ColorBlue, ColorYellow, ColorPink, ColorOrange, ColorPurple}
}

// Palette returns the first n colors of the full palette.
// n is clamped to [0, ColorCount].
func Palette(n int) []Color {
	all := AllColors()
	if n < 0 {
		n = 0
	}
	if n > len(all) {
		n = len(all)
	}
	return all[:n]
}
