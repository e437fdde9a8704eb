package core

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyPalette is returned when a level offers no colors.
	ErrEmptyPalette = errors.New("level: palette has no colors")
	// ErrInvalidLevel is returned when a level would start with nothing to shoot at.
	ErrInvalidLevel = errors.New("level: invalid level")
)

// LevelConfig parametrizes a single round. It is read once when the World is built.
type LevelConfig struct {
	Index      int
	Name       string
	ColorCount int       // Number of palette colors in play (1..ColorCount)
	FillRows   int       // Lattice rows filled at round start; 0 means half the rows
	Background string    // Backdrop name, presentation only
	MatchRule  MatchRule // How a landed bubble decides to pop
}

// DefaultLevels returns the built-in three-level set with 3, 5 and 7 colors.
func DefaultLevels() []LevelConfig {
	return []LevelConfig{
		{Index: 1, Name: "Shallows", ColorCount: 3, Background: "waves", MatchRule: MatchPath},
		{Index: 2, Name: "Reef", ColorCount: 5, Background: "coral", MatchRule: MatchPath},
		{Index: 3, Name: "Abyss", ColorCount: 7, Background: "deep", MatchRule: MatchPath},
	}
}

// Palette returns the colors legal in this level.
func (l LevelConfig) Palette() []Color {
	return Palette(l.ColorCount)
}

// Validate checks the level against the lattice it will be played on.
func (l LevelConfig) Validate(g *Grid) error {
	if l.ColorCount <= 0 {
		return ErrEmptyPalette
	}
	if l.ColorCount > int(ColorCount) {
		return fmt.Errorf("%w: %d colors requested, %d available", ErrInvalidLevel, l.ColorCount, ColorCount)
	}
	if l.FillRows < 0 {
		return fmt.Errorf("%w: negative fill rows", ErrInvalidLevel)
	}
	if g != nil && l.fillRows(g) == 0 {
		return fmt.Errorf("%w: level %d populates no rows", ErrInvalidLevel, l.Index)
	}
	return nil
}

// fillRows resolves the number of rows to populate on g.
func (l LevelConfig) fillRows(g *Grid) int {
	rows := l.FillRows
	if rows == 0 {
		rows = g.Rows() / 2
	}
	if rows > g.Rows() {
		rows = g.Rows()
	}
	return rows
}
