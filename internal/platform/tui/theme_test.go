package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/bubble-shooter/internal/core"
)

func TestThemeByName(t *testing.T) {
	for _, name := range ThemeNames() {
		theme, ok := ThemeByName(name)
		if !ok {
			t.Errorf("ThemeByName(%q) not found", name)
		}
		for _, c := range []core.Color{core.ColorRed, core.ColorPurple, core.ColorDim} {
			if _, ok := theme.Cells[c]; !ok {
				t.Errorf("theme %q has no style for color %d", name, c)
			}
		}
	}

	if _, ok := ThemeByName("sparkly"); ok {
		t.Error("Unknown theme should not be found")
	}
}

func TestThemesDoNotShareCells(t *testing.T) {
	neon := NeonTheme()
	def := DefaultTheme()
	if neon.Cells[core.ColorRed].GetForeground() == def.Cells[core.ColorRed].GetForeground() {
		t.Error("Neon theme should override red")
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.DrawTextWithColor(0, 0, "ab", core.ColorRed)
	s.DrawText(2, 0, "cd")
	s.SetWithColor(0, 1, '●', core.ColorPurple)

	out := RenderScreenWithTheme(s, MonochromeTheme())
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(lines))
	}
	for _, want := range []string{"ab", "cd", "●"} {
		if !strings.Contains(out, want) {
			t.Errorf("Rendered output missing %q", want)
		}
	}
}

func TestTickInterval(t *testing.T) {
	if got := tickInterval(60); got != time.Second/60 {
		t.Errorf("tickInterval(60) = %v", got)
	}
	if got := tickInterval(0); got != time.Second/60 {
		t.Errorf("tickInterval(0) = %v, expected default rate", got)
	}
}
