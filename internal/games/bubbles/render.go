package bubbles

import (
	"math"
	"strings"

	platformcore "github.com/vovakirdan/bubble-shooter/internal/core"
	"github.com/vovakirdan/bubble-shooter/internal/games/bubbles/core"
)

// Render draws the game to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	g.renderHUD(dst)

	switch {
	case g.loadErr != nil:
		g.renderOverlay(dst, "Cannot start", truncate(g.loadErr.Error(), dst.Width()-8))
		return
	case g.tooSmall:
		g.renderOverlay(dst, "Window too small", "Need "+itoa(fieldCols+2)+"x"+itoa(hudHeight+fieldLines+2))
		return
	}

	g.renderField(dst)
	if g.showPanel {
		g.renderPanel(dst)
	}

	switch {
	case g.won:
		g.renderOverlay(dst, "You Win!", "All levels cleared! Score: "+itoa(g.score()))
	case g.gameOver:
		g.renderOverlay(dst, "Game Over", "Press R to restart")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *platformcore.Screen) {
	hud := " Bubble Shooter | Score: " + itoa(g.score())
	if len(g.allLevels) > 0 {
		lvl := g.allLevels[g.levelIndex]
		hud += " | Level: " + itoa(g.levelIndex+1) + "/" + itoa(len(g.allLevels)) + " " + lvl.Name
	}
	hud += " | Aim: " + itoa(int(math.Round(g.aimDeg))) + "°"
	dst.DrawTextWithColor(0, 0, hud, platformcore.ColorCyan)

	dst.DrawHLine(0, 1, dst.Width(), '─', platformcore.ColorGray)

	if g.noticeTTL > 0 {
		dst.DrawTextWithColor(0, 2, " "+g.notice, platformcore.ColorYellow)
	} else {
		dst.DrawTextWithColor(0, 2, " ←/→: Aim | Space: Fire | Click: Aim+Fire | P: Pause | R: Restart", platformcore.ColorGray)
	}

	dst.DrawHLine(0, 3, dst.Width(), '─', platformcore.ColorGray)
}

// renderField draws the play box, backdrop, danger line, aim guide and bubbles.
func (g *Game) renderField(dst *platformcore.Screen) {
	dst.DrawBox(g.box(), platformcore.ColorGray)
	if g.world == nil {
		return
	}

	g.renderBackdrop(dst, g.world.Level().Background)

	// Danger line
	_, dangerY := g.worldToScreen(core.V(0, core.DangerLineY))
	dst.DrawHLine(g.boxX+1, dangerY, fieldCols, '┈', platformcore.ColorRed)

	// Shooter base
	sx, sy := g.worldToScreen(core.V(core.ShooterX, core.ShooterY))
	if sy+1 < g.box().Inset(1).Bottom() {
		dst.DrawTextWithColor(sx-1, sy+1, "═╩═", platformcore.ColorWhite)
	}

	if g.display.ShowGuide {
		g.renderGuide(dst)
	}

	for _, b := range g.world.CurrentField() {
		x, y := g.worldToScreen(b.Pos)
		r := g.bubbleRune(b.Color)
		c := bubbleColor(b.Color)
		if b.Kind == core.KindBomb {
			r = '✸'
			c = platformcore.ColorWhite
		}
		dst.SetWithColor(x, y, r, c)
	}
}

// monoTheme is the theme name that switches bubbles to letters.
const monoTheme = "mono"

// backdropRunes maps background names to their pattern rune.
var backdropRunes = map[string]rune{
	"waves": '~',
	"coral": '⌇',
	"deep":  '·',
}

// renderBackdrop draws a sparse dim pattern behind the field.
func (g *Game) renderBackdrop(dst *platformcore.Screen, name string) {
	r, ok := backdropRunes[name]
	if !ok {
		return
	}
	for line := 0; line < fieldLines; line++ {
		for col := 0; col < fieldCols; col++ {
			if (col*3+line*5)%11 != 0 {
				continue
			}
			dst.SetWithColor(g.boxX+1+col, g.boxY+1+line, r, platformcore.ColorDim)
		}
	}
}

// renderGuide traces the path of the loaded bubble with a ghost projectile
// and marks the slot it would snap into. Bounces follow the real physics.
func (g *Game) renderGuide(dst *platformcore.Screen) {
	loaded := g.world.Loaded()
	if loaded == nil || g.world.InFlight() != nil {
		return
	}

	ghost := core.NewBubble(0, loaded.Color, loaded.Pos)
	if loaded.IsBomb() {
		ghost = core.NewBomb(0, loaded.Pos)
	}
	ghost.Launch(core.AimDirection(loaded.Pos, g.aimPoint()))

	lastX, lastY := g.worldToScreen(loaded.Pos)
	for i := 0; i < guideSteps; i++ {
		ghost.Advance(core.Width, core.Height)
		if g.world.Field().Touches(ghost) || ghost.Pos.Y <= 0 {
			slot := g.world.Grid().Snap(ghost.Pos)
			if !loaded.IsBomb() {
				slot, _ = g.world.Grid().SnapFree(ghost.Pos, g.world.Field().Holds)
			}
			x, y := g.worldToScreen(slot)
			dst.SetWithColor(x, y, '○', bubbleColor(loaded.Color))
			return
		}
		x, y := g.worldToScreen(ghost.Pos)
		if x == lastX && y == lastY {
			continue
		}
		lastX, lastY = x, y
		dst.SetWithColor(x, y, '∙', platformcore.ColorGray)
	}
}

// renderPanel draws level info, the next projectile and the color tally.
func (g *Game) renderPanel(dst *platformcore.Screen) {
	x := g.boxX + fieldCols + 4
	y := g.boxY
	if g.world == nil {
		return
	}
	lvl := g.world.Level()

	dst.DrawTextWithColor(x, y, "Level "+itoa(lvl.Index)+": "+lvl.Name, platformcore.ColorCyan)
	dst.DrawTextWithColor(x, y+1, "Colors: "+itoa(lvl.ColorCount)+"  Rule: "+lvl.MatchRule.String(), platformcore.ColorGray)

	dst.DrawTextWithColor(x, y+3, "Next:", platformcore.ColorWhite)
	if b := g.world.Loaded(); b != nil {
		if b.IsBomb() {
			dst.DrawTextWithColor(x+6, y+3, "✸ bomb", platformcore.ColorWhite)
		} else {
			dst.SetWithColor(x+6, y+3, g.bubbleRune(b.Color), bubbleColor(b.Color))
			dst.DrawTextWithColor(x+8, y+3, b.Color.String(), bubbleColor(b.Color))
		}
	}

	score := g.world.Score()
	nextBomb := (score/core.BombEvery+1)*core.BombEvery - score
	dst.DrawTextWithColor(x, y+4, "Bomb in: "+itoa(nextBomb)+" pts", platformcore.ColorGray)

	dst.DrawTextWithColor(x, y+6, "Remaining:", platformcore.ColorWhite)
	tally := g.world.Tally()
	line := y + 7
	for _, c := range lvl.Palette() {
		if line >= g.box().Bottom() {
			break
		}
		dst.SetWithColor(x, line, g.bubbleRune(c), bubbleColor(c))
		dst.DrawTextWithColor(x+2, line, padRight(c.String(), 7)+itoa(tally[c]), platformcore.ColorGray)
		line++
	}
}

// renderOverlay draws a centered message box.
func (g *Game) renderOverlay(dst *platformcore.Screen, line1, line2 string) {
	maxLen := len([]rune(line1))
	if n := len([]rune(line2)); n > maxLen {
		maxLen = n
	}
	box := platformcore.NewRect((dst.Width()-maxLen-4)/2, (dst.Height()-5)/2, maxLen+4, 5)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, platformcore.ColorWhite)
	g.drawCenteredText(dst, line1, box.Y+1, platformcore.ColorYellow)
	g.drawCenteredText(dst, line2, box.Y+3, platformcore.ColorWhite)
}

func (g *Game) drawCenteredText(dst *platformcore.Screen, text string, y int, c platformcore.Color) {
	x := (dst.Width() - len([]rune(text))) / 2
	dst.DrawTextWithColor(x, y, text, c)
}

// bubbleRune returns the glyph for a settled bubble. The mono theme shows
// letters since its shades are hard to tell apart.
func (g *Game) bubbleRune(c core.Color) rune {
	if g.display.Theme == monoTheme {
		return c.Char()
	}
	return '●'
}

// bubbleColor maps a bubble color to a screen color.
func bubbleColor(c core.Color) platformcore.Color {
	switch c {
	case core.ColorRed:
		return platformcore.ColorRed
	case core.ColorGreen:
		return platformcore.ColorGreen
	case core.ColorBlue:
		return platformcore.ColorBlue
	case core.ColorYellow:
		return platformcore.ColorYellow
	case core.ColorPink:
		return platformcore.ColorPink
	case core.ColorOrange:
		return platformcore.ColorOrange
	case core.ColorPurple:
		return platformcore.ColorPurple
	default:
		return platformcore.ColorWhite
	}
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 3 || len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
