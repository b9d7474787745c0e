package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/arcade-engine/internal/core"
	"github.com/vovakirdan/arcade-engine/internal/engine"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:      lipgloss.NewStyle(),
	core.ColorRed:          lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:        lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:         lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorWhite:        lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightCyan:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorBrightWhite:  lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:       lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// glyph is how an entity is painted.
type glyph struct {
	r     rune
	color core.Color
	label bool // Print Value on top of the fill
}

// tagGlyphs covers the variants' entity tags. Zero runes are not drawn.
var tagGlyphs = map[string]glyph{
	"paddle":   {'█', core.ColorBrightCyan, false},
	"cpu":      {'█', core.ColorBrightRed, false},
	"ball":     {'●', core.ColorBrightWhite, false},
	"brick":    {'▓', core.ColorOrange, false},
	"wall":     {'▒', core.ColorGray, false},
	"runner":   {'█', core.ColorBrightGreen, false},
	"obstacle": {'▲', core.ColorRed, false},
	"bird":     {'@', core.ColorBrightYellow, false},
	"pipe":     {'█', core.ColorGreen, false},
	"gate":     {0, core.ColorDefault, false},
	"head":     {'█', core.ColorBrightGreen, false},
	"body":     {'▓', core.ColorGreen, false},
	"food":     {'♦', core.ColorBrightRed, false},
	"card":     {'░', core.ColorBlue, true},
	"cursor":   {0, core.ColorBrightYellow, false},
	"tile":     {'░', core.ColorYellow, true},
}

// kindGlyphs is the fallback for tags without a glyph.
var kindGlyphs = map[engine.Kind]glyph{
	engine.KindPlayer:      {'█', core.ColorBrightCyan, false},
	engine.KindObstacle:    {'▓', core.ColorWhite, false},
	engine.KindCollectible: {'*', core.ColorBrightYellow, false},
	engine.KindProjectile:  {'●', core.ColorBrightWhite, false},
}

// DrawSnapshot paints a session snapshot onto the screen.
func DrawSnapshot(s *core.Screen, snap engine.Snapshot) {
	s.Clear()
	for _, ev := range snap.Entities {
		g, ok := tagGlyphs[ev.Tag]
		if !ok {
			g = kindGlyphs[ev.Kind]
		}
		if ev.Tag == "cursor" {
			drawOutline(s, ev.Box, g.color)
			continue
		}
		if g.r == 0 {
			continue
		}
		s.FillBox(ev.Box, g.r, g.color)
		if g.label {
			drawLabel(s, ev)
		}
	}
}

// drawOutline frames a game-space box with box-drawing characters.
func drawOutline(s *core.Screen, b core.Box, c core.Color) {
	x0, y0 := s.ToCell(core.V(b.Left(), b.Top()))
	x1, y1 := s.ToCell(core.V(b.Right(), b.Bottom()))
	if x1-x0 < 1 || y1-y0 < 1 {
		cx, cy := s.ToCell(b.Center)
		s.Set(cx, cy, '+', c)
		return
	}
	s.DrawBox(x0, y0, x1-x0+1, y1-y0+1, c)
}

// drawLabel prints a tile value or a face-up card symbol at the box center.
func drawLabel(s *core.Screen, ev engine.EntityView) {
	text := "?"
	if !ev.Hidden {
		if ev.Tag == "card" {
			text = string(rune('A' + ev.Value%26))
		} else {
			text = strconv.Itoa(ev.Value)
		}
	}
	cx, cy := s.ToCell(ev.Box.Center)
	s.DrawText(cx-len(text)/2, cy, text, core.ColorBrightWhite)
}

// toGamePoint maps a cell back to the game-space point at its center.
func toGamePoint(s *core.Screen, x, y int) core.Vec {
	if s.Width() == 0 || s.Height() == 0 {
		return core.Vec{}
	}
	return core.V(
		(float64(x)+0.5)/float64(s.Width())*core.FieldSize,
		(float64(y)+0.5)/float64(s.Height())*core.FieldSize,
	)
}

var (
	hudStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	hudDimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	wonStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	lostStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	bannerBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2)
)

// RenderHUD renders the one-line status bar above the field.
func RenderHUD(snap engine.Snapshot, balance int) string {
	left := fmt.Sprintf("%s  L%d/%d  score %d", snap.Title, snap.Level, snap.MaxLevel, snap.Score)
	if snap.Target > 0 {
		left += fmt.Sprintf("/%d", snap.Target)
	}
	right := fmt.Sprintf("budget %d  moves %d  tokens %d", snap.Budget, snap.Moves, balance)
	if snap.State == engine.StatePaused {
		right = "PAUSED  " + right
	}
	return hudStyle.Render(left) + "  " + hudDimStyle.Render(right)
}

// RenderOutcome renders the settlement banner.
func RenderOutcome(out engine.RewardOutcome) string {
	var b strings.Builder
	if out.Verdict == engine.StateWon {
		b.WriteString(wonStyle.Render("LEVEL CLEARED"))
	} else {
		b.WriteString(lostStyle.Render("GAME OVER"))
	}
	fmt.Fprintf(&b, "\nscore %d  level %d", out.Score, out.Level)
	switch {
	case !out.Applied:
		fmt.Fprintf(&b, "\n%d tokens pending (grant failed)", out.TokensDelta)
	case !out.Recorded:
		if out.TokensDelta > 0 {
			fmt.Fprintf(&b, "\n+%d tokens", out.TokensDelta)
		}
		b.WriteString("\nnot saved to history")
	case out.TokensDelta > 0:
		fmt.Fprintf(&b, "\n+%d tokens", out.TokensDelta)
	}
	return bannerBorder.Render(b.String())
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
