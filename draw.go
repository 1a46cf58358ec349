package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/olivierh59500/rps-swarm/internal/session"
	"github.com/olivierh59500/rps-swarm/internal/sim"
)

const (
	AgentRadius = 5.0
	lineHeight  = 16
)

var (
	background = color.RGBA{16, 16, 24, 255}
	textColor  = color.RGBA{230, 230, 230, 255}
	face       = text.NewGoXFace(basicfont.Face7x13)
)

// Draw is called each frame by Ebitengine
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	switch s := g.ctl.State().(type) {
	case session.Menu:
		g.drawMenu(screen, s)
	case *session.Simulating:
		drawAgents(screen, s.Engine.Agents())
		drawHUD(screen, s.Engine.Counts())
	}
}

func menuLines(m session.Menu) []string {
	return []string{
		"Rock-Paper-Scissors",
		"",
		fmt.Sprintf("Population: %d", m.Population),
		"",
		"Up/Down: +-1   Shift: +-100   PgUp/PgDn: +-1000   Wheel: +-10",
		"Enter: begin simulation",
	}
}

// hudLines starts with one line per team, in sim.Teams order.
func hudLines(c sim.Counts) []string {
	lines := make([]string, 0, len(sim.Teams)+2)
	for _, t := range sim.Teams {
		lines = append(lines, fmt.Sprintf("%s: %d", teamLabel(t), c.Of(t)))
	}
	return append(lines,
		fmt.Sprintf("Total: %d", c.Total()),
		"R/P/S: spawn at cursor   Esc: disconnect",
	)
}

func teamLabel(t sim.Team) string {
	switch t {
	case sim.Rock:
		return "Rock"
	case sim.Paper:
		return "Paper"
	case sim.Scissor:
		return "Scissor"
	}
	return t.String()
}

func drawText(screen *ebiten.Image, line string, x, y int, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, line, face, op)
}

func (g *Game) drawMenu(screen *ebiten.Image, m session.Menu) {
	lines := menuLines(m)
	x := g.width/2 - 200
	y := g.height/2 - len(lines)*lineHeight/2
	for i, line := range lines {
		drawText(screen, line, x, y+i*lineHeight, textColor)
	}
}

func drawAgents(screen *ebiten.Image, agents []sim.Agent) {
	for _, a := range agents {
		vector.DrawFilledCircle(screen, float32(a.Position[0]), float32(a.Position[1]), AgentRadius, teamColor(a.Team), true)
	}
}

func drawHUD(screen *ebiten.Image, c sim.Counts) {
	for i, line := range hudLines(c) {
		clr := color.Color(textColor)
		if i < len(sim.Teams) {
			clr = teamColor(sim.Teams[i])
		}
		drawText(screen, line, 8, 4+i*lineHeight, clr)
	}
}

// teamColor spreads the teams evenly around the hue circle.
func teamColor(t sim.Team) color.RGBA {
	h := float64(t) / float64(len(sim.Teams)) * 360
	r, g, b := hsvToRGB(h, 0.8, 1)
	return color.RGBA{uint8(math.Round(r * 255)), uint8(math.Round(g * 255)), uint8(math.Round(b * 255)), 255}
}

// hsvToRGB converts hue in degrees, saturation and value in [0,1] to RGB
// components in [0,1]. Each channel is read off the hue wheel at its own
// offset: red at 5, green at 3, blue at 1 sextant.
func hsvToRGB(h, s, v float64) (r, g, b float64) {
	channel := func(offset float64) float64 {
		k := math.Mod(offset+h/60, 6)
		if k < 0 {
			k += 6
		}
		return v - v*s*math.Max(0, math.Min(1, math.Min(k, 4-k)))
	}
	return channel(5), channel(3), channel(1)
}
