package main

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/paulmach/orb"

	"github.com/olivierh59500/rps-swarm/internal/session"
	"github.com/olivierh59500/rps-swarm/internal/sim"
)

// Key repeat timing in ticks for the population editor
const (
	repeatDelay    = 30
	repeatInterval = 4
)

// spawnKeys lists the keys that drop an agent at the cursor, in the order
// their spawns are appended when several fire in one tick.
var spawnKeys = []struct {
	key  ebiten.Key
	team sim.Team
}{
	{ebiten.KeyR, sim.Rock},
	{ebiten.KeyP, sim.Paper},
	{ebiten.KeyS, sim.Scissor},
}

// Game adapts the session controller to Ebitengine.
type Game struct {
	ctl           *session.Controller
	width, height int
	lastFrame     time.Time
}

func NewGame(ctl *session.Controller, width, height int) *Game {
	return &Game{
		ctl:       ctl,
		width:     width,
		height:    height,
		lastFrame: time.Now(),
	}
}

// Update is called each tick by Ebitengine
func (g *Game) Update() error {
	now := time.Now()
	dt := now.Sub(g.lastFrame).Seconds()
	g.lastFrame = now

	switch g.ctl.State().(type) {
	case session.Menu:
		g.updateMenu()
	case *session.Simulating:
		g.ctl.Frame(dt, g.simInput())
	}
	return nil
}

// Layout tracks the window size; the simulation viewport follows it.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

func (g *Game) viewport() orb.Bound {
	return sim.Viewport(float64(g.width), float64(g.height))
}

// updateMenu edits the population and starts the simulation.
func (g *Game) updateMenu() {
	step := 1
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		step = 100
	}
	switch {
	case repeating(ebiten.KeyArrowUp), repeating(ebiten.KeyArrowRight):
		g.ctl.AdjustPopulation(step)
	case repeating(ebiten.KeyArrowDown), repeating(ebiten.KeyArrowLeft):
		g.ctl.AdjustPopulation(-step)
	case repeating(ebiten.KeyPageUp):
		g.ctl.AdjustPopulation(1000)
	case repeating(ebiten.KeyPageDown):
		g.ctl.AdjustPopulation(-1000)
	}

	if _, wheelY := ebiten.Wheel(); wheelY != 0 {
		delta := 10
		if wheelY < 0 {
			delta = -delta
		}
		g.ctl.AdjustPopulation(delta)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.ctl.Begin(g.viewport())
		// Time spent in the menu is not simulated.
		g.lastFrame = time.Now()
	}
}

// simInput collects this frame's spawn requests and the disconnect key.
func (g *Game) simInput() sim.Input {
	in := sim.Input{
		Bounds: g.viewport(),
		Leave:  inpututil.IsKeyJustPressed(ebiten.KeyEscape),
	}

	mx, my := ebiten.CursorPosition()
	in.Spawns = spawnsAt(orb.Point{float64(mx), float64(my)}, inpututil.IsKeyJustPressed)
	return in
}

// spawnsAt returns one spawn at cursor for every spawn key pressed reports.
func spawnsAt(cursor orb.Point, pressed func(ebiten.Key) bool) []sim.Spawn {
	var spawns []sim.Spawn
	for _, k := range spawnKeys {
		if pressed(k.key) {
			spawns = append(spawns, sim.Spawn{Team: k.team, Position: cursor})
		}
	}
	return spawns
}

// repeating reports a key press on the first tick and then at a fixed rate
// while the key is held.
func repeating(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	return d == 1 || (d >= repeatDelay && (d-repeatDelay)%repeatInterval == 0)
}
