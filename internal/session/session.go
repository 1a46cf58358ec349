// Package session holds the two-state outer loop: a menu that edits the
// starting population and the running simulation.
package session

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/paulmach/orb"

	"github.com/olivierh59500/rps-swarm/internal/sim"
)

// Population limits
const (
	DefaultPopulation = 50
	MinPopulation     = 1
	MaxPopulation     = 10000
)

// State is either Menu or Simulating.
type State interface {
	state()
}

// Menu waits for the user to pick a population and begin.
type Menu struct {
	Population int
}

// Simulating runs an engine. Population is the value the menu held when the
// simulation began and is restored on disconnect.
type Simulating struct {
	Engine     *sim.Engine
	Population int
}

func (Menu) state()        {}
func (*Simulating) state() {}

// Observer receives per-frame team counts while a simulation runs.
type Observer interface {
	Observe(frame uint64, counts sim.Counts)
}

// EngineFactory builds an engine for a new simulation.
type EngineFactory func(population int, bounds orb.Bound) *sim.Engine

// Controller owns the current State and performs every transition.
type Controller struct {
	state     State
	newEngine EngineFactory
	observer  Observer
	logger    *log.Logger
}

// New returns a controller sitting in the menu with the given population,
// clamped to [MinPopulation, MaxPopulation].
func New(population int, newEngine EngineFactory, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if newEngine == nil {
		newEngine = func(population int, bounds orb.Bound) *sim.Engine {
			return sim.New(population, bounds)
		}
	}
	return &Controller{
		state:     Menu{Population: ClampPopulation(population)},
		newEngine: newEngine,
		logger:    logger,
	}
}

// SetObserver registers o to receive counts after every simulated frame.
func (c *Controller) SetObserver(o Observer) {
	c.observer = o
}

func (c *Controller) State() State {
	return c.state
}

// Population returns the menu value, or the value the running simulation
// started with.
func (c *Controller) Population() int {
	switch s := c.state.(type) {
	case Menu:
		return s.Population
	case *Simulating:
		return s.Population
	}
	return DefaultPopulation
}

// SetPopulation edits the menu value and returns the clamped result. It has
// no effect while simulating.
func (c *Controller) SetPopulation(n int) int {
	m, ok := c.state.(Menu)
	if !ok {
		return c.Population()
	}
	m.Population = ClampPopulation(n)
	c.state = m
	return m.Population
}

// AdjustPopulation shifts the menu value by delta.
func (c *Controller) AdjustPopulation(delta int) int {
	return c.SetPopulation(c.Population() + delta)
}

// Begin leaves the menu and starts a simulation inside bounds. It reports
// whether a transition happened.
func (c *Controller) Begin(bounds orb.Bound) bool {
	m, ok := c.state.(Menu)
	if !ok {
		return false
	}
	c.state = &Simulating{
		Engine:     c.newEngine(m.Population, bounds),
		Population: m.Population,
	}
	c.logger.Info("simulation started", "population", m.Population,
		"width", bounds.Max[0]-bounds.Min[0], "height", bounds.Max[1]-bounds.Min[1])
	return true
}

// Disconnect drops the running engine and returns to the menu. It reports
// whether a transition happened.
func (c *Controller) Disconnect() bool {
	s, ok := c.state.(*Simulating)
	if !ok {
		return false
	}
	c.logger.Info("returning to menu", "frames", s.Engine.Frame(), "agents", s.Engine.Len())
	c.state = Menu{Population: s.Population}
	return true
}

// Frame advances the active state by dt seconds. In the menu it does
// nothing.
func (c *Controller) Frame(dt float64, in sim.Input) {
	s, ok := c.state.(*Simulating)
	if !ok {
		return
	}
	out := s.Engine.Step(dt, in)
	if c.observer != nil {
		c.observer.Observe(s.Engine.Frame(), s.Engine.Counts())
	}
	if out == sim.ExitToMenu {
		c.Disconnect()
	}
}

// ClampPopulation limits n to [MinPopulation, MaxPopulation].
func ClampPopulation(n int) int {
	return max(MinPopulation, min(MaxPopulation, n))
}
