package session

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/paulmach/orb"

	"github.com/olivierh59500/rps-swarm/internal/sim"
)

type recorder struct {
	frames []uint64
	last   sim.Counts
}

func (r *recorder) Observe(frame uint64, counts sim.Counts) {
	r.frames = append(r.frames, frame)
	r.last = counts
}

func newController(population int) *Controller {
	factory := func(population int, bounds orb.Bound) *sim.Engine {
		return sim.New(population, bounds, sim.WithJitter(sim.NoJitter{}))
	}
	return New(population, factory, log.New(io.Discard))
}

func TestStartsInMenu(t *testing.T) {
	c := New(DefaultPopulation, nil, nil)
	m, ok := c.State().(Menu)
	if !ok {
		t.Fatalf("expected Menu state, got %T", c.State())
	}
	if m.Population != 50 {
		t.Fatalf("expected population 50, got %d", m.Population)
	}
}

func TestPopulationIsClamped(t *testing.T) {
	c := newController(0)
	if got := c.Population(); got != MinPopulation {
		t.Fatalf("expected %d, got %d", MinPopulation, got)
	}
	if got := c.SetPopulation(20000); got != MaxPopulation {
		t.Fatalf("expected %d, got %d", MaxPopulation, got)
	}
	if got := c.AdjustPopulation(-9990); got != 10 {
		t.Fatalf("expected 10, got %d", got)
	}
	if got := c.AdjustPopulation(-100); got != MinPopulation {
		t.Fatalf("expected %d, got %d", MinPopulation, got)
	}
}

func TestBeginAndDisconnect(t *testing.T) {
	c := newController(120)
	bounds := sim.Viewport(640, 480)

	if !c.Begin(bounds) {
		t.Fatal("expected Begin to start the simulation")
	}
	s, ok := c.State().(*Simulating)
	if !ok {
		t.Fatalf("expected Simulating state, got %T", c.State())
	}
	if s.Engine.Len() != 120 {
		t.Fatalf("expected 120 agents, got %d", s.Engine.Len())
	}
	for _, a := range s.Engine.Agents() {
		if !bounds.Contains(a.Position) {
			t.Fatalf("agent placed outside viewport at %v", a.Position)
		}
	}

	if c.Begin(bounds) {
		t.Fatal("expected Begin to be ignored while simulating")
	}
	if got := c.SetPopulation(5); got != 120 {
		t.Fatalf("expected population to be frozen while simulating, got %d", got)
	}

	c.Frame(0.016, sim.Input{Spawns: []sim.Spawn{{Team: sim.Rock, Position: orb.Point{1, 1}}}})
	if s.Engine.Len() != 121 {
		t.Fatalf("expected spawn to reach the engine, got %d agents", s.Engine.Len())
	}

	if !c.Disconnect() {
		t.Fatal("expected Disconnect to return to menu")
	}
	m, ok := c.State().(Menu)
	if !ok || m.Population != 120 {
		t.Fatalf("expected Menu{120}, got %#v", c.State())
	}
	if c.Disconnect() {
		t.Fatal("expected Disconnect to be ignored in menu")
	}
}

func TestLeaveInputReturnsToMenu(t *testing.T) {
	c := newController(10)
	c.Begin(sim.Viewport(100, 100))

	c.Frame(0.016, sim.Input{Leave: true})
	if m, ok := c.State().(Menu); !ok || m.Population != 10 {
		t.Fatalf("expected Menu{10}, got %#v", c.State())
	}
}

func TestFrameInMenuIsNoop(t *testing.T) {
	c := newController(10)
	rec := &recorder{}
	c.SetObserver(rec)

	c.Frame(0.016, sim.Input{})
	if _, ok := c.State().(Menu); !ok {
		t.Fatalf("expected to stay in menu, got %T", c.State())
	}
	if len(rec.frames) != 0 {
		t.Fatalf("expected no observations in menu, got %d", len(rec.frames))
	}
}

func TestObserverSeesEveryFrame(t *testing.T) {
	c := newController(30)
	rec := &recorder{}
	c.SetObserver(rec)
	c.Begin(sim.Viewport(200, 200))

	for i := 0; i < 3; i++ {
		c.Frame(0.016, sim.Input{})
	}
	if len(rec.frames) != 3 || rec.frames[2] != 3 {
		t.Fatalf("expected frames [1 2 3], got %v", rec.frames)
	}
	if rec.last.Total() != 30 {
		t.Fatalf("expected counts to total 30, got %+v", rec.last)
	}
}
