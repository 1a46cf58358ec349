package sim

import (
	"io"
	"math"
	"math/rand"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Simulation constants
const (
	AttackRange      = 20.0 // Pursuers stop steering once this close
	PursuitSpeed     = 30.0 // Units per second towards the target
	ContactRange     = 30.0 // Conversion happens inside this distance
	SeparationRadius = 40.0 // Same-team agents closer than this push apart
	SeparationSpeed  = 20.0 // Units per second per close neighbour
)

// Outcome tells the caller what to do after a step.
type Outcome int

const (
	Continue Outcome = iota
	ExitToMenu
)

// Spawn asks for a new agent of Team at Position.
type Spawn struct {
	Team     Team
	Position orb.Point
}

// Input is everything a step consumes besides the elapsed time.
type Input struct {
	// Bounds is the current viewport. The zero value keeps the previous one.
	Bounds orb.Bound
	Spawns []Spawn
	// Leave asks to return to the menu after this step.
	Leave bool
}

// Engine owns the population and advances it one frame at a time. It is not
// safe for concurrent use.
type Engine struct {
	agents   []Agent
	snapshot []Agent
	bounds   orb.Bound
	frame    uint64

	rule   Rule
	jitter Jitter
	now    func() time.Time
	rng    *rand.Rand
	logger *log.Logger

	bins    *bins
	pending map[int]Team
	near    []int
}

// Option configures an Engine.
type Option func(*Engine)

func WithRule(r Rule) Option {
	return func(e *Engine) { e.rule = r }
}

func WithJitter(j Jitter) Option {
	return func(e *Engine) { e.jitter = j }
}

// WithClock replaces time.Now as the engine's time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithRand sets the generator used for initial placement, team draws and the
// default jitter.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New creates an engine with population agents of random team placed
// uniformly inside bounds.
func New(population int, bounds orb.Bound, opts ...Option) *Engine {
	e := &Engine{
		bounds:  bounds,
		rule:    AnyOpponent,
		now:     time.Now,
		bins:    newBins(),
		pending: make(map[int]Team),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if e.jitter == nil {
		e.jitter = NewUniformJitter(e.rng)
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}

	if population < 0 {
		population = 0
	}
	now := e.now()
	e.agents = make([]Agent, 0, population)
	for i := 0; i < population; i++ {
		pos := orb.Point{
			bounds.Min[0] + e.rng.Float64()*(bounds.Max[0]-bounds.Min[0]),
			bounds.Min[1] + e.rng.Float64()*(bounds.Max[1]-bounds.Min[1]),
		}
		e.agents = append(e.agents, NewAgent(RandomTeam(e.rng), pos, now))
	}
	return e
}

// Step advances the population by dt seconds.
//
// Every decision in the step is taken against a copy of the population made
// when the step starts. Agents move themselves immediately; conversions are
// collected and applied once every agent has been updated, then spawns are
// appended.
func (e *Engine) Step(dt float64, in Input) Outcome {
	if in.Bounds != (orb.Bound{}) {
		e.bounds = in.Bounds
	}
	now := e.now()

	e.snapshot = append(e.snapshot[:0], e.agents...)
	e.bins.build(e.snapshot)
	clear(e.pending)

	for i := range e.agents {
		e.update(i, dt, now)
	}
	e.applyConversions(now)

	for _, s := range in.Spawns {
		pos := clamp(s.Position, e.bounds)
		e.agents = append(e.agents, NewAgent(s.Team, pos, now))
		e.logger.Debug("spawned agent", "team", s.Team, "x", pos[0], "y", pos[1])
	}

	e.frame++
	if in.Leave {
		return ExitToMenu
	}
	return Continue
}

func (e *Engine) update(i int, dt float64, now time.Time) {
	a := &e.agents[i]

	// Random movement
	a.Position = clamp(add(a.Position, e.jitter.Offset(i, e.frame)), e.bounds)

	if !a.HasTarget() {
		a.Target = e.nearest(a.Position, a.Team, now)
	}
	if a.HasTarget() {
		e.pursue(a, dt, now)
	}

	e.separate(i, a, dt)
	a.Position = clamp(a.Position, e.bounds)
}

// nearest returns the snapshot index of the closest agent that team may
// convert and whose cooldown has expired, or NoTarget. Ties go to the lowest
// index.
func (e *Engine) nearest(from orb.Point, team Team, now time.Time) int {
	best, bestDist := NoTarget, 0.0
	for j, other := range e.snapshot {
		if !e.rule.CanConvert(team, other.Team) || !other.Convertible(now) {
			continue
		}
		d := planar.Distance(from, other.Position)
		if best == NoTarget || d < bestDist {
			best, bestDist = j, d
		}
	}
	return best
}

// pursue steers a towards its target and records a conversion on contact.
func (e *Engine) pursue(a *Agent, dt float64, now time.Time) {
	if a.Target < 0 || a.Target >= len(e.snapshot) {
		a.Target = NoTarget
		return
	}
	victim := e.snapshot[a.Target]
	if !e.rule.CanConvert(a.Team, victim.Team) {
		a.Target = NoTarget
		return
	}

	toVictim := sub(victim.Position, a.Position)
	dist := length(toVictim)
	if dist <= AttackRange {
		return
	}
	a.Position = add(a.Position, scale(toVictim, PursuitSpeed*dt/dist))

	if planar.DistanceSquared(a.Position, victim.Position) < ContactRange*ContactRange &&
		victim.Convertible(now) {
		e.pending[a.Target] = a.Team
		a.Target = NoTarget
	}
}

// separate pushes a away from every close snapshot agent of its own team.
//
// Each push can move a by at most dt*SeparationSpeed*√2, so with n candidates
// the agent stays within n pushes of where it started. The search radius
// grows until it covers SeparationRadius plus that drift, which makes the
// candidate set hold every agent that can come within range during the scan.
func (e *Engine) separate(i int, a *Agent, dt float64) {
	push := math.Abs(dt) * SeparationSpeed * math.Sqrt2
	start := a.Position
	reach := SeparationRadius
	for {
		e.near = e.near[:0]
		e.bins.within(start, reach, func(j int) {
			other := e.snapshot[j]
			if j != i && other.Team == a.Team && planar.Distance(start, other.Position) <= reach {
				e.near = append(e.near, j)
			}
		})
		need := SeparationRadius + float64(len(e.near))*push
		if need <= reach {
			break
		}
		reach = need
	}
	// Pushes accumulate, so neighbours are visited in snapshot order.
	slices.Sort(e.near)

	for _, j := range e.near {
		other := e.snapshot[j].Position
		if planar.Distance(a.Position, other) >= SeparationRadius {
			continue
		}
		away, ok := unit(sub(a.Position, other))
		if !ok {
			away = orb.Point{1, 1}
		}
		a.Position = add(a.Position, scale(away, dt*SeparationSpeed))
	}
}

// applyConversions writes the pending team changes. When several attackers
// hit the same victim in one step the last recorded team wins.
func (e *Engine) applyConversions(now time.Time) {
	if len(e.pending) == 0 {
		return
	}
	for idx, team := range e.pending {
		a := &e.agents[idx]
		a.Team = team
		a.LastSwitch = now
		a.Target = NoTarget
	}

	// Drop targets that stopped being convertible because of this step.
	for i := range e.agents {
		a := &e.agents[i]
		if a.HasTarget() && !e.rule.CanConvert(a.Team, e.agents[a.Target].Team) {
			a.Target = NoTarget
		}
	}
	e.logger.Debug("applied conversions", "frame", e.frame, "count", len(e.pending))
}

// Agents returns a copy of the current population.
func (e *Engine) Agents() []Agent {
	return slices.Clone(e.agents)
}

// Len returns the population size.
func (e *Engine) Len() int {
	return len(e.agents)
}

// Counts tallies the population per team.
func (e *Engine) Counts() Counts {
	var c Counts
	for _, a := range e.agents {
		c.add(a.Team)
	}
	return c
}

func (e *Engine) Bounds() orb.Bound {
	return e.bounds
}

// Frame returns the number of steps taken so far.
func (e *Engine) Frame() uint64 {
	return e.frame
}
