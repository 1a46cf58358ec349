package sim

import (
	"time"

	"github.com/paulmach/orb"
)

// Cooldown is how long a freshly switched agent is protected from being
// converted again.
const Cooldown = 150 * time.Millisecond

// NoTarget marks an agent that is not pursuing anyone.
const NoTarget = -1

// Agent is a single member of the population.
type Agent struct {
	Team     Team
	Position orb.Point
	// Target indexes the agent being pursued, or NoTarget. The index is only
	// trusted for the step it was read in and is revalidated every step.
	Target     int
	LastSwitch time.Time
}

// NewAgent returns an idle agent whose cooldown starts at now.
func NewAgent(team Team, pos orb.Point, now time.Time) Agent {
	return Agent{
		Team:       team,
		Position:   pos,
		Target:     NoTarget,
		LastSwitch: now,
	}
}

func (a Agent) HasTarget() bool {
	return a.Target != NoTarget
}

// Convertible reports whether the agent's cooldown has expired at now.
func (a Agent) Convertible(now time.Time) bool {
	return now.Sub(a.LastSwitch) > Cooldown
}
