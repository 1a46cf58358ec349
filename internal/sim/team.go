package sim

import (
	"fmt"
	"math/rand"
	"strings"
)

// Team is one of the three cyclic factions.
type Team int

const (
	Rock Team = iota
	Paper
	Scissor
)

// Teams lists every team in declaration order.
var Teams = [...]Team{Rock, Paper, Scissor}

func (t Team) String() string {
	switch t {
	case Rock:
		return "rock"
	case Paper:
		return "paper"
	case Scissor:
		return "scissor"
	}
	return fmt.Sprintf("team(%d)", int(t))
}

// Defeats returns the team that t beats: Rock beats Scissor, Scissor beats
// Paper and Paper beats Rock.
func (t Team) Defeats() Team {
	switch t {
	case Rock:
		return Scissor
	case Paper:
		return Rock
	default:
		return Paper
	}
}

// Beats reports whether t defeats other.
func (t Team) Beats(other Team) bool {
	return t.Defeats() == other
}

// RandomTeam draws a team uniformly.
func RandomTeam(rng *rand.Rand) Team {
	return Teams[rng.Intn(len(Teams))]
}

// Rule decides which teams an agent may pursue and convert.
type Rule int

const (
	// AnyOpponent allows converting any other team.
	AnyOpponent Rule = iota
	// Dominance only allows converting the team the attacker defeats.
	Dominance
)

// CanConvert reports whether an agent of team attacker may convert an agent
// of team victim. An agent is never convertible by its own team.
func (r Rule) CanConvert(attacker, victim Team) bool {
	if attacker == victim {
		return false
	}
	if r == AnyOpponent {
		return true
	}
	return attacker.Beats(victim)
}

func (r Rule) String() string {
	if r == Dominance {
		return "dominance"
	}
	return "any"
}

// ParseRule maps a rule name to its Rule.
func ParseRule(name string) (Rule, error) {
	switch strings.ToLower(name) {
	case "", "any":
		return AnyOpponent, nil
	case "dominance":
		return Dominance, nil
	}
	return AnyOpponent, fmt.Errorf("unknown rule %q", name)
}

// Counts holds the number of agents per team.
type Counts struct {
	Rock, Paper, Scissor int
}

// Of returns the count for team t.
func (c Counts) Of(t Team) int {
	switch t {
	case Rock:
		return c.Rock
	case Paper:
		return c.Paper
	case Scissor:
		return c.Scissor
	}
	return 0
}

func (c Counts) Total() int {
	return c.Rock + c.Paper + c.Scissor
}

func (c *Counts) add(t Team) {
	switch t {
	case Rock:
		c.Rock++
	case Paper:
		c.Paper++
	case Scissor:
		c.Scissor++
	}
}
