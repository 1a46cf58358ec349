package sim

import (
	"math/rand"
	"testing"
)

func TestDominanceCycle(t *testing.T) {
	cases := []struct {
		team, beats Team
	}{
		{Rock, Scissor},
		{Scissor, Paper},
		{Paper, Rock},
	}
	for _, c := range cases {
		if got := c.team.Defeats(); got != c.beats {
			t.Fatalf("expected %v to defeat %v, got %v", c.team, c.beats, got)
		}
		if !c.team.Beats(c.beats) || c.beats.Beats(c.team) {
			t.Fatalf("expected %v > %v and not the reverse", c.team, c.beats)
		}
	}
}

func TestRuleCanConvert(t *testing.T) {
	for _, team := range Teams {
		if Dominance.CanConvert(team, team) || AnyOpponent.CanConvert(team, team) {
			t.Fatalf("expected %v never to convert its own team", team)
		}
	}
	if Dominance.CanConvert(Rock, Paper) {
		t.Fatal("expected rock unable to convert paper under dominance")
	}
	if !AnyOpponent.CanConvert(Rock, Paper) {
		t.Fatal("expected rock able to convert paper under any-opponent")
	}
}

func TestParseRule(t *testing.T) {
	if r, err := ParseRule("any"); err != nil || r != AnyOpponent {
		t.Fatalf("expected AnyOpponent, got %v (%v)", r, err)
	}
	if r, err := ParseRule("Dominance"); err != nil || r != Dominance {
		t.Fatalf("expected Dominance, got %v (%v)", r, err)
	}
	if r, err := ParseRule(""); err != nil || r != AnyOpponent {
		t.Fatalf("expected empty name to select AnyOpponent, got %v (%v)", r, err)
	}
	if _, err := ParseRule("lizard"); err == nil {
		t.Fatal("expected error for unknown rule")
	}
}

func TestRandomTeamCoversAllTeams(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	var c Counts
	for i := 0; i < 300; i++ {
		c.add(RandomTeam(rng))
	}
	for _, team := range Teams {
		if c.Of(team) == 0 {
			t.Fatalf("expected %v to be drawn at least once, counts %+v", team, c)
		}
	}
}
