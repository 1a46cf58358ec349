package main

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/paulmach/orb"

	"github.com/olivierh59500/rps-swarm/internal/sim"
)

func TestSpawnsFollowKeyOrder(t *testing.T) {
	cursor := orb.Point{12, 34}
	all := func(ebiten.Key) bool { return true }

	for i := 0; i < 20; i++ {
		spawns := spawnsAt(cursor, all)
		if len(spawns) != 3 {
			t.Fatalf("expected 3 spawns, got %d", len(spawns))
		}
		for j, want := range []sim.Team{sim.Rock, sim.Paper, sim.Scissor} {
			if spawns[j].Team != want || spawns[j].Position != cursor {
				t.Fatalf("spawn %d: expected %v at %v, got %+v", j, want, cursor, spawns[j])
			}
		}
	}
}

func TestSpawnsOnlyForPressedKeys(t *testing.T) {
	onlyS := func(k ebiten.Key) bool { return k == ebiten.KeyS }

	spawns := spawnsAt(orb.Point{1, 2}, onlyS)
	if len(spawns) != 1 || spawns[0].Team != sim.Scissor {
		t.Fatalf("expected a single scissor spawn, got %+v", spawns)
	}
	if got := spawnsAt(orb.Point{}, func(ebiten.Key) bool { return false }); len(got) != 0 {
		t.Fatalf("expected no spawns, got %+v", got)
	}
}
