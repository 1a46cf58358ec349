package main

import (
	"context"
	"errors"
	"flag"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/paulmach/orb"

	"github.com/olivierh59500/rps-swarm/internal/config"
	"github.com/olivierh59500/rps-swarm/internal/observe"
	"github.com/olivierh59500/rps-swarm/internal/session"
	"github.com/olivierh59500/rps-swarm/internal/sim"
)

func main() {
	cfg := config.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "rps",
	})
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", "err", err)
	}
	logger.SetLevel(cfg.Level())

	// Validate already rejected unknown names.
	rule, _ := sim.ParseRule(cfg.Rule)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	newEngine := func(population int, bounds orb.Bound) *sim.Engine {
		jitter, _ := sim.NewJitter(cfg.Jitter, rng)
		return sim.New(population, bounds,
			sim.WithRule(rule),
			sim.WithJitter(jitter),
			sim.WithRand(rng),
			sim.WithLogger(logger.WithPrefix("sim")),
		)
	}
	ctl := session.New(cfg.Population, newEngine, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.Observe != "" {
		hub := observe.NewHub(logger.WithPrefix("observe"))
		ctl.SetObserver(hub)
		go func() {
			if err := observe.Serve(ctx, cfg.Observe, hub); err != nil {
				logger.Error("observer feed stopped", "err", err)
			}
		}()
	}

	// Set up Ebitengine game
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle("Rock-Paper-Scissors")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TPS)

	// Run the game loop
	if err := ebiten.RunGame(NewGame(ctl, cfg.Width, cfg.Height)); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal("game loop failed", "err", err)
	}
}
