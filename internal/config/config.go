// Package config collects the command-line settings of the simulator.
package config

import (
	"errors"
	"flag"
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/olivierh59500/rps-swarm/internal/session"
	"github.com/olivierh59500/rps-swarm/internal/sim"
)

// Config holds window, simulation and observer settings.
type Config struct {
	Width      int
	Height     int
	TPS        int
	Population int
	Jitter     string
	Rule       string
	Observe    string
	LogLevel   string
}

// NewConfig returns the defaults.
func NewConfig() *Config {
	return &Config{
		Width:      800,
		Height:     600,
		TPS:        60,
		Population: session.DefaultPopulation,
		Jitter:     "uniform",
		Rule:       "any",
		LogLevel:   "info",
	}
}

// Bind registers every field on fs.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, "initial window width")
	fs.IntVar(&c.Height, "height", c.Height, "initial window height")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.IntVar(&c.Population, "population", c.Population, "initial menu population (1-10000)")
	fs.StringVar(&c.Jitter, "jitter", c.Jitter, "per-frame jitter: uniform, noise or none")
	fs.StringVar(&c.Rule, "rule", c.Rule, "conversion rule: any or dominance")
	fs.StringVar(&c.Observe, "observe", c.Observe, "listen address for the websocket observer feed (empty disables)")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level: debug, info, warn or error")
}

// Validate checks every field and returns all problems found.
func (c *Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Width, c.Height))
	}
	if c.TPS <= 0 {
		errs = append(errs, fmt.Errorf("tps must be positive, got %d", c.TPS))
	}
	if c.Population < session.MinPopulation || c.Population > session.MaxPopulation {
		errs = append(errs, fmt.Errorf("population must be in [%d,%d], got %d",
			session.MinPopulation, session.MaxPopulation, c.Population))
	}
	if _, err := sim.NewJitter(c.Jitter, rand.New(rand.NewSource(1))); err != nil {
		errs = append(errs, err)
	}
	if _, err := sim.ParseRule(c.Rule); err != nil {
		errs = append(errs, err)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log level: %w", err))
	}
	return errors.Join(errs...)
}

// Level returns the parsed log level, falling back to info.
func (c *Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
