// cmd/cgsim/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/opd-ai/go-freecg/pkg/config"
	"github.com/opd-ai/go-freecg/pkg/engine"
	"github.com/opd-ai/go-freecg/pkg/event"
	"github.com/opd-ai/go-freecg/pkg/logging"
	"github.com/opd-ai/go-freecg/pkg/render"
)

func main() {
	logger := logging.NewLogger()
	ctx := logging.WithRunID(context.Background(), "")

	configPath := flag.String("config", "config.json", "Path to configuration file")
	levelPath := flag.String("level", "", "Level file (overrides config)")
	scriptPath := flag.String("script", "", "Flight script; without one the ship sits on its pad")
	duration := flag.Float64("duration", 30, "Simulated seconds to run")
	rate := flag.Float64("rate", 60, "Steps per simulated second")
	grace := flag.Float64("grace", 1, "Simulated seconds to keep running after the game ends")
	seed := flag.Uint64("seed", 1, "Seed for bar speed changes")
	flag.Parse()

	cfg := config.DefaultConfig()
	if _, err := os.Stat(*configPath); err == nil {
		cfg, err = config.LoadConfig(*configPath)
		if err != nil {
			logger.Error(ctx, "Failed to load configuration", err, "config_path", *configPath)
			os.Exit(1)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		logger.Error(ctx, "Failed to open configuration", err, "config_path", *configPath)
		os.Exit(1)
	}
	cfg.ApplyEnvironmentOverrides()
	if *levelPath != "" {
		cfg.Assets.LevelPath = *levelPath
	}
	if err := cfg.Validate(); err != nil {
		logger.Error(ctx, "Invalid configuration", err)
		os.Exit(1)
	}
	if *rate <= 0 || *duration <= 0 {
		logger.Error(ctx, "Rate and duration must be positive", nil, "rate", *rate, "duration", *duration)
		os.Exit(1)
	}

	var cmds []command
	if *scriptPath != "" {
		f, err := os.Open(*scriptPath)
		if err != nil {
			logger.Error(ctx, "Failed to open script", err, "script", *scriptPath)
			os.Exit(1)
		}
		cmds, err = parseScript(f)
		f.Close()
		if err != nil {
			logger.Error(ctx, "Failed to parse script", err, "script", *scriptPath)
			os.Exit(1)
		}
	}

	bus := event.NewEventBus()
	counts := countEvents(bus)
	rng := rand.New(rand.NewPCG(*seed, *seed))
	game, _, err := engine.LoadGame(cfg, rng, bus, logger)
	if err != nil {
		logger.Error(ctx, "Failed to load level", err, "level", cfg.Assets.LevelPath)
		os.Exit(1)
	}

	res, err := simulate(game, cmds, 1 / *rate, *duration, *grace, render.NewNullRenderer(logger))
	if err != nil {
		logger.Error(ctx, "Simulation failed", err)
		os.Exit(1)
	}

	logger.Info(ctx, "Simulation finished",
		"level", game.Level.Name,
		"time", res.Time,
		"frames", res.Frames,
		"status", res.Status.String(),
	)
	fmt.Println(res.Line)
	for _, typ := range eventTypes {
		if n := counts[typ]; n > 0 {
			fmt.Printf("%-18s %d\n", typ, n)
		}
	}
}

var eventTypes = []event.Type{
	event.EngineStarted, event.EngineStopped, event.ShipLanded, event.ShipCrashed,
	event.FreightPickedUp, event.FreightDelivered, event.FuelLoaded,
	event.KeyCollected, event.ExtraCollected, event.ShipRespawned,
	event.GameWon, event.GameLost,
}

// countEvents tallies every game event published on bus. The simulation
// runs on one goroutine and the bus delivers synchronously, so the map needs
// no lock.
func countEvents(bus *event.Bus) map[event.Type]int {
	counts := make(map[event.Type]int)
	for _, typ := range eventTypes {
		bus.Subscribe(typ, func(e event.Event) {
			counts[e.GetType()]++
		})
	}
	return counts
}
