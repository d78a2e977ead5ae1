// cmd/freecg/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-freecg/pkg/audio"
	"github.com/opd-ai/go-freecg/pkg/config"
	"github.com/opd-ai/go-freecg/pkg/engine"
	"github.com/opd-ai/go-freecg/pkg/event"
	"github.com/opd-ai/go-freecg/pkg/level"
	"github.com/opd-ai/go-freecg/pkg/logging"
	"github.com/opd-ai/go-freecg/pkg/render"
	engorender "github.com/opd-ai/go-freecg/pkg/render/engo"
)

// Terminal cells cover this many level pixels at scale 1
const (
	cellW = 8
	cellH = 16
)

func main() {
	configPath := flag.String("config", "config.json", "Path to configuration file")
	createDefault := flag.Bool("default", false, "Create default configuration file")
	levelPath := flag.String("level", "", "Level file (overrides config)")
	renderer := flag.String("renderer", "", "Renderer type: 'terminal' or 'engo' (overrides config)")
	logPath := flag.String("log", "", "Write logs to this file instead of stderr")
	flag.Parse()

	logger, closeLog, err := openLog(*logPath)
	if err != nil {
		logging.NewLogger().Error(context.Background(), "Failed to open log file", err, "log_path", *logPath)
		os.Exit(1)
	}
	defer closeLog()
	ctx := logging.WithRunID(context.Background(), "")

	if *createDefault {
		if err := config.SaveConfig(config.DefaultConfig(), *configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err, "config_path", *configPath)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file", "config_path", *configPath)
		return
	}

	cfg, err := loadConfig(*configPath, logger)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err, "config_path", *configPath)
		os.Exit(1)
	}
	if *levelPath != "" {
		cfg.Assets.LevelPath = *levelPath
	}
	if *renderer != "" {
		cfg.Display.Renderer = *renderer
	}
	if err := cfg.Validate(); err != nil {
		logger.Error(ctx, "Invalid configuration", err)
		os.Exit(1)
	}

	if cfg.Display.Renderer != "engo" && *logPath == "" {
		// the screen owns the terminal
		logger = logging.Nop()
	}

	bus := event.NewEventBus()
	game, sheet, err := engine.LoadGame(cfg, nil, bus, logger)
	if err != nil {
		logger.Error(ctx, "Failed to load level", err, "level", cfg.Assets.LevelPath)
		os.Exit(1)
	}

	sound := startAudio(ctx, cfg, bus, logger)
	defer sound.Cleanup()

	switch cfg.Display.Renderer {
	case "engo":
		scene := engorender.NewGameScene(game, sheet, float32(cfg.Display.Width), float32(cfg.Display.Height), logger)
		engorender.Run(scene, "FreeCG - "+game.Level.Name, cfg.Display.Fullscreen)
	default:
		if err := runTerminal(ctx, game, cfg, logger); err != nil {
			logger.Error(ctx, "Terminal session failed", err)
			os.Exit(1)
		}
	}
}

// openLog returns a logger writing to path, or to stderr when path is empty
func openLog(path string) (*logging.Logger, func(), error) {
	if path == "" {
		return logging.NewLogger(), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := logging.New(f, logging.ParseLevel(os.Getenv("FREECG_LOG_LEVEL")))
	return logger, func() { f.Close() }, nil
}

// loadConfig reads path when it exists and applies environment overrides
func loadConfig(path string, logger *logging.Logger) (*config.GameConfig, error) {
	cfg := config.DefaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		logger.Info(context.Background(), "Configuration file not found, using default configuration",
			"config_path", path,
		)
	} else {
		cfg, err = config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
	}
	cfg.ApplyEnvironmentOverrides()
	return cfg, nil
}

// startAudio loads the effects and opens the speaker. Audio problems are
// logged and never stop the game.
func startAudio(ctx context.Context, cfg *config.GameConfig, bus *event.Bus, logger *logging.Logger) *audio.SoundManager {
	sound := audio.NewSoundManager(audio.Config{
		Enabled:      cfg.Audio.Enabled,
		MasterVolume: cfg.Audio.MasterVolume,
		SampleRate:   cfg.Audio.SampleRate,
		SoundDir:     cfg.Assets.SoundDir,
	}, logger)
	if err := sound.Load(); err != nil {
		logger.Warn(ctx, "Some sounds failed to load, using synthesized effects", "error", err.Error())
	}
	if err := sound.Initialize(); err != nil {
		logger.Warn(ctx, "Audio disabled", "error", err.Error())
	}
	sound.Attach(bus)
	return sound
}

// runTerminal plays the game in the terminal until the player quits
func runTerminal(ctx context.Context, game *engine.Game, cfg *config.GameConfig, logger *logging.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return logging.WrapError(err, "failed to create screen")
	}
	if err := screen.Init(); err != nil {
		return logging.WrapError(err, "failed to initialize screen")
	}
	scale := max(1, int(cfg.Display.Scale))
	r := render.NewTerminalRenderer(screen, cellW*scale, cellH*scale)
	defer r.Close()

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	in := &termInput{}
	crashed := game.EventBus.Subscribe(event.ShipCrashed, func(event.Event) { in.stop() })
	defer game.EventBus.Unsubscribe(crashed)

	go func() {
		for {
			switch ev := screen.PollEvent().(type) {
			case nil:
				return
			case *tcell.EventKey:
				if in.handle(ev, time.Now()) {
					cancel()
					return
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		}
	}()

	err = game.Run(ctx, config.TickInterval(), func(l *level.Level) {
		in.controls(time.Now()).ApplyTo(l)
		if err := r.Render(l); err != nil {
			logger.Error(ctx, "Render failed", err)
		}
	})
	logger.Info(ctx, "Session ended",
		"level", game.Level.Name,
		"status", game.Status().String(),
	)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
