package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ashrt/ashrt/internal/config"
	"github.com/ashrt/ashrt/internal/core/ecs"
	coresys "github.com/ashrt/ashrt/internal/core/system"
	"github.com/ashrt/ashrt/internal/core/tick"
	"github.com/ashrt/ashrt/internal/data"
	"github.com/ashrt/ashrt/internal/scripting"
	"github.com/ashrt/ashrt/internal/system"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Simulation ────────────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/ashsim.toml"
	if p := os.Getenv("ASHSIM_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	// 3. Scene and scripts
	printSection("data")
	scene, err := data.LoadScene(cfg.Scene.Path)
	if err != nil {
		return fmt.Errorf("load scene: %w", err)
	}
	printStat("scene entities", scene.Size())

	lua, err := scripting.NewEngine(cfg.Scripts.Dir, log)
	if err != nil {
		return fmt.Errorf("init lua: %w", err)
	}
	defer lua.Close()
	printStat("lua scripts", len(lua.Files()))

	// 4. Engine and systems
	engine := ecs.NewEngine(log.Named("ecs"))
	lifetime := system.NewLifetimeSystem(log)
	coresys.Register(engine,
		system.NewSteeringSystem(lua),
		system.NewMovementSystem(),
		system.NewSpinSystem(),
		system.NewStatsSystem(cfg.Loop.StatsEvery, log),
		lifetime,
	)
	scene.Spawn(engine)
	printOK(fmt.Sprintf("%d systems, %d families", len(engine.Systems()), engine.NumFamilies()))

	// 5. Runner
	provider := newProvider(cfg.Loop)
	runner := coresys.NewRunner(engine, provider, cfg.Loop.TickRate, log)
	runner.SetMaxFrames(cfg.Loop.MaxFrames)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(shutdownCh)
	go func() {
		select {
		case sig := <-shutdownCh:
			log.Info("shutdown signal", zap.String("signal", sig.String()))
			cancel()
		case <-ctx.Done():
		}
	}()

	if cfg.Scripts.HotReload {
		w, err := scripting.NewWatcher(cfg.Scripts.Dir)
		if err != nil {
			log.Warn("script hot reload disabled", zap.Error(err))
		} else {
			defer w.Close()
			go forwardReloads(w, runner, lua, log)
			printOK("watching " + cfg.Scripts.Dir)
		}
	}

	printSection("loop")
	printReady(fmt.Sprintf("%s mode, tick %s", cfg.Loop.Mode, cfg.Loop.TickRate))
	fmt.Println()

	start := time.Now()
	if err := runner.Run(ctx); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	log.Info("simulation finished",
		zap.Int("frames", runner.Frames()),
		zap.Int("expired", lifetime.Expired()),
		zap.Int("entities", engine.NumEntities()),
		zap.Duration("wall", time.Since(start)))
	return nil
}

func newProvider(cfg config.LoopConfig) tick.Provider {
	if cfg.Mode == config.ModeFrame {
		p := tick.NewFrameProvider(cfg.MaxFrameTime)
		p.TimeAdjustment = cfg.TimeAdjustment
		return p
	}
	p := tick.NewFixedProvider(cfg.FrameTime)
	p.TimeAdjustment = cfg.TimeAdjustment
	return p
}

// forwardReloads turns file events into reloads on the runner goroutine.
func forwardReloads(w *scripting.Watcher, runner *coresys.Runner, lua *scripting.Engine, log *zap.Logger) {
	for {
		select {
		case name, ok := <-w.Events:
			if !ok {
				return
			}
			log.Info("script changed", zap.String("file", name))
			posted := runner.Post(func() {
				if err := lua.Reload(); err != nil {
					log.Error("script reload failed", zap.Error(err))
				}
			})
			if !posted {
				return
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Warn("script watcher error", zap.Error(err))
		}
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
