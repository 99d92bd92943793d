package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Logging LoggingConfig `toml:"logging"`
	Loop    LoopConfig    `toml:"loop"`
	Scene   SceneConfig   `toml:"scene"`
	Scripts ScriptsConfig `toml:"scripts"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// Loop modes.
const (
	ModeFixed = "fixed" // every frame advances by FrameTime
	ModeFrame = "frame" // every frame advances by measured wall time
)

type LoopConfig struct {
	Mode           string        `toml:"mode"`
	TickRate       time.Duration `toml:"tick_rate"`      // wall-clock interval between frames
	FrameTime      time.Duration `toml:"frame_time"`     // fixed mode step
	MaxFrameTime   time.Duration `toml:"max_frame_time"` // frame mode clamp, 0 = none
	TimeAdjustment float64       `toml:"time_adjustment"`
	MaxFrames      int           `toml:"max_frames"` // 0 = run until interrupted
	StatsEvery     int           `toml:"stats_every"`
}

type SceneConfig struct {
	Path string `toml:"path"`
}

type ScriptsConfig struct {
	Dir       string `toml:"dir"`
	HotReload bool   `toml:"hot_reload"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Loop.Mode {
	case ModeFixed, ModeFrame:
	default:
		return fmt.Errorf("loop.mode %q: want %q or %q", c.Loop.Mode, ModeFixed, ModeFrame)
	}
	if c.Loop.TickRate <= 0 {
		return fmt.Errorf("loop.tick_rate must be positive, got %s", c.Loop.TickRate)
	}
	if c.Loop.Mode == ModeFixed && c.Loop.FrameTime <= 0 {
		return fmt.Errorf("loop.frame_time must be positive in fixed mode, got %s", c.Loop.FrameTime)
	}
	if c.Loop.TimeAdjustment <= 0 {
		return fmt.Errorf("loop.time_adjustment must be positive, got %g", c.Loop.TimeAdjustment)
	}
	if c.Loop.MaxFrames < 0 {
		return fmt.Errorf("loop.max_frames must not be negative, got %d", c.Loop.MaxFrames)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Loop: LoopConfig{
			Mode:           ModeFixed,
			TickRate:       50 * time.Millisecond,
			FrameTime:      50 * time.Millisecond,
			MaxFrameTime:   250 * time.Millisecond,
			TimeAdjustment: 1.0,
			StatsEvery:     20,
		},
		Scene: SceneConfig{
			Path: "data/scene.yaml",
		},
		Scripts: ScriptsConfig{
			Dir:       "scripts",
			HotReload: true,
		},
	}
}
