package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = "sheepdog.yaml"

// Config holds all Sheepdog Run configuration.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Sim     SimConfig     `yaml:"sim"`
	Assets  AssetsConfig  `yaml:"assets"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig configures the desktop window. The playfield itself is
// capped by the layout rules regardless of window size.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// SimConfig holds the simulation tunables.
type SimConfig struct {
	TPS            int     `yaml:"tps"`
	FlockSize      int     `yaml:"flock_size"`
	ObstacleCount  int     `yaml:"obstacle_count"`
	DogSpeed       float64 `yaml:"dog_speed"`
	RiverDistance  float64 `yaml:"river_distance"`
	RiverVisibleAt float64 `yaml:"river_visible_at"`
	EndDelay       string  `yaml:"end_delay"`
	Seed           int64   `yaml:"seed"` // 0 = seed from the clock
}

// AssetsConfig locates the sprite images.
type AssetsConfig struct {
	Dir string `yaml:"dir"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "Sheepdog Run",
			Width:  480,
			Height: 900,
		},
		Sim: SimConfig{
			TPS:            60,
			FlockSize:      5,
			ObstacleCount:  20,
			DogSpeed:       5,
			RiverDistance:  3500,
			RiverVisibleAt: 3200,
			EndDelay:       "500ms",
		},
		Assets: AssetsConfig{
			Dir: "assets",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults; env overrides are applied either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("SHEEPDOG_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("SHEEPDOG_SEED: %w", err)
		}
		c.Sim.Seed = seed
	}
	if v := os.Getenv("SHEEPDOG_ASSETS"); v != "" {
		c.Assets.Dir = v
	}
	if v := os.Getenv("SHEEPDOG_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	return nil
}

// Validate checks the configuration for values the simulation cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Sim.TPS <= 0 {
		errs = append(errs, fmt.Errorf("sim.tps must be positive, got %d", c.Sim.TPS))
	}
	if c.Sim.FlockSize <= 0 {
		errs = append(errs, fmt.Errorf("sim.flock_size must be positive, got %d", c.Sim.FlockSize))
	}
	if c.Sim.ObstacleCount < 0 {
		errs = append(errs, fmt.Errorf("sim.obstacle_count must not be negative, got %d", c.Sim.ObstacleCount))
	}
	if c.Sim.DogSpeed <= 0 {
		errs = append(errs, fmt.Errorf("sim.dog_speed must be positive, got %g", c.Sim.DogSpeed))
	}
	if c.Sim.RiverDistance <= 0 {
		errs = append(errs, fmt.Errorf("sim.river_distance must be positive, got %g", c.Sim.RiverDistance))
	}
	if c.Sim.RiverVisibleAt > c.Sim.RiverDistance {
		errs = append(errs, fmt.Errorf("sim.river_visible_at (%g) is beyond sim.river_distance (%g)",
			c.Sim.RiverVisibleAt, c.Sim.RiverDistance))
	}
	if d, err := time.ParseDuration(c.Sim.EndDelay); err != nil {
		errs = append(errs, fmt.Errorf("sim.end_delay: %w", err))
	} else if d < 0 {
		errs = append(errs, fmt.Errorf("sim.end_delay must not be negative, got %s", d))
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format))
	}
	return errors.Join(errs...)
}

// GetEndDelay returns the end-of-round delay, falling back to 500ms.
func (c *Config) GetEndDelay() time.Duration {
	d, err := time.ParseDuration(c.Sim.EndDelay)
	if err != nil {
		return 500 * time.Millisecond
	}
	return d
}

// EndDelayTicks converts the end-of-round delay into simulation ticks.
func (c *Config) EndDelayTicks() int {
	tps := c.Sim.TPS
	if tps <= 0 {
		tps = 60
	}
	return int(c.GetEndDelay().Seconds()*float64(tps) + 0.5)
}
