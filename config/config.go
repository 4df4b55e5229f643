// Package config provides configuration loading and access for the game.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/foodchain/components"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all game configuration parameters.
type Config struct {
	Game       GameConfig       `yaml:"game"`
	Screen     ScreenConfig     `yaml:"screen"`
	Files      FilesConfig      `yaml:"files"`
	Audio      AudioConfig      `yaml:"audio"`
	Tournament TournamentConfig `yaml:"tournament"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// GameConfig holds the new-game defaults and the limits the start screen enforces.
type GameConfig struct {
	GridSize    int    `yaml:"grid_size"`
	MaxRounds   int    `yaml:"max_rounds"`
	Era         string `yaml:"era"`
	MinGridSize int    `yaml:"min_grid_size"`
	MinRounds   int    `yaml:"min_rounds"`
	MaxGridSize int    `yaml:"max_grid_size"` // 0 = unbounded

	HallOfFameSize int     `yaml:"hall_of_fame_size"`
	AutopilotDelay float64 `yaml:"autopilot_delay"` // seconds between autopilot moves in the window
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width       int `yaml:"width"`
	Height      int `yaml:"height"`
	TargetFPS   int `yaml:"target_fps"`
	CellPadding int `yaml:"cell_padding"`
	PanelWidth  int `yaml:"panel_width"` // info panel on the right of the board
}

// FilesConfig holds paths of everything the game reads or writes.
type FilesConfig struct {
	SavePath   string `yaml:"save_path"`
	LogPath    string `yaml:"log_path"`
	OutputDir  string `yaml:"output_dir"`   // CSV telemetry, empty = disabled
	FoodChains string `yaml:"food_chains"`  // empty = embedded chains
	HallOfFame string `yaml:"hall_of_fame"` // empty = not persisted
}

// AudioConfig holds the outcome jingle settings.
type AudioConfig struct {
	Enabled    bool      `yaml:"enabled"`
	SampleRate int       `yaml:"sample_rate"`
	NoteMS     int       `yaml:"note_ms"`
	Volume     float64   `yaml:"volume"`
	WinTones   []float64 `yaml:"win_tones"`  // Hz, played in order
	LoseTones  []float64 `yaml:"lose_tones"` // Hz, played in order
}

// TournamentConfig holds batch-run parameters for cmd/tournament.
type TournamentConfig struct {
	Games     int      `yaml:"games"`
	Seed      int64    `yaml:"seed"`
	Autopilot bool     `yaml:"autopilot"` // false = the player seat always stays
	Eras      []string `yaml:"eras"`
}

// DerivedConfig holds values computed from the loaded config.
type DerivedConfig struct {
	Era            components.Era
	Eras           []components.Era
	NoteDuration   time.Duration
	AutopilotDelay time.Duration
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	era, err := components.ParseEra(c.Game.Era)
	if err != nil {
		return fmt.Errorf("game.era: %w", err)
	}
	c.Derived.Era = era

	c.Derived.Eras = c.Derived.Eras[:0]
	for _, name := range c.Tournament.Eras {
		e, err := components.ParseEra(name)
		if err != nil {
			return fmt.Errorf("tournament.eras: %w", err)
		}
		c.Derived.Eras = append(c.Derived.Eras, e)
	}
	if len(c.Derived.Eras) == 0 {
		c.Derived.Eras = components.Eras()
	}

	c.Derived.NoteDuration = time.Duration(c.Audio.NoteMS) * time.Millisecond
	c.Derived.AutopilotDelay = time.Duration(c.Game.AutopilotDelay * float64(time.Second))
	return nil
}

// CheckSetup validates a new-game request against the configured limits.
func (g GameConfig) CheckSetup(gridSize, rounds int) error {
	if gridSize < g.MinGridSize {
		return fmt.Errorf("grid size must be at least %d", g.MinGridSize)
	}
	if g.MaxGridSize > 0 && gridSize > g.MaxGridSize {
		return fmt.Errorf("grid size must be at most %d", g.MaxGridSize)
	}
	if rounds < g.MinRounds {
		return fmt.Errorf("round count must be at least %d", g.MinRounds)
	}
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
