// Package config loads editor and server settings from an optional TOML file
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/philipparndt/protedit/internal/scene"
)

// EnvPath names the config file when no explicit path is given
const EnvPath = "PROTEDIT_CONFIG"

// Config holds all settings. Zero Seed means seed from the clock.
type Config struct {
	Scene  SceneConfig  `toml:"scene"`
	Editor EditorConfig `toml:"editor"`
	Window WindowConfig `toml:"window"`
	Server ServerConfig `toml:"server"`
}

type SceneConfig struct {
	Seed        uint64  `toml:"seed"`
	SpawnExtent float64 `toml:"spawn_extent"`
	BowMin      float64 `toml:"bow_min"`
	BowMax      float64 `toml:"bow_max"`
	CatalogPath string  `toml:"catalog_path"`
}

type EditorConfig struct {
	HighlightColor string  `toml:"highlight_color"`
	RotateStepDeg  float64 `toml:"rotate_step_deg"`
	SaveURL        string  `toml:"save_url"`
}

type WindowConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

type ServerConfig struct {
	Port   string `toml:"port"`
	DBPath string `toml:"db_path"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Scene: SceneConfig{
			SpawnExtent: 10,
			BowMin:      4,
			BowMax:      6,
		},
		Editor: EditorConfig{
			HighlightColor: "#ff0000",
			RotateStepDeg:  5,
			SaveURL:        "http://localhost:3000",
		},
		Window: WindowConfig{
			Width:  1280,
			Height: 800,
		},
		Server: ServerConfig{
			Port:   "3000",
			DBPath: "data/scenes.db",
		},
	}
}

// Load reads path on top of the defaults. An empty path falls back to
// $PROTEDIT_CONFIG; when neither is set the defaults are returned. A path
// that was given explicitly must exist.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = os.Getenv(EnvPath)
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges
func (c Config) Validate() error {
	var errs []error
	if c.Scene.SpawnExtent <= 0 {
		errs = append(errs, fmt.Errorf("scene.spawn_extent must be positive"))
	}
	if c.Scene.BowMin < 0 || c.Scene.BowMax < c.Scene.BowMin {
		errs = append(errs, fmt.Errorf("scene.bow_min/bow_max must satisfy 0 <= min <= max"))
	}
	if _, err := scene.ParseColor(c.Editor.HighlightColor); err != nil {
		errs = append(errs, fmt.Errorf("editor.highlight_color: %w", err))
	}
	if c.Editor.RotateStepDeg <= 0 {
		errs = append(errs, fmt.Errorf("editor.rotate_step_deg must be positive"))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive"))
	}
	return errors.Join(errs...)
}

// Highlight returns the parsed highlight colour
func (c Config) Highlight() scene.Color {
	col, err := scene.ParseColor(c.Editor.HighlightColor)
	if err != nil {
		return scene.MustParseColor("#ff0000")
	}
	return col
}

// SceneOptions translates the scene settings into scene options
func (c Config) SceneOptions() ([]scene.Option, error) {
	opts := []scene.Option{
		scene.WithSpawnExtent(c.Scene.SpawnExtent),
		scene.WithBow(c.Scene.BowMin, c.Scene.BowMax),
	}
	if c.Scene.Seed != 0 {
		opts = append(opts, scene.WithSeed(c.Scene.Seed))
	}
	if c.Scene.CatalogPath != "" {
		cat, err := scene.LoadCatalog(c.Scene.CatalogPath)
		if err != nil {
			return nil, err
		}
		opts = append(opts, scene.WithCatalog(cat))
	}
	return opts, nil
}

// Write stores the config as TOML
func (c Config) Write(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}
