// Package config loads the snapshot tool's JSON configuration and
// resolves it against CLI flag overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
)

// Config holds all configurable paths and render settings.
type Config struct {
	// Paths
	InputDir  string `json:"input_dir"`
	OutputDir string `json:"output_dir"`

	// Render settings
	RenderSize  int    `json:"render_size"`
	Supersample int    `json:"supersample"`
	Workers     int    `json:"workers"`
	View        string `json:"view"` // "persp", "top", "side" or "scene"

	// Mesh resolution overrides; zero keeps the builder defaults.
	LengthSteps int `json:"length_steps"`
	GirthSteps  int `json:"girth_steps"`
}

// Load reads a JSON config file and returns Config. Fields not set in
// the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	InputDir  string
	OutputDir string
	Size      int
	Workers   int
	View      string
}

// Resolve fills in empty fields from CLI flags, then from defaults.
func (c *Config) Resolve(flags Flags) {
	if flags.InputDir != "" {
		c.InputDir = flags.InputDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Size > 0 {
		c.RenderSize = flags.Size
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.View != "" {
		c.View = flags.View
	}

	if c.InputDir == "" {
		c.InputDir = "."
	}
	if c.OutputDir == "" {
		c.OutputDir = "renders"
	}
	if c.RenderSize <= 0 {
		c.RenderSize = 512
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.View == "" {
		c.View = "scene"
	}
}
