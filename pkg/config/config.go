// Package config loads Matth settings from a TOML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// MaxCells caps the marching cubes resolution; memory grows with its cube.
const MaxCells = 1000

// Config holds all settings. Zero-valued sections in a file keep their
// defaults.
type Config struct {
	Eval EvalConfig `toml:"eval"`
	Mesh MeshConfig `toml:"mesh"`
	Log  LogConfig  `toml:"log"`
}

// EvalConfig controls script evaluation.
type EvalConfig struct {
	TimeoutMS int `toml:"timeout_ms"`
}

// Timeout returns the evaluation timeout as a duration.
func (c EvalConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// MeshConfig controls tessellation.
type MeshConfig struct {
	Cells int `toml:"cells"`
}

// LogConfig controls diagnostics.
type LogConfig struct {
	Verbose bool `toml:"verbose"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Eval: EvalConfig{TimeoutMS: 5000},
		Mesh: MeshConfig{Cells: 200},
	}
}

// Load reads the file at path over the defaults. An empty path or a file
// that does not exist yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML data over the defaults and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("unknown keys:\n%s", strict.String())
		}
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first setting that is out of range.
func (c Config) Validate() error {
	if c.Eval.TimeoutMS <= 0 {
		return fmt.Errorf("eval.timeout_ms must be positive, got %d", c.Eval.TimeoutMS)
	}
	if c.Mesh.Cells <= 0 || c.Mesh.Cells > MaxCells {
		return fmt.Errorf("mesh.cells must be in 1..%d, got %d", MaxCells, c.Mesh.Cells)
	}
	return nil
}
