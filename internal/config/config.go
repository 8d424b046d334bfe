// Package config provides configuration loading and management for map-tiler.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Input and output locations
	Paths struct {
		// Input is the map illustration to split
		Input string `yaml:"input"`

		// OutputDir receives one PNG per region
		OutputDir string `yaml:"outputDir"`

		// Layout is the JSON layout document path
		Layout string `yaml:"layout"`

		// Log is the persistent log file; empty logs to stdout only
		Log string `yaml:"log"`

		// ImageBaseURL prefixes tile file names in the layout document
		ImageBaseURL string `yaml:"imageBaseURL"`

		// FilePrefix starts every tile file name
		FilePrefix string `yaml:"filePrefix"`

		// DebugOverlay, when set, receives a PNG with every region drawn on the source
		DebugOverlay string `yaml:"debugOverlay"`
	} `yaml:"paths"`

	// Binary mask parameters
	Preprocess struct {
		BlockSize        int     `yaml:"blockSize"`
		Offset           float64 `yaml:"offset"`
		MorphRadius      int     `yaml:"morphRadius"`
		CloseIterations  int     `yaml:"closeIterations"`
		DilateIterations int     `yaml:"dilateIterations"`
	} `yaml:"preprocess"`

	// Shape acceptance parameters
	Detection struct {
		SimplifyRatio   float64 `yaml:"simplifyRatio"`
		MinArea         float64 `yaml:"minArea"`
		MinAspect       float64 `yaml:"minAspect"`
		MaxAspect       float64 `yaml:"maxAspect"`
		DedupDistance   float64 `yaml:"dedupDistance"`
		ExpectedRegions int     `yaml:"expectedRegions"`
	} `yaml:"detection"`

	// Synthetic layout used when detection finds too few regions
	Fallback struct {
		// Rows lists the number of cells per row, top to bottom
		Rows []int `yaml:"rows"`
	} `yaml:"fallback"`

	// Tile rendering parameters
	Render struct {
		// Padding is added around every region before cropping
		Padding int `yaml:"padding"`
	} `yaml:"render"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Paths.OutputDir = filepath.Join("public", "maps", "hexes")
	cfg.Paths.Layout = filepath.Join("src", "data", "map_layout.json")
	cfg.Paths.Log = "process_log.txt"
	cfg.Paths.ImageBaseURL = "/maps/hexes"
	cfg.Paths.FilePrefix = "hex"

	cfg.Preprocess.BlockSize = 11
	cfg.Preprocess.Offset = 2
	cfg.Preprocess.MorphRadius = 2
	cfg.Preprocess.CloseIterations = 3
	cfg.Preprocess.DilateIterations = 1

	cfg.Detection.SimplifyRatio = 0.005
	cfg.Detection.MinArea = 5000
	cfg.Detection.MinAspect = 0.5
	cfg.Detection.MaxAspect = 2.0
	cfg.Detection.DedupDistance = 20
	cfg.Detection.ExpectedRegions = 10

	cfg.Fallback.Rows = []int{3, 4, 3}

	cfg.Render.Padding = 10

	return cfg
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// Validate checks that the configuration can drive a run
func (c *Config) Validate() error {
	var errs []error

	if c.Paths.Input == "" {
		errs = append(errs, errors.New("paths.input is required"))
	}
	if c.Paths.OutputDir == "" {
		errs = append(errs, errors.New("paths.outputDir is required"))
	}
	if c.Paths.Layout == "" {
		errs = append(errs, errors.New("paths.layout is required"))
	}
	if c.Paths.FilePrefix == "" {
		errs = append(errs, errors.New("paths.filePrefix is required"))
	}
	if c.Preprocess.BlockSize < 3 || c.Preprocess.BlockSize%2 == 0 {
		errs = append(errs, fmt.Errorf("preprocess.blockSize must be odd and >= 3, got %d", c.Preprocess.BlockSize))
	}
	if c.Preprocess.MorphRadius < 0 {
		errs = append(errs, fmt.Errorf("preprocess.morphRadius must be >= 0, got %d", c.Preprocess.MorphRadius))
	}
	if c.Preprocess.CloseIterations < 0 {
		errs = append(errs, fmt.Errorf("preprocess.closeIterations must be >= 0, got %d", c.Preprocess.CloseIterations))
	}
	if c.Preprocess.DilateIterations < 0 {
		errs = append(errs, fmt.Errorf("preprocess.dilateIterations must be >= 0, got %d", c.Preprocess.DilateIterations))
	}
	if c.Detection.SimplifyRatio < 0 {
		errs = append(errs, fmt.Errorf("detection.simplifyRatio must be >= 0, got %g", c.Detection.SimplifyRatio))
	}
	if c.Detection.MinArea <= 0 {
		errs = append(errs, fmt.Errorf("detection.minArea must be positive, got %g", c.Detection.MinArea))
	}
	if c.Detection.MinAspect <= 0 || c.Detection.MaxAspect <= c.Detection.MinAspect {
		errs = append(errs, fmt.Errorf("detection aspect range (%g, %g) is empty", c.Detection.MinAspect, c.Detection.MaxAspect))
	}
	if c.Detection.DedupDistance < 0 {
		errs = append(errs, fmt.Errorf("detection.dedupDistance must be >= 0, got %g", c.Detection.DedupDistance))
	}
	if c.Detection.ExpectedRegions < 1 {
		errs = append(errs, fmt.Errorf("detection.expectedRegions must be >= 1, got %d", c.Detection.ExpectedRegions))
	}
	if len(c.Fallback.Rows) == 0 {
		errs = append(errs, errors.New("fallback.rows must not be empty"))
	}
	for i, n := range c.Fallback.Rows {
		if n <= 0 {
			errs = append(errs, fmt.Errorf("fallback.rows[%d] must be positive, got %d", i, n))
		}
	}
	if c.Render.Padding < 0 {
		errs = append(errs, fmt.Errorf("render.padding must be >= 0, got %d", c.Render.Padding))
	}

	return errors.Join(errs...)
}
