// Package config provides configuration loading and management for tomorings.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Geometry describes the residual volume extents
	Geometry struct {
		// Angles is the number of projection angles
		Angles int `yaml:"angles"`

		// Detectors is the number of detector elements
		Detectors int `yaml:"detectors"`

		// Slices is the number of sinograms in the stack (1 for 2D input)
		Slices int `yaml:"slices"`
	} `yaml:"geometry"`

	// Window holds the median window half-sizes per axis
	Window struct {
		// Detectors approximates the thickness of the rings in the
		// reconstruction (stripes in the sinogram)
		Detectors int `yaml:"detectors"`

		// Angles is the half-window across projection angles
		Angles int `yaml:"angles"`

		// Slices is the half-window across the stack, 3D input only
		Slices int `yaml:"slices"`
	} `yaml:"window"`

	// Processing parameters
	Processing struct {
		// NumCores specifies how many CPU cores to use for parallel processing
		NumCores int `yaml:"numCores"`

		// HuberThreshold is the threshold of the Huber data fidelity term.
		// A value of 0 disables the multiplier output.
		HuberThreshold float64 `yaml:"huberThreshold"`
	} `yaml:"processing"`

	// Output parameters
	Output struct {
		// SaveMultipliers determines whether Huber multipliers are written
		// alongside the weights
		SaveMultipliers bool `yaml:"saveMultipliers"`

		// Verbose controls the level of logging output
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// Single 2D sinogram by default; extents must be overridden to match
	// the input data
	cfg.Geometry.Slices = 1

	// Rings a few detector elements thick, no angle or slice smoothing
	cfg.Window.Detectors = 5
	cfg.Window.Angles = 0
	cfg.Window.Slices = 0

	cfg.Processing.NumCores = runtime.NumCPU() // Use all available cores by default
	cfg.Processing.HuberThreshold = 0

	cfg.Output.SaveMultipliers = false
	cfg.Output.Verbose = true

	return cfg
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	// Marshal config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}
