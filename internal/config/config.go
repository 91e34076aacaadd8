package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the application configuration
type Config struct {
	Selection SelectionConfig `json:"selection"`
	Contour   ContourConfig   `json:"contour"`
	Export    ExportConfig    `json:"export"`
	Output    OutputConfig    `json:"output"`
}

// SelectionConfig holds configuration for shape hit-testing
type SelectionConfig struct {
	HitTolerance float64 `json:"hit_tolerance"`
}

// ContourConfig holds configuration for mask contour tracing
type ContourConfig struct {
	Threshold int `json:"threshold"`
	MinPoints int `json:"min_points"`
	MinArea   int `json:"min_area"`
}

// ExportConfig holds configuration for dataset label export
type ExportConfig struct {
	Format    string   `json:"format"`
	Normalize bool     `json:"normalize"`
	Splits    []string `json:"splits"`
}

// OutputConfig holds configuration for output generation
type OutputConfig struct {
	Dir            string `json:"dir"`
	OverlayFormat  string `json:"overlay_format"`
	OverlayQuality int    `json:"overlay_quality"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Selection: SelectionConfig{
			HitTolerance: 5.0,
		},
		Contour: ContourConfig{
			Threshold: 128,
			MinPoints: 6,
			MinArea:   16,
		},
		Export: ExportConfig{
			Format:    "labelme",
			Normalize: false,
			Splits:    []string{"train", "val"},
		},
		Output: OutputConfig{
			Dir:            "./dataset",
			OverlayFormat:  "png",
			OverlayQuality: 92,
		},
	}
}

// LoadFromFile loads configuration from a JSON file
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(filename string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Selection.HitTolerance <= 0 {
		return fmt.Errorf("selection.hit_tolerance must be positive")
	}

	if c.Contour.Threshold < 0 || c.Contour.Threshold > 255 {
		return fmt.Errorf("contour.threshold must be between 0 and 255")
	}

	if c.Contour.MinPoints < 0 {
		return fmt.Errorf("contour.min_points must not be negative")
	}

	if c.Contour.MinArea < 0 {
		return fmt.Errorf("contour.min_area must not be negative")
	}

	switch c.Export.Format {
	case "labelme", "yolo", "obb":
	default:
		return fmt.Errorf("export.format must be labelme, yolo or obb")
	}

	if len(c.Export.Splits) == 0 {
		return fmt.Errorf("export.splits cannot be empty")
	}

	if c.Output.OverlayQuality < 1 || c.Output.OverlayQuality > 100 {
		return fmt.Errorf("output.overlay_quality must be between 1 and 100")
	}

	return nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}
	return filepath.Join(home, ".config", "moonlight", "config.json")
}
