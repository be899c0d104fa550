// Package config loads pipeline settings from a JSON file.
package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	droneshow "github.com/INMD1-Repo/Visualcomputing-Dron"
)

// ShowConfig mirrors droneshow.Options. Every field is optional; keys absent
// from the file leave the corresponding option untouched.
type ShowConfig struct {
	// Sampling and normalization
	DroneCount *int     `json:"drone_count,omitempty"`
	MaxSize    *float64 `json:"max_size,omitempty"`
	Seed       *int64   `json:"seed,omitempty"`

	// Segmentation thresholds, 0-255
	AlphaThreshold      *int `json:"alpha_threshold,omitempty"`
	BrightnessThreshold *int `json:"brightness_threshold,omitempty"`

	// Layering
	MaxLayers     *int     `json:"max_layers,omitempty"`
	ZGap          *float64 `json:"z_gap,omitempty"`
	PaletteSize   *int     `json:"palette_size,omitempty"`
	PaletteMethod *string  `json:"palette_method,omitempty"` // "dominantcolor" or "kmeans"

	// Document metadata
	Title     *string `json:"title,omitempty"`
	LayerID   *string `json:"layer_id,omitempty"`
	LayerName *string `json:"layer_name,omitempty"`
	Duration  *int    `json:"duration,omitempty"`
}

// LoadShowConfig loads a ShowConfig from a JSON file.
// The file must have a .json extension and be at most 1MB.
func LoadShowConfig(path string) (*ShowConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &ShowConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the fields that are set.
func (c *ShowConfig) Validate() error {
	if c.DroneCount != nil && *c.DroneCount <= 0 {
		return fmt.Errorf("drone_count must be positive, got %d", *c.DroneCount)
	}
	if c.MaxSize != nil && (!(*c.MaxSize > 0) || math.IsInf(*c.MaxSize, 0)) {
		return fmt.Errorf("max_size must be positive and finite, got %g", *c.MaxSize)
	}
	if c.AlphaThreshold != nil && (*c.AlphaThreshold < 0 || *c.AlphaThreshold > 255) {
		return fmt.Errorf("alpha_threshold must be between 0 and 255, got %d", *c.AlphaThreshold)
	}
	if c.BrightnessThreshold != nil && (*c.BrightnessThreshold < 0 || *c.BrightnessThreshold > 255) {
		return fmt.Errorf("brightness_threshold must be between 0 and 255, got %d", *c.BrightnessThreshold)
	}
	if c.MaxLayers != nil && *c.MaxLayers <= 0 {
		return fmt.Errorf("max_layers must be positive, got %d", *c.MaxLayers)
	}
	if c.ZGap != nil && (!(*c.ZGap >= 0) || math.IsInf(*c.ZGap, 0)) {
		return fmt.Errorf("z_gap must be non-negative and finite, got %g", *c.ZGap)
	}
	if c.PaletteSize != nil && *c.PaletteSize < 0 {
		return fmt.Errorf("palette_size must be non-negative, got %d", *c.PaletteSize)
	}
	if c.PaletteMethod != nil {
		if _, ok := droneshow.ParsePaletteMethod(*c.PaletteMethod); !ok {
			return fmt.Errorf("unknown palette_method %q", *c.PaletteMethod)
		}
	}
	if c.Duration != nil && *c.Duration < 0 {
		return fmt.Errorf("duration must be non-negative, got %d", *c.Duration)
	}
	return nil
}

// Apply copies every set field onto opt.
func (c *ShowConfig) Apply(opt *droneshow.Options) {
	if c.DroneCount != nil {
		opt.DroneCount = *c.DroneCount
	}
	if c.MaxSize != nil {
		opt.MaxSize = *c.MaxSize
	}
	if c.Seed != nil {
		opt.Seed = *c.Seed
	}
	if c.AlphaThreshold != nil {
		opt.AlphaThreshold = uint8(*c.AlphaThreshold)
	}
	if c.BrightnessThreshold != nil {
		opt.BrightnessThreshold = uint8(*c.BrightnessThreshold)
	}
	if c.MaxLayers != nil {
		opt.MaxLayers = *c.MaxLayers
	}
	if c.ZGap != nil {
		opt.ZGap = *c.ZGap
	}
	if c.PaletteSize != nil {
		opt.PaletteSize = *c.PaletteSize
	}
	if c.PaletteMethod != nil {
		opt.PaletteMethod, _ = droneshow.ParsePaletteMethod(*c.PaletteMethod)
	}
	if c.Title != nil {
		opt.Title = *c.Title
	}
	if c.LayerID != nil {
		opt.LayerID = *c.LayerID
	}
	if c.LayerName != nil {
		opt.LayerName = *c.LayerName
	}
	if c.Duration != nil {
		opt.Duration = *c.Duration
	}
}
