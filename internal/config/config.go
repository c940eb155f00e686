// Package config handles potter configuration loading and management.
package config

import (
	"fmt"

	"github.com/chazu/potter/pkg/profile"
	"github.com/chazu/potter/pkg/revolve"
)

// Config holds all CLI settings.
type Config struct {
	Mesh    MeshConfig    `yaml:"mesh"`
	Kernel  KernelConfig  `yaml:"kernel"`
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

// MeshConfig holds tessellation settings.
type MeshConfig struct {
	Samples  int    `yaml:"samples"`  // profile samples along the wall
	Segments int    `yaml:"segments"` // angular segments around the axis
	Wall     bool   `yaml:"wall"`
	Joint    string `yaml:"joint"` // welded or stacked
}

// KernelConfig selects the meshing engine.
type KernelConfig struct {
	Name  string `yaml:"name"`  // lathe or sdfx
	Cells int    `yaml:"cells"` // marching cubes resolution for sdfx
}

// ExportConfig holds STL output settings.
type ExportConfig struct {
	ASCII     bool   `yaml:"ascii"`
	OutputDir string `yaml:"output_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Kernel names accepted in KernelConfig.Name.
const (
	KernelLathe = "lathe"
	KernelSdfx  = "sdfx"
)

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Mesh: MeshConfig{
			Samples:  profile.DefaultSampleCount,
			Segments: revolve.DefaultSegments,
			Wall:     true,
			Joint:    "welded",
		},
		Kernel: KernelConfig{
			Name:  KernelLathe,
			Cells: 200,
		},
		Export: ExportConfig{
			ASCII:     false,
			OutputDir: ".",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports settings the pipeline cannot use.
func (c *Config) Validate() error {
	if c.Mesh.Samples < 2 {
		return fmt.Errorf("config: mesh.samples must be at least 2, got %d", c.Mesh.Samples)
	}
	if c.Mesh.Segments < 3 {
		return fmt.Errorf("config: mesh.segments must be at least 3, got %d", c.Mesh.Segments)
	}
	switch c.Mesh.Joint {
	case "", "welded", "stacked":
	default:
		return fmt.Errorf("config: mesh.joint: unknown joint %q", c.Mesh.Joint)
	}
	switch c.Kernel.Name {
	case KernelLathe, KernelSdfx:
	default:
		return fmt.Errorf("config: kernel.name: unknown kernel %q", c.Kernel.Name)
	}
	if c.Kernel.Cells < 1 {
		return fmt.Errorf("config: kernel.cells must be positive, got %d", c.Kernel.Cells)
	}
	return nil
}
