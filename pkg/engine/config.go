package engine

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/loomui/loom/pkg/gestures"
)

// Config tunes engine-level behavior. All fields are optional; the zero
// value behaves like DefaultConfig.
type Config struct {
	// FrameBudget is the configured dropped-frame threshold. Frame
	// metrics do not read it; they count dropped frames against the
	// package FrameBudget constant.
	FrameBudget gestures.Duration `yaml:"frame_budget"`
	// Semantics enables the semantics phase from startup.
	Semantics bool `yaml:"semantics"`
	// Gestures tunes the recognizer thresholds.
	Gestures gestures.Settings `yaml:"gestures"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		FrameBudget: gestures.Duration(FrameBudget),
		Gestures:    gestures.DefaultSettings(),
	}
}

// ParseConfig reads a Config from YAML.
func ParseConfig(data []byte) (Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("engine: parsing config: %w", err)
	}
	if err := c.Gestures.Validate(); err != nil {
		return Config{}, err
	}
	if c.FrameBudget < 0 {
		return Config{}, fmt.Errorf("engine: negative frame budget %v", time.Duration(c.FrameBudget))
	}
	return c, nil
}

// LoadConfig reads a Config from a YAML file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("engine: reading config: %w", err)
	}
	return ParseConfig(data)
}

func (c Config) frameBudget() time.Duration {
	if c.FrameBudget == 0 {
		return FrameBudget
	}
	return time.Duration(c.FrameBudget)
}
