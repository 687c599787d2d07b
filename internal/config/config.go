package config

import (
	"fmt"
	"os"

	"github.com/san-kum/groversim/internal/grover"
	"gopkg.in/yaml.v3"
)

const (
	DefaultN          = 100
	DefaultMarked     = 20
	DefaultIterations = 2500
	DefaultFPS        = 10
	DefaultOutput     = "."
)

type Config struct {
	N          int    `yaml:"n"`
	Marked     int    `yaml:"marked"`
	Iterations int    `yaml:"iterations"`
	Output     string `yaml:"output"`
	FPS        int    `yaml:"fps"`
}

func DefaultConfig() *Config {
	return &Config{
		N:          DefaultN,
		Marked:     DefaultMarked,
		Iterations: DefaultIterations,
		Output:     DefaultOutput,
		FPS:        DefaultFPS,
	}
}

func Load(path string) (*Config, error) {
	return LoadInto(path, DefaultConfig())
}

// LoadInto decodes the YAML file at path over base; keys absent from the
// file keep the values already in base.
func LoadInto(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, base); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return base, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the simulator construction contract and the run length.
func (c *Config) Validate() error {
	if c.N <= 0 {
		return fmt.Errorf("%w: n=%d", grover.ErrInvalidSize, c.N)
	}
	if c.Marked < 0 || c.Marked >= c.N {
		return fmt.Errorf("%w: marked=%d, n=%d", grover.ErrMarkedOutOfRange, c.Marked, c.N)
	}
	if c.Iterations < 0 {
		return fmt.Errorf("%w: iterations=%d", grover.ErrNegativeIterations, c.Iterations)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	return nil
}
