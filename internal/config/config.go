package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/sortviz/internal/dataset"
	"github.com/san-kum/sortviz/internal/playback"
	"github.com/san-kum/sortviz/internal/trace"
)

const (
	DefaultAlgorithm = "bubble"
	DefaultSize      = 20
	DefaultSpeed     = 100
	MinSize          = 5
	MaxSize          = 50
)

type Config struct {
	Algorithm string    `yaml:"algorithm"`
	Size      int       `yaml:"size"`
	Speed     int       `yaml:"speed"`
	Seed      int64     `yaml:"seed"`
	Shape     string    `yaml:"shape"`
	MinValue  float64   `yaml:"min_value"`
	MaxValue  float64   `yaml:"max_value"`
	Values    []float64 `yaml:"values,omitempty"`
	Verify    bool      `yaml:"verify"`
}

func DefaultConfig() *Config {
	return &Config{
		Algorithm: DefaultAlgorithm,
		Size:      DefaultSize,
		Speed:     DefaultSpeed,
		Shape:     string(dataset.Random),
		MinValue:  dataset.DefaultMin,
		MaxValue:  dataset.DefaultMax,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the engine limits. The 5..50 size range is only what the
// interactive view offers; headless runs accept any size from 1.
func (c *Config) Validate() error {
	if len(c.Values) == 0 && c.Size < 1 {
		return fmt.Errorf("size %d: %w", c.Size, trace.ErrInvalidSize)
	}
	if err := playback.ValidateSpeed(c.Speed); err != nil {
		return err
	}
	if _, err := dataset.ParseShape(c.Shape); err != nil {
		return err
	}
	if c.MinValue <= 0 || c.MaxValue <= c.MinValue {
		return fmt.Errorf("value range [%v, %v): %w", c.MinValue, c.MaxValue, trace.ErrInvalidValue)
	}
	return nil
}

// Input builds the array a run starts from: the explicit values when set,
// otherwise a generated array.
func (c *Config) Input() ([]trace.Element, error) {
	if len(c.Values) > 0 {
		return trace.FromValues(c.Values)
	}
	shape, err := dataset.ParseShape(c.Shape)
	if err != nil {
		return nil, err
	}
	opts := []dataset.Option{dataset.WithRange(c.MinValue, c.MaxValue), dataset.WithShape(shape)}
	if c.Seed != 0 {
		opts = append(opts, dataset.WithSeed(c.Seed))
	}
	gen, err := dataset.New(opts...)
	if err != nil {
		return nil, err
	}
	return gen.Generate(c.Size)
}

func ClampSize(n int) int {
	if n < MinSize {
		return MinSize
	}
	if n > MaxSize {
		return MaxSize
	}
	return n
}
