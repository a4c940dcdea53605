// Package config implements the YAML-backed configuration surface for
// the template extractor and compression pipeline, in the style of the
// teacher's cli/cmd/config.go Config/LoadConfig pattern: a plain struct
// with yaml tags, a zero-argument default, and a loader the caller
// invokes explicitly (this package never reads a file on its own
// initiative).
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/adam-bouafia/logsim/internal/container"
)

// Config holds the template extractor's thresholds and the entropy
// pass's parameters.
type Config struct {
	MinSupport          int     `yaml:"min_support"`
	TemplateCeiling     int     `yaml:"template_ceiling"`
	AbsorptionThreshold float64 `yaml:"absorption_threshold"`
	ZstdLevel           int     `yaml:"zstd_level"`
	EntropyDictionary   bool    `yaml:"entropy_dictionary"`
}

// Default returns the baseline tuning: min_support 3, absorption
// threshold 0.8, template ceiling 10000, zstd level 15, entropy
// dictionary enabled.
func Default() Config {
	opts := container.DefaultOptions()
	return Config{
		MinSupport:          opts.MinSupport,
		TemplateCeiling:     opts.TemplateCeiling,
		AbsorptionThreshold: opts.AbsorptionThreshold,
		ZstdLevel:           opts.ZstdLevel,
		EntropyDictionary:   opts.EntropyDictionary,
	}
}

// Load reads and parses a logsim.yaml-shaped file at path, starting from
// Default() and unmarshaling the file over it via LoadInto, so any field
// the file omits keeps its default value.
func Load(path string) (Config, error) {
	cfg := Default()
	if err := LoadInto(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadInto parses the YAML file at path into cfg, overriding only the
// fields present in the file (cfg should usually start at Default()).
func LoadInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return nil
}

// ToOptions converts a Config into the internal container writer's
// Options.
func (c Config) ToOptions() container.Options {
	return container.Options{
		MinSupport:          c.MinSupport,
		AbsorptionThreshold: c.AbsorptionThreshold,
		TemplateCeiling:     c.TemplateCeiling,
		ZstdLevel:           c.ZstdLevel,
		EntropyDictionary:   c.EntropyDictionary,
	}
}
