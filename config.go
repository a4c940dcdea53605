package logsim

import "github.com/adam-bouafia/logsim/internal/config"

// Config holds the template extractor's thresholds and the entropy
// pass's parameters, loadable from a logsim.yaml-shaped file via
// LoadConfig.
type Config = config.Config

// DefaultConfig returns the baseline tuning: min_support 3, absorption
// threshold 0.8, template ceiling 10000, zstd level 15, entropy
// dictionary enabled.
func DefaultConfig() Config { return config.Default() }

// LoadConfig reads and parses a YAML file at path, starting from
// DefaultConfig() so an omitted field keeps its default.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if err := config.LoadInto(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
