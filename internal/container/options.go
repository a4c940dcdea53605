package container

// Options holds the writer's tunable parameters, threaded down from the
// root package's Config (internal/config).
type Options struct {
	MinSupport         int
	AbsorptionThreshold float64
	TemplateCeiling    int
	ZstdLevel          int
	EntropyDictionary  bool
}

// DefaultOptions returns the baseline tuning: min_support 3, absorption
// threshold 0.8, template ceiling 10000, zstd level 15.
func DefaultOptions() Options {
	return Options{
		MinSupport:          3,
		AbsorptionThreshold: 0.8,
		TemplateCeiling:     10000,
		ZstdLevel:           15,
		EntropyDictionary:   true,
	}
}
