package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMatchesContainerDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 3, cfg.MinSupport)
	assert.Equal(t, 10000, cfg.TemplateCeiling)
	assert.InDelta(t, 0.8, cfg.AbsorptionThreshold, 1e-9)
	assert.Equal(t, 15, cfg.ZstdLevel)
	assert.True(t, cfg.EntropyDictionary)
}

func TestLoadOverridesOnlyPresentFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logsim.yaml")
	require.NoError(t, os.WriteFile(path, []byte("min_support: 5\nzstd_level: 3\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.MinSupport)
	assert.Equal(t, 3, cfg.ZstdLevel)
	// Fields absent from the file keep Default()'s values.
	assert.Equal(t, 10000, cfg.TemplateCeiling)
	assert.True(t, cfg.EntropyDictionary)
}

func TestLoadMissingFileReturnsWrappedError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: reading")
}

func TestLoadInvalidYAMLReturnsWrappedError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("min_support: [this is not an int"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: parsing")
}

func TestToOptionsRoundTrip(t *testing.T) {
	cfg := Default()
	opts := cfg.ToOptions()
	assert.Equal(t, cfg.MinSupport, opts.MinSupport)
	assert.Equal(t, cfg.TemplateCeiling, opts.TemplateCeiling)
	assert.InDelta(t, cfg.AbsorptionThreshold, opts.AbsorptionThreshold, 1e-9)
	assert.Equal(t, cfg.ZstdLevel, opts.ZstdLevel)
	assert.Equal(t, cfg.EntropyDictionary, opts.EntropyDictionary)
}
