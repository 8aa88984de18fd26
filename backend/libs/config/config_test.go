package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	HTTP struct {
		Port string `yaml:"port" env:"SAMPLE_HTTP_PORT"`
	} `yaml:"http"`
	Session struct {
		Driver string        `yaml:"driver"`
		TTL    time.Duration `yaml:"ttl"`
	} `yaml:"session"`
	Verbose bool `yaml:"verbose" env:"SAMPLE_VERBOSE"`
}

func TestLoadConfigFromFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http:\n  port: \"9000\"\nsession:\n  driver: redis\n"), 0o600))

	t.Setenv("SAMPLE_HTTP_PORT", "9100")
	t.Setenv("SESSION_TTL", "90s")
	t.Setenv("SAMPLE_VERBOSE", "true")

	var cfg sample
	require.NoError(t, LoadConfigFrom(path, &cfg))

	assert.Equal(t, "9100", cfg.HTTP.Port)
	assert.Equal(t, "redis", cfg.Session.Driver)
	assert.Equal(t, 90*time.Second, cfg.Session.TTL)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfigRejectsNonPointer(t *testing.T) {
	var cfg sample
	assert.Error(t, LoadConfigFrom("", cfg))
	assert.Error(t, LoadConfigFrom("", nil))
}

func TestLoadConfigReportsBadValue(t *testing.T) {
	t.Setenv("SAMPLE_VERBOSE", "maybe")
	var cfg sample
	err := LoadConfigFrom("", &cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SAMPLE_VERBOSE")
}

func TestLoadConfigRejectsUnsupportedKinds(t *testing.T) {
	var cfg struct {
		Sizes []string `env:"SAMPLE_SIZES"`
	}
	t.Setenv("SAMPLE_SIZES", "10,20")
	err := LoadConfigFrom("", &cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported field type")
}
