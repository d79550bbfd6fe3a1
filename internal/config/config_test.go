package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/npillmayer/pwdict/strhash"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultsAreValid(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1000, cfg.Dictionary.ChainedCapacity)
	assert.Equal(t, 20000, cfg.Dictionary.ProbingCapacity)
	assert.Equal(t, 37, cfg.Dictionary.Multiplier)
	assert.Equal(t, 8, cfg.Classifier.MinLength)

	chained, probing, err := cfg.Hashers()
	require.NoError(t, err)
	assert.Equal(t, strhash.Polynomial{Strided: true}, chained)
	assert.Equal(t, strhash.Polynomial{}, probing)
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "pwcheck.toml", `
[dictionary]
path = "/usr/share/dict/words"
probingCapacity = 400000
probingHash = "xxhash"

[classifier]
minLength = 10
workers = 4

[logging]
level = "debug"
format = "json"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "/usr/share/dict/words", cfg.Dictionary.Path)
	assert.Equal(t, 400000, cfg.Dictionary.ProbingCapacity)
	assert.Equal(t, 1000, cfg.Dictionary.ChainedCapacity, "unset keys keep their defaults")
	assert.Equal(t, 10, cfg.Classifier.MinLength)
	assert.Equal(t, 4, cfg.Classifier.Workers)
	assert.Equal(t, "json", cfg.Logging.Format)
	_, probing, err := cfg.Hashers()
	require.NoError(t, err)
	assert.Equal(t, strhash.XXHash{}, probing)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "pwcheck.yaml", `
dictionary:
  path: words.txt
  multiplier: 31
metrics:
  addr: ":9108"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "words.txt", cfg.Dictionary.Path)
	assert.Equal(t, 31, cfg.Dictionary.Multiplier)
	assert.Equal(t, ":9108", cfg.Metrics.Addr)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PWDICT_DICTIONARY", "/tmp/other.txt")
	t.Setenv("PWDICT_MULTIPLIER", "41")
	t.Setenv("PWDICT_LOG_LEVEL", "warn")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/other.txt", cfg.Dictionary.Path)
	assert.Equal(t, 41, cfg.Dictionary.Multiplier)
	assert.Equal(t, "warn", cfg.Logging.Level)

	t.Setenv("PWDICT_MULTIPLIER", "many")
	_, err = Load("")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeFile(t, "pwcheck.ini", "x=1"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = Load(writeFile(t, "broken.toml", "[dictionary\npath ="))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Dictionary.ChainedCapacity = 0
	cfg.Dictionary.Multiplier = 0
	cfg.Classifier.MinLength = -1
	err := cfg.Validate()
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "chainedCapacity")
	assert.Contains(t, err.Error(), "multiplier")
	assert.Contains(t, err.Error(), "minLength")
}

func TestValidateSuggestsHashName(t *testing.T) {
	cfg := Default()
	cfg.Dictionary.ProbingHash = "xxhsah"
	err := cfg.Validate()
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), `did you mean "xxhash"?`)

	cfg.Dictionary.ProbingHash = "sha256-with-salt"
	err = cfg.Validate()
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "did you mean")
}
