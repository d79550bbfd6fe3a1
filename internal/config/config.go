// Package config loads and validates the configuration of the pwcheck tool
// from TOML or YAML files with environment-variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hbollon/go-edlib"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/npillmayer/pwdict"
	"github.com/npillmayer/pwdict/strhash"
)

// ErrInvalidConfig is wrapped by all validation errors.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the top-level configuration.
type Config struct {
	Dictionary DictionaryConfig `toml:"dictionary" yaml:"dictionary"`
	Classifier ClassifierConfig `toml:"classifier" yaml:"classifier"`
	Logging    LoggingConfig    `toml:"logging" yaml:"logging"`
	Metrics    MetricsConfig    `toml:"metrics" yaml:"metrics"`
}

// DictionaryConfig describes the word list and the tables it is loaded into.
type DictionaryConfig struct {
	Path            string `toml:"path" yaml:"path"`
	ChainedCapacity int    `toml:"chainedCapacity" yaml:"chainedCapacity"`
	ProbingCapacity int    `toml:"probingCapacity" yaml:"probingCapacity"`
	Multiplier      int    `toml:"multiplier" yaml:"multiplier"`
	ChainedHash     string `toml:"chainedHash" yaml:"chainedHash"`
	ProbingHash     string `toml:"probingHash" yaml:"probingHash"`
}

// ClassifierConfig controls password classification.
type ClassifierConfig struct {
	MinLength int `toml:"minLength" yaml:"minLength"`
	Workers   int `toml:"workers" yaml:"workers"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// MetricsConfig controls the Prometheus endpoint. An empty Addr disables it.
type MetricsConfig struct {
	Addr string `toml:"addr" yaml:"addr"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Dictionary: DictionaryConfig{
			Path:            "Dictionary.csv",
			ChainedCapacity: pwdict.DefaultChainedCapacity,
			ProbingCapacity: pwdict.DefaultProbingCapacity,
			Multiplier:      pwdict.DefaultMultiplier,
			ChainedHash:     strhash.NamePolynomialStrided,
			ProbingHash:     strhash.NamePolynomial,
		},
		Classifier: ClassifierConfig{
			MinLength: pwdict.DefaultMinLength,
			Workers:   1,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the configuration file at path on top of the defaults, then
// applies environment overrides. The format follows the file extension:
// .toml, .yaml or .yml. An empty path yields defaults plus overrides.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		switch ext := strings.ToLower(filepath.Ext(path)); ext {
		case ".toml":
			err = toml.Unmarshal(data, cfg)
		case ".yaml", ".yml":
			err = yaml.Unmarshal(data, cfg)
		default:
			err = fmt.Errorf("%w: unsupported config format %q", ErrInvalidConfig, ext)
		}
		if err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PWDICT_DICTIONARY"); v != "" {
		c.Dictionary.Path = v
	}
	if v := os.Getenv("PWDICT_MULTIPLIER"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: PWDICT_MULTIPLIER=%q: %w", ErrInvalidConfig, v, err)
		}
		c.Dictionary.Multiplier = m
	}
	if v := os.Getenv("PWDICT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	return nil
}

// Validate checks the configuration for values the tool cannot work with.
func (c *Config) Validate() error {
	var errs []error
	if c.Dictionary.Path == "" {
		errs = append(errs, errors.New("dictionary.path is empty"))
	}
	if c.Dictionary.ChainedCapacity < 1 {
		errs = append(errs, fmt.Errorf("dictionary.chainedCapacity must be positive, is %d", c.Dictionary.ChainedCapacity))
	}
	if c.Dictionary.ProbingCapacity < 1 {
		errs = append(errs, fmt.Errorf("dictionary.probingCapacity must be positive, is %d", c.Dictionary.ProbingCapacity))
	}
	if c.Dictionary.Multiplier == 0 {
		errs = append(errs, errors.New("dictionary.multiplier must not be 0"))
	}
	if c.Classifier.MinLength < 1 {
		errs = append(errs, fmt.Errorf("classifier.minLength must be positive, is %d", c.Classifier.MinLength))
	}
	if c.Classifier.Workers < 0 {
		errs = append(errs, fmt.Errorf("classifier.workers must not be negative, is %d", c.Classifier.Workers))
	}
	for key, name := range map[string]string{
		"dictionary.chainedHash": c.Dictionary.ChainedHash,
		"dictionary.probingHash": c.Dictionary.ProbingHash,
	} {
		if _, err := strhash.ByName(name); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w%s", key, err, suggest(name, strhash.Names())))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// Hashers resolves the configured hash strategies.
func (c *Config) Hashers() (chained, probing strhash.Hasher, err error) {
	if chained, err = strhash.ByName(c.Dictionary.ChainedHash); err != nil {
		return nil, nil, err
	}
	if probing, err = strhash.ByName(c.Dictionary.ProbingHash); err != nil {
		return nil, nil, err
	}
	return chained, probing, nil
}

// suggest returns a "did you mean" hint for the closest known name, or "".
func suggest(input string, known []string) string {
	const maxDistance = 3
	best, bestDistance := "", maxDistance+1
	for _, k := range known {
		d := edlib.LevenshteinDistance(strings.ToLower(input), k)
		if d < bestDistance {
			best, bestDistance = k, d
		}
	}
	if best == "" {
		return ""
	}
	return fmt.Sprintf(" (did you mean %q?)", best)
}
