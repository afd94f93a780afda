// Package config resolves the CipherLab configuration from defaults, an
// optional cipherlab.yml in the working directory or the user's home config
// directory, and CIPHERLAB_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/RowanDark/cipherlab/internal/alphabet"
)

// Config captures every tunable of the engine and CLI.
type Config struct {
	// Policy is the non-alphabet character policy: "pass" or "reject".
	Policy string `yaml:"policy"`

	// Filler pads Playfair digraphs, Hill blocks, and columnar rows.
	Filler string `yaml:"filler"`

	// RSAMaxBits caps requested RSA modulus sizes.
	RSAMaxBits int `yaml:"rsa_max_bits"`

	// RecipeDir is where named cipher recipes are persisted. Empty keeps
	// recipes in memory only.
	RecipeDir string `yaml:"recipe_dir"`

	Log LogConfig `yaml:"log"`
}

// LogConfig controls the CLI logger.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Policy:     "pass",
		Filler:     "X",
		RSAMaxBits: 4096,
		RecipeDir:  "",
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load resolves the configuration. File lookup order:
//  1. ./cipherlab.yml
//  2. ~/.cipherlab/config.yml
//
// Environment variables prefixed with CIPHERLAB_ take highest precedence.
func Load() (Config, error) {
	cfg := Default()

	if err := loadHomeConfig(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadLocalConfig(&cfg); err != nil {
		return Config{}, err
	}
	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the engine cannot honor.
func (c Config) Validate() error {
	switch c.Policy {
	case "pass", "reject":
	default:
		return fmt.Errorf("policy must be \"pass\" or \"reject\", got %q", c.Policy)
	}
	if f := []rune(c.Filler); len(f) != 1 || f[0] < 'A' || f[0] > 'Z' {
		return fmt.Errorf("filler must be a single uppercase letter, got %q", c.Filler)
	}
	if c.RSAMaxBits < 64 {
		return fmt.Errorf("rsa_max_bits must be at least 64, got %d", c.RSAMaxBits)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log format %q is not text or json", c.Log.Format)
	}
	return nil
}

// FillerRune returns the configured filler as a rune.
func (c Config) FillerRune() rune {
	return []rune(c.Filler)[0]
}

// AlphabetPolicy returns the policy as the alphabet package's type. Call
// Validate first; unknown values fall back to pass-through.
func (c Config) AlphabetPolicy() alphabet.Policy {
	p, err := alphabet.ParsePolicy(c.Policy)
	if err != nil {
		return alphabet.PolicyPassThrough
	}
	return p
}

func loadHomeConfig(cfg *Config) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	path := filepath.Join(home, ".cipherlab", "config.yml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := applyFileConfig(cfg, data); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func loadLocalConfig(cfg *Config) error {
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("determine working directory: %w", err)
	}
	path := filepath.Join(wd, "cipherlab.yml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := applyFileConfig(cfg, data); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// fileConfig uses pointer fields so an absent key leaves the default alone.
type fileConfig struct {
	Policy     *string        `yaml:"policy"`
	Filler     *string        `yaml:"filler"`
	RSAMaxBits *int           `yaml:"rsa_max_bits"`
	RecipeDir  *string        `yaml:"recipe_dir"`
	Log        *fileLogConfig `yaml:"log"`
}

type fileLogConfig struct {
	Level  *string `yaml:"level"`
	Format *string `yaml:"format"`
}

func applyFileConfig(cfg *Config, data []byte) error {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return err
	}

	if fc.Policy != nil {
		cfg.Policy = strings.TrimSpace(*fc.Policy)
	}
	if fc.Filler != nil {
		cfg.Filler = strings.ToUpper(strings.TrimSpace(*fc.Filler))
	}
	if fc.RSAMaxBits != nil {
		cfg.RSAMaxBits = *fc.RSAMaxBits
	}
	if fc.RecipeDir != nil {
		cfg.RecipeDir = strings.TrimSpace(*fc.RecipeDir)
	}
	if fc.Log != nil {
		if fc.Log.Level != nil {
			cfg.Log.Level = strings.TrimSpace(*fc.Log.Level)
		}
		if fc.Log.Format != nil {
			cfg.Log.Format = strings.TrimSpace(*fc.Log.Format)
		}
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if val := strings.TrimSpace(os.Getenv("CIPHERLAB_POLICY")); val != "" {
		cfg.Policy = val
	}
	if val := strings.TrimSpace(os.Getenv("CIPHERLAB_FILLER")); val != "" {
		cfg.Filler = strings.ToUpper(val)
	}
	if val := strings.TrimSpace(os.Getenv("CIPHERLAB_RSA_MAX_BITS")); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			cfg.RSAMaxBits = parsed
		}
	}
	if val := strings.TrimSpace(os.Getenv("CIPHERLAB_RECIPE_DIR")); val != "" {
		cfg.RecipeDir = val
	}
	if val := strings.TrimSpace(os.Getenv("CIPHERLAB_LOG_LEVEL")); val != "" {
		cfg.Log.Level = val
	}
	if val := strings.TrimSpace(os.Getenv("CIPHERLAB_LOG_FORMAT")); val != "" {
		cfg.Log.Format = val
	}
}
