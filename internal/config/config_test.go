package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/RowanDark/cipherlab/internal/alphabet"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default", func(c *Config) {}, false},
		{"reject policy", func(c *Config) { c.Policy = "reject" }, false},
		{"bad policy", func(c *Config) { c.Policy = "strip" }, true},
		{"bad filler", func(c *Config) { c.Filler = "xx" }, true},
		{"lowercase filler", func(c *Config) { c.Filler = "x" }, true},
		{"filler q", func(c *Config) { c.Filler = "Q" }, false},
		{"tiny rsa cap", func(c *Config) { c.RSAMaxBits = 32 }, true},
		{"bad log level", func(c *Config) { c.Log.Level = "trace" }, true},
		{"json log", func(c *Config) { c.Log.Format = "json" }, false},
		{"bad log format", func(c *Config) { c.Log.Format = "logfmt" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestApplyFileConfig(t *testing.T) {
	cfg := Default()
	data := []byte("policy: reject\nfiller: q\nrsa_max_bits: 1024\nlog:\n  level: debug\n")
	if err := applyFileConfig(&cfg, data); err != nil {
		t.Fatalf("applyFileConfig: %v", err)
	}

	if cfg.Policy != "reject" {
		t.Errorf("policy = %q, want reject", cfg.Policy)
	}
	if cfg.Filler != "Q" {
		t.Errorf("filler = %q, want Q", cfg.Filler)
	}
	if cfg.RSAMaxBits != 1024 {
		t.Errorf("rsa_max_bits = %d, want 1024", cfg.RSAMaxBits)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Log.Level)
	}
	// Untouched keys keep their defaults.
	if cfg.Log.Format != "text" {
		t.Errorf("log format = %q, want default text", cfg.Log.Format)
	}
}

func TestApplyFileConfigMalformed(t *testing.T) {
	cfg := Default()
	if err := applyFileConfig(&cfg, []byte("policy: [")); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CIPHERLAB_POLICY", "reject")
	t.Setenv("CIPHERLAB_FILLER", "z")
	t.Setenv("CIPHERLAB_RSA_MAX_BITS", "512")
	t.Setenv("CIPHERLAB_LOG_FORMAT", "json")

	cfg := Default()
	applyEnvOverrides(&cfg)

	if cfg.Policy != "reject" {
		t.Errorf("policy = %q, want reject", cfg.Policy)
	}
	if cfg.Filler != "Z" {
		t.Errorf("filler = %q, want Z", cfg.Filler)
	}
	if cfg.RSAMaxBits != 512 {
		t.Errorf("rsa_max_bits = %d, want 512", cfg.RSAMaxBits)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("log format = %q, want json", cfg.Log.Format)
	}
}

func TestLoadLocalConfig(t *testing.T) {
	dir := t.TempDir()
	content := "policy: reject\nrecipe_dir: /tmp/recipes\n"
	if err := os.WriteFile(filepath.Join(dir, "cipherlab.yml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	cfg := Default()
	if err := loadLocalConfig(&cfg); err != nil {
		t.Fatalf("loadLocalConfig: %v", err)
	}
	if cfg.Policy != "reject" {
		t.Errorf("policy = %q, want reject", cfg.Policy)
	}
	if cfg.RecipeDir != "/tmp/recipes" {
		t.Errorf("recipe_dir = %q", cfg.RecipeDir)
	}
}

func TestAlphabetPolicy(t *testing.T) {
	cfg := Default()
	if got := cfg.AlphabetPolicy(); got != alphabet.PolicyPassThrough {
		t.Errorf("AlphabetPolicy = %q, want pass", got)
	}
	cfg.Policy = "reject"
	if got := cfg.AlphabetPolicy(); got != alphabet.PolicyReject {
		t.Errorf("AlphabetPolicy = %q, want reject", got)
	}
}

func TestFillerRune(t *testing.T) {
	cfg := Default()
	if got := cfg.FillerRune(); got != 'X' {
		t.Errorf("FillerRune = %q, want X", got)
	}
}
