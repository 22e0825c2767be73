// Package config layers an optional musicbox.yaml over built-in defaults,
// with environment variables winning over both.
package config

import (
	"fmt"
	"os"

	"github.com/jsphweid/musicbox/constants"
	"gopkg.in/yaml.v3"
)

type Config struct {
	LibraryDir       string `yaml:"library_dir"`
	Addr             string `yaml:"addr"`
	GeminiAPIKey     string `yaml:"gemini_api_key"`
	Model            string `yaml:"model"`
	MetadataEndpoint string `yaml:"metadata_endpoint"`
}

func defaults() Config {
	return Config{
		LibraryDir: "./library",
		Addr:       ":8080",
		Model:      constants.DefaultModel,
	}
}

// Load resolves the effective config. The yaml file path comes from
// MUSICBOX_CONFIG, falling back to ./musicbox.yaml; a missing file is
// fine, a malformed one is not.
func Load() (Config, error) {
	cfg := defaults()

	path := os.Getenv("MUSICBOX_CONFIG")
	if path == "" {
		path = "musicbox.yaml"
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing %v: %w", path, err)
		}
	case !os.IsNotExist(err):
		return Config{}, fmt.Errorf("reading %v: %w", path, err)
	}

	if v := os.Getenv("LIBRARY_PATH"); v != "" {
		cfg.LibraryDir = v
	}
	if v := os.Getenv("MUSICBOX_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := constants.GetGeminiAPIKey(); v != "" {
		cfg.GeminiAPIKey = v
	}
	if v := os.Getenv("MUSICBOX_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := constants.GetMetadataEndpoint(); v != "" {
		cfg.MetadataEndpoint = v
	}
	return cfg, nil
}
