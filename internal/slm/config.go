package slm

import (
	"encoding/json"
	"fmt"
	"os"
)

// ConfigFileName is the extra file persisted next to the backend's own
// model artifacts.
const ConfigFileName = "model_config.json"

// Config is the closed set of options recognized by the local generator.
// Unknown fields in a persisted config are rejected at load time rather
// than silently accepted.
type Config struct {
	// ModelName is the model identifier known to the backend, or the
	// directory a saved generator was loaded from.
	ModelName string `json:"model_name"`
	// MaxLength bounds generated sequences in tokens.
	MaxLength int `json:"max_length"`
	// Device is "cpu" or "cuda".
	Device string `json:"device"`
	// Quantization is "", "4bit" or "8bit".
	Quantization string `json:"quantization,omitempty"`
	// FromLocal marks configs restored from a saved directory.
	FromLocal bool `json:"from_local"`
}

// DefaultConfig returns the configuration used when no saved model exists.
func DefaultConfig() *Config {
	return &Config{
		ModelName: "distilgpt2",
		MaxLength: 128,
		Device:    "cpu",
	}
}

// LoadConfig reads a persisted configuration. Unknown fields fail the
// load.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model config: %w", err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode model config %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes the configuration as indented JSON.
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "    ")
	if err != nil {
		return fmt.Errorf("encode model config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write model config: %w", err)
	}
	return nil
}
