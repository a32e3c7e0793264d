package main

import (
	"context"
	"encoding/json"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/danielrbaughman/myairtable/internal/aterr"
	"github.com/danielrbaughman/myairtable/internal/cache"
	"github.com/danielrbaughman/myairtable/internal/drift"
	"github.com/danielrbaughman/myairtable/internal/ui"
	"github.com/danielrbaughman/myairtable/pkg/meta"
)

const (
	defaultConfigFile = "myairtable.yaml"
	defaultAPIKeyEnv  = "AIRTABLE_API_KEY"
	baseIDEnv         = "AIRTABLE_BASE_ID"
)

// Config represents the myairtable.yaml configuration file.
type Config struct {
	// APIKeyEnv names the environment variable holding the API key.
	APIKeyEnv string `yaml:"api_key_env"`
	// BaseID is the default base to operate on.
	BaseID string `yaml:"base_id"`
	// OutDir is where generated files are written.
	OutDir string `yaml:"out_dir"`
	// Package is the package name for generated Go bindings.
	Package string `yaml:"package"`
	// BaseURL overrides the API endpoint (used in tests).
	BaseURL string `yaml:"base_url"`
	// Naming maps table or field display names to the Go identifier the
	// generator should use instead of the sanitized one.
	Naming map[string]string `yaml:"naming"`
}

// loadConfig loads configuration from file and applies defaults.
// Precedence for individual values: CLI flags > env vars > config file.
func loadConfig() (*Config, error) {
	cfg := &Config{
		APIKeyEnv: defaultAPIKeyEnv,
		OutDir:    ".",
		Package:   "basegen",
	}

	data, err := os.ReadFile(configFile)
	if err != nil {
		if os.IsNotExist(err) {
			// Only an error when the user pointed at a specific file.
			if configFile != defaultConfigFile {
				return nil, aterr.New(aterr.ErrConfigNotFound, "config file does not exist").
					With("path", configFile)
			}
			return cfg, nil
		}
		return nil, aterr.Wrap(aterr.ErrConfigInvalid, err, "failed to read config file").
			With("path", configFile)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, aterr.Wrap(aterr.ErrConfigInvalid, err, "failed to parse config file").
			With("path", configFile)
	}
	if cfg.APIKeyEnv == "" {
		cfg.APIKeyEnv = defaultAPIKeyEnv
	}
	if cfg.OutDir == "" {
		cfg.OutDir = "."
	}
	if cfg.Package == "" {
		cfg.Package = "basegen"
	}

	return cfg, nil
}

// apiKey resolves the API key from the configured environment variable.
func (c *Config) apiKey() (string, error) {
	key := os.Getenv(c.APIKeyEnv)
	if key == "" {
		return "", aterr.New(aterr.ErrMissingAPIKey, "API key not set").
			With("env", c.APIKeyEnv)
	}
	return key, nil
}

// base resolves the base ID: --base flag, then env, then config file.
func (c *Config) base() (string, error) {
	if baseIDFlag != "" {
		return baseIDFlag, nil
	}
	if env := os.Getenv(baseIDEnv); env != "" {
		return env, nil
	}
	if c.BaseID != "" {
		return c.BaseID, nil
	}
	return "", aterr.New(aterr.ErrMissingBaseID, "base ID not set")
}

// newMetaClient builds a metadata API client from the config.
func newMetaClient(cfg *Config) (*meta.Client, error) {
	key, err := cfg.apiKey()
	if err != nil {
		return nil, err
	}
	var opts []meta.Option
	if cfg.BaseURL != "" {
		opts = append(opts, meta.WithBaseURL(cfg.BaseURL))
	}
	return meta.NewClient(key, opts...), nil
}

// fetchSchema fetches the live schema with a spinner and refreshes the
// cache snapshot and drift baseline.
func fetchSchema(ctx context.Context, cfg *Config, baseID string) (*meta.Schema, error) {
	client, err := newMetaClient(cfg)
	if err != nil {
		return nil, err
	}

	spin := ui.NewSpinner("fetching base schema")
	spin.Start()
	schema, err := client.BaseSchema(ctx, baseID)
	if err != nil {
		spin.Error("failed to fetch schema")
		return nil, err
	}
	spin.Stop()

	if c, err := cache.Open("."); err == nil {
		defer c.Close()
		_ = c.SetSchemaSnapshot(baseID, schema)
		if hash, err := drift.ComputeSchemaHash(schema); err == nil {
			_ = c.SetMerkleHash(baseID, hash)
		}
	}

	return schema, nil
}

// cachedSchema loads the snapshot for a base from the local cache.
func cachedSchema(baseID string) (*meta.Schema, error) {
	c, err := cache.Open(".")
	if err != nil {
		return nil, err
	}
	defer c.Close()
	return c.RequireSchemaSnapshot(baseID)
}

// writeSchemaJSON writes the schema snapshot as indented JSON.
func writeSchemaJSON(schema *meta.Schema, path string) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return aterr.Wrap(aterr.ErrGenWrite, err, "failed to encode schema").
			With("path", path)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil {
		return aterr.Wrap(aterr.ErrGenWrite, err, "failed to write schema file").
			With("path", path)
	}
	return nil
}
