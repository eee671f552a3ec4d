// Package config loads the pypln command line configuration.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/hcl/v2/hclsimple"

	"github.com/namd/pypln-go/pkg/pypln"
)

// Environment variables that override the config file.
const (
	EnvBaseURL  = "PYPLN_BASE_URL"
	EnvUsername = "PYPLN_USERNAME"
	EnvPassword = "PYPLN_PASSWORD"
	EnvToken    = "PYPLN_TOKEN"
)

// Config is the root of a pypln configuration file.
//
//	log_level = "info"
//	output    = "table"
//
//	pypln {
//	  base_url = "https://demo.pypln.org"
//	  token    = "..."
//	}
type Config struct {
	// LogLevel is one of trace, debug, info, warn, error. Default: warn.
	LogLevel string `hcl:"log_level,optional"`

	// Output is the default output format: table, json or yaml.
	Output string `hcl:"output,optional"`

	// Client configures the connection to the PyPLN server.
	Client *pypln.Config `hcl:"pypln,block"`
}

// Load reads the config file at path, if path is not empty, then applies
// environment overrides and defaults. The result is not validated; the
// client validates it when it is built.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		if err := hclsimple.DecodeFile(path, nil, cfg); err != nil {
			return nil, fmt.Errorf("failed to load configuration from %s: %w", path, err)
		}
	}
	if cfg.Client == nil {
		cfg.Client = &pypln.Config{}
	}

	applyEnv(cfg.Client)

	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
	if hclog.LevelFromString(cfg.LogLevel) == hclog.NoLevel {
		return nil, fmt.Errorf("invalid log_level %q", cfg.LogLevel)
	}
	if cfg.Output == "" {
		cfg.Output = "table"
	}

	if err := cfg.Client.ApplyDefaults(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides client settings from the environment. Setting a token
// clears username/password and vice versa, so the environment can switch
// the authentication method chosen in the file.
func applyEnv(c *pypln.Config) {
	if val, ok := os.LookupEnv(EnvBaseURL); ok && val != "" {
		c.BaseURL = val
	}
	if val, ok := os.LookupEnv(EnvToken); ok && val != "" {
		c.Token = val
		c.Username, c.Password = "", ""
	}
	if val, ok := os.LookupEnv(EnvUsername); ok && val != "" {
		c.Username = val
		c.Token = ""
	}
	if val, ok := os.LookupEnv(EnvPassword); ok && val != "" {
		c.Password = val
		c.Token = ""
	}
}
