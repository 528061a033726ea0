package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	GraphPath string // .flow.hcl files
	Pattern   string // doublestar glob applied when GraphPath is a directory

	LogFormat   string
	LogLevel    string
	Emit        string // canonical output format: "hcl" or "yaml"
	Fingerprint bool   // print each description's content fingerprint
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.GraphPath == "" {
		return nil, errors.New("GraphPath is a required configuration field and cannot be empty")
	}
	if cfg.Pattern == "" {
		cfg.Pattern = "**/*.flow.hcl"
	}
	if cfg.Emit == "" {
		cfg.Emit = "hcl"
	}

	return &cfg, nil
}
