// Package config loads the optional YAML rules file of the CLI: a list of
// match-and-replace patterns applied in order, plus run defaults.
package config

import (
	"bytes"
	"context"
	"os"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/mrpkit/mrp/pkg/mrp"
)

// Rule is one pattern to apply during a run.
type Rule struct {
	Pattern string `yaml:"pattern"`
	Strip   bool   `yaml:"strip,omitempty"`
}

// Config is the rules-file surface of the CLI. CLI flags override the run
// defaults declared here.
type Config struct {
	Rules   []Rule `yaml:"rules"`
	Workers int    `yaml:"workers,omitempty"`
	DryRun  bool   `yaml:"dry_run,omitempty"`
}

// Load reads and validates a rules file. Every pattern is compiled here, so
// a bad rule fails fast with the parser's positioned diagnostics instead of
// halfway through a batch.
func Load(ctx context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading rules file: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var cfg Config
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("parsing rules file %s: %w", path, err)
	}

	if len(cfg.Rules) == 0 {
		return nil, errors.Errorf("rules file %s declares no rules", path)
	}
	for i, rule := range cfg.Rules {
		if _, err := mrp.Compile(rule.Pattern); err != nil {
			return nil, errors.Errorf("rule %d (%q): %w", i+1, rule.Pattern, err)
		}
	}

	zerolog.Ctx(ctx).Debug().
		Int("rules", len(cfg.Rules)).
		Str("path", path).
		Msg("loaded rules file")

	return &cfg, nil
}

// Strategy compiles every rule, in declaration order, into one strategy
// that chains them: each rule transforms the output of the one before it.
func (c *Config) Strategy() (mrp.MatchAndReplaceStrategy, error) {
	chain := make(mrp.Chain, 0, len(c.Rules))
	for i, rule := range c.Rules {
		r, err := mrp.Compile(rule.Pattern)
		if err != nil {
			return nil, errors.Errorf("rule %d (%q): %w", i+1, rule.Pattern, err)
		}
		r.SetStrip(rule.Strip)
		chain = append(chain, r)
	}
	if len(chain) == 1 {
		return chain[0], nil
	}
	return chain, nil
}
