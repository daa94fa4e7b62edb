// Package instruments maps exchange instrument identifiers to contract
// multipliers (notional value per contract unit). The table is a fixed
// external fact: it can be loaded from a yaml file so new instruments
// do not require code changes.
package instruments

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Rule maps instrument ids containing Match to a contract multiplier.
type Rule struct {
	Match      string  `yaml:"match"`
	Multiplier float64 `yaml:"multiplier"`
}

// Table resolves a contract multiplier for an instrument id. The first
// matching rule wins; Default applies when no rule matches.
type Table struct {
	Rules   []Rule  `yaml:"rules"`
	Default float64 `yaml:"default"`
}

// DefaultTable returns the built-in table for the common USDT perpetual swaps.
func DefaultTable() *Table {
	return &Table{
		Rules: []Rule{
			{Match: "BTC", Multiplier: 0.01},
			{Match: "ETH", Multiplier: 0.1},
		},
		Default: 0.01,
	}
}

// Load reads a table from a yaml file.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read instruments file: %w", err)
	}

	var table Table
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parse instruments file: %w", err)
	}

	if err := table.validate(); err != nil {
		return nil, fmt.Errorf("invalid instruments file %s: %w", path, err)
	}

	return &table, nil
}

func (t *Table) validate() error {
	if t.Default <= 0 {
		return fmt.Errorf("default multiplier must be positive")
	}
	for i, rule := range t.Rules {
		if rule.Match == "" {
			return fmt.Errorf("rule %d: match pattern is empty", i)
		}
		if rule.Multiplier <= 0 {
			return fmt.Errorf("rule %d (%s): multiplier must be positive", i, rule.Match)
		}
	}
	return nil
}

// Multiplier resolves the contract multiplier for an instrument id.
func (t *Table) Multiplier(instID string) float64 {
	for _, rule := range t.Rules {
		if strings.Contains(instID, rule.Match) {
			return rule.Multiplier
		}
	}
	return t.Default
}
