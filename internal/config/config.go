// Package config loads the optional per-package policy.config.{json,yaml}
// file (§4.8) and resolves it against CLI flags and built-in defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultPolicyPath is where the policy is written/read absent any
// override (§6).
const DefaultPolicyPath = "/tmp/node_policy.json"

// File is the on-disk shape of policy.config.json / policy.config.yaml.
type File struct {
	PolicyPath         string   `json:"policyPath" yaml:"policyPath"`
	IncludeNonBuiltins bool     `json:"includeNonBuiltins" yaml:"includeNonBuiltins"`
	FineGrained        bool     `json:"fineGrained" yaml:"fineGrained"`
	Ignore             []string `json:"ignore" yaml:"ignore"`
}

// Resolved is the effective configuration after applying CLI > file >
// default precedence (§4.8).
type Resolved struct {
	PolicyPath         string
	IncludeNonBuiltins bool
	FineGrained        bool
	Ignore             []string
}

// Overrides carries the flags the CLI actually set; a nil *bool or empty
// string means "not set, fall through to the config file or default".
type Overrides struct {
	PolicyPath         *string
	IncludeNonBuiltins *bool
	FineGrained        *bool
}

// Load reads policy.config.json or policy.config.yaml from pkgRoot if
// either is present (json is tried first), and resolves it against
// overrides and built-in defaults. A missing config file is not an
// error (§4.8).
func Load(pkgRoot string, overrides Overrides) (*Resolved, error) {
	file, err := readFile(pkgRoot)
	if err != nil {
		return nil, err
	}

	resolved := &Resolved{
		PolicyPath: DefaultPolicyPath,
	}
	if file != nil {
		if file.PolicyPath != "" {
			resolved.PolicyPath = file.PolicyPath
		}
		resolved.IncludeNonBuiltins = file.IncludeNonBuiltins
		resolved.FineGrained = file.FineGrained
		resolved.Ignore = file.Ignore
	}

	if overrides.PolicyPath != nil && *overrides.PolicyPath != "" {
		resolved.PolicyPath = *overrides.PolicyPath
	}
	if overrides.IncludeNonBuiltins != nil {
		resolved.IncludeNonBuiltins = *overrides.IncludeNonBuiltins
	}
	if overrides.FineGrained != nil {
		resolved.FineGrained = *overrides.FineGrained
	}
	return resolved, nil
}

func readFile(pkgRoot string) (*File, error) {
	jsonPath := filepath.Join(pkgRoot, "policy.config.json")
	if data, err := os.ReadFile(jsonPath); err == nil {
		var f File
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", jsonPath, err)
		}
		return &f, nil
	}

	yamlPath := filepath.Join(pkgRoot, "policy.config.yaml")
	if data, err := os.ReadFile(yamlPath); err == nil {
		var f File
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", yamlPath, err)
		}
		return &f, nil
	}

	return nil, nil
}
