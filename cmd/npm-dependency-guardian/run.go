package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cybertier/npm-dependency-guardian/internal/config"
	"github.com/cybertier/npm-dependency-guardian/internal/depgraph"
	"github.com/cybertier/npm-dependency-guardian/internal/extractor"
	"github.com/cybertier/npm-dependency-guardian/internal/logging"
	"github.com/cybertier/npm-dependency-guardian/internal/policy"
)

// runOptions mirrors the CLI flags in main.go as a plain struct so run
// can be exercised without going through flag.FlagSet.
type runOptions struct {
	PackageRoot string
	Write       bool
	Locations   bool
	Fine        bool
	NoBackup    bool
	AllModules  bool
	Stdout      bool
	PolicyFile  string
	Diff        bool
}

// run loads the lockfile, fans analysis out across the dependency
// graph, merges the result into a Policy, and handles the write/stdout/
// diff output modes (§6).
func run(stdout, stderr io.Writer, opts runOptions) error {
	root, err := filepath.Abs(opts.PackageRoot)
	if err != nil {
		return fmt.Errorf("resolve package root: %w", err)
	}
	if _, err := os.Stat(filepath.Join(root, "package.json")); err != nil {
		return fmt.Errorf("missing root manifest: %w", err)
	}

	var overrides config.Overrides
	if opts.PolicyFile != "" {
		overrides.PolicyPath = &opts.PolicyFile
	}
	if opts.Fine {
		overrides.FineGrained = &opts.Fine
	}
	if opts.AllModules {
		overrides.IncludeNonBuiltins = &opts.AllModules
	}

	cfg, err := config.Load(root, overrides)
	if err != nil {
		return err
	}

	g, err := loadGraph(root)
	if err != nil {
		return err
	}

	logger, err := logging.New()
	if err != nil {
		return err
	}
	defer logger.Sync()

	ex := extractor.New(cfg.FineGrained)
	ex.Logger = logger

	result, results := ex.Run(context.Background(), g)
	if !cfg.IncludeNonBuiltins {
		result.FilterToBuiltins()
	}

	warnings := 0
	modules, globals := 0, 0
	for _, r := range results {
		if r.Err != nil {
			if errors.Is(r.Err, extractor.ErrUnknownPatternShape) {
				return fmt.Errorf("%s: %w", r.PackagePath, r.Err)
			}
			warnings++
		}
	}
	for _, c := range result.PolicyCoarse {
		modules += len(c.Modules)
		globals += len(c.Globals)
	}
	logging.Summary(len(results), modules, globals, warnings)

	if opts.Stdout {
		data, err := result.MarshalJSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, string(data))
	}

	if opts.Diff || opts.Write {
		if err := handlePersistence(stdout, cfg.PolicyPath, result, opts); err != nil {
			return err
		}
	}

	return nil
}

func loadGraph(root string) (*depgraph.Graph, error) {
	lockfilePath, ok := depgraph.LockfilePath(root)
	if !ok {
		return nil, fmt.Errorf("missing root lockfile (package-lock.json or npm-shrinkwrap.json) under %s", root)
	}
	contents, err := os.ReadFile(lockfilePath)
	if err != nil {
		return nil, fmt.Errorf("read lockfile %s: %w", lockfilePath, err)
	}
	g, err := depgraph.BuildGraph(root, contents)
	if err != nil && g == nil {
		return nil, err
	}
	return g, nil
}

// handlePersistence reads any previously-written policy for the diff
// report, then writes the new one (with a .old backup unless
// suppressed) when -write was passed.
func handlePersistence(stdout io.Writer, policyPath string, newPolicy *policy.Policy, opts runOptions) error {
	var oldPolicy *policy.Policy
	if existing, err := os.ReadFile(policyPath); err == nil {
		oldPolicy, _ = policy.ParsePolicy(existing)
	}
	if oldPolicy == nil {
		oldPolicy = policy.New(newPolicy.MemberAccessTracing)
	}

	if opts.Diff {
		d := policy.Compare(oldPolicy, newPolicy)
		if d.Empty() {
			fmt.Fprintln(stdout, "no changes")
		} else {
			fmt.Fprint(stdout, policy.Render(d))
		}
	}

	if !opts.Write {
		return nil
	}

	if !opts.NoBackup {
		if existing, err := os.ReadFile(policyPath); err == nil {
			if err := os.WriteFile(policyPath+".old", existing, 0o644); err != nil {
				return fmt.Errorf("write backup: %w", err)
			}
		}
	}

	data, err := newPolicy.MarshalJSON()
	if err != nil {
		return err
	}
	if err := os.WriteFile(policyPath, data, 0o644); err != nil {
		return fmt.Errorf("write policy file %s: %w", policyPath, err)
	}
	return nil
}
