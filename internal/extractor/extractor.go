// Package extractor wires the file enumerator, parser adapter,
// traversal driver, and capture analyzers together into one package's
// capability accumulator, then fans that out across every package in a
// dependency graph using a bounded worker pool (§5).
package extractor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"golang.org/x/sync/errgroup"

	"github.com/cybertier/npm-dependency-guardian/internal/capture"
	"github.com/cybertier/npm-dependency-guardian/internal/depgraph"
	"github.com/cybertier/npm-dependency-guardian/internal/jsast"
	"github.com/cybertier/npm-dependency-guardian/internal/jsparser"
	"github.com/cybertier/npm-dependency-guardian/internal/logging"
	"github.com/cybertier/npm-dependency-guardian/internal/policy"
	"github.com/cybertier/npm-dependency-guardian/internal/traverse"
)

// ErrUnknownPatternShape marks a package error as the panic-recovered
// "unknown pattern shape" case (§7), as opposed to an ordinary per-file
// read/parse failure. The CLI's run function uses errors.Is against this
// to decide whether the whole run must fail rather than just logging a
// warning.
var ErrUnknownPatternShape = errors.New("unknown pattern shape")

// defaultWorkerLimit bounds the per-package fan-out (§5: "bounded
// worker pool") to a fixed eight workers; analysis is CPU-bound and
// per-package work holds no locks across package boundaries.
const defaultWorkerLimit = 8

// Result is one package's analysis outcome: either a populated
// Accumulator, or an error if analysis could not complete for it.
type Result struct {
	PackagePath string
	PackageName string
	Accumulator *capture.Accumulator
	Err         error
}

// Extractor runs per-file and per-package capability extraction.
type Extractor struct {
	Logger      *logging.Logger
	FineGrained bool
	WorkerLimit int
}

// New returns an Extractor with a default worker limit and a no-op
// logger; set Logger to something real before Run for CLI diagnostics.
func New(fineGrained bool) *Extractor {
	return &Extractor{
		Logger:      logging.Noop(),
		FineGrained: fineGrained,
		WorkerLimit: defaultWorkerLimit,
	}
}

// AnalyzePackage parses and traverses every source file under pkgPath,
// merging their Accumulators into one. A per-file parse failure is
// logged and that file is skipped (§7); it never fails the package.
func (e *Extractor) AnalyzePackage(pkgPath string) (*capture.Accumulator, error) {
	files, err := depgraph.SourceFiles(pkgPath)
	if err != nil {
		return nil, fmt.Errorf("extractor: enumerate %s: %w", pkgPath, err)
	}

	acc := capture.NewAccumulator()
	for _, file := range files {
		contents, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("extractor: read %s: %w", file, err)
		}

		prog, parseErr := jsparser.Parse(jsparser.Source{Path: file, Contents: string(contents)})
		if parseErr != nil {
			e.Logger.ParseWarning(file, parseErr)
			continue
		}
		if prog == nil {
			continue
		}

		fileAcc := capture.NewAccumulator()
		if err := e.runFile(prog, fileAcc); err != nil {
			return nil, fmt.Errorf("extractor: %s: %w", file, err)
		}
		for _, w := range fileAcc.Warnings {
			e.Logger.ReExportWarning(file, w)
		}
		acc.Merge(fileAcc)
	}
	return acc, nil
}

// runFile drives the traversal, converting a panic (an AST shape no
// analyzer recognizes, §7's "unknown pattern shape") into a hard error
// instead of taking down the whole run.
func (e *Extractor) runFile(prog *jsast.Program, acc *capture.Accumulator) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v\n%s", ErrUnknownPatternShape, r, debug.Stack())
		}
	}()
	traverse.Run(prog, acc)
	return nil
}

// Run analyzes every package path in g, fanning out across a bounded
// worker pool (§5), and folds the results into a single Policy.
func (e *Extractor) Run(ctx context.Context, g *depgraph.Graph) (*policy.Policy, []Result) {
	paths := g.Paths()
	// The root package is analyzed even when the lockfile gave it no node
	// (a version-1 lockfile, or an unsupported schema version).
	hasRoot := false
	for _, path := range paths {
		if path == g.Root {
			hasRoot = true
		}
	}
	if !hasRoot && g.Root != "" {
		paths = append(paths, g.Root)
	}
	results := make([]Result, len(paths))

	group, _ := errgroup.WithContext(ctx)
	group.SetLimit(e.WorkerLimit)

	for i, path := range paths {
		i, path := i, path
		group.Go(func() error {
			acc, err := e.AnalyzePackage(path)
			results[i] = Result{
				PackagePath: path,
				PackageName: depgraph.PackageName(path),
				Accumulator: acc,
				Err:         err,
			}
			return nil
		})
	}
	_ = group.Wait()

	p := policy.New(e.FineGrained)
	for _, r := range results {
		if r.Err != nil {
			e.Logger.PackageError(r.PackagePath, r.Err)
			continue
		}
		p.AddPackage(r.PackageName, r.Accumulator)
	}
	return p, results
}
