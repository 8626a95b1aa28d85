// Package logging wraps a sugared zap.Logger for the extractor's
// non-fatal diagnostics (parse failures, re-export-all warnings) and
// fatih/color helpers for the CLI's human-facing summary output.
package logging

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"go.uber.org/zap"
)

// Logger is the extractor-wide diagnostic sink. Nothing it logs aborts
// a run; hard errors are returned values, not log lines (§7).
type Logger struct {
	sugar *zap.SugaredLogger
}

// New builds a console-encoded, debug-level Logger suited to CLI use.
func New() (*Logger, error) {
	zl, err := zap.NewDevelopment()
	if err != nil {
		return nil, fmt.Errorf("logging: build logger: %w", err)
	}
	return &Logger{sugar: zl.Sugar()}, nil
}

// Noop returns a Logger that discards everything, for tests that don't
// care about log output.
func Noop() *Logger {
	return &Logger{sugar: zap.NewNop().Sugar()}
}

// ParseWarning logs a recovered parse error for one file; the file is
// still skipped by the caller, not the logger.
func (l *Logger) ParseWarning(path string, err error) {
	l.sugar.Warnw("parse error, skipping file", "path", path, "error", err)
}

// ReExportWarning logs the §4.4/§7 re-export-all-with-literal-source
// case: the module is recorded as reachable but its members are not
// enumerated.
func (l *Logger) ReExportWarning(path, module string) {
	l.sugar.Warnw("re-export-all with literal source; members not enumerated", "path", path, "module", module)
}

// PackageError logs a hard, per-package extractor error (an unknown
// pattern shape, §7) without aborting the rest of the run.
func (l *Logger) PackageError(pkgPath string, err error) {
	l.sugar.Errorw("package analysis failed", "package", pkgPath, "error", err)
}

// Sync flushes any buffered log entries; call before process exit.
func (l *Logger) Sync() {
	_ = l.sugar.Sync()
}

// Summary prints a short, coloured run summary to stdout (§6): packages
// analyzed, modules/globals found, and any warnings encountered.
func Summary(packages, modules, globals, warnings int) {
	bold := color.New(color.Bold)
	bold.Fprintf(os.Stdout, "analyzed %d package(s)\n", packages)
	color.New(color.FgCyan).Fprintf(os.Stdout, "  modules: %d  globals: %d\n", modules, globals)
	if warnings > 0 {
		color.New(color.FgYellow).Fprintf(os.Stdout, "  warnings: %d\n", warnings)
	}
}
