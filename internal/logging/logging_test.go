package logging_test

import (
	"errors"
	"testing"

	"github.com/cybertier/npm-dependency-guardian/internal/logging"
)

func TestNoopLoggerDoesNotPanic(t *testing.T) {
	l := logging.Noop()
	l.ParseWarning("pkg/index.js", errors.New("unexpected token"))
	l.ReExportWarning("pkg/index.js", "fs")
	l.PackageError("pkg", errors.New("unknown pattern shape"))
	l.Sync()
}

func TestSummaryDoesNotPanic(t *testing.T) {
	logging.Summary(3, 5, 2, 1)
}
