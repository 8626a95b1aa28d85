package extractor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cybertier/npm-dependency-guardian/internal/capture"
)

// TestRunFileRecoversPanicAsUnknownPatternShape exercises §7's hard-error
// case directly: a traversal panic (here, a nil *jsast.Program standing in
// for an AST shape no analyzer recognizes) must come back wrapped in
// ErrUnknownPatternShape, not as an ordinary error, so callers can tell it
// apart from a per-file parse failure.
func TestRunFileRecoversPanicAsUnknownPatternShape(t *testing.T) {
	e := New(false)
	err := e.runFile(nil, capture.NewAccumulator())
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownPatternShape))
}
