package jsparser

import (
	"fmt"

	"github.com/cybertier/npm-dependency-guardian/internal/jsast"
)

// Error is one recovered syntax error. Parse keeps going after recording
// one, resyncing at the next statement boundary, so a single unparseable
// construct (a TypeScript annotation, a stage-3 proposal, a typo) does not
// hide the errors in the rest of the file; all of them are reported.
type Error struct {
	Path    string
	Span    jsast.Span
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s:%s: %s", e.Path, e.Span.Start, e.Message)
}
