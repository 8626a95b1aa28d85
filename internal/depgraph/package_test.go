package depgraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cybertier/npm-dependency-guardian/internal/depgraph"
)

func TestPackageName(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"/app/node_modules/lodash", "lodash"},
		{"/app/node_modules/@babel/core", "@babel/core"},
		{"/app/node_modules/left-pad/", "left-pad"},
		{"/app/node_modules/a/node_modules/@scope/b", "@scope/b"},
		{"lodash", "lodash"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, depgraph.PackageName(c.path), c.path)
	}
}
