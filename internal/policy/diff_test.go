package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cybertier/npm-dependency-guardian/internal/policy"
)

func TestCompareReportsAddedAndRemoved(t *testing.T) {
	oldPolicy := policy.New(false)
	oldPolicy.AddPackage("app", accWith([]string{"fs", "path"}, nil, nil, nil))

	newPolicy := policy.New(false)
	newPolicy.AddPackage("app", accWith([]string{"fs", "net"}, nil, nil, nil))

	d := policy.Compare(oldPolicy, newPolicy)
	assert.False(t, d.Empty())
	assert.Contains(t, d.Added, "app coarse.modules: net")
	assert.Contains(t, d.Removed, "app coarse.modules: path")
	assert.NotContains(t, d.Added, "app coarse.modules: fs")
}

func TestCompareEmptyWhenIdentical(t *testing.T) {
	a := policy.New(false)
	a.AddPackage("app", accWith([]string{"fs"}, nil, nil, nil))
	b := policy.New(false)
	b.AddPackage("app", accWith([]string{"fs"}, nil, nil, nil))

	d := policy.Compare(a, b)
	assert.True(t, d.Empty())
}
