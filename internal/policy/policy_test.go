package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybertier/npm-dependency-guardian/internal/capture"
	"github.com/cybertier/npm-dependency-guardian/internal/policy"
)

func accWith(modules, globals, moduleMembers, globalMembers []string) *capture.Accumulator {
	acc := capture.NewAccumulator()
	for _, m := range modules {
		acc.Modules.Add(m)
	}
	for _, g := range globals {
		acc.Globals.Add(g)
	}
	for _, mm := range moduleMembers {
		acc.ModuleMembers.Add(mm)
	}
	for _, gm := range globalMembers {
		acc.GlobalMembers.Add(gm)
	}
	return acc
}

func TestAddPackageUnionsTwoInstalledCopies(t *testing.T) {
	p := policy.New(true)
	p.AddPackage("left-pad", accWith([]string{"fs"}, []string{"console"}, []string{"fs.readFile"}, []string{"console.log"}))
	p.AddPackage("left-pad", accWith([]string{"path"}, nil, []string{"path.join"}, nil))

	coarse := p.PolicyCoarse["left-pad"]
	assert.Equal(t, []string{"fs", "path"}, coarse.Modules)
	assert.Equal(t, []string{"console"}, coarse.Globals)

	fine := p.PolicyFine["left-pad"]
	assert.Equal(t, []string{"fs.readFile", "path.join"}, fine.Modules)
	assert.Equal(t, []string{"console.log"}, fine.Globals)
}

func TestAddPackageSkipsFineWhenTracingDisabled(t *testing.T) {
	p := policy.New(false)
	p.AddPackage("left-pad", accWith([]string{"fs"}, nil, []string{"fs.readFile"}, nil))
	assert.Empty(t, p.PolicyFine)
}

func TestFilterToBuiltinsDropsThirdPartyModules(t *testing.T) {
	p := policy.New(true)
	p.AddPackage("app", accWith([]string{"fs", "lodash"}, nil, []string{"fs.readFile", "lodash.map"}, nil))
	p.FilterToBuiltins()

	coarse := p.PolicyCoarse["app"]
	assert.Equal(t, []string{"fs"}, coarse.Modules)

	fine := p.PolicyFine["app"]
	assert.Equal(t, []string{"fs.readFile"}, fine.Modules)
}

func TestPolicyJSONRoundTrip(t *testing.T) {
	p := policy.New(true)
	p.AddPackage("app", accWith([]string{"fs"}, []string{"console"}, []string{"fs.readFile"}, []string{"console.log"}))

	data, err := p.MarshalJSON()
	require.NoError(t, err)

	parsed, err := policy.ParsePolicy(data)
	require.NoError(t, err)
	assert.Equal(t, p.PolicyCoarse, parsed.PolicyCoarse)
	assert.Equal(t, p.PolicyFine, parsed.PolicyFine)
	assert.True(t, parsed.MemberAccessTracing)
}

func TestIsBuiltinAcceptsNodePrefix(t *testing.T) {
	assert.True(t, policy.IsBuiltin("fs"))
	assert.True(t, policy.IsBuiltin("node:fs"))
	assert.False(t, policy.IsBuiltin("lodash"))
}
