package extractor_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybertier/npm-dependency-guardian/internal/depgraph"
	"github.com/cybertier/npm-dependency-guardian/internal/extractor"
)

func writeFile(t *testing.T, root, rel, contents string) {
	t.Helper()
	full := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(contents), 0o644))
}

func TestAnalyzePackageCollectsModulesAndGlobals(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "index.js", `const fs = require('fs');
fs.readFileSync('x');
console.log('hi');`)

	e := extractor.New(true)
	acc, err := e.AnalyzePackage(root)
	require.NoError(t, err)
	assert.True(t, acc.Modules.Contains("fs"))
	assert.True(t, acc.Globals.Contains("console"))
	assert.True(t, acc.ModuleMembers.Contains("fs.readFileSync"))
	assert.True(t, acc.GlobalMembers.Contains("console.log"))
}

func TestAnalyzePackageIgnoresComputedMemberWithVariableKey(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "index.js", `const fs = require('fs');
const key = 'readFileSync';
fs[key]('x');`)

	e := extractor.New(true)
	acc, err := e.AnalyzePackage(root)
	require.NoError(t, err)
	assert.True(t, acc.Modules.Contains("fs"))
	assert.False(t, acc.ModuleMembers.Contains("fs.key"))
	assert.False(t, acc.ModuleMembers.Contains("fs.readFileSync"))
}

func TestAnalyzePackageDestructuresGlobal(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "index.js", `const { log } = console;
log('hi');`)

	e := extractor.New(true)
	acc, err := e.AnalyzePackage(root)
	require.NoError(t, err)
	assert.True(t, acc.Globals.Contains("console"))
	assert.True(t, acc.GlobalMembers.Contains("console.log"))
}

func TestAnalyzePackageSkipsUnparseableFileButContinues(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "good.js", "const fs = require('fs'); fs.readFileSync('x');")
	writeFile(t, root, "bad.js", "const = = = ;;; {{{")

	e := extractor.New(false)
	acc, err := e.AnalyzePackage(root)
	require.NoError(t, err)
	assert.True(t, acc.Modules.Contains("fs"))
}

func TestRunMergesAcrossPackages(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "index.js", "require('fs');")
	writeFile(t, root, "node_modules/dep/index.js", "require('path');")

	lockfile := []byte(`{
		"lockfileVersion": 3,
		"packages": {
			"": {"dependencies": {"dep": "^1.0.0"}},
			"node_modules/dep": {}
		}
	}`)
	g, err := depgraph.BuildGraph(root, lockfile)
	require.NoError(t, err)
	depIncluded := false
	for _, p := range g.Paths() {
		if p == filepath.Join(root, "node_modules/dep") {
			depIncluded = true
		}
	}
	assert.True(t, depIncluded)

	e := extractor.New(false)
	p, results := e.Run(context.Background(), g)
	require.Len(t, results, len(g.Paths()))
	assert.True(t, p.PolicyCoarse["dep"].Modules != nil)
}

// TestRunIsDeterministic exercises §8's determinism property: running
// the extractor twice over the same tree must produce an identical
// policy, independent of map/filesystem iteration order.
func TestRunIsDeterministic(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "index.js", "const fs = require('fs'); fs.readFileSync('x'); require('path'); console.log('hi');")
	writeFile(t, root, "package-lock.json", `{"lockfileVersion": 3, "packages": {"": {}}}`)

	lockfile := []byte(`{"lockfileVersion": 3, "packages": {"": {}}}`)
	g, err := depgraph.BuildGraph(root, lockfile)
	require.NoError(t, err)

	e := extractor.New(true)
	first, _ := e.Run(context.Background(), g)
	second, _ := e.Run(context.Background(), g)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("policy differs across identical runs (-first +second):\n%s", diff)
	}
}
