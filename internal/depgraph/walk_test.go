package depgraph_test

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cybertier/npm-dependency-guardian/internal/depgraph"
)

func writeFile(t *testing.T, root, rel, contents string) {
	t.Helper()
	full := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(contents), 0o644))
}

func TestSourceFilesExcludesNodeModulesAndDotfiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "index.js", "module.exports = {};")
	writeFile(t, root, "lib/util.mjs", "export const x = 1;")
	writeFile(t, root, "lib/legacy.cjs", "module.exports = {};")
	writeFile(t, root, ".hidden/ignored.js", "x();")
	writeFile(t, root, "node_modules/dep/index.js", "x();")
	writeFile(t, root, "README.md", "not source")

	files, err := depgraph.SourceFiles(root)
	require.NoError(t, err)

	var rels []string
	for _, f := range files {
		rel, err := filepath.Rel(root, f)
		require.NoError(t, err)
		rels = append(rels, rel)
	}
	sort.Strings(rels)
	require.Equal(t, []string{"index.js", "lib/legacy.cjs", "lib/util.mjs"}, rels)
}

func TestSourceFilesHonorsPolicyIgnore(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "index.js", "x();")
	writeFile(t, root, "generated/bundle.js", "x();")
	writeFile(t, root, ".policyignore", "generated/\n")

	files, err := depgraph.SourceFiles(root)
	require.NoError(t, err)

	var rels []string
	for _, f := range files {
		rel, err := filepath.Rel(root, f)
		require.NoError(t, err)
		rels = append(rels, rel)
	}
	require.Equal(t, []string{"index.js"}, rels)
}
