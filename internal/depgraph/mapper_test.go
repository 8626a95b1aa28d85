package depgraph_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cybertier/npm-dependency-guardian/internal/depgraph"
)

func TestNodeViewSurvivesCycle(t *testing.T) {
	root := t.TempDir()
	mkpkg(t, root, "node_modules/a")
	mkpkg(t, root, "node_modules/b")

	// a depends on b and b depends on a: legal under npm hoisting.
	lockfile := []byte(`{
		"lockfileVersion": 3,
		"packages": {
			"": {},
			"node_modules/a": { "dependencies": { "b": "^1.0.0" } },
			"node_modules/b": { "dependencies": { "a": "^1.0.0" } }
		}
	}`)
	g, err := depgraph.BuildGraph(root, lockfile)
	require.NoError(t, err)

	aPath := filepath.Join(root, "node_modules/a")
	node := g.NodeView(aPath)
	require.Equal(t, "a", node.Name)
	require.Len(t, node.Dependencies, 1)
	bNode := node.Dependencies[0]
	require.Equal(t, "b", bNode.Name)
	require.Len(t, bNode.Dependencies, 1)
	require.Same(t, node, bNode.Dependencies[0], "cyclic edge should resolve to the memoized node, not recurse forever")
}

func TestWalkVisitsEachNodeOnceUnderCycle(t *testing.T) {
	root := t.TempDir()
	mkpkg(t, root, "node_modules/a")
	mkpkg(t, root, "node_modules/b")
	mkpkg(t, root, "node_modules/c")

	lockfile := []byte(`{
		"lockfileVersion": 3,
		"packages": {
			"": {},
			"node_modules/a": { "dependencies": { "b": "^1.0.0" } },
			"node_modules/b": { "dependencies": { "c": "^1.0.0" } },
			"node_modules/c": { "dependencies": { "a": "^1.0.0" } }
		}
	}`)
	g, err := depgraph.BuildGraph(root, lockfile)
	require.NoError(t, err)

	aPath := filepath.Join(root, "node_modules/a")
	visited := map[string]int{}
	g.Walk(aPath, func(path string) {
		visited[path]++
	})
	for path, count := range visited {
		require.Equal(t, 1, count, "expected exactly one visit for %s", path)
	}
	require.Len(t, visited, 3)

	reachable := g.ReachableFrom(aPath)
	require.Len(t, reachable, 3)
}
