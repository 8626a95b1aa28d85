package depgraph_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cybertier/npm-dependency-guardian/internal/depgraph"
)

func mkpkg(t *testing.T, root, relPath string) {
	t.Helper()
	full := filepath.Join(root, relPath)
	require.NoError(t, os.MkdirAll(full, 0o755))
}

func TestBuildGraphV1(t *testing.T) {
	root := t.TempDir()
	mkpkg(t, root, "node_modules/left-pad")
	mkpkg(t, root, "node_modules/chalk")
	mkpkg(t, root, "node_modules/chalk/node_modules/ansi-styles")

	lockfile := []byte(`{
		"lockfileVersion": 1,
		"dependencies": {
			"left-pad": { "version": "1.0.0" },
			"chalk": {
				"version": "4.0.0",
				"requires": { "ansi-styles": "^4.0.0" },
				"dependencies": {
					"ansi-styles": { "version": "4.0.0" }
				}
			}
		}
	}`)

	g, err := depgraph.BuildGraph(root, lockfile)
	require.NoError(t, err)

	chalkPath := filepath.Join(root, "node_modules/chalk")
	ansiPath := filepath.Join(root, "node_modules/chalk/node_modules/ansi-styles")
	require.Contains(t, g.Paths(), chalkPath)
	require.Contains(t, g.Paths(), ansiPath)
	require.Equal(t, []string{ansiPath}, g.DependenciesOf(chalkPath))
}

func TestBuildGraphV1SkipsMissingOptional(t *testing.T) {
	root := t.TempDir()

	lockfile := []byte(`{
		"lockfileVersion": 1,
		"dependencies": {
			"fsevents": { "version": "2.0.0", "optional": true }
		}
	}`)

	g, err := depgraph.BuildGraph(root, lockfile)
	require.NoError(t, err)
	assertEmpty(t, g.Paths())
}

func TestBuildGraphV2Flat(t *testing.T) {
	root := t.TempDir()
	mkpkg(t, root, "node_modules/left-pad")
	mkpkg(t, root, "node_modules/left-pad/node_modules/helper")

	lockfile := []byte(`{
		"lockfileVersion": 3,
		"packages": {
			"": {},
			"node_modules/left-pad": {
				"dependencies": { "helper": "^1.0.0" }
			},
			"node_modules/left-pad/node_modules/helper": {}
		}
	}`)

	g, err := depgraph.BuildGraph(root, lockfile)
	require.NoError(t, err)

	leftPad := filepath.Join(root, "node_modules/left-pad")
	helper := filepath.Join(root, "node_modules/left-pad/node_modules/helper")
	require.Equal(t, []string{helper}, g.DependenciesOf(leftPad))
}

func TestBuildGraphV2HoistedDependency(t *testing.T) {
	root := t.TempDir()
	mkpkg(t, root, "node_modules/left-pad")
	mkpkg(t, root, "node_modules/helper")

	lockfile := []byte(`{
		"lockfileVersion": 2,
		"packages": {
			"": {},
			"node_modules/helper": {},
			"node_modules/left-pad": {
				"dependencies": { "helper": "^1.0.0" }
			}
		}
	}`)

	g, err := depgraph.BuildGraph(root, lockfile)
	require.NoError(t, err)

	leftPad := filepath.Join(root, "node_modules/left-pad")
	helper := filepath.Join(root, "node_modules/helper")
	require.Equal(t, []string{helper}, g.DependenciesOf(leftPad))
}

func TestBuildGraphUnsupportedVersion(t *testing.T) {
	root := t.TempDir()
	lockfile := []byte(`{"lockfileVersion": 99}`)
	g, err := depgraph.BuildGraph(root, lockfile)
	require.ErrorIs(t, err, depgraph.ErrUnsupportedSchema)
	require.NotNil(t, g)
	assertEmpty(t, g.Paths())
}

func TestLockfilePathPrefersShrinkwrap(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "package-lock.json"), []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "npm-shrinkwrap.json"), []byte("{}"), 0o644))

	path, ok := depgraph.LockfilePath(root)
	require.True(t, ok)
	require.Equal(t, filepath.Join(root, "npm-shrinkwrap.json"), path)
}

func assertEmpty(t *testing.T, paths []string) {
	t.Helper()
	require.Empty(t, paths)
}
