// Package depgraph maps an npm package tree on disk — via its lockfile —
// into a packagePath → dependency-paths adjacency, and enumerates each
// installed package's analyzable source files.
package depgraph

import "strings"

// PackageNode is one installed copy of a package: its on-disk path, its
// canonical name, and the nodes of the packages it directly depends on.
// Building a PackageNode tree from a Graph is lazy and memoized (see
// Graph.NodeView) so a hoisted cyclic install doesn't recurse forever.
type PackageNode struct {
	Path         string
	Name         string
	Dependencies []*PackageNode
}

// PackageName derives a package's canonical name from its installed path,
// the last "node_modules/<name>" (or "node_modules/@scope/<name>")
// segment — scoped packages are transparently descended, not treated as
// a package of their own.
func PackageName(path string) string {
	path = strings.TrimSuffix(path, "/")
	segs := strings.Split(path, "/")
	if len(segs) == 0 {
		return path
	}
	last := segs[len(segs)-1]
	if len(segs) >= 2 && strings.HasPrefix(segs[len(segs)-2], "@") {
		return segs[len(segs)-2] + "/" + last
	}
	return last
}
