package depgraph

import "github.com/tidwall/btree"

// Graph is a packagePath → packagePaths adjacency built from a lockfile.
// Edges may contain cycles (two packages depending on each other through
// a hoisted install is legal in npm), so every traversal over a Graph
// must be cycle-safe. btree.Map/btree.Set give ordered iteration for
// free, so callers see deterministic output without a separate sort
// pass.
type Graph struct {
	Root  string
	nodes btree.Set[string]
	edges btree.Map[string, btree.Set[string]]

	nodeViews map[string]*PackageNode
}

func newGraph(root string) *Graph {
	return &Graph{
		Root:      root,
		nodeViews: map[string]*PackageNode{},
	}
}

func (g *Graph) addNode(path string) {
	g.nodes.Insert(path)
}

func (g *Graph) addEdge(from, to string) {
	g.addNode(from)
	g.addNode(to)
	deps, _ := g.edges.Get(from)
	deps.Insert(to)
	g.edges.Set(from, deps)
}

// Paths returns every package path known to the graph, in sorted order.
func (g *Graph) Paths() []string {
	var paths []string
	iter := g.nodes.Iter()
	for ok := iter.First(); ok; ok = iter.Next() {
		paths = append(paths, iter.Key())
	}
	return paths
}

// DependenciesOf returns the direct dependency paths of a package path,
// in sorted order.
func (g *Graph) DependenciesOf(path string) []string {
	deps, ok := g.edges.Get(path)
	if !ok {
		return nil
	}
	var out []string
	iter := deps.Iter()
	for ok := iter.First(); ok; ok = iter.Next() {
		out = append(out, iter.Key())
	}
	return out
}

// NodeView builds (and memoizes) the PackageNode tree rooted at path.
// Memoization happens before recursing into dependencies, so a cycle in
// the underlying Graph resolves to a shared, already-under-construction
// node rather than infinite recursion.
func (g *Graph) NodeView(path string) *PackageNode {
	if n, ok := g.nodeViews[path]; ok {
		return n
	}
	node := &PackageNode{Path: path, Name: PackageName(path)}
	g.nodeViews[path] = node
	for _, depPath := range g.DependenciesOf(path) {
		node.Dependencies = append(node.Dependencies, g.NodeView(depPath))
	}
	return node
}

// Walk visits every package path reachable from root exactly once, in
// breadth-first order, using an explicit queue and visited set rather
// than recursion — a cyclic install graph would overflow the stack of a
// naive recursive walk, and this module's dependency graphs are
// routinely cyclic (hoisting lets two packages depend on each other).
func (g *Graph) Walk(root string, visit func(path string)) {
	var visited btree.Set[string]
	visited.Insert(root)
	queue := []string{root}
	for len(queue) > 0 {
		path := queue[0]
		queue = queue[1:]
		visit(path)
		for _, dep := range g.DependenciesOf(path) {
			if !visited.Contains(dep) {
				visited.Insert(dep)
				queue = append(queue, dep)
			}
		}
	}
}

// ReachableFrom returns every package path reachable from root
// (including root itself), sorted. It is the set-producing counterpart
// to Walk: the installed copies reachable from a given package.
func (g *Graph) ReachableFrom(root string) []string {
	var out btree.Set[string]
	g.Walk(root, func(path string) {
		out.Insert(path)
	})
	var result []string
	iter := out.Iter()
	for ok := iter.First(); ok; ok = iter.Next() {
		result = append(result, iter.Key())
	}
	return result
}
