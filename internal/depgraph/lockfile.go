package depgraph

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// lockfileV1 is the recursive-tree shape used by lockfileVersion 1.
type lockfileV1 struct {
	LockfileVersion int                 `json:"lockfileVersion"`
	Dependencies    map[string]*v1Entry `json:"dependencies"`
}

type v1Entry struct {
	Requires     map[string]string   `json:"requires"`
	Dependencies map[string]*v1Entry `json:"dependencies"`
	Optional     bool                `json:"optional"`
}

// lockfileV2 is the flat-map shape shared by lockfileVersion 2 and 3.
type lockfileV2 struct {
	LockfileVersion int                 `json:"lockfileVersion"`
	Packages        map[string]*v2Entry `json:"packages"`
}

type v2Entry struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
	Optional        bool              `json:"optional"`
}

// ErrUnsupportedSchema is returned (and otherwise swallowed by the caller
// per §7) when lockfileVersion is something other than 1, 2, or 3.
var ErrUnsupportedSchema = fmt.Errorf("depgraph: unsupported lockfileVersion")

// LockfilePath returns the lockfile to read for a package root, preferring
// a shrinkwrap file over the standard lock file when both are present.
func LockfilePath(rootPath string) (string, bool) {
	shrinkwrap := filepath.Join(rootPath, "npm-shrinkwrap.json")
	if _, err := os.Stat(shrinkwrap); err == nil {
		return shrinkwrap, true
	}
	standard := filepath.Join(rootPath, "package-lock.json")
	if _, err := os.Stat(standard); err == nil {
		return standard, true
	}
	return "", false
}

// BuildGraph parses the lockfile at lockfilePath (rooted at rootPath) into
// a packagePath → []packagePath adjacency. A schema version outside
// {1,2,3} yields an empty, valid Graph together with ErrUnsupportedSchema,
// matching §7's conservative-default handling (the extractor then
// analyzes only the root package).
func BuildGraph(rootPath string, lockfileContents []byte) (*Graph, error) {
	return buildGraph(rootPath, lockfileContents, pathExists)
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func buildGraph(rootPath string, contents []byte, exists func(string) bool) (*Graph, error) {
	var probe struct {
		LockfileVersion int `json:"lockfileVersion"`
	}
	if err := json.Unmarshal(contents, &probe); err != nil {
		return nil, fmt.Errorf("depgraph: parse lockfile: %w", err)
	}

	g := newGraph(rootPath)
	switch probe.LockfileVersion {
	case 1:
		var lf lockfileV1
		if err := json.Unmarshal(contents, &lf); err != nil {
			return nil, fmt.Errorf("depgraph: parse lockfile v1: %w", err)
		}
		buildV1(g, rootPath, lf.Dependencies, exists)
	case 2, 3:
		var lf lockfileV2
		if err := json.Unmarshal(contents, &lf); err != nil {
			return nil, fmt.Errorf("depgraph: parse lockfile v2/v3: %w", err)
		}
		buildV2(g, rootPath, lf.Packages, exists)
	default:
		return g, ErrUnsupportedSchema
	}
	return g, nil
}

// buildV1 walks the nested dependency tree depth-first. pathsByName
// accumulates every installed path seen for a given name, since distinct
// subtrees may carry distinct installed copies of the same package.
func buildV1(g *Graph, rootPath string, deps map[string]*v1Entry, exists func(string) bool) {
	pathsByName := map[string][]string{}
	var walk func(parentPath string, deps map[string]*v1Entry)
	walk = func(parentPath string, deps map[string]*v1Entry) {
		for name, entry := range deps {
			pkgPath := filepath.Join(parentPath, "node_modules", name)
			if entry.Optional && !exists(pkgPath) {
				continue
			}
			pathsByName[name] = append(pathsByName[name], pkgPath)
			g.addNode(pkgPath)
			if entry.Dependencies != nil {
				walk(pkgPath, entry.Dependencies)
			}
		}
	}
	walk(rootPath, deps)

	// Second pass: resolve each entry's `requires` against the nearest
	// installed copy under its own path, falling back to any known copy
	// of that name (Node's hoisting makes the nearest ancestor win).
	var resolveEdges func(parentPath string, deps map[string]*v1Entry)
	resolveEdges = func(parentPath string, deps map[string]*v1Entry) {
		for name, entry := range deps {
			pkgPath := filepath.Join(parentPath, "node_modules", name)
			if entry.Optional && !exists(pkgPath) {
				continue
			}
			for reqName := range entry.Requires {
				if depPath, ok := resolveNearest(pkgPath, reqName, pathsByName); ok {
					g.addEdge(pkgPath, depPath)
				}
			}
			if entry.Dependencies != nil {
				resolveEdges(pkgPath, entry.Dependencies)
			}
		}
	}
	resolveEdges(rootPath, deps)
}

// resolveNearest implements Node's hoisting lookup: walk up the chain of
// ancestor node_modules directories from fromPath looking for name,
// falling back to the first known installed copy.
func resolveNearest(fromPath, name string, pathsByName map[string][]string) (string, bool) {
	candidates, ok := pathsByName[name]
	if !ok || len(candidates) == 0 {
		return "", false
	}
	dir := fromPath
	for {
		candidate := filepath.Join(dir, "node_modules", name)
		for _, c := range candidates {
			if c == candidate {
				return c, true
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return candidates[0], true
}

// buildV2 reads the flat packages map used by lockfileVersion 2/3. Keys
// are relative paths from the lockfile's root; "" denotes the root
// package itself.
func buildV2(g *Graph, rootPath string, packages map[string]*v2Entry, exists func(string) bool) {
	resolvedPath := func(relPath string) string {
		if relPath == "" {
			return rootPath
		}
		return filepath.Join(rootPath, relPath)
	}

	for relPath, entry := range packages {
		pkgPath := resolvedPath(relPath)
		if entry.Optional && !exists(pkgPath) {
			continue
		}
		g.addNode(pkgPath)
	}

	for relPath, entry := range packages {
		pkgPath := resolvedPath(relPath)
		if entry.Optional && !exists(pkgPath) {
			continue
		}
		deps := entry.Dependencies
		for depName := range deps {
			depPath, ok := resolveFlat(relPath, depName, packages, rootPath, exists)
			if ok {
				g.addEdge(pkgPath, depPath)
			}
		}
	}
}

// resolveFlat mirrors node_modules hoisting over the flat `packages` map:
// look for "<relPath>/node_modules/<depName>", then its ancestors, up to
// the root's own "node_modules/<depName>".
func resolveFlat(relPath, depName string, packages map[string]*v2Entry, rootPath string, exists func(string) bool) (string, bool) {
	segs := splitRelPath(relPath)
	for i := len(segs); i >= 0; i-- {
		candidateRel := joinRelPath(append(append([]string{}, segs[:i]...), "node_modules", depName))
		if entry, ok := packages[candidateRel]; ok {
			path := rootPath
			if candidateRel != "" {
				path = filepath.Join(rootPath, candidateRel)
			}
			if entry.Optional && !exists(path) {
				continue
			}
			return path, true
		}
	}
	return "", false
}

func splitRelPath(relPath string) []string {
	if relPath == "" {
		return nil
	}
	var segs []string
	start := 0
	for i := 0; i < len(relPath); i++ {
		if relPath[i] == '/' {
			segs = append(segs, relPath[start:i])
			start = i + 1
		}
	}
	segs = append(segs, relPath[start:])
	return segs
}

func joinRelPath(segs []string) string {
	out := ""
	for i, s := range segs {
		if i > 0 {
			out += "/"
		}
		out += s
	}
	return out
}
