package depgraph

import (
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

var sourceExtensions = map[string]bool{
	".js":  true,
	".mjs": true,
	".cjs": true,
}

// SourceFiles enumerates the analyzable JavaScript files under a package
// directory: node_modules and dotfiles/dot-directories are never
// descended into (nested installs are reached through the dependency
// graph itself, not by walking into a package's own node_modules), and
// any path matching a ".policyignore" found at pkgPath is skipped.
func SourceFiles(pkgPath string) ([]string, error) {
	gi := loadPolicyIgnore(pkgPath)

	var files []string
	err := filepath.WalkDir(pkgPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(pkgPath, path)
		if relErr != nil {
			rel = path
		}
		base := filepath.Base(path)
		if d.IsDir() {
			if path != pkgPath && (base == "node_modules" || strings.HasPrefix(base, ".")) {
				return filepath.SkipDir
			}
			if gi != nil && rel != "." && gi.MatchesPath(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(base, ".") {
			return nil
		}
		if !sourceExtensions[filepath.Ext(base)] {
			return nil
		}
		if gi != nil && gi.MatchesPath(rel) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// loadPolicyIgnore reads ".policyignore" from a package root if present.
// Its absence is not an error: every rule in it is additive on top of
// the always-excluded node_modules/dotfile defaults.
func loadPolicyIgnore(pkgPath string) *ignore.GitIgnore {
	path := filepath.Join(pkgPath, ".policyignore")
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	gi, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		return nil
	}
	return gi
}
