// Package capture holds the per-node analyzers the traversal driver calls
// into: import recognition, global-reference extraction, and member-access
// tracing (§4.4-§4.6). Each analyzer reads the active capscope.Environment
// and writes into a shared Accumulator; a package's full capability set is
// the union of every file's Accumulator.
package capture

import (
	"github.com/cybertier/npm-dependency-guardian/internal/capset"
	"github.com/cybertier/npm-dependency-guardian/internal/jsast"
)

// Accumulator collects the coarse and fine capability observations made
// while traversing a single file.
type Accumulator struct {
	Modules       capset.Set[string]
	Globals       capset.Set[string]
	ModuleMembers capset.Set[string] // "module.member"
	GlobalMembers capset.Set[string] // "global.member"
	Warnings      []string

	declared map[*jsast.Identifier]struct{}
}

// NewAccumulator returns an empty Accumulator ready for one file's traversal.
func NewAccumulator() *Accumulator {
	return &Accumulator{
		Modules:       capset.New[string](),
		Globals:       capset.New[string](),
		ModuleMembers: capset.New[string](),
		GlobalMembers: capset.New[string](),
		declared:      make(map[*jsast.Identifier]struct{}),
	}
}

// MarkDeclared records id as a name-introducing occurrence (a parameter, a
// declarator/function/class name, a catch binding, ...) so the globals
// extractor never treats it as a referring use.
func (a *Accumulator) MarkDeclared(id *jsast.Identifier) {
	a.declared[id] = struct{}{}
}

func (a *Accumulator) isDeclared(id *jsast.Identifier) bool {
	_, ok := a.declared[id]
	return ok
}

func (a *Accumulator) addModule(name string) { a.Modules.Add(name) }
func (a *Accumulator) addGlobal(name string) { a.Globals.Add(name) }

func (a *Accumulator) addModuleMember(module, member string) {
	a.Modules.Add(module)
	a.ModuleMembers.Add(module + "." + member)
}

func (a *Accumulator) addGlobalMember(global, member string) {
	a.Globals.Add(global)
	a.GlobalMembers.Add(global + "." + member)
}

func (a *Accumulator) warn(msg string) {
	a.Warnings = append(a.Warnings, msg)
}

// Merge folds other into a, for combining per-file accumulators into a
// single per-package capability set.
func (a *Accumulator) Merge(other *Accumulator) {
	for m := range other.Modules {
		a.Modules.Add(m)
	}
	for g := range other.Globals {
		a.Globals.Add(g)
	}
	for mm := range other.ModuleMembers {
		a.ModuleMembers.Add(mm)
	}
	for gm := range other.GlobalMembers {
		a.GlobalMembers.Add(gm)
	}
	a.Warnings = append(a.Warnings, other.Warnings...)
}
