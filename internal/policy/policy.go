// Package policy holds the persisted capability-policy record: the
// coarse (module/global) and fine (member-qualified) capability sets
// produced by analyzing a package tree, their JSON (de)serialization,
// and the union-by-name merge used when multiple installed copies of a
// package contribute observations.
package policy

import (
	"encoding/json"
	"sort"

	"github.com/cybertier/npm-dependency-guardian/internal/capture"
	"github.com/cybertier/npm-dependency-guardian/internal/capset"
)

// Coarse is one package's module- and global-level capability set:
// which built-in modules and ambient globals it can statically reach,
// with no member granularity.
type Coarse struct {
	Modules []string `json:"modules"`
	Globals []string `json:"globals"`
}

// Fine is one package's member-qualified capability set: "module.member"
// and "global.member" strings, only populated when fine-grained tracing
// is enabled.
type Fine struct {
	Modules []string `json:"modules"`
	Globals []string `json:"globals"`
}

// Policy is the full persisted record (§6): whether member tracing ran,
// and the coarse/fine sets keyed by canonical package name so that
// multiple installed copies of a package are represented once.
type Policy struct {
	MemberAccessTracing bool              `json:"memberAccessTracing"`
	PolicyCoarse        map[string]Coarse `json:"policyCoarse"`
	PolicyFine          map[string]Fine   `json:"policyFine"`
}

// New returns an empty Policy with member tracing set as requested.
func New(fine bool) *Policy {
	return &Policy{
		MemberAccessTracing: fine,
		PolicyCoarse:        map[string]Coarse{},
		PolicyFine:          map[string]Fine{},
	}
}

// AddPackage folds one package's accumulated observations into the
// policy under pkgName, unioning with any sets already recorded for
// that name (two installed copies of the same package produce one
// unioned entry, per §8's invariant).
func (p *Policy) AddPackage(pkgName string, acc *capture.Accumulator) {
	coarse := p.PolicyCoarse[pkgName]
	coarseModules := capset.FromSlice(coarse.Modules)
	coarseGlobals := capset.FromSlice(coarse.Globals)
	coarseModules = coarseModules.Union(acc.Modules)
	coarseGlobals = coarseGlobals.Union(acc.Globals)
	p.PolicyCoarse[pkgName] = Coarse{
		Modules: capset.SortedStrings(coarseModules),
		Globals: capset.SortedStrings(coarseGlobals),
	}

	if !p.MemberAccessTracing {
		return
	}
	fine := p.PolicyFine[pkgName]
	fineModules := capset.FromSlice(fine.Modules)
	fineGlobals := capset.FromSlice(fine.Globals)
	fineModules = fineModules.Union(acc.ModuleMembers)
	fineGlobals = fineGlobals.Union(acc.GlobalMembers)
	p.PolicyFine[pkgName] = Fine{
		Modules: capset.SortedStrings(fineModules),
		Globals: capset.SortedStrings(fineGlobals),
	}
}

// FilterToBuiltins drops every module (coarse and fine) whose specifier
// is not in the builtin list, and drops every moduleMember whose module
// prefix was dropped. Used unless -all-modules is passed (§6).
func (p *Policy) FilterToBuiltins() {
	for name, c := range p.PolicyCoarse {
		modules := capset.FromSlice(c.Modules).Intersection(Builtins())
		c.Modules = capset.SortedStrings(modules)
		p.PolicyCoarse[name] = c
	}
	for name, f := range p.PolicyFine {
		var kept []string
		for _, mm := range f.Modules {
			mod, _, ok := splitMember(mm)
			if ok && Builtins().Contains(mod) {
				kept = append(kept, mm)
			}
		}
		sort.Strings(kept)
		f.Modules = kept
		p.PolicyFine[name] = f
	}
}

func splitMember(s string) (string, string, bool) {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '.' {
			return s[:i], s[i+1:], true
		}
	}
	return "", "", false
}

// MarshalJSON renders the policy with deterministic key order so that
// repeated runs over an unchanged tree produce byte-identical output
// (§8's determinism property). encoding/json already sorts map keys
// alphabetically when marshaling, but Coarse/Fine's slice fields are
// sorted by the caller (AddPackage/FilterToBuiltins) before this runs.
func (p *Policy) MarshalJSON() ([]byte, error) {
	type alias Policy
	return json.MarshalIndent((*alias)(p), "", "  ")
}

// ParsePolicy decodes a persisted policy file.
func ParsePolicy(data []byte) (*Policy, error) {
	var p Policy
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	if p.PolicyCoarse == nil {
		p.PolicyCoarse = map[string]Coarse{}
	}
	if p.PolicyFine == nil {
		p.PolicyFine = map[string]Fine{}
	}
	return &p, nil
}
