package policy

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/cybertier/npm-dependency-guardian/internal/capset"
)

// Diff is a line-oriented, hand-rolled set difference between two
// policies (§6's -diff flag) — not a general text diff: the unit of
// comparison is one (package, kind, entry) triple, so an array
// reordering never shows up as a spurious change.
type Diff struct {
	Added   []string
	Removed []string
}

// Empty reports whether the diff found no differences.
func (d Diff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0
}

// Compare builds a Diff of newPolicy against oldPolicy. Lines are
// formatted "<pkg> coarse.modules: <name>", "<pkg> fine.globals: <name>",
// and so on, so Added/Removed can be rendered or asserted on directly.
func Compare(oldPolicy, newPolicy *Policy) Diff {
	var d Diff
	pkgs := capset.New[string]()
	for name := range oldPolicy.PolicyCoarse {
		pkgs.Add(name)
	}
	for name := range newPolicy.PolicyCoarse {
		pkgs.Add(name)
	}

	for _, pkg := range capset.SortedStrings(pkgs) {
		oldC := oldPolicy.PolicyCoarse[pkg]
		newC := newPolicy.PolicyCoarse[pkg]
		diffSlice(&d, pkg, "coarse.modules", oldC.Modules, newC.Modules)
		diffSlice(&d, pkg, "coarse.globals", oldC.Globals, newC.Globals)

		oldF := oldPolicy.PolicyFine[pkg]
		newF := newPolicy.PolicyFine[pkg]
		diffSlice(&d, pkg, "fine.modules", oldF.Modules, newF.Modules)
		diffSlice(&d, pkg, "fine.globals", oldF.Globals, newF.Globals)
	}
	return d
}

func diffSlice(d *Diff, pkg, kind string, oldVals, newVals []string) {
	oldSet := capset.FromSlice(oldVals)
	newSet := capset.FromSlice(newVals)
	for _, v := range capset.SortedStrings(newSet.Difference(oldSet)) {
		d.Added = append(d.Added, fmt.Sprintf("%s %s: %s", pkg, kind, v))
	}
	for _, v := range capset.SortedStrings(oldSet.Difference(newSet)) {
		d.Removed = append(d.Removed, fmt.Sprintf("%s %s: %s", pkg, kind, v))
	}
}

// Render produces a coloured, unified-diff-style report: additions in
// green prefixed "+", removals in red prefixed "-".
func Render(d Diff) string {
	var b strings.Builder
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	for _, line := range d.Removed {
		b.WriteString(red.Sprint("- "+line) + "\n")
	}
	for _, line := range d.Added {
		b.WriteString(green.Sprint("+ "+line) + "\n")
	}
	return b.String()
}
