// Command npm-dependency-guardian statically analyzes an npm package
// tree and emits a capability policy: which built-in Node modules and
// globals the tree can reach, for a runtime enforcer to consult.
package main

import (
	"flag"
	"fmt"
	"os"
)

func main() {
	fs := flag.NewFlagSet("npm-dependency-guardian", flag.ContinueOnError)

	write := fs.Bool("write", false, "overwrite the stored policy file on disk")
	locations := fs.Bool("locations", false, "include source locations in the parsed AST (debug aid)")
	fine := fs.Bool("fine", false, "enable fine-grained member-access tracing")
	noBackup := fs.Bool("no-backup", false, "suppress the .old backup of the previous policy file")
	allModules := fs.Bool("all-modules", false, "include non-builtin modules in the output")
	stdout := fs.Bool("stdout", false, "emit the merged policy as JSON to stdout")
	policyFile := fs.String("policy-file", "", "override the policy file path")
	diff := fs.Bool("diff", false, "print a coloured diff of the previous policy against the freshly computed one")

	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: npm-dependency-guardian [flags] <package-root>")
		os.Exit(1)
	}

	opts := runOptions{
		PackageRoot: fs.Arg(0),
		Write:       *write,
		Locations:   *locations,
		Fine:        *fine,
		NoBackup:    *noBackup,
		AllModules:  *allModules,
		Stdout:      *stdout,
		PolicyFile:  *policyFile,
		Diff:        *diff,
	}

	if err := run(os.Stdout, os.Stderr, opts); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
