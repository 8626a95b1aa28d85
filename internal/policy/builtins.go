package policy

import "github.com/cybertier/npm-dependency-guardian/internal/capset"

// builtinNames is the fixed, opaque list of current-LTS Node built-in
// module specifiers (§6). It must stay in lockstep with whatever
// runtime enforces the emitted policy; drifting from it loses precision
// without becoming unsound (an unrecognized specifier just isn't
// filtered out under the default, builtins-only view).
var builtinNames = []string{
	"assert", "buffer", "child_process", "cluster", "console",
	"crypto", "dgram", "dns", "events", "fs", "http", "http2",
	"https", "inspector", "module", "net", "os", "path",
	"perf_hooks", "process", "querystring", "readline", "stream",
	"string_decoder", "timers", "tls", "tty", "url", "util", "v8",
	"vm", "worker_threads", "zlib",
}

var builtins = buildBuiltins()

func buildBuiltins() capset.Set[string] {
	s := capset.New[string]()
	for _, name := range builtinNames {
		s.Add(name)
		s.Add("node:" + name)
	}
	return s
}

// Builtins returns the shared builtin-module set used to filter a
// policy's modules down to platform surface (§6) unless -all-modules
// was requested.
func Builtins() capset.Set[string] {
	return builtins
}

// IsBuiltin reports whether name (with or without a "node:" prefix)
// names a platform built-in module.
func IsBuiltin(name string) bool {
	return builtins.Contains(name)
}
