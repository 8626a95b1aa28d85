package capture

import (
	"github.com/cybertier/npm-dependency-guardian/internal/capscope"
	"github.com/cybertier/npm-dependency-guardian/internal/jsast"
)

// knownGlobals is the set of ambient identifiers the globals extractor
// will report (§4.5). Restricting to this allowlist, rather than reporting
// every unresolved name, keeps a typo or a library-injected global from
// polluting a capability policy meant to describe platform surface.
var knownGlobals = map[string]struct{}{
	"global": {}, "globalThis": {}, "process": {}, "console": {},
	"Buffer": {}, "module": {}, "exports": {},
	"__dirname": {}, "__filename": {},
	"setTimeout": {}, "setInterval": {}, "setImmediate": {},
	"clearTimeout": {}, "clearInterval": {}, "clearImmediate": {},
	"queueMicrotask": {}, "URL": {}, "URLSearchParams": {},
	"TextEncoder": {}, "TextDecoder": {}, "performance": {},
	"structuredClone": {}, "fetch": {}, "WebAssembly": {},
	"Promise": {}, "Symbol": {}, "Proxy": {}, "Reflect": {},
	"WeakRef": {}, "FinalizationRegistry": {},
	"Array": {}, "Object": {}, "Function": {}, "String": {}, "Number": {}, "Boolean": {},
	"Map": {}, "Set": {}, "WeakMap": {}, "WeakSet": {}, "Date": {}, "RegExp": {}, "Error": {},
	"TypeError": {}, "RangeError": {}, "SyntaxError": {}, "ReferenceError": {},
	"EvalError": {}, "URIError": {},
	"JSON": {}, "Math": {}, "ArrayBuffer": {}, "SharedArrayBuffer": {}, "DataView": {},
	"Int8Array": {}, "Uint8Array": {}, "Uint8ClampedArray": {}, "Int16Array": {}, "Uint16Array": {},
	"Int32Array": {}, "Uint32Array": {}, "Float32Array": {}, "Float64Array": {},
	"BigInt64Array": {}, "BigUint64Array": {}, "BigInt": {}, "Atomics": {}, "Intl": {},
}

// IsKnownGlobal reports whether name is in the ambient-global allowlist.
func IsKnownGlobal(name string) bool {
	_, ok := knownGlobals[name]
	return ok
}

// ProcessIdentifierReference implements the globals-collection pass
// (§4.5): an identifier is a referring use unless it is a declaring
// occurrence (tracked via Accumulator.declared) or sits in one of the
// excluded structural positions, and it is only reported if it resolves to
// neither a scope binding nor a shadowed name but matches a known global.
func ProcessIdentifierReference(env *capscope.Environment, ancestors []jsast.Node, id *jsast.Identifier, acc *Accumulator) {
	if acc.isDeclared(id) {
		return
	}
	if isNonReferringPosition(ancestors, id) {
		return
	}
	if env.HasBinding(id.Name) {
		return
	}
	if IsKnownGlobal(id.Name) {
		acc.addGlobal(id.Name)
	}
}

// isNonReferringPosition implements the position exclusions: the property
// of a non-computed member expression, and the (non-computed, non-shorthand)
// key of an object literal property, destructuring property, class method,
// or class field — none of these read a variable named by the identifier.
func isNonReferringPosition(ancestors []jsast.Node, id *jsast.Identifier) bool {
	if len(ancestors) == 0 {
		return false
	}
	switch p := ancestors[len(ancestors)-1].(type) {
	case *jsast.MemberExpression:
		if !p.Computed {
			if prop, ok := p.Property.(*jsast.Identifier); ok && prop == id {
				return true
			}
		}
	case *jsast.ObjectProperty:
		if !p.Computed && !p.Shorthand {
			if key, ok := p.Key.(*jsast.Identifier); ok && key == id {
				return true
			}
		}
	case *jsast.PatternProperty:
		if !p.Computed {
			if key, ok := p.Key.(*jsast.Identifier); ok && key == id {
				return true
			}
		}
	case *jsast.MethodDefinition:
		if !p.Computed {
			if key, ok := p.Key.(*jsast.Identifier); ok && key == id {
				return true
			}
		}
	case *jsast.PropertyDefinition:
		if !p.Computed {
			if key, ok := p.Key.(*jsast.Identifier); ok && key == id {
				return true
			}
		}
	}
	return false
}
