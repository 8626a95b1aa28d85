package capture

import (
	"fmt"
	"strconv"

	"github.com/cybertier/npm-dependency-guardian/internal/capscope"
	"github.com/cybertier/npm-dependency-guardian/internal/jsast"
)

// requireModuleSpecifier recognizes a require('m')/import('m') call shape,
// transparently through a leading await (§4.4's dynamic-import note), and
// returns the literal module specifier.
func requireModuleSpecifier(e jsast.Expr) (string, bool) {
	switch ex := jsast.Unwrap(e).(type) {
	case *jsast.CallExpression:
		id, ok := ex.Callee.(*jsast.Identifier)
		if !ok || id.Name != "require" || len(ex.Arguments) == 0 {
			return "", false
		}
		lit, ok := ex.Arguments[0].(*jsast.Literal)
		if !ok || lit.Kind != jsast.LiteralString {
			return "", false
		}
		return lit.Str, true
	case *jsast.NewExpression:
		id, ok := ex.Callee.(*jsast.Identifier)
		if !ok || id.Name != "require" || len(ex.Arguments) == 0 {
			return "", false
		}
		lit, ok := ex.Arguments[0].(*jsast.Literal)
		if !ok || lit.Kind != jsast.LiteralString {
			return "", false
		}
		return lit.Str, true
	case *jsast.ImportExpression:
		lit, ok := ex.Source.(*jsast.Literal)
		if !ok || lit.Kind != jsast.LiteralString {
			return "", false
		}
		return lit.Str, true
	default:
		return "", false
	}
}

func bindIdentifier(env *capscope.Environment, kind jsast.VarKind, id *jsast.Identifier, module string, acc *Accumulator) {
	b := &capscope.Binding{Name: id.Name, Module: module}
	if kind.IsFunctionScoped() {
		env.AddBindingFunctionScoped(b)
	} else {
		env.AddBinding(b)
	}
	acc.MarkDeclared(id)
}

// ProcessVariableDeclarator implements the binding-declaration pass (§4.2)
// together with the require-recognition and alias-propagation cases of the
// import recognizer (§4.4 cases 1 and 2).
func ProcessVariableDeclarator(env *capscope.Environment, kind jsast.VarKind, declr *jsast.VariableDeclarator, acc *Accumulator) {
	if declr.Init != nil {
		if module, ok := requireModuleSpecifier(declr.Init); ok {
			acc.addModule(module)
			if id, isIdent := declr.Id.(*jsast.Identifier); isIdent {
				bindIdentifier(env, kind, id, module, acc)
			} else {
				processDestructuredRequire(env, kind, declr.Id, module, acc)
			}
			return
		}
		if id, isIdent := declr.Id.(*jsast.Identifier); isIdent {
			if rhs, isRhsIdent := jsast.Unwrap(declr.Init).(*jsast.Identifier); isRhsIdent {
				if b := env.LookupModuleRef(rhs.Name); b != nil {
					bindIdentifier(env, kind, id, b.Module, acc)
					return
				}
			}
		} else if rhs, isRhsIdent := jsast.Unwrap(declr.Init).(*jsast.Identifier); isRhsIdent {
			if !env.HasBinding(rhs.Name) && IsKnownGlobal(rhs.Name) {
				acc.addGlobal(rhs.Name)
				processDestructuredGlobal(env, kind, declr.Id, rhs.Name, acc)
				return
			}
		}
	}
	for _, id := range jsast.FindBindingIdentifiers(declr.Id) {
		bindIdentifier(env, kind, id, "", acc)
	}
}

// processDestructuredRequire implements §4.6 case 4: destructuring a
// require() call directly produces module-member accesses for each
// extracted name, one level deep. Rest elements are bound but not expanded
// into member accesses (§9 decided open question).
func processDestructuredRequire(env *capscope.Environment, kind jsast.VarKind, pat jsast.Pat, module string, acc *Accumulator) {
	processDestructuredBinding(env, kind, pat, acc, func(member string) { acc.addModuleMember(module, member) })
}

// processDestructuredGlobal is processDestructuredRequire's counterpart for
// destructuring a bare global identifier: `const { log } = console;`
// records console.log as a global member instead of a module member, same
// depth and rest-element handling as the require case.
func processDestructuredGlobal(env *capscope.Environment, kind jsast.VarKind, pat jsast.Pat, global string, acc *Accumulator) {
	processDestructuredBinding(env, kind, pat, acc, func(member string) { acc.addGlobalMember(global, member) })
}

// processDestructuredBinding walks an object or array pattern one level
// deep, reporting each statically-named member via recordMember and binding
// every introduced local name. Shared by the require and global
// destructuring cases above, which differ only in where the member access
// is recorded.
func processDestructuredBinding(env *capscope.Environment, kind jsast.VarKind, pat jsast.Pat, acc *Accumulator, recordMember func(member string)) {
	switch p := pat.(type) {
	case *jsast.ObjectPattern:
		for _, prop := range p.Properties {
			switch pp := prop.(type) {
			case *jsast.PatternProperty:
				if member, ok := staticPatternKeyName(pp); ok {
					recordMember(member)
				}
				bindPatternValue(env, kind, pp.Value, acc)
			case *jsast.RestElement:
				for _, id := range jsast.FindBindingIdentifiers(pp.Argument) {
					bindIdentifier(env, kind, id, "", acc)
				}
			}
		}
	case *jsast.ArrayPattern:
		for i, el := range p.Elements {
			if el == nil {
				continue
			}
			if rest, isRest := el.(*jsast.RestElement); isRest {
				for _, id := range jsast.FindBindingIdentifiers(rest.Argument) {
					bindIdentifier(env, kind, id, "", acc)
				}
				continue
			}
			recordMember(strconv.Itoa(i))
			bindPatternValue(env, kind, el, acc)
		}
	default:
		for _, id := range jsast.FindBindingIdentifiers(pat) {
			bindIdentifier(env, kind, id, "", acc)
		}
	}
}

// staticPatternKeyName returns the statically-known property name a
// PatternProperty extracts, or ok=false for a computed key whose name
// can't be resolved without evaluation.
func staticPatternKeyName(pp *jsast.PatternProperty) (string, bool) {
	if pp.Shorthand {
		if id, ok := pp.Key.(*jsast.Identifier); ok {
			return id.Name, true
		}
		return "", false
	}
	if !pp.Computed {
		if id, ok := pp.Key.(*jsast.Identifier); ok {
			return id.Name, true
		}
	}
	if lit, ok := pp.Key.(*jsast.Literal); ok && lit.Kind == jsast.LiteralString {
		return lit.Str, true
	}
	return "", false
}

// bindPatternValue binds the plain local name a destructured require
// member is extracted into. The member access itself was already recorded
// by the caller; the bound variable carries no module annotation since the
// spec's member model extends only one level from the require.
func bindPatternValue(env *capscope.Environment, kind jsast.VarKind, value jsast.Pat, acc *Accumulator) {
	target := value
	if ap, ok := value.(*jsast.AssignmentPattern); ok {
		target = ap.Left
	}
	for _, id := range jsast.FindBindingIdentifiers(target) {
		bindIdentifier(env, kind, id, "", acc)
	}
}

// ProcessImportDeclaration implements the declarative-import case of the
// import recognizer (§4.4 case 3 / §3's binding model): default and
// namespace specifiers bind the module; named specifiers bind only a
// member, never the module itself.
func ProcessImportDeclaration(env *capscope.Environment, decl *jsast.ImportDeclaration, acc *Accumulator) {
	module := decl.Source.Str
	acc.addModule(module)
	for _, spec := range decl.Specifiers {
		switch s := spec.(type) {
		case *jsast.ImportDefaultSpecifier:
			env.AddBinding(&capscope.Binding{Name: s.Local.Name, Module: module})
		case *jsast.ImportNamespaceSpecifier:
			env.AddBinding(&capscope.Binding{Name: s.Local.Name, Module: module})
		case *jsast.ImportNamedSpecifier:
			acc.addModuleMember(module, s.Imported.Name)
			env.AddBinding(&capscope.Binding{Name: s.Local.Name})
		}
	}
}

// ProcessExportNamed implements the re-export specifier-list case of the
// member tracer (§4.6 case 1): `export { a, b } from 'm'` records m.a and
// m.b without creating any local binding.
func ProcessExportNamed(decl *jsast.ExportNamedDeclaration, acc *Accumulator) {
	if decl.Source == nil {
		return
	}
	module := decl.Source.Str
	acc.addModule(module)
	for _, spec := range decl.Specifiers {
		acc.addModuleMember(module, spec.Local.Name)
	}
}

// ProcessExportAll implements `export * from 'm'`: the module is reached,
// but which members it re-exports can't be enumerated statically, so a
// warning is recorded in acc.Warnings (logged by the extractor) instead of
// a member access (§4.6 case 1).
func ProcessExportAll(decl *jsast.ExportAllDeclaration, acc *Accumulator) {
	module := decl.Source.Str
	acc.addModule(module)
	acc.warn(fmt.Sprintf("cannot enumerate re-exported members of %q (export * from)", module))
}
