package capture

import (
	"github.com/cybertier/npm-dependency-guardian/internal/capscope"
	"github.com/cybertier/npm-dependency-guardian/internal/jsast"
)

// ProcessMemberExpression implements the member-access tracer's remaining
// two cases (§4.6 cases 2 and 3): a member read off a module-referencing
// binding (`fs.readFile`), a direct global member read (`console.log`),
// and a member read directly off an inline require call
// (`require('fs').readFile`). Case 1 (import/re-export specifiers) is
// handled in ProcessImportDeclaration/ProcessExportNamed; case 4
// (destructuring a require or a global) is handled in
// processDestructuredRequire/processDestructuredGlobal.
func ProcessMemberExpression(env *capscope.Environment, m *jsast.MemberExpression, acc *Accumulator) {
	member, ok := m.StaticMemberName()
	if !ok {
		return
	}
	switch obj := jsast.Unwrap(m.Object).(type) {
	case *jsast.Identifier:
		if b := env.LookupModuleRef(obj.Name); b != nil {
			acc.addModuleMember(b.Module, member)
			return
		}
		if IsKnownGlobal(obj.Name) && !env.HasBinding(obj.Name) {
			acc.addGlobalMember(obj.Name, member)
		}
	case *jsast.CallExpression:
		if module, isReq := requireModuleSpecifier(obj); isReq {
			acc.addModuleMember(module, member)
		}
	}
}
