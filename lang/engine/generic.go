package engine

import (
	"strings"

	"github.com/mna/ferrox/lang/types"
)

// instantiateGenericFn specializes a generic function template for a
// concrete set of argument types, caching the result by a deterministic
// instance name bound in the call site's own scope rather than the
// template's home scope: two calls to the same generic function with the
// same concrete types, from the same scope, share one instantiation; a
// call from a different scope gets its own cache slot, matching the
// original implementation's choice to key the cache off the scope doing
// the calling, not the scope that declared the generic.
func (e *Engine) instantiateGenericFn(targetID DefinitionID, scope ScopeID, argTys []Kind) (DefinitionID, Kind) {
	fun := e.Defs.Get(targetID).Fun

	var unification []Substitution
	for i, p := range fun.Params {
		if i >= len(argTys) {
			break
		}
		if e.Defs.Get(DefinitionID(p.Type)).DefKind == DefTypeVariable {
			unification = append(unification, Substitution{TypeVar: DefinitionID(p.Type), Concrete: argTys[i]})
		}
	}

	retTy := fun.ReturnType
	for _, sub := range unification {
		if fun.ReturnType == Kind(sub.TypeVar) {
			retTy = sub.Concrete
		}
	}

	key := instanceName(unification, retTy)
	if id, _, ok := e.Scopes.Get(key, scope); ok {
		return id, retTy
	}

	id := e.Defs.Alloc(Definition{
		DefKind: DefInstantiatedFun,
		Instantiated: InstantiatedFun{
			Target:       targetID,
			Substitution: unification,
		},
	})
	e.Scopes.Insert(scope, key, id)
	return id, retTy
}

// instanceName builds the "inst$ty1$ty2...%ret" cache key, in substitution
// order, matching the original's instance naming convention.
func instanceName(subs []Substitution, retTy Kind) string {
	var b strings.Builder
	b.WriteString("inst")
	for _, s := range subs {
		b.WriteByte('$')
		b.WriteString(types.PrintableName(s.Concrete))
	}
	b.WriteByte('%')
	b.WriteString(types.PrintableName(retTy))
	return b.String()
}
