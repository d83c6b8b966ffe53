package engine

import (
	"cmp"
	"fmt"

	"github.com/mna/ferrox/lang/ast"
	"golang.org/x/exp/slices"
)

// GetDefn finds the definition id for name, starting at scope and walking
// outward (stopping at module boundaries), without forcing it to be
// lowered. It returns the id and the scope that actually held the
// binding.
func (e *Engine) GetDefn(name string, scope ScopeID) (DefinitionID, ScopeID, bool) {
	return e.Scopes.Get(name, scope)
}

// GetFn returns the finalized Fun bound to name in scope. It panics if the
// binding is missing or has not yet been lowered into a Fun, mirroring the
// teacher's "this should already be processed" contract for read-only
// lookups performed after the driver has run ProcessFn.
func (e *Engine) GetFn(name string, scope ScopeID) *Fun {
	id, _, ok := e.GetDefn(name, scope)
	if !ok {
		panic(fmt.Sprintf("function %s could not be found", name))
	}
	def := e.Defs.Get(id)
	if def.DefKind != DefFun {
		panic(fmt.Sprintf("function %s needs to be processed first", name))
	}
	return def.Fun
}

// processDefn resolves name in scope and ensures the target is fully
// materialized, dispatching on its current variant. It is the engine's
// single point of demand-driven lowering.
func (e *Engine) processDefn(name string, scope ScopeID) (DefinitionID, bool) {
	id, foundScope, ok := e.GetDefn(name, scope)
	if !ok {
		return 0, false
	}
	switch e.Defs.Get(id).DefKind {
	case DefLazyFn:
		return e.processFnAt(id, foundScope), true
	case DefLazyMod:
		return e.processMod(id, foundScope), true
	case DefLazyStruct:
		return e.processStruct(id, foundScope), true
	case DefLazyImpl:
		return e.processImpl(id, foundScope), true
	default:
		return id, true
	}
}

// ProcessFn resolves name in scope, forcing it (and transitively
// everything its body uses) to be fully lowered, and returns its
// definition id.
func (e *Engine) ProcessFn(name string, scope ScopeID) DefinitionID {
	id, foundScope, ok := e.GetDefn(name, scope)
	if !ok {
		panic(fmt.Sprintf("can not find function %s", name))
	}
	return e.processFnAt(id, foundScope)
}

func (e *Engine) processFnAt(id DefinitionID, foundScope ScopeID) DefinitionID {
	def := e.Defs.Get(id)
	if def.DefKind != DefLazyFn {
		// Idempotent: already resolved (Fun, or nothing to do).
		return id
	}
	fun := e.lowerFn(id, foundScope)
	e.Defs.Replace(id, Definition{DefKind: DefFun, Fun: fun})
	return id
}

func (e *Engine) processStruct(id DefinitionID, scope ScopeID) DefinitionID {
	def := e.Defs.Get(id)
	if def.DefKind != DefLazyStruct {
		return id
	}
	item := def.LazyStructItem
	fields := make([]Field, 0, len(item.Fields))
	for _, fd := range item.Fields {
		ty := e.resolveTypeRef(fd.Type, scope)
		fields = append(fields, Field{Name: fd.Name, Type: ty})
	}
	slices.SortFunc(fields, func(a, b Field) int { return cmp.Compare(a.Name, b.Name) })
	e.Defs.Replace(id, Definition{DefKind: DefStruct, Struct: fields})
	return id
}

func (e *Engine) processMod(id DefinitionID, foundScope ScopeID) DefinitionID {
	def := e.Defs.Get(id)
	if def.DefKind != DefLazyMod {
		return id
	}
	item := def.LazyModItem
	modScope := e.Scopes.NewScope(foundScope, true)
	for _, sub := range item.Items {
		e.PrepareItem(sub, modScope)
	}
	e.Defs.Replace(id, Definition{DefKind: DefMod, ModScope: modScope})
	return id
}

func (e *Engine) processImpl(id DefinitionID, foundScope ScopeID) DefinitionID {
	def := e.Defs.Get(id)
	if def.DefKind != DefLazyImpl {
		return id
	}
	item := def.LazyImplItem
	implScope := e.Scopes.NewScope(foundScope, true)
	for _, m := range item.Methods {
		mid := e.Defs.Alloc(Definition{DefKind: DefLazyFn, LazyFnItem: m, HomeScope: implScope})
		e.Scopes.Insert(implScope, m.Name, mid)
	}
	e.Defs.Replace(id, Definition{DefKind: DefMod, ModScope: implScope})
	return id
}

// processPath resolves a (possibly crate-rooted) path: every segment but
// the last names a module to descend into; the final segment is resolved
// (and processed) in the scope reached.
func (e *Engine) processPath(path *ast.Path, scope ScopeID) (DefinitionID, bool) {
	cur := scope
	if path.Rooted {
		cur = e.Scopes.CrateRoot(scope)
	}

	segs := path.Segments
	for i := 0; i < len(segs)-1; i++ {
		id, foundScope, ok := e.GetDefn(segs[i], cur)
		if !ok {
			return 0, false
		}
		modID := e.processModByDefKind(id, foundScope)
		mod := e.Defs.Get(modID)
		if mod.DefKind != DefMod {
			panic(fmt.Sprintf("%s does not name a module", segs[i]))
		}
		cur = mod.ModScope
	}

	last := segs[len(segs)-1]
	return e.processDefn(last, cur)
}

// processModByDefKind forces whatever is bound at id to become a Mod (it
// must already be a LazyMod, LazyImpl or Mod).
func (e *Engine) processModByDefKind(id DefinitionID, foundScope ScopeID) DefinitionID {
	switch e.Defs.Get(id).DefKind {
	case DefLazyMod:
		return e.processMod(id, foundScope)
	case DefLazyImpl:
		return e.processImpl(id, foundScope)
	default:
		return id
	}
}

// processUseTree expands a use tree, binding names into originalScope
// while resolving relative to currentScope.
func (e *Engine) processUseTree(tree ast.UseTree, originalScope, currentScope ScopeID) {
	switch t := tree.(type) {
	case *ast.UseName:
		id, ok := e.processDefn(t.Name, currentScope)
		if !ok {
			panic(fmt.Sprintf("could not resolve use of %s", t.Name))
		}
		e.Scopes.Insert(originalScope, t.Name, id)

	case *ast.UseRename:
		id, ok := e.processDefn(t.Name, currentScope)
		if !ok {
			panic(fmt.Sprintf("could not resolve use of %s", t.Name))
		}
		e.Scopes.Insert(originalScope, t.Rename, id)

	case *ast.UsePath:
		id, foundScope, ok := e.GetDefn(t.Segment, currentScope)
		if !ok {
			panic(fmt.Sprintf("could not resolve module %s in use path", t.Segment))
		}
		modID := e.processModByDefKind(id, foundScope)
		mod := e.Defs.Get(modID)
		if mod.DefKind != DefMod {
			panic(fmt.Sprintf("%s does not name a module in use path", t.Segment))
		}
		e.processUseTree(t.Sub, originalScope, mod.ModScope)

	case *ast.UseGroup:
		for _, sub := range t.Items {
			e.processUseTree(sub, originalScope, currentScope)
		}

	case *ast.UseGlob:
		names := e.Scopes.Names(currentScope)
		slices.Sort(names)
		for _, name := range names {
			id, ok := e.processDefn(name, currentScope)
			if !ok {
				panic(fmt.Sprintf("could not resolve use of %s", name))
			}
			e.Scopes.Insert(originalScope, name, id)
		}

	default:
		panic(fmt.Sprintf("unsupported use tree node %T", tree))
	}
}

// builtinTypeNames maps the surface spelling of a builtin type to its
// reserved Kind, used by resolveTypeRef before falling back to ordinary
// path resolution for user-defined types.
var builtinTypeNames = map[string]Kind{
	"u64":  U64,
	"u32":  U32,
	"i64":  I64,
	"i32":  I32,
	"bool": Bool,
}

// resolveTypeRef resolves a TypeRef expression to a concrete Kind,
// recognizing builtin primitive spellings directly and otherwise treating
// the path as a reference to a (possibly not-yet-processed) struct or
// type-variable definition.
func (e *Engine) resolveTypeRef(expr ast.Expr, scope ScopeID) Kind {
	tr, ok := expr.(*ast.TypeRef)
	if !ok {
		panic(fmt.Sprintf("expected a type reference, found %T", expr))
	}
	if !tr.Path.Rooted && len(tr.Path.Segments) == 1 {
		if k, ok := builtinTypeNames[tr.Path.Segments[0]]; ok {
			return k
		}
	}
	id, ok := e.processPath(tr.Path, scope)
	if !ok {
		panic(fmt.Sprintf("could not resolve type %s", tr.Path))
	}
	return Kind(id)
}
