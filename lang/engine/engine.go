// Package engine implements the lazy definition resolver, scope graph and
// AST-to-bytecode lowering core: the one component of the system this
// module treats as its own, rather than as an external collaborator.
// Resolver, scope graph, definition table and lowering are kept in a
// single package because the original implementation fuses them into one
// engine value that calls back and forth between resolution and lowering;
// splitting them into separate packages would just relocate that
// circularity into import cycles.
package engine

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mna/ferrox/lang/ast"
	"github.com/mna/ferrox/lang/parser"
)

// Engine is the root of the lazy resolver/lowering pipeline: it owns the
// definition table and scope graph and every operation above goes through
// a single Engine value. It is strictly single-threaded; callers must not
// share an Engine across goroutines.
type Engine struct {
	Defs        *DefTable
	Scopes      *ScopeGraph
	projectRoot string
}

// New constructs an Engine with the builtin primitive types pre-registered
// at their reserved ids, plus a single root scope (the crate root, a module
// boundary with no parent). The builtin type names (u64, u32, bool, i64,
// i32) are not bound in any scope; the resolver recognizes them by
// spelling.
func New() *Engine {
	e := &Engine{
		Defs:   NewDefTable(),
		Scopes: NewScopeGraph(),
	}
	return e
}

// SetProjectRoot sets the base directory used to resolve `mod foo;`
// file-backed modules.
func (e *Engine) SetProjectRoot(path string) {
	e.projectRoot = path
}

func (e *Engine) resolvePath(name string) string {
	if e.projectRoot != "" {
		return filepath.Join(e.projectRoot, name)
	}
	return name
}

// LoadFile parses and prepares a source file's top-level items into the
// crate root scope.
func (e *Engine) LoadFile(name string) error {
	path := e.resolvePath(name)
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("unable to open file %s: %w", path, err)
	}
	ch, errs := parser.ParseChunk(path, src)
	if err := errs.Err(); err != nil {
		return err
	}
	for _, it := range ch.Items {
		e.PrepareItem(it, e.Scopes.Root())
	}
	return nil
}

// PrepareItem inserts a single AST item into scope as a Lazy definition,
// or, for a file-backed module (`mod foo;` with no inline body), eagerly
// opens the sibling file into a fresh orphan scope (parent-less, the same
// way the top-level crate root is parent-less) and recursively prepares
// its contents — matching the original engine's eager treatment of
// non-inline modules, in contrast to every other item kind, which stays
// Lazy until first demanded.
func (e *Engine) PrepareItem(item ast.Item, scope ScopeID) {
	switch it := item.(type) {
	case *ast.FnItem:
		id := e.Defs.Alloc(Definition{DefKind: DefLazyFn, LazyFnItem: it, HomeScope: scope})
		e.Scopes.Insert(scope, it.Name, id)

	case *ast.ExternBlock:
		for _, fn := range it.Fns {
			id := e.prepareExternFn(fn, scope)
			e.Scopes.Insert(scope, fn.Name, id)
		}

	case *ast.StructItem:
		id := e.Defs.Alloc(Definition{DefKind: DefLazyStruct, LazyStructItem: it, HomeScope: scope})
		e.Scopes.Insert(scope, it.Name, id)

	case *ast.ImplItem:
		id := e.Defs.Alloc(Definition{DefKind: DefLazyImpl, LazyImplItem: it, HomeScope: scope})
		e.Scopes.Insert(scope, it.TypeName, id)

	case *ast.ModItem:
		if it.Inline {
			id := e.Defs.Alloc(Definition{DefKind: DefLazyMod, LazyModItem: it, HomeScope: scope})
			e.Scopes.Insert(scope, it.Name, id)
			return
		}
		e.prepareFileMod(it, scope)

	case *ast.UseItem:
		originalScope := scope
		cur := scope
		for {
			if e.Scopes.IsModBoundary(cur) {
				break
			}
			parent, ok := e.Scopes.Parent(cur)
			if !ok {
				break
			}
			cur = parent
		}
		e.processUseTree(it.Tree, originalScope, cur)

	default:
		panic(fmt.Sprintf("unknown item type: %T", item))
	}
}

func (e *Engine) prepareExternFn(fn *ast.ExternFnItem, scope ScopeID) DefinitionID {
	var retTy Kind = Void
	if fn.ReturnType != nil {
		retTy = e.resolveTypeRef(fn.ReturnType, scope)
	}

	vs := NewVarStack()
	params := make([]Param, 0, len(fn.Params))
	for _, p := range fn.Params {
		ty := e.resolveTypeRef(p.Type, scope)
		varID := vs.Add(p.Name, ty)
		params = append(params, Param{Name: p.Name, VarID: varID, Type: ty})
	}

	return e.Defs.Alloc(Definition{
		DefKind: DefFun,
		Fun: &Fun{
			Params:     params,
			ReturnType: retTy,
			ExternName: fn.Name,
		},
	})
}

func (e *Engine) prepareFileMod(it *ast.ModItem, scope ScopeID) {
	name := it.Name + ".fx"
	path := e.resolvePath(name)
	src, err := os.ReadFile(path)
	if err != nil {
		panic(fmt.Sprintf("unable to open module file %s: %v", path, err))
	}
	ch, errs := parser.ParseChunk(path, src)
	if err := errs.Err(); err != nil {
		panic(err.Error())
	}

	modScope := e.Scopes.NewScope(noScope, true)
	id := e.Defs.Alloc(Definition{DefKind: DefMod, ModScope: modScope})
	e.Scopes.Insert(scope, it.Name, id)

	for _, sub := range ch.Items {
		e.PrepareItem(sub, modScope)
	}
}

// ProcessRawExprStr parses and lowers a free-standing expression into
// bytecode for REPL/test usage, hardwiring the crate root as the
// resolution scope.
func (e *Engine) ProcessRawExprStr(src string, bc *Bytecode, vs *VarStack) (Kind, error) {
	x, errs := parser.ParseExpr(src)
	if err := errs.Err(); err != nil {
		return Unknown, err
	}
	return e.lowerExpr(x, Unknown, bc, e.Scopes.Root(), vs), nil
}

// ProcessRawStmtStr parses and lowers a free-standing statement (or a bare
// item declaration, prepared into the crate root scope) for REPL/test
// usage.
func (e *Engine) ProcessRawStmtStr(src string, bc *Bytecode, vs *VarStack) error {
	st, errs := parser.ParseStmt(src)
	if err := errs.Err(); err != nil {
		return err
	}
	if is, ok := st.(*ast.ItemStmt); ok {
		e.PrepareItem(is.It, e.Scopes.Root())
		return nil
	}
	e.lowerStmt(st, Unknown, bc, e.Scopes.Root(), vs)
	return nil
}
