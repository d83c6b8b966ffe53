package engine

import (
	"fmt"

	"github.com/mna/ferrox/lang/ast"
	"github.com/mna/ferrox/lang/token"
	"github.com/mna/ferrox/lang/types"
)

// lowerCtx threads the state every lowering helper needs: the bytecode
// vector being appended to, the scope identifiers/paths resolve against,
// the function's variable stack, and the declared return type of the
// function currently being lowered (consulted only by ReturnStmt and the
// body's tail expression).
type lowerCtx struct {
	e       *Engine
	bc      *Bytecode
	scope   ScopeID
	vs      *VarStack
	retType Kind
}

func (c *lowerCtx) emit(ins Instruction) int {
	*c.bc = append(*c.bc, ins)
	return len(*c.bc) - 1
}

func fail(format string, args ...any) {
	panic(fmt.Sprintf(format, args...))
}

// lowerFn fully lowers a LazyFn definition into a Fun record. id must
// currently hold a DefLazyFn; foundScope is the scope it was found in
// (used as the parent of the function's own type-parameter scope, not
// LazyFnItem.HomeScope, mirroring the resolver's convention of reusing
// the scope the lookup actually succeeded in).
func (e *Engine) lowerFn(id DefinitionID, foundScope ScopeID) *Fun {
	def := e.Defs.Get(id)
	item := def.LazyFnItem

	fnScope := foundScope
	if len(item.TypeParams) > 0 {
		fnScope = e.Scopes.NewScope(foundScope, false)
		for _, tp := range item.TypeParams {
			tvID := e.Defs.Alloc(Definition{DefKind: DefTypeVariable, Name: tp})
			e.Scopes.Insert(fnScope, tp, tvID)
		}
	}

	vs := NewVarStack()
	params := make([]Param, 0, len(item.Params))
	for _, p := range item.Params {
		ty := e.resolveTypeRef(p.Type, fnScope)
		varID := vs.Add(p.Name, ty)
		params = append(params, Param{Name: p.Name, VarID: varID, Type: ty})
	}

	retTy := Kind(Void)
	if item.ReturnType != nil {
		retTy = e.resolveTypeRef(item.ReturnType, fnScope)
	}

	var bc Bytecode
	ctx := &lowerCtx{e: e, bc: &bc, scope: fnScope, vs: vs, retType: retTy}
	ctx.lowerFnBody(item.Body)

	return &Fun{
		TypeParams: item.TypeParams,
		Params:     params,
		ReturnType: retTy,
		Vars:       vs.Vars,
		Bytecode:   bc,
	}
}

// lowerFnBody lowers a function's top-level block, turning its tail
// expression (if any) into an explicit Return instruction instead of
// leaving the value on the stack the way a nested block expression would.
func (c *lowerCtx) lowerFnBody(block *ast.Block) {
	c.vs.PushBlock()
	for _, st := range block.Stmts {
		c.lowerStmt(st)
	}
	if block.Tail != nil {
		ty := c.lowerExpr(block.Tail, c.retType)
		if !types.AssignmentCompatible(c.retType, ty) {
			fail("function body returns %s, expected %s", types.PrintableName(ty), types.PrintableName(c.retType))
		}
		if c.retType == Void {
			c.emit(Instruction{Op: ReturnVoid})
		} else {
			c.emit(Instruction{Op: ReturnLastStackValue})
		}
	} else if c.retType != Void {
		fail("missing return value, function must return %s", types.PrintableName(c.retType))
	} else {
		c.emit(Instruction{Op: ReturnVoid})
	}
	c.vs.PopBlock()
}

// lowerBlock lowers a nested block used in expression position (an
// if/else branch, a while body, or a bare `{ ... }` expression): unlike
// lowerFnBody it never emits a Return, it just leaves the tail value (if
// any) on the stack as the block's own value.
func (c *lowerCtx) lowerBlock(block *ast.Block, hint Kind) Kind {
	c.vs.PushBlock()
	for _, st := range block.Stmts {
		c.lowerStmt(st)
	}
	var ty Kind = Void
	if block.Tail != nil {
		ty = c.lowerExpr(block.Tail, hint)
	}
	c.vs.PopBlock()
	return ty
}

func (c *lowerCtx) lowerStmt(stmt ast.Stmt) {
	switch st := stmt.(type) {
	case *ast.LetStmt:
		c.lowerLetStmt(st)
	case *ast.ExprStmt:
		ty := c.lowerExpr(st.X, Unknown)
		if ty != Void {
			fail("expression statement must have type void, found %s", types.PrintableName(ty))
		}
	case *ast.ReturnStmt:
		if st.Value != nil {
			ty := c.lowerExpr(st.Value, c.retType)
			if !types.AssignmentCompatible(c.retType, ty) {
				fail("return value of type %s is not compatible with declared return type %s",
					types.PrintableName(ty), types.PrintableName(c.retType))
			}
			c.emit(Instruction{Op: ReturnLastStackValue})
		} else {
			c.emit(Instruction{Op: ReturnVoid})
		}
	case *ast.WhileStmt:
		c.lowerWhileStmt(st)
	case *ast.ItemStmt:
		c.e.PrepareItem(st.It, c.scope)
	default:
		fail("unsupported statement type %T", stmt)
	}
}

func (c *lowerCtx) lowerLetStmt(st *ast.LetStmt) {
	declTy := Kind(Unknown)
	if st.Type != nil {
		declTy = c.e.resolveTypeRef(st.Type, c.scope)
	}

	if st.Value == nil {
		if declTy == Unknown {
			fail("uninitialized let binding %q requires a type annotation", st.Name)
		}
		varID := c.vs.AddUninit(st.Name, declTy)
		c.emit(Instruction{Op: VarDeclUninit, VarID: varID})
		return
	}

	valTy := c.lowerExpr(st.Value, declTy)
	finalTy := declTy
	if finalTy == Unknown {
		finalTy = valTy
	}
	if !types.AssignmentCompatible(finalTy, valTy) {
		fail("can't assign value of type %s to binding %q of type %s",
			types.PrintableName(valTy), st.Name, types.PrintableName(finalTy))
	}
	varID := c.vs.Add(st.Name, finalTy)
	c.emit(Instruction{Op: VarDecl, VarID: varID})
}

func (c *lowerCtx) lowerWhileStmt(st *ast.WhileStmt) {
	beginIdx := c.emit(Instruction{Op: BeginWhile})
	condTy := c.lowerExpr(st.Cond, Bool)
	if condTy != Bool {
		fail("while condition must be bool, found %s", types.PrintableName(condTy))
	}
	condIdx := c.emit(Instruction{Op: WhileCond})

	bodyTy := c.lowerBlock(st.Body, Void)
	if bodyTy != Void {
		fail("while body must have type void, found %s", types.PrintableName(bodyTy))
	}

	endIdx := c.emit(Instruction{Op: EndWhile, Int: uint64(beginIdx)})
	(*c.bc)[condIdx].Offset = endIdx + 1
}

func (c *lowerCtx) lowerExpr(expr ast.Expr, hint Kind) Kind {
	switch x := expr.(type) {
	case *ast.IntLit:
		return c.lowerIntLit(x, hint)
	case *ast.BoolLit:
		c.emit(Instruction{Op: PushBool, Bool: x.Value})
		return Bool
	case *ast.Ident:
		return c.lowerIdent(x)
	case *ast.PathExpr:
		return c.lowerPathValue(x.P)
	case *ast.BinaryExpr:
		return c.lowerBinaryExpr(x, hint)
	case *ast.UnaryExpr:
		if x.Op != token.MINUS {
			fail("unsupported unary operator %s", x.Op)
		}
		ty := c.lowerExpr(x.X, hint)
		c.emit(Instruction{Op: Neg})
		return ty
	case *ast.CastExpr:
		c.lowerExpr(x.X, Unknown)
		target := c.e.resolveTypeRef(x.Type, c.scope)
		c.emit(Instruction{Op: As, Kind: target})
		return target
	case *ast.FieldExpr:
		return c.lowerFieldExpr(x)
	case *ast.CallExpr:
		return c.lowerCallExpr(x)
	case *ast.AssignExpr:
		return c.lowerAssignExpr(x)
	case *ast.IfExpr:
		return c.lowerIfExpr(x, hint)
	case *ast.BlockExpr:
		return c.lowerBlock(x.Block, hint)
	default:
		fail("unsupported expression type %T", expr)
		return Error
	}
}

func (c *lowerCtx) lowerIntLit(x *ast.IntLit, hint Kind) Kind {
	width := suffixKind(x.Suffix)
	if width == Unknown && isConcreteInt(hint) {
		width = hint
	}
	switch width {
	case U64:
		c.emit(Instruction{Op: PushU64, Int: x.Value})
		return U64
	case U32:
		c.emit(Instruction{Op: PushU32, Int: x.Value})
		return U32
	case I64:
		c.emit(Instruction{Op: PushI64, Int: x.Value})
		return I64
	case I32:
		c.emit(Instruction{Op: PushI32, Int: x.Value})
		return I32
	default:
		c.emit(Instruction{Op: PushUnknownInt, Int: x.Value})
		return UnknownInt
	}
}

func suffixKind(suffix string) Kind {
	switch suffix {
	case "u64":
		return U64
	case "u32":
		return U32
	case "i64":
		return I64
	case "i32":
		return I32
	default:
		return Unknown
	}
}

func (c *lowerCtx) lowerIdent(x *ast.Ident) Kind {
	if varID, ok := c.vs.Find(x.Name); ok {
		if !c.vs.Vars[varID].Usable {
			fail("variable %q used before being given a value", x.Name)
		}
		c.emit(Instruction{Op: Var, VarID: varID})
		return c.vs.Vars[varID].Type
	}
	return c.lowerZeroArgDefn(x.Name, c.scope)
}

func (c *lowerCtx) lowerPathValue(p *ast.Path) Kind {
	id, ok := c.e.processPath(p, c.scope)
	if !ok {
		fail("name not found: %s", p)
	}
	return c.lowerResolvedZeroArgDefn(id)
}

// lowerZeroArgDefn handles a bare identifier that isn't a local variable:
// the only legal case in this subset is a zero-field struct used as its
// own constructor.
func (c *lowerCtx) lowerZeroArgDefn(name string, scope ScopeID) Kind {
	id, ok := c.e.processDefn(name, scope)
	if !ok {
		fail("name not found: %s", name)
	}
	return c.lowerResolvedZeroArgDefn(id)
}

func (c *lowerCtx) lowerResolvedZeroArgDefn(id DefinitionID) Kind {
	def := c.e.Defs.Get(id)
	if def.DefKind != DefStruct || len(def.Struct) != 0 {
		fail("unsupported construct: value reference to a non-struct or non-empty-struct definition")
	}
	c.emit(Instruction{Op: Call, DefID: id})
	return Kind(id)
}

func (c *lowerCtx) lowerBinaryExpr(x *ast.BinaryExpr, hint Kind) Kind {
	var op Opcode
	switch x.Op {
	case token.PLUS:
		op = Add
	case token.MINUS:
		op = Sub
	case token.STAR:
		op = Mul
	case token.SLASH:
		op = Div
	case token.LT:
		op = Lt
	default:
		fail("unsupported binary operator %s", x.Op)
	}

	lhsTy := c.lowerExpr(x.X, hint)
	rhsTy := c.lowerExpr(x.Y, lhsTy)
	if !types.OperatorCompatible(lhsTy, rhsTy) {
		fail("Can't add values of type %s and %s",
			types.PrintableName(lhsTy), types.PrintableName(rhsTy))
	}
	c.emit(Instruction{Op: op})
	if op == Lt {
		return Bool
	}
	return types.TighterOf(lhsTy, rhsTy)
}

func (c *lowerCtx) lowerFieldExpr(x *ast.FieldExpr) Kind {
	baseTy := c.lowerExpr(x.X, Unknown)
	c.emit(Instruction{Op: Dot, Field: x.Name})
	return c.fieldType(baseTy, x.Name)
}

func (c *lowerCtx) fieldType(structTy Kind, name string) Kind {
	def := c.e.Defs.Get(DefinitionID(structTy))
	if def.DefKind != DefStruct {
		fail("field access %q on non-struct type %s", name, types.PrintableName(structTy))
	}
	for _, f := range def.Struct {
		if f.Name == name {
			return f.Type
		}
	}
	fail("struct %s has no field %q", types.PrintableName(structTy), name)
	return Error
}

func isConcreteInt(k Kind) bool {
	switch k {
	case U64, U32, I64, I32:
		return true
	default:
		return false
	}
}
