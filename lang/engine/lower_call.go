package engine

import (
	"github.com/mna/ferrox/lang/ast"
	"github.com/mna/ferrox/lang/types"
)

func (c *lowerCtx) lowerCallExpr(x *ast.CallExpr) Kind {
	if ident, ok := x.Callee.(*ast.Ident); ok && ident.Name == "debug" {
		return c.lowerDebugCall(x)
	}

	id, ok := c.resolveCallee(x.Callee)
	if !ok {
		fail("name not found in call position")
	}
	def := c.e.Defs.Get(id)

	switch def.DefKind {
	case DefStruct:
		return c.lowerStructCall(id, def.Struct, x.Args)
	case DefFun:
		return c.lowerFunCall(id, def.Fun, x.Args)
	default:
		fail("value is not callable")
		return Error
	}
}

func (c *lowerCtx) resolveCallee(expr ast.Expr) (DefinitionID, bool) {
	switch callee := expr.(type) {
	case *ast.Ident:
		return c.e.processDefn(callee.Name, c.scope)
	case *ast.PathExpr:
		return c.e.processPath(callee.P, c.scope)
	default:
		fail("unsupported call target %T", expr)
		return 0, false
	}
}

func (c *lowerCtx) lowerDebugCall(x *ast.CallExpr) Kind {
	if len(x.Args) != 1 {
		fail("debug() takes exactly one argument")
	}
	argTy := c.lowerExpr(x.Args[0], Unknown)
	c.emit(Instruction{Op: DebugPrint, Kind: argTy})
	return Void
}

func (c *lowerCtx) lowerStructCall(id DefinitionID, fields []Field, args []ast.Expr) Kind {
	if len(args) != len(fields) {
		fail("struct constructor expects %d fields, found %d arguments", len(fields), len(args))
	}
	for i, f := range fields {
		argTy := c.lowerExpr(args[i], f.Type)
		if !types.AssignmentCompatible(f.Type, argTy) {
			fail("field %q expects type %s, found %s", f.Name, types.PrintableName(f.Type), types.PrintableName(argTy))
		}
	}
	c.emit(Instruction{Op: Call, DefID: id})
	return Kind(id)
}

func (c *lowerCtx) lowerFunCall(id DefinitionID, fun *Fun, args []ast.Expr) Kind {
	if len(fun.TypeParams) > 0 {
		return c.lowerGenericFunCall(id, fun, args)
	}
	if len(args) != len(fun.Params) {
		fail("function expects %d arguments, found %d", len(fun.Params), len(args))
	}
	for i, p := range fun.Params {
		argTy := c.lowerExpr(args[i], p.Type)
		if !types.AssignmentCompatible(p.Type, argTy) {
			fail("argument %q expects type %s, found %s", p.Name, types.PrintableName(p.Type), types.PrintableName(argTy))
		}
	}
	c.emit(Instruction{Op: Call, DefID: id})
	return fun.ReturnType
}

func (c *lowerCtx) lowerGenericFunCall(id DefinitionID, fun *Fun, args []ast.Expr) Kind {
	if len(args) != len(fun.Params) {
		fail("function expects %d arguments, found %d", len(fun.Params), len(args))
	}
	argTys := make([]Kind, len(args))
	for i, a := range args {
		argTys[i] = c.lowerExpr(a, Unknown)
	}
	instID, retTy := c.e.instantiateGenericFn(id, c.scope, argTys)
	c.emit(Instruction{Op: Call, DefID: instID})
	return retTy
}

func (c *lowerCtx) lowerAssignExpr(x *ast.AssignExpr) Kind {
	placeTy, varID := c.lowerLValue(x.Target)
	valTy := c.lowerExpr(x.Value, placeTy)
	if !types.AssignmentCompatible(placeTy, valTy) {
		fail("can't assign value of type %s to place of type %s", types.PrintableName(valTy), types.PrintableName(placeTy))
	}
	c.emit(Instruction{Op: Assign})
	if varID >= 0 && !c.vs.Vars[varID].Usable {
		c.vs.MarkUsable(varID)
	}
	return Void
}

// lowerLValue lowers an assignment target in l-value mode (LValueVar /
// LValueDot instead of Var / Dot) and returns the place's type together
// with its var id, or -1 if the place isn't a direct variable (a field
// access chain), in which case there's nothing to mark usable.
func (c *lowerCtx) lowerLValue(expr ast.Expr) (Kind, int) {
	switch x := expr.(type) {
	case *ast.Ident:
		varID, ok := c.vs.Find(x.Name)
		if !ok {
			fail("name not found: %s", x.Name)
		}
		c.emit(Instruction{Op: LValueVar, VarID: varID})
		return c.vs.Vars[varID].Type, varID
	case *ast.FieldExpr:
		baseTy, _ := c.lowerLValue(x.X)
		c.emit(Instruction{Op: LValueDot, Field: x.Name})
		return c.fieldType(baseTy, x.Name), -1
	default:
		fail("unsupported assignment target %T", expr)
		return Error, -1
	}
}

func (c *lowerCtx) lowerIfExpr(x *ast.IfExpr, hint Kind) Kind {
	condTy := c.lowerExpr(x.Cond, Bool)
	if condTy != Bool {
		fail("if condition must be bool, found %s", types.PrintableName(condTy))
	}

	ifIdx := c.emit(Instruction{Op: If, Kind: hint})
	thenTy := c.lowerBlock(x.Then, hint)

	if x.Else == nil {
		endIdx := c.emit(Instruction{Op: EndIf, Kind: hint})
		(*c.bc)[ifIdx].Offset = endIdx + 1
		if thenTy != Void {
			fail("if without else must have type void, found %s", types.PrintableName(thenTy))
		}
		(*c.bc)[ifIdx].Kind = Void
		(*c.bc)[endIdx].Kind = Void
		return Void
	}

	elseIdx := c.emit(Instruction{Op: Else, Kind: hint})
	(*c.bc)[ifIdx].Offset = elseIdx + 1
	elseTy := c.lowerBlock(x.Else, hint)
	endIdx := c.emit(Instruction{Op: EndIf, Kind: hint})
	(*c.bc)[elseIdx].Offset = endIdx + 1

	if !types.AssignmentCompatible(thenTy, elseTy) && !types.AssignmentCompatible(elseTy, thenTy) {
		fail("if/else branches have incompatible types %s and %s", types.PrintableName(thenTy), types.PrintableName(elseTy))
	}
	resultTy := types.TighterOf(thenTy, elseTy)
	(*c.bc)[ifIdx].Kind = resultTy
	(*c.bc)[elseIdx].Kind = resultTy
	(*c.bc)[endIdx].Kind = resultTy
	return resultTy
}
