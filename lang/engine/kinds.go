package engine

import (
	"github.com/mna/ferrox/lang/ast"
	"github.com/mna/ferrox/lang/types"
)

// Re-exported so the rest of this package can write the bare builtin
// names instead of qualifying every one with types.
const (
	Unknown    = types.Unknown
	UnknownInt = types.UnknownInt
	Void       = types.Void
	U64        = types.U64
	U32        = types.U32
	Bool       = types.Bool
	Error      = types.Error
	I64        = types.I64
	I32        = types.I32
	VoidPtr    = types.VoidPtr
)

// lowerExpr lowers a free-standing expression against the given scope and
// variable stack, used by ProcessRawExprStr. retType is Void: a bare
// top-level expression can't contain a `return`.
func (e *Engine) lowerExpr(expr ast.Expr, hint Kind, bc *Bytecode, scope ScopeID, vs *VarStack) Kind {
	ctx := &lowerCtx{e: e, bc: bc, scope: scope, vs: vs, retType: Void}
	return ctx.lowerExpr(expr, hint)
}

// lowerStmt lowers a free-standing statement the same way.
func (e *Engine) lowerStmt(stmt ast.Stmt, hint Kind, bc *Bytecode, scope ScopeID, vs *VarStack) {
	ctx := &lowerCtx{e: e, bc: bc, scope: scope, vs: vs, retType: Void}
	ctx.lowerStmt(stmt)
}
