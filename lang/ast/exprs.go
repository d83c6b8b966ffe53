package ast

import "github.com/mna/ferrox/lang/token"

// TypeRef names a type by path, e.g. `u64`, `MyStruct`, `m::MyStruct`.
// Builtin primitive type names are just single-segment paths that the
// resolver recognizes by spelling.
type TypeRef struct {
	Path *Path
}

func (n *TypeRef) expr()                        {}
func (n *TypeRef) Span() (start, end token.Pos) { return n.Path.Span() }

// IntLit is an integer literal, optionally suffixed with a width
// (`4u64`, `4u32`, `4i64`, `4i32`); an empty Suffix means the width is not
// yet known and must be inferred from context.
type IntLit struct {
	Start  token.Pos
	Value  uint64
	Suffix string
}

func (n *IntLit) expr()                        {}
func (n *IntLit) Span() (start, end token.Pos) { return n.Start, n.Start }

// BoolLit is `true` or `false`.
type BoolLit struct {
	Start token.Pos
	Value bool
}

func (n *BoolLit) expr()                        {}
func (n *BoolLit) Span() (start, end token.Pos) { return n.Start, n.Start }

// Ident is a bare identifier reference, resolved first against the
// enclosing function's variable stack, then as a path of one segment.
type Ident struct {
	Start token.Pos
	Name  string
}

func (n *Ident) expr()                        {}
func (n *Ident) Span() (start, end token.Pos) { return n.Start, n.Start }

// PathExpr is a multi-segment (or leading-rooted) path used as a value,
// e.g. a call callee `m::f(...)`.
type PathExpr struct {
	P *Path
}

func (n *PathExpr) expr()                        {}
func (n *PathExpr) Span() (start, end token.Pos) { return n.P.Span() }

// BinaryExpr is a binary arithmetic or relational expression.
type BinaryExpr struct {
	Op   token.Token // PLUS, MINUS, STAR, SLASH, LT
	X, Y Expr
}

func (n *BinaryExpr) expr() {}
func (n *BinaryExpr) Span() (start, end token.Pos) {
	start, _ = n.X.Span()
	_, end = n.Y.Span()
	return start, end
}

// UnaryExpr is a unary negation `-x`.
type UnaryExpr struct {
	Start token.Pos
	Op    token.Token // MINUS
	X     Expr
}

func (n *UnaryExpr) expr()                        {}
func (n *UnaryExpr) Span() (start, end token.Pos) { return n.Start, n.Start }

// CastExpr is `x as T`.
type CastExpr struct {
	X    Expr
	Type Expr // a TypeRef
}

func (n *CastExpr) expr() {}
func (n *CastExpr) Span() (start, end token.Pos) {
	start, _ = n.X.Span()
	_, end = n.Type.Span()
	return start, end
}

// CallExpr is `callee(args...)`. If callee resolves to a struct, this is a
// constructor call and args must match the struct's sorted field order.
type CallExpr struct {
	Callee Expr
	Args   []Expr
	RParen token.Pos
}

func (n *CallExpr) expr() {}
func (n *CallExpr) Span() (start, end token.Pos) {
	start, _ = n.Callee.Span()
	return start, n.RParen
}

// FieldExpr is `x.name`.
type FieldExpr struct {
	X     Expr
	Name  string
	Start token.Pos
}

func (n *FieldExpr) expr() {}
func (n *FieldExpr) Span() (start, end token.Pos) {
	start, _ = n.X.Span()
	return start, n.Start
}

// AssignExpr is `place = value`.
type AssignExpr struct {
	Target Expr
	Value  Expr
}

func (n *AssignExpr) expr() {}
func (n *AssignExpr) Span() (start, end token.Pos) {
	start, _ = n.Target.Span()
	_, end = n.Value.Span()
	return start, end
}

// IfExpr is `if cond { then } [else { else }]`, usable as a statement or as
// an expression whose value is the (joined) type of both branches.
type IfExpr struct {
	Start token.Pos
	Cond  Expr
	Then  *Block
	Else  *Block // nil if there is no else branch
}

func (n *IfExpr) expr()                        {}
func (n *IfExpr) Span() (start, end token.Pos) { return n.Start, n.Start }

// BlockExpr wraps a bare `{ ... }` block used in expression position.
type BlockExpr struct {
	Block *Block
}

func (n *BlockExpr) expr()                        {}
func (n *BlockExpr) Span() (start, end token.Pos) { return n.Block.Span() }
