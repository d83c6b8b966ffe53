package ast

import "github.com/mna/ferrox/lang/token"

// LetStmt is `let [mut] name [: Type] [= value];`. Value is nil for an
// uninitialized declaration (`let x: T;`), in which case Type must be set.
type LetStmt struct {
	Start token.Pos
	Mut   bool
	Name  string
	Type  Expr // a TypeRef, nil if not annotated
	Value Expr // nil if uninitialized
}

func (n *LetStmt) stmt()                        {}
func (n *LetStmt) Span() (start, end token.Pos) { return n.Start, n.Start }

// ExprStmt is an expression used as a statement, followed by a semicolon.
type ExprStmt struct {
	X Expr
}

func (n *ExprStmt) stmt()                        {}
func (n *ExprStmt) Span() (start, end token.Pos) { return n.X.Span() }

// ReturnStmt is `return [value];`.
type ReturnStmt struct {
	Start token.Pos
	Value Expr // nil for a bare `return;`
}

func (n *ReturnStmt) stmt()                        {}
func (n *ReturnStmt) Span() (start, end token.Pos) { return n.Start, n.Start }

// WhileStmt is `while cond { body }`.
type WhileStmt struct {
	Start token.Pos
	Cond  Expr
	Body  *Block
}

func (n *WhileStmt) stmt()                        {}
func (n *WhileStmt) Span() (start, end token.Pos) { return n.Start, n.Start }

// ItemStmt wraps a nested item (fn, struct, mod, use, impl) declared
// inside a function body.
type ItemStmt struct {
	It Item
}

func (n *ItemStmt) stmt()                        {}
func (n *ItemStmt) Span() (start, end token.Pos) { return n.It.Span() }
