// Package ast defines the abstract syntax tree produced by lang/parser for
// the Rust-like subset: items (functions, modules, structs, impls, use
// trees, extern blocks), statements and expressions.
//
// The tree is a tagged-variant hierarchy: Node is the root interface, with
// Item, Stmt and Expr narrowing it to the three families consumed by the
// resolver and lowering engine.
package ast

import "github.com/mna/ferrox/lang/token"

// Node is any node of the tree.
type Node interface {
	// Span reports the start and end position of the node.
	Span() (start, end token.Pos)
}

// Item is a top-level or nested declaration: a function, module, struct,
// impl block, use tree or extern block.
type Item interface {
	Node
	item()
}

// Stmt is a statement inside a function body.
type Stmt interface {
	Node
	stmt()
}

// Expr is an expression.
type Expr interface {
	Node
	expr()
}

// Chunk is the root of a single parsed source file.
type Chunk struct {
	Name  string
	Items []Item
	EOF   token.Pos
}

func (n *Chunk) Span() (start, end token.Pos) {
	if len(n.Items) == 0 {
		return n.EOF, n.EOF
	}
	start, _ = n.Items[0].Span()
	return start, n.EOF
}

// Block is a brace-delimited sequence of statements, optionally ending in a
// tail expression with no trailing semicolon (the block's value).
type Block struct {
	Start, End token.Pos
	Stmts      []Stmt
	Tail       Expr // nil if the block has no tail expression
}

func (n *Block) Span() (start, end token.Pos) { return n.Start, n.End }

// Path is a (possibly crate-rooted) sequence of identifier segments, e.g.
// `a::b::c` or `::a::b`.
type Path struct {
	Start    token.Pos
	Rooted   bool // true if the path begins with a leading `::`
	Segments []string
}

func (n *Path) Span() (start, end token.Pos) { return n.Start, n.Start }

// String renders the path in its surface syntax form.
func (n *Path) String() string {
	s := ""
	if n.Rooted {
		s = "::"
	}
	for i, seg := range n.Segments {
		if i > 0 {
			s += "::"
		}
		s += seg
	}
	return s
}
