package ast

import "github.com/mna/ferrox/lang/token"

// Param is a single function parameter: a name and a declared type.
type Param struct {
	Name string
	Type Expr // a TypeRef
}

// FnItem is a `fn name(params) -> ret { body }` declaration, found at file,
// module or impl scope.
type FnItem struct {
	Start      token.Pos
	Pub        bool
	Name       string
	TypeParams []string // generic parameters, e.g. `fn id<T>(...)`
	Params     []Param
	ReturnType Expr // a TypeRef, nil means void
	Body       *Block
}

func (n *FnItem) item()                        {}
func (n *FnItem) Span() (start, end token.Pos) { return n.Start, n.Start }

// ExternFnItem is a single signature inside an `extern { ... }` block: it
// has no body and is linked to a host-provided symbol of the same name.
type ExternFnItem struct {
	Start      token.Pos
	Name       string
	Params     []Param
	ReturnType Expr // a TypeRef, nil means void
}

func (n *ExternFnItem) item()                        {}
func (n *ExternFnItem) Span() (start, end token.Pos) { return n.Start, n.Start }

// ExternBlock is an `extern { fn foo(...); ... }` block of foreign function
// declarations.
type ExternBlock struct {
	Start token.Pos
	Fns   []*ExternFnItem
}

func (n *ExternBlock) item()                        {}
func (n *ExternBlock) Span() (start, end token.Pos) { return n.Start, n.Start }

// ModItem is a `mod name { ... }` inline module, or a `mod name;`
// file-backed module reference when Inline is false (Items is empty in
// that case; the engine loads the sibling file eagerly, when the item is
// prepared).
type ModItem struct {
	Start  token.Pos
	Pub    bool
	Name   string
	Inline bool
	Items  []Item
}

func (n *ModItem) item()                        {}
func (n *ModItem) Span() (start, end token.Pos) { return n.Start, n.Start }

// FieldDecl is a single `name: Type` struct field as written in the source;
// the engine re-sorts fields by name when the struct is resolved.
type FieldDecl struct {
	Name string
	Type Expr // a TypeRef
}

// StructItem is a `struct Name { fields... }` declaration.
type StructItem struct {
	Start  token.Pos
	Pub    bool
	Name   string
	Fields []FieldDecl
}

func (n *StructItem) item()                        {}
func (n *StructItem) Span() (start, end token.Pos) { return n.Start, n.Start }

// ImplItem is an `impl TypeName { fn ... }` block. Method dispatch
// (`x.m()` / `T::m(x)`) is not wired per spec; the block's methods are
// flattened into their own scope but are only reachable via explicit path,
// and any attempt to call them through method syntax is a fatal
// unsupported-construct error.
type ImplItem struct {
	Start    token.Pos
	TypeName string
	Methods  []*FnItem
}

func (n *ImplItem) item()                        {}
func (n *ImplItem) Span() (start, end token.Pos) { return n.Start, n.Start }

// UseTree is the recursive structure of a `use` declaration.
type UseTree interface {
	Node
	useTree()
}

// UseName binds a single resolved name under its own identifier: `use foo;`.
type UseName struct {
	Start token.Pos
	Name  string
}

func (n *UseName) useTree()                       {}
func (n *UseName) Span() (start, end token.Pos) { return n.Start, n.Start }

// UseRename binds a single resolved name under a different identifier:
// `use foo as bar;`.
type UseRename struct {
	Start  token.Pos
	Name   string
	Rename string
}

func (n *UseRename) useTree()                     {}
func (n *UseRename) Span() (start, end token.Pos) { return n.Start, n.Start }

// UsePath descends into a module before continuing to resolve Sub:
// `use a::b::{...}`.
type UsePath struct {
	Start   token.Pos
	Segment string
	Sub     UseTree
}

func (n *UsePath) useTree()                     {}
func (n *UsePath) Span() (start, end token.Pos) { return n.Start, n.Start }

// UseGroup expands to every tree in Items, all relative to the same scope:
// `use a::{b, c::d}`.
type UseGroup struct {
	Start token.Pos
	Items []UseTree
}

func (n *UseGroup) useTree()                     {}
func (n *UseGroup) Span() (start, end token.Pos) { return n.Start, n.Start }

// UseGlob binds every name defined in the target scope: `use a::*;`.
type UseGlob struct {
	Start token.Pos
}

func (n *UseGlob) useTree()                     {}
func (n *UseGlob) Span() (start, end token.Pos) { return n.Start, n.Start }

// UseItem is a top-level `use ...;` declaration.
type UseItem struct {
	Start token.Pos
	Tree  UseTree
}

func (n *UseItem) item()                        {}
func (n *UseItem) Span() (start, end token.Pos) { return n.Start, n.Start }
