package parser_test

import (
	"testing"

	"github.com/mna/ferrox/lang/ast"
	"github.com/mna/ferrox/lang/parser"
	"github.com/mna/ferrox/lang/token"
	"github.com/stretchr/testify/require"
)

func TestParseChunkFn(t *testing.T) {
	src := `
fn add(a: u64, b: u64) -> u64 {
	return a + b;
}
`
	ch, errs := parser.ParseChunk("test", []byte(src))
	require.NoError(t, errs.Err())
	require.Len(t, ch.Items, 1)

	fn, ok := ch.Items[0].(*ast.FnItem)
	require.True(t, ok)
	require.Equal(t, "add", fn.Name)
	require.Len(t, fn.Params, 2)
	require.Equal(t, "a", fn.Params[0].Name)
	require.NotNil(t, fn.ReturnType)
	require.Len(t, fn.Body.Stmts, 1)

	ret, ok := fn.Body.Stmts[0].(*ast.ReturnStmt)
	require.True(t, ok)
	bin, ok := ret.Value.(*ast.BinaryExpr)
	require.True(t, ok)
	require.Equal(t, token.PLUS, bin.Op)
}

func TestParseStructAndImpl(t *testing.T) {
	src := `
struct Point {
	x: u64,
	y: u64,
}

impl Point {
	fn sum(p: Point) -> u64 {
		p.x + p.y
	}
}
`
	ch, errs := parser.ParseChunk("test", []byte(src))
	require.NoError(t, errs.Err())
	require.Len(t, ch.Items, 2)

	st, ok := ch.Items[0].(*ast.StructItem)
	require.True(t, ok)
	require.Len(t, st.Fields, 2)

	impl, ok := ch.Items[1].(*ast.ImplItem)
	require.True(t, ok)
	require.Equal(t, "Point", impl.TypeName)
	require.Len(t, impl.Methods, 1)
	require.NotNil(t, impl.Methods[0].Body.Tail)
}

func TestParseIfTailExpr(t *testing.T) {
	src := `
fn max(a: u64, b: u64) -> u64 {
	if a < b {
		b
	} else {
		a
	}
}
`
	ch, errs := parser.ParseChunk("test", []byte(src))
	require.NoError(t, errs.Err())
	fn := ch.Items[0].(*ast.FnItem)
	require.Empty(t, fn.Body.Stmts)
	ifx, ok := fn.Body.Tail.(*ast.IfExpr)
	require.True(t, ok)
	require.NotNil(t, ifx.Else)
}

func TestParseWhileLetAssign(t *testing.T) {
	src := `
fn countdown(n: u64) {
	let mut i = n;
	while i > 0 {
		i = i - 1;
	}
}
`
	ch, errs := parser.ParseChunk("test", []byte(src))
	require.NoError(t, errs.Err())
	fn := ch.Items[0].(*ast.FnItem)
	require.Len(t, fn.Body.Stmts, 2)
	let := fn.Body.Stmts[0].(*ast.LetStmt)
	require.True(t, let.Mut)
	wh := fn.Body.Stmts[1].(*ast.WhileStmt)
	require.Len(t, wh.Body.Stmts, 1)
	es := wh.Body.Stmts[0].(*ast.ExprStmt)
	assign, ok := es.X.(*ast.AssignExpr)
	require.True(t, ok)
	require.IsType(t, &ast.Ident{}, assign.Target)
}

func TestParseUseTree(t *testing.T) {
	src := `use a::b::{c, d as e, *};`
	ch, errs := parser.ParseChunk("test", []byte(src))
	require.NoError(t, errs.Err())
	use := ch.Items[0].(*ast.UseItem)
	p1, ok := use.Tree.(*ast.UsePath)
	require.True(t, ok)
	require.Equal(t, "a", p1.Segment)
	p2, ok := p1.Sub.(*ast.UsePath)
	require.True(t, ok)
	require.Equal(t, "b", p2.Segment)
	grp, ok := p2.Sub.(*ast.UseGroup)
	require.True(t, ok)
	require.Len(t, grp.Items, 3)
}

func TestParseExternBlockAndModItem(t *testing.T) {
	src := `
extern {
	fn host_write(ptr: u64) -> u64;
}

mod inner {
	fn helper() -> u64 {
		1u64
	}
}
`
	ch, errs := parser.ParseChunk("test", []byte(src))
	require.NoError(t, errs.Err())
	require.Len(t, ch.Items, 2)

	eb := ch.Items[0].(*ast.ExternBlock)
	require.Len(t, eb.Fns, 1)
	require.Equal(t, "host_write", eb.Fns[0].Name)

	mi := ch.Items[1].(*ast.ModItem)
	require.True(t, mi.Inline)
	require.Len(t, mi.Items, 1)
}

func TestParseExprAndStmtEntryPoints(t *testing.T) {
	x, errs := parser.ParseExpr("1u64 + 2u64 * 3u64")
	require.NoError(t, errs.Err())
	bin, ok := x.(*ast.BinaryExpr)
	require.True(t, ok)
	require.Equal(t, token.PLUS, bin.Op)

	st, errs := parser.ParseStmt("let x = 4u64;")
	require.NoError(t, errs.Err())
	require.IsType(t, &ast.LetStmt{}, st)
}

func TestParseGenericFn(t *testing.T) {
	src := `
fn identity<T>(x: T) -> T {
	x
}
`
	ch, errs := parser.ParseChunk("test", []byte(src))
	require.NoError(t, errs.Err())
	fn := ch.Items[0].(*ast.FnItem)
	require.Equal(t, []string{"T"}, fn.TypeParams)
}

func TestParseCastExpr(t *testing.T) {
	x, errs := parser.ParseExpr("1u32 as u64")
	require.NoError(t, errs.Err())
	cast, ok := x.(*ast.CastExpr)
	require.True(t, ok)
	require.IsType(t, &ast.IntLit{}, cast.X)
}
