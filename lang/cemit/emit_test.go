package cemit_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/mna/ferrox/lang/cemit"
	"github.com/mna/ferrox/lang/engine"
	"github.com/stretchr/testify/require"
)

func loadSource(t *testing.T, src string) *engine.Engine {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "main.fx")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	e := engine.New()
	e.SetProjectRoot(dir)
	require.NoError(t, e.LoadFile("main.fx"))
	return e
}

func TestEmitSimpleFunctionBody(t *testing.T) {
	e := loadSource(t, `
fn main() {
	debug(4u64);
}
`)
	id := e.ProcessFn("main", e.Scopes.Root())
	out := cemit.EmitProgram(e, id)

	require.Contains(t, out, "#include <stdio.h>")
	require.Contains(t, out, "void main() {")
	require.Contains(t, out, `printf("DEBUG: %llu\n", (4));`)
}

func TestEmitStructGetsInitConstructor(t *testing.T) {
	e := loadSource(t, `
struct Point {
	y: u64,
	x: u64,
}

fn main() {
	let p = Point(1u64, 2u64);
	debug(p.x);
}
`)
	id := e.ProcessFn("main", e.Scopes.Root())
	out := cemit.EmitProgram(e, id)

	structID, _, ok := e.GetDefn("Point", e.Scopes.Root())
	require.True(t, ok)

	require.Contains(t, out, fmt.Sprintf("struct struct_%d {", int(structID)))
	require.Contains(t, out, "unsigned long long x;")
	require.Contains(t, out, "unsigned long long y;")
	require.Contains(t, out, fmt.Sprintf("init_struct_%d(", int(structID)))
	require.Contains(t, out, ".x")
}

func TestEmitZeroFieldStructGetsDummyField(t *testing.T) {
	e := loadSource(t, `
struct Unit {
}

fn main() {
	let u = Unit;
	debug(4u64);
}
`)
	id := e.ProcessFn("main", e.Scopes.Root())
	out := cemit.EmitProgram(e, id)
	require.Contains(t, out, "{int dummy;}")
}

func TestEmitIfElseUsesTemporary(t *testing.T) {
	e := loadSource(t, `
fn main() {
	let x = 1u64;
	let y = if x < 2u64 { 10u64 } else { 20u64 };
	debug(y);
}
`)
	id := e.ProcessFn("main", e.Scopes.Root())
	out := cemit.EmitProgram(e, id)

	require.Contains(t, out, "unsigned long long t0;")
	require.Contains(t, out, "if (")
	require.Contains(t, out, "} else {")
	require.Contains(t, out, "t0 =")
}

func TestEmitWhileLoopUsesBreakOnFalseCondition(t *testing.T) {
	e := loadSource(t, `
fn main() {
	let mut x = 0u64;
	while x < 5u64 {
		x = x + 1u64;
	}
	debug(x);
}
`)
	id := e.ProcessFn("main", e.Scopes.Root())
	out := cemit.EmitProgram(e, id)

	require.Contains(t, out, "while (1) {")
	require.Contains(t, out, "if (!(")
	require.Contains(t, out, "break;")
}

func TestEmitGenericInstantiationGetsOwnFunction(t *testing.T) {
	e := loadSource(t, `
fn id<T>(x: T) -> T {
	x
}

fn main() {
	debug(id(3u32));
}
`)
	entryID := e.ProcessFn("main", e.Scopes.Root())
	out := cemit.EmitProgram(e, entryID)

	require.Contains(t, out, "unsigned fun_")
}

func TestEmitExternFunctionHasNoBodyButHasDecl(t *testing.T) {
	e := loadSource(t, `
extern {
	fn host_write(ptr: u64) -> u64;
}

fn main() {
	debug(host_write(0u64));
}
`)
	id := e.ProcessFn("main", e.Scopes.Root())
	out := cemit.EmitProgram(e, id)

	require.Contains(t, out, "unsigned long long host_write(unsigned long long ptr);")
	require.NotContains(t, out, "host_write(unsigned long long ptr) {")
}
