package engine_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/mna/ferrox/lang/engine"
	"github.com/mna/ferrox/lang/types"
	"github.com/stretchr/testify/require"
)

// loadSource writes src to a temp file and prepares it into a fresh
// engine's crate root, mirroring what Engine.LoadFile does for a real
// project layout but without needing a fixture directory per test.
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

func TestProcessFnSimpleArith(t *testing.T) {
	e := loadSource(t, `
fn main() -> u64 {
	2 + 3
}
`)
	id := e.ProcessFn("main", e.Scopes.Root())
	fn := e.Defs.Get(id).Fun
	require.Equal(t, types.U64, fn.ReturnType)
	require.NotEmpty(t, fn.Bytecode)
}

// TestBinaryExprHintFlowsToLHS locks in spec.md 4.F's contract: a binary
// expression lowers its left operand with the caller-supplied hint, then
// lowers its right operand with the hint the left operand resolved to.
// Both literals here are width-less, so without that hint threading
// neither side would pick up u32 and the tail expression would stay
// UnknownInt instead of narrowing to the return type's concrete kind.
func TestBinaryExprHintFlowsToLHS(t *testing.T) {
	e := loadSource(t, `
fn main() -> u32 {
	2 + 3
}
`)
	id := e.ProcessFn("main", e.Scopes.Root())
	fn := e.Defs.Get(id).Fun
	require.Equal(t, types.U32, fn.ReturnType)

	var pushes []engine.Kind
	for _, ins := range fn.Bytecode {
		if ins.Op == engine.PushU32 {
			pushes = append(pushes, engine.U32)
		}
	}
	require.Len(t, pushes, 2, "both literals should lower as u32 pushes once the hint reaches the lhs")
}

func TestProcessFnIdempotent(t *testing.T) {
	e := loadSource(t, `
fn main() -> u64 {
	4u64
}
`)
	id1 := e.ProcessFn("main", e.Scopes.Root())
	bc1 := append(engine.Bytecode(nil), e.Defs.Get(id1).Fun.Bytecode...)
	id2 := e.ProcessFn("main", e.Scopes.Root())
	require.Equal(t, id1, id2)
	require.Equal(t, bc1, e.Defs.Get(id2).Fun.Bytecode)
}

func TestStructFieldsSortedByName(t *testing.T) {
	e := loadSource(t, `
struct Point {
	y: u64,
	x: u64,
}

fn main() -> u64 {
	let p = Point(1u64, 2u64);
	p.x
}
`)
	id := e.ProcessFn("main", e.Scopes.Root())
	_ = id

	structID, _, ok := e.GetDefn("Point", e.Scopes.Root())
	require.True(t, ok)
	def := e.Defs.Get(structID)
	require.Equal(t, engine.DefStruct, def.DefKind)
	require.Len(t, def.Struct, 2)
	require.Equal(t, "x", def.Struct[0].Name)
	require.Equal(t, "y", def.Struct[1].Name)
}

func TestCrossModuleUse(t *testing.T) {
	e := loadSource(t, `
mod m {
	pub fn f() -> u64 {
		7u64
	}
}

use m::f;

fn main() -> u64 {
	f()
}
`)
	id := e.ProcessFn("main", e.Scopes.Root())
	fn := e.Defs.Get(id).Fun
	require.Equal(t, types.U64, fn.ReturnType)
}

func TestGenericInstantiationCachedOnce(t *testing.T) {
	e := loadSource(t, `
fn id<T>(x: T) -> T {
	x
}

fn main() {
	debug(id(3u32));
	debug(id(4u32));
}
`)
	e.ProcessFn("main", e.Scopes.Root())

	count := 0
	for i := 0; i < e.Defs.Len(); i++ {
		if e.Defs.Get(engine.DefinitionID(i)).DefKind == engine.DefInstantiatedFun {
			count++
		}
	}
	require.Equal(t, 1, count)
}

func TestUseBeforeInitIsFatal(t *testing.T) {
	e := loadSource(t, `
fn main() {
	let x: u64;
	debug(x);
}
`)
	require.Panics(t, func() {
		e.ProcessFn("main", e.Scopes.Root())
	})
}

func TestOperatorMismatchIsFatal(t *testing.T) {
	e := loadSource(t, `
fn main() {
	debug(true + 1);
}
`)
	var msg any
	func() {
		defer func() { msg = recover() }()
		e.ProcessFn("main", e.Scopes.Root())
	}()
	require.NotNil(t, msg)
	require.Contains(t, fmt.Sprint(msg), "Can't add values of")
}

func TestWhileLoopLowersBackpatchedOffsets(t *testing.T) {
	e := loadSource(t, `
fn main() {
	let mut x = 0;
	while x < 10 {
		x = x + 1;
	}
	debug(x);
}
`)
	id := e.ProcessFn("main", e.Scopes.Root())
	fn := e.Defs.Get(id).Fun

	var beginIdx, condIdx, endIdx int = -1, -1, -1
	for i, ins := range fn.Bytecode {
		switch ins.Op {
		case engine.BeginWhile:
			beginIdx = i
		case engine.WhileCond:
			condIdx = i
		case engine.EndWhile:
			endIdx = i
		}
	}
	require.NotEqual(t, -1, beginIdx)
	require.Equal(t, beginIdx, int(fn.Bytecode[endIdx].Int))
	require.Equal(t, endIdx+1, fn.Bytecode[condIdx].Offset)
}

// TestIfElseBackpatchesResultKind locks in spec.md 4.F/4.H's contract that
// If/Else/EndIf carry the branch result type, not the caller-supplied
// hint: an untyped if/else used as a value must resolve its opcodes to
// the type the branches agree on once both are lowered. Both branches are
// width-less literals here, so that type is UnknownInt.
func TestIfElseBackpatchesResultKind(t *testing.T) {
	e := loadSource(t, `
fn main() {
	let x = if true { 3 } else { 4 };
	debug(x);
}
`)
	id := e.ProcessFn("main", e.Scopes.Root())
	fn := e.Defs.Get(id).Fun

	var saw bool
	for _, ins := range fn.Bytecode {
		switch ins.Op {
		case engine.If, engine.Else, engine.EndIf:
			saw = true
			require.NotEqual(t, engine.Unknown, ins.Kind)
			require.Equal(t, types.UnknownInt, ins.Kind)
		}
	}
	require.True(t, saw, "expected an If/Else/EndIf triple in the lowered bytecode")
}
