package machine_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mna/ferrox/lang/engine"
	"github.com/mna/ferrox/lang/machine"
	"github.com/mna/ferrox/lang/types"
	"github.com/stretchr/testify/require"
)

// loadSource writes src to a temp file and loads it at a fresh engine's
// crate root, mirroring what a real project layout gets from Engine.LoadFile.
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

// run processes and interprets main(), returning what it wrote to stdout.
func run(t *testing.T, src string) string {
	t.Helper()
	e := loadSource(t, src)
	id := e.ProcessFn("main", e.Scopes.Root())

	var out bytes.Buffer
	th := machine.NewThread(e)
	th.Stdout = &out
	th.MaxSteps = 10000
	_, err := th.Run(context.Background(), id, nil)
	require.NoError(t, err)
	return out.String()
}

func TestDebugPrintsTypedIntegerLiteral(t *testing.T) {
	out := run(t, `
fn main() {
	debug(4u64);
}
`)
	require.Equal(t, "DEBUG: U64(4)\n", out)
}

func TestDebugDefaultsUnknownIntToU64(t *testing.T) {
	out := run(t, `
fn main() {
	debug(2 + 3);
}
`)
	require.Equal(t, "DEBUG: U64(5)\n", out)
}

func TestDebugNarrowsToConcreteSiblingWidth(t *testing.T) {
	out := run(t, `
fn main() {
	debug(3 + 5u32);
}
`)
	require.Equal(t, "DEBUG: U32(8)\n", out)
}

func TestIfElseBranchesExecuteTheRightSide(t *testing.T) {
	out := run(t, `
fn main() {
	let x = 1u64;
	let y = if x < 2u64 { 10u64 } else { 20u64 };
	debug(y);
}
`)
	require.Equal(t, "DEBUG: U64(10)\n", out)

	out = run(t, `
fn main() {
	let x = 5u64;
	let y = if x < 2u64 { 10u64 } else { 20u64 };
	debug(y);
}
`)
	require.Equal(t, "DEBUG: U64(20)\n", out)
}

func TestWhileLoopAccumulates(t *testing.T) {
	out := run(t, `
fn main() {
	let mut x = 0u64;
	while x < 5u64 {
		x = x + 1u64;
	}
	debug(x);
}
`)
	require.Equal(t, "DEBUG: U64(5)\n", out)
}

func TestStructConstructionAndFieldAccess(t *testing.T) {
	out := run(t, `
struct Point {
	y: u64,
	x: u64,
}

fn main() {
	let p = Point(1u64, 2u64);
	debug(p.x);
	debug(p.y);
}
`)
	require.Equal(t, "DEBUG: U64(1)\nDEBUG: U64(2)\n", out)
}

func TestGenericInstantiationRunsWithConcreteWidth(t *testing.T) {
	out := run(t, `
fn id<T>(x: T) -> T {
	x
}

fn main() {
	debug(id(3u32));
	debug(id(4u32));
}
`)
	require.Equal(t, "DEBUG: U32(3)\nDEBUG: U32(4)\n", out)
}

func TestCastTruncatesToTargetWidth(t *testing.T) {
	out := run(t, `
fn main() {
	let x = 4294967596u64;
	debug(x as u32);
	debug(x as i32);
}
`)
	require.Equal(t, "DEBUG: U32(300)\nDEBUG: I32(300)\n", out)
}

func TestFieldAssignmentMutatesStructInPlace(t *testing.T) {
	out := run(t, `
struct Point {
	x: u64,
	y: u64,
}

fn main() {
	let mut p = Point(1u64, 2u64);
	p.x = 9u64;
	debug(p.x);
}
`)
	require.Equal(t, "DEBUG: U64(9)\n", out)
}

func TestDivisionByZeroPanicsAtRuntime(t *testing.T) {
	e := loadSource(t, `
fn main() {
	let x = 0u64;
	debug(1u64 / x);
}
`)
	id := e.ProcessFn("main", e.Scopes.Root())

	th := machine.NewThread(e)
	th.Stdout = &bytes.Buffer{}
	_, err := th.Run(context.Background(), id, nil)
	require.Error(t, err)
}

func TestRunRejectsExternFunction(t *testing.T) {
	e := loadSource(t, `
extern {
	fn host_write(ptr: u64) -> u64;
}
`)
	id, _, ok := e.GetDefn("host_write", e.Scopes.Root())
	require.True(t, ok)
	require.Equal(t, engine.DefFun, e.Defs.Get(id).DefKind)

	th := machine.NewThread(e)
	_, err := th.Run(context.Background(), id, []types.Value{types.U64Value(0)})
	require.Error(t, err)
}
