// Package machine is the interpreter backend: it executes the linear
// bytecode produced by lang/engine directly, without going through the C
// emitter, for REPL and test usage. Unlike the teacher's tree-walking
// Starlark machine this package replaces, there are no closures, no
// mutable collections, no coroutines and no dynamic dispatch to support:
// a Thread just steps a flat []engine.Instruction against an operand
// stack and a fixed local-variable slice.
package machine

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mna/ferrox/lang/engine"
	"github.com/mna/ferrox/lang/types"
)

// Thread is the interpreter's unit of execution: one call stack, rooted
// at a single entry function, running against one engine instance. A
// Thread is not safe for concurrent use; the engine it runs against is
// itself strictly single-threaded (see spec.md §5).
type Thread struct {
	// Stdout receives DebugPrint output. Defaults to os.Stdout.
	Stdout io.Writer

	// MaxSteps bounds the number of instructions a single Run may execute
	// before it is aborted with an error, guarding against runaway loops in
	// tests. A value <= 0 means no limit.
	MaxSteps int

	eng   *engine.Engine
	steps int
}

// NewThread returns a Thread bound to eng, writing DebugPrint output to
// os.Stdout by default.
func NewThread(eng *engine.Engine) *Thread {
	return &Thread{eng: eng, Stdout: os.Stdout}
}

// Run executes fnID (which must already be fully lowered, i.e. a DefFun
// obtained through engine.ProcessFn) with the given argument values and
// returns its result, or a nil types.Value for a void function.
//
// Runtime failures (division by zero, an extern call with no
// interpretable body, a step-limit violation) are recovered here and
// turned into an error, matching spec.md §7's "terminal failure of the
// current processing call" propagation policy, the same way the
// lowering engine's own panics are meant to be recovered by its caller.
func (th *Thread) Run(ctx context.Context, fnID engine.DefinitionID, args []types.Value) (result types.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	th.steps = 0
	def := th.eng.Defs.Get(fnID)
	if def.DefKind != engine.DefFun {
		return nil, fmt.Errorf("machine: definition %d is not a processed function", fnID)
	}
	if def.Fun.ExternName != "" {
		return nil, fmt.Errorf("machine: extern function %q has no interpretable body", def.Fun.ExternName)
	}
	return th.call(ctx, def.Fun, nil, args), nil
}

// call pushes a new frame for fn and steps its bytecode to completion.
// subs is the substitution list active for this call when fn is a
// generic template's bytecode being executed on behalf of an
// InstantiatedFun (nil for an ordinary call).
func (th *Thread) call(ctx context.Context, fn *engine.Fun, subs []engine.Substitution, args []types.Value) types.Value {
	if err := ctx.Err(); err != nil {
		panic(err)
	}

	fr := newFrame(fn)
	for i, v := range args {
		if i < len(fr.locals) {
			fr.locals[i] = v
			fr.usable[i] = true
		}
	}
	return th.exec(ctx, subs, fr)
}
