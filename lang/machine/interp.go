package machine

import (
	"context"
	"fmt"

	"github.com/mna/ferrox/lang/engine"
	"github.com/mna/ferrox/lang/types"
)

// exec steps fr's bytecode to its terminating Return instruction and
// returns the value left on the stack by ReturnLastStackValue, or nil
// for ReturnVoid. subs substitutes type-variable kinds carried by an
// instantiated generic's template instructions (As operands);
// it is nil for an ordinary, non-generic call.
func (th *Thread) exec(ctx context.Context, subs []engine.Substitution, fr *frame) types.Value {
	code := fr.fn.Bytecode
	for {
		th.steps++
		if th.MaxSteps > 0 && th.steps > th.MaxSteps {
			panic("machine: step limit exceeded")
		}

		ins := code[fr.pc]
		switch ins.Op {
		case engine.PushU64:
			fr.push(types.U64Value(ins.Int))
		case engine.PushU32:
			fr.push(types.U32Value(uint32(ins.Int)))
		case engine.PushI64:
			fr.push(types.I64Value(int64(ins.Int)))
		case engine.PushI32:
			fr.push(types.I32Value(int32(ins.Int)))
		case engine.PushUnknownInt:
			fr.push(types.UnknownIntValue(ins.Int))
		case engine.PushBool:
			fr.push(types.BoolValue(ins.Bool))
		case engine.PushRawPtr:
			fr.push(types.VoidPtrValue{})

		case engine.Add, engine.Sub, engine.Mul, engine.Div:
			r, l := fr.pop(), fr.pop()
			fr.push(arith(ins.Op, l, r))
		case engine.Neg:
			fr.push(negate(fr.pop()))
		case engine.Lt:
			r, l := fr.pop(), fr.pop()
			fr.push(less(l, r))
		case engine.As:
			target := resolveKind(ins.Kind, subs)
			fr.push(castTo(target, fr.pop()))

		case engine.Dot:
			sv := fr.pop().(*types.StructValue)
			v, ok := sv.Fields.Get(ins.Field)
			if !ok {
				panic(fmt.Sprintf("machine: struct has no field %q", ins.Field))
			}
			fr.push(v)

		case engine.LValueVar:
			fr.pushPlace(fr.varPlace(ins.VarID))
		case engine.LValueDot:
			base := fr.popPlace()
			fr.pushPlace(fieldPlace(base, ins.Field))
		case engine.Var:
			if !fr.usable[ins.VarID] {
				panic(fmt.Sprintf("machine: variable %d used before being given a value", ins.VarID))
			}
			fr.push(fr.locals[ins.VarID])
		case engine.VarDecl:
			fr.locals[ins.VarID] = fr.pop()
			fr.usable[ins.VarID] = true
		case engine.VarDeclUninit:
			fr.usable[ins.VarID] = false
		case engine.Assign:
			v := fr.pop()
			fr.popPlace().set(v)

		case engine.Call:
			fr.push(th.execCall(ctx, ins.DefID, subs, fr))

		case engine.If:
			cond := fr.pop().(types.BoolValue)
			if !bool(cond) {
				fr.pc = ins.Offset - 1
			}
		case engine.Else:
			fr.pc = ins.Offset - 1
		case engine.EndIf:
			// no-op marker; both branches fall through here.
		case engine.BeginWhile:
			// no-op marker; EndWhile jumps back here.
		case engine.WhileCond:
			cond := fr.pop().(types.BoolValue)
			if !bool(cond) {
				fr.pc = ins.Offset - 1
			}
		case engine.EndWhile:
			fr.pc = int(ins.Int) - 1

		case engine.ReturnVoid:
			return nil
		case engine.ReturnLastStackValue:
			return fr.pop()

		case engine.DebugPrint:
			v := fr.pop()
			fmt.Fprintf(th.Stdout, "DEBUG: %s\n", v.Debug())

		default:
			panic(fmt.Sprintf("machine: unhandled opcode %s", ins.Op))
		}
		fr.pc++
	}
}

// resolveKind substitutes k for its concrete counterpart if subs pairs it
// with one (used when stepping a generic template's own As operands),
// otherwise returns k unchanged.
func resolveKind(k engine.Kind, subs []engine.Substitution) engine.Kind {
	for _, s := range subs {
		if engine.Kind(s.TypeVar) == k {
			return s.Concrete
		}
	}
	return k
}

// execCall dispatches a Call instruction's target: a struct constructor,
// an ordinary function, or a cached generic instantiation.
func (th *Thread) execCall(ctx context.Context, id engine.DefinitionID, subs []engine.Substitution, fr *frame) types.Value {
	def := th.eng.Defs.Get(id)
	switch def.DefKind {
	case engine.DefStruct:
		return th.callStruct(id, def.Struct, fr)
	case engine.DefFun:
		return th.callFun(ctx, def.Fun, subs, fr)
	case engine.DefInstantiatedFun:
		target := th.eng.Defs.Get(def.Instantiated.Target)
		return th.callFun(ctx, target.Fun, def.Instantiated.Substitution, fr)
	default:
		panic(fmt.Sprintf("machine: definition %d is not callable", id))
	}
}

// popArgs pops n values pushed left-to-right (so the last argument is on
// top, per spec.md §4.H's Call contract) and returns them restored to
// left-to-right order.
func popArgs(fr *frame, n int) []types.Value {
	args := make([]types.Value, n)
	for i := n - 1; i >= 0; i-- {
		args[i] = fr.pop()
	}
	return args
}

func (th *Thread) callStruct(id engine.DefinitionID, fields []engine.Field, fr *frame) types.Value {
	args := popArgs(fr, len(fields))
	sv := types.NewStructValue(engine.Kind(id), len(fields))
	for i, f := range fields {
		sv.Fields.Put(f.Name, args[i])
	}
	return sv
}

func (th *Thread) callFun(ctx context.Context, fn *engine.Fun, subs []engine.Substitution, fr *frame) types.Value {
	if fn.ExternName != "" {
		panic(fmt.Sprintf("machine: extern function %q has no interpretable body", fn.ExternName))
	}
	args := popArgs(fr, len(fn.Params))
	return th.call(ctx, fn, subs, args)
}
