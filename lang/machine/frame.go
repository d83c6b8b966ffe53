package machine

import (
	"github.com/mna/ferrox/lang/engine"
	"github.com/mna/ferrox/lang/types"
)

// place is an assignable storage location: the runtime counterpart of the
// LValueVar/LValueDot opcodes' "l-value handle". It is kept on its own
// stack, parallel to the ordinary value stack, exactly as spec.md §4.H
// describes.
type place struct {
	get func() types.Value
	set func(types.Value)
}

// frame is the per-call activation record: a fixed local-variable slice
// sized to the callee's Vars table (indexed exactly as VarId operands
// name it, per spec.md §3's invariant), plus the two parallel stacks the
// bytecode pushes and pops.
type frame struct {
	fn     *engine.Fun
	locals []types.Value
	usable []bool // false between VarDeclUninit and the first Assign
	pc     int

	stack  []types.Value
	lvalue []place
}

func newFrame(fn *engine.Fun) *frame {
	return &frame{
		fn:     fn,
		locals: make([]types.Value, len(fn.Vars)),
		usable: make([]bool, len(fn.Vars)),
	}
}

func (fr *frame) push(v types.Value)  { fr.stack = append(fr.stack, v) }
func (fr *frame) pop() types.Value {
	n := len(fr.stack) - 1
	v := fr.stack[n]
	fr.stack = fr.stack[:n]
	return v
}

func (fr *frame) pushPlace(p place) { fr.lvalue = append(fr.lvalue, p) }
func (fr *frame) popPlace() place {
	n := len(fr.lvalue) - 1
	p := fr.lvalue[n]
	fr.lvalue = fr.lvalue[:n]
	return p
}

func (fr *frame) varPlace(id int) place {
	return place{
		get: func() types.Value { return fr.locals[id] },
		set: func(v types.Value) { fr.locals[id] = v; fr.usable[id] = true },
	}
}

func fieldPlace(base place, name string) place {
	return place{
		get: func() types.Value {
			sv := base.get().(*types.StructValue)
			v, _ := sv.Fields.Get(name)
			return v
		},
		set: func(v types.Value) {
			sv := base.get().(*types.StructValue)
			sv.Fields.Put(name, v)
		},
	}
}
