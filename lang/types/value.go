package types

import (
	"fmt"

	"github.com/dolthub/swiss"
)

// Value is a runtime value produced by the bytecode interpreter. Unlike the
// teacher's tree-walking Starlark machine, this language has no mutable
// collections or closures to freeze: every Value other than StructValue is
// an immutable scalar (a StructValue's fields are updated in place by field
// assignment), so the interface only needs enough surface for
// debug-printing and for the interpreter's stack to carry a typed payload.
type Value interface {
	// String renders the bare value (e.g. "4", "true").
	String() string
	// Debug renders the value the way the interpreter backend's debug-print
	// would (e.g. "U64(4)", "Bool(true)").
	Debug() string
	// Kind returns the value's dynamic type.
	Kind() Kind
}

// UnknownIntValue is an integer literal whose width was never pinned down
// by a suffix or a concrete hint (e.g. the `2` in a bare `debug(2 + 3)`).
// The interpreter backend defaults its debug form to u64 (the C backend
// instead declares such values as int and prints them with %d), but keeps
// it distinguishable at runtime from a genuine U64Value so that combining
// it with a narrower concrete operand (`debug(3 + 5u32)`) still narrows
// to the concrete type instead of silently widening to u64.
type UnknownIntValue uint64

func (v UnknownIntValue) String() string { return fmt.Sprintf("%d", uint64(v)) }
func (v UnknownIntValue) Debug() string  { return fmt.Sprintf("U64(%d)", uint64(v)) }
func (v UnknownIntValue) Kind() Kind     { return UnknownInt }

// U64Value is an unsigned 64-bit integer value.
type U64Value uint64

func (v U64Value) String() string { return fmt.Sprintf("%d", uint64(v)) }
func (v U64Value) Debug() string  { return fmt.Sprintf("U64(%d)", uint64(v)) }
func (v U64Value) Kind() Kind     { return U64 }

// U32Value is an unsigned 32-bit integer value.
type U32Value uint32

func (v U32Value) String() string { return fmt.Sprintf("%d", uint32(v)) }
func (v U32Value) Debug() string  { return fmt.Sprintf("U32(%d)", uint32(v)) }
func (v U32Value) Kind() Kind     { return U32 }

// I64Value is a signed 64-bit integer value.
type I64Value int64

func (v I64Value) String() string { return fmt.Sprintf("%d", int64(v)) }
func (v I64Value) Debug() string  { return fmt.Sprintf("I64(%d)", int64(v)) }
func (v I64Value) Kind() Kind     { return I64 }

// I32Value is a signed 32-bit integer value.
type I32Value int32

func (v I32Value) String() string { return fmt.Sprintf("%d", int32(v)) }
func (v I32Value) Debug() string  { return fmt.Sprintf("I32(%d)", int32(v)) }
func (v I32Value) Kind() Kind     { return I32 }

// BoolValue is a boolean value.
type BoolValue bool

func (v BoolValue) String() string { return fmt.Sprintf("%t", bool(v)) }
func (v BoolValue) Debug() string  { return fmt.Sprintf("Bool(%t)", bool(v)) }
func (v BoolValue) Kind() Kind     { return Bool }

// VoidPtrValue is the only raw-pointer value the emitter understands: a
// null pointer. It exists so PushRawPtr has a runtime counterpart in the
// interpreter backend.
type VoidPtrValue struct{}

func (VoidPtrValue) String() string { return "(nil)" }
func (VoidPtrValue) Debug() string  { return "VoidPtr(nil)" }
func (VoidPtrValue) Kind() Kind     { return VoidPtr }

// StructValue is an instance of a user-defined struct. Dot and LValueDot
// carry the field name rather than an index, so fields are kept in a
// dense open-addressing map (the same swiss.Map the engine's scope graph
// uses for its name table) for direct name-keyed lookup at run time
// instead of a linear scan of a fields slice.
type StructValue struct {
	StructKind Kind
	Fields     *swiss.Map[string, Value]
}

// NewStructValue allocates a struct instance of the given kind with an
// empty field table sized for fieldCount entries.
func NewStructValue(kind Kind, fieldCount int) *StructValue {
	return &StructValue{StructKind: kind, Fields: swiss.NewMap[string, Value](uint32(fieldCount))}
}

func (v *StructValue) String() string { return v.Debug() }
func (v *StructValue) Debug() string {
	return fmt.Sprintf("{custom type: %d}", v.StructKind)
}
func (v *StructValue) Kind() Kind { return v.StructKind }
