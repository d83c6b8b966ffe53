package engine

import "fmt"

// Opcode names a single bytecode instruction. The set is a linear
// stack-machine instruction set: no basic blocks, no CFG, just a flat
// []Instruction with forward/backward jump offsets backpatched once their
// target is known.
type Opcode uint8

const ( //nolint:revive
	PushU64 Opcode = iota
	PushU32
	PushI64
	PushI32
	PushUnknownInt
	PushBool
	PushRawPtr

	Add
	Sub
	Mul
	Div
	Neg
	Lt

	As
	Dot

	LValueVar
	LValueDot
	Var
	VarDecl
	VarDeclUninit
	Assign

	Call

	If
	Else
	EndIf
	BeginWhile
	WhileCond
	EndWhile

	ReturnVoid
	ReturnLastStackValue

	DebugPrint
)

var opcodeNames = [...]string{
	PushU64:               "push_u64",
	PushU32:               "push_u32",
	PushI64:               "push_i64",
	PushI32:               "push_i32",
	PushUnknownInt:        "push_unknown_int",
	PushBool:              "push_bool",
	PushRawPtr:            "push_raw_ptr",
	Add:                   "add",
	Sub:                   "sub",
	Mul:                   "mul",
	Div:                   "div",
	Neg:                   "neg",
	Lt:                    "lt",
	As:                    "as",
	Dot:                   "dot",
	LValueVar:             "lvalue_var",
	LValueDot:             "lvalue_dot",
	Var:                   "var",
	VarDecl:               "var_decl",
	VarDeclUninit:         "var_decl_uninit",
	Assign:                "assign",
	Call:                  "call",
	If:                    "if",
	Else:                  "else",
	EndIf:                 "end_if",
	BeginWhile:            "begin_while",
	WhileCond:             "while_cond",
	EndWhile:              "end_while",
	ReturnVoid:            "return_void",
	ReturnLastStackValue:  "return_last_stack_value",
	DebugPrint:            "debug_print",
}

func (op Opcode) String() string {
	if int(op) < len(opcodeNames) {
		return opcodeNames[op]
	}
	return fmt.Sprintf("opcode(%d)", op)
}

// Instruction is a single bytecode instruction together with whichever of
// its operand fields apply; unused fields are left at their zero value.
// A flat struct (rather than per-opcode types) keeps the bytecode vector a
// single contiguous slice, matching the "linear stack-based bytecode"
// shape the lowering engine is specified to produce.
type Instruction struct {
	Op Opcode

	// Int is the operand for PushU64/U32/I64/I32, PushUnknownInt (as a raw
	// bit pattern) and the backward offset of EndWhile.
	Int uint64
	// Bool is the operand for PushBool.
	Bool bool
	// VarID is the operand for LValueVar, Var, VarDecl, VarDeclUninit.
	VarID int
	// Field is the operand for Dot and LValueDot.
	Field string
	// Kind is the target type for As, the argument type for DebugPrint, and
	// the result type carried by If/Else/EndIf.
	Kind Kind
	// DefID is the operand for Call: the id of the callee (function,
	// instantiated function, or struct constructor).
	DefID DefinitionID
	// Offset is the (initially unresolved) forward jump target for If,
	// Else and WhileCond, backpatched once the matching instruction's
	// index is known.
	Offset int
}

// Bytecode is the linear instruction list produced for a single function.
type Bytecode []Instruction
