// Package cemit is the C backend: it translates a fully lowered
// lang/engine program into a single compilation unit of portable C, the
// way original_source/peach's compile.rs turns its own bytecode engine
// into a .c file before shelling out to a host compiler. Unlike
// lang/machine, cemit never executes anything itself — it only emits
// text — so it needs no notion of a call stack, just a running buffer and
// the same "delayed expression" stack compile.rs uses to stitch
// statement-level side effects (VarDecl, Assign, If/While control flow)
// around the otherwise purely expression-shaped bytecode.
package cemit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mna/ferrox/lang/engine"
	"github.com/mna/ferrox/lang/types"
)

// emitter accumulates C source text plus a stack of not-yet-flushed
// expression fragments, mirroring compile.rs's CFile.
type emitter struct {
	out  strings.Builder
	expr []string
}

func (c *emitter) raw(s string) { c.out.WriteString(s) }

// delay pushes an expression fragment that hasn't been turned into a
// statement yet (e.g. a literal or an arithmetic result waiting to be
// consumed by whatever instruction follows).
func (c *emitter) delay(expr string) { c.expr = append(c.expr, expr) }

func (c *emitter) pop() string {
	n := len(c.expr) - 1
	v := c.expr[n]
	c.expr = c.expr[:n]
	return v
}

// popN pops n fragments and returns them in the order they were
// originally delayed (left-to-right argument order).
func (c *emitter) popN(n int) []string {
	args := make([]string, n)
	for i := n - 1; i >= 0; i-- {
		args[i] = c.pop()
	}
	return args
}

// stmt flushes every still-delayed expression as its own statement (a
// bare expression statement has no observable effect in this language
// beyond what already landed in the bytecode, but compile.rs preserves
// the drain so nothing delayed silently falls on the floor), then
// appends stmt itself.
func (c *emitter) stmt(s string) {
	for _, e := range c.expr {
		c.out.WriteString(e)
		c.out.WriteString(";\n")
	}
	c.expr = c.expr[:0]
	c.out.WriteString(s)
}

// cType renders k as the C type the emitted code declares variables,
// parameters and return values with. Struct types are emitted by value,
// exactly as compile.rs's codegen_type does.
func cType(eng *engine.Engine, k engine.Kind) string {
	switch k {
	case types.U64:
		return "unsigned long long"
	case types.U32:
		return "unsigned"
	case types.I64:
		return "signed long long"
	case types.I32:
		return "signed"
	case types.UnknownInt:
		return "int"
	case types.VoidPtr:
		return "void*"
	case types.Void:
		return "void"
	case types.Bool:
		return "bool"
	default:
		def := eng.Defs.Get(engine.DefinitionID(k))
		if def.DefKind != engine.DefStruct {
			panic(fmt.Sprintf("cemit: type %s has no C representation", types.PrintableName(k)))
		}
		return fmt.Sprintf("struct struct_%d", int(k))
	}
}

// isScalarPrintable reports whether k is one of the concrete scalar
// kinds an if/else expression result can be stashed in a temporary C
// variable for, matching compile.rs's If/Else/EndIf match arms.
func isScalarPrintable(k engine.Kind) bool {
	switch k {
	case types.Bool, types.U32, types.U64, types.I32, types.I64, types.UnknownInt:
		return true
	default:
		return false
	}
}

// substituteFun returns a copy of fn with every type-variable Kind
// appearing in its params, locals, and As/DebugPrint operands replaced
// by its concrete counterpart from subs. Used to specialize a generic
// template's bytecode for one instantiation, since cemit (unlike
// lang/machine) needs concrete C types baked into the text up front
// rather than resolved at each step.
func substituteFun(fn *engine.Fun, subs []engine.Substitution) *engine.Fun {
	resolve := func(k engine.Kind) engine.Kind {
		for _, s := range subs {
			if engine.Kind(s.TypeVar) == k {
				return s.Concrete
			}
		}
		return k
	}

	out := &engine.Fun{
		ReturnType: resolve(fn.ReturnType),
		ExternName: fn.ExternName,
		Bytecode:   make(engine.Bytecode, len(fn.Bytecode)),
	}
	out.Params = make([]engine.Param, len(fn.Params))
	for i, p := range fn.Params {
		out.Params[i] = engine.Param{Name: p.Name, VarID: p.VarID, Type: resolve(p.Type)}
	}
	out.Vars = make([]engine.VarDecl, len(fn.Vars))
	for i, v := range fn.Vars {
		out.Vars[i] = engine.VarDecl{Name: v.Name, Type: resolve(v.Type), Usable: v.Usable}
	}
	copy(out.Bytecode, fn.Bytecode)
	for i, ins := range out.Bytecode {
		switch ins.Op {
		case engine.As, engine.DebugPrint, engine.If, engine.Else, engine.EndIf:
			out.Bytecode[i].Kind = resolve(ins.Kind)
		}
	}
	return out
}

// emitFn translates a single function's bytecode into a C function body
// named cName, appending it to c.out. It assumes c.expr is empty on
// entry and guarantees it is empty on exit.
func emitFn(c *emitter, eng *engine.Engine, cName string, fn *engine.Fun) {
	nextTemp := 0
	var tempStack []int

	c.raw(fmt.Sprintf("%s %s(", cType(eng, fn.ReturnType), cName))
	for i, p := range fn.Params {
		if i > 0 {
			c.raw(", ")
		}
		c.raw(fmt.Sprintf("%s %s", cType(eng, p.Type), p.Name))
	}
	c.raw(") {\n")
	for _, p := range fn.Params {
		c.raw(fmt.Sprintf("%s v%d = %s;\n", cType(eng, p.Type), p.VarID, p.Name))
	}

	for _, ins := range fn.Bytecode {
		switch ins.Op {
		case engine.PushU64:
			c.delay(strconv.FormatUint(ins.Int, 10))
		case engine.PushU32:
			c.delay(strconv.FormatUint(ins.Int, 10))
		case engine.PushI64:
			c.delay(strconv.FormatInt(int64(ins.Int), 10))
		case engine.PushI32:
			c.delay(strconv.FormatInt(int64(int32(ins.Int)), 10))
		case engine.PushUnknownInt:
			c.delay(strconv.FormatUint(ins.Int, 10))
		case engine.PushBool:
			c.delay(strconv.FormatBool(ins.Bool))
		case engine.PushRawPtr:
			c.delay("NULL")

		case engine.Add:
			r, l := c.pop(), c.pop()
			c.delay(fmt.Sprintf("(%s+%s)", l, r))
		case engine.Sub:
			r, l := c.pop(), c.pop()
			c.delay(fmt.Sprintf("(%s-%s)", l, r))
		case engine.Mul:
			r, l := c.pop(), c.pop()
			c.delay(fmt.Sprintf("(%s*%s)", l, r))
		case engine.Div:
			r, l := c.pop(), c.pop()
			c.delay(fmt.Sprintf("(%s/%s)", l, r))
		case engine.Lt:
			r, l := c.pop(), c.pop()
			c.delay(fmt.Sprintf("(%s < %s)", l, r))
		case engine.Neg:
			v := c.pop()
			c.delay(fmt.Sprintf("(-%s)", v))

		case engine.As:
			v := c.pop()
			c.delay(fmt.Sprintf("((%s)(%s))", cType(eng, ins.Kind), v))

		case engine.Dot, engine.LValueDot:
			v := c.pop()
			c.delay(fmt.Sprintf("%s.%s", v, ins.Field))

		case engine.Var, engine.LValueVar:
			c.delay(fmt.Sprintf("v%d", ins.VarID))

		case engine.VarDecl:
			rhs := c.pop()
			c.stmt(fmt.Sprintf("%s v%d = %s;\n", cType(eng, fn.Vars[ins.VarID].Type), ins.VarID, rhs))
		case engine.VarDeclUninit:
			c.stmt(fmt.Sprintf("%s v%d;\n", cType(eng, fn.Vars[ins.VarID].Type), ins.VarID))
		case engine.Assign:
			value := c.pop()
			place := c.pop()
			c.stmt(fmt.Sprintf("%s = %s;\n", place, value))

		case engine.Call:
			emitCall(c, eng, ins.DefID)

		case engine.If:
			cond := c.pop()
			if isScalarPrintable(ins.Kind) {
				c.stmt(fmt.Sprintf("%s t%d;\n", cType(eng, ins.Kind), nextTemp))
				tempStack = append(tempStack, nextTemp)
				nextTemp++
			}
			c.stmt(fmt.Sprintf("if (%s) {\n", cond))
		case engine.Else:
			if ins.Kind != types.Void && len(tempStack) > 0 {
				result := c.pop()
				c.stmt(fmt.Sprintf("t%d = %s;\n", tempStack[len(tempStack)-1], result))
			}
			c.stmt("} else {\n")
		case engine.EndIf:
			if ins.Kind != types.Void && len(tempStack) > 0 {
				result := c.pop()
				id := tempStack[len(tempStack)-1]
				tempStack = tempStack[:len(tempStack)-1]
				c.stmt(fmt.Sprintf("t%d = %s;\n}\n", id, result))
				c.delay(fmt.Sprintf("t%d", id))
			} else {
				c.stmt("}\n")
			}

		case engine.BeginWhile:
			c.stmt("while (1) {\n")
		case engine.WhileCond:
			cond := c.pop()
			c.stmt(fmt.Sprintf("if (!(%s)) break;\n", cond))
		case engine.EndWhile:
			c.stmt("}\n")

		case engine.ReturnVoid:
			c.stmt("return;\n")
		case engine.ReturnLastStackValue:
			v := c.pop()
			c.stmt(fmt.Sprintf("return %s;\n", v))

		case engine.DebugPrint:
			v := c.pop()
			c.stmt(debugPrintStmt(ins.Kind, v))

		default:
			panic(fmt.Sprintf("cemit: unhandled opcode %s", ins.Op))
		}
	}

	c.stmt("}\n")
}

// debugPrintStmt renders the printf call a DebugPrint of kind ty emits.
// A void or unknown operand can't actually reach here from a
// type-checked program (debug() always lowers a concrete value
// expression), but the fallback keeps emission total instead of
// panicking on a construct the resolver should already have rejected.
func debugPrintStmt(ty engine.Kind, val string) string {
	switch ty {
	case types.Void:
		return "printf(\"DEBUG: <void>\\n\");\n"
	case types.Unknown:
		return "printf(\"DEBUG: <unknown>\\n\");\n"
	case types.U64:
		return fmt.Sprintf("printf(\"DEBUG: %%llu\\n\", (%s));\n", val)
	case types.I64:
		return fmt.Sprintf("printf(\"DEBUG: %%lld\\n\", (%s));\n", val)
	case types.U32:
		return fmt.Sprintf("printf(\"DEBUG: %%u\\n\", (%s));\n", val)
	case types.Bool, types.I32, types.UnknownInt:
		return fmt.Sprintf("printf(\"DEBUG: %%d\\n\", (%s));\n", val)
	default:
		return fmt.Sprintf("printf(\"DEBUG: <custom type:%%u>\\n\", (%d));\n", int(ty))
	}
}

// emitCall pops the callee's arguments off c.expr and delays a call
// expression invoking it, dispatching on the callee definition's kind.
func emitCall(c *emitter, eng *engine.Engine, id engine.DefinitionID) {
	def := eng.Defs.Get(id)
	switch def.DefKind {
	case engine.DefFun:
		name := fmt.Sprintf("fun_%d", int(id))
		if def.Fun.ExternName != "" {
			name = def.Fun.ExternName
		}
		args := c.popN(len(def.Fun.Params))
		c.delay(fmt.Sprintf("%s(%s)", name, strings.Join(args, ", ")))
	case engine.DefStruct:
		args := c.popN(len(def.Struct))
		c.delay(fmt.Sprintf("init_struct_%d(%s)", int(id), strings.Join(args, ", ")))
	case engine.DefInstantiatedFun:
		args := c.popN(len(eng.Defs.Get(def.Instantiated.Target).Fun.Params))
		c.delay(fmt.Sprintf("fun_%d(%s)", int(id), strings.Join(args, ", ")))
	default:
		panic(fmt.Sprintf("cemit: definition %d is not callable", id))
	}
}
