package cemit

import (
	"fmt"

	"github.com/mna/ferrox/lang/engine"
	"github.com/mna/ferrox/lang/types"
)

// EmitProgram renders every processed function and struct definition in
// eng into one C translation unit, with entryID's function emitted as
// `main`. entryID must already be fully lowered (obtained through
// engine.ProcessFn), and so must everything it transitively calls:
// EmitProgram only walks the definition table as it stands, it does not
// itself force any lazy definition to resolve.
func EmitProgram(eng *engine.Engine, entryID engine.DefinitionID) string {
	c := &emitter{}
	c.raw("#include <stdio.h>\n#include <stdbool.h>\n\n")

	n := eng.Defs.Len()
	for id := 0; id < n; id++ {
		emitForwardDecl(c, eng, engine.DefinitionID(id), entryID)
	}
	for id := 0; id < n; id++ {
		emitDefinition(c, eng, engine.DefinitionID(id), entryID)
	}
	return c.out.String()
}

func emitForwardDecl(c *emitter, eng *engine.Engine, id, entryID engine.DefinitionID) {
	def := eng.Defs.Get(id)
	switch def.DefKind {
	case engine.DefFun:
		if id == entryID || len(def.Fun.TypeParams) > 0 {
			return
		}
		name := fmt.Sprintf("fun_%d", int(id))
		if def.Fun.ExternName != "" {
			name = def.Fun.ExternName
		}
		c.raw(fnSignature(eng, name, def.Fun.ReturnType, def.Fun.Params))
		c.raw(";\n")
	case engine.DefStruct:
		c.raw(fmt.Sprintf("struct struct_%d;\n", int(id)))
		c.raw(fmt.Sprintf("%s init_struct_%d();\n", cType(eng, types.Kind(id)), int(id)))
	case engine.DefInstantiatedFun:
		target := eng.Defs.Get(def.Instantiated.Target).Fun
		fn := substituteFun(target, def.Instantiated.Substitution)
		c.raw(fnSignature(eng, fmt.Sprintf("fun_%d", int(id)), fn.ReturnType, fn.Params))
		c.raw(";\n")
	}
}

func fnSignature(eng *engine.Engine, name string, retTy types.Kind, params []engine.Param) string {
	s := fmt.Sprintf("%s %s(", cType(eng, retTy), name)
	for i, p := range params {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%s %s", cType(eng, p.Type), p.Name)
	}
	return s + ")"
}

func emitDefinition(c *emitter, eng *engine.Engine, id, entryID engine.DefinitionID) {
	def := eng.Defs.Get(id)
	switch def.DefKind {
	case engine.DefFun:
		if def.Fun.ExternName != "" || len(def.Fun.TypeParams) > 0 {
			return
		}
		name := fmt.Sprintf("fun_%d", int(id))
		if id == entryID {
			name = "main"
		}
		emitFn(c, eng, name, def.Fun)
	case engine.DefStruct:
		emitStruct(c, eng, id, def.Struct)
	case engine.DefInstantiatedFun:
		target := eng.Defs.Get(def.Instantiated.Target).Fun
		fn := substituteFun(target, def.Instantiated.Substitution)
		emitFn(c, eng, fmt.Sprintf("fun_%d", int(id)), fn)
	}
}

// emitStruct emits a struct's layout and its init_struct_<id> constructor.
// A zero-field struct gets a dummy int field, since C has no notion of an
// empty struct.
func emitStruct(c *emitter, eng *engine.Engine, id engine.DefinitionID, fields []engine.Field) {
	if len(fields) == 0 {
		c.raw(fmt.Sprintf("struct struct_%d {int dummy;};\n", int(id)))
	} else {
		c.raw(fmt.Sprintf("struct struct_%d {", int(id)))
		for _, f := range fields {
			c.raw(fmt.Sprintf("%s %s;\n", cType(eng, f.Type), f.Name))
		}
		c.raw("};\n")
	}

	ty := cType(eng, types.Kind(id))
	c.raw(fmt.Sprintf("%s init_struct_%d(", ty, int(id)))
	for i, f := range fields {
		if i > 0 {
			c.raw(", ")
		}
		c.raw(fmt.Sprintf("%s %s", cType(eng, f.Type), f.Name))
	}
	c.raw(") {\n")
	c.raw(fmt.Sprintf("%s temp = {", ty))
	if len(fields) == 0 {
		c.raw("0")
	} else {
		for i, f := range fields {
			if i > 0 {
				c.raw(", ")
			}
			c.raw(f.Name)
		}
	}
	c.raw("};\nreturn temp;\n}\n")
}
