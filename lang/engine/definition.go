package engine

import (
	"github.com/mna/ferrox/lang/ast"
	"github.com/mna/ferrox/lang/types"
)

// Kind is the engine's name for a type id: it is numerically identical to
// a DefinitionID (every type, builtin or user-defined, is itself a
// definition) but kept as a distinct alias so lattice operations read
// naturally against lang/types.
type Kind = types.Kind

// DefinitionID is a stable, monotonically increasing id naming any
// definition: a function, struct, module, builtin type, type variable, or
// instantiated function. Slots never move and ids are never recycled.
type DefinitionID int

// DefKind tags which variant a Definition currently holds.
type DefKind uint8

const ( //nolint:revive
	DefLazyFn DefKind = iota
	DefLazyMod
	DefLazyStruct
	DefLazyImpl
	DefFun
	DefStruct
	DefMod
	DefInstantiatedFun
	DefBuiltin
	DefTypeVariable
)

// Field is a single resolved struct field: a name and its type id.
type Field struct {
	Name string
	Type Kind
}

// Param is a single resolved function parameter.
type Param struct {
	Name  string
	VarID int
	Type  Kind
}

// Fun is a fully lowered function.
type Fun struct {
	TypeParams []string
	Params     []Param
	ReturnType Kind
	Vars       []VarDecl
	Bytecode   Bytecode
	// ExternName, if non-empty, marks this as a host-linked foreign
	// function with no body.
	ExternName string
}

// Substitution pairs a type-variable definition id with the concrete type
// id it was instantiated with.
type Substitution struct {
	TypeVar DefinitionID
	Concrete Kind
}

// InstantiatedFun records a generic specialization: the generic template
// it was created from, and the substitution that produced it.
type InstantiatedFun struct {
	Target       DefinitionID
	Substitution []Substitution
}

// Definition is the tagged variant every table slot holds. Exactly one of
// the typed fields is meaningful, selected by DefKind.
type Definition struct {
	DefKind DefKind

	// Lazy variants: unresolved AST plus the scope it was declared in.
	LazyFnItem     *ast.FnItem
	LazyModItem    *ast.ModItem
	LazyStructItem *ast.StructItem
	LazyImplItem   *ast.ImplItem
	HomeScope      ScopeID

	// Not set by the engine: a file-backed module (`mod foo;`) is loaded
	// when its item is prepared and recorded directly as a DefMod.
	LazyModFile string

	// Resolved variants.
	Fun         *Fun
	Struct      []Field
	ModScope    ScopeID
	Instantiated InstantiatedFun

	// Builtin/TypeVariable carry no payload beyond their own id acting as
	// their Kind; Name is kept for diagnostics.
	Name string
}

// DefTable is the append-only arena of definitions, indexed by
// DefinitionID. Allocation returns the length-before-push; replacement of
// a Lazy variant with its resolved form is an in-place overwrite. The
// first NumBuiltins entries are pre-populated with DefBuiltin to reserve
// the primitive type ids.
type DefTable struct {
	defs []Definition
}

// NewDefTable constructs a table with the builtin primitive types
// pre-registered at their reserved ids.
func NewDefTable() *DefTable {
	t := &DefTable{}
	for k := Kind(0); k < types.NumBuiltins; k++ {
		t.defs = append(t.defs, Definition{DefKind: DefBuiltin, Name: types.PrintableName(k)})
	}
	return t
}

// Alloc appends a new definition and returns its freshly assigned id.
func (t *DefTable) Alloc(d Definition) DefinitionID {
	id := DefinitionID(len(t.defs))
	t.defs = append(t.defs, d)
	return id
}

// Get returns the definition at id. The caller must not retain the
// pointer across any further Alloc or Replace call: growing the backing
// slice invalidates it.
func (t *DefTable) Get(id DefinitionID) *Definition { return &t.defs[id] }

// Replace overwrites the definition at id in place, used to promote a
// Lazy variant to its resolved form.
func (t *DefTable) Replace(id DefinitionID, d Definition) { t.defs[id] = d }

// Len returns the number of allocated definitions, including builtins.
func (t *DefTable) Len() int { return len(t.defs) }
