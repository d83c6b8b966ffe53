package engine

// VarDecl is a single resolved local variable: its declared name and type.
// The slice of these handed to a finalized Fun is indexed exactly as the
// bytecode's Var/VarDecl operands reference it: var ids are positions in
// this slice, not names.
type VarDecl struct {
	Name string
	Type Kind
	// Usable is false between a VarDeclUninit and the first Assign that
	// gives the variable a value; reading it before that is a fatal
	// use-before-init error.
	Usable bool
}

// VarStack is the per-function name table used while lowering a single
// function body. It holds a flat, append-only Vars table (the authoritative
// variable table eventually handed to the Fun record) plus a parallel
// index stack used for block-scoped shadowing: entering a block pushes a
// marker, and leaving it pops every binding declared since, so an outer
// declaration of the same name becomes visible again.
type VarStack struct {
	Vars   []VarDecl
	active []int // indices into Vars currently visible, innermost last
	marks  []int // saved lengths of active, one per open block
}

// NewVarStack returns an empty variable stack.
func NewVarStack() *VarStack { return &VarStack{} }

// Add appends a new declaration and pushes it onto the active stack,
// returning its freshly assigned var id.
func (vs *VarStack) Add(name string, typ Kind) int {
	id := len(vs.Vars)
	vs.Vars = append(vs.Vars, VarDecl{Name: name, Type: typ, Usable: true})
	vs.active = append(vs.active, id)
	return id
}

// AddUninit is like Add but marks the variable unusable until MarkUsable
// is called on it (used by `let x: T;` with no initializer).
func (vs *VarStack) AddUninit(name string, typ Kind) int {
	id := vs.Add(name, typ)
	vs.Vars[id].Usable = false
	return id
}

// MarkUsable flips an uninitialized variable to usable after its first
// assignment.
func (vs *VarStack) MarkUsable(id int) { vs.Vars[id].Usable = true }

// Find scans the active stack innermost-out, returning the most recently
// declared binding whose name matches.
func (vs *VarStack) Find(name string) (int, bool) {
	for i := len(vs.active) - 1; i >= 0; i-- {
		id := vs.active[i]
		if vs.Vars[id].Name == name {
			return id, true
		}
	}
	return 0, false
}

// PushBlock records the current size of the active stack so PopBlock can
// pop back to it.
func (vs *VarStack) PushBlock() { vs.marks = append(vs.marks, len(vs.active)) }

// PopBlock pops every binding declared since the matching PushBlock,
// restoring outer declarations' visibility.
func (vs *VarStack) PopBlock() {
	n := len(vs.marks)
	mark := vs.marks[n-1]
	vs.marks = vs.marks[:n-1]
	vs.active = vs.active[:mark]
}
