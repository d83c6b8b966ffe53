package engine

import "github.com/dolthub/swiss"

// ScopeID names a scope in the scope graph. Scopes are never destroyed.
type ScopeID int

// noScope is the sentinel ScopeID used for "no parent" (the crate root,
// or an orphan module scope created for a file-backed module).
const noScope ScopeID = -1

// Scope maps names to definition ids within one lexical environment. A
// module boundary stops outward lookup: identifier resolution cannot see
// past it, though an explicit path can still name anything inside.
type Scope struct {
	Parent       ScopeID
	IsModBoundary bool
	definitions  *swiss.Map[string, DefinitionID]
}

// ScopeGraph is the append-only tree of scopes every definition and
// variable lookup walks.
type ScopeGraph struct {
	scopes []*Scope
}

// NewScopeGraph constructs a graph with a single root scope: the crate
// root, always a module boundary, with no parent.
func NewScopeGraph() *ScopeGraph {
	g := &ScopeGraph{}
	g.scopes = append(g.scopes, &Scope{
		Parent:        noScope,
		IsModBoundary: true,
		definitions:   swiss.NewMap[string, DefinitionID](8),
	})
	return g
}

// Root returns the id of the crate root scope.
func (g *ScopeGraph) Root() ScopeID { return 0 }

// NewScope appends a new scope parented to parent and returns its id.
func (g *ScopeGraph) NewScope(parent ScopeID, isMod bool) ScopeID {
	id := ScopeID(len(g.scopes))
	g.scopes = append(g.scopes, &Scope{
		Parent:        parent,
		IsModBoundary: isMod,
		definitions:   swiss.NewMap[string, DefinitionID](8),
	})
	return id
}

func (g *ScopeGraph) scope(id ScopeID) *Scope { return g.scopes[id] }

// Insert binds or rebinds name to id within scope.
func (g *ScopeGraph) Insert(scope ScopeID, name string, id DefinitionID) {
	g.scope(scope).definitions.Put(name, id)
}

// Get walks from starting upward looking for name: at each level it
// checks the local definitions map; if absent and the level is a module
// boundary, lookup stops there (module walls are opaque upward); otherwise
// it ascends to the parent. It returns the definition id and the scope
// that actually held the binding.
func (g *ScopeGraph) Get(name string, starting ScopeID) (DefinitionID, ScopeID, bool) {
	cur := starting
	for cur != noScope {
		s := g.scope(cur)
		if id, ok := s.definitions.Get(name); ok {
			return id, cur, true
		}
		if s.IsModBoundary {
			return 0, 0, false
		}
		cur = s.Parent
	}
	return 0, 0, false
}

// Names returns every name currently bound directly in scope, used by
// glob `use` expansion. The order is unspecified; callers that need
// determinism should sort it.
func (g *ScopeGraph) Names(scope ScopeID) []string {
	s := g.scope(scope)
	names := make([]string, 0, s.definitions.Count())
	s.definitions.Iter(func(k string, _ DefinitionID) bool {
		names = append(names, k)
		return false
	})
	return names
}

// IsModBoundary reports whether scope is a module boundary.
func (g *ScopeGraph) IsModBoundary(scope ScopeID) bool { return g.scope(scope).IsModBoundary }

// Parent returns scope's parent, or (noScope, false) if it is a root
// (orphan module scopes and the crate root both have no parent).
func (g *ScopeGraph) Parent(scope ScopeID) (ScopeID, bool) {
	p := g.scope(scope).Parent
	return p, p != noScope
}

// CrateRoot walks scope's parent chain to the outermost ancestor: the
// first scope whose Parent is noScope. Per the spec's Open Question
// resolution, this is treated as the crate root even for orphan module
// scopes created for file-backed modules, not just the graph's scope 0.
func (g *ScopeGraph) CrateRoot(scope ScopeID) ScopeID {
	cur := scope
	for {
		p := g.scope(cur).Parent
		if p == noScope {
			return cur
		}
		cur = p
	}
}
