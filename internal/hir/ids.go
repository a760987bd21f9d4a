// Package hir provides the control-flow-graph intermediate representation
// that component functions are lowered into before analysis.
//
// A function is a set of basic blocks. Each block carries phi nodes, a list
// of instructions and exactly one terminal. Every value slot is an
// Identifier; every use or definition site of an identifier is a Place
// tagged with the Effect the enclosing instruction has on it.
//
// The structures in this package are immutable during analysis: passes read
// the graph and record their findings in side tables of their own.
package hir

// IdentifierID identifies one value slot within a function. IDs are assigned
// monotonically by the Builder and never reused within a function.
type IdentifierID uint32

// BlockID identifies a basic block within a function.
type BlockID uint32

// Invalid ID constants (zero is sentinel).
const (
	NoIdentifierID IdentifierID = 0
	NoBlockID      BlockID      = 0
)

// IsValid returns true if the ID is valid (non-zero).
func (id IdentifierID) IsValid() bool { return id != NoIdentifierID }
func (id BlockID) IsValid() bool      { return id != NoBlockID }
