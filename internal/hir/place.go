package hir

// Identifier is one value slot, owned by the enclosing function. An
// identifier may have many places: one per use or definition site.
type Identifier struct {
	ID   IdentifierID
	Name string // source-level name when one exists, "" for temporaries
	Type Type
}

// Place is a single use or definition site of an identifier, tagged with the
// effect the enclosing instruction has on it.
type Place struct {
	Identifier *Identifier
	Effect     Effect
}

// PhiOperand is one incoming edge of a phi: the value that arrives when
// control enters through Pred.
type PhiOperand struct {
	Pred  BlockID
	Value *Place
}

// Phi merges the values arriving over each predecessor edge into one
// identifier, defined at block entry.
type Phi struct {
	Def      *Place
	Operands []PhiOperand
}
