package hir

// Block is one basic block: phis at entry, instructions in order, one
// terminal, and the ids of its predecessor blocks.
type Block struct {
	ID     BlockID
	Phis   []*Phi
	Instrs []Instr
	Term   Terminal
	Preds  []BlockID
}

func (b *Block) Terminated() bool {
	if b == nil {
		return true
	}
	return b.Term.Kind != TermNone
}
