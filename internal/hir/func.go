package hir

// Func is one lowered component function: ordered parameters and a block
// graph. Order lists block ids in lowering order (reverse postorder); passes
// that walk "all blocks" follow it for determinism.
type Func struct {
	Name   string
	Params []*Place
	Entry  BlockID
	Order  []BlockID
	Blocks map[BlockID]*Block
}

// Block returns the block with the given id, or nil.
func (f *Func) Block(id BlockID) *Block {
	return f.Blocks[id]
}
