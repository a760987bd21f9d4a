package hir

import (
	"slices"

	"fortio.org/safecast"

	"prism/internal/diag"
)

// Builder constructs a Func with monotonically assigned identifier and block
// ids. It is the construction surface for lowering and for tests; once
// Finish is called the function is treated as immutable.
type Builder struct {
	fn         *Func
	identCount int
	blockCount int
}

func NewBuilder(name string) *Builder {
	return &Builder{
		fn: &Func{
			Name:   name,
			Blocks: make(map[BlockID]*Block),
		},
	}
}

// NewIdentifier allocates the next identifier.
func (b *Builder) NewIdentifier(name string, ty Type) *Identifier {
	raw, err := safecast.Conv[uint32](b.identCount + 1)
	if err != nil {
		panic(diag.Invariantf(diag.IceIDOverflow, "identifier id overflow: %v", err))
	}
	b.identCount++
	return &Identifier{ID: IdentifierID(raw), Name: name, Type: ty}
}

// Place creates a new use or definition site for an identifier.
func (b *Builder) Place(id *Identifier, eff Effect) *Place {
	return &Place{Identifier: id, Effect: eff}
}

// Temp allocates a fresh unnamed identifier and returns a definition site
// for it.
func (b *Builder) Temp() *Place {
	return b.Place(b.NewIdentifier("", Type{Kind: TypePoly}), EffectStore)
}

// AddParam appends a function parameter.
func (b *Builder) AddParam(name string, ty Type) *Place {
	p := b.Place(b.NewIdentifier(name, ty), EffectRead)
	b.fn.Params = append(b.fn.Params, p)
	return p
}

// NewBlock allocates the next block and appends it to the walk order.
func (b *Builder) NewBlock() *Block {
	raw, err := safecast.Conv[uint32](b.blockCount + 1)
	if err != nil {
		panic(diag.Invariantf(diag.IceIDOverflow, "block id overflow: %v", err))
	}
	b.blockCount++
	blk := &Block{ID: BlockID(raw)}
	b.fn.Blocks[blk.ID] = blk
	b.fn.Order = append(b.fn.Order, blk.ID)
	return blk
}

// Finish fixes the entry block, fills in predecessor links from terminal
// successors and returns the function.
func (b *Builder) Finish(entry BlockID) *Func {
	f := b.fn
	f.Entry = entry
	for _, id := range f.Order {
		f.Blocks[id].Preds = nil
	}
	for _, id := range f.Order {
		blk := f.Blocks[id]
		for _, succ := range blk.Term.Successors() {
			to := f.Blocks[succ]
			if to == nil || slices.Contains(to.Preds, id) {
				continue
			}
			to.Preds = append(to.Preds, id)
		}
	}
	return f
}
