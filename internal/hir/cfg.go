package hir

// HasBackEdge reports whether the block graph contains at least one back
// edge, i.e. a loop. Iterative DFS so stack depth is independent of graph
// size.
func (f *Func) HasBackEdge() bool {
	const (
		white = iota // not visited
		gray         // on the DFS stack
		black        // fully explored
	)
	state := make(map[BlockID]uint8, len(f.Blocks))

	type frame struct {
		id    BlockID
		succs []BlockID
		next  int
	}
	var stack []frame

	push := func(id BlockID) {
		state[id] = gray
		stack = append(stack, frame{id: id, succs: f.Blocks[id].Term.Successors()})
	}

	if f.Block(f.Entry) == nil {
		return false
	}
	push(f.Entry)
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next >= len(top.succs) {
			state[top.id] = black
			stack = stack[:len(stack)-1]
			continue
		}
		succ := top.succs[top.next]
		top.next++
		if f.Block(succ) == nil {
			continue
		}
		switch state[succ] {
		case gray:
			return true
		case white:
			push(succ)
		}
	}
	return false
}
