// Package postdom computes post-dominance over a function's block graph:
// which blocks every path from a given block to the function exit must pass
// through, and the reverse frontier exposing where control could diverge
// away from a block.
package postdom

import (
	"slices"

	"prism/internal/hir"
)

// Options configures tree construction.
type Options struct {
	// IgnoreThrows excludes throw terminals from counting as function
	// exits. Blocks that can only throw then have no post-dominator
	// information at all.
	IgnoreThrows bool
}

// Tree holds the immediate post-dominator of every block that can reach a
// function exit. hir.NoBlockID stands for the virtual exit node. The tree is
// a pure function of the immutable block graph, so query results are
// memoized for the lifetime of the tree.
type Tree struct {
	fn        *hir.Func
	ipdom     map[hir.BlockID]hir.BlockID
	frontiers map[hir.BlockID][]hir.BlockID
}

// ComputeTree builds the post-dominator tree by iterating a backward
// dataflow to a fixpoint: each exit block is immediately post-dominated by
// the virtual exit, every other block by the intersection of its successors'
// post-dominator chains.
func ComputeTree(fn *hir.Func, opts Options) *Tree {
	t := &Tree{
		fn:        fn,
		ipdom:     make(map[hir.BlockID]hir.BlockID, len(fn.Blocks)),
		frontiers: make(map[hir.BlockID][]hir.BlockID),
	}

	for _, id := range fn.Order {
		if isExit(fn.Block(id), opts) {
			t.ipdom[id] = hir.NoBlockID
		}
	}

	changed := true
	for changed {
		changed = false
		// Walk blocks in reverse stored order so information flows from
		// exits toward the entry with few iterations.
		for i := len(fn.Order) - 1; i >= 0; i-- {
			id := fn.Order[i]
			bb := fn.Block(id)
			if bb == nil || isExit(bb, opts) {
				continue
			}

			var newIdom hir.BlockID
			found := false
			for _, succ := range bb.Term.Successors() {
				if _, processed := t.ipdom[succ]; !processed {
					continue
				}
				if !found {
					newIdom = succ
					found = true
					continue
				}
				newIdom = t.intersect(succ, newIdom)
			}
			if !found {
				continue
			}
			if cur, ok := t.ipdom[id]; !ok || cur != newIdom {
				t.ipdom[id] = newIdom
				changed = true
			}
		}
	}
	return t
}

func isExit(bb *hir.Block, opts Options) bool {
	if bb == nil {
		return false
	}
	switch bb.Term.Kind {
	case hir.TermReturn:
		return true
	case hir.TermThrow:
		return !opts.IgnoreThrows
	}
	return false
}

// intersect finds the nearest common post-dominator of two blocks by walking
// their chains toward the virtual exit.
func (t *Tree) intersect(a, b hir.BlockID) hir.BlockID {
	onPath := make(map[hir.BlockID]bool)
	for cur := a; ; {
		onPath[cur] = true
		if cur == hir.NoBlockID {
			break
		}
		next, ok := t.ipdom[cur]
		if !ok {
			break
		}
		cur = next
	}
	for cur := b; ; {
		if onPath[cur] {
			return cur
		}
		if cur == hir.NoBlockID {
			break
		}
		next, ok := t.ipdom[cur]
		if !ok {
			break
		}
		cur = next
	}
	return hir.NoBlockID
}

// ImmediatePostDominator returns a block's immediate post-dominator.
// hir.NoBlockID means the virtual exit. ok is false for blocks with no path
// to an exit.
func (t *Tree) ImmediatePostDominator(id hir.BlockID) (hir.BlockID, bool) {
	ipdom, ok := t.ipdom[id]
	return ipdom, ok
}

// PostDominatorsOf returns every block that target post-dominates: walking
// predecessors breadth-first from target, a predecessor belongs to the set
// when its immediate-post-dominator chain reaches target. The visited set
// guarantees termination on cyclic graphs.
func (t *Tree) PostDominatorsOf(target hir.BlockID) map[hir.BlockID]struct{} {
	result := make(map[hir.BlockID]struct{})
	visited := map[hir.BlockID]bool{target: true}

	queue := slices.Clone(t.preds(target))
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		if visited[p] {
			continue
		}
		visited[p] = true
		if !t.chainReaches(p, target) {
			continue
		}
		result[p] = struct{}{}
		queue = append(queue, t.preds(p)...)
	}
	return result
}

// chainReaches reports whether target appears in from's post-dominator
// chain.
func (t *Tree) chainReaches(from, target hir.BlockID) bool {
	for cur := from; ; {
		next, ok := t.ipdom[cur]
		if !ok || next == hir.NoBlockID {
			return false
		}
		if next == target {
			return true
		}
		cur = next
	}
}

// Frontier returns the post-dominator frontier of target: for every block in
// PostDominatorsOf(target) plus target itself, each predecessor outside that
// set. Those predecessors are the points where control flow could have
// diverged away from ever reaching target. Results are cached per target.
func (t *Tree) Frontier(target hir.BlockID) []hir.BlockID {
	if cached, ok := t.frontiers[target]; ok {
		return cached
	}

	pdoms := t.PostDominatorsOf(target)
	nodes := make([]hir.BlockID, 0, len(pdoms)+1)
	nodes = append(nodes, target)
	for id := range pdoms {
		nodes = append(nodes, id)
	}

	seen := make(map[hir.BlockID]bool)
	var frontier []hir.BlockID
	for _, node := range nodes {
		for _, pred := range t.preds(node) {
			if _, inside := pdoms[pred]; inside || seen[pred] {
				continue
			}
			seen[pred] = true
			frontier = append(frontier, pred)
		}
	}
	slices.Sort(frontier)

	t.frontiers[target] = frontier
	return frontier
}

func (t *Tree) preds(id hir.BlockID) []hir.BlockID {
	if bb := t.fn.Block(id); bb != nil {
		return bb.Preds
	}
	return nil
}
