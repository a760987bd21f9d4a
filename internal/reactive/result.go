package reactive

import (
	"slices"

	"prism/internal/hir"
)

// Result is the reactivity side table produced by one analysis run: the set
// of identifiers whose values may differ across invocations of the function.
// The set only ever grows while the analysis runs and is read-only
// afterwards.
type Result struct {
	reactive map[hir.IdentifierID]struct{}
}

func newResult() *Result {
	return &Result{reactive: make(map[hir.IdentifierID]struct{})}
}

// markIdentifier adds an identifier to the reactive set. Returns true when
// the identifier was not already marked. There is no inverse operation.
func (r *Result) markIdentifier(id hir.IdentifierID) bool {
	if _, ok := r.reactive[id]; ok {
		return false
	}
	r.reactive[id] = struct{}{}
	return true
}

// IsReactiveIdentifier reports whether the identifier may change between
// invocations.
func (r *Result) IsReactiveIdentifier(id hir.IdentifierID) bool {
	_, ok := r.reactive[id]
	return ok
}

// IsReactive reports whether the value at a place may change between
// invocations.
func (r *Result) IsReactive(p *hir.Place) bool {
	if p == nil || p.Identifier == nil {
		return false
	}
	return r.IsReactiveIdentifier(p.Identifier.ID)
}

// Len returns the number of reactive identifiers.
func (r *Result) Len() int {
	return len(r.reactive)
}

// Identifiers returns the reactive identifiers in ascending order.
func (r *Result) Identifiers() []hir.IdentifierID {
	ids := make([]hir.IdentifierID, 0, len(r.reactive))
	for id := range r.reactive {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
