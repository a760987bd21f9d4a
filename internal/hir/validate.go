package hir

import (
	"errors"
	"fmt"
	"slices"
)

// Validate checks function invariants: every block terminated, every branch
// target present, predecessor links consistent with terminal successors, phi
// operands covering exactly the predecessor edges, and a concrete effect on
// every operand. Returns the joined violations.
func Validate(f *Func) error {
	if f == nil {
		return nil
	}

	var errs []error

	if err := validateBlocksTerminated(f); err != nil {
		errs = append(errs, err)
	}
	if err := validateBlockTargets(f); err != nil {
		errs = append(errs, err)
	}
	if err := validatePreds(f); err != nil {
		errs = append(errs, err)
	}
	if err := validatePhis(f); err != nil {
		errs = append(errs, err)
	}
	if err := validateEffects(f); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// validateBlocksTerminated checks that every block ends with a terminal and
// that the entry block exists.
func validateBlocksTerminated(f *Func) error {
	var errs []error
	if f.Block(f.Entry) == nil {
		errs = append(errs, fmt.Errorf("entry block bb%d does not exist", f.Entry))
	}
	if len(f.Order) != len(f.Blocks) {
		errs = append(errs, fmt.Errorf("block order lists %d blocks, graph has %d", len(f.Order), len(f.Blocks)))
	}
	for _, id := range f.Order {
		bb := f.Block(id)
		if bb == nil {
			errs = append(errs, fmt.Errorf("bb%d: in order but not in graph", id))
			continue
		}
		if !bb.Terminated() {
			errs = append(errs, fmt.Errorf("bb%d: unterminated block", id))
		}
	}
	return errors.Join(errs...)
}

// validateBlockTargets checks that all terminal targets exist.
func validateBlockTargets(f *Func) error {
	var errs []error
	for _, id := range f.Order {
		bb := f.Block(id)
		if bb == nil {
			continue
		}
		for _, succ := range bb.Term.Successors() {
			if f.Block(succ) == nil {
				errs = append(errs, fmt.Errorf("bb%d: target bb%d does not exist", id, succ))
			}
		}
	}
	return errors.Join(errs...)
}

// validatePreds checks that stored predecessor links mirror the successor
// edges of the terminals.
func validatePreds(f *Func) error {
	var errs []error

	want := make(map[BlockID][]BlockID)
	for _, id := range f.Order {
		bb := f.Block(id)
		if bb == nil {
			continue
		}
		for _, succ := range bb.Term.Successors() {
			if !slices.Contains(want[succ], id) {
				want[succ] = append(want[succ], id)
			}
		}
	}

	for _, id := range f.Order {
		bb := f.Block(id)
		if bb == nil {
			continue
		}
		for _, pred := range bb.Preds {
			if !slices.Contains(want[id], pred) {
				errs = append(errs, fmt.Errorf("bb%d: stored predecessor bb%d has no edge here", id, pred))
			}
		}
		for _, pred := range want[id] {
			if !slices.Contains(bb.Preds, pred) {
				errs = append(errs, fmt.Errorf("bb%d: predecessor bb%d missing from stored set", id, pred))
			}
		}
	}
	return errors.Join(errs...)
}

// validatePhis checks that each phi has exactly one operand per predecessor
// edge.
func validatePhis(f *Func) error {
	var errs []error
	for _, id := range f.Order {
		bb := f.Block(id)
		if bb == nil {
			continue
		}
		for i, phi := range bb.Phis {
			if phi.Def == nil || phi.Def.Identifier == nil {
				errs = append(errs, fmt.Errorf("bb%d phi %d: missing definition", id, i))
				continue
			}
			seen := make(map[BlockID]bool, len(phi.Operands))
			for _, op := range phi.Operands {
				if seen[op.Pred] {
					errs = append(errs, fmt.Errorf("bb%d phi %d: duplicate operand for predecessor bb%d", id, i, op.Pred))
				}
				seen[op.Pred] = true
				if !slices.Contains(bb.Preds, op.Pred) {
					errs = append(errs, fmt.Errorf("bb%d phi %d: operand for non-predecessor bb%d", id, i, op.Pred))
				}
				if op.Value == nil || op.Value.Identifier == nil {
					errs = append(errs, fmt.Errorf("bb%d phi %d: missing value for predecessor bb%d", id, i, op.Pred))
				}
			}
			for _, pred := range bb.Preds {
				if !seen[pred] {
					errs = append(errs, fmt.Errorf("bb%d phi %d: no operand for predecessor bb%d", id, i, pred))
				}
			}
		}
	}
	return errors.Join(errs...)
}

// validateEffects checks that lowering assigned a concrete effect to every
// operand. An unknown effect here would silently corrupt any analysis that
// dispatches on effects.
func validateEffects(f *Func) error {
	var errs []error
	for _, id := range f.Order {
		bb := f.Block(id)
		if bb == nil {
			continue
		}
		for j := range bb.Instrs {
			ctx := fmt.Sprintf("bb%d instr %d", id, j)
			err := bb.Instrs[j].Operands(func(p *Place) error {
				if p.Identifier == nil {
					errs = append(errs, fmt.Errorf("%s: operand without identifier", ctx))
					return nil
				}
				if p.Effect == EffectUnknown {
					errs = append(errs, fmt.Errorf("%s: operand %%%d has unknown effect", ctx, p.Identifier.ID))
				}
				return nil
			})
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", ctx, err))
			}
		}
	}
	return errors.Join(errs...)
}
