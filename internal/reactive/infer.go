// Package reactive classifies which values of a lowered component function
// may change between invocations. Downstream passes cache whatever is not
// reactive; an under-approximated reactive set therefore corrupts their
// output, so malformed input aborts the analysis instead of being skipped.
package reactive

import (
	"prism/internal/diag"
	"prism/internal/env"
	"prism/internal/hir"
	"prism/internal/postdom"
)

// Infer computes the reactivity side table for one function.
//
// Parameters seed the reactive set. Each pass walks all blocks in stored
// order: a phi becomes reactive when an incoming value is reactive or when a
// branch condition controlling whether its merge is reached is reactive (the
// post-dominator frontier of the incoming edge); an instruction with a
// reactive input, or a hook callee, makes its lvalues reactive and
// back-propagates into operands whose effect captures, stores or mutates.
// Passes repeat until a fixpoint; a graph with back edges gets one extra
// pass after every apparent fixpoint, because loop-carried reactivity
// discovered late in a pass is invisible to blocks already visited.
func Infer(fn *hir.Func, environ *env.Environment) (*Result, error) {
	res := newResult()
	for _, p := range fn.Params {
		if p.Identifier != nil {
			res.markIdentifier(p.Identifier.ID)
		}
	}

	tree := postdom.ComputeTree(fn, postdom.Options{
		IgnoreThrows: environ.Config.Analysis.IgnoreThrowsForPostDominators,
	})
	in := &inference{fn: fn, env: environ, res: res, tree: tree}

	hasLoop := fn.HasBackEdge()
	forcedExtra := false
	for {
		changed, err := in.pass()
		if err != nil {
			return nil, err
		}
		if changed {
			forcedExtra = false
			continue
		}
		if hasLoop && !forcedExtra {
			forcedExtra = true
			continue
		}
		return res, nil
	}
}

type inference struct {
	fn   *hir.Func
	env  *env.Environment
	res  *Result
	tree *postdom.Tree
}

// pass walks every block once and reports whether any identifier became
// reactive.
func (in *inference) pass() (bool, error) {
	changed := false
	for _, id := range in.fn.Order {
		bb := in.fn.Block(id)
		if bb == nil {
			return false, diag.Invariantf(diag.IceMissingBlock, "bb%d listed in order but missing from graph", id)
		}
		for _, phi := range bb.Phis {
			if in.inferPhi(phi) {
				changed = true
			}
		}
		for i := range bb.Instrs {
			instrChanged, err := in.inferInstr(&bb.Instrs[i])
			if err != nil {
				return false, err
			}
			if instrChanged {
				changed = true
			}
		}
	}
	return changed, nil
}

// inferPhi marks a phi reactive when any incoming value is reactive, or when
// any block on an incoming edge's post-dominator frontier branches on a
// reactive test. The frontier blocks are exactly the points whose conditions
// decide whether this merge is ever reached.
func (in *inference) inferPhi(phi *hir.Phi) bool {
	if in.res.IsReactive(phi.Def) {
		return false
	}

	reactive := false
	for _, op := range phi.Operands {
		if in.res.IsReactive(op.Value) {
			reactive = true
		}
	}
	if !reactive {
	frontiers:
		for _, op := range phi.Operands {
			for _, frontierID := range in.tree.Frontier(op.Pred) {
				control := in.fn.Block(frontierID)
				if control == nil {
					continue
				}
				hit := false
				control.Term.TestOperands(func(test *hir.Place) {
					if in.res.IsReactive(test) {
						hit = true
					}
				})
				if hit {
					reactive = true
					break frontiers
				}
			}
		}
	}

	if !reactive {
		return false
	}
	return in.res.markIdentifier(phi.Def.Identifier.ID)
}

// inferInstr propagates reactivity through one instruction. All operands are
// visited even after a reactive one is found: the effect of every operand is
// validated on every pass, since an unknown effect would otherwise silently
// under-approximate the reactive set.
func (in *inference) inferInstr(instr *hir.Instr) (bool, error) {
	hasReactiveInput := false
	err := instr.Operands(func(p *hir.Place) error {
		switch p.Effect {
		case hir.EffectRead, hir.EffectFreeze, hir.EffectCapture, hir.EffectStore,
			hir.EffectConditionallyMutate, hir.EffectMutate:
		case hir.EffectUnknown:
			return diag.Invariantf(diag.IceUnknownEffect,
				"operand %%%d reached reactivity analysis with unknown effect", placeID(p))
		default:
			return diag.Invariantf(diag.IceUnhandledTag, "unhandled effect %d on operand %%%d", p.Effect, placeID(p))
		}
		if in.res.IsReactive(p) {
			hasReactiveInput = true
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	if !hasReactiveInput && in.isHookCall(instr) {
		hasReactiveInput = true
	}
	if !hasReactiveInput {
		return false, nil
	}

	changed := false
	for _, lv := range instr.LValues() {
		if lv.Identifier != nil && in.res.markIdentifier(lv.Identifier.ID) {
			changed = true
		}
	}
	err = instr.Operands(func(p *hir.Place) error {
		switch p.Effect {
		case hir.EffectCapture, hir.EffectStore, hir.EffectConditionallyMutate, hir.EffectMutate:
			if in.res.markIdentifier(p.Identifier.ID) {
				changed = true
			}
		case hir.EffectRead, hir.EffectFreeze:
			// Read-only uses never become reactive through their siblings.
		case hir.EffectUnknown:
			return diag.Invariantf(diag.IceUnknownEffect,
				"operand %%%d reached reactivity analysis with unknown effect", placeID(p))
		default:
			return diag.Invariantf(diag.IceUnhandledTag, "unhandled effect %d on operand %%%d", p.Effect, placeID(p))
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return changed, nil
}

// isHookCall reports whether the instruction calls a hook: a call whose
// callee identifier, or a method call whose property identifier, resolves to
// a hook through the environment. Hooks read external state and are
// reactivity sources even with no reactive argument.
func (in *inference) isHookCall(instr *hir.Instr) bool {
	switch instr.Kind {
	case hir.InstrCall:
		return in.env.GetHookKind(identOf(instr.Call.Callee)) != env.HookNone
	case hir.InstrMethodCall:
		return in.env.GetHookKind(identOf(instr.MethodCall.Property)) != env.HookNone
	}
	return false
}

func identOf(p *hir.Place) *hir.Identifier {
	if p == nil {
		return nil
	}
	return p.Identifier
}

func placeID(p *hir.Place) hir.IdentifierID {
	if p == nil || p.Identifier == nil {
		return hir.NoIdentifierID
	}
	return p.Identifier.ID
}
