package hir_test

import (
	"strings"
	"testing"

	"prism/internal/hir"
)

func validDiamond(t *testing.T) (*hir.Builder, *hir.Func) {
	t.Helper()
	b := hir.NewBuilder("component")
	props := b.AddParam("props", hir.Type{Kind: hir.TypeObject})

	entry := b.NewBlock()
	left := b.NewBlock()
	right := b.NewBlock()
	exit := b.NewBlock()

	cond := b.Temp()
	entry.Instrs = []hir.Instr{{
		Kind: hir.InstrPropertyLoad,
		Dst:  cond,
		PropertyLoad: hir.PropertyLoadInstr{
			Object:   b.Place(props.Identifier, hir.EffectRead),
			Property: "cond",
		},
	}}
	entry.Term = hir.Terminal{Kind: hir.TermIf, If: hir.IfTerm{
		Test: b.Place(cond.Identifier, hir.EffectRead),
		Then: left.ID, Else: right.ID,
	}}

	a := b.Temp()
	left.Instrs = []hir.Instr{{Kind: hir.InstrLiteral, Dst: a, Literal: hir.LiteralInstr{Raw: "1"}}}
	left.Term = hir.Terminal{Kind: hir.TermGoto, Goto: hir.GotoTerm{Target: exit.ID}}

	c := b.Temp()
	right.Instrs = []hir.Instr{{Kind: hir.InstrLiteral, Dst: c, Literal: hir.LiteralInstr{Raw: "2"}}}
	right.Term = hir.Terminal{Kind: hir.TermGoto, Goto: hir.GotoTerm{Target: exit.ID}}

	x := b.Temp()
	exit.Phis = []*hir.Phi{{
		Def: x,
		Operands: []hir.PhiOperand{
			{Pred: left.ID, Value: b.Place(a.Identifier, hir.EffectRead)},
			{Pred: right.ID, Value: b.Place(c.Identifier, hir.EffectRead)},
		},
	}}
	exit.Term = hir.Terminal{Kind: hir.TermReturn, Return: hir.ReturnTerm{
		HasValue: true,
		Value:    b.Place(x.Identifier, hir.EffectFreeze),
	}}

	return b, b.Finish(entry.ID)
}

// TestValidate_WellFormed tests that a well-formed function validates.
func TestValidate_WellFormed(t *testing.T) {
	_, f := validDiamond(t)
	if err := hir.Validate(f); err != nil {
		t.Errorf("expected no validation errors, got: %v", err)
	}
}

// TestValidate_Unterminated tests that a block without a terminal is
// rejected.
func TestValidate_Unterminated(t *testing.T) {
	_, f := validDiamond(t)
	f.Block(f.Entry).Term = hir.Terminal{}
	err := hir.Validate(f)
	if err == nil || !strings.Contains(err.Error(), "unterminated") {
		t.Errorf("expected unterminated block error, got: %v", err)
	}
}

// TestValidate_MissingTarget tests that a dangling branch target is
// rejected.
func TestValidate_MissingTarget(t *testing.T) {
	_, f := validDiamond(t)
	entry := f.Block(f.Entry)
	entry.Term.If.Then = hir.BlockID(99)
	err := hir.Validate(f)
	if err == nil || !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("expected missing target error, got: %v", err)
	}
}

// TestValidate_PhiOperandMismatch tests that a phi missing an operand for a
// predecessor edge is rejected.
func TestValidate_PhiOperandMismatch(t *testing.T) {
	_, f := validDiamond(t)
	var exit *hir.Block
	for _, id := range f.Order {
		if len(f.Block(id).Phis) > 0 {
			exit = f.Block(id)
		}
	}
	exit.Phis[0].Operands = exit.Phis[0].Operands[:1]
	err := hir.Validate(f)
	if err == nil || !strings.Contains(err.Error(), "no operand for predecessor") {
		t.Errorf("expected phi operand mismatch error, got: %v", err)
	}
}

// TestValidate_UnknownEffect tests that an operand with an unassigned effect
// is rejected.
func TestValidate_UnknownEffect(t *testing.T) {
	_, f := validDiamond(t)
	entry := f.Block(f.Entry)
	entry.Instrs[0].PropertyLoad.Object.Effect = hir.EffectUnknown
	err := hir.Validate(f)
	if err == nil || !strings.Contains(err.Error(), "unknown effect") {
		t.Errorf("expected unknown effect error, got: %v", err)
	}
}

// TestDump_Deterministic tests that dumping is stable across calls.
func TestDump_Deterministic(t *testing.T) {
	_, f := validDiamond(t)

	var first, second strings.Builder
	if err := hir.Dump(&first, f, nil); err != nil {
		t.Fatalf("dump failed: %v", err)
	}
	if err := hir.Dump(&second, f, nil); err != nil {
		t.Fatalf("dump failed: %v", err)
	}
	if first.String() != second.String() {
		t.Errorf("dump is not deterministic")
	}
	if !strings.Contains(first.String(), "fn component") {
		t.Errorf("dump missing function header:\n%s", first.String())
	}
	if !strings.Contains(first.String(), "Phi") {
		t.Errorf("dump missing phi line:\n%s", first.String())
	}
}
