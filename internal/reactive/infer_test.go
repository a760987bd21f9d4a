package reactive_test

import (
	"testing"

	"prism/internal/diag"
	"prism/internal/env"
	"prism/internal/hir"
	"prism/internal/reactive"
)

func testEnv(t *testing.T) *env.Environment {
	t.Helper()
	e, ok := env.New(env.DefaultConfig(), diag.NopReporter{})
	if !ok {
		t.Fatalf("default environment construction failed")
	}
	return e
}

func infer(t *testing.T, fn *hir.Func) *reactive.Result {
	t.Helper()
	if err := hir.Validate(fn); err != nil {
		t.Fatalf("fixture is malformed: %v", err)
	}
	res, err := reactive.Infer(fn, testEnv(t))
	if err != nil {
		t.Fatalf("inference failed: %v", err)
	}
	return res
}

// TestInfer_ParameterSeeding tests that parameters are reactive and pure
// constants are not.
func TestInfer_ParameterSeeding(t *testing.T) {
	b := hir.NewBuilder("component")
	props := b.AddParam("props", hir.Type{Kind: hir.TypeObject})

	entry := b.NewBlock()
	k := b.Temp()
	entry.Instrs = []hir.Instr{
		{Kind: hir.InstrLiteral, Dst: k, Literal: hir.LiteralInstr{Raw: "42"}},
	}
	entry.Term = hir.Terminal{Kind: hir.TermReturn, Return: hir.ReturnTerm{
		HasValue: true, Value: b.Place(k.Identifier, hir.EffectFreeze),
	}}

	res := infer(t, b.Finish(entry.ID))
	if !res.IsReactive(props) {
		t.Errorf("parameter should be reactive")
	}
	if res.IsReactive(k) {
		t.Errorf("constant should not be reactive")
	}
}

// TestInfer_NoParams tests that a function without parameters or hook calls
// has an empty reactive set.
func TestInfer_NoParams(t *testing.T) {
	b := hir.NewBuilder("static")
	entry := b.NewBlock()
	k := b.Temp()
	s := b.Temp()
	entry.Instrs = []hir.Instr{
		{Kind: hir.InstrLiteral, Dst: k, Literal: hir.LiteralInstr{Raw: "1"}},
		{Kind: hir.InstrBinary, Dst: s, Binary: hir.BinaryInstr{
			Op:   "+",
			Left: b.Place(k.Identifier, hir.EffectRead), Right: b.Place(k.Identifier, hir.EffectRead),
		}},
	}
	entry.Term = hir.Terminal{Kind: hir.TermReturn, Return: hir.ReturnTerm{
		HasValue: true, Value: b.Place(s.Identifier, hir.EffectFreeze),
	}}

	res := infer(t, b.Finish(entry.ID))
	if res.Len() != 0 {
		t.Errorf("expected empty reactive set, got %v", res.Identifiers())
	}
}

// TestInfer_DataFlow tests forward propagation through reads.
func TestInfer_DataFlow(t *testing.T) {
	b := hir.NewBuilder("component")
	props := b.AddParam("props", hir.Type{Kind: hir.TypeObject})

	entry := b.NewBlock()
	v := b.Temp()
	double := b.Temp()
	unrelated := b.Temp()
	entry.Instrs = []hir.Instr{
		{Kind: hir.InstrPropertyLoad, Dst: v, PropertyLoad: hir.PropertyLoadInstr{
			Object: b.Place(props.Identifier, hir.EffectRead), Property: "value",
		}},
		{Kind: hir.InstrBinary, Dst: double, Binary: hir.BinaryInstr{
			Op:   "*",
			Left: b.Place(v.Identifier, hir.EffectRead), Right: b.Place(v.Identifier, hir.EffectRead),
		}},
		{Kind: hir.InstrLiteral, Dst: unrelated, Literal: hir.LiteralInstr{Raw: "0"}},
	}
	entry.Term = hir.Terminal{Kind: hir.TermReturn, Return: hir.ReturnTerm{
		HasValue: true, Value: b.Place(double.Identifier, hir.EffectFreeze),
	}}

	res := infer(t, b.Finish(entry.ID))
	if !res.IsReactive(v) || !res.IsReactive(double) {
		t.Errorf("values derived from a parameter should be reactive")
	}
	if res.IsReactive(unrelated) {
		t.Errorf("unrelated constant should not be reactive")
	}
}

// TestInfer_HookCall tests that hook results are reactive even with no
// reactive argument, and plain calls are not.
func TestInfer_HookCall(t *testing.T) {
	b := hir.NewBuilder("component")

	entry := b.NewBlock()
	hook := b.Place(b.NewIdentifier("useFoo", hir.Type{Kind: hir.TypePoly}), hir.EffectRead)
	plain := b.Place(b.NewIdentifier("helper", hir.Type{Kind: hir.TypePoly}), hir.EffectRead)
	fromHook := b.Temp()
	fromPlain := b.Temp()
	entry.Instrs = []hir.Instr{
		{Kind: hir.InstrCall, Dst: fromHook, Call: hir.CallInstr{Callee: hook}},
		{Kind: hir.InstrCall, Dst: fromPlain, Call: hir.CallInstr{Callee: plain}},
	}
	entry.Term = hir.Terminal{Kind: hir.TermReturn, Return: hir.ReturnTerm{
		HasValue: true, Value: b.Place(fromHook.Identifier, hir.EffectFreeze),
	}}

	res := infer(t, b.Finish(entry.ID))
	if !res.IsReactive(fromHook) {
		t.Errorf("hook result should be reactive")
	}
	if res.IsReactive(fromPlain) {
		t.Errorf("plain call with no reactive input should not be reactive")
	}
}

// TestInfer_MethodCallHook tests hook resolution through a method property.
func TestInfer_MethodCallHook(t *testing.T) {
	b := hir.NewBuilder("component")

	entry := b.NewBlock()
	recv := b.Place(b.NewIdentifier("api", hir.Type{Kind: hir.TypeObject}), hir.EffectRead)
	method := b.Place(b.NewIdentifier("useQuery", hir.Type{Kind: hir.TypePoly}), hir.EffectRead)
	data := b.Temp()
	entry.Instrs = []hir.Instr{
		{Kind: hir.InstrMethodCall, Dst: data, MethodCall: hir.MethodCallInstr{
			Receiver: recv, Property: method,
		}},
	}
	entry.Term = hir.Terminal{Kind: hir.TermReturn, Return: hir.ReturnTerm{
		HasValue: true, Value: b.Place(data.Identifier, hir.EffectFreeze),
	}}

	res := infer(t, b.Finish(entry.ID))
	if !res.IsReactive(data) {
		t.Errorf("method call on a hook-named property should be reactive")
	}
}

// TestInfer_BackPropagation tests that reactivity flows back only into
// operands whose effect can capture or mutate.
func TestInfer_BackPropagation(t *testing.T) {
	b := hir.NewBuilder("component")
	p := b.AddParam("input", hir.Type{Kind: hir.TypeObject})

	entry := b.NewBlock()
	callee := b.Place(b.NewIdentifier("helper", hir.Type{Kind: hir.TypePoly}), hir.EffectRead)
	stored := b.Temp()
	captured := b.Temp()
	frozen := b.Temp()
	result := b.Temp()
	entry.Instrs = []hir.Instr{
		{Kind: hir.InstrLiteral, Dst: stored, Literal: hir.LiteralInstr{Raw: "{}"}},
		{Kind: hir.InstrLiteral, Dst: captured, Literal: hir.LiteralInstr{Raw: "{}"}},
		{Kind: hir.InstrLiteral, Dst: frozen, Literal: hir.LiteralInstr{Raw: "{}"}},
		{Kind: hir.InstrCall, Dst: result, Call: hir.CallInstr{
			Callee: callee,
			Args: []*hir.Place{
				b.Place(p.Identifier, hir.EffectRead),
				b.Place(stored.Identifier, hir.EffectStore),
				b.Place(captured.Identifier, hir.EffectCapture),
				b.Place(frozen.Identifier, hir.EffectFreeze),
			},
		}},
	}
	entry.Term = hir.Terminal{Kind: hir.TermReturn, Return: hir.ReturnTerm{
		HasValue: true, Value: b.Place(result.Identifier, hir.EffectFreeze),
	}}

	res := infer(t, b.Finish(entry.ID))
	if !res.IsReactive(result) {
		t.Errorf("call result with a reactive argument should be reactive")
	}
	if !res.IsReactive(stored) {
		t.Errorf("store operand should become reactive through its siblings")
	}
	if !res.IsReactive(captured) {
		t.Errorf("capture operand should become reactive through its siblings")
	}
	if res.IsReactive(frozen) {
		t.Errorf("freeze operand must not become reactive through its siblings")
	}
	if res.IsReactive(callee) {
		t.Errorf("read operand must not become reactive through its siblings")
	}
}

// mergeUnderBranch builds a diamond whose arms assign constants and merge in
// a phi. The branch condition is reactive when condFromParam is set.
func mergeUnderBranch(t *testing.T, condFromParam bool) (*hir.Func, *hir.Place) {
	t.Helper()
	b := hir.NewBuilder("component")
	props := b.AddParam("props", hir.Type{Kind: hir.TypeObject})

	entry := b.NewBlock()
	left := b.NewBlock()
	right := b.NewBlock()
	exit := b.NewBlock()

	cond := b.Temp()
	if condFromParam {
		entry.Instrs = []hir.Instr{{
			Kind: hir.InstrPropertyLoad, Dst: cond,
			PropertyLoad: hir.PropertyLoadInstr{
				Object: b.Place(props.Identifier, hir.EffectRead), Property: "cond",
			},
		}}
	} else {
		entry.Instrs = []hir.Instr{{
			Kind: hir.InstrLiteral, Dst: cond, Literal: hir.LiteralInstr{Raw: "true"},
		}}
	}
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

	merged := b.Temp()
	exit.Phis = []*hir.Phi{{
		Def: merged,
		Operands: []hir.PhiOperand{
			{Pred: left.ID, Value: b.Place(a.Identifier, hir.EffectRead)},
			{Pred: right.ID, Value: b.Place(c.Identifier, hir.EffectRead)},
		},
	}}
	exit.Term = hir.Terminal{Kind: hir.TermReturn, Return: hir.ReturnTerm{
		HasValue: true, Value: b.Place(merged.Identifier, hir.EffectFreeze),
	}}

	return b.Finish(entry.ID), merged
}

// TestInfer_ControlDependence tests that a merge of constants is reactive
// exactly when the branch deciding the merge is.
func TestInfer_ControlDependence(t *testing.T) {
	fn, merged := mergeUnderBranch(t, true)
	res := infer(t, fn)
	if !res.IsReactive(merged) {
		t.Errorf("phi controlled by a reactive branch should be reactive")
	}

	fn, merged = mergeUnderBranch(t, false)
	res = infer(t, fn)
	if res.IsReactive(merged) {
		t.Errorf("phi controlled by a constant branch should not be reactive")
	}
}

// TestInfer_SwitchControl tests control dependence through a switch
// discriminant.
func TestInfer_SwitchControl(t *testing.T) {
	b := hir.NewBuilder("component")
	disc := b.AddParam("kind", hir.Type{Kind: hir.TypePrimitive})

	entry := b.NewBlock()
	first := b.NewBlock()
	second := b.NewBlock()
	exit := b.NewBlock()

	caseVal := b.Temp()
	entry.Instrs = []hir.Instr{{Kind: hir.InstrLiteral, Dst: caseVal, Literal: hir.LiteralInstr{Raw: "\"a\""}}}
	entry.Term = hir.Terminal{Kind: hir.TermSwitch, Switch: hir.SwitchTerm{
		Test: b.Place(disc.Identifier, hir.EffectRead),
		Cases: []hir.SwitchCase{
			{Test: b.Place(caseVal.Identifier, hir.EffectRead), Target: first.ID},
			{Test: nil, Target: second.ID},
		},
	}}

	x := b.Temp()
	first.Instrs = []hir.Instr{{Kind: hir.InstrLiteral, Dst: x, Literal: hir.LiteralInstr{Raw: "1"}}}
	first.Term = hir.Terminal{Kind: hir.TermGoto, Goto: hir.GotoTerm{Target: exit.ID}}

	y := b.Temp()
	second.Instrs = []hir.Instr{{Kind: hir.InstrLiteral, Dst: y, Literal: hir.LiteralInstr{Raw: "2"}}}
	second.Term = hir.Terminal{Kind: hir.TermGoto, Goto: hir.GotoTerm{Target: exit.ID}}

	merged := b.Temp()
	exit.Phis = []*hir.Phi{{
		Def: merged,
		Operands: []hir.PhiOperand{
			{Pred: first.ID, Value: b.Place(x.Identifier, hir.EffectRead)},
			{Pred: second.ID, Value: b.Place(y.Identifier, hir.EffectRead)},
		},
	}}
	exit.Term = hir.Terminal{Kind: hir.TermReturn, Return: hir.ReturnTerm{
		HasValue: true, Value: b.Place(merged.Identifier, hir.EffectFreeze),
	}}

	res := infer(t, b.Finish(entry.ID))
	if !res.IsReactive(merged) {
		t.Errorf("phi controlled by a reactive switch discriminant should be reactive")
	}
}

// loopCarried builds:
//
//	entry:  %a = 0; %cond = true; goto header
//	header: %x = phi [entry: %a, body: %y]; if %cond -> body | exit
//	body:   %y = %x + %p; goto header
//	exit:   return %x
//
// Reactivity enters the cycle only through %p inside the body, so %x becomes
// reactive strictly after %y does.
func loopCarried(t *testing.T) (*hir.Func, *hir.Place, *hir.Place) {
	t.Helper()
	b := hir.NewBuilder("loop")
	p := b.AddParam("step", hir.Type{Kind: hir.TypePrimitive})

	entry := b.NewBlock()
	header := b.NewBlock()
	body := b.NewBlock()
	exit := b.NewBlock()

	a := b.Temp()
	cond := b.Temp()
	entry.Instrs = []hir.Instr{
		{Kind: hir.InstrLiteral, Dst: a, Literal: hir.LiteralInstr{Raw: "0"}},
		{Kind: hir.InstrLiteral, Dst: cond, Literal: hir.LiteralInstr{Raw: "true"}},
	}
	entry.Term = hir.Terminal{Kind: hir.TermGoto, Goto: hir.GotoTerm{Target: header.ID}}

	x := b.Temp()
	y := b.Temp()
	header.Phis = []*hir.Phi{{
		Def: x,
		Operands: []hir.PhiOperand{
			{Pred: entry.ID, Value: b.Place(a.Identifier, hir.EffectRead)},
			{Pred: body.ID, Value: b.Place(y.Identifier, hir.EffectRead)},
		},
	}}
	header.Term = hir.Terminal{Kind: hir.TermIf, If: hir.IfTerm{
		Test: b.Place(cond.Identifier, hir.EffectRead),
		Then: body.ID, Else: exit.ID,
	}}

	body.Instrs = []hir.Instr{{Kind: hir.InstrBinary, Dst: y, Binary: hir.BinaryInstr{
		Op:   "+",
		Left: b.Place(x.Identifier, hir.EffectRead), Right: b.Place(p.Identifier, hir.EffectRead),
	}}}
	body.Term = hir.Terminal{Kind: hir.TermGoto, Goto: hir.GotoTerm{Target: header.ID}}

	exit.Term = hir.Terminal{Kind: hir.TermReturn, Return: hir.ReturnTerm{
		HasValue: true, Value: b.Place(x.Identifier, hir.EffectFreeze),
	}}

	return b.Finish(entry.ID), x, y
}

// TestInfer_LoopCarried tests that reactivity discovered inside a loop body
// reaches the loop phi.
func TestInfer_LoopCarried(t *testing.T) {
	fn, x, y := loopCarried(t)
	res := infer(t, fn)
	if !res.IsReactive(y) {
		t.Errorf("loop body value derived from a parameter should be reactive")
	}
	if !res.IsReactive(x) {
		t.Errorf("loop phi fed by a reactive body value should be reactive")
	}
}

// TestInfer_Idempotent tests that re-running the analysis yields the same
// set.
func TestInfer_Idempotent(t *testing.T) {
	fn, _, _ := loopCarried(t)
	first := infer(t, fn)
	second := infer(t, fn)

	a, b := first.Identifiers(), second.Identifiers()
	if len(a) != len(b) {
		t.Fatalf("reactive sets differ: %v vs %v", a, b)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("reactive sets differ: %v vs %v", a, b)
		}
	}
}

// TestInfer_UnknownEffect tests that an operand whose effect was never
// assigned aborts the analysis.
func TestInfer_UnknownEffect(t *testing.T) {
	b := hir.NewBuilder("broken")
	p := b.AddParam("input", hir.Type{Kind: hir.TypeObject})

	entry := b.NewBlock()
	v := b.Temp()
	entry.Instrs = []hir.Instr{{Kind: hir.InstrLoadLocal, Dst: v, LoadLocal: hir.LoadLocalInstr{
		Src: b.Place(p.Identifier, hir.EffectUnknown),
	}}}
	entry.Term = hir.Terminal{Kind: hir.TermReturn}

	fn := b.Finish(entry.ID)
	_, err := reactive.Infer(fn, testEnv(t))
	if err == nil {
		t.Fatalf("unknown effect should abort the analysis")
	}
	if !diag.IsInvariant(err) {
		t.Errorf("expected an internal invariant error, got: %v", err)
	}
}

// TestInfer_MissingBlock tests that a dangling order entry aborts the
// analysis.
func TestInfer_MissingBlock(t *testing.T) {
	b := hir.NewBuilder("broken")
	entry := b.NewBlock()
	entry.Term = hir.Terminal{Kind: hir.TermReturn}

	fn := b.Finish(entry.ID)
	fn.Order = append(fn.Order, hir.BlockID(99))

	_, err := reactive.Infer(fn, testEnv(t))
	if err == nil {
		t.Fatalf("missing block should abort the analysis")
	}
	if !diag.IsInvariant(err) {
		t.Errorf("expected an internal invariant error, got: %v", err)
	}
}
