package hir

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// opColumn is the width instruction mnemonics are padded to in dumps.
const opColumn = 14

// Dump writes a deterministic human-readable representation of a function.
// When reactive is non-nil, places it reports true for are marked with "*".
func Dump(w io.Writer, f *Func, reactive func(*Place) bool) error {
	if w == nil || f == nil {
		return nil
	}

	mark := func(p *Place) string {
		return placeStr(p, reactive)
	}

	params := make([]string, 0, len(f.Params))
	for _, p := range f.Params {
		params = append(params, mark(p))
	}
	fmt.Fprintf(w, "fn %s(%s) entry=bb%d\n", f.Name, strings.Join(params, ", "), f.Entry)

	for _, id := range f.Order {
		bb := f.Block(id)
		if bb == nil {
			continue
		}
		preds := make([]string, 0, len(bb.Preds))
		for _, p := range bb.Preds {
			preds = append(preds, fmt.Sprintf("bb%d", p))
		}
		fmt.Fprintf(w, "bb%d: preds=[%s]\n", id, strings.Join(preds, " "))

		for _, phi := range bb.Phis {
			ops := make([]string, 0, len(phi.Operands))
			for _, op := range phi.Operands {
				ops = append(ops, fmt.Sprintf("bb%d: %s", op.Pred, mark(op.Value)))
			}
			fmt.Fprintf(w, "  %s %s = [%s]\n", pad("Phi"), mark(phi.Def), strings.Join(ops, ", "))
		}
		for i := range bb.Instrs {
			dumpInstr(w, &bb.Instrs[i], mark)
		}
		dumpTerminal(w, &bb.Term, mark)
	}
	return nil
}

func pad(op string) string {
	return runewidth.FillRight(op, opColumn)
}

func placeStr(p *Place, reactive func(*Place) bool) string {
	if p == nil {
		return "_"
	}
	star := ""
	if reactive != nil && reactive(p) {
		star = "*"
	}
	name := ""
	if p.Identifier.Name != "" {
		name = "(" + p.Identifier.Name + ")"
	}
	return fmt.Sprintf("%%%d%s[%s]%s", p.Identifier.ID, name, p.Effect, star)
}

func dumpInstr(w io.Writer, in *Instr, mark func(*Place) string) {
	dst := ""
	if in.Dst != nil {
		dst = mark(in.Dst) + " = "
	}

	switch in.Kind {
	case InstrLiteral:
		fmt.Fprintf(w, "  %s %s%q\n", pad("Literal"), dst, in.Literal.Raw)
	case InstrLoadGlobal:
		fmt.Fprintf(w, "  %s %s%s\n", pad("LoadGlobal"), dst, in.LoadGlobal.Name)
	case InstrLoadLocal:
		fmt.Fprintf(w, "  %s %s%s\n", pad("LoadLocal"), dst, mark(in.LoadLocal.Src))
	case InstrStoreLocal:
		fmt.Fprintf(w, "  %s %s%s <- %s\n", pad("StoreLocal"), dst, mark(in.StoreLocal.LValue), mark(in.StoreLocal.Value))
	case InstrDestructure:
		targets := make([]string, 0, len(in.Destructure.Targets))
		for _, t := range in.Destructure.Targets {
			targets = append(targets, mark(t))
		}
		fmt.Fprintf(w, "  %s %s[%s] <- %s\n", pad("Destructure"), dst, strings.Join(targets, ", "), mark(in.Destructure.Value))
	case InstrPropertyLoad:
		fmt.Fprintf(w, "  %s %s%s.%s\n", pad("PropertyLoad"), dst, mark(in.PropertyLoad.Object), in.PropertyLoad.Property)
	case InstrPropertyStore:
		fmt.Fprintf(w, "  %s %s%s.%s <- %s\n", pad("PropertyStore"), dst, mark(in.PropertyStore.Object), in.PropertyStore.Property, mark(in.PropertyStore.Value))
	case InstrComputedLoad:
		fmt.Fprintf(w, "  %s %s%s[%s]\n", pad("ComputedLoad"), dst, mark(in.ComputedLoad.Object), mark(in.ComputedLoad.Index))
	case InstrComputedStore:
		fmt.Fprintf(w, "  %s %s%s[%s] <- %s\n", pad("ComputedStore"), dst, mark(in.ComputedStore.Object), mark(in.ComputedStore.Index), mark(in.ComputedStore.Value))
	case InstrCall:
		fmt.Fprintf(w, "  %s %s%s(%s)\n", pad("Call"), dst, mark(in.Call.Callee), placeList(in.Call.Args, mark))
	case InstrMethodCall:
		fmt.Fprintf(w, "  %s %s%s.%s(%s)\n", pad("MethodCall"), dst, mark(in.MethodCall.Receiver), mark(in.MethodCall.Property), placeList(in.MethodCall.Args, mark))
	case InstrObject:
		entries := make([]string, 0, len(in.Object.Entries))
		for _, e := range in.Object.Entries {
			entries = append(entries, fmt.Sprintf("%s: %s", e.Key, mark(e.Value)))
		}
		fmt.Fprintf(w, "  %s %s{%s}\n", pad("Object"), dst, strings.Join(entries, ", "))
	case InstrArray:
		fmt.Fprintf(w, "  %s %s[%s]\n", pad("Array"), dst, placeList(in.Array.Elems, mark))
	case InstrBinary:
		fmt.Fprintf(w, "  %s %s%s %s %s\n", pad("Binary"), dst, mark(in.Binary.Left), in.Binary.Op, mark(in.Binary.Right))
	case InstrUnary:
		fmt.Fprintf(w, "  %s %s%s %s\n", pad("Unary"), dst, in.Unary.Op, mark(in.Unary.Operand))
	case InstrElement:
		attrs := make([]string, 0, len(in.Element.Attrs))
		for _, a := range in.Element.Attrs {
			attrs = append(attrs, fmt.Sprintf("%s=%s", a.Name, mark(a.Value)))
		}
		fmt.Fprintf(w, "  %s %s<%s %s>(%s)\n", pad("Element"), dst, in.Element.Tag, strings.Join(attrs, " "), placeList(in.Element.Children, mark))
	case InstrFunctionExpr:
		fmt.Fprintf(w, "  %s %sfn %s captures(%s)\n", pad("FunctionExpr"), dst, in.FunctionExpr.Name, placeList(in.FunctionExpr.Captures, mark))
	default:
		fmt.Fprintf(w, "  %s %s<kind %d>\n", pad("???"), dst, in.Kind)
	}
}

func dumpTerminal(w io.Writer, t *Terminal, mark func(*Place) string) {
	switch t.Kind {
	case TermGoto:
		fmt.Fprintf(w, "  goto bb%d\n", t.Goto.Target)
	case TermIf:
		fmt.Fprintf(w, "  if %s then bb%d else bb%d\n", mark(t.If.Test), t.If.Then, t.If.Else)
	case TermSwitch:
		cases := make([]string, 0, len(t.Switch.Cases))
		for _, c := range t.Switch.Cases {
			if c.Test == nil {
				cases = append(cases, fmt.Sprintf("default: bb%d", c.Target))
				continue
			}
			cases = append(cases, fmt.Sprintf("%s: bb%d", mark(c.Test), c.Target))
		}
		fmt.Fprintf(w, "  switch %s [%s]\n", mark(t.Switch.Test), strings.Join(cases, ", "))
	case TermReturn:
		if t.Return.HasValue {
			fmt.Fprintf(w, "  return %s\n", mark(t.Return.Value))
		} else {
			fmt.Fprintf(w, "  return\n")
		}
	case TermThrow:
		fmt.Fprintf(w, "  throw %s\n", mark(t.Throw.Value))
	case TermUnreachable:
		fmt.Fprintf(w, "  unreachable\n")
	case TermNone:
		fmt.Fprintf(w, "  <unterminated>\n")
	}
}

func placeList(ps []*Place, mark func(*Place) string) string {
	parts := make([]string, 0, len(ps))
	for _, p := range ps {
		parts = append(parts, mark(p))
	}
	return strings.Join(parts, ", ")
}
