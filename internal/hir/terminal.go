package hir

// TermKind enumerates terminal kinds.
type TermKind uint8

const (
	TermNone TermKind = iota
	TermGoto
	TermIf
	TermSwitch
	TermReturn
	TermThrow
	TermUnreachable
)

// Terminal ends a basic block with a control transfer.
type Terminal struct {
	Kind TermKind

	Goto        GotoTerm
	If          IfTerm
	Switch      SwitchTerm
	Return      ReturnTerm
	Throw       ThrowTerm
	Unreachable struct{}
}

type GotoTerm struct {
	Target BlockID
}

type IfTerm struct {
	Test *Place
	Then BlockID
	Else BlockID
}

// SwitchCase is one arm of a switch terminal. Test is nil for the default
// arm.
type SwitchCase struct {
	Test   *Place
	Target BlockID
}

type SwitchTerm struct {
	Test  *Place
	Cases []SwitchCase
}

type ReturnTerm struct {
	HasValue bool
	Value    *Place
}

type ThrowTerm struct {
	Value *Place
}

// Successors returns the blocks control may transfer to.
func (t *Terminal) Successors() []BlockID {
	switch t.Kind {
	case TermGoto:
		return []BlockID{t.Goto.Target}
	case TermIf:
		return []BlockID{t.If.Then, t.If.Else}
	case TermSwitch:
		succs := make([]BlockID, 0, len(t.Switch.Cases))
		for _, c := range t.Switch.Cases {
			succs = append(succs, c.Target)
		}
		return succs
	case TermReturn, TermThrow, TermUnreachable, TermNone:
		return nil
	}
	return nil
}

// TestOperands calls visit for every operand that decides where control goes
// next: the branch condition, the switch discriminant and each per-case
// test. Return and throw values are not tests.
func (t *Terminal) TestOperands(visit func(*Place)) {
	switch t.Kind {
	case TermIf:
		if t.If.Test != nil {
			visit(t.If.Test)
		}
	case TermSwitch:
		if t.Switch.Test != nil {
			visit(t.Switch.Test)
		}
		for _, c := range t.Switch.Cases {
			if c.Test != nil {
				visit(c.Test)
			}
		}
	}
}
