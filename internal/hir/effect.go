package hir

// Effect describes the kind of access an instruction has to one of its
// operand places. Effects are assigned during lowering; EffectUnknown is the
// unassigned zero value and must never survive into analysis.
type Effect uint8

const (
	// EffectUnknown marks an operand whose effect was never inferred.
	EffectUnknown Effect = iota
	// EffectRead is a read-only use of the operand.
	EffectRead
	// EffectFreeze is a read that renders the operand deeply immutable.
	EffectFreeze
	// EffectCapture stores a reference to the operand inside the result.
	EffectCapture
	// EffectStore writes a property of the operand.
	EffectStore
	// EffectConditionallyMutate may mutate the operand depending on its
	// runtime type.
	EffectConditionallyMutate
	// EffectMutate definitely mutates the operand.
	EffectMutate
)

func (e Effect) String() string {
	switch e {
	case EffectUnknown:
		return "unknown"
	case EffectRead:
		return "read"
	case EffectFreeze:
		return "freeze"
	case EffectCapture:
		return "capture"
	case EffectStore:
		return "store"
	case EffectConditionallyMutate:
		return "mutate?"
	case EffectMutate:
		return "mutate"
	}
	return "invalid"
}
