package hir

import (
	"prism/internal/diag"
)

// InstrKind enumerates instruction kinds.
type InstrKind uint8

const (
	// InstrLiteral materializes a constant.
	InstrLiteral InstrKind = iota
	// InstrLoadGlobal reads a module- or process-scoped binding by name.
	InstrLoadGlobal
	// InstrLoadLocal reads another identifier.
	InstrLoadLocal
	// InstrStoreLocal writes an identifier.
	InstrStoreLocal
	// InstrDestructure unpacks a value into several identifiers.
	InstrDestructure
	// InstrPropertyLoad reads a named property of an object.
	InstrPropertyLoad
	// InstrPropertyStore writes a named property of an object.
	InstrPropertyStore
	// InstrComputedLoad reads a computed property of an object.
	InstrComputedLoad
	// InstrComputedStore writes a computed property of an object.
	InstrComputedStore
	// InstrCall calls a value.
	InstrCall
	// InstrMethodCall calls a property of a receiver.
	InstrMethodCall
	// InstrObject builds an object literal.
	InstrObject
	// InstrArray builds an array literal.
	InstrArray
	// InstrBinary applies a binary operator.
	InstrBinary
	// InstrUnary applies a unary operator.
	InstrUnary
	// InstrElement builds a UI element node.
	InstrElement
	// InstrFunctionExpr builds a closure capturing outer values.
	InstrFunctionExpr
)

// Instr is one instruction: it defines Dst (and possibly further lvalues,
// depending on the kind), consumes operand places, and carries a tagged
// value payload.
type Instr struct {
	Kind InstrKind

	// Dst is the place defined by this instruction; nil when the computed
	// value is discarded.
	Dst *Place

	Literal       LiteralInstr
	LoadGlobal    LoadGlobalInstr
	LoadLocal     LoadLocalInstr
	StoreLocal    StoreLocalInstr
	Destructure   DestructureInstr
	PropertyLoad  PropertyLoadInstr
	PropertyStore PropertyStoreInstr
	ComputedLoad  ComputedLoadInstr
	ComputedStore ComputedStoreInstr
	Call          CallInstr
	MethodCall    MethodCallInstr
	Object        ObjectInstr
	Array         ArrayInstr
	Binary        BinaryInstr
	Unary         UnaryInstr
	Element       ElementInstr
	FunctionExpr  FunctionExprInstr
}

// LiteralInstr materializes a constant. Raw preserves the literal's source
// text; the analysis never interprets it.
type LiteralInstr struct {
	Raw string
}

// LoadGlobalInstr reads a global binding by name.
type LoadGlobalInstr struct {
	Name string
}

// LoadLocalInstr reads another identifier.
type LoadLocalInstr struct {
	Src *Place
}

// StoreLocalInstr writes Value into the identifier defined by LValue.
type StoreLocalInstr struct {
	LValue *Place
	Value  *Place
}

// DestructureInstr unpacks Value into each of Targets.
type DestructureInstr struct {
	Targets []*Place
	Value   *Place
}

// PropertyLoadInstr reads Object.Property.
type PropertyLoadInstr struct {
	Object   *Place
	Property string
}

// PropertyStoreInstr writes Object.Property = Value.
type PropertyStoreInstr struct {
	Object   *Place
	Property string
	Value    *Place
}

// ComputedLoadInstr reads Object[Index].
type ComputedLoadInstr struct {
	Object *Place
	Index  *Place
}

// ComputedStoreInstr writes Object[Index] = Value.
type ComputedStoreInstr struct {
	Object *Place
	Index  *Place
	Value  *Place
}

// CallInstr calls Callee with Args.
type CallInstr struct {
	Callee *Place
	Args   []*Place
}

// MethodCallInstr calls Receiver.<Property>(Args). Property is the place
// holding the loaded method value; its identifier resolves the callee.
type MethodCallInstr struct {
	Receiver *Place
	Property *Place
	Args     []*Place
}

// ObjectEntry is one key/value pair of an object literal.
type ObjectEntry struct {
	Key   string
	Value *Place
}

// ObjectInstr builds an object literal.
type ObjectInstr struct {
	Entries []ObjectEntry
}

// ArrayInstr builds an array literal.
type ArrayInstr struct {
	Elems []*Place
}

// BinaryInstr applies a binary operator.
type BinaryInstr struct {
	Op    string
	Left  *Place
	Right *Place
}

// UnaryInstr applies a unary operator.
type UnaryInstr struct {
	Op      string
	Operand *Place
}

// ElementAttr is one attribute of a UI element.
type ElementAttr struct {
	Name  string
	Value *Place
}

// ElementInstr builds a UI element node from a tag, attributes and children.
type ElementInstr struct {
	Tag      string
	Attrs    []ElementAttr
	Children []*Place
}

// FunctionExprInstr builds a closure. Captures are the outer places the
// closure closes over.
type FunctionExprInstr struct {
	Name     string
	Captures []*Place
}

// Operands calls visit for every operand place of the instruction, in a
// fixed order. Visiting must be exhaustive over instruction kinds: an
// unhandled kind is a fatal internal error, never a silent skip.
func (in *Instr) Operands(visit func(*Place) error) error {
	each := func(places ...*Place) error {
		for _, p := range places {
			if p == nil {
				continue
			}
			if err := visit(p); err != nil {
				return err
			}
		}
		return nil
	}

	switch in.Kind {
	case InstrLiteral:
		return nil
	case InstrLoadGlobal:
		return nil
	case InstrLoadLocal:
		return each(in.LoadLocal.Src)
	case InstrStoreLocal:
		return each(in.StoreLocal.Value)
	case InstrDestructure:
		return each(in.Destructure.Value)
	case InstrPropertyLoad:
		return each(in.PropertyLoad.Object)
	case InstrPropertyStore:
		return each(in.PropertyStore.Object, in.PropertyStore.Value)
	case InstrComputedLoad:
		return each(in.ComputedLoad.Object, in.ComputedLoad.Index)
	case InstrComputedStore:
		return each(in.ComputedStore.Object, in.ComputedStore.Index, in.ComputedStore.Value)
	case InstrCall:
		if err := each(in.Call.Callee); err != nil {
			return err
		}
		return each(in.Call.Args...)
	case InstrMethodCall:
		if err := each(in.MethodCall.Receiver, in.MethodCall.Property); err != nil {
			return err
		}
		return each(in.MethodCall.Args...)
	case InstrObject:
		for _, e := range in.Object.Entries {
			if err := each(e.Value); err != nil {
				return err
			}
		}
		return nil
	case InstrArray:
		return each(in.Array.Elems...)
	case InstrBinary:
		return each(in.Binary.Left, in.Binary.Right)
	case InstrUnary:
		return each(in.Unary.Operand)
	case InstrElement:
		for _, a := range in.Element.Attrs {
			if err := each(a.Value); err != nil {
				return err
			}
		}
		return each(in.Element.Children...)
	case InstrFunctionExpr:
		return each(in.FunctionExpr.Captures...)
	}
	return diag.Invariantf(diag.IceUnhandledTag, "unhandled instruction kind %d", in.Kind)
}

// LValues returns every place defined by the instruction, Dst first.
func (in *Instr) LValues() []*Place {
	var lvs []*Place
	if in.Dst != nil {
		lvs = append(lvs, in.Dst)
	}
	switch in.Kind {
	case InstrStoreLocal:
		if in.StoreLocal.LValue != nil {
			lvs = append(lvs, in.StoreLocal.LValue)
		}
	case InstrDestructure:
		lvs = append(lvs, in.Destructure.Targets...)
	}
	return lvs
}
