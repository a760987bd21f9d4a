package hir

// ValueKind classifies a computed value for the registries. The analysis
// reads these tags but never changes them.
type ValueKind uint8

const (
	// ValueKindMutable is a value that may be mutated after creation.
	ValueKindMutable ValueKind = iota
	// ValueKindFrozen is a deeply immutable value.
	ValueKindFrozen
	// ValueKindPrimitive is a primitive (number, string, boolean, nil).
	ValueKindPrimitive
	// ValueKindGlobal is a module- or process-scoped binding.
	ValueKindGlobal
	// ValueKindContext is a value read from ambient component context.
	ValueKindContext
	// ValueKindPolymorphic is a value of statically unknown shape.
	ValueKindPolymorphic
)

func (k ValueKind) String() string {
	switch k {
	case ValueKindMutable:
		return "mutable"
	case ValueKindFrozen:
		return "frozen"
	case ValueKindPrimitive:
		return "primitive"
	case ValueKindGlobal:
		return "global"
	case ValueKindContext:
		return "context"
	case ValueKindPolymorphic:
		return "polymorphic"
	}
	return "invalid"
}

// ShapeID names an entry in the shape registry. The empty string means the
// value has no known shape.
type ShapeID string

const NoShapeID ShapeID = ""

// TypeKind distinguishes the coarse type categories the registries care
// about.
type TypeKind uint8

const (
	// TypePoly is a type of unknown structure.
	TypePoly TypeKind = iota
	// TypePrimitive is a primitive type.
	TypePrimitive
	// TypeObject is an object type, optionally with a registered shape.
	TypeObject
	// TypeFunction is a callable type, optionally with a registered shape
	// carrying its signature.
	TypeFunction
)

// Type is the minimal type information attached to identifiers: enough to
// resolve member accesses and callee signatures through the shape registry.
// A call result's type lives on the identifier holding the result, so
// function types carry no separate return type.
type Type struct {
	Kind  TypeKind
	Shape ShapeID
}
