package env

import (
	"prism/internal/hir"
)

// HookKind classifies a callable for the analysis.
type HookKind uint8

const (
	// HookNone is a regular function.
	HookNone HookKind = iota
	// HookBuiltIn is one of the framework's own hooks.
	HookBuiltIn
	// HookCustom is a user-declared or name-convention hook.
	HookCustom
)

func (k HookKind) String() string {
	switch k {
	case HookNone:
		return "none"
	case HookBuiltIn:
		return "built-in"
	case HookCustom:
		return "custom"
	}
	return "invalid"
}

// FunctionSignature describes a callable well enough for reactivity and
// aliasing decisions.
type FunctionSignature struct {
	Hook HookKind
	// ArgEffect is the effect the callee applies to each argument.
	ArgEffect hir.Effect
	// ResultKind classifies the returned value.
	ResultKind hir.ValueKind
	// NoAlias means arguments cannot alias each other or the result.
	NoAlias bool
	// TransitiveMixed means the result is plain JSON-like data, so member
	// and array access on it can be analyzed precisely.
	TransitiveMixed bool
}

// Shape describes a registered object or function layout.
type Shape struct {
	Properties map[string]hir.Type
	Signature  *FunctionSignature
}

// Built-in shape ids. The shape registry is complete by construction: every
// id referenced from a built-in global or property type is registered below.
const (
	ShapeUseState  hir.ShapeID = "BuiltInUseState"
	ShapeUseRef    hir.ShapeID = "BuiltInUseRef"
	ShapeUseEffect hir.ShapeID = "BuiltInUseEffect"
	ShapeUseMemo   hir.ShapeID = "BuiltInUseMemo"
	ShapeMath      hir.ShapeID = "BuiltInMath"
	ShapeMathFn    hir.ShapeID = "BuiltInMathFn"
	ShapeConsole   hir.ShapeID = "BuiltInConsole"
	ShapeLogFn     hir.ShapeID = "BuiltInLogFn"
	ShapeArray     hir.ShapeID = "BuiltInArray"
	ShapeArrayPush hir.ShapeID = "BuiltInArrayPush"
	ShapeArrayAt   hir.ShapeID = "BuiltInArrayAt"
)

func builtinShapes() map[hir.ShapeID]*Shape {
	fnType := func(shape hir.ShapeID) hir.Type {
		return hir.Type{Kind: hir.TypeFunction, Shape: shape}
	}
	prim := hir.Type{Kind: hir.TypePrimitive}

	return map[hir.ShapeID]*Shape{
		ShapeUseState: {
			Signature: &FunctionSignature{
				Hook:       HookBuiltIn,
				ArgEffect:  hir.EffectFreeze,
				ResultKind: hir.ValueKindFrozen,
				NoAlias:    true,
			},
		},
		ShapeUseRef: {
			Signature: &FunctionSignature{
				Hook:       HookBuiltIn,
				ArgEffect:  hir.EffectCapture,
				ResultKind: hir.ValueKindMutable,
			},
		},
		ShapeUseEffect: {
			Signature: &FunctionSignature{
				Hook:       HookBuiltIn,
				ArgEffect:  hir.EffectFreeze,
				ResultKind: hir.ValueKindPrimitive,
			},
		},
		ShapeUseMemo: {
			Signature: &FunctionSignature{
				Hook:       HookBuiltIn,
				ArgEffect:  hir.EffectFreeze,
				ResultKind: hir.ValueKindFrozen,
				NoAlias:    true,
			},
		},
		ShapeMath: {
			Properties: map[string]hir.Type{
				"PI":    prim,
				"max":   fnType(ShapeMathFn),
				"min":   fnType(ShapeMathFn),
				"floor": fnType(ShapeMathFn),
			},
		},
		ShapeMathFn: {
			Signature: &FunctionSignature{
				ArgEffect:  hir.EffectRead,
				ResultKind: hir.ValueKindPrimitive,
				NoAlias:    true,
			},
		},
		ShapeConsole: {
			Properties: map[string]hir.Type{
				"log":   fnType(ShapeLogFn),
				"warn":  fnType(ShapeLogFn),
				"error": fnType(ShapeLogFn),
			},
		},
		ShapeLogFn: {
			Signature: &FunctionSignature{
				ArgEffect:  hir.EffectRead,
				ResultKind: hir.ValueKindPrimitive,
			},
		},
		ShapeArray: {
			Properties: map[string]hir.Type{
				"length": prim,
				"push":   fnType(ShapeArrayPush),
				"at":     fnType(ShapeArrayAt),
			},
		},
		ShapeArrayPush: {
			Signature: &FunctionSignature{
				ArgEffect:  hir.EffectCapture,
				ResultKind: hir.ValueKindPrimitive,
			},
		},
		ShapeArrayAt: {
			Signature: &FunctionSignature{
				ArgEffect:  hir.EffectRead,
				ResultKind: hir.ValueKindPolymorphic,
			},
		},
	}
}
