package env

import (
	"prism/internal/hir"
)

// GlobalDecl describes one name visible in global scope: its value kind, an
// optional shape for member resolution, and an optional callable signature.
type GlobalDecl struct {
	Name      string
	Kind      hir.ValueKind
	Shape     hir.ShapeID
	Signature *FunctionSignature
}

func builtinGlobals(shapes map[hir.ShapeID]*Shape) map[string]*GlobalDecl {
	globals := make(map[string]*GlobalDecl)

	hook := func(name string, shape hir.ShapeID) {
		globals[name] = &GlobalDecl{
			Name:      name,
			Kind:      hir.ValueKindGlobal,
			Signature: shapes[shape].Signature,
		}
	}
	hook("useState", ShapeUseState)
	hook("useReducer", ShapeUseState)
	hook("useRef", ShapeUseRef)
	hook("useEffect", ShapeUseEffect)
	hook("useLayoutEffect", ShapeUseEffect)
	hook("useMemo", ShapeUseMemo)
	hook("useCallback", ShapeUseMemo)
	hook("useContext", ShapeUseMemo)

	object := func(name string, shape hir.ShapeID) {
		globals[name] = &GlobalDecl{
			Name:  name,
			Kind:  hir.ValueKindGlobal,
			Shape: shape,
		}
	}
	object("Math", ShapeMath)
	object("console", ShapeConsole)

	return globals
}
