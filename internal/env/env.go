// Package env holds the per-compilation-unit context the analysis consults:
// validated configuration, the global registry and the shape registry.
//
// An Environment is built once, before any function is analyzed, and is
// immutable afterwards; concurrent analyses of different functions may share
// one snapshot without synchronization.
package env

import (
	"fmt"
	"regexp"

	"prism/internal/diag"
	"prism/internal/hir"
	"prism/internal/source"
)

// An identifier is hook-like if it is exactly "use" or "use" followed by an
// uppercase letter or digit.
var hookNameRe = regexp.MustCompile(`^use[A-Z0-9]`)

// IsHookName reports whether a name follows the hook naming convention.
func IsHookName(name string) bool {
	return name == "use" || hookNameRe.MatchString(name)
}

// unknownHookSignature is the conservative signature assumed for
// globally-unresolved names that follow the hook naming convention.
var unknownHookSignature = FunctionSignature{
	Hook:       HookCustom,
	ArgEffect:  hir.EffectConditionallyMutate,
	ResultKind: hir.ValueKindMutable,
}

// Environment is the read-only registry snapshot for one compilation unit.
type Environment struct {
	Config  Config
	globals map[string]*GlobalDecl
	shapes  map[hir.ShapeID]*Shape
}

// New builds an Environment from a validated config, seeding the global
// registry with built-ins and the config's custom hooks. Problems with the
// hook declarations are reported through rep; ok is false when construction
// failed.
func New(cfg Config, rep diag.Reporter) (*Environment, bool) {
	e := &Environment{
		Config:  cfg,
		shapes:  builtinShapes(),
		globals: nil,
	}
	e.globals = builtinGlobals(e.shapes)

	ok := true
	for _, h := range cfg.Hooks {
		if _, exists := e.globals[h.Name]; exists {
			rep.Report(diag.CfgHookShadowsGlobal, diag.SevError, source.Span{},
				fmt.Sprintf("hook %q is already registered and cannot be shadowed", h.Name),
				[]diag.Note{{Msg: "built-in hooks keep their registered signatures; rename the custom hook"}})
			ok = false
			continue
		}
		eff, validEff := effectFromString(h.ArgumentEffect)
		kind, validKind := valueKindFromString(h.ResultKind)
		if !validEff || !validKind {
			// Reported during config validation; skip registration.
			ok = false
			continue
		}
		e.register(&GlobalDecl{
			Name: h.Name,
			Kind: hir.ValueKindGlobal,
			Signature: &FunctionSignature{
				Hook:            HookCustom,
				ArgEffect:       eff,
				ResultKind:      kind,
				NoAlias:         h.NoAlias,
				TransitiveMixed: h.TransitiveMixed && cfg.Analysis.EnableTransitiveMixedInference,
			},
		})
	}
	if !ok {
		return nil, false
	}
	return e, true
}

// register inserts a declaration into the global registry. Shadowing an
// existing name is a construction-time invariant violation; callers validate
// before registering.
func (e *Environment) register(decl *GlobalDecl) {
	if _, exists := e.globals[decl.Name]; exists {
		panic(diag.Invariantf(diag.IceDuplicateGlobal, "global %q registered twice", decl.Name))
	}
	e.globals[decl.Name] = decl
}

// GetGlobalDeclaration returns the descriptor for a global name, or nil.
func (e *Environment) GetGlobalDeclaration(name string) *GlobalDecl {
	return e.globals[name]
}

// GetPropertyType resolves the type of receiver.property through the shape
// registry. Unknown receivers and unknown properties resolve to a poly type.
func (e *Environment) GetPropertyType(receiver hir.Type, property string) hir.Type {
	if receiver.Shape == hir.NoShapeID {
		return hir.Type{Kind: hir.TypePoly}
	}
	shape := e.mustShape(receiver.Shape)
	if ty, ok := shape.Properties[property]; ok {
		return ty
	}
	return hir.Type{Kind: hir.TypePoly}
}

// GetFunctionSignature returns the signature registered for a function type,
// or nil when the type carries no shape.
func (e *Environment) GetFunctionSignature(ty hir.Type) *FunctionSignature {
	if ty.Kind != hir.TypeFunction || ty.Shape == hir.NoShapeID {
		return nil
	}
	return e.mustShape(ty.Shape).Signature
}

// GetHookKind classifies the callable bound to an identifier. Resolution
// order: global registry by name, then the identifier's type shape, then the
// naming convention for globally-unresolved names.
func (e *Environment) GetHookKind(id *hir.Identifier) HookKind {
	if id == nil {
		return HookNone
	}
	if id.Name != "" {
		if g := e.globals[id.Name]; g != nil {
			if g.Signature != nil {
				return g.Signature.Hook
			}
			return HookNone
		}
	}
	if sig := e.GetFunctionSignature(id.Type); sig != nil {
		return sig.Hook
	}
	if id.Name != "" && IsHookName(id.Name) {
		return HookCustom
	}
	return HookNone
}

// HookSignature returns the signature the analysis should assume for an
// identifier that GetHookKind classified as a hook. Unresolved hooks get
// conservative mutating defaults.
func (e *Environment) HookSignature(id *hir.Identifier) *FunctionSignature {
	if id == nil {
		return nil
	}
	if id.Name != "" {
		if g := e.globals[id.Name]; g != nil && g.Signature != nil && g.Signature.Hook != HookNone {
			return g.Signature
		}
	}
	if sig := e.GetFunctionSignature(id.Type); sig != nil && sig.Hook != HookNone {
		return sig
	}
	if id.Name != "" && IsHookName(id.Name) {
		sig := unknownHookSignature
		return &sig
	}
	return nil
}

// Hooks returns the names of all registered hook-like globals, for
// inspection tools.
func (e *Environment) Hooks() []*GlobalDecl {
	var hooks []*GlobalDecl
	for _, g := range e.globals {
		if g.Signature != nil && g.Signature.Hook != HookNone {
			hooks = append(hooks, g)
		}
	}
	return hooks
}

func (e *Environment) mustShape(id hir.ShapeID) *Shape {
	shape := e.shapes[id]
	if shape == nil {
		panic(diag.Invariantf(diag.IceMissingShape, "shape %q is declared but not registered", id))
	}
	return shape
}
