package env

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/unicode/norm"

	"prism/internal/diag"
	"prism/internal/hir"
	"prism/internal/source"
)

// Config is the per-compilation-unit configuration. It is decoded from TOML
// and validated before any function is analyzed; a config that fails
// validation blocks the unit instead of crashing the process.
type Config struct {
	Analysis AnalysisConfig `toml:"analysis"`
	Hooks    []HookConfig   `toml:"hooks"`
}

// AnalysisConfig gates optional inference behaviors.
type AnalysisConfig struct {
	// IgnoreThrowsForPostDominators excludes throw terminals from counting
	// as function exits when building the post-dominator tree.
	IgnoreThrowsForPostDominators bool `toml:"ignore-throws-for-post-dominators"`
	// EnableTransitiveMixedInference honors the transitive-mixed flag on
	// hook declarations when classifying their results.
	EnableTransitiveMixedInference bool `toml:"enable-transitive-mixed-inference"`
	// MaxDiagnostics caps the number of reported configuration diagnostics.
	MaxDiagnostics int `toml:"max-diagnostics"`
}

// HookConfig declares one user-defined hook-like API.
type HookConfig struct {
	Name            string `toml:"name"`
	ArgumentEffect  string `toml:"argument-effect"`
	ResultKind      string `toml:"result-kind"`
	NoAlias         bool   `toml:"no-alias"`
	TransitiveMixed bool   `toml:"transitive-mixed"`
}

func DefaultConfig() Config {
	return Config{
		Analysis: AnalysisConfig{
			IgnoreThrowsForPostDominators:  true,
			EnableTransitiveMixedInference: true,
			MaxDiagnostics:                 100,
		},
	}
}

// LoadConfig reads and validates a TOML config file. Problems are reported
// through rep; ok is false when any of them is an error.
func LoadConfig(path string, rep diag.Reporter) (Config, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		rep.Report(diag.CfgParse, diag.SevError, source.Span{File: path},
			fmt.Sprintf("cannot read config: %v", err), nil)
		return DefaultConfig(), false
	}
	return ParseConfig(data, path, rep)
}

// ParseConfig decodes and validates TOML config text.
func ParseConfig(data []byte, filename string, rep diag.Reporter) (Config, bool) {
	cfg := DefaultConfig()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		sp := source.Span{File: filename}
		var perr toml.ParseError
		if errors.As(err, &perr) {
			sp.Line = perr.Position.Line
		}
		rep.Report(diag.CfgParse, diag.SevError, sp,
			fmt.Sprintf("failed to parse TOML: %v", err), nil)
		return DefaultConfig(), false
	}

	ok := true
	for _, key := range md.Undecoded() {
		rep.Report(diag.CfgUnknownKey, diag.SevError, source.Span{File: filename},
			fmt.Sprintf("unrecognized config key %q", key), nil)
		ok = false
	}
	if !cfg.validate(filename, rep) {
		ok = false
	}
	return cfg, ok
}

func (c *Config) validate(filename string, rep diag.Reporter) bool {
	ok := true
	sp := source.Span{File: filename}

	if c.Analysis.MaxDiagnostics <= 0 {
		rep.Report(diag.CfgBadLimit, diag.SevError, sp,
			fmt.Sprintf("analysis.max-diagnostics must be positive, got %d", c.Analysis.MaxDiagnostics), nil)
		ok = false
	}

	seen := make(map[string]bool, len(c.Hooks))
	for i := range c.Hooks {
		h := &c.Hooks[i]
		// User-supplied names may arrive in any Unicode form; registry
		// lookups compare NFC.
		h.Name = norm.NFC.String(h.Name)

		if !IsHookName(h.Name) {
			rep.Report(diag.CfgBadHookName, diag.SevError, sp,
				fmt.Sprintf("hook name %q must be \"use\" or start with \"use\" followed by an uppercase letter or digit", h.Name), nil)
			ok = false
		}
		if seen[h.Name] {
			rep.Report(diag.CfgDuplicateHook, diag.SevError, sp,
				fmt.Sprintf("hook %q declared more than once", h.Name), nil)
			ok = false
		}
		seen[h.Name] = true

		if _, valid := effectFromString(h.ArgumentEffect); !valid {
			rep.Report(diag.CfgBadEffect, diag.SevError, sp,
				fmt.Sprintf("hook %q: invalid argument-effect %q", h.Name, h.ArgumentEffect), nil)
			ok = false
		}
		if _, valid := valueKindFromString(h.ResultKind); !valid {
			rep.Report(diag.CfgBadValueKind, diag.SevError, sp,
				fmt.Sprintf("hook %q: invalid result-kind %q", h.Name, h.ResultKind), nil)
			ok = false
		}
	}
	return ok
}

// effectFromString maps a config string to an operand effect. EffectUnknown
// is deliberately not accepted.
func effectFromString(s string) (hir.Effect, bool) {
	switch s {
	case "read":
		return hir.EffectRead, true
	case "freeze":
		return hir.EffectFreeze, true
	case "capture":
		return hir.EffectCapture, true
	case "store":
		return hir.EffectStore, true
	case "conditionally-mutate":
		return hir.EffectConditionallyMutate, true
	case "mutate":
		return hir.EffectMutate, true
	}
	return hir.EffectUnknown, false
}

func valueKindFromString(s string) (hir.ValueKind, bool) {
	switch s {
	case "mutable":
		return hir.ValueKindMutable, true
	case "frozen":
		return hir.ValueKindFrozen, true
	case "primitive":
		return hir.ValueKindPrimitive, true
	case "global":
		return hir.ValueKindGlobal, true
	case "context":
		return hir.ValueKindContext, true
	case "polymorphic":
		return hir.ValueKindPolymorphic, true
	}
	return hir.ValueKindMutable, false
}
