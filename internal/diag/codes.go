package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Configuration diagnostics, raised while constructing an Environment.
	CfgInfo              Code = 1000
	CfgParse             Code = 1001
	CfgUnknownKey        Code = 1002
	CfgBadHookName       Code = 1003
	CfgBadEffect         Code = 1004
	CfgBadValueKind      Code = 1005
	CfgDuplicateHook     Code = 1006
	CfgHookShadowsGlobal Code = 1007
	CfgBadLimit          Code = 1008

	// Internal invariant violations. These indicate a bug in an upstream
	// pass or in the analysis itself, never a user error.
	IceInfo            Code = 9000
	IceUnknownEffect   Code = 9001
	IceUnhandledTag    Code = 9002
	IceMissingShape    Code = 9003
	IceMissingBlock    Code = 9004
	IceDuplicateGlobal Code = 9005
	IceIDOverflow      Code = 9006
)

func (c Code) String() string {
	return fmt.Sprintf("PRM%04d", uint16(c))
}

// IsInternal reports whether the code denotes a compiler-internal error
// rather than a problem with user input.
func (c Code) IsInternal() bool {
	return c >= IceInfo
}
