package source

import (
	"fmt"
)

// Span points at a location in a configuration file.
// Line and Col are 1-based; zero means unknown.
type Span struct {
	File string
	Line int
	Col  int
}

func (s Span) IsZero() bool {
	return s.File == "" && s.Line == 0 && s.Col == 0
}

func (s Span) String() string {
	switch {
	case s.IsZero():
		return "<unknown>"
	case s.Line == 0:
		return s.File
	case s.Col == 0:
		return fmt.Sprintf("%s:%d", s.File, s.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Col)
	}
}
