package diag

// Severity ranks how strongly a diagnostic blocks the pipeline. All
// severities belong to the configuration side of the error taxonomy:
// internal invariant violations never become diagnostics, they travel as
// InvariantError values and abort the analysis outright.
type Severity uint8

const (
	// SevInfo carries advice; it never blocks anything.
	SevInfo Severity = iota
	// SevWarning flags a suspicious configuration that is still usable.
	SevWarning
	// SevError blocks the compilation unit whose Environment reported it.
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "INVALID"
}
