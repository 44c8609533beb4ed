// Package severity provides the severity levels attached to validation issues.
//
// Levels are ordered from least to most severe: Info < Warning < Error.
package severity

// Severity indicates how serious a validation issue is.
type Severity int

const (
	// SeverityError indicates a problem that makes the document invalid.
	SeverityError Severity = iota

	// SeverityWarning indicates a problem that does not invalidate the
	// document but that consumers may trip over, such as a placeholder path.
	SeverityWarning

	// SeverityInfo indicates an informational notice.
	SeverityInfo
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Symbol returns the single-rune marker used in CLI output.
func (s Severity) Symbol() string {
	switch s {
	case SeverityError:
		return "✗"
	case SeverityWarning:
		return "⚠"
	case SeverityInfo:
		return "ℹ"
	default:
		return "?"
	}
}

// AtLeast reports whether s is as severe as other.
func (s Severity) AtLeast(other Severity) bool {
	return s.rank() >= other.rank()
}

func (s Severity) rank() int {
	switch s {
	case SeverityInfo:
		return 0
	case SeverityWarning:
		return 1
	case SeverityError:
		return 2
	default:
		return -1
	}
}
