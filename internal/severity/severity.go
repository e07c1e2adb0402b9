// Package severity provides the severity levels attached to expansion
// notices.
package severity

import "fmt"

// Severity represents how serious a notice is.
type Severity int

const (
	// SeverityInfo marks a processing choice worth knowing about.
	SeverityInfo Severity = iota
	// SeverityWarning marks input that was dropped or ignored.
	SeverityWarning
	// SeverityError marks input that made the result incomplete.
	SeverityError
)

// String returns the lower-case name of the level.
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

// MarshalText implements encoding.TextMarshaler so severities appear by
// name in JSON output.
func (s Severity) MarshalText() ([]byte, error) {
	if s < SeverityInfo || s > SeverityError {
		return nil, fmt.Errorf("severity: invalid value %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "info":
		*s = SeverityInfo
	case "warning":
		*s = SeverityWarning
	case "error":
		*s = SeverityError
	default:
		return fmt.Errorf("severity: unknown level %q", string(text))
	}
	return nil
}
