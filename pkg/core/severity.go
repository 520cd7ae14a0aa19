package core

import (
	"fmt"
	"strings"
)

// Severity ranks diagnostics. Lower values are more severe, so a threshold
// t keeps every diagnostic with Severity <= t.
type Severity int

// Severity levels, most severe first.
const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
	SeverityHint
)

var severityNames = [...]string{
	SeverityError:   "error",
	SeverityWarning: "warning",
	SeverityInfo:    "info",
	SeverityHint:    "hint",
}

func (s Severity) String() string {
	if s >= 0 && int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "unknown"
}

// ParseSeverity reads a severity name in any case. Unknown names report
// false together with SeverityWarning.
func ParseSeverity(name string) (Severity, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range severityNames {
		if n == name {
			return Severity(i), true
		}
	}
	return SeverityWarning, false
}

// MarshalText writes the severity name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText accepts the names produced by MarshalText.
func (s *Severity) UnmarshalText(text []byte) error {
	sev, ok := ParseSeverity(string(text))
	if !ok {
		return fmt.Errorf("invalid severity %q", text)
	}
	*s = sev
	return nil
}
