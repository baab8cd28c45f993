package models

import "strings"

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Severities lists the recognized severities from most to least severe.
var Severities = []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}

// ParseSeverity matches s case-sensitively against the recognized severities.
func ParseSeverity(s string) (Severity, bool) {
	for _, severity := range Severities {
		if string(severity) == s {
			return severity, true
		}
	}
	return "", false
}

func (s Severity) String() string {
	return string(s)
}

// Title returns the display name, e.g. "Critical".
func (s Severity) Title() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}
