package toast

import "strings"

// Severity is the category of a notification. It selects the icon and color.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Presentation is the visual contract for a severity.
type Presentation struct {
	Icon  string // Icon semantic, e.g. "check-circle"
	Color string // Background color as a hex triplet
}

// IconClass returns the icon font class list for the presentation.
func (p Presentation) IconClass() string {
	return "fas fa-" + p.Icon
}

var presentations = map[Severity]Presentation{
	SeveritySuccess: {Icon: "check-circle", Color: "#10B981"},
	SeverityError:   {Icon: "exclamation-circle", Color: "#EF4444"},
	SeverityWarning: {Icon: "exclamation-triangle", Color: "#F59E0B"},
	SeverityInfo:    {Icon: "info-circle", Color: "#1FB8CD"},
}

// Severities returns all known severities.
func Severities() []Severity {
	return []Severity{SeveritySuccess, SeverityError, SeverityWarning, SeverityInfo}
}

// Valid reports whether s is one of the known severities.
func (s Severity) Valid() bool {
	_, ok := presentations[s]
	return ok
}

// Normalize returns s, or SeverityInfo when s is not a known severity.
func (s Severity) Normalize() Severity {
	if s.Valid() {
		return s
	}
	return SeverityInfo
}

// Presentation returns the icon and color for s. Unknown severities use info's.
func (s Severity) Presentation() Presentation {
	return presentations[s.Normalize()]
}

// ParseSeverity converts a user-supplied name to a Severity.
// Matching is case-insensitive; anything unrecognized becomes SeverityInfo.
func ParseSeverity(name string) Severity {
	return Severity(strings.ToLower(strings.TrimSpace(name))).Normalize()
}
