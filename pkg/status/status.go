package status

// Severity classifies a status message for display purposes.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Status is the single current user-facing operation outcome. Exactly one
// Status is current per editing session; publishing a new one replaces the
// previous.
type Status struct {
	Severity Severity
	Message  string
}

// Info builds an informational status.
func Info(message string) Status {
	return Status{Severity: SeverityInfo, Message: message}
}

// Warning builds a warning status.
func Warning(message string) Status {
	return Status{Severity: SeverityWarning, Message: message}
}

// Error builds an error status.
func Error(message string) Status {
	return Status{Severity: SeverityError, Message: message}
}

// IsZero reports whether the status carries no message.
func (s Status) IsZero() bool {
	return s.Severity == "" && s.Message == ""
}
