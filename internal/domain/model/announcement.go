package model

import "time"

// Severity controls how an announcement is rendered.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
	SeveritySuccess Severity = "success"
)

// Valid reports whether s is a known severity.
func (s Severity) Valid() bool {
	switch s {
	case SeverityInfo, SeverityWarning, SeverityError, SeveritySuccess:
		return true
	}
	return false
}

// Announcement is an admin-authored broadcast message.
type Announcement struct {
	ID        int64
	Title     string
	Content   string
	Severity  Severity
	Active    bool
	AuthorID  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
