package models

import "time"

type AlertSeverity string

const (
	AlertSeverityLow      AlertSeverity = "LOW"
	AlertSeverityModerate AlertSeverity = "MODERATE"
	AlertSeverityHigh     AlertSeverity = "HIGH"
	AlertSeverityCritical AlertSeverity = "CRITICAL"
)

// Alert is an operator-facing notification, e.g. a failed asset load.
type Alert struct {
	ID        string        `json:"id"`
	Source    string        `json:"source"` // component that raised it, e.g. "loader"
	Severity  AlertSeverity `json:"severity"`
	Message   string        `json:"message"` // what the operator sees
	Detail    string        `json:"detail"`  // underlying error text
	CreatedAt time.Time     `json:"created_at"`
}
