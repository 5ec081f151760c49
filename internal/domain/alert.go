package domain

import (
	"time"

	"gopkg.in/guregu/null.v4"
)

type AlertType string

const (
	AlertInfo     AlertType = "info"
	AlertWarning  AlertType = "warning"
	AlertCritical AlertType = "critical"
)

// Alert is an append-only log entry. Ward is "All" for facility-wide alerts.
type Alert struct {
	ID        int       `json:"id"`
	Type      AlertType `json:"type"`
	Message   string    `json:"message"`
	Ward      string    `json:"ward"`
	BedID     null.Int  `json:"bed_id"`
	Priority  int       `json:"priority"`
	Timestamp time.Time `json:"timestamp"`
}
