package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DispatchStatus is the state of a single service notification
type DispatchStatus string

const (
	DispatchDispatched DispatchStatus = "Dispatched"
	DispatchCompleted  DispatchStatus = "Completed"
)

// ServiceDispatchNotification records one dispatch attempt of a report to a service.
// ReportID is a weak reference; the report is not owned by the notification.
type ServiceDispatchNotification struct {
	ID           uuid.UUID      `json:"id"`
	ServiceID    int64          `json:"service_id"`
	ReportID     int64          `json:"report_id"`
	IncidentType IncidentType   `json:"incident_type"`
	Barangay     string         `json:"barangay"`
	LocationText string         `json:"location_text"`
	Status       DispatchStatus `json:"status"`
	SMSSent      bool           `json:"sms_sent"`
	SMSError     *string        `json:"sms_error,omitempty"`
	DedupeKey    *string        `json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// DedupeKeyFor is the upsert key of the (report, service) pair
func DedupeKeyFor(reportID, serviceID int64) string {
	return fmt.Sprintf("%d:%d", reportID, serviceID)
}
