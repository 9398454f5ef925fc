package models

import (
	"time"
)

// IncidentType is the kind of incident a resident reports
type IncidentType string

const (
	IncidentFire  IncidentType = "Fire"
	IncidentFlood IncidentType = "Flood"
)

// ReportStatus is the lifecycle state of an incident report
type ReportStatus string

const (
	ReportPending    ReportStatus = "Pending"
	ReportInProgress ReportStatus = "In Progress"
	ReportCompleted  ReportStatus = "Completed"
)

func (s ReportStatus) rank() int {
	switch s {
	case ReportPending:
		return 0
	case ReportInProgress:
		return 1
	case ReportCompleted:
		return 2
	}
	return -1
}

// CanTransitionTo reports whether moving from s to next keeps the lifecycle monotonic.
// Staying in the same state is allowed.
func (s ReportStatus) CanTransitionTo(next ReportStatus) bool {
	from, to := s.rank(), next.rank()
	if from < 0 || to < 0 {
		return false
	}
	return to >= from
}

// IncidentReport is a citizen-submitted incident
type IncidentReport struct {
	ID            int64        `json:"id"`
	ResidentEmail string       `json:"resident_email"`
	ResidentName  string       `json:"resident_name"`
	Barangay      string       `json:"barangay"`
	IncidentType  IncidentType `json:"incident_type"`
	Description   string       `json:"description"`
	LocationText  string       `json:"location_text"`
	Latitude      *float64     `json:"latitude,omitempty"`
	Longitude     *float64     `json:"longitude,omitempty"`
	Images        []string     `json:"images"`
	Status        ReportStatus `json:"status"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// HasCoordinates is true when both latitude and longitude are known
func (r *IncidentReport) HasCoordinates() bool {
	return r.Latitude != nil && r.Longitude != nil
}

// ReportSummary holds the counters shown on an official's dashboard
type ReportSummary struct {
	TotalReports      int `json:"totalReports"`
	FireReports       int `json:"fireReports"`
	FloodReports      int `json:"floodReports"`
	PendingReports    int `json:"pendingReports"`
	InProgressReports int `json:"inProgressReports"`
	ResolvedReports   int `json:"resolvedReports"`
}
