package v1

import (
	"time"

	"github.com/google/uuid"
)

// DispatchRequest is the optional body of a single-report dispatch
// @Description Optional dispatch options
type DispatchRequest struct {
	Force bool `json:"force"`
}

type reportURI struct {
	ID int64 `uri:"id" validate:"required,gt=0"`
}

type dispatchURI struct {
	ID string `uri:"id" validate:"required,uuid"`
}

// DispatchResponse is the outcome of dispatching one report
// @Description Outcome of dispatching one report
type DispatchResponse struct {
	Status                string   `json:"status"`
	ReportCountAtLocation int      `json:"reportCountAtLocation"`
	ServicesMatched       int      `json:"servicesMatched"`
	NotificationsCreated  int      `json:"notificationsCreated"`
	SMSSent               int      `json:"smsSent"`
	SMSFailed             int      `json:"smsFailed"`
	AlreadyNotified       int      `json:"alreadyNotified"`
	Errors                []string `json:"errors"`
}

// BulkDispatchResponse aggregates the dispatch of every pending report
// @Description Aggregated outcome of dispatching all pending reports
type BulkDispatchResponse struct {
	ReportsDispatched    int      `json:"reportsDispatched"`
	ServicesMatched      int      `json:"servicesMatched"`
	NotificationsCreated int      `json:"notificationsCreated"`
	SMSSent              int      `json:"smsSent"`
	SMSFailed            int      `json:"smsFailed"`
	AlreadyNotified      int      `json:"alreadyNotified"`
	Errors               []string `json:"errors"`
}

// ClusterResponse is one marker on the incident map
// @Description Group of open reports at the same place
type ClusterResponse struct {
	ID          int64    `json:"id"`
	Type        string   `json:"type"`
	ReportCount int      `json:"reportCount"`
	Latitude    *float64 `json:"lat"`
	Longitude   *float64 `json:"lng"`
	Location    string   `json:"location"`
	ReportIDs   []int64  `json:"reportIds"`
	Urgency     string   `json:"urgency"`
}

// ReportResponse is an incident report as shown to officials
// @Description Incident report
type ReportResponse struct {
	ID            int64     `json:"id"`
	ResidentName  string    `json:"resident_name"`
	ResidentEmail string    `json:"resident_email"`
	Barangay      string    `json:"barangay"`
	IncidentType  string    `json:"incident_type"`
	Description   string    `json:"description"`
	LocationText  string    `json:"location_text"`
	Latitude      *float64  `json:"latitude,omitempty"`
	Longitude     *float64  `json:"longitude,omitempty"`
	Images        []string  `json:"images"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ServiceResponse is a response service with its derived type and status
// @Description Response service
type ServiceResponse struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	ContactNumber string     `json:"contact_number"`
	Location      string     `json:"location"`
	Description   string     `json:"description"`
	Type          string     `json:"type"`
	Status        string     `json:"status"`
	AddedOn       time.Time  `json:"added_on"`
	UpdatedOn     *time.Time `json:"updated_on,omitempty"`
}

// NotificationResponse is one dispatch notification record
// @Description Dispatch notification
type NotificationResponse struct {
	ID           uuid.UUID `json:"id"`
	ServiceID    int64     `json:"service_id"`
	ReportID     int64     `json:"report_id"`
	IncidentType string    `json:"incident_type"`
	Barangay     string    `json:"barangay"`
	LocationText string    `json:"location_text"`
	Status       string    `json:"status"`
	SMSSent      bool      `json:"sms_sent"`
	SMSError     *string   `json:"sms_error,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DashboardResponse holds the report counters of a jurisdiction
// @Description Dashboard counters
type DashboardResponse struct {
	TotalReports      int `json:"totalReports"`
	FireReports       int `json:"fireReports"`
	FloodReports      int `json:"floodReports"`
	PendingReports    int `json:"pendingReports"`
	InProgressReports int `json:"inProgressReports"`
	ResolvedReports   int `json:"resolvedReports"`
}
