package models

// MaxSummaryErrors bounds the error list returned to callers
const MaxSummaryErrors = 10

// UrgencyLevel is the severity label derived from cluster size
type UrgencyLevel string

const (
	UrgencyLow      UrgencyLevel = "Low"
	UrgencyModerate UrgencyLevel = "Moderate"
	UrgencyHigh     UrgencyLevel = "High"
	UrgencyCritical UrgencyLevel = "Critical"
)

// DispatchSummary aggregates the outcome of one or more dispatch calls
type DispatchSummary struct {
	ServicesMatched      int      `json:"servicesMatched"`
	NotificationsCreated int      `json:"notificationsCreated"`
	SMSSent              int      `json:"smsSent"`
	SMSFailed            int      `json:"smsFailed"`
	AlreadyNotified      int      `json:"alreadyNotified"`
	Errors               []string `json:"errors"`
}

// AddError appends an error while keeping the list bounded
func (s *DispatchSummary) AddError(msg string) {
	if len(s.Errors) < MaxSummaryErrors {
		s.Errors = append(s.Errors, msg)
	}
}

// Merge adds the counters and errors of other into s
func (s *DispatchSummary) Merge(other DispatchSummary) {
	s.ServicesMatched += other.ServicesMatched
	s.NotificationsCreated += other.NotificationsCreated
	s.SMSSent += other.SMSSent
	s.SMSFailed += other.SMSFailed
	s.AlreadyNotified += other.AlreadyNotified
	for _, e := range other.Errors {
		s.AddError(e)
	}
}

// Cluster groups open reports that refer to the same place and incident type
type Cluster struct {
	ID          int64        `json:"id"`
	Type        IncidentType `json:"type"`
	ReportCount int          `json:"reportCount"`
	Latitude    *float64     `json:"lat"`
	Longitude   *float64     `json:"lng"`
	Location    string       `json:"location"`
	ReportIDs   []int64      `json:"reportIds"`
	Urgency     UrgencyLevel `json:"urgency"`
}

// DispatchOptions tunes a single dispatch call.
// A positive ClusterSize skips the similar-report count.
type DispatchOptions struct {
	ClusterSize int
	Force       bool
}

// DispatchResult is the outcome of dispatching one report
type DispatchResult struct {
	Status                ReportStatus
	ReportCountAtLocation int
	Summary               DispatchSummary
}

// BulkDispatchResult is the outcome of dispatching every pending report in a jurisdiction
type BulkDispatchResult struct {
	ReportsDispatched int
	Summary           DispatchSummary
}
