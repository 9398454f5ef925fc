package models

import (
	"strings"
	"time"
)

// ServiceType is the derived classification of a response service
type ServiceType string

const (
	ServiceTypeFire   ServiceType = "Fire"
	ServiceTypeRescue ServiceType = "Rescue"
)

// ServiceStatus is the display status derived from the active/deleted flags
type ServiceStatus string

const (
	ServiceActive   ServiceStatus = "Active"
	ServiceInactive ServiceStatus = "Inactive"
	ServicePending  ServiceStatus = "Pending"
)

var (
	fireKeywords   = []string{"fire", "bfp"}
	rescueKeywords = []string{"rescue", "flood", "ambulance", "evac"}
)

// ResponseService is a response team or unit that receives dispatch alerts
type ResponseService struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	ContactNumber string     `json:"contact_number"`
	Location      string     `json:"location"`
	Description   string     `json:"description"`
	IsActive      bool       `json:"is_active"`
	IsDeleted     bool       `json:"is_deleted"`
	AddedOn       time.Time  `json:"added_on"`
	UpdatedOn     *time.Time `json:"updated_on,omitempty"`
}

// Dispatchable is true for services that may receive alerts
func (s *ResponseService) Dispatchable() bool {
	return s.IsActive && !s.IsDeleted
}

// Status derives the display status from the stored flags
func (s *ResponseService) Status() ServiceStatus {
	if s.IsDeleted {
		return ServiceInactive
	}
	if s.IsActive {
		return ServiceActive
	}
	return ServicePending
}

// ClassifyService derives the service type from its free-text name and description.
// Name keywords win over description keywords; anything unrecognised is Rescue.
func ClassifyService(name, description string) ServiceType {
	if t, ok := classifyText(name); ok {
		return t
	}
	if t, ok := classifyText(description); ok {
		return t
	}
	return ServiceTypeRescue
}

func classifyText(text string) (ServiceType, bool) {
	lower := strings.ToLower(text)
	if containsAny(lower, fireKeywords) {
		return ServiceTypeFire, true
	}
	if containsAny(lower, rescueKeywords) {
		return ServiceTypeRescue, true
	}
	return "", false
}

// KeywordsFor returns the keywords a service's text must contain to handle the incident type
func KeywordsFor(t IncidentType) []string {
	switch t {
	case IncidentFire:
		return fireKeywords
	case IncidentFlood:
		return rescueKeywords
	}
	return nil
}

// Handles reports whether the service's derived type, description or name carries
// one of the keywords for the incident type.
func (s *ResponseService) Handles(t IncidentType) bool {
	keywords := KeywordsFor(t)
	if len(keywords) == 0 {
		return false
	}
	haystack := strings.ToLower(strings.Join([]string{
		string(ClassifyService(s.Name, s.Description)),
		s.Description,
		s.Name,
	}, " "))
	return containsAny(haystack, keywords)
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
