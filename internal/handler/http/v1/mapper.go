package v1

import "github.com/smartbash/brgy_dispatch/internal/models"

func nonNilErrors(errs []string) []string {
	if errs == nil {
		return []string{}
	}
	return errs
}

func ModelToDispatchResponse(r *models.DispatchResult) DispatchResponse {
	return DispatchResponse{
		Status:                string(r.Status),
		ReportCountAtLocation: r.ReportCountAtLocation,
		ServicesMatched:       r.Summary.ServicesMatched,
		NotificationsCreated:  r.Summary.NotificationsCreated,
		SMSSent:               r.Summary.SMSSent,
		SMSFailed:             r.Summary.SMSFailed,
		AlreadyNotified:       r.Summary.AlreadyNotified,
		Errors:                nonNilErrors(r.Summary.Errors),
	}
}

func ModelToBulkDispatchResponse(r *models.BulkDispatchResult) BulkDispatchResponse {
	return BulkDispatchResponse{
		ReportsDispatched:    r.ReportsDispatched,
		ServicesMatched:      r.Summary.ServicesMatched,
		NotificationsCreated: r.Summary.NotificationsCreated,
		SMSSent:              r.Summary.SMSSent,
		SMSFailed:            r.Summary.SMSFailed,
		AlreadyNotified:      r.Summary.AlreadyNotified,
		Errors:               nonNilErrors(r.Summary.Errors),
	}
}

func ModelsToClusterResponses(clusters []models.Cluster) []ClusterResponse {
	out := make([]ClusterResponse, 0, len(clusters))
	for _, c := range clusters {
		out = append(out, ClusterResponse{
			ID:          c.ID,
			Type:        string(c.Type),
			ReportCount: c.ReportCount,
			Latitude:    c.Latitude,
			Longitude:   c.Longitude,
			Location:    c.Location,
			ReportIDs:   c.ReportIDs,
			Urgency:     string(c.Urgency),
		})
	}
	return out
}

func ModelToReportResponse(r *models.IncidentReport) ReportResponse {
	images := r.Images
	if images == nil {
		images = []string{}
	}
	return ReportResponse{
		ID:            r.ID,
		ResidentName:  r.ResidentName,
		ResidentEmail: r.ResidentEmail,
		Barangay:      r.Barangay,
		IncidentType:  string(r.IncidentType),
		Description:   r.Description,
		LocationText:  r.LocationText,
		Latitude:      r.Latitude,
		Longitude:     r.Longitude,
		Images:        images,
		Status:        string(r.Status),
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func ModelsToReportResponses(reports []*models.IncidentReport) []ReportResponse {
	out := make([]ReportResponse, 0, len(reports))
	for _, r := range reports {
		out = append(out, ModelToReportResponse(r))
	}
	return out
}

func ModelsToServiceResponses(services []*models.ResponseService) []ServiceResponse {
	out := make([]ServiceResponse, 0, len(services))
	for _, s := range services {
		out = append(out, ServiceResponse{
			ID:            s.ID,
			Name:          s.Name,
			Email:         s.Email,
			ContactNumber: s.ContactNumber,
			Location:      s.Location,
			Description:   s.Description,
			Type:          string(models.ClassifyService(s.Name, s.Description)),
			Status:        string(s.Status()),
			AddedOn:       s.AddedOn,
			UpdatedOn:     s.UpdatedOn,
		})
	}
	return out
}

func ModelToNotificationResponse(n *models.ServiceDispatchNotification) NotificationResponse {
	return NotificationResponse{
		ID:           n.ID,
		ServiceID:    n.ServiceID,
		ReportID:     n.ReportID,
		IncidentType: string(n.IncidentType),
		Barangay:     n.Barangay,
		LocationText: n.LocationText,
		Status:       string(n.Status),
		SMSSent:      n.SMSSent,
		SMSError:     n.SMSError,
		CreatedAt:    n.CreatedAt,
		UpdatedAt:    n.UpdatedAt,
	}
}

func ModelsToNotificationResponses(list []*models.ServiceDispatchNotification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(list))
	for _, n := range list {
		out = append(out, ModelToNotificationResponse(n))
	}
	return out
}

func ModelToDashboardResponse(s *models.ReportSummary) DashboardResponse {
	return DashboardResponse{
		TotalReports:      s.TotalReports,
		FireReports:       s.FireReports,
		FloodReports:      s.FloodReports,
		PendingReports:    s.PendingReports,
		InProgressReports: s.InProgressReports,
		ResolvedReports:   s.ResolvedReports,
	}
}
