package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/smartbash/brgy_dispatch/internal/cluster"
	"github.com/smartbash/brgy_dispatch/internal/config"
	"github.com/smartbash/brgy_dispatch/internal/models"
	"github.com/smartbash/brgy_dispatch/internal/textnorm"
	"github.com/smartbash/brgy_dispatch/internal/webhook"
)

//go:generate mockgen -source=dispatch.go -destination=mocks/mock_dispatch.go -package=mocks

const maxLocationLen = 120

// DispatchService defines the contract for alerting response services about reports
type DispatchService interface {
	Dispatch(ctx context.Context, report *models.IncidentReport, opts models.DispatchOptions) (models.DispatchSummary, error)
	DispatchReport(ctx context.Context, reportID int64, force bool) (*models.DispatchResult, error)
	DispatchPending(ctx context.Context, official *models.BrgyOfficial) (*models.BulkDispatchResult, error)
	ReportNotifications(ctx context.Context, reportID int64) ([]*models.ServiceDispatchNotification, error)
}

type dispatchService struct {
	reports       ReportRepository
	services      ResponseServiceRepository
	notifications NotificationRepository
	sender        SMSSender
	publisher     webhook.EventPublisher
	matcher       *textnorm.Matcher
	portalURL     string
	logger        *logrus.Logger
}

func NewDispatchService(
	reports ReportRepository,
	services ResponseServiceRepository,
	notifications NotificationRepository,
	sender SMSSender,
	publisher webhook.EventPublisher,
	matcher *textnorm.Matcher,
	cfg *config.Config,
	logger *logrus.Logger,
) DispatchService {
	return &dispatchService{
		reports:       reports,
		services:      services,
		notifications: notifications,
		sender:        sender,
		publisher:     publisher,
		matcher:       matcher,
		portalURL:     cfg.SMS.PortalLoginURL,
		logger:        logger,
	}
}

// Dispatch alerts every candidate service about the report and records one
// notification per service. The report status is left untouched.
func (s *dispatchService) Dispatch(ctx context.Context, report *models.IncidentReport, opts models.DispatchOptions) (models.DispatchSummary, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "dispatch",
		"method":    "Dispatch",
		"report_id": report.ID,
		"force":     opts.Force,
	})
	summary := models.DispatchSummary{Errors: []string{}}

	clusterSize := opts.ClusterSize
	if clusterSize <= 0 {
		clusterSize = s.clusterSize(ctx, report)
	}

	candidates, err := s.selectCandidates(ctx, report)
	if err != nil {
		log.WithError(err).Error("Failed to select candidate services")
		return summary, fmt.Errorf("service: could not select candidate services: %w", err)
	}
	log.WithField("candidates", len(candidates)).Info("Dispatching report to response services")

	message := buildAlertMessage(report, clusterSize, s.portalURL)
	for _, svc := range candidates {
		summary.ServicesMatched++
		s.notify(ctx, log, report, svc, message, opts.Force, &summary)
	}

	log.WithFields(logrus.Fields{
		"sms_sent":         summary.SMSSent,
		"sms_failed":       summary.SMSFailed,
		"already_notified": summary.AlreadyNotified,
	}).Info("Dispatch finished")
	return summary, nil
}

func (s *dispatchService) notify(
	ctx context.Context,
	log *logrus.Entry,
	report *models.IncidentReport,
	svc *models.ResponseService,
	message string,
	force bool,
	summary *models.DispatchSummary,
) {
	log = log.WithField("response_service_id", svc.ID)

	var dedupeKey *string
	if !force {
		key := models.DedupeKeyFor(report.ID, svc.ID)
		dedupeKey = &key

		existing, err := s.notifications.FindByDedupeKey(ctx, key)
		if err != nil {
			log.WithError(err).Warn("Failed to look up previous notification, sending anyway")
		} else if existing != nil && existing.SMSSent {
			log.Info("Service already notified, skipping SMS")
			summary.AlreadyNotified++
			summary.NotificationsCreated++
			return
		}
	}

	result := s.sender.Send(ctx, svc, message)

	n := &models.ServiceDispatchNotification{
		ID:           uuid.New(),
		ServiceID:    svc.ID,
		ReportID:     report.ID,
		IncidentType: report.IncidentType,
		Barangay:     report.Barangay,
		LocationText: report.LocationText,
		Status:       models.DispatchDispatched,
		SMSSent:      result.Sent,
		DedupeKey:    dedupeKey,
	}
	if result.Sent {
		summary.SMSSent++
	} else {
		summary.SMSFailed++
		smsErr := result.Error
		n.SMSError = &smsErr
		summary.AddError(fmt.Sprintf("%s: %s", svc.Name, result.Error))
	}

	var err error
	if force {
		err = s.notifications.Insert(ctx, n)
	} else {
		err = s.notifications.Upsert(ctx, n)
	}
	if err != nil {
		log.WithError(err).Error("Failed to record notification")
		summary.AddError(fmt.Sprintf("%s: could not record notification", svc.Name))
		return
	}
	summary.NotificationsCreated++
}

// DispatchReport moves the report to In Progress and dispatches it
func (s *dispatchService) DispatchReport(ctx context.Context, reportID int64, force bool) (*models.DispatchResult, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "dispatch",
		"method":    "DispatchReport",
		"report_id": reportID,
	})
	log.Info("Attempting to dispatch report")

	report, err := s.getReport(ctx, reportID)
	if err != nil {
		log.WithError(err).Warn("Failed to get report")
		return nil, fmt.Errorf("service: could not get report %d: %w", reportID, err)
	}
	if report.Status == models.ReportCompleted {
		log.Warn("Refusing to dispatch a completed report")
		return nil, fmt.Errorf("service: report %d: %w", reportID, models.ErrReportCompleted)
	}

	if err := s.advance(ctx, report, models.ReportInProgress); err != nil {
		log.WithError(err).Error("Failed to update report status")
		return nil, fmt.Errorf("service: could not update report status: %w", err)
	}

	clusterSize := s.clusterSize(ctx, report)
	summary, err := s.Dispatch(ctx, report, models.DispatchOptions{ClusterSize: clusterSize, Force: force})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, report, clusterSize, force, summary)

	return &models.DispatchResult{
		Status:                report.Status,
		ReportCountAtLocation: clusterSize,
		Summary:               summary,
	}, nil
}

// DispatchPending dispatches every pending report inside the official's jurisdiction
func (s *dispatchService) DispatchPending(ctx context.Context, official *models.BrgyOfficial) (*models.BulkDispatchResult, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "dispatch",
		"method":      "DispatchPending",
		"official_id": official.ID,
		"barangay":    official.Barangay,
	})
	log.Info("Dispatching pending reports")

	pending, err := s.reports.ListPending(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to list pending reports")
		return nil, fmt.Errorf("service: could not list pending reports: %w", err)
	}

	result := &models.BulkDispatchResult{Summary: models.DispatchSummary{Errors: []string{}}}
	sizes := make(map[string]int)
	for _, report := range pending {
		if !inJurisdiction(s.matcher, official, report) {
			continue
		}

		// location-keyed and barangay-keyed counts differ even for equal text
		key := fmt.Sprintf("%s|%t|%s", report.IncidentType, strings.TrimSpace(report.LocationText) != "", cluster.SimilarityKey(report))
		size, ok := sizes[key]
		if !ok {
			size = s.clusterSize(ctx, report)
			sizes[key] = size
		}

		if err := s.advance(ctx, report, models.ReportInProgress); err != nil {
			log.WithError(err).WithField("report_id", report.ID).Error("Failed to update report status")
			result.Summary.AddError(fmt.Sprintf("report %d: could not update status", report.ID))
			continue
		}

		summary, err := s.Dispatch(ctx, report, models.DispatchOptions{ClusterSize: size})
		if err != nil {
			return nil, err
		}
		s.publish(ctx, report, size, false, summary)

		result.ReportsDispatched++
		result.Summary.Merge(summary)
	}

	log.WithField("reports_dispatched", result.ReportsDispatched).Info("Pending reports dispatched")
	return result, nil
}

// ReportNotifications returns every notification recorded for the report
func (s *dispatchService) ReportNotifications(ctx context.Context, reportID int64) ([]*models.ServiceDispatchNotification, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "dispatch",
		"method":    "ReportNotifications",
		"report_id": reportID,
	})

	list, err := s.notifications.ListByReport(ctx, reportID)
	if err != nil {
		log.WithError(err).Error("Failed to list notifications")
		return nil, fmt.Errorf("service: could not list notifications: %w", err)
	}
	return list, nil
}

// selectCandidates relaxes the type filter, then the barangay filter, when either leaves nobody
func (s *dispatchService) selectCandidates(ctx context.Context, report *models.IncidentReport) ([]*models.ResponseService, error) {
	active, err := s.services.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	pool := make([]*models.ResponseService, 0, len(active))
	for _, svc := range active {
		if svc.Dispatchable() {
			pool = append(pool, svc)
		}
	}

	typed := filterServices(pool, func(svc *models.ResponseService) bool {
		return svc.Handles(report.IncidentType)
	})
	if len(typed) == 0 {
		typed = pool
	}

	barangay := strings.ToLower(strings.TrimSpace(report.Barangay))
	if barangay == "" {
		return typed, nil
	}
	local := filterServices(typed, func(svc *models.ResponseService) bool {
		return strings.Contains(strings.ToLower(svc.Location), barangay)
	})
	if len(local) == 0 {
		return typed, nil
	}
	return local, nil
}

func (s *dispatchService) clusterSize(ctx context.Context, report *models.IncidentReport) int {
	n, err := s.reports.CountSimilar(ctx, report)
	if err != nil {
		s.logger.WithError(err).WithField("report_id", report.ID).Warn("Failed to count similar reports")
		return 1
	}
	if n < 1 {
		return 1
	}
	return n
}

func (s *dispatchService) getReport(ctx context.Context, id int64) (*models.IncidentReport, error) {
	log := s.logger.WithField("report_id", id)

	cached, err := s.reports.GetReportFromCache(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to read report cache")
	}
	if cached != nil {
		return cached, nil
	}

	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.reports.SetReportCache(ctx, report); err != nil {
		log.WithError(err).Warn("Failed to cache report")
	}
	return report, nil
}

// advance moves the report forward in its lifecycle. It never regresses a status.
func (s *dispatchService) advance(ctx context.Context, report *models.IncidentReport, next models.ReportStatus) error {
	return advanceReport(ctx, s.reports, s.logger, report, next)
}

func (s *dispatchService) publish(ctx context.Context, report *models.IncidentReport, clusterSize int, force bool, summary models.DispatchSummary) {
	event := webhook.DispatchEvent{
		ReportID:     report.ID,
		IncidentType: report.IncidentType,
		Barangay:     report.Barangay,
		ClusterSize:  clusterSize,
		Urgency:      cluster.Urgency(clusterSize),
		Forced:       force,
		Summary:      summary,
		Timestamp:    time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.WithError(err).WithField("report_id", report.ID).Warn("Failed to publish dispatch event")
	}
}

func advanceReport(ctx context.Context, repo ReportRepository, logger *logrus.Logger, report *models.IncidentReport, next models.ReportStatus) error {
	if report.Status == next {
		return nil
	}
	if !report.Status.CanTransitionTo(next) {
		return fmt.Errorf("report %d is %s: %w", report.ID, report.Status, models.ErrReportCompleted)
	}
	if err := repo.UpdateStatus(ctx, report.ID, next); err != nil {
		return err
	}
	report.Status = next
	if err := repo.InvalidateReportCache(ctx, report.ID); err != nil {
		logger.WithError(err).WithField("report_id", report.ID).Warn("Failed to invalidate report cache")
	}
	return nil
}

func buildAlertMessage(report *models.IncidentReport, clusterSize int, portalURL string) string {
	barangay := strings.TrimSpace(report.Barangay)
	if barangay == "" {
		barangay = "N/A"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "BRGY ALERT: %s incident reported.\n", report.IncidentType)
	fmt.Fprintf(&b, "Reports at this location: %d\n", clusterSize)
	fmt.Fprintf(&b, "Barangay: %s\n", barangay)
	if loc := truncate(strings.TrimSpace(report.LocationText), maxLocationLen); loc != "" {
		fmt.Fprintf(&b, "Location: %s\n", loc)
	}
	if report.HasCoordinates() {
		fmt.Fprintf(&b, "Map: https://www.google.com/maps?q=%.6f,%.6f\n", *report.Latitude, *report.Longitude)
	}
	if portalURL != "" {
		fmt.Fprintf(&b, "Respond via portal: %s\n", portalURL)
	}
	return strings.TrimRight(b.String(), "\n")
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

func filterServices(in []*models.ResponseService, keep func(*models.ResponseService) bool) []*models.ResponseService {
	out := make([]*models.ResponseService, 0, len(in))
	for _, svc := range in {
		if keep(svc) {
			out = append(out, svc)
		}
	}
	return out
}

// inJurisdiction matches the official's barangay against the report's barangay,
// or its location text when the barangay is blank.
func inJurisdiction(m *textnorm.Matcher, official *models.BrgyOfficial, report *models.IncidentReport) bool {
	address := report.Barangay
	if strings.TrimSpace(address) == "" {
		address = report.LocationText
	}
	return m.Matches(official.Barangay, address)
}
