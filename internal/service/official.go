package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/smartbash/brgy_dispatch/internal/cluster"
	"github.com/smartbash/brgy_dispatch/internal/models"
	"github.com/smartbash/brgy_dispatch/internal/textnorm"
)

//go:generate mockgen -source=official.go -destination=mocks/mock_official.go -package=mocks

const recentReportsLimit = 5

// OfficialService defines the read side used by barangay officials
type OfficialService interface {
	ResolveOfficial(ctx context.Context, email string) (*models.BrgyOfficial, error)
	Dashboard(ctx context.Context, official *models.BrgyOfficial) (*models.ReportSummary, error)
	RecentReports(ctx context.Context, official *models.BrgyOfficial) ([]*models.IncidentReport, error)
	Reports(ctx context.Context, official *models.BrgyOfficial) ([]*models.IncidentReport, error)
	Services(ctx context.Context, official *models.BrgyOfficial) ([]*models.ResponseService, error)
	MapClusters(ctx context.Context, official *models.BrgyOfficial) ([]models.Cluster, error)
}

type officialService struct {
	officials OfficialRepository
	reports   ReportRepository
	services  ResponseServiceRepository
	matcher   *textnorm.Matcher
	logger    *logrus.Logger
}

func NewOfficialService(
	officials OfficialRepository,
	reports ReportRepository,
	services ResponseServiceRepository,
	matcher *textnorm.Matcher,
	logger *logrus.Logger,
) OfficialService {
	return &officialService{
		officials: officials,
		reports:   reports,
		services:  services,
		matcher:   matcher,
		logger:    logger,
	}
}

// ResolveOfficial returns the active official owning the email
func (s *officialService) ResolveOfficial(ctx context.Context, email string) (*models.BrgyOfficial, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "official",
		"method":  "ResolveOfficial",
	})

	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("service: empty caller email: %w", models.ErrUnauthorized)
	}

	official, err := s.officials.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			log.Warn("Caller is not a registered official")
			return nil, fmt.Errorf("service: caller is not an official: %w", models.ErrUnauthorized)
		}
		log.WithError(err).Error("Failed to get official")
		return nil, fmt.Errorf("service: could not get official: %w", err)
	}
	if !official.Authorized() {
		log.WithField("official_id", official.ID).Warn("Official is inactive or deleted")
		return nil, fmt.Errorf("service: official %d is not active: %w", official.ID, models.ErrUnauthorized)
	}
	return official, nil
}

// Dashboard counts the jurisdiction's reports by type and status
func (s *officialService) Dashboard(ctx context.Context, official *models.BrgyOfficial) (*models.ReportSummary, error) {
	reports, err := s.jurisdictionReports(ctx, official, "Dashboard")
	if err != nil {
		return nil, err
	}

	summary := &models.ReportSummary{TotalReports: len(reports)}
	for _, r := range reports {
		switch r.IncidentType {
		case models.IncidentFire:
			summary.FireReports++
		case models.IncidentFlood:
			summary.FloodReports++
		}
		switch r.Status {
		case models.ReportPending:
			summary.PendingReports++
		case models.ReportInProgress:
			summary.InProgressReports++
		case models.ReportCompleted:
			summary.ResolvedReports++
		}
	}
	return summary, nil
}

// RecentReports returns the newest reports of the jurisdiction
func (s *officialService) RecentReports(ctx context.Context, official *models.BrgyOfficial) ([]*models.IncidentReport, error) {
	reports, err := s.jurisdictionReports(ctx, official, "RecentReports")
	if err != nil {
		return nil, err
	}
	if len(reports) > recentReportsLimit {
		reports = reports[:recentReportsLimit]
	}
	return reports, nil
}

// Reports returns every report of the jurisdiction, newest first
func (s *officialService) Reports(ctx context.Context, official *models.BrgyOfficial) ([]*models.IncidentReport, error) {
	return s.jurisdictionReports(ctx, official, "Reports")
}

// Services lists the response services located in the official's barangay
func (s *officialService) Services(ctx context.Context, official *models.BrgyOfficial) ([]*models.ResponseService, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "official",
		"method":      "Services",
		"official_id": official.ID,
	})

	all, err := s.services.ListAll(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to list response services")
		return nil, fmt.Errorf("service: could not list response services: %w", err)
	}
	// one-way containment: the service location must mention the barangay
	barangay := s.matcher.Key(official.Barangay)
	if barangay == "" {
		return all, nil
	}
	return filterServices(all, func(svc *models.ResponseService) bool {
		return strings.Contains(s.matcher.Key(svc.Location), barangay)
	}), nil
}

// MapClusters groups the jurisdiction's open reports for the incident map
func (s *officialService) MapClusters(ctx context.Context, official *models.BrgyOfficial) ([]models.Cluster, error) {
	reports, err := s.jurisdictionReports(ctx, official, "MapClusters")
	if err != nil {
		return nil, err
	}
	return cluster.MapClusters(reports), nil
}

func (s *officialService) jurisdictionReports(ctx context.Context, official *models.BrgyOfficial, method string) ([]*models.IncidentReport, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "official",
		"method":      method,
		"official_id": official.ID,
		"barangay":    official.Barangay,
	})

	all, err := s.reports.ListAll(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to list reports")
		return nil, fmt.Errorf("service: could not list reports: %w", err)
	}

	out := make([]*models.IncidentReport, 0, len(all))
	for _, r := range all {
		if inJurisdiction(s.matcher, official, r) {
			out = append(out, r)
		}
	}
	log.WithField("count", len(out)).Debug("Reports filtered by jurisdiction")
	return out, nil
}
