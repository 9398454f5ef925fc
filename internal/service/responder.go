package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/smartbash/brgy_dispatch/internal/models"
)

//go:generate mockgen -source=responder.go -destination=mocks/mock_responder.go -package=mocks

// ResponderService defines the operations available to response services
type ResponderService interface {
	ResolveService(ctx context.Context, email string) (*models.ResponseService, error)
	ListDispatches(ctx context.Context, svc *models.ResponseService) ([]*models.ServiceDispatchNotification, error)
	CompleteDispatch(ctx context.Context, svc *models.ResponseService, id uuid.UUID) (*models.ServiceDispatchNotification, error)
}

type responderService struct {
	services      ResponseServiceRepository
	notifications NotificationRepository
	reports       ReportRepository
	logger        *logrus.Logger
}

func NewResponderService(
	services ResponseServiceRepository,
	notifications NotificationRepository,
	reports ReportRepository,
	logger *logrus.Logger,
) ResponderService {
	return &responderService{
		services:      services,
		notifications: notifications,
		reports:       reports,
		logger:        logger,
	}
}

// ResolveService returns the dispatchable response service owning the email
func (s *responderService) ResolveService(ctx context.Context, email string) (*models.ResponseService, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "responder",
		"method":  "ResolveService",
	})

	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("service: empty caller email: %w", models.ErrUnauthorized)
	}

	svc, err := s.services.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			log.Warn("Caller is not a registered response service")
			return nil, fmt.Errorf("service: caller is not a response service: %w", models.ErrUnauthorized)
		}
		log.WithError(err).Error("Failed to get response service")
		return nil, fmt.Errorf("service: could not get response service: %w", err)
	}
	if !svc.Dispatchable() {
		log.WithField("response_service_id", svc.ID).Warn("Response service is inactive or deleted")
		return nil, fmt.Errorf("service: response service %d is not active: %w", svc.ID, models.ErrUnauthorized)
	}
	return svc, nil
}

// ListDispatches returns the service's notification history, newest first
func (s *responderService) ListDispatches(ctx context.Context, svc *models.ResponseService) ([]*models.ServiceDispatchNotification, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":             "responder",
		"method":              "ListDispatches",
		"response_service_id": svc.ID,
	})

	list, err := s.notifications.ListByService(ctx, svc.ID)
	if err != nil {
		log.WithError(err).Error("Failed to list dispatches")
		return nil, fmt.Errorf("service: could not list dispatches: %w", err)
	}
	log.WithField("count", len(list)).Info("Dispatches listed successfully")
	return list, nil
}

// CompleteDispatch marks the service's notification completed and completes the parent report
func (s *responderService) CompleteDispatch(ctx context.Context, svc *models.ResponseService, id uuid.UUID) (*models.ServiceDispatchNotification, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":             "responder",
		"method":              "CompleteDispatch",
		"response_service_id": svc.ID,
		"dispatch_id":         id,
	})
	log.Info("Attempting to complete dispatch")

	n, err := s.notifications.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to get dispatch")
		return nil, fmt.Errorf("service: could not get dispatch %s: %w", id, err)
	}
	// another service's dispatch is reported as missing
	if n.ServiceID != svc.ID {
		log.Warn("Dispatch belongs to another service")
		return nil, fmt.Errorf("service: dispatch %s: %w", id, models.ErrNotFound)
	}

	// load the parent report before writing anything
	report, err := s.reports.GetByID(ctx, n.ReportID)
	switch {
	case errors.Is(err, models.ErrNotFound):
		log.WithField("report_id", n.ReportID).Warn("Parent report no longer exists")
		report = nil
	case err != nil:
		log.WithError(err).Error("Failed to get parent report")
		return nil, fmt.Errorf("service: could not get report %d: %w", n.ReportID, err)
	}

	if n.Status != models.DispatchCompleted {
		if err := s.notifications.MarkCompleted(ctx, id); err != nil {
			log.WithError(err).Error("Failed to mark dispatch completed")
			return nil, fmt.Errorf("service: could not complete dispatch: %w", err)
		}
		n.Status = models.DispatchCompleted
	}

	if report != nil {
		if err := advanceReport(ctx, s.reports, s.logger, report, models.ReportCompleted); err != nil {
			log.WithError(err).Error("Failed to complete parent report")
			return nil, fmt.Errorf("service: could not complete report %d: %w", report.ID, err)
		}
	}

	log.Info("Dispatch completed successfully")
	return n, nil
}
