package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/smartbash/brgy_dispatch/internal/models"
	"github.com/smartbash/brgy_dispatch/internal/sms"
)

//go:generate mockgen -source=repository.go -destination=mocks/mock_repository.go -package=mocks

// ReportRepository defines the storage contract for incident reports
type ReportRepository interface {
	GetByID(ctx context.Context, id int64) (*models.IncidentReport, error)
	UpdateStatus(ctx context.Context, id int64, status models.ReportStatus) error
	CountSimilar(ctx context.Context, report *models.IncidentReport) (int, error)
	ListPending(ctx context.Context) ([]*models.IncidentReport, error)
	ListAll(ctx context.Context) ([]*models.IncidentReport, error)

	GetReportFromCache(ctx context.Context, id int64) (*models.IncidentReport, error)
	SetReportCache(ctx context.Context, report *models.IncidentReport) error
	InvalidateReportCache(ctx context.Context, id int64) error
}

// ResponseServiceRepository defines the storage contract for response services
type ResponseServiceRepository interface {
	ListActive(ctx context.Context) ([]*models.ResponseService, error)
	ListAll(ctx context.Context) ([]*models.ResponseService, error)
	GetByEmail(ctx context.Context, email string) (*models.ResponseService, error)
}

// NotificationRepository defines the storage contract for dispatch notifications
type NotificationRepository interface {
	Insert(ctx context.Context, n *models.ServiceDispatchNotification) error
	Upsert(ctx context.Context, n *models.ServiceDispatchNotification) error
	FindByDedupeKey(ctx context.Context, key string) (*models.ServiceDispatchNotification, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.ServiceDispatchNotification, error)
	ListByService(ctx context.Context, serviceID int64) ([]*models.ServiceDispatchNotification, error)
	ListByReport(ctx context.Context, reportID int64) ([]*models.ServiceDispatchNotification, error)
	MarkCompleted(ctx context.Context, id uuid.UUID) error
}

// OfficialRepository defines the storage contract for barangay officials
type OfficialRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.BrgyOfficial, error)
}

// SMSSender sends one alert to one service and reports the outcome as data
type SMSSender interface {
	Send(ctx context.Context, svc *models.ResponseService, message string) sms.Result
}
