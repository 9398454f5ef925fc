package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smartbash/brgy_dispatch/internal/models"
	"github.com/smartbash/brgy_dispatch/internal/service"
)

const notificationColumns = `
	id,
	service_id,
	report_id,
	incident_type,
	barangay,
	location_text,
	status,
	sms_sent,
	sms_error,
	dedupe_key,
	created_at,
	updated_at`

type NotificationRepository struct {
	db *pgxpool.Pool
}

func NewNotificationRepository(db *pgxpool.Pool) service.NotificationRepository {
	return &NotificationRepository{db: db}
}

func scanNotification(row rowScanner) (*models.ServiceDispatchNotification, error) {
	n := &models.ServiceDispatchNotification{}
	err := row.Scan(
		&n.ID,
		&n.ServiceID,
		&n.ReportID,
		&n.IncidentType,
		&n.Barangay,
		&n.LocationText,
		&n.Status,
		&n.SMSSent,
		&n.SMSError,
		&n.DedupeKey,
		&n.CreatedAt,
		&n.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// Insert stores a new notification record
func (r *NotificationRepository) Insert(ctx context.Context, n *models.ServiceDispatchNotification) error {
	query := `
		INSERT INTO service_dispatch_notifications
			(id, service_id, report_id, incident_type, barangay, location_text, status, sms_sent, sms_error, dedupe_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at;
	`
	err := r.db.QueryRow(ctx, query,
		n.ID,
		n.ServiceID,
		n.ReportID,
		n.IncidentType,
		n.Barangay,
		n.LocationText,
		n.Status,
		n.SMSSent,
		n.SMSError,
		n.DedupeKey,
	).Scan(&n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

// Upsert stores the notification or refreshes the record sharing its dedupe key.
// A delivered SMS is never downgraded and the dispatch status is kept.
// n is updated with the stored row.
func (r *NotificationRepository) Upsert(ctx context.Context, n *models.ServiceDispatchNotification) error {
	if n.DedupeKey == nil {
		return r.Insert(ctx, n)
	}
	query := `
		INSERT INTO service_dispatch_notifications AS sdn
			(id, service_id, report_id, incident_type, barangay, location_text, status, sms_sent, sms_error, dedupe_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (dedupe_key) DO UPDATE SET
			incident_type = EXCLUDED.incident_type,
			barangay = EXCLUDED.barangay,
			location_text = EXCLUDED.location_text,
			sms_sent = sdn.sms_sent OR EXCLUDED.sms_sent,
			sms_error = CASE WHEN sdn.sms_sent OR EXCLUDED.sms_sent THEN NULL ELSE EXCLUDED.sms_error END,
			updated_at = NOW()
		RETURNING` + notificationColumns + `;`

	stored, err := scanNotification(r.db.QueryRow(ctx, query,
		n.ID,
		n.ServiceID,
		n.ReportID,
		n.IncidentType,
		n.Barangay,
		n.LocationText,
		n.Status,
		n.SMSSent,
		n.SMSError,
		n.DedupeKey,
	))
	if err != nil {
		return fmt.Errorf("failed to upsert notification: %w", err)
	}
	*n = *stored
	return nil
}

// FindByDedupeKey returns the record for the key, or nil when there is none
func (r *NotificationRepository) FindByDedupeKey(ctx context.Context, key string) (*models.ServiceDispatchNotification, error) {
	query := `SELECT` + notificationColumns + ` FROM service_dispatch_notifications WHERE dedupe_key = $1;`

	n, err := scanNotification(r.db.QueryRow(ctx, query, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find notification by dedupe key: %w", err)
	}
	return n, nil
}

// GetByID returns a notification by its UUID
func (r *NotificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ServiceDispatchNotification, error) {
	query := `SELECT` + notificationColumns + ` FROM service_dispatch_notifications WHERE id = $1;`

	n, err := scanNotification(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("dispatch %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get notification by id: %w", err)
	}
	return n, nil
}

// ListByService returns the service's notifications, newest first
func (r *NotificationRepository) ListByService(ctx context.Context, serviceID int64) ([]*models.ServiceDispatchNotification, error) {
	query := `SELECT` + notificationColumns + `
		FROM service_dispatch_notifications
		WHERE service_id = $1
		ORDER BY created_at DESC;`
	return r.list(ctx, "ListByService", query, serviceID)
}

// ListByReport returns every notification of a report in creation order
func (r *NotificationRepository) ListByReport(ctx context.Context, reportID int64) ([]*models.ServiceDispatchNotification, error) {
	query := `SELECT` + notificationColumns + `
		FROM service_dispatch_notifications
		WHERE report_id = $1
		ORDER BY created_at ASC;`
	return r.list(ctx, "ListByReport", query, reportID)
}

// MarkCompleted sets the notification status to Completed
func (r *NotificationRepository) MarkCompleted(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE service_dispatch_notifications SET
			status = 'Completed',
			updated_at = NOW()
		WHERE id = $1;
	`
	cmdTag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to complete notification: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("dispatch %s: %w", id, models.ErrNotFound)
	}
	return nil
}

func (r *NotificationRepository) list(ctx context.Context, op, query string, args ...any) ([]*models.ServiceDispatchNotification, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications in %s: %w", op, err)
	}
	defer rows.Close()

	list := make([]*models.ServiceDispatchNotification, 0)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification row in %s: %w", op, err)
		}
		list = append(list, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration in %s: %w", op, err)
	}
	return list, nil
}
