package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/smartbash/brgy_dispatch/internal/models"
	"github.com/smartbash/brgy_dispatch/internal/service"
)

const reportColumns = `
	id,
	resident_email,
	resident_name,
	barangay,
	incident_type,
	description,
	location_text,
	latitude,
	longitude,
	images,
	status,
	created_at,
	updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

type ReportRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
	cacheTTL    time.Duration
}

func NewReportRepository(db *pgxpool.Pool, redisClient *redis.Client, cacheTTL time.Duration) service.ReportRepository {
	return &ReportRepository{
		db:          db,
		redisClient: redisClient,
		cacheTTL:    cacheTTL,
	}
}

func scanReport(row rowScanner) (*models.IncidentReport, error) {
	r := &models.IncidentReport{}
	err := row.Scan(
		&r.ID,
		&r.ResidentEmail,
		&r.ResidentName,
		&r.Barangay,
		&r.IncidentType,
		&r.Description,
		&r.LocationText,
		&r.Latitude,
		&r.Longitude,
		&r.Images,
		&r.Status,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// GetByID returns a report by its id
func (r *ReportRepository) GetByID(ctx context.Context, id int64) (*models.IncidentReport, error) {
	query := `SELECT` + reportColumns + ` FROM incident_reports WHERE id = $1;`

	report, err := scanReport(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("report %d: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get report by id: %w", err)
	}
	return report, nil
}

// UpdateStatus sets a new status unless the report is already completed
func (r *ReportRepository) UpdateStatus(ctx context.Context, id int64, status models.ReportStatus) error {
	query := `
		UPDATE incident_reports SET
			status = $2,
			updated_at = NOW()
		WHERE id = $1 AND status <> 'Completed';
	`
	cmdTag, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update report status: %w", err)
	}
	if cmdTag.RowsAffected() > 0 {
		return nil
	}

	// nothing updated: the report is missing or already completed
	var current models.ReportStatus
	err = r.db.QueryRow(ctx, `SELECT status FROM incident_reports WHERE id = $1;`, id).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("report %d: %w", id, models.ErrNotFound)
		}
		return fmt.Errorf("failed to read report status: %w", err)
	}
	if current == status {
		return nil
	}
	return fmt.Errorf("report %d: %w", id, models.ErrReportCompleted)
}

// similarReportsQuery builds the count query for CountSimilar. Reports are
// compared on location text when the report has one, otherwise on barangay.
// ok is false when the report has neither.
func similarReportsQuery(report *models.IncidentReport) (query string, args []any, ok bool) {
	column, value := "location_text", strings.TrimSpace(report.LocationText)
	if value == "" {
		column, value = "barangay", strings.TrimSpace(report.Barangay)
	}
	if value == "" {
		return "", nil, false
	}

	query = fmt.Sprintf(`
		SELECT COUNT(*)
		FROM incident_reports
		WHERE incident_type = $1 AND LOWER(TRIM(%s)) = LOWER($2);
	`, column)
	return query, []any{report.IncidentType, value}, true
}

// CountSimilar counts reports of the same type at the same place. The result
// is at least 1 since the report stands for itself.
func (r *ReportRepository) CountSimilar(ctx context.Context, report *models.IncidentReport) (int, error) {
	query, args, ok := similarReportsQuery(report)
	if !ok {
		return 1, nil
	}

	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count similar reports: %w", err)
	}
	if count < 1 {
		count = 1
	}
	return count, nil
}

// ListPending returns pending reports, oldest first
func (r *ReportRepository) ListPending(ctx context.Context) ([]*models.IncidentReport, error) {
	query := `SELECT` + reportColumns + `
		FROM incident_reports
		WHERE status = 'Pending'
		ORDER BY created_at ASC, id ASC;`
	return r.list(ctx, "ListPending", query)
}

// ListAll returns every report, newest first
func (r *ReportRepository) ListAll(ctx context.Context) ([]*models.IncidentReport, error) {
	query := `SELECT` + reportColumns + `
		FROM incident_reports
		ORDER BY created_at DESC, id DESC;`
	return r.list(ctx, "ListAll", query)
}

func (r *ReportRepository) list(ctx context.Context, op, query string, args ...any) ([]*models.IncidentReport, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports in %s: %w", op, err)
	}
	defer rows.Close()

	reports := make([]*models.IncidentReport, 0)
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report row in %s: %w", op, err)
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration in %s: %w", op, err)
	}
	return reports, nil
}

func reportCacheKey(id int64) string {
	return fmt.Sprintf("report:%d", id)
}

// GetReportFromCache returns the cached report, or nil on a cache miss
func (r *ReportRepository) GetReportFromCache(ctx context.Context, id int64) (*models.IncidentReport, error) {
	val, err := r.redisClient.Get(ctx, reportCacheKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get report from cache: %w", err)
	}

	report := &models.IncidentReport{}
	if err := json.Unmarshal(val, report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report from cache: %w", err)
	}
	return report, nil
}

// SetReportCache stores the report in Redis
func (r *ReportRepository) SetReportCache(ctx context.Context, report *models.IncidentReport) error {
	val, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report for cache: %w", err)
	}
	if err := r.redisClient.Set(ctx, reportCacheKey(report.ID), val, r.cacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to set report in cache: %w", err)
	}
	return nil
}

// InvalidateReportCache removes the report from Redis
func (r *ReportRepository) InvalidateReportCache(ctx context.Context, id int64) error {
	if err := r.redisClient.Del(ctx, reportCacheKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate report cache: %w", err)
	}
	return nil
}
