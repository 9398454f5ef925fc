package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smartbash/brgy_dispatch/internal/models"
	"github.com/smartbash/brgy_dispatch/internal/service"
)

const responseServiceColumns = `
	id,
	name,
	email,
	contact_number,
	location,
	description,
	is_active,
	is_deleted,
	added_on,
	updated_on`

type ResponseServiceRepository struct {
	db *pgxpool.Pool
}

func NewResponseServiceRepository(db *pgxpool.Pool) service.ResponseServiceRepository {
	return &ResponseServiceRepository{db: db}
}

func scanResponseService(row rowScanner) (*models.ResponseService, error) {
	s := &models.ResponseService{}
	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Email,
		&s.ContactNumber,
		&s.Location,
		&s.Description,
		&s.IsActive,
		&s.IsDeleted,
		&s.AddedOn,
		&s.UpdatedOn,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ListActive returns active, non-deleted services in storage order
func (r *ResponseServiceRepository) ListActive(ctx context.Context) ([]*models.ResponseService, error) {
	query := `SELECT` + responseServiceColumns + `
		FROM services
		WHERE is_active AND NOT is_deleted
		ORDER BY id;`
	return r.list(ctx, "ListActive", query)
}

// ListAll returns every service including inactive and deleted ones
func (r *ResponseServiceRepository) ListAll(ctx context.Context) ([]*models.ResponseService, error) {
	query := `SELECT` + responseServiceColumns + `
		FROM services
		ORDER BY id;`
	return r.list(ctx, "ListAll", query)
}

// GetByEmail looks a service up by its login email
func (r *ResponseServiceRepository) GetByEmail(ctx context.Context, email string) (*models.ResponseService, error) {
	query := `SELECT` + responseServiceColumns + ` FROM services WHERE LOWER(email) = LOWER($1);`

	s, err := scanResponseService(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("response service %q: %w", email, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get response service by email: %w", err)
	}
	return s, nil
}

func (r *ResponseServiceRepository) list(ctx context.Context, op, query string) ([]*models.ResponseService, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list response services in %s: %w", op, err)
	}
	defer rows.Close()

	services := make([]*models.ResponseService, 0)
	for rows.Next() {
		s, err := scanResponseService(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan response service row in %s: %w", op, err)
		}
		services = append(services, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration in %s: %w", op, err)
	}
	return services, nil
}
