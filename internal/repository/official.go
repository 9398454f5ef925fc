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

type OfficialRepository struct {
	db *pgxpool.Pool
}

func NewOfficialRepository(db *pgxpool.Pool) service.OfficialRepository {
	return &OfficialRepository{db: db}
}

// GetByEmail looks an official up by email, case-insensitively
func (r *OfficialRepository) GetByEmail(ctx context.Context, email string) (*models.BrgyOfficial, error) {
	official := &models.BrgyOfficial{}
	query := `
		SELECT
			id,
			name,
			email,
			contact_number,
			position,
			barangay,
			is_active,
			is_deleted
		FROM brgy_officials
		WHERE LOWER(email) = LOWER($1);
	`
	err := r.db.QueryRow(ctx, query, email).Scan(
		&official.ID,
		&official.Name,
		&official.Email,
		&official.ContactNumber,
		&official.Position,
		&official.Barangay,
		&official.IsActive,
		&official.IsDeleted,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("official %q: %w", email, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get official by email: %w", err)
	}
	return official, nil
}
