package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/awahyudi/facility-portal/internal/application/port"
	"github.com/awahyudi/facility-portal/internal/domain/entity"
	"go.uber.org/zap"
)

// GuestRepository implements port.GuestRepository
type GuestRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewGuestRepository creates a new guest repository
func NewGuestRepository(db *sql.DB, logger *zap.Logger) port.GuestRepository {
	return &GuestRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a guest-book entry and assigns its ID.
func (r *GuestRepository) Create(ctx context.Context, guest *entity.Guest) error {
	guest.ID = newID()
	guest.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO guests (
			id, name, address, company, person_visited, visit_purpose,
			identity_card_no, zone, signature, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := executorFrom(ctx, r.db).ExecContext(ctx, query,
		guest.ID,
		guest.Name,
		guest.Address,
		guest.Company,
		guest.PersonVisited,
		guest.VisitPurpose,
		guest.IdentityCardNo,
		guest.Zone,
		guest.Signature,
		guest.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create guest entry", zap.Error(err))
		return fmt.Errorf("failed to create guest entry: %w", err)
	}

	return nil
}

// List retrieves the guest book, newest first.
func (r *GuestRepository) List(ctx context.Context) ([]*entity.Guest, error) {
	query := `
		SELECT id, name, address, company, person_visited, visit_purpose,
			identity_card_no, zone, signature, created_at
		FROM guests
		ORDER BY created_at DESC
	`

	rows, err := executorFrom(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list guests", zap.Error(err))
		return nil, fmt.Errorf("failed to list guests: %w", err)
	}
	defer rows.Close()

	var guests []*entity.Guest
	for rows.Next() {
		var guest entity.Guest
		err := rows.Scan(
			&guest.ID,
			&guest.Name,
			&guest.Address,
			&guest.Company,
			&guest.PersonVisited,
			&guest.VisitPurpose,
			&guest.IdentityCardNo,
			&guest.Zone,
			&guest.Signature,
			&guest.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan guest: %w", err)
		}
		guests = append(guests, &guest)
	}

	return guests, rows.Err()
}

// Verify interface compliance
var _ port.GuestRepository = (*GuestRepository)(nil)
