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

// SarprasRepository implements port.SarprasRepository
type SarprasRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSarprasRepository creates a new sarpras repository
func NewSarprasRepository(db *sql.DB, logger *zap.Logger) port.SarprasRepository {
	return &SarprasRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts an asset and assigns its ID.
func (r *SarprasRepository) Create(ctx context.Context, item *entity.SarprasItem) error {
	item.ID = newID()
	item.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO sarpras_items (
			id, name, category, condition, last_maintenance, location, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := executorFrom(ctx, r.db).ExecContext(ctx, query,
		item.ID,
		item.Name,
		item.Category,
		item.Condition,
		item.LastMaintenance,
		item.Location,
		item.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create sarpras item", zap.Error(err))
		return fmt.Errorf("failed to create sarpras item: %w", err)
	}

	return nil
}

// Update rewrites an existing asset.
func (r *SarprasRepository) Update(ctx context.Context, item *entity.SarprasItem) error {
	query := `
		UPDATE sarpras_items
		SET name = ?, category = ?, condition = ?, last_maintenance = ?, location = ?
		WHERE id = ?
	`

	_, err := executorFrom(ctx, r.db).ExecContext(ctx, query,
		item.Name,
		item.Category,
		item.Condition,
		item.LastMaintenance,
		item.Location,
		item.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update sarpras item", zap.String("id", item.ID), zap.Error(err))
		return fmt.Errorf("failed to update sarpras item: %w", err)
	}

	return nil
}

// GetByID retrieves an asset by ID. Returns (nil, nil) when absent.
func (r *SarprasRepository) GetByID(ctx context.Context, id string) (*entity.SarprasItem, error) {
	query := `
		SELECT id, name, category, condition, last_maintenance, location, created_at
		FROM sarpras_items
		WHERE id = ?
	`

	var item entity.SarprasItem
	err := executorFrom(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&item.ID,
		&item.Name,
		&item.Category,
		&item.Condition,
		&item.LastMaintenance,
		&item.Location,
		&item.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get sarpras item", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get sarpras item: %w", err)
	}

	return &item, nil
}

// List retrieves the inventory ordered by name.
func (r *SarprasRepository) List(ctx context.Context) ([]*entity.SarprasItem, error) {
	query := `
		SELECT id, name, category, condition, last_maintenance, location, created_at
		FROM sarpras_items
		ORDER BY name
	`

	rows, err := executorFrom(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list sarpras items", zap.Error(err))
		return nil, fmt.Errorf("failed to list sarpras items: %w", err)
	}
	defer rows.Close()

	var items []*entity.SarprasItem
	for rows.Next() {
		var item entity.SarprasItem
		err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Category,
			&item.Condition,
			&item.LastMaintenance,
			&item.Location,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sarpras item: %w", err)
		}
		items = append(items, &item)
	}

	return items, rows.Err()
}

// Verify interface compliance
var _ port.SarprasRepository = (*SarprasRepository)(nil)
