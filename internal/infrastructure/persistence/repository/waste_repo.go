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

// WasteRepository implements port.WasteRepository
type WasteRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewWasteRepository creates a new waste repository
func NewWasteRepository(db *sql.DB, logger *zap.Logger) port.WasteRepository {
	return &WasteRepository{
		db:     db,
		logger: logger,
	}
}

const wasteColumns = `
	id, kind, quantity, unit, intake_date, source, status,
	treatment, manifest_code, notes, created_at
`

// Create inserts a waste record and assigns its ID.
func (r *WasteRepository) Create(ctx context.Context, rec *entity.WasteRecord) error {
	rec.ID = newID()
	rec.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO waste_records (` + wasteColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := executorFrom(ctx, r.db).ExecContext(ctx, query,
		rec.ID,
		rec.Kind,
		rec.Quantity,
		rec.Unit,
		rec.IntakeDate,
		rec.Source,
		rec.Status,
		rec.Treatment,
		rec.ManifestCode,
		rec.Notes,
		rec.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create waste record", zap.Error(err))
		return fmt.Errorf("failed to create waste record: %w", err)
	}

	return nil
}

// Update rewrites an existing waste record.
func (r *WasteRepository) Update(ctx context.Context, rec *entity.WasteRecord) error {
	query := `
		UPDATE waste_records
		SET kind = ?, quantity = ?, unit = ?, intake_date = ?, source = ?,
			status = ?, treatment = ?, manifest_code = ?, notes = ?
		WHERE id = ?
	`

	_, err := executorFrom(ctx, r.db).ExecContext(ctx, query,
		rec.Kind,
		rec.Quantity,
		rec.Unit,
		rec.IntakeDate,
		rec.Source,
		rec.Status,
		rec.Treatment,
		rec.ManifestCode,
		rec.Notes,
		rec.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update waste record", zap.String("id", rec.ID), zap.Error(err))
		return fmt.Errorf("failed to update waste record: %w", err)
	}

	return nil
}

// Delete removes a waste record.
func (r *WasteRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM waste_records WHERE id = ?`

	_, err := executorFrom(ctx, r.db).ExecContext(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to delete waste record", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete waste record: %w", err)
	}

	return nil
}

// GetByID retrieves a waste record by ID. Returns (nil, nil) when absent.
func (r *WasteRepository) GetByID(ctx context.Context, id string) (*entity.WasteRecord, error) {
	query := `SELECT ` + wasteColumns + ` FROM waste_records WHERE id = ?`

	rec, err := scanWaste(executorFrom(ctx, r.db).QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get waste record", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get waste record: %w", err)
	}

	return rec, nil
}

// List retrieves all waste records, newest first.
func (r *WasteRepository) List(ctx context.Context) ([]*entity.WasteRecord, error) {
	query := `SELECT ` + wasteColumns + ` FROM waste_records ORDER BY created_at DESC`
	return r.query(ctx, query)
}

// ListByIntakeDate retrieves the records received on one calendar day.
func (r *WasteRepository) ListByIntakeDate(ctx context.Context, date string) ([]*entity.WasteRecord, error) {
	query := `SELECT ` + wasteColumns + ` FROM waste_records WHERE intake_date = ? ORDER BY created_at`
	return r.query(ctx, query, date)
}

func (r *WasteRepository) query(ctx context.Context, query string, args ...interface{}) ([]*entity.WasteRecord, error) {
	rows, err := executorFrom(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list waste records", zap.Error(err))
		return nil, fmt.Errorf("failed to list waste records: %w", err)
	}
	defer rows.Close()

	var records []*entity.WasteRecord
	for rows.Next() {
		rec, err := scanWaste(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan waste record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

func scanWaste(row rowScanner) (*entity.WasteRecord, error) {
	var rec entity.WasteRecord
	err := row.Scan(
		&rec.ID,
		&rec.Kind,
		&rec.Quantity,
		&rec.Unit,
		&rec.IntakeDate,
		&rec.Source,
		&rec.Status,
		&rec.Treatment,
		&rec.ManifestCode,
		&rec.Notes,
		&rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Verify interface compliance
var _ port.WasteRepository = (*WasteRepository)(nil)
