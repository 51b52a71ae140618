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

// OvertimeRepository implements port.OvertimeRepository
type OvertimeRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewOvertimeRepository creates a new overtime repository
func NewOvertimeRepository(db *sql.DB, logger *zap.Logger) port.OvertimeRepository {
	return &OvertimeRepository{
		db:     db,
		logger: logger,
	}
}

const overtimeColumns = `
	id, employee_id, employee_name, date, start_time, end_time,
	duration, description, status, created_at
`

// Create inserts an overtime claim and assigns its ID.
func (r *OvertimeRepository) Create(ctx context.Context, rec *entity.OvertimeRecord) error {
	rec.ID = newID()
	rec.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO overtime_records (` + overtimeColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := executorFrom(ctx, r.db).ExecContext(ctx, query,
		rec.ID,
		rec.EmployeeID,
		rec.EmployeeName,
		rec.Date,
		rec.StartTime,
		rec.EndTime,
		rec.Duration,
		rec.Description,
		rec.Status,
		rec.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create overtime record", zap.Error(err))
		return fmt.Errorf("failed to create overtime record: %w", err)
	}

	return nil
}

// Update rewrites an existing claim.
func (r *OvertimeRepository) Update(ctx context.Context, rec *entity.OvertimeRecord) error {
	query := `
		UPDATE overtime_records
		SET date = ?, start_time = ?, end_time = ?, duration = ?, description = ?, status = ?
		WHERE id = ?
	`

	_, err := executorFrom(ctx, r.db).ExecContext(ctx, query,
		rec.Date,
		rec.StartTime,
		rec.EndTime,
		rec.Duration,
		rec.Description,
		rec.Status,
		rec.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update overtime record", zap.String("id", rec.ID), zap.Error(err))
		return fmt.Errorf("failed to update overtime record: %w", err)
	}

	return nil
}

// Delete removes a claim.
func (r *OvertimeRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM overtime_records WHERE id = ?`

	_, err := executorFrom(ctx, r.db).ExecContext(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to delete overtime record", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete overtime record: %w", err)
	}

	return nil
}

// GetByID retrieves a claim by ID. Returns (nil, nil) when absent.
func (r *OvertimeRepository) GetByID(ctx context.Context, id string) (*entity.OvertimeRecord, error) {
	query := `SELECT ` + overtimeColumns + ` FROM overtime_records WHERE id = ?`

	rec, err := scanOvertime(executorFrom(ctx, r.db).QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get overtime record", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get overtime record: %w", err)
	}

	return rec, nil
}

// List retrieves all claims, newest first.
func (r *OvertimeRepository) List(ctx context.Context) ([]*entity.OvertimeRecord, error) {
	query := `SELECT ` + overtimeColumns + ` FROM overtime_records ORDER BY created_at DESC`

	rows, err := executorFrom(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list overtime records", zap.Error(err))
		return nil, fmt.Errorf("failed to list overtime records: %w", err)
	}
	defer rows.Close()

	var records []*entity.OvertimeRecord
	for rows.Next() {
		rec, err := scanOvertime(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan overtime record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

func scanOvertime(row rowScanner) (*entity.OvertimeRecord, error) {
	var rec entity.OvertimeRecord
	err := row.Scan(
		&rec.ID,
		&rec.EmployeeID,
		&rec.EmployeeName,
		&rec.Date,
		&rec.StartTime,
		&rec.EndTime,
		&rec.Duration,
		&rec.Description,
		&rec.Status,
		&rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Verify interface compliance
var _ port.OvertimeRepository = (*OvertimeRepository)(nil)
