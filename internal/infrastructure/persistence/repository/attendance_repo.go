package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/awahyudi/facility-portal/internal/application/port"
	"github.com/awahyudi/facility-portal/internal/domain/entity"
	"go.uber.org/zap"
)

// AttendanceRepository implements port.AttendanceRepository
type AttendanceRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(db *sql.DB, logger *zap.Logger) port.AttendanceRepository {
	return &AttendanceRepository{
		db:     db,
		logger: logger,
	}
}

const attendanceColumns = `
	id, employee_id, employee_name, date, status,
	clock_in, clock_out, leave_out, return_in, notes
`

// Create inserts the day's record. The unique index on (employee_id, date)
// backs the one-record-per-day rule at the storage level.
func (r *AttendanceRepository) Create(ctx context.Context, rec *entity.AttendanceRecord) error {
	rec.ID = newID()

	query := `
		INSERT INTO attendance_records (` + attendanceColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := executorFrom(ctx, r.db).ExecContext(ctx, query,
		rec.ID,
		rec.EmployeeID,
		rec.EmployeeName,
		rec.Date,
		rec.Status,
		rec.ClockIn,
		rec.ClockOut,
		rec.LeaveOut,
		rec.ReturnIn,
		rec.Notes,
	)
	if err != nil {
		r.logger.Error("Failed to create attendance record", zap.Error(err))
		return fmt.Errorf("failed to create attendance record: %w", err)
	}

	return nil
}

// Update rewrites the mutable fields of an existing record.
func (r *AttendanceRepository) Update(ctx context.Context, rec *entity.AttendanceRecord) error {
	query := `
		UPDATE attendance_records
		SET status = ?, clock_in = ?, clock_out = ?, leave_out = ?, return_in = ?, notes = ?
		WHERE id = ?
	`

	_, err := executorFrom(ctx, r.db).ExecContext(ctx, query,
		rec.Status,
		rec.ClockIn,
		rec.ClockOut,
		rec.LeaveOut,
		rec.ReturnIn,
		rec.Notes,
		rec.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update attendance record", zap.String("id", rec.ID), zap.Error(err))
		return fmt.Errorf("failed to update attendance record: %w", err)
	}

	return nil
}

// GetByEmployeeAndDate retrieves the single record for an employee and day.
// Returns (nil, nil) when absent.
func (r *AttendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID, date string) (*entity.AttendanceRecord, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance_records WHERE employee_id = ? AND date = ?`

	rec, err := scanAttendance(executorFrom(ctx, r.db).QueryRowContext(ctx, query, employeeID, date))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get attendance record",
			zap.String("employee_id", employeeID), zap.String("date", date), zap.Error(err))
		return nil, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return rec, nil
}

// ListByDate retrieves all records for one calendar day.
func (r *AttendanceRepository) ListByDate(ctx context.Context, date string) ([]*entity.AttendanceRecord, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance_records WHERE date = ? ORDER BY employee_name`
	return r.query(ctx, query, date)
}

// List retrieves the whole ledger, newest day first.
func (r *AttendanceRepository) List(ctx context.Context) ([]*entity.AttendanceRecord, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance_records ORDER BY date DESC, employee_name`
	return r.query(ctx, query)
}

func (r *AttendanceRepository) query(ctx context.Context, query string, args ...interface{}) ([]*entity.AttendanceRecord, error) {
	rows, err := executorFrom(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list attendance records", zap.Error(err))
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []*entity.AttendanceRecord
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

func scanAttendance(row rowScanner) (*entity.AttendanceRecord, error) {
	var rec entity.AttendanceRecord
	err := row.Scan(
		&rec.ID,
		&rec.EmployeeID,
		&rec.EmployeeName,
		&rec.Date,
		&rec.Status,
		&rec.ClockIn,
		&rec.ClockOut,
		&rec.LeaveOut,
		&rec.ReturnIn,
		&rec.Notes,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Verify interface compliance
var _ port.AttendanceRepository = (*AttendanceRepository)(nil)
