package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/awahyudi/facility-portal/internal/application/port"
	"github.com/awahyudi/facility-portal/internal/domain/entity"
	"go.uber.org/zap"
)

// PermitRepository implements port.PermitRepository
type PermitRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPermitRepository creates a new permit repository
func NewPermitRepository(db *sql.DB, logger *zap.Logger) port.PermitRepository {
	return &PermitRepository{
		db:     db,
		logger: logger,
	}
}

const permitColumns = `
	id, employee_id, employee_name, date, leave_time, purpose,
	security_on_duty, status, approved_by, security_out_signature,
	actual_leave_time, actual_return_time, created_at
`

// Create inserts a new permit and assigns its ID.
func (r *PermitRepository) Create(ctx context.Context, permit *entity.LeavePermit) error {
	permit.ID = newID()
	permit.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO leave_permits (` + permitColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := executorFrom(ctx, r.db).ExecContext(ctx, query,
		permit.ID,
		permit.EmployeeID,
		permit.EmployeeName,
		permit.Date,
		permit.LeaveTime,
		permit.Purpose,
		permit.SecurityOnDuty,
		permit.Status,
		permit.ApprovedBy,
		permit.SecurityOutSignature,
		permit.ActualLeaveTime,
		permit.ActualReturnTime,
		permit.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create permit", zap.Error(err))
		return fmt.Errorf("failed to create permit: %w", err)
	}

	return nil
}

// GetByID retrieves a permit by ID. Returns (nil, nil) when absent.
func (r *PermitRepository) GetByID(ctx context.Context, id string) (*entity.LeavePermit, error) {
	query := `SELECT ` + permitColumns + ` FROM leave_permits WHERE id = ?`

	permit, err := scanPermit(executorFrom(ctx, r.db).QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get permit by ID", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get permit: %w", err)
	}

	return permit, nil
}

// List retrieves all permits, newest first.
func (r *PermitRepository) List(ctx context.Context) ([]*entity.LeavePermit, error) {
	query := `SELECT ` + permitColumns + ` FROM leave_permits ORDER BY created_at DESC`

	rows, err := executorFrom(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list permits", zap.Error(err))
		return nil, fmt.Errorf("failed to list permits: %w", err)
	}
	defer rows.Close()

	var permits []*entity.LeavePermit
	for rows.Next() {
		permit, err := scanPermit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan permit: %w", err)
		}
		permits = append(permits, permit)
	}

	return permits, rows.Err()
}

// UpdateDecision applies an admin decision with a compare-and-swap on the
// expected prior statuses. RowsAffected == 0 with an existing row means a
// concurrent actor moved the permit first.
func (r *PermitRepository) UpdateDecision(ctx context.Context, id, status, approvedBy string, expectedPrior []string) error {
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(expectedPrior)), ",")
	query := fmt.Sprintf(
		`UPDATE leave_permits SET status = ?, approved_by = ? WHERE id = ? AND status IN (%s)`,
		placeholders,
	)

	args := []interface{}{status, approvedBy, id}
	for _, exp := range expectedPrior {
		args = append(args, exp)
	}

	return r.conditionalUpdate(ctx, id, query, args)
}

// SignOut records the gate checkout. The status guard in the WHERE clause
// makes a racing second sign-out lose instead of overwriting the first.
func (r *PermitRepository) SignOut(ctx context.Context, id, signature, actualLeaveTime string) error {
	query := `
		UPDATE leave_permits
		SET status = ?, security_out_signature = ?, actual_leave_time = ?
		WHERE id = ? AND status = ?
	`
	args := []interface{}{
		entity.PermitStatusOnLeave, signature, actualLeaveTime,
		id, entity.PermitStatusApproved,
	}
	return r.conditionalUpdate(ctx, id, query, args)
}

// ConfirmReturn records the gate return, guarded on On Leave.
func (r *PermitRepository) ConfirmReturn(ctx context.Context, id, actualReturnTime string) error {
	query := `
		UPDATE leave_permits
		SET status = ?, actual_return_time = ?
		WHERE id = ? AND status = ?
	`
	args := []interface{}{
		entity.PermitStatusReturned, actualReturnTime,
		id, entity.PermitStatusOnLeave,
	}
	return r.conditionalUpdate(ctx, id, query, args)
}

func (r *PermitRepository) conditionalUpdate(ctx context.Context, id, query string, args []interface{}) error {
	result, err := executorFrom(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to update permit", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("failed to update permit: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		r.logger.Warn("Permit status conflict", zap.String("id", id))
		return port.ErrStatusConflict
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPermit(row rowScanner) (*entity.LeavePermit, error) {
	var permit entity.LeavePermit
	err := row.Scan(
		&permit.ID,
		&permit.EmployeeID,
		&permit.EmployeeName,
		&permit.Date,
		&permit.LeaveTime,
		&permit.Purpose,
		&permit.SecurityOnDuty,
		&permit.Status,
		&permit.ApprovedBy,
		&permit.SecurityOutSignature,
		&permit.ActualLeaveTime,
		&permit.ActualReturnTime,
		&permit.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &permit, nil
}

// Verify interface compliance
var _ port.PermitRepository = (*PermitRepository)(nil)
