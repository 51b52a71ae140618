// Package port defines the interfaces between the application services and
// the infrastructure adapters (persistence, external AI).
package port

import (
	"context"
	"errors"

	"github.com/awahyudi/facility-portal/internal/domain/entity"
)

// ErrStatusConflict is returned when a conditional status update finds the
// record no longer in the expected state, i.e. another actor transitioned it
// first. Callers treat a conflict on an identical target status as an
// idempotent no-op; any other conflict is surfaced.
var ErrStatusConflict = errors.New("status conflict: record not in expected state")

// PermitRepository persists leave permits. Permits are append-and-transition
// only: there is no delete operation.
type PermitRepository interface {
	Create(ctx context.Context, permit *entity.LeavePermit) error
	GetByID(ctx context.Context, id string) (*entity.LeavePermit, error)
	List(ctx context.Context) ([]*entity.LeavePermit, error)

	// UpdateDecision sets status and approvedBy, guarded by a
	// compare-and-swap on the expected prior statuses. Returns
	// ErrStatusConflict when the permit is in none of them.
	UpdateDecision(ctx context.Context, id, status, approvedBy string, expectedPrior []string) error

	// SignOut atomically sets the signature, actual leave time and the
	// On Leave status, only when the permit is currently Approved.
	SignOut(ctx context.Context, id, signature, actualLeaveTime string) error

	// ConfirmReturn sets the actual return time and the Returned status,
	// only when the permit is currently On Leave.
	ConfirmReturn(ctx context.Context, id, actualReturnTime string) error
}

// AttendanceRepository persists the attendance ledger.
type AttendanceRepository interface {
	Create(ctx context.Context, rec *entity.AttendanceRecord) error
	Update(ctx context.Context, rec *entity.AttendanceRecord) error
	GetByEmployeeAndDate(ctx context.Context, employeeID, date string) (*entity.AttendanceRecord, error)
	ListByDate(ctx context.Context, date string) ([]*entity.AttendanceRecord, error)
	List(ctx context.Context) ([]*entity.AttendanceRecord, error)
}

// GuestRepository persists the guest book.
type GuestRepository interface {
	Create(ctx context.Context, guest *entity.Guest) error
	List(ctx context.Context) ([]*entity.Guest, error)
}

// OvertimeRepository persists overtime claims.
type OvertimeRepository interface {
	Create(ctx context.Context, rec *entity.OvertimeRecord) error
	Update(ctx context.Context, rec *entity.OvertimeRecord) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*entity.OvertimeRecord, error)
	List(ctx context.Context) ([]*entity.OvertimeRecord, error)
}

// WasteRepository persists hazardous-waste records.
type WasteRepository interface {
	Create(ctx context.Context, rec *entity.WasteRecord) error
	Update(ctx context.Context, rec *entity.WasteRecord) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*entity.WasteRecord, error)
	List(ctx context.Context) ([]*entity.WasteRecord, error)
	ListByIntakeDate(ctx context.Context, date string) ([]*entity.WasteRecord, error)
}

// SarprasRepository persists the asset inventory.
type SarprasRepository interface {
	Create(ctx context.Context, item *entity.SarprasItem) error
	Update(ctx context.Context, item *entity.SarprasItem) error
	GetByID(ctx context.Context, id string) (*entity.SarprasItem, error)
	List(ctx context.Context) ([]*entity.SarprasItem, error)
}

// BriefingRepository persists safety briefings.
type BriefingRepository interface {
	Create(ctx context.Context, b *entity.SafetyBriefing) error
	List(ctx context.Context) ([]*entity.SafetyBriefing, error)
}

// UserRepository persists portal accounts.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByUID(ctx context.Context, uid string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	UpdateRoleStatus(ctx context.Context, uid, role, status string) error
	List(ctx context.Context) ([]*entity.User, error)
}
