package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/awahyudi/facility-portal/internal/application/asyncop"
	"github.com/awahyudi/facility-portal/internal/application/dispatcher"
	"github.com/awahyudi/facility-portal/internal/application/port"
	appwf "github.com/awahyudi/facility-portal/internal/application/workflow"
	"github.com/awahyudi/facility-portal/internal/domain/entity"
	"github.com/awahyudi/facility-portal/internal/domain/event"
	domainwf "github.com/awahyudi/facility-portal/internal/domain/workflow"
	"github.com/awahyudi/facility-portal/pkg/utils"
)

// Logger is the minimal logging surface services depend on.
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

var (
	// ErrNotFound is returned when the referenced record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrNotClockedIn is returned when a permit is submitted for an
	// employee with no qualifying attendance record for that date.
	ErrNotClockedIn = errors.New("employee has not clocked in for the requested date")

	// ErrTransitionConflict is returned when a concurrent actor won the
	// transition race and the permit is no longer in a compatible state.
	ErrTransitionConflict = errors.New("permit was transitioned by another actor")
)

// SubmitPermitInput carries the immutable-at-creation permit fields.
type SubmitPermitInput struct {
	EmployeeID     string `json:"employee_id" binding:"required"`
	EmployeeName   string `json:"employee_name" binding:"required"`
	Date           string `json:"date" binding:"required"`
	LeaveTime      string `json:"leave_time" binding:"required"`
	Purpose        string `json:"purpose" binding:"required"`
	SecurityOnDuty string `json:"security_on_duty" binding:"required"`
}

// PermitService owns the leave-permit lifecycle: submission with the
// attendance precondition, admin decisions, security sign-out and return,
// and the role-partitioned read views.
type PermitService interface {
	// Submit validates the attendance precondition and creates the permit
	// at Pending. The returned permit carries its backend-assigned ID.
	Submit(ctx context.Context, input SubmitPermitInput) (*entity.LeavePermit, error)

	// SubmitDetached runs the same submission as an async task. The
	// caller may Wait on the handle for strict semantics or Detach it,
	// in which case a late failure goes to the error channel.
	SubmitDetached(ctx context.Context, input SubmitPermitInput) (*asyncop.Task, error)

	// CanSubmit is the advisory precondition gate the requester form polls
	// before enabling its submit action.
	CanSubmit(ctx context.Context, employeeID, date string) (bool, error)

	Approve(ctx context.Context, id, actorName string) error
	Reject(ctx context.Context, id, actorName string) error
	RequestClarification(ctx context.Context, id, actorName string) error

	SignOut(ctx context.Context, id, signature, actualLeaveTime string) error
	ConfirmReturn(ctx context.Context, id, actualReturnTime string) error

	Get(ctx context.Context, id string) (*entity.LeavePermit, error)
	List(ctx context.Context) ([]*entity.LeavePermit, error)
	AdminQueue(ctx context.Context) ([]*entity.LeavePermit, error)
	SecurityOutQueue(ctx context.Context) ([]*entity.LeavePermit, error)
	SecurityReturnQueue(ctx context.Context) ([]*entity.LeavePermit, error)
	EmployeePermits(ctx context.Context, employeeID string) ([]*entity.LeavePermit, error)
	MonthlyRecap(ctx context.Context, month string) ([]*entity.LeavePermit, error)
}

type permitServiceImpl struct {
	permitRepo     port.PermitRepository
	attendanceRepo port.AttendanceRepository
	dispatcher     dispatcher.Dispatcher
	logger         Logger
}

// NewPermitService creates a PermitService.
func NewPermitService(
	permitRepo port.PermitRepository,
	attendanceRepo port.AttendanceRepository,
	d dispatcher.Dispatcher,
	logger Logger,
) PermitService {
	return &permitServiceImpl{
		permitRepo:     permitRepo,
		attendanceRepo: attendanceRepo,
		dispatcher:     d,
		logger:         logger,
	}
}

// decisionTargets maps each admin trigger to its resulting state, used to
// detect idempotent re-invocations.
var decisionTargets = map[domainwf.Trigger]domainwf.State{
	domainwf.TriggerApprove:       domainwf.StateApproved,
	domainwf.TriggerReject:        domainwf.StateRejected,
	domainwf.TriggerClarify:       domainwf.StateNeedsClarification,
	domainwf.TriggerSignOut:       domainwf.StateOnLeave,
	domainwf.TriggerConfirmReturn: domainwf.StateReturned,
}

func (s *permitServiceImpl) CanSubmit(ctx context.Context, employeeID, date string) (bool, error) {
	rec, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return false, fmt.Errorf("attendance lookup: %w", err)
	}
	return rec != nil && rec.HasClockedIn(), nil
}

func (s *permitServiceImpl) Submit(ctx context.Context, input SubmitPermitInput) (*entity.LeavePermit, error) {
	if err := utils.ValidateDate(input.Date); err != nil {
		return nil, err
	}
	if err := utils.ValidateTimeOfDay(input.LeaveTime); err != nil {
		return nil, err
	}

	ok, err := s.CanSubmit(ctx, input.EmployeeID, input.Date)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotClockedIn
	}

	permit := &entity.LeavePermit{
		EmployeeID:     input.EmployeeID,
		EmployeeName:   input.EmployeeName,
		Date:           input.Date,
		LeaveTime:      input.LeaveTime,
		Purpose:        input.Purpose,
		SecurityOnDuty: input.SecurityOnDuty,
		Status:         entity.PermitStatusPending,
	}

	if err := s.permitRepo.Create(ctx, permit); err != nil {
		s.logger.Error("Failed to create permit", "error", err, "employee_id", input.EmployeeID)
		return nil, fmt.Errorf("create permit: %w", err)
	}

	s.logger.Info("Permit submitted", "id", permit.ID, "employee_id", permit.EmployeeID, "date", permit.Date)
	s.notifyChanged(ctx, permit.ID)
	return permit, nil
}

func (s *permitServiceImpl) SubmitDetached(ctx context.Context, input SubmitPermitInput) (*asyncop.Task, error) {
	if err := utils.ValidateDate(input.Date); err != nil {
		return nil, err
	}
	if err := utils.ValidateTimeOfDay(input.LeaveTime); err != nil {
		return nil, err
	}

	// The precondition is checked synchronously so a gating failure still
	// reaches the caller; only the write itself is detached.
	ok, err := s.CanSubmit(ctx, input.EmployeeID, input.Date)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotClockedIn
	}

	task := asyncop.Run(ctx, "leave-permits", event.OpCreate, input, func(taskCtx context.Context) error {
		permit := &entity.LeavePermit{
			EmployeeID:     input.EmployeeID,
			EmployeeName:   input.EmployeeName,
			Date:           input.Date,
			LeaveTime:      input.LeaveTime,
			Purpose:        input.Purpose,
			SecurityOnDuty: input.SecurityOnDuty,
			Status:         entity.PermitStatusPending,
		}
		if err := s.permitRepo.Create(taskCtx, permit); err != nil {
			return err
		}
		s.notifyChanged(taskCtx, permit.ID)
		return nil
	})
	return task, nil
}

func (s *permitServiceImpl) Approve(ctx context.Context, id, actorName string) error {
	return s.decide(ctx, id, domainwf.TriggerApprove, actorName)
}

func (s *permitServiceImpl) Reject(ctx context.Context, id, actorName string) error {
	return s.decide(ctx, id, domainwf.TriggerReject, actorName)
}

func (s *permitServiceImpl) RequestClarification(ctx context.Context, id, actorName string) error {
	return s.decide(ctx, id, domainwf.TriggerClarify, actorName)
}

// decide runs an admin decision through the state machine and commits it
// with a compare-and-swap on the states the trigger is allowed from.
func (s *permitServiceImpl) decide(ctx context.Context, id string, trigger domainwf.Trigger, actorName string) error {
	permit, err := s.permitRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("load permit: %w", err)
	}
	if permit == nil {
		return ErrNotFound
	}

	current := domainwf.State(permit.Status)
	if !current.IsValid() {
		return fmt.Errorf("%w: %s", domainwf.ErrInvalidState, permit.Status)
	}

	target := decisionTargets[trigger]
	machine := appwf.BuildLeavePermitMachine(current)
	if _, err := machine.Peek(ctx, trigger); err != nil {
		// Re-invoking a decision the permit already carries is a no-op
		// at the data level (last write would rewrite the same value).
		if current == target {
			s.logger.Info("Decision already applied", "id", id, "status", permit.Status)
			return nil
		}
		return err
	}

	expected := []string{string(domainwf.StatePending), string(domainwf.StateNeedsClarification)}
	err = s.permitRepo.UpdateDecision(ctx, id, target.String(), actorName, expected)
	if errors.Is(err, port.ErrStatusConflict) {
		// Another admin moved it first. Same outcome is idempotent,
		// anything else is a genuine conflict.
		latest, lerr := s.permitRepo.GetByID(ctx, id)
		if lerr == nil && latest != nil && latest.Status == target.String() {
			return nil
		}
		return fmt.Errorf("%w: %s", ErrTransitionConflict, id)
	}
	if err != nil {
		s.logger.Error("Failed to apply decision", "error", err, "id", id, "trigger", trigger)
		return fmt.Errorf("apply decision: %w", err)
	}

	s.logger.Info("Permit decision applied",
		"id", id, "from", current.String(), "to", target.String(), "approved_by", actorName)
	s.notifyChanged(ctx, id)
	return nil
}

func (s *permitServiceImpl) SignOut(ctx context.Context, id, signature, actualLeaveTime string) error {
	if signature == "" || actualLeaveTime == "" {
		return fmt.Errorf("signature and actual leave time are required")
	}

	permit, err := s.permitRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("load permit: %w", err)
	}
	if permit == nil {
		return ErrNotFound
	}

	machine := appwf.BuildLeavePermitMachine(domainwf.State(permit.Status))
	if _, err := machine.Peek(ctx, domainwf.TriggerSignOut); err != nil {
		return err
	}

	// The repository re-checks Approved inside the update, so a racing
	// second sign-out loses cleanly instead of overwriting the first.
	err = s.permitRepo.SignOut(ctx, id, signature, actualLeaveTime)
	if errors.Is(err, port.ErrStatusConflict) {
		return fmt.Errorf("%w: %s", ErrTransitionConflict, id)
	}
	if err != nil {
		s.logger.Error("Failed to record sign-out", "error", err, "id", id)
		return fmt.Errorf("record sign-out: %w", err)
	}

	s.logger.Info("Permit signed out", "id", id, "actual_leave_time", actualLeaveTime)
	s.notifyChanged(ctx, id)
	return nil
}

func (s *permitServiceImpl) ConfirmReturn(ctx context.Context, id, actualReturnTime string) error {
	if actualReturnTime == "" {
		return fmt.Errorf("actual return time is required")
	}

	permit, err := s.permitRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("load permit: %w", err)
	}
	if permit == nil {
		return ErrNotFound
	}

	machine := appwf.BuildLeavePermitMachine(domainwf.State(permit.Status))
	if _, err := machine.Peek(ctx, domainwf.TriggerConfirmReturn); err != nil {
		return err
	}

	err = s.permitRepo.ConfirmReturn(ctx, id, actualReturnTime)
	if errors.Is(err, port.ErrStatusConflict) {
		return fmt.Errorf("%w: %s", ErrTransitionConflict, id)
	}
	if err != nil {
		s.logger.Error("Failed to confirm return", "error", err, "id", id)
		return fmt.Errorf("confirm return: %w", err)
	}

	s.logger.Info("Permit return confirmed", "id", id, "actual_return_time", actualReturnTime)
	s.notifyChanged(ctx, id)
	return nil
}

func (s *permitServiceImpl) Get(ctx context.Context, id string) (*entity.LeavePermit, error) {
	permit, err := s.permitRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if permit == nil {
		return nil, ErrNotFound
	}
	return permit, nil
}

func (s *permitServiceImpl) List(ctx context.Context) ([]*entity.LeavePermit, error) {
	return s.permitRepo.List(ctx)
}

func (s *permitServiceImpl) AdminQueue(ctx context.Context) ([]*entity.LeavePermit, error) {
	permits, err := s.permitRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return entity.AdminQueue(permits), nil
}

func (s *permitServiceImpl) SecurityOutQueue(ctx context.Context) ([]*entity.LeavePermit, error) {
	permits, err := s.permitRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return entity.SecurityOutQueue(permits), nil
}

func (s *permitServiceImpl) SecurityReturnQueue(ctx context.Context) ([]*entity.LeavePermit, error) {
	permits, err := s.permitRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return entity.SecurityReturnQueue(permits), nil
}

func (s *permitServiceImpl) EmployeePermits(ctx context.Context, employeeID string) ([]*entity.LeavePermit, error) {
	permits, err := s.permitRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return entity.EmployeePermits(permits, employeeID), nil
}

func (s *permitServiceImpl) MonthlyRecap(ctx context.Context, month string) ([]*entity.LeavePermit, error) {
	permits, err := s.permitRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return entity.MonthlyRecap(permits, month), nil
}

func (s *permitServiceImpl) notifyChanged(ctx context.Context, id string) {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.DispatchAsync(ctx, event.DocumentChanged(event.TypePermitChanged, id))
}
