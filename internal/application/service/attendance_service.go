package service

import (
	"context"
	"fmt"

	"github.com/awahyudi/facility-portal/internal/application/dispatcher"
	"github.com/awahyudi/facility-portal/internal/application/port"
	"github.com/awahyudi/facility-portal/internal/domain/entity"
	"github.com/awahyudi/facility-portal/internal/domain/event"
)

// AttendanceService manages the daily attendance ledger: one record per
// employee per date.
type AttendanceService interface {
	// ClockIn creates the day's record at Present. Clocking in twice on
	// the same day is rejected.
	ClockIn(ctx context.Context, employeeID, employeeName, date, time, notes string) (*entity.AttendanceRecord, error)

	// ClockOut stamps the clock-out time on the existing record.
	ClockOut(ctx context.Context, employeeID, date, time, notes string) (*entity.AttendanceRecord, error)

	// Update applies an admin correction to an existing record.
	Update(ctx context.Context, rec *entity.AttendanceRecord) error

	Get(ctx context.Context, employeeID, date string) (*entity.AttendanceRecord, error)
	ListByDate(ctx context.Context, date string) ([]*entity.AttendanceRecord, error)
	List(ctx context.Context) ([]*entity.AttendanceRecord, error)
}

type attendanceServiceImpl struct {
	repo       port.AttendanceRepository
	dispatcher dispatcher.Dispatcher
	logger     Logger
}

// NewAttendanceService creates an AttendanceService.
func NewAttendanceService(repo port.AttendanceRepository, d dispatcher.Dispatcher, logger Logger) AttendanceService {
	return &attendanceServiceImpl{repo: repo, dispatcher: d, logger: logger}
}

func (s *attendanceServiceImpl) ClockIn(ctx context.Context, employeeID, employeeName, date, time, notes string) (*entity.AttendanceRecord, error) {
	existing, err := s.repo.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return nil, fmt.Errorf("attendance lookup: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("employee %s already has an attendance record for %s", employeeID, date)
	}

	if notes == "" {
		notes = "-"
	}
	rec := &entity.AttendanceRecord{
		EmployeeID:   employeeID,
		EmployeeName: employeeName,
		Date:         date,
		Status:       entity.AttendanceStatusPresent,
		ClockIn:      time,
		ClockOut:     "-",
		LeaveOut:     "-",
		ReturnIn:     "-",
		Notes:        notes,
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		s.logger.Error("Failed to clock in", "error", err, "employee_id", employeeID, "date", date)
		return nil, fmt.Errorf("clock in: %w", err)
	}

	s.logger.Info("Employee clocked in", "employee_id", employeeID, "date", date, "time", time)
	s.notifyChanged(ctx, rec.ID)
	return rec, nil
}

func (s *attendanceServiceImpl) ClockOut(ctx context.Context, employeeID, date, time, notes string) (*entity.AttendanceRecord, error) {
	rec, err := s.repo.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return nil, fmt.Errorf("attendance lookup: %w", err)
	}
	if rec == nil {
		return nil, ErrNotFound
	}

	rec.ClockOut = time
	rec.Status = entity.AttendanceStatusClockedOut
	if notes != "" {
		rec.Notes = notes
	}

	if err := s.repo.Update(ctx, rec); err != nil {
		s.logger.Error("Failed to clock out", "error", err, "employee_id", employeeID, "date", date)
		return nil, fmt.Errorf("clock out: %w", err)
	}

	s.logger.Info("Employee clocked out", "employee_id", employeeID, "date", date, "time", time)
	s.notifyChanged(ctx, rec.ID)
	return rec, nil
}

func (s *attendanceServiceImpl) Update(ctx context.Context, rec *entity.AttendanceRecord) error {
	if err := s.repo.Update(ctx, rec); err != nil {
		s.logger.Error("Failed to update attendance", "error", err, "id", rec.ID)
		return fmt.Errorf("update attendance: %w", err)
	}
	s.notifyChanged(ctx, rec.ID)
	return nil
}

func (s *attendanceServiceImpl) Get(ctx context.Context, employeeID, date string) (*entity.AttendanceRecord, error) {
	return s.repo.GetByEmployeeAndDate(ctx, employeeID, date)
}

func (s *attendanceServiceImpl) ListByDate(ctx context.Context, date string) ([]*entity.AttendanceRecord, error) {
	return s.repo.ListByDate(ctx, date)
}

func (s *attendanceServiceImpl) List(ctx context.Context) ([]*entity.AttendanceRecord, error) {
	return s.repo.List(ctx)
}

func (s *attendanceServiceImpl) notifyChanged(ctx context.Context, id string) {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.DispatchAsync(ctx, event.DocumentChanged(event.TypeAttendanceChanged, id))
}
