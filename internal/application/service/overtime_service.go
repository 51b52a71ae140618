package service

import (
	"context"
	"fmt"

	"github.com/awahyudi/facility-portal/internal/application/dispatcher"
	"github.com/awahyudi/facility-portal/internal/application/port"
	"github.com/awahyudi/facility-portal/internal/domain/entity"
	"github.com/awahyudi/facility-portal/internal/domain/event"
)

// OvertimeService manages overtime claims. Unlike leave permits these are
// plain CRUD records with a simple Pending/Approved/Rejected status field.
type OvertimeService interface {
	Add(ctx context.Context, rec *entity.OvertimeRecord) error
	Update(ctx context.Context, rec *entity.OvertimeRecord) error
	Delete(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id, status string) error
	List(ctx context.Context) ([]*entity.OvertimeRecord, error)
}

type overtimeServiceImpl struct {
	repo       port.OvertimeRepository
	dispatcher dispatcher.Dispatcher
	logger     Logger
}

// NewOvertimeService creates an OvertimeService.
func NewOvertimeService(repo port.OvertimeRepository, d dispatcher.Dispatcher, logger Logger) OvertimeService {
	return &overtimeServiceImpl{repo: repo, dispatcher: d, logger: logger}
}

func (s *overtimeServiceImpl) Add(ctx context.Context, rec *entity.OvertimeRecord) error {
	if rec.Status == "" {
		rec.Status = entity.OvertimeStatusPending
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		s.logger.Error("Failed to add overtime", "error", err, "employee_id", rec.EmployeeID)
		return fmt.Errorf("add overtime: %w", err)
	}
	s.logger.Info("Overtime recorded", "id", rec.ID, "employee_id", rec.EmployeeID, "date", rec.Date)
	s.notifyChanged(ctx, rec.ID)
	return nil
}

func (s *overtimeServiceImpl) Update(ctx context.Context, rec *entity.OvertimeRecord) error {
	if err := s.repo.Update(ctx, rec); err != nil {
		s.logger.Error("Failed to update overtime", "error", err, "id", rec.ID)
		return fmt.Errorf("update overtime: %w", err)
	}
	s.notifyChanged(ctx, rec.ID)
	return nil
}

func (s *overtimeServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete overtime", "error", err, "id", id)
		return fmt.Errorf("delete overtime: %w", err)
	}
	s.notifyChanged(ctx, id)
	return nil
}

func (s *overtimeServiceImpl) SetStatus(ctx context.Context, id, status string) error {
	switch status {
	case entity.OvertimeStatusPending, entity.OvertimeStatusApproved, entity.OvertimeStatusRejected:
	default:
		return fmt.Errorf("unknown overtime status: %s", status)
	}

	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if rec == nil {
		return ErrNotFound
	}
	rec.Status = status
	return s.Update(ctx, rec)
}

func (s *overtimeServiceImpl) List(ctx context.Context) ([]*entity.OvertimeRecord, error) {
	return s.repo.List(ctx)
}

func (s *overtimeServiceImpl) notifyChanged(ctx context.Context, id string) {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.DispatchAsync(ctx, event.DocumentChanged(event.TypeOvertimeChanged, id))
}
