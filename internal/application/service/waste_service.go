package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/awahyudi/facility-portal/internal/application/dispatcher"
	"github.com/awahyudi/facility-portal/internal/application/port"
	"github.com/awahyudi/facility-portal/internal/domain/entity"
	"github.com/awahyudi/facility-portal/internal/domain/event"
)

// WasteService manages the hazardous-waste (B3) logbook.
type WasteService interface {
	Add(ctx context.Context, rec *entity.WasteRecord) error
	Update(ctx context.Context, rec *entity.WasteRecord) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.WasteRecord, error)

	// DailySummary renders a one-line-per-record text summary of the
	// given intake date, consumed by the daily-report generator.
	DailySummary(ctx context.Context, date string) (string, error)
}

type wasteServiceImpl struct {
	repo       port.WasteRepository
	dispatcher dispatcher.Dispatcher
	logger     Logger
}

// NewWasteService creates a WasteService.
func NewWasteService(repo port.WasteRepository, d dispatcher.Dispatcher, logger Logger) WasteService {
	return &wasteServiceImpl{repo: repo, dispatcher: d, logger: logger}
}

func (s *wasteServiceImpl) Add(ctx context.Context, rec *entity.WasteRecord) error {
	if rec.Quantity <= 0 {
		return fmt.Errorf("waste quantity must be positive")
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		s.logger.Error("Failed to add waste record", "error", err, "jenis", rec.Kind)
		return fmt.Errorf("add waste record: %w", err)
	}
	s.logger.Info("Waste recorded", "id", rec.ID, "jenis", rec.Kind, "jumlah", rec.Quantity, "unit", rec.Unit)
	s.notifyChanged(ctx, rec.ID)
	return nil
}

func (s *wasteServiceImpl) Update(ctx context.Context, rec *entity.WasteRecord) error {
	if err := s.repo.Update(ctx, rec); err != nil {
		s.logger.Error("Failed to update waste record", "error", err, "id", rec.ID)
		return fmt.Errorf("update waste record: %w", err)
	}
	s.notifyChanged(ctx, rec.ID)
	return nil
}

func (s *wasteServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("Failed to delete waste record", "error", err, "id", id)
		return fmt.Errorf("delete waste record: %w", err)
	}
	s.notifyChanged(ctx, id)
	return nil
}

func (s *wasteServiceImpl) List(ctx context.Context) ([]*entity.WasteRecord, error) {
	return s.repo.List(ctx)
}

func (s *wasteServiceImpl) DailySummary(ctx context.Context, date string) (string, error) {
	records, err := s.repo.ListByIntakeDate(ctx, date)
	if err != nil {
		return "", fmt.Errorf("waste summary: %w", err)
	}
	if len(records) == 0 {
		return "Tidak ada limbah B3 masuk.", nil
	}

	var b strings.Builder
	for _, rec := range records {
		fmt.Fprintf(&b, "%s: %.2f %s dari %s (%s)\n", rec.Kind, rec.Quantity, rec.Unit, rec.Source, rec.Treatment)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func (s *wasteServiceImpl) notifyChanged(ctx context.Context, id string) {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.DispatchAsync(ctx, event.DocumentChanged(event.TypeWasteChanged, id))
}
