package service

import (
	"context"
	"fmt"

	"github.com/awahyudi/facility-portal/internal/application/dispatcher"
	"github.com/awahyudi/facility-portal/internal/application/port"
	"github.com/awahyudi/facility-portal/internal/domain/entity"
	"github.com/awahyudi/facility-portal/internal/domain/event"
)

// SarprasService manages the facility asset inventory.
type SarprasService interface {
	Add(ctx context.Context, item *entity.SarprasItem) error
	Update(ctx context.Context, item *entity.SarprasItem) error
	List(ctx context.Context) ([]*entity.SarprasItem, error)
}

type sarprasServiceImpl struct {
	repo       port.SarprasRepository
	dispatcher dispatcher.Dispatcher
	logger     Logger
}

// NewSarprasService creates a SarprasService.
func NewSarprasService(repo port.SarprasRepository, d dispatcher.Dispatcher, logger Logger) SarprasService {
	return &sarprasServiceImpl{repo: repo, dispatcher: d, logger: logger}
}

func validAssetCondition(c string) bool {
	switch c {
	case entity.AssetConditionGood, entity.AssetConditionNeedsRepair, entity.AssetConditionBroken:
		return true
	}
	return false
}

func (s *sarprasServiceImpl) Add(ctx context.Context, item *entity.SarprasItem) error {
	if !validAssetCondition(item.Condition) {
		return fmt.Errorf("unknown asset condition: %s", item.Condition)
	}
	if err := s.repo.Create(ctx, item); err != nil {
		s.logger.Error("Failed to add asset", "error", err, "name", item.Name)
		return fmt.Errorf("add asset: %w", err)
	}
	s.logger.Info("Asset recorded", "id", item.ID, "name", item.Name, "condition", item.Condition)
	s.notifyChanged(ctx, item.ID)
	return nil
}

func (s *sarprasServiceImpl) Update(ctx context.Context, item *entity.SarprasItem) error {
	if !validAssetCondition(item.Condition) {
		return fmt.Errorf("unknown asset condition: %s", item.Condition)
	}
	if err := s.repo.Update(ctx, item); err != nil {
		s.logger.Error("Failed to update asset", "error", err, "id", item.ID)
		return fmt.Errorf("update asset: %w", err)
	}
	s.notifyChanged(ctx, item.ID)
	return nil
}

func (s *sarprasServiceImpl) List(ctx context.Context) ([]*entity.SarprasItem, error) {
	return s.repo.List(ctx)
}

func (s *sarprasServiceImpl) notifyChanged(ctx context.Context, id string) {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.DispatchAsync(ctx, event.DocumentChanged(event.TypeSarprasChanged, id))
}
