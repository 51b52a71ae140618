package service

import (
	"context"
	"fmt"

	"github.com/awahyudi/facility-portal/internal/application/dispatcher"
	"github.com/awahyudi/facility-portal/internal/application/port"
	"github.com/awahyudi/facility-portal/internal/domain/entity"
	"github.com/awahyudi/facility-portal/internal/domain/event"
)

// BriefingService records safety briefings. Briefings are append-only.
type BriefingService interface {
	Add(ctx context.Context, b *entity.SafetyBriefing) error
	List(ctx context.Context) ([]*entity.SafetyBriefing, error)
}

type briefingServiceImpl struct {
	repo       port.BriefingRepository
	dispatcher dispatcher.Dispatcher
	logger     Logger
}

// NewBriefingService creates a BriefingService.
func NewBriefingService(repo port.BriefingRepository, d dispatcher.Dispatcher, logger Logger) BriefingService {
	return &briefingServiceImpl{repo: repo, dispatcher: d, logger: logger}
}

func (s *briefingServiceImpl) Add(ctx context.Context, b *entity.SafetyBriefing) error {
	if b.Topic == "" || b.Conductor == "" {
		return fmt.Errorf("briefing topic and conductor are required")
	}
	if err := s.repo.Create(ctx, b); err != nil {
		s.logger.Error("Failed to add briefing", "error", err, "topic", b.Topic)
		return fmt.Errorf("add briefing: %w", err)
	}
	s.logger.Info("Safety briefing recorded", "id", b.ID, "topic", b.Topic, "attendees", len(b.Attendees))
	if s.dispatcher != nil {
		s.dispatcher.DispatchAsync(ctx, event.DocumentChanged(event.TypeBriefingChanged, b.ID))
	}
	return nil
}

func (s *briefingServiceImpl) List(ctx context.Context) ([]*entity.SafetyBriefing, error) {
	return s.repo.List(ctx)
}
