package service

import (
	"context"
	"fmt"

	"github.com/awahyudi/facility-portal/internal/application/asyncop"
	"github.com/awahyudi/facility-portal/internal/application/dispatcher"
	"github.com/awahyudi/facility-portal/internal/application/port"
	"github.com/awahyudi/facility-portal/internal/domain/entity"
	"github.com/awahyudi/facility-portal/internal/domain/event"
)

// GuestService manages the reception guest book. Guest entries are
// append-only; the reception desk records a visit and never edits it.
type GuestService interface {
	Add(ctx context.Context, guest *entity.Guest) error

	// AddDetached records the visit as an async task for the optimistic
	// reception form.
	AddDetached(ctx context.Context, guest *entity.Guest) (*asyncop.Task, error)

	List(ctx context.Context) ([]*entity.Guest, error)
}

type guestServiceImpl struct {
	repo       port.GuestRepository
	dispatcher dispatcher.Dispatcher
	logger     Logger
}

// NewGuestService creates a GuestService.
func NewGuestService(repo port.GuestRepository, d dispatcher.Dispatcher, logger Logger) GuestService {
	return &guestServiceImpl{repo: repo, dispatcher: d, logger: logger}
}

func (s *guestServiceImpl) Add(ctx context.Context, guest *entity.Guest) error {
	if !entity.IsValidGuestZone(guest.Zone) {
		return fmt.Errorf("unknown access zone: %s", guest.Zone)
	}

	if err := s.repo.Create(ctx, guest); err != nil {
		s.logger.Error("Failed to add guest", "error", err, "name", guest.Name)
		return fmt.Errorf("add guest: %w", err)
	}

	s.logger.Info("Guest recorded", "id", guest.ID, "name", guest.Name, "zone", guest.Zone)
	if s.dispatcher != nil {
		s.dispatcher.DispatchAsync(ctx, event.DocumentChanged(event.TypeGuestChanged, guest.ID))
	}
	return nil
}

func (s *guestServiceImpl) AddDetached(ctx context.Context, guest *entity.Guest) (*asyncop.Task, error) {
	if !entity.IsValidGuestZone(guest.Zone) {
		return nil, fmt.Errorf("unknown access zone: %s", guest.Zone)
	}
	task := asyncop.Run(ctx, "guests", event.OpCreate, guest, func(taskCtx context.Context) error {
		return s.Add(taskCtx, guest)
	})
	return task, nil
}

func (s *guestServiceImpl) List(ctx context.Context) ([]*entity.Guest, error) {
	return s.repo.List(ctx)
}
