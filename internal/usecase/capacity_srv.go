package usecase

import (
	"context"
	"fmt"

	"theater-booking/internal/data/entity"
	"theater-booking/internal/data/repository"
	"theater-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CapacityService is the single authority over remaining_capacity. Every
// reservation mutation routes its seat delta through here so the conditional
// updates in the repository serialize concurrent bookings per event.
type CapacityService interface {
	// Reserve takes persons seats or fails with ErrCapacityExceeded.
	Reserve(ctx context.Context, eventID uuid.UUID, persons int) error

	// Release returns persons seats and lets the waitlist gate observe the
	// freed capacity.
	Release(ctx context.Context, eventID uuid.UUID, persons int) error

	// ApplyStatusChange routes the seat delta of a status transition.
	ApplyStatusChange(ctx context.Context, eventID uuid.UUID, persons int, from, to entity.ReservationStatus) error

	// ApplyPersonsChange routes the seat delta of a person-count edit on a
	// reservation in the given status.
	ApplyPersonsChange(ctx context.Context, eventID uuid.UUID, oldPersons, newPersons int, status entity.ReservationStatus) error

	// GetAvailability summarizes the ledger for one event and audits the
	// invariant capacity - remaining == active reserved persons.
	GetAvailability(ctx context.Context, eventID uuid.UUID) (*response.AvailabilityResponse, error)
}

type capacityService struct {
	repo      *repository.Repository
	log       *zap.Logger
	publisher EventPublisher
}

func NewCapacityService(repo *repository.Repository, log *zap.Logger, publisher EventPublisher) CapacityService {
	return &capacityService{
		repo:      repo,
		log:       log.With(zap.String("service", "capacity")),
		publisher: publisher,
	}
}

func (s *capacityService) Reserve(ctx context.Context, eventID uuid.UUID, persons int) error {
	if persons <= 0 {
		return nil
	}

	reserved, err := s.repo.Event.ReserveCapacity(ctx, eventID, persons)
	if err != nil {
		return fmt.Errorf("reserve %d seats for event %s: %w", persons, eventID.String(), err)
	}
	if !reserved {
		s.log.Warn("Capacity exceeded",
			zap.String("event_id", eventID.String()),
			zap.Int("persons", persons),
		)
		return fmt.Errorf("%d seats for event %s: %w", persons, eventID.String(), entity.ErrCapacityExceeded)
	}

	s.log.Info("Capacity reserved",
		zap.String("event_id", eventID.String()),
		zap.Int("persons", persons),
	)
	return nil
}

func (s *capacityService) Release(ctx context.Context, eventID uuid.UUID, persons int) error {
	if persons <= 0 {
		return nil
	}

	if err := s.repo.Event.ReleaseCapacity(ctx, eventID, persons); err != nil {
		return fmt.Errorf("release %d seats for event %s: %w", persons, eventID.String(), err)
	}

	s.log.Info("Capacity released",
		zap.String("event_id", eventID.String()),
		zap.Int("persons", persons),
	)

	s.reopenWaitlist(ctx, eventID)
	return nil
}

// reopenWaitlist clears the waitlist flag once seats come back. Failures are
// logged and swallowed: the release itself already happened.
func (s *capacityService) reopenWaitlist(ctx context.Context, eventID uuid.UUID) {
	event, err := s.repo.Event.FindByID(ctx, eventID)
	if err != nil || event == nil {
		s.log.Error("Failed to load event for waitlist gate",
			zap.Error(err),
			zap.String("event_id", eventID.String()),
		)
		return
	}

	if !event.WaitlistActive || event.RemainingCapacity <= 0 {
		return
	}

	if err := s.repo.Event.SetWaitlistActive(ctx, eventID, false); err != nil {
		s.log.Error("Failed to clear waitlist flag",
			zap.Error(err),
			zap.String("event_id", eventID.String()),
		)
		return
	}

	s.log.Info("Waitlist reopened",
		zap.String("event_id", eventID.String()),
		zap.Int("remaining_capacity", event.RemainingCapacity),
	)

	if s.publisher != nil {
		payload := map[string]any{
			"event_id":           eventID.String(),
			"event_date":         event.Date.Format("2006-01-02"),
			"remaining_capacity": event.RemainingCapacity,
		}
		if err := s.publisher.Publish("event.waitlist_reopened", payload); err != nil {
			s.log.Error("Failed to publish waitlist reopened",
				zap.Error(err),
				zap.String("event_id", eventID.String()),
			)
		}
	}
}

func (s *capacityService) ApplyStatusChange(ctx context.Context, eventID uuid.UUID, persons int, from, to entity.ReservationStatus) error {
	wasActive := from.CountsTowardCapacity()
	isActive := to.CountsTowardCapacity()

	switch {
	case !wasActive && isActive:
		return s.Reserve(ctx, eventID, persons)
	case wasActive && !isActive:
		return s.Release(ctx, eventID, persons)
	default:
		// Both sides hold (or both free) the same seats; nothing moves.
		return nil
	}
}

func (s *capacityService) ApplyPersonsChange(ctx context.Context, eventID uuid.UUID, oldPersons, newPersons int, status entity.ReservationStatus) error {
	if !status.CountsTowardCapacity() || oldPersons == newPersons {
		return nil
	}

	if newPersons > oldPersons {
		return s.Reserve(ctx, eventID, newPersons-oldPersons)
	}
	return s.Release(ctx, eventID, oldPersons-newPersons)
}

func (s *capacityService) GetAvailability(ctx context.Context, eventID uuid.UUID) (*response.AvailabilityResponse, error) {
	event, err := s.repo.Event.FindByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("get availability for event %s: %w", eventID.String(), err)
	}
	if event == nil {
		return nil, fmt.Errorf("event %s not found", eventID.String())
	}

	reserved, err := s.repo.Reservation.SumActivePersonsByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("get availability for event %s: %w", eventID.String(), err)
	}

	pendingWaitlist, err := s.repo.Waitlist.CountPendingByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("get availability for event %s: %w", eventID.String(), err)
	}

	if event.Capacity-event.RemainingCapacity != reserved {
		s.log.Warn("Capacity ledger out of sync with reservations",
			zap.String("event_id", eventID.String()),
			zap.Int("capacity", event.Capacity),
			zap.Int("remaining_capacity", event.RemainingCapacity),
			zap.Int("reserved_persons", reserved),
		)
	}

	return &response.AvailabilityResponse{
		EventID:           event.ID.String(),
		Capacity:          event.Capacity,
		RemainingCapacity: event.RemainingCapacity,
		ReservedPersons:   reserved,
		SoldOut:           event.RemainingCapacity <= 0,
		WaitlistActive:    event.WaitlistActive,
		PendingWaitlist:   pendingWaitlist,
	}, nil
}
