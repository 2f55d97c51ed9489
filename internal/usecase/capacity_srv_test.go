package usecase

import (
	"context"
	"testing"
	"time"

	"theater-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapacityReserve(t *testing.T) {
	t.Run("takes seats", func(t *testing.T) {
		eventID := uuid.New()
		var reservedPersons int

		mocks := newTestMocks()
		mocks.event.ReserveCapacityFunc = func(ctx context.Context, id uuid.UUID, persons int) (bool, error) {
			assert.Equal(t, eventID, id)
			reservedPersons = persons
			return true, nil
		}
		service := NewCapacityService(mocks.repo(), testLogger(), nil)

		require.NoError(t, service.Reserve(context.Background(), eventID, 12))
		assert.Equal(t, 12, reservedPersons)
	})

	t.Run("full event fails with capacity error", func(t *testing.T) {
		mocks := newTestMocks()
		mocks.event.ReserveCapacityFunc = func(ctx context.Context, id uuid.UUID, persons int) (bool, error) {
			return false, nil
		}
		service := NewCapacityService(mocks.repo(), testLogger(), nil)

		err := service.Reserve(context.Background(), uuid.New(), 12)
		require.Error(t, err)
		assert.ErrorIs(t, err, entity.ErrCapacityExceeded)
	})

	t.Run("zero persons is a no-op", func(t *testing.T) {
		mocks := newTestMocks()
		mocks.event.ReserveCapacityFunc = func(ctx context.Context, id uuid.UUID, persons int) (bool, error) {
			t.Fatal("no seats should move")
			return false, nil
		}
		service := NewCapacityService(mocks.repo(), testLogger(), nil)

		require.NoError(t, service.Reserve(context.Background(), uuid.New(), 0))
	})
}

func TestCapacityRelease_ReopensWaitlist(t *testing.T) {
	eventID := uuid.New()
	event := &entity.Event{
		Base:              entity.Base{ID: eventID},
		Date:              time.Date(2026, 1, 3, 19, 0, 0, 0, time.UTC),
		Capacity:          230,
		RemainingCapacity: 4,
		WaitlistActive:    true,
	}

	var clearedFlag *bool
	publisher := &publisherMock{}

	mocks := newTestMocks()
	mocks.event.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
		return event, nil
	}
	mocks.event.SetWaitlistActiveFunc = func(ctx context.Context, id uuid.UUID, active bool) error {
		clearedFlag = &active
		return nil
	}
	service := NewCapacityService(mocks.repo(), testLogger(), publisher)

	require.NoError(t, service.Release(context.Background(), eventID, 4))

	require.NotNil(t, clearedFlag)
	assert.False(t, *clearedFlag)
	require.Len(t, publisher.published, 1)
	assert.Equal(t, "event.waitlist_reopened", publisher.published[0].routingKey)
}

func TestCapacityRelease_WaitlistStaysArmedWhenStillFull(t *testing.T) {
	event := &entity.Event{
		Base:              entity.Base{ID: uuid.New()},
		RemainingCapacity: 0,
		WaitlistActive:    true,
	}

	mocks := newTestMocks()
	mocks.event.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
		return event, nil
	}
	mocks.event.SetWaitlistActiveFunc = func(ctx context.Context, id uuid.UUID, active bool) error {
		t.Fatal("gate must stay armed while the event is full")
		return nil
	}
	service := NewCapacityService(mocks.repo(), testLogger(), nil)

	require.NoError(t, service.Release(context.Background(), event.ID, 2))
}

func TestApplyStatusChange(t *testing.T) {
	tests := []struct {
		name     string
		from     entity.ReservationStatus
		to       entity.ReservationStatus
		reserves bool
		releases bool
	}{
		{"cancellation frees seats", entity.ReservationStatusConfirmed, entity.ReservationStatusCancelled, false, true},
		{"reactivation takes seats", entity.ReservationStatusCancelled, entity.ReservationStatusConfirmed, true, false},
		{"active to active moves nothing", entity.ReservationStatusPending, entity.ReservationStatusCheckedIn, false, false},
		{"inactive to inactive moves nothing", entity.ReservationStatusCancelled, entity.ReservationStatusRejected, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reserved, released := false, false

			mocks := newTestMocks()
			mocks.event.ReserveCapacityFunc = func(ctx context.Context, id uuid.UUID, persons int) (bool, error) {
				reserved = true
				return true, nil
			}
			mocks.event.ReleaseCapacityFunc = func(ctx context.Context, id uuid.UUID, persons int) error {
				released = true
				return nil
			}
			service := NewCapacityService(mocks.repo(), testLogger(), nil)

			err := service.ApplyStatusChange(context.Background(), uuid.New(), 8, tt.from, tt.to)
			require.NoError(t, err)
			assert.Equal(t, tt.reserves, reserved)
			assert.Equal(t, tt.releases, released)
		})
	}
}

func TestApplyPersonsChange(t *testing.T) {
	t.Run("growth reserves the delta", func(t *testing.T) {
		var delta int
		mocks := newTestMocks()
		mocks.event.ReserveCapacityFunc = func(ctx context.Context, id uuid.UUID, persons int) (bool, error) {
			delta = persons
			return true, nil
		}
		service := NewCapacityService(mocks.repo(), testLogger(), nil)

		require.NoError(t, service.ApplyPersonsChange(context.Background(), uuid.New(), 10, 14, entity.ReservationStatusConfirmed))
		assert.Equal(t, 4, delta)
	})

	t.Run("shrink releases the delta", func(t *testing.T) {
		var delta int
		mocks := newTestMocks()
		mocks.event.ReleaseCapacityFunc = func(ctx context.Context, id uuid.UUID, persons int) error {
			delta = persons
			return nil
		}
		service := NewCapacityService(mocks.repo(), testLogger(), nil)

		require.NoError(t, service.ApplyPersonsChange(context.Background(), uuid.New(), 14, 10, entity.ReservationStatusConfirmed))
		assert.Equal(t, 4, delta)
	})

	t.Run("inactive reservation moves nothing", func(t *testing.T) {
		mocks := newTestMocks()
		mocks.event.ReserveCapacityFunc = func(ctx context.Context, id uuid.UUID, persons int) (bool, error) {
			t.Fatal("cancelled reservations hold no seats")
			return false, nil
		}
		service := NewCapacityService(mocks.repo(), testLogger(), nil)

		require.NoError(t, service.ApplyPersonsChange(context.Background(), uuid.New(), 10, 14, entity.ReservationStatusCancelled))
	})
}

func TestGetAvailability(t *testing.T) {
	eventID := uuid.New()
	event := &entity.Event{
		Base:              entity.Base{ID: eventID},
		Capacity:          230,
		RemainingCapacity: 200,
		WaitlistActive:    false,
	}

	mocks := newTestMocks()
	mocks.event.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
		return event, nil
	}
	mocks.reservation.SumActivePersonsByEventFunc = func(ctx context.Context, id uuid.UUID) (int, error) {
		return 30, nil
	}
	mocks.waitlist.CountPendingByEventFunc = func(ctx context.Context, id uuid.UUID) (int64, error) {
		return 3, nil
	}
	service := NewCapacityService(mocks.repo(), testLogger(), nil)

	availability, err := service.GetAvailability(context.Background(), eventID)
	require.NoError(t, err)

	assert.Equal(t, 230, availability.Capacity)
	assert.Equal(t, 200, availability.RemainingCapacity)
	assert.Equal(t, 30, availability.ReservedPersons)
	assert.False(t, availability.SoldOut)
	assert.Equal(t, int64(3), availability.PendingWaitlist)
}
