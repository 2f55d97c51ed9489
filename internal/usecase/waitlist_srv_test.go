package usecase

import (
	"context"
	"testing"

	"theater-booking/internal/data/entity"
	"theater-booking/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func joinRequest(eventID uuid.UUID) *request.JoinWaitlistRequest {
	return &request.JoinWaitlistRequest{
		EventID:         eventID.String(),
		ContactName:     "Sam Bakker",
		ContactEmail:    "sam@example.com",
		NumberOfPersons: 4,
	}
}

func TestJoinWaitlist_RejectsEventWithSeats(t *testing.T) {
	event := weekendEvent()
	event.RemainingCapacity = 12

	mocks := newTestMocks()
	mocks.event.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
		return event, nil
	}
	service := NewWaitlistService(mocks.repo(), testLogger())

	_, err := service.JoinWaitlist(context.Background(), joinRequest(event.ID))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "still has 12 seats available")
}

func TestJoinWaitlist_FirstJoinArmsGate(t *testing.T) {
	event := weekendEvent()
	event.RemainingCapacity = 0
	event.WaitlistActive = false

	var armed *bool
	var entry *entity.WaitlistEntry

	mocks := newTestMocks()
	mocks.event.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
		return event, nil
	}
	mocks.event.SetWaitlistActiveFunc = func(ctx context.Context, id uuid.UUID, active bool) error {
		armed = &active
		return nil
	}
	mocks.waitlist.CreateFunc = func(ctx context.Context, e *entity.WaitlistEntry) error {
		entry = e
		return nil
	}
	service := NewWaitlistService(mocks.repo(), testLogger())

	resp, err := service.JoinWaitlist(context.Background(), joinRequest(event.ID))
	require.NoError(t, err)
	require.NotNil(t, resp)

	require.NotNil(t, armed)
	assert.True(t, *armed)
	require.NotNil(t, entry)
	assert.Equal(t, entity.WaitlistStatusPending, entry.Status)
	assert.Equal(t, 4, entry.NumberOfPersons)
}

func TestJoinWaitlist_LaterJoinsLeaveGateAlone(t *testing.T) {
	event := weekendEvent()
	event.RemainingCapacity = 0
	event.WaitlistActive = true

	mocks := newTestMocks()
	mocks.event.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
		return event, nil
	}
	mocks.event.SetWaitlistActiveFunc = func(ctx context.Context, id uuid.UUID, active bool) error {
		t.Fatal("gate is already armed")
		return nil
	}
	service := NewWaitlistService(mocks.repo(), testLogger())

	_, err := service.JoinWaitlist(context.Background(), joinRequest(event.ID))
	require.NoError(t, err)
}

func TestUpdateWaitlistStatus(t *testing.T) {
	entryID := uuid.New()
	var storedStatus entity.WaitlistStatus

	mocks := newTestMocks()
	mocks.waitlist.UpdateStatusFunc = func(ctx context.Context, id uuid.UUID, status entity.WaitlistStatus) error {
		assert.Equal(t, entryID, id)
		storedStatus = status
		return nil
	}
	service := NewWaitlistService(mocks.repo(), testLogger())

	err := service.UpdateWaitlistStatus(context.Background(), entryID.String(),
		&request.UpdateWaitlistStatusRequest{Status: "converted"})
	require.NoError(t, err)
	assert.Equal(t, entity.WaitlistStatusConverted, storedStatus)
}
