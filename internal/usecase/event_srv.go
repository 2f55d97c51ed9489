package usecase

import (
	"context"
	"fmt"
	"time"

	"theater-booking/internal/data/entity"
	"theater-booking/internal/data/repository"
	"theater-booking/internal/dto/request"
	"theater-booking/internal/dto/response"
	"theater-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type EventService interface {
	CreateEvent(ctx context.Context, req *request.CreateEventRequest) (*response.EventResponse, error)
	GetEvents(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.EventResponse], error)
	GetEventsByDateRange(ctx context.Context, from, to string) ([]response.EventResponse, error)
	GetEventByID(ctx context.Context, eventID string) (*response.EventResponse, error)
	UpdateEvent(ctx context.Context, eventID string, req *request.UpdateEventRequest) (*response.EventResponse, error)
	DeleteEvent(ctx context.Context, eventID string) error
}

type eventService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewEventService(repo *repository.Repository, config *utils.Config, log *zap.Logger) EventService {
	return &eventService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "event")),
	}
}

func (s *eventService) CreateEvent(ctx context.Context, req *request.CreateEventRequest) (*response.EventResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create event validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid event date %s: %w", req.Date, err)
	}

	capacity := req.Capacity
	if capacity == 0 {
		capacity = s.config.Booking.DefaultCapacity
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	now := time.Now()
	event := &entity.Event{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Date:                date,
		Type:                entity.EventType(req.Type),
		Capacity:            capacity,
		RemainingCapacity:   capacity,
		AllowedArrangements: toArrangements(req.AllowedArrangements),
		CustomPricing:       toCustomPricing(req.CustomPricing),
		DoorsOpen:           req.DoorsOpen,
		StartsAt:            req.StartsAt,
		EndsAt:              req.EndsAt,
		IsActive:            isActive,
	}

	if err := s.repo.Event.Create(ctx, event); err != nil {
		s.log.Error("Failed to create event",
			zap.Error(err),
			zap.String("date", req.Date),
		)
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.log.Info("Event created",
		zap.String("event_id", event.ID.String()),
		zap.String("date", req.Date),
		zap.String("type", req.Type),
		zap.Int("capacity", capacity),
	)

	resp := response.EventToResponse(event)
	return &resp, nil
}

func (s *eventService) GetEvents(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.EventResponse], error) {
	events, err := s.repo.Event.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get events", zap.Error(err))
		return nil, fmt.Errorf("get events: %w", err)
	}

	total, err := s.repo.Event.Count(ctx)
	if err != nil {
		s.log.Error("Failed to count events", zap.Error(err))
		return nil, fmt.Errorf("count events: %w", err)
	}

	eventResponses := make([]response.EventResponse, len(events))
	for i, event := range events {
		eventResponses[i] = response.EventToResponse(event)
	}

	return response.NewPaginatedResponse(eventResponses, req.Page, req.PerPage, total), nil
}

func (s *eventService) GetEventsByDateRange(ctx context.Context, from, to string) ([]response.EventResponse, error) {
	fromDate, err := time.Parse("2006-01-02", from)
	if err != nil {
		return nil, fmt.Errorf("invalid from date %s: %w", from, err)
	}
	toDate, err := time.Parse("2006-01-02", to)
	if err != nil {
		return nil, fmt.Errorf("invalid to date %s: %w", to, err)
	}

	events, err := s.repo.Event.FindByDateRange(ctx, fromDate, toDate.Add(24*time.Hour-time.Second))
	if err != nil {
		s.log.Error("Failed to get events by date range",
			zap.Error(err),
			zap.String("from", from),
			zap.String("to", to),
		)
		return nil, fmt.Errorf("get events by date range: %w", err)
	}

	eventResponses := make([]response.EventResponse, len(events))
	for i, event := range events {
		eventResponses[i] = response.EventToResponse(event)
	}

	return eventResponses, nil
}

func (s *eventService) GetEventByID(ctx context.Context, eventID string) (*response.EventResponse, error) {
	id, err := uuid.Parse(eventID)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID format %s: %w", eventID, err)
	}

	event, err := s.repo.Event.FindByID(ctx, id)
	if err != nil || event == nil {
		return nil, fmt.Errorf("event %s not found", eventID)
	}

	resp := response.EventToResponse(event)
	return &resp, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, eventID string, req *request.UpdateEventRequest) (*response.EventResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update event validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(eventID)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID format %s: %w", eventID, err)
	}

	event, err := s.repo.Event.FindByID(ctx, id)
	if err != nil || event == nil {
		return nil, fmt.Errorf("event %s not found", eventID)
	}

	if req.Date != "" {
		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid event date %s: %w", req.Date, err)
		}
		event.Date = date
	}
	if req.Type != "" {
		event.Type = entity.EventType(req.Type)
	}
	if req.Capacity != nil && *req.Capacity != event.Capacity {
		// Keep the seats-in-use count stable: remaining moves by the same
		// delta as capacity, floored at zero.
		delta := *req.Capacity - event.Capacity
		event.Capacity = *req.Capacity
		event.RemainingCapacity = max(0, event.RemainingCapacity+delta)
	}
	if req.AllowedArrangements != nil {
		event.AllowedArrangements = toArrangements(req.AllowedArrangements)
	}
	if req.CustomPricing != nil {
		event.CustomPricing = toCustomPricing(req.CustomPricing)
	}
	if req.DoorsOpen != "" {
		event.DoorsOpen = req.DoorsOpen
	}
	if req.StartsAt != "" {
		event.StartsAt = req.StartsAt
	}
	if req.EndsAt != "" {
		event.EndsAt = req.EndsAt
	}
	if req.IsActive != nil {
		event.IsActive = *req.IsActive
	}
	if req.WaitlistActive != nil {
		event.WaitlistActive = *req.WaitlistActive
	}
	event.UpdatedAt = time.Now()

	if err := s.repo.Event.Update(ctx, event); err != nil {
		s.log.Error("Failed to update event",
			zap.Error(err),
			zap.String("event_id", eventID),
		)
		return nil, fmt.Errorf("update event: %w", err)
	}

	s.log.Info("Event updated", zap.String("event_id", eventID))

	resp := response.EventToResponse(event)
	return &resp, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, eventID string) error {
	id, err := uuid.Parse(eventID)
	if err != nil {
		return fmt.Errorf("invalid event ID format %s: %w", eventID, err)
	}

	reservations, err := s.repo.Reservation.FindByEventID(ctx, id)
	if err != nil {
		return fmt.Errorf("check reservations for event %s: %w", eventID, err)
	}
	for _, reservation := range reservations {
		if reservation.IsActive() {
			return fmt.Errorf("event %s still has active reservations", eventID)
		}
	}

	if err := s.repo.Event.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete event",
			zap.Error(err),
			zap.String("event_id", eventID),
		)
		return fmt.Errorf("delete event: %w", err)
	}

	return nil
}

func toArrangements(values []string) []entity.Arrangement {
	if len(values) == 0 {
		return nil
	}
	arrangements := make([]entity.Arrangement, len(values))
	for i, v := range values {
		arrangements[i] = entity.Arrangement(v)
	}
	return arrangements
}

func toCustomPricing(values map[string]float64) map[entity.Arrangement]float64 {
	if len(values) == 0 {
		return nil
	}
	pricing := make(map[entity.Arrangement]float64, len(values))
	for arrangement, price := range values {
		pricing[entity.Arrangement(arrangement)] = price
	}
	return pricing
}
