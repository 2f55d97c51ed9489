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

type WaitlistService interface {
	JoinWaitlist(ctx context.Context, req *request.JoinWaitlistRequest) (*response.WaitlistEntryResponse, error)
	GetWaitlistByEvent(ctx context.Context, eventID string) ([]response.WaitlistEntryResponse, error)
	UpdateWaitlistStatus(ctx context.Context, entryID string, req *request.UpdateWaitlistStatusRequest) error
	DeleteWaitlistEntry(ctx context.Context, entryID string) error
}

type waitlistService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewWaitlistService(repo *repository.Repository, log *zap.Logger) WaitlistService {
	return &waitlistService{
		repo: repo,
		log:  log.With(zap.String("service", "waitlist")),
	}
}

func (s *waitlistService) JoinWaitlist(ctx context.Context, req *request.JoinWaitlistRequest) (*response.WaitlistEntryResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Join waitlist validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID format %s: %w", req.EventID, err)
	}

	event, err := s.repo.Event.FindByID(ctx, eventID)
	if err != nil || event == nil {
		return nil, fmt.Errorf("event %s not found", req.EventID)
	}

	if event.RemainingCapacity > 0 {
		return nil, fmt.Errorf("event %s still has %d seats available", req.EventID, event.RemainingCapacity)
	}

	// First join on a sold-out event arms the gate.
	if !event.WaitlistActive {
		if err := s.repo.Event.SetWaitlistActive(ctx, eventID, true); err != nil {
			return nil, fmt.Errorf("activate waitlist for event %s: %w", req.EventID, err)
		}
	}

	now := time.Now()
	entry := &entity.WaitlistEntry{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		EventID:         eventID,
		ContactName:     req.ContactName,
		ContactEmail:    req.ContactEmail,
		ContactPhone:    req.ContactPhone,
		NumberOfPersons: req.NumberOfPersons,
		Status:          entity.WaitlistStatusPending,
	}

	if err := s.repo.Waitlist.Create(ctx, entry); err != nil {
		s.log.Error("Failed to create waitlist entry",
			zap.Error(err),
			zap.String("event_id", req.EventID),
		)
		return nil, fmt.Errorf("join waitlist: %w", err)
	}

	s.log.Info("Waitlist entry created",
		zap.String("entry_id", entry.ID.String()),
		zap.String("event_id", req.EventID),
		zap.Int("persons", req.NumberOfPersons),
	)

	resp := response.WaitlistEntryToResponse(entry)
	return &resp, nil
}

func (s *waitlistService) GetWaitlistByEvent(ctx context.Context, eventID string) ([]response.WaitlistEntryResponse, error) {
	id, err := uuid.Parse(eventID)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID format %s: %w", eventID, err)
	}

	entries, err := s.repo.Waitlist.FindByEventID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get waitlist entries",
			zap.Error(err),
			zap.String("event_id", eventID),
		)
		return nil, fmt.Errorf("get waitlist entries: %w", err)
	}

	entryResponses := make([]response.WaitlistEntryResponse, len(entries))
	for i, entry := range entries {
		entryResponses[i] = response.WaitlistEntryToResponse(entry)
	}

	return entryResponses, nil
}

func (s *waitlistService) UpdateWaitlistStatus(ctx context.Context, entryID string, req *request.UpdateWaitlistStatusRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update waitlist status validation failed", zap.Any("errors", errs))
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(entryID)
	if err != nil {
		return fmt.Errorf("invalid waitlist entry ID format %s: %w", entryID, err)
	}

	if err := s.repo.Waitlist.UpdateStatus(ctx, id, entity.WaitlistStatus(req.Status)); err != nil {
		s.log.Error("Failed to update waitlist entry status",
			zap.Error(err),
			zap.String("entry_id", entryID),
			zap.String("status", req.Status),
		)
		return fmt.Errorf("update waitlist status: %w", err)
	}

	s.log.Info("Waitlist entry status updated",
		zap.String("entry_id", entryID),
		zap.String("status", req.Status),
	)
	return nil
}

func (s *waitlistService) DeleteWaitlistEntry(ctx context.Context, entryID string) error {
	id, err := uuid.Parse(entryID)
	if err != nil {
		return fmt.Errorf("invalid waitlist entry ID format %s: %w", entryID, err)
	}

	if err := s.repo.Waitlist.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete waitlist entry",
			zap.Error(err),
			zap.String("entry_id", entryID),
		)
		return fmt.Errorf("delete waitlist entry: %w", err)
	}

	s.log.Info("Waitlist entry deleted", zap.String("entry_id", entryID))
	return nil
}
