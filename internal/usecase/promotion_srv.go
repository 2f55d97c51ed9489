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

type PromotionService interface {
	// ValidateForBooking checks a code against a live booking without touching
	// its usage budget. An invalid code comes back as a DiscountResult with an
	// error message; the error return is for repository failures only.
	ValidateForBooking(ctx context.Context, code string, subtotal float64, event *entity.Event, arrangement entity.Arrangement, persons, arrangementCount int) (*entity.DiscountResult, error)

	// ApplyCode consumes one use of the code at commit time. The conditional
	// increment serializes concurrent redemptions; exhaustion is an error here
	// because validation already passed.
	ApplyCode(ctx context.Context, code string) (*entity.PromotionCode, error)

	// ReleaseCode undoes ApplyCode when a later commit step fails.
	ReleaseCode(ctx context.Context, promotionID uuid.UUID) error

	ValidateCode(ctx context.Context, req *request.ValidatePromotionRequest) (*entity.DiscountResult, error)
	CreatePromotion(ctx context.Context, req *request.CreatePromotionRequest) (*response.PromotionResponse, error)
	GetPromotions(ctx context.Context) ([]response.PromotionResponse, error)
	GetPromotionByID(ctx context.Context, promotionID string) (*response.PromotionResponse, error)
	UpdatePromotion(ctx context.Context, promotionID string, req *request.UpdatePromotionRequest) (*response.PromotionResponse, error)
	DeletePromotion(ctx context.Context, promotionID string) error
	GetPromotionStats(ctx context.Context) (*response.PromotionStatsResponse, error)
}

type promotionService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewPromotionService(repo *repository.Repository, log *zap.Logger) PromotionService {
	return &promotionService{
		repo: repo,
		log:  log.With(zap.String("service", "promotion")),
	}
}

func invalidPromotion(message string) *entity.DiscountResult {
	return &entity.DiscountResult{IsValid: false, ErrorMessage: message}
}

func (s *promotionService) ValidateForBooking(ctx context.Context, code string, subtotal float64, event *entity.Event, arrangement entity.Arrangement, persons, arrangementCount int) (*entity.DiscountResult, error) {
	promo, err := s.repo.Promotion.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("validate promotion code %s: %w", code, err)
	}
	if promo == nil {
		return invalidPromotion("invalid promotion code"), nil
	}

	if !promo.IsActive {
		return invalidPromotion("promotion code is no longer active"), nil
	}

	now := time.Now()
	if now.Before(promo.ValidFrom) {
		return invalidPromotion("promotion code is not yet valid"), nil
	}
	if now.After(promo.ValidUntil) {
		return invalidPromotion("promotion code has expired"), nil
	}

	if promo.MaxUses > 0 && promo.UsedCount >= promo.MaxUses {
		return invalidPromotion("promotion code has reached its usage limit"), nil
	}

	if subtotal < promo.MinBookingAmount {
		return invalidPromotion(fmt.Sprintf("minimum booking amount of %.2f required", promo.MinBookingAmount)), nil
	}

	if event != nil && len(promo.ApplicableTo.EventTypes) > 0 {
		if !containsEventType(promo.ApplicableTo.EventTypes, event.Type) {
			return invalidPromotion("promotion code is not valid for this event"), nil
		}
	}
	if arrangement != "" && len(promo.ApplicableTo.Arrangements) > 0 {
		if !containsArrangement(promo.ApplicableTo.Arrangements, arrangement) {
			return invalidPromotion("promotion code is not valid for this arrangement"), nil
		}
	}

	var discount float64
	switch promo.Type {
	case entity.DiscountTypePercentage:
		discount = subtotal * promo.Value / 100
	case entity.DiscountTypeFixed:
		discount = min(promo.Value, subtotal)
	case entity.DiscountTypePerPerson:
		discount = min(promo.Value*float64(persons), subtotal)
	case entity.DiscountTypePerArrangement:
		discount = min(promo.Value*float64(arrangementCount), subtotal)
	default:
		s.log.Warn("Unknown promotion discount type",
			zap.String("code", promo.Code),
			zap.String("type", string(promo.Type)),
		)
		return invalidPromotion("promotion code has an unknown discount type"), nil
	}

	return &entity.DiscountResult{
		IsValid:        true,
		DiscountAmount: discount,
		DiscountType:   promo.Type,
	}, nil
}

func (s *promotionService) ApplyCode(ctx context.Context, code string) (*entity.PromotionCode, error) {
	promo, err := s.repo.Promotion.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("apply promotion code %s: %w", code, err)
	}
	if promo == nil {
		return nil, fmt.Errorf("promotion code %s not found", code)
	}

	applied, err := s.repo.Promotion.IncrementUsage(ctx, promo.ID)
	if err != nil {
		return nil, fmt.Errorf("apply promotion code %s: %w", code, err)
	}
	if !applied {
		// Lost the race against a concurrent booking for the last use.
		return nil, fmt.Errorf("promotion code %s has reached its usage limit", code)
	}

	s.log.Info("Promotion code applied",
		zap.String("promotion_id", promo.ID.String()),
		zap.String("code", promo.Code),
	)
	return promo, nil
}

func (s *promotionService) ReleaseCode(ctx context.Context, promotionID uuid.UUID) error {
	if err := s.repo.Promotion.DecrementUsage(ctx, promotionID); err != nil {
		return fmt.Errorf("release promotion %s: %w", promotionID.String(), err)
	}

	s.log.Info("Promotion usage released", zap.String("promotion_id", promotionID.String()))
	return nil
}

func (s *promotionService) ValidateCode(ctx context.Context, req *request.ValidatePromotionRequest) (*entity.DiscountResult, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Validate promotion validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	var event *entity.Event
	if req.EventID != "" {
		eventID, err := uuid.Parse(req.EventID)
		if err != nil {
			return nil, fmt.Errorf("invalid event ID format %s: %w", req.EventID, err)
		}
		event, err = s.repo.Event.FindByID(ctx, eventID)
		if err != nil {
			return nil, fmt.Errorf("find event %s: %w", req.EventID, err)
		}
	}

	arrangementCount := req.ArrangementCount
	if arrangementCount == 0 {
		arrangementCount = 1
	}

	return s.ValidateForBooking(ctx, req.Code, req.Subtotal, event,
		entity.Arrangement(req.Arrangement), req.NumberOfPersons, arrangementCount)
}

func (s *promotionService) CreatePromotion(ctx context.Context, req *request.CreatePromotionRequest) (*response.PromotionResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create promotion validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	existing, err := s.repo.Promotion.FindByCode(ctx, req.Code)
	if err != nil {
		return nil, fmt.Errorf("check promotion code %s: %w", req.Code, err)
	}
	if existing != nil {
		return nil, fmt.Errorf("promotion code %s already exists", req.Code)
	}

	validFrom, err := time.Parse("2006-01-02", req.ValidFrom)
	if err != nil {
		return nil, fmt.Errorf("invalid valid_from date %s: %w", req.ValidFrom, err)
	}
	validUntil, err := time.Parse("2006-01-02", req.ValidUntil)
	if err != nil {
		return nil, fmt.Errorf("invalid valid_until date %s: %w", req.ValidUntil, err)
	}
	// Codes stay valid through the whole last day.
	validUntil = validUntil.Add(24*time.Hour - time.Second)

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	now := time.Now()
	promo := &entity.PromotionCode{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Code:             req.Code,
		Type:             entity.DiscountType(req.Type),
		Value:            req.Value,
		ValidFrom:        validFrom,
		ValidUntil:       validUntil,
		MaxUses:          req.MaxUses,
		MinBookingAmount: req.MinBookingAmount,
		ApplicableTo:     buildApplicability(req.EventTypes, req.Arrangements),
		IsActive:         isActive,
	}

	if err := s.repo.Promotion.Create(ctx, promo); err != nil {
		s.log.Error("Failed to create promotion",
			zap.Error(err),
			zap.String("code", req.Code),
		)
		return nil, fmt.Errorf("create promotion: %w", err)
	}

	s.log.Info("Promotion created",
		zap.String("promotion_id", promo.ID.String()),
		zap.String("code", promo.Code),
		zap.String("type", string(promo.Type)),
		zap.Float64("value", promo.Value),
	)

	resp := response.PromotionToResponse(promo)
	return &resp, nil
}

func (s *promotionService) GetPromotions(ctx context.Context) ([]response.PromotionResponse, error) {
	promos, err := s.repo.Promotion.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to get promotions", zap.Error(err))
		return nil, fmt.Errorf("get promotions: %w", err)
	}

	promoResponses := make([]response.PromotionResponse, len(promos))
	for i, promo := range promos {
		promoResponses[i] = response.PromotionToResponse(promo)
	}

	return promoResponses, nil
}

func (s *promotionService) GetPromotionByID(ctx context.Context, promotionID string) (*response.PromotionResponse, error) {
	id, err := uuid.Parse(promotionID)
	if err != nil {
		return nil, fmt.Errorf("invalid promotion ID format %s: %w", promotionID, err)
	}

	promo, err := s.repo.Promotion.FindByID(ctx, id)
	if err != nil || promo == nil {
		return nil, fmt.Errorf("promotion %s not found", promotionID)
	}

	resp := response.PromotionToResponse(promo)
	return &resp, nil
}

func (s *promotionService) UpdatePromotion(ctx context.Context, promotionID string, req *request.UpdatePromotionRequest) (*response.PromotionResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update promotion validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(promotionID)
	if err != nil {
		return nil, fmt.Errorf("invalid promotion ID format %s: %w", promotionID, err)
	}

	promo, err := s.repo.Promotion.FindByID(ctx, id)
	if err != nil || promo == nil {
		return nil, fmt.Errorf("promotion %s not found", promotionID)
	}

	if req.Type != "" {
		promo.Type = entity.DiscountType(req.Type)
	}
	if req.Value > 0 {
		promo.Value = req.Value
	}
	if req.ValidFrom != "" {
		validFrom, err := time.Parse("2006-01-02", req.ValidFrom)
		if err != nil {
			return nil, fmt.Errorf("invalid valid_from date %s: %w", req.ValidFrom, err)
		}
		promo.ValidFrom = validFrom
	}
	if req.ValidUntil != "" {
		validUntil, err := time.Parse("2006-01-02", req.ValidUntil)
		if err != nil {
			return nil, fmt.Errorf("invalid valid_until date %s: %w", req.ValidUntil, err)
		}
		promo.ValidUntil = validUntil.Add(24*time.Hour - time.Second)
	}
	if req.MaxUses != nil {
		promo.MaxUses = *req.MaxUses
	}
	if req.MinBookingAmount != nil {
		promo.MinBookingAmount = *req.MinBookingAmount
	}
	if req.EventTypes != nil || req.Arrangements != nil {
		promo.ApplicableTo = buildApplicability(req.EventTypes, req.Arrangements)
	}
	if req.IsActive != nil {
		promo.IsActive = *req.IsActive
	}
	promo.UpdatedAt = time.Now()

	if err := s.repo.Promotion.Update(ctx, promo); err != nil {
		s.log.Error("Failed to update promotion",
			zap.Error(err),
			zap.String("promotion_id", promotionID),
		)
		return nil, fmt.Errorf("update promotion: %w", err)
	}

	s.log.Info("Promotion updated", zap.String("promotion_id", promotionID))

	resp := response.PromotionToResponse(promo)
	return &resp, nil
}

func (s *promotionService) DeletePromotion(ctx context.Context, promotionID string) error {
	id, err := uuid.Parse(promotionID)
	if err != nil {
		return fmt.Errorf("invalid promotion ID format %s: %w", promotionID, err)
	}

	if err := s.repo.Promotion.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete promotion",
			zap.Error(err),
			zap.String("promotion_id", promotionID),
		)
		return fmt.Errorf("delete promotion: %w", err)
	}

	s.log.Info("Promotion deleted", zap.String("promotion_id", promotionID))
	return nil
}

func (s *promotionService) GetPromotionStats(ctx context.Context) (*response.PromotionStatsResponse, error) {
	promos, err := s.repo.Promotion.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to get promotions for stats", zap.Error(err))
		return nil, fmt.Errorf("get promotion stats: %w", err)
	}

	stats := &response.PromotionStatsResponse{Total: len(promos)}
	now := time.Now()
	for _, promo := range promos {
		stats.TotalUsage += promo.UsedCount
		if now.After(promo.ValidUntil) {
			stats.Expired++
		} else if promo.IsActive {
			stats.Active++
		}
	}

	return stats, nil
}

func buildApplicability(eventTypes, arrangements []string) entity.PromotionApplicability {
	applicability := entity.PromotionApplicability{}
	for _, t := range eventTypes {
		applicability.EventTypes = append(applicability.EventTypes, entity.EventType(t))
	}
	for _, a := range arrangements {
		applicability.Arrangements = append(applicability.Arrangements, entity.Arrangement(a))
	}
	return applicability
}

func containsEventType(types []entity.EventType, eventType entity.EventType) bool {
	for _, t := range types {
		if t == eventType {
			return true
		}
	}
	return false
}

func containsArrangement(arrangements []entity.Arrangement, arrangement entity.Arrangement) bool {
	for _, a := range arrangements {
		if a == arrangement {
			return true
		}
	}
	return false
}
