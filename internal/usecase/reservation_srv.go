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

type ReservationService interface {
	// CreateReservation is the booking commit path: price, reserve capacity,
	// consume promotion and voucher, persist with a frozen pricing snapshot.
	// Any failure unwinds the earlier steps so the commit is all-or-nothing.
	CreateReservation(ctx context.Context, req *request.CreateReservationRequest) (*response.ReservationResponse, error)

	GetReservations(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReservationResponse], error)
	GetReservationByID(ctx context.Context, reservationID string) (*response.ReservationResponse, error)
	GetReservationsByEvent(ctx context.Context, eventID string) ([]response.ReservationResponse, error)
	UpdateReservation(ctx context.Context, reservationID string, req *request.UpdateReservationRequest) (*response.ReservationResponse, error)
	UpdateReservationStatus(ctx context.Context, reservationID string, req *request.UpdateReservationStatusRequest) (*response.ReservationResponse, error)
	DeleteReservation(ctx context.Context, reservationID string) error
}

type reservationService struct {
	repo      *repository.Repository
	pricing   PricingService
	promotion PromotionService
	voucher   VoucherService
	capacity  CapacityService
	log       *zap.Logger
	publisher EventPublisher
}

func NewReservationService(repo *repository.Repository, pricing PricingService, promotion PromotionService, voucher VoucherService, capacity CapacityService, log *zap.Logger, publisher EventPublisher) ReservationService {
	return &reservationService{
		repo:      repo,
		pricing:   pricing,
		promotion: promotion,
		voucher:   voucher,
		capacity:  capacity,
		log:       log.With(zap.String("service", "reservation")),
		publisher: publisher,
	}
}

func (s *reservationService) CreateReservation(ctx context.Context, req *request.CreateReservationRequest) (*response.ReservationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create reservation validation failed", zap.Any("errors", errs))
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

	if !event.IsActive {
		return nil, fmt.Errorf("event %s: %w", req.EventID, entity.ErrEventNotBookable)
	}

	arrangement := entity.Arrangement(req.Arrangement)
	if !event.AllowsArrangement(arrangement) {
		return nil, fmt.Errorf("arrangement %s on event %s: %w", req.Arrangement, req.EventID, entity.ErrArrangementNotAllowed)
	}

	// Price first: a configuration hole must fail the booking before any
	// state moves.
	calc, err := s.pricing.CalculatePrice(ctx, event, &req.BookingForm, req.PromotionCode, req.VoucherCode)
	if err != nil {
		return nil, err
	}

	status := entity.ReservationStatusPending
	if req.Status != "" {
		status = entity.ReservationStatus(req.Status)
	}

	// Commit step 1: seats. The conditional update is the capacity bound.
	if status.CountsTowardCapacity() {
		if err := s.capacity.Reserve(ctx, eventID, req.NumberOfPersons); err != nil {
			return nil, err
		}
	}

	// Commit step 2: promotion usage.
	var appliedPromo *entity.PromotionCode
	if req.PromotionCode != "" && calc.PromotionDiscount > 0 {
		appliedPromo, err = s.promotion.ApplyCode(ctx, req.PromotionCode)
		if err != nil {
			s.compensate(ctx, eventID, req.NumberOfPersons, status, nil, nil, 0)
			return nil, err
		}
	}

	// Commit step 3: voucher balance.
	var redeemedVoucher *entity.Voucher
	if req.VoucherCode != "" && calc.VoucherDiscount > 0 {
		redeemedVoucher, err = s.voucher.RedeemCode(ctx, req.VoucherCode, calc.VoucherDiscount)
		if err != nil {
			s.compensate(ctx, eventID, req.NumberOfPersons, status, appliedPromo, nil, 0)
			return nil, err
		}
	}

	// Commit step 4: the reservation row with its frozen snapshot.
	now := time.Now()
	reservation := &entity.Reservation{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		EventID:         eventID,
		ContactName:     req.ContactName,
		ContactEmail:    req.ContactEmail,
		ContactPhone:    req.ContactPhone,
		CompanyName:     req.CompanyName,
		NumberOfPersons: req.NumberOfPersons,
		Arrangement:     arrangement,
		PreDrink:        toAddOnSelection(req.PreDrink),
		AfterParty:      toAddOnSelection(req.AfterParty),
		Merchandise:     toMerchandiseSelections(req.Merchandise),
		PromotionCode:   req.PromotionCode,
		VoucherCode:     req.VoucherCode,
		Status:          status,
		TotalPrice:      calc.TotalPrice,
		PricingSnapshot: s.pricing.CreatePricingSnapshot(calc),
	}

	if err := s.repo.Reservation.Create(ctx, reservation); err != nil {
		s.log.Error("Failed to create reservation",
			zap.Error(err),
			zap.String("event_id", req.EventID),
		)
		s.compensate(ctx, eventID, req.NumberOfPersons, status, appliedPromo, redeemedVoucher, calc.VoucherDiscount)
		return nil, fmt.Errorf("create reservation: %w", err)
	}

	if redeemedVoucher != nil && redeemedVoucher.Type == entity.VoucherTypeGiftCard {
		// The redemption itself already committed; a missing audit record is
		// worth a log line, not a rollback.
		if err := s.voucher.RecordUsage(ctx, redeemedVoucher.ID, reservation.ID, calc.VoucherDiscount); err != nil {
			s.log.Error("Failed to record voucher usage",
				zap.Error(err),
				zap.String("voucher_id", redeemedVoucher.ID.String()),
				zap.String("reservation_id", reservation.ID.String()),
			)
		}
	}

	s.log.Info("Reservation created",
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("event_id", req.EventID),
		zap.Int("persons", req.NumberOfPersons),
		zap.String("arrangement", req.Arrangement),
		zap.String("status", string(status)),
		zap.Float64("total_price", calc.TotalPrice),
	)

	if s.publisher != nil {
		payload := map[string]any{
			"reservation_id": reservation.ID.String(),
			"event_id":       req.EventID,
			"event_date":     event.Date.Format("2006-01-02"),
			"contact_email":  req.ContactEmail,
			"persons":        req.NumberOfPersons,
			"total_price":    calc.TotalPrice,
			"status":         string(status),
		}
		if err := s.publisher.Publish("booking.confirmed", payload); err != nil {
			s.log.Error("Failed to publish booking confirmation",
				zap.Error(err),
				zap.String("reservation_id", reservation.ID.String()),
			)
		}
	}

	return s.buildReservationResponse(ctx, reservation), nil
}

// compensate unwinds commit steps in reverse order. Compensation failures are
// logged and swallowed: the caller is already returning the original error.
func (s *reservationService) compensate(ctx context.Context, eventID uuid.UUID, persons int, status entity.ReservationStatus, promo *entity.PromotionCode, voucher *entity.Voucher, voucherAmount float64) {
	if voucher != nil && voucher.Type == entity.VoucherTypeGiftCard {
		if err := s.voucher.RestoreBalance(ctx, voucher.ID, voucherAmount); err != nil {
			s.log.Error("Compensation failed: voucher balance not restored",
				zap.Error(err),
				zap.String("voucher_id", voucher.ID.String()),
			)
		}
	}

	if promo != nil {
		if err := s.promotion.ReleaseCode(ctx, promo.ID); err != nil {
			s.log.Error("Compensation failed: promotion usage not released",
				zap.Error(err),
				zap.String("promotion_id", promo.ID.String()),
			)
		}
	}

	if status.CountsTowardCapacity() {
		if err := s.capacity.Release(ctx, eventID, persons); err != nil {
			s.log.Error("Compensation failed: capacity not released",
				zap.Error(err),
				zap.String("event_id", eventID.String()),
				zap.Int("persons", persons),
			)
		}
	}
}

func (s *reservationService) GetReservations(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReservationResponse], error) {
	reservations, err := s.repo.Reservation.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get reservations", zap.Error(err))
		return nil, fmt.Errorf("get reservations: %w", err)
	}

	total, err := s.repo.Reservation.Count(ctx)
	if err != nil {
		s.log.Error("Failed to count reservations", zap.Error(err))
		return nil, fmt.Errorf("count reservations: %w", err)
	}

	reservationResponses := make([]response.ReservationResponse, len(reservations))
	for i, reservation := range reservations {
		reservationResponses[i] = *s.buildReservationResponse(ctx, reservation)
	}

	return response.NewPaginatedResponse(reservationResponses, req.Page, req.PerPage, total), nil
}

func (s *reservationService) GetReservationByID(ctx context.Context, reservationID string) (*response.ReservationResponse, error) {
	id, err := uuid.Parse(reservationID)
	if err != nil {
		return nil, fmt.Errorf("invalid reservation ID format %s: %w", reservationID, err)
	}

	reservation, err := s.repo.Reservation.FindByID(ctx, id)
	if err != nil || reservation == nil {
		return nil, fmt.Errorf("reservation %s not found", reservationID)
	}

	return s.buildReservationResponse(ctx, reservation), nil
}

func (s *reservationService) GetReservationsByEvent(ctx context.Context, eventID string) ([]response.ReservationResponse, error) {
	id, err := uuid.Parse(eventID)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID format %s: %w", eventID, err)
	}

	reservations, err := s.repo.Reservation.FindByEventID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get reservations by event",
			zap.Error(err),
			zap.String("event_id", eventID),
		)
		return nil, fmt.Errorf("get reservations by event: %w", err)
	}

	reservationResponses := make([]response.ReservationResponse, len(reservations))
	for i, reservation := range reservations {
		reservationResponses[i] = *s.buildReservationResponse(ctx, reservation)
	}

	return reservationResponses, nil
}

func (s *reservationService) UpdateReservation(ctx context.Context, reservationID string, req *request.UpdateReservationRequest) (*response.ReservationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update reservation validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(reservationID)
	if err != nil {
		return nil, fmt.Errorf("invalid reservation ID format %s: %w", reservationID, err)
	}

	reservation, err := s.repo.Reservation.FindByID(ctx, id)
	if err != nil || reservation == nil {
		return nil, fmt.Errorf("reservation %s not found", reservationID)
	}

	if req.Arrangement != "" && entity.Arrangement(req.Arrangement) != reservation.Arrangement {
		event, err := s.repo.Event.FindByID(ctx, reservation.EventID)
		if err != nil || event == nil {
			return nil, fmt.Errorf("event %s not found", reservation.EventID.String())
		}
		if !event.AllowsArrangement(entity.Arrangement(req.Arrangement)) {
			return nil, fmt.Errorf("arrangement %s on event %s: %w",
				req.Arrangement, reservation.EventID.String(), entity.ErrArrangementNotAllowed)
		}
		reservation.Arrangement = entity.Arrangement(req.Arrangement)
	}

	if req.NumberOfPersons > 0 && req.NumberOfPersons != reservation.NumberOfPersons {
		// The ledger enforces the bound on growth before the row changes.
		if err := s.capacity.ApplyPersonsChange(ctx, reservation.EventID,
			reservation.NumberOfPersons, req.NumberOfPersons, reservation.Status); err != nil {
			return nil, err
		}
		reservation.NumberOfPersons = req.NumberOfPersons
	}

	if req.ContactName != "" {
		reservation.ContactName = req.ContactName
	}
	if req.ContactEmail != "" {
		reservation.ContactEmail = req.ContactEmail
	}
	if req.ContactPhone != "" {
		reservation.ContactPhone = req.ContactPhone
	}
	if req.CompanyName != "" {
		reservation.CompanyName = req.CompanyName
	}
	if req.PreDrink != nil {
		reservation.PreDrink = toAddOnSelection(*req.PreDrink)
	}
	if req.AfterParty != nil {
		reservation.AfterParty = toAddOnSelection(*req.AfterParty)
	}
	if req.Merchandise != nil {
		reservation.Merchandise = toMerchandiseSelections(req.Merchandise)
	}
	reservation.UpdatedAt = time.Now()

	// The repository update leaves pricing_snapshot untouched: the agreed
	// price survives edits to the booking details.
	if err := s.repo.Reservation.Update(ctx, reservation); err != nil {
		s.log.Error("Failed to update reservation",
			zap.Error(err),
			zap.String("reservation_id", reservationID),
		)
		return nil, fmt.Errorf("update reservation: %w", err)
	}

	s.log.Info("Reservation updated", zap.String("reservation_id", reservationID))

	return s.buildReservationResponse(ctx, reservation), nil
}

func (s *reservationService) UpdateReservationStatus(ctx context.Context, reservationID string, req *request.UpdateReservationStatusRequest) (*response.ReservationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update reservation status validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(reservationID)
	if err != nil {
		return nil, fmt.Errorf("invalid reservation ID format %s: %w", reservationID, err)
	}

	reservation, err := s.repo.Reservation.FindByID(ctx, id)
	if err != nil || reservation == nil {
		return nil, fmt.Errorf("reservation %s not found", reservationID)
	}

	newStatus := entity.ReservationStatus(req.Status)
	if newStatus == reservation.Status {
		return s.buildReservationResponse(ctx, reservation), nil
	}

	// Seats move before the row: a rejected re-activation must not leave the
	// reservation marked active without held capacity.
	if err := s.capacity.ApplyStatusChange(ctx, reservation.EventID,
		reservation.NumberOfPersons, reservation.Status, newStatus); err != nil {
		return nil, err
	}

	if err := s.repo.Reservation.UpdateStatus(ctx, id, newStatus); err != nil {
		s.log.Error("Failed to update reservation status",
			zap.Error(err),
			zap.String("reservation_id", reservationID),
			zap.String("status", req.Status),
		)
		// Put the seats back the way they were.
		if compErr := s.capacity.ApplyStatusChange(ctx, reservation.EventID,
			reservation.NumberOfPersons, newStatus, reservation.Status); compErr != nil {
			s.log.Error("Compensation failed: capacity not restored after status update failure",
				zap.Error(compErr),
				zap.String("reservation_id", reservationID),
			)
		}
		return nil, fmt.Errorf("update reservation status: %w", err)
	}

	s.log.Info("Reservation status updated",
		zap.String("reservation_id", reservationID),
		zap.String("from", string(reservation.Status)),
		zap.String("to", req.Status),
	)

	reservation.Status = newStatus
	return s.buildReservationResponse(ctx, reservation), nil
}

func (s *reservationService) DeleteReservation(ctx context.Context, reservationID string) error {
	id, err := uuid.Parse(reservationID)
	if err != nil {
		return fmt.Errorf("invalid reservation ID format %s: %w", reservationID, err)
	}

	reservation, err := s.repo.Reservation.FindByID(ctx, id)
	if err != nil || reservation == nil {
		return fmt.Errorf("reservation %s not found", reservationID)
	}

	if reservation.IsActive() {
		if err := s.capacity.Release(ctx, reservation.EventID, reservation.NumberOfPersons); err != nil {
			return err
		}
	}

	if err := s.repo.Reservation.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete reservation",
			zap.Error(err),
			zap.String("reservation_id", reservationID),
		)
		return fmt.Errorf("delete reservation: %w", err)
	}

	return nil
}

func (s *reservationService) buildReservationResponse(ctx context.Context, reservation *entity.Reservation) *response.ReservationResponse {
	var eventDate string
	event, _ := s.repo.Event.FindByID(ctx, reservation.EventID)
	if event != nil {
		eventDate = event.Date.Format("2006-01-02")
	}

	resp := response.ReservationToResponse(reservation, eventDate,
		s.pricing.GetReservationDisplayPrice(reservation))
	return &resp
}

func toAddOnSelection(selection request.AddOnSelection) entity.AddOnSelection {
	return entity.AddOnSelection{
		Enabled:  selection.Enabled,
		Quantity: selection.Quantity,
	}
}

func toMerchandiseSelections(selections []request.MerchandiseSelection) []entity.MerchandiseSelection {
	if len(selections) == 0 {
		return nil
	}
	out := make([]entity.MerchandiseSelection, len(selections))
	for i, selection := range selections {
		out[i] = entity.MerchandiseSelection{
			ItemID:   selection.ItemID,
			Quantity: selection.Quantity,
		}
	}
	return out
}
