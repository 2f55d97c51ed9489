package usecase

import (
	"theater-booking/internal/data/repository"
	"theater-booking/pkg/utils"

	"go.uber.org/zap"
)

// EventPublisher is the notification-dispatcher boundary. The core only
// reports that something happened; delivery is someone else's problem.
// A nil publisher disables notifications.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

type Service struct {
	Event       EventService
	Reservation ReservationService
	Pricing     PricingService
	Promotion   PromotionService
	Voucher     VoucherService
	Capacity    CapacityService
	Waitlist    WaitlistService
}

func NewService(repo *repository.Repository, config *utils.Config, logger *zap.Logger, publisher EventPublisher) *Service {
	promotion := NewPromotionService(repo, logger)
	voucher := NewVoucherService(repo, logger)
	pricing := NewPricingService(repo, config, promotion, voucher, logger)
	capacity := NewCapacityService(repo, logger, publisher)

	return &Service{
		Event:       NewEventService(repo, config, logger),
		Reservation: NewReservationService(repo, pricing, promotion, voucher, capacity, logger, publisher),
		Pricing:     pricing,
		Promotion:   promotion,
		Voucher:     voucher,
		Capacity:    capacity,
		Waitlist:    NewWaitlistService(repo, logger),
	}
}
