package repository

import (
	"theater-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Event       EventRepository
	Reservation ReservationRepository
	Promotion   PromotionRepository
	Voucher     VoucherRepository
	Merchandise MerchandiseRepository
	Pricing     PricingRepository
	Waitlist    WaitlistRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Event:       NewEventRepository(db, log),
		Reservation: NewReservationRepository(db, log),
		Promotion:   NewPromotionRepository(db, log),
		Voucher:     NewVoucherRepository(db, log),
		Merchandise: NewMerchandiseRepository(db, log),
		Pricing:     NewPricingRepository(db, log),
		Waitlist:    NewWaitlistRepository(db, log),
	}
}
