package entity

import (
	"time"

	"github.com/google/uuid"
)

type VoucherType string

const (
	VoucherTypeGiftCard VoucherType = "gift_card"
	VoucherTypeDiscount VoucherType = "discount"
)

type VoucherStatus string

const (
	VoucherStatusActive VoucherStatus = "active"
	VoucherStatusUsed   VoucherStatus = "used"
)

type Voucher struct {
	Base
	Code string      `db:"code"`
	Type VoucherType `db:"type"`

	// Value is the remaining balance for gift cards, or the discount rate
	// (percentage or fixed amount, per DiscountType) for discount vouchers.
	Value         float64       `db:"value"`
	OriginalValue float64       `db:"original_value"`
	DiscountType  DiscountType  `db:"discount_type"`
	ValidFrom     time.Time     `db:"valid_from"`
	ValidUntil    time.Time     `db:"valid_until"`
	IsActive      bool          `db:"is_active"`
	Status        VoucherStatus `db:"status"`
	CreatedBy     string        `db:"created_by"`
	Notes         string        `db:"notes"`
}

// VoucherUsage records one redemption against a gift card.
type VoucherUsage struct {
	BaseSimple
	VoucherID     uuid.UUID `db:"voucher_id"`
	ReservationID uuid.UUID `db:"reservation_id"`
	UsedAt        time.Time `db:"used_at"`
	AmountUsed    float64   `db:"amount_used"`
}
