package entity

import (
	"time"
)

type DiscountType string

const (
	DiscountTypePercentage     DiscountType = "percentage"
	DiscountTypeFixed          DiscountType = "fixed"
	DiscountTypePerPerson      DiscountType = "per_person"
	DiscountTypePerArrangement DiscountType = "per_arrangement"
)

// PromotionApplicability restricts a code to certain event types or
// arrangements. Empty slices mean no restriction.
type PromotionApplicability struct {
	EventTypes   []EventType   `json:"event_types,omitempty"`
	Arrangements []Arrangement `json:"arrangements,omitempty"`
}

type PromotionCode struct {
	Base
	Code             string                 `db:"code"`
	Type             DiscountType           `db:"type"`
	Value            float64                `db:"value"`
	ValidFrom        time.Time              `db:"valid_from"`
	ValidUntil       time.Time              `db:"valid_until"`
	MaxUses          int                    `db:"max_uses"` // 0 = unlimited
	UsedCount        int                    `db:"used_count"`
	MinBookingAmount float64                `db:"min_booking_amount"`
	ApplicableTo     PromotionApplicability `db:"applicable_to"`
	IsActive         bool                   `db:"is_active"`
}

// DiscountResult is the outcome of validating a promotion code or voucher.
// An invalid code is expected user input, not a system fault, so it is a
// value with a display message rather than an error.
type DiscountResult struct {
	IsValid        bool         `json:"is_valid"`
	ErrorMessage   string       `json:"error_message,omitempty"`
	DiscountAmount float64      `json:"discount_amount,omitempty"`
	DiscountType   DiscountType `json:"discount_type,omitempty"`
}
