package entity

import (
	"time"
)

// PriceRule is one row of the price table: a day type and arrangement mapped
// to a per-person price. The full table is validated at startup so a missing
// entry is caught at configuration time, not while a customer books.
type PriceRule struct {
	DayType        DayType     `db:"day_type"`
	Arrangement    Arrangement `db:"arrangement"`
	PricePerPerson float64     `db:"price_per_person"`
}

type AddOnKey string

const (
	AddOnPreDrink   AddOnKey = "pre_drink"
	AddOnAfterParty AddOnKey = "after_party"
)

// AddOnConfig prices an optional add-on. The add-on only unlocks when the
// selected quantity reaches MinPersons; below that it contributes zero even
// when enabled.
type AddOnConfig struct {
	Key            AddOnKey `db:"key"`
	PricePerPerson float64  `db:"price_per_person"`
	MinPersons     int      `db:"min_persons"`
	Description    string   `db:"description"`
}

// PriceCalculation is the result of a full price computation. It is a pure
// value: identical inputs always produce an identical calculation.
type PriceCalculation struct {
	BasePrice        float64 `json:"base_price"`
	PreDrinkTotal    float64 `json:"pre_drink_total"`
	AfterPartyTotal  float64 `json:"after_party_total"`
	MerchandiseTotal float64 `json:"merchandise_total"`
	Subtotal         float64 `json:"subtotal"`

	// DiscountAmount is the sum of the promotion and voucher portions. The
	// commit path needs them separately: only the voucher portion is debited
	// from a gift card balance.
	PromotionDiscount float64 `json:"promotion_discount,omitempty"`
	VoucherDiscount   float64 `json:"voucher_discount,omitempty"`
	DiscountAmount    float64 `json:"discount_amount"`

	TotalPrice float64        `json:"total_price"`
	Breakdown  PriceBreakdown `json:"breakdown"`
}

type PriceBreakdown struct {
	Arrangement ArrangementLine   `json:"arrangement"`
	PreDrink    *AddOnLine        `json:"pre_drink,omitempty"`
	AfterParty  *AddOnLine        `json:"after_party,omitempty"`
	Merchandise *MerchandiseLines `json:"merchandise,omitempty"`
	Discount    *DiscountLine     `json:"discount,omitempty"`
}

type ArrangementLine struct {
	Type           Arrangement `json:"type"`
	PricePerPerson float64     `json:"price_per_person"`
	Persons        int         `json:"persons"`
	Total          float64     `json:"total"`
}

type AddOnLine struct {
	PricePerPerson float64 `json:"price_per_person"`
	Persons        int     `json:"persons"`
	Total          float64 `json:"total"`
}

type MerchandiseLines struct {
	Items []MerchandiseLine `json:"items"`
	Total float64           `json:"total"`
}

type MerchandiseLine struct {
	ItemID   string  `json:"item_id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Total    float64 `json:"total"`
}

type DiscountLine struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// PricingSnapshot freezes every resolved price figure at the moment a booking
// is confirmed. It is written once with the reservation and never recomputed;
// later price-table edits must not change a customer's historical total.
type PricingSnapshot struct {
	PricePerPerson      float64     `json:"price_per_person"`
	NumberOfPersons     int         `json:"number_of_persons"`
	Arrangement         Arrangement `json:"arrangement"`
	ArrangementTotal    float64     `json:"arrangement_total"`
	PreDrinkPrice       float64     `json:"pre_drink_price,omitempty"`
	PreDrinkTotal       float64     `json:"pre_drink_total,omitempty"`
	AfterPartyPrice     float64     `json:"after_party_price,omitempty"`
	AfterPartyTotal     float64     `json:"after_party_total,omitempty"`
	MerchandiseTotal    float64     `json:"merchandise_total,omitempty"`
	Subtotal            float64     `json:"subtotal"`
	DiscountAmount      float64     `json:"discount_amount,omitempty"`
	DiscountDescription string      `json:"discount_description,omitempty"`
	FinalTotal          float64     `json:"final_total"`
	CalculatedAt        time.Time   `json:"calculated_at"`
}
