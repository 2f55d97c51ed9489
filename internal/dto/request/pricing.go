package request

// PricePreviewRequest drives the side-effect-free price calculation the
// booking wizard shows before the customer confirms.
type PricePreviewRequest struct {
	EventID string `json:"event_id" validate:"required,uuid"`
	BookingForm
	PromotionCode string `json:"promotion_code"`
	VoucherCode   string `json:"voucher_code"`
}

type UpdatePriceRuleRequest struct {
	DayType        string  `json:"day_type" validate:"required"`
	Arrangement    string  `json:"arrangement" validate:"required,oneof=BWF BWFM"`
	PricePerPerson float64 `json:"price_per_person" validate:"gt=0"`
}

type UpdateAddOnRequest struct {
	Key            string  `json:"key" validate:"required,oneof=pre_drink after_party"`
	PricePerPerson float64 `json:"price_per_person" validate:"gt=0"`
	MinPersons     int     `json:"min_persons" validate:"min=0"`
	Description    string  `json:"description" validate:"max=300"`
}

type UpdateMerchandiseRequest struct {
	Key         string  `json:"key" validate:"required"`
	Name        string  `json:"name" validate:"required,max=100"`
	Description string  `json:"description" validate:"max=300"`
	Price       float64 `json:"price" validate:"gte=0"`
	Category    string  `json:"category" validate:"required,oneof=clothing accessories other"`
	InStock     bool    `json:"in_stock"`
}
