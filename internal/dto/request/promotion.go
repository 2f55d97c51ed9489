package request

type CreatePromotionRequest struct {
	Code             string   `json:"code" validate:"required,min=3,max=40"`
	Type             string   `json:"type" validate:"required,oneof=percentage fixed per_person per_arrangement"`
	Value            float64  `json:"value" validate:"gt=0"`
	ValidFrom        string   `json:"valid_from" validate:"required,datetime=2006-01-02"`
	ValidUntil       string   `json:"valid_until" validate:"required,datetime=2006-01-02"`
	MaxUses          int      `json:"max_uses" validate:"min=0"`
	MinBookingAmount float64  `json:"min_booking_amount" validate:"gte=0"`
	EventTypes       []string `json:"event_types"`
	Arrangements     []string `json:"arrangements" validate:"dive,oneof=BWF BWFM"`
	IsActive         *bool    `json:"is_active"`
}

type UpdatePromotionRequest struct {
	Type             string   `json:"type" validate:"omitempty,oneof=percentage fixed per_person per_arrangement"`
	Value            float64  `json:"value" validate:"omitempty,gt=0"`
	ValidFrom        string   `json:"valid_from" validate:"omitempty,datetime=2006-01-02"`
	ValidUntil       string   `json:"valid_until" validate:"omitempty,datetime=2006-01-02"`
	MaxUses          *int     `json:"max_uses" validate:"omitempty,min=0"`
	MinBookingAmount *float64 `json:"min_booking_amount" validate:"omitempty,gte=0"`
	EventTypes       []string `json:"event_types"`
	Arrangements     []string `json:"arrangements" validate:"dive,oneof=BWF BWFM"`
	IsActive         *bool    `json:"is_active"`
}

// ValidatePromotionRequest checks a code against a live booking subtotal
// without consuming its usage budget.
type ValidatePromotionRequest struct {
	Code             string  `json:"code" validate:"required"`
	Subtotal         float64 `json:"subtotal" validate:"gte=0"`
	EventID          string  `json:"event_id" validate:"omitempty,uuid"`
	Arrangement      string  `json:"arrangement" validate:"omitempty,oneof=BWF BWFM"`
	NumberOfPersons  int     `json:"number_of_persons" validate:"min=0"`
	ArrangementCount int     `json:"arrangement_count" validate:"min=0"`
}
