package request

type CreateVoucherRequest struct {
	Code         string  `json:"code"`
	Type         string  `json:"type" validate:"required,oneof=gift_card discount"`
	Value        float64 `json:"value" validate:"gt=0"`
	DiscountType string  `json:"discount_type" validate:"omitempty,oneof=percentage fixed"`
	ValidFrom    string  `json:"valid_from" validate:"required,datetime=2006-01-02"`
	ValidUntil   string  `json:"valid_until" validate:"required,datetime=2006-01-02"`
	CreatedBy    string  `json:"created_by" validate:"max=100"`
	Notes        string  `json:"notes" validate:"max=300"`
}

type UpdateVoucherRequest struct {
	Value      *float64 `json:"value" validate:"omitempty,gte=0"`
	ValidFrom  string   `json:"valid_from" validate:"omitempty,datetime=2006-01-02"`
	ValidUntil string   `json:"valid_until" validate:"omitempty,datetime=2006-01-02"`
	IsActive   *bool    `json:"is_active"`
	Notes      string   `json:"notes" validate:"max=300"`
}

type BulkGenerateVouchersRequest struct {
	Count      int     `json:"count" validate:"required,min=1,max=500"`
	Value      float64 `json:"value" validate:"required,gt=0"`
	ValidFrom  string  `json:"valid_from" validate:"required,datetime=2006-01-02"`
	ValidUntil string  `json:"valid_until" validate:"required,datetime=2006-01-02"`
	CreatedBy  string  `json:"created_by" validate:"max=100"`
}

type ValidateVoucherRequest struct {
	Code        string  `json:"code" validate:"required"`
	TotalAmount float64 `json:"total_amount" validate:"gte=0"`
}
