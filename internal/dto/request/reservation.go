package request

// AddOnSelection mirrors the booking wizard's pre-drink / after-party choice.
type AddOnSelection struct {
	Enabled  bool `json:"enabled"`
	Quantity int  `json:"quantity" validate:"min=0"`
}

type MerchandiseSelection struct {
	ItemID   string `json:"item_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"min=1"`
}

// BookingForm carries everything the pricing engine needs from the customer.
type BookingForm struct {
	NumberOfPersons int                    `json:"number_of_persons" validate:"required,min=1"`
	Arrangement     string                 `json:"arrangement" validate:"required,oneof=BWF BWFM"`
	PreDrink        AddOnSelection         `json:"pre_drink"`
	AfterParty      AddOnSelection         `json:"after_party"`
	Merchandise     []MerchandiseSelection `json:"merchandise" validate:"dive"`
}

type CreateReservationRequest struct {
	EventID      string `json:"event_id" validate:"required,uuid"`
	ContactName  string `json:"contact_name" validate:"required,min=2,max=100"`
	ContactEmail string `json:"contact_email" validate:"required,email"`
	ContactPhone string `json:"contact_phone" validate:"max=30"`
	CompanyName  string `json:"company_name" validate:"max=100"`
	BookingForm
	PromotionCode string `json:"promotion_code"`
	VoucherCode   string `json:"voucher_code"`
	Status        string `json:"status" validate:"omitempty,oneof=pending confirmed option"`
}

type UpdateReservationRequest struct {
	ContactName     string                 `json:"contact_name" validate:"omitempty,min=2,max=100"`
	ContactEmail    string                 `json:"contact_email" validate:"omitempty,email"`
	ContactPhone    string                 `json:"contact_phone" validate:"max=30"`
	CompanyName     string                 `json:"company_name" validate:"max=100"`
	NumberOfPersons int                    `json:"number_of_persons" validate:"omitempty,min=1"`
	Arrangement     string                 `json:"arrangement" validate:"omitempty,oneof=BWF BWFM"`
	PreDrink        *AddOnSelection        `json:"pre_drink"`
	AfterParty      *AddOnSelection        `json:"after_party"`
	Merchandise     []MerchandiseSelection `json:"merchandise" validate:"dive"`
}

type UpdateReservationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed option checked-in completed cancelled rejected no-show"`
}
