package request

type CreateEventRequest struct {
	Date                string             `json:"date" validate:"required,datetime=2006-01-02"`
	Type                string             `json:"type" validate:"required"`
	Capacity            int                `json:"capacity" validate:"min=0"`
	AllowedArrangements []string           `json:"allowed_arrangements" validate:"dive,oneof=BWF BWFM"`
	CustomPricing       map[string]float64 `json:"custom_pricing"`
	DoorsOpen           string             `json:"doors_open" validate:"omitempty,datetime=15:04"`
	StartsAt            string             `json:"starts_at" validate:"omitempty,datetime=15:04"`
	EndsAt              string             `json:"ends_at" validate:"omitempty,datetime=15:04"`
	IsActive            *bool              `json:"is_active"`
}

type UpdateEventRequest struct {
	Date                string             `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Type                string             `json:"type"`
	Capacity            *int               `json:"capacity" validate:"omitempty,min=0"`
	AllowedArrangements []string           `json:"allowed_arrangements" validate:"dive,oneof=BWF BWFM"`
	CustomPricing       map[string]float64 `json:"custom_pricing"`
	DoorsOpen           string             `json:"doors_open" validate:"omitempty,datetime=15:04"`
	StartsAt            string             `json:"starts_at" validate:"omitempty,datetime=15:04"`
	EndsAt              string             `json:"ends_at" validate:"omitempty,datetime=15:04"`
	IsActive            *bool              `json:"is_active"`
	WaitlistActive      *bool              `json:"waitlist_active"`
}
