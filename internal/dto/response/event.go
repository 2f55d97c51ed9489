package response

import (
	"time"

	"theater-booking/internal/data/entity"
)

type EventResponse struct {
	ID                  string             `json:"id"`
	Date                string             `json:"date"`
	Type                string             `json:"type"`
	Capacity            int                `json:"capacity"`
	RemainingCapacity   int                `json:"remaining_capacity"`
	AllowedArrangements []string           `json:"allowed_arrangements"`
	CustomPricing       map[string]float64 `json:"custom_pricing,omitempty"`
	DoorsOpen           string             `json:"doors_open,omitempty"`
	StartsAt            string             `json:"starts_at,omitempty"`
	EndsAt              string             `json:"ends_at,omitempty"`
	IsActive            bool               `json:"is_active"`
	WaitlistActive      bool               `json:"waitlist_active"`
	CreatedAt           time.Time          `json:"created_at"`
}

func EventToResponse(event *entity.Event) EventResponse {
	arrangements := make([]string, len(event.AllowedArrangements))
	for i, a := range event.AllowedArrangements {
		arrangements[i] = string(a)
	}

	var customPricing map[string]float64
	if len(event.CustomPricing) > 0 {
		customPricing = make(map[string]float64, len(event.CustomPricing))
		for arrangement, price := range event.CustomPricing {
			customPricing[string(arrangement)] = price
		}
	}

	return EventResponse{
		ID:                  event.ID.String(),
		Date:                event.Date.Format("2006-01-02"),
		Type:                string(event.Type),
		Capacity:            event.Capacity,
		RemainingCapacity:   event.RemainingCapacity,
		AllowedArrangements: arrangements,
		CustomPricing:       customPricing,
		DoorsOpen:           event.DoorsOpen,
		StartsAt:            event.StartsAt,
		EndsAt:              event.EndsAt,
		IsActive:            event.IsActive,
		WaitlistActive:      event.WaitlistActive,
		CreatedAt:           event.CreatedAt,
	}
}

// AvailabilityResponse summarizes bookable state for the wizard and the
// admin capacity widgets.
type AvailabilityResponse struct {
	EventID           string `json:"event_id"`
	Capacity          int    `json:"capacity"`
	RemainingCapacity int    `json:"remaining_capacity"`
	ReservedPersons   int    `json:"reserved_persons"`
	SoldOut           bool   `json:"sold_out"`
	WaitlistActive    bool   `json:"waitlist_active"`
	PendingWaitlist   int64  `json:"pending_waitlist"`
}
