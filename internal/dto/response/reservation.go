package response

import (
	"time"

	"theater-booking/internal/data/entity"
)

type ReservationResponse struct {
	ID              string                          `json:"id"`
	EventID         string                          `json:"event_id"`
	EventDate       string                          `json:"event_date,omitempty"`
	ContactName     string                          `json:"contact_name"`
	ContactEmail    string                          `json:"contact_email"`
	ContactPhone    string                          `json:"contact_phone,omitempty"`
	CompanyName     string                          `json:"company_name,omitempty"`
	NumberOfPersons int                             `json:"number_of_persons"`
	Arrangement     string                          `json:"arrangement"`
	PreDrink        entity.AddOnSelection           `json:"pre_drink"`
	AfterParty      entity.AddOnSelection           `json:"after_party"`
	Merchandise     []entity.MerchandiseSelection   `json:"merchandise,omitempty"`
	PromotionCode   string                          `json:"promotion_code,omitempty"`
	VoucherCode     string                          `json:"voucher_code,omitempty"`
	Status          entity.ReservationStatus        `json:"status"`
	DisplayPrice    float64                         `json:"display_price"`
	PricingSnapshot *entity.PricingSnapshot         `json:"pricing_snapshot,omitempty"`
	CreatedAt       time.Time                       `json:"created_at"`
	UpdatedAt       time.Time                       `json:"updated_at"`
}

// ReservationToResponse converts an entity; displayPrice comes from the
// pricing service so the snapshot-first rule lives in one place.
func ReservationToResponse(reservation *entity.Reservation, eventDate string, displayPrice float64) ReservationResponse {
	return ReservationResponse{
		ID:              reservation.ID.String(),
		EventID:         reservation.EventID.String(),
		EventDate:       eventDate,
		ContactName:     reservation.ContactName,
		ContactEmail:    reservation.ContactEmail,
		ContactPhone:    reservation.ContactPhone,
		CompanyName:     reservation.CompanyName,
		NumberOfPersons: reservation.NumberOfPersons,
		Arrangement:     string(reservation.Arrangement),
		PreDrink:        reservation.PreDrink,
		AfterParty:      reservation.AfterParty,
		Merchandise:     reservation.Merchandise,
		PromotionCode:   reservation.PromotionCode,
		VoucherCode:     reservation.VoucherCode,
		Status:          reservation.Status,
		DisplayPrice:    displayPrice,
		PricingSnapshot: reservation.PricingSnapshot,
		CreatedAt:       reservation.CreatedAt,
		UpdatedAt:       reservation.UpdatedAt,
	}
}
