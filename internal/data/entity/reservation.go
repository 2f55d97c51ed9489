package entity

import (
	"github.com/google/uuid"
)

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusOption    ReservationStatus = "option"
	ReservationStatusCheckedIn ReservationStatus = "checked-in"
	ReservationStatusCompleted ReservationStatus = "completed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
	ReservationStatusRejected  ReservationStatus = "rejected"
	ReservationStatusNoShow    ReservationStatus = "no-show"
)

// CountsTowardCapacity reports whether a reservation in this status holds seats.
func (s ReservationStatus) CountsTowardCapacity() bool {
	return s != ReservationStatusCancelled && s != ReservationStatusRejected
}

// AddOnSelection is the pre-drink / after-party choice on a booking form.
type AddOnSelection struct {
	Enabled  bool `json:"enabled"`
	Quantity int  `json:"quantity"`
}

type MerchandiseSelection struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

type Reservation struct {
	Base
	EventID         uuid.UUID              `db:"event_id"`
	ContactName     string                 `db:"contact_name"`
	ContactEmail    string                 `db:"contact_email"`
	ContactPhone    string                 `db:"contact_phone"`
	CompanyName     string                 `db:"company_name"`
	NumberOfPersons int                    `db:"number_of_persons"`
	Arrangement     Arrangement            `db:"arrangement"`
	PreDrink        AddOnSelection         `db:"pre_drink"`
	AfterParty      AddOnSelection         `db:"after_party"`
	Merchandise     []MerchandiseSelection `db:"merchandise"`
	PromotionCode   string                 `db:"promotion_code"`
	VoucherCode     string                 `db:"voucher_code"`
	Status          ReservationStatus      `db:"status"`

	// TotalPrice is the legacy display amount for reservations created before
	// snapshots existed. New reservations always carry a PricingSnapshot.
	TotalPrice      float64          `db:"total_price"`
	PricingSnapshot *PricingSnapshot `db:"pricing_snapshot"`
}

// IsActive reports whether this reservation currently holds seats.
func (r *Reservation) IsActive() bool {
	return r.Status.CountsTowardCapacity()
}
