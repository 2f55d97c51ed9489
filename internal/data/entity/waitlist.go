package entity

import (
	"github.com/google/uuid"
)

type WaitlistStatus string

const (
	WaitlistStatusPending   WaitlistStatus = "pending"
	WaitlistStatusContacted WaitlistStatus = "contacted"
	WaitlistStatusConverted WaitlistStatus = "converted"
	WaitlistStatusExpired   WaitlistStatus = "expired"
)

type WaitlistEntry struct {
	Base
	EventID         uuid.UUID      `db:"event_id"`
	ContactName     string         `db:"contact_name"`
	ContactEmail    string         `db:"contact_email"`
	ContactPhone    string         `db:"contact_phone"`
	NumberOfPersons int            `db:"number_of_persons"`
	Status          WaitlistStatus `db:"status"`
}
