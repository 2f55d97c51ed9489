package response

import (
	"time"

	"theater-booking/internal/data/entity"
)

type WaitlistEntryResponse struct {
	ID              string    `json:"id"`
	EventID         string    `json:"event_id"`
	ContactName     string    `json:"contact_name"`
	ContactEmail    string    `json:"contact_email"`
	ContactPhone    string    `json:"contact_phone,omitempty"`
	NumberOfPersons int       `json:"number_of_persons"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

func WaitlistEntryToResponse(entry *entity.WaitlistEntry) WaitlistEntryResponse {
	return WaitlistEntryResponse{
		ID:              entry.ID.String(),
		EventID:         entry.EventID.String(),
		ContactName:     entry.ContactName,
		ContactEmail:    entry.ContactEmail,
		ContactPhone:    entry.ContactPhone,
		NumberOfPersons: entry.NumberOfPersons,
		Status:          string(entry.Status),
		CreatedAt:       entry.CreatedAt,
	}
}
