package request

type JoinWaitlistRequest struct {
	EventID         string `json:"event_id" validate:"required,uuid"`
	ContactName     string `json:"contact_name" validate:"required,min=2,max=100"`
	ContactEmail    string `json:"contact_email" validate:"required,email"`
	ContactPhone    string `json:"contact_phone" validate:"max=30"`
	NumberOfPersons int    `json:"number_of_persons" validate:"required,min=1"`
}

type UpdateWaitlistStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending contacted converted expired"`
}
