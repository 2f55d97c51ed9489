package response

import (
	"theater-booking/internal/data/entity"
)

type PricePreviewResponse struct {
	Currency    string                  `json:"currency"`
	Calculation entity.PriceCalculation `json:"calculation"`
}

type PriceTableResponse struct {
	Rules  []PriceRuleResponse `json:"rules"`
	AddOns []AddOnResponse     `json:"add_ons"`
}

type PriceRuleResponse struct {
	DayType        string  `json:"day_type"`
	Arrangement    string  `json:"arrangement"`
	PricePerPerson float64 `json:"price_per_person"`
}

type AddOnResponse struct {
	Key            string  `json:"key"`
	PricePerPerson float64 `json:"price_per_person"`
	MinPersons     int     `json:"min_persons"`
	Description    string  `json:"description,omitempty"`
}

type MerchandiseItemResponse struct {
	Key         string  `json:"key"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	InStock     bool    `json:"in_stock"`
}

func MerchandiseItemToResponse(item *entity.MerchandiseItem) MerchandiseItemResponse {
	return MerchandiseItemResponse{
		Key:         item.Key,
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		Category:    string(item.Category),
		InStock:     item.InStock,
	}
}
