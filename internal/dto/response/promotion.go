package response

import (
	"time"

	"theater-booking/internal/data/entity"
)

type PromotionResponse struct {
	ID               string    `json:"id"`
	Code             string    `json:"code"`
	Type             string    `json:"type"`
	Value            float64   `json:"value"`
	ValidFrom        time.Time `json:"valid_from"`
	ValidUntil       time.Time `json:"valid_until"`
	MaxUses          int       `json:"max_uses"`
	UsedCount        int       `json:"used_count"`
	MinBookingAmount float64   `json:"min_booking_amount"`
	EventTypes       []string  `json:"event_types,omitempty"`
	Arrangements     []string  `json:"arrangements,omitempty"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
}

func PromotionToResponse(promo *entity.PromotionCode) PromotionResponse {
	eventTypes := make([]string, len(promo.ApplicableTo.EventTypes))
	for i, t := range promo.ApplicableTo.EventTypes {
		eventTypes[i] = string(t)
	}
	arrangements := make([]string, len(promo.ApplicableTo.Arrangements))
	for i, a := range promo.ApplicableTo.Arrangements {
		arrangements[i] = string(a)
	}

	return PromotionResponse{
		ID:               promo.ID.String(),
		Code:             promo.Code,
		Type:             string(promo.Type),
		Value:            promo.Value,
		ValidFrom:        promo.ValidFrom,
		ValidUntil:       promo.ValidUntil,
		MaxUses:          promo.MaxUses,
		UsedCount:        promo.UsedCount,
		MinBookingAmount: promo.MinBookingAmount,
		EventTypes:       eventTypes,
		Arrangements:     arrangements,
		IsActive:         promo.IsActive,
		CreatedAt:        promo.CreatedAt,
	}
}

type PromotionStatsResponse struct {
	Total      int `json:"total"`
	Active     int `json:"active"`
	Expired    int `json:"expired"`
	TotalUsage int `json:"total_usage"`
}
