package response

import (
	"time"

	"theater-booking/internal/data/entity"
)

type VoucherResponse struct {
	ID            string    `json:"id"`
	Code          string    `json:"code"`
	Type          string    `json:"type"`
	Value         float64   `json:"value"`
	OriginalValue float64   `json:"original_value"`
	DiscountType  string    `json:"discount_type,omitempty"`
	ValidFrom     time.Time `json:"valid_from"`
	ValidUntil    time.Time `json:"valid_until"`
	IsActive      bool      `json:"is_active"`
	Status        string    `json:"status"`
	CreatedBy     string    `json:"created_by,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func VoucherToResponse(voucher *entity.Voucher) VoucherResponse {
	return VoucherResponse{
		ID:            voucher.ID.String(),
		Code:          voucher.Code,
		Type:          string(voucher.Type),
		Value:         voucher.Value,
		OriginalValue: voucher.OriginalValue,
		DiscountType:  string(voucher.DiscountType),
		ValidFrom:     voucher.ValidFrom,
		ValidUntil:    voucher.ValidUntil,
		IsActive:      voucher.IsActive,
		Status:        string(voucher.Status),
		CreatedBy:     voucher.CreatedBy,
		Notes:         voucher.Notes,
		CreatedAt:     voucher.CreatedAt,
	}
}

type VoucherUsageResponse struct {
	ReservationID string    `json:"reservation_id"`
	UsedAt        time.Time `json:"used_at"`
	AmountUsed    float64   `json:"amount_used"`
}

func VoucherUsageToResponse(usage *entity.VoucherUsage) VoucherUsageResponse {
	return VoucherUsageResponse{
		ReservationID: usage.ReservationID.String(),
		UsedAt:        usage.UsedAt,
		AmountUsed:    usage.AmountUsed,
	}
}

type VoucherStatsResponse struct {
	Total              int     `json:"total"`
	Active             int     `json:"active"`
	Redeemed           int     `json:"redeemed"`
	TotalValue         float64 `json:"total_value"`
	TotalOriginalValue float64 `json:"total_original_value"`
}
