package wire

import (
	"theater-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireVoucher(r chi.Router, voucherHandler *adaptor.VoucherHandler) {
	// ==================== PUBLIC ROUTES ====================
	// POST /api/vouchers/validate - Check a voucher against a booking total
	r.Post("/api/vouchers/validate", voucherHandler.ValidateCode)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/vouchers", func(r chi.Router) {
		// GET /api/admin/vouchers/stats - Balance summary
		r.Get("/stats", voucherHandler.GetVoucherStats)

		// POST /api/admin/vouchers/bulk - Generate a batch of gift cards
		r.Post("/bulk", voucherHandler.GenerateBulkVouchers)

		// POST /api/admin/vouchers - Create voucher
		r.Post("/", voucherHandler.CreateVoucher)

		// GET /api/admin/vouchers - List vouchers
		r.Get("/", voucherHandler.GetVouchers)

		// GET /api/admin/vouchers/{id} - Voucher details
		r.Get("/{id}", voucherHandler.GetVoucherByID)

		// GET /api/admin/vouchers/{id}/usage - Redemption history
		r.Get("/{id}/usage", voucherHandler.GetVoucherUsage)

		// PUT /api/admin/vouchers/{id} - Update voucher
		r.Put("/{id}", voucherHandler.UpdateVoucher)

		// DELETE /api/admin/vouchers/{id} - Delete voucher
		r.Delete("/{id}", voucherHandler.DeleteVoucher)
	})
}
