package wire

import (
	"theater-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wirePromotion(r chi.Router, promotionHandler *adaptor.PromotionHandler) {
	// ==================== PUBLIC ROUTES ====================
	// POST /api/promotions/validate - Check a code against a booking subtotal
	r.Post("/api/promotions/validate", promotionHandler.ValidateCode)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/promotions", func(r chi.Router) {
		// GET /api/admin/promotions/stats - Usage summary
		r.Get("/stats", promotionHandler.GetPromotionStats)

		// POST /api/admin/promotions - Create promotion code
		r.Post("/", promotionHandler.CreatePromotion)

		// GET /api/admin/promotions - List promotion codes
		r.Get("/", promotionHandler.GetPromotions)

		// GET /api/admin/promotions/{id} - Promotion details
		r.Get("/{id}", promotionHandler.GetPromotionByID)

		// PUT /api/admin/promotions/{id} - Update promotion
		r.Put("/{id}", promotionHandler.UpdatePromotion)

		// DELETE /api/admin/promotions/{id} - Delete promotion
		r.Delete("/{id}", promotionHandler.DeletePromotion)
	})
}
