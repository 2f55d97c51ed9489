package wire

import (
	"theater-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wirePricing(r chi.Router, pricingHandler *adaptor.PricingHandler) {
	// ==================== PUBLIC ROUTES ====================
	// POST /api/price/preview - Side-effect-free price calculation
	r.Post("/api/price/preview", pricingHandler.PreviewPrice)

	// GET /api/pricing/table - Current price rules and add-on configs
	r.Get("/api/pricing/table", pricingHandler.GetPriceTable)

	// GET /api/merchandise - Merchandise catalog
	r.Get("/api/merchandise", pricingHandler.GetMerchandise)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/pricing", func(r chi.Router) {
		// PUT /api/admin/pricing/rules - Upsert a price rule (re-validates the table)
		r.Put("/rules", pricingHandler.UpdatePriceRule)

		// DELETE /api/admin/pricing/rules/{dayType}/{arrangement}
		r.Delete("/rules/{dayType}/{arrangement}", pricingHandler.DeletePriceRule)

		// PUT /api/admin/pricing/add-ons - Upsert an add-on config
		r.Put("/add-ons", pricingHandler.UpdateAddOn)
	})

	r.Route("/api/admin/merchandise", func(r chi.Router) {
		// PUT /api/admin/merchandise - Create or update a catalog item
		r.Put("/", pricingHandler.UpsertMerchandise)

		// DELETE /api/admin/merchandise/{key} - Remove a catalog item
		r.Delete("/{key}", pricingHandler.DeleteMerchandise)
	})
}
