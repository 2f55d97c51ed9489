package wire

import (
	"theater-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireEvent(r chi.Router, eventHandler *adaptor.EventHandler) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/events - List events (paginated, or ?from=&to= date range)
	r.Get("/api/events", eventHandler.GetEvents)

	// GET /api/events/{id} - Event details
	r.Get("/api/events/{id}", eventHandler.GetEventByID)

	// GET /api/events/{id}/availability - Remaining capacity and waitlist state
	r.Get("/api/events/{id}/availability", eventHandler.GetAvailability)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/events", func(r chi.Router) {
		// POST /api/admin/events - Create event
		r.Post("/", eventHandler.CreateEvent)

		// PUT /api/admin/events/{id} - Update event
		r.Put("/{id}", eventHandler.UpdateEvent)

		// DELETE /api/admin/events/{id} - Delete event
		r.Delete("/{id}", eventHandler.DeleteEvent)
	})
}
