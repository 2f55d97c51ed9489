package wire

import (
	"theater-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireWaitlist(r chi.Router, waitlistHandler *adaptor.WaitlistHandler) {
	// ==================== PUBLIC ROUTES ====================
	// POST /api/waitlist - Join the waitlist of a sold-out event
	r.Post("/api/waitlist", waitlistHandler.JoinWaitlist)

	// ==================== ADMIN ROUTES ====================
	// GET /api/admin/events/{id}/waitlist - Waitlist entries for one event
	r.Get("/api/admin/events/{id}/waitlist", waitlistHandler.GetWaitlistByEvent)

	r.Route("/api/admin/waitlist", func(r chi.Router) {
		// PUT /api/admin/waitlist/{id}/status - Contacted / converted / expired
		r.Put("/{id}/status", waitlistHandler.UpdateWaitlistStatus)

		// DELETE /api/admin/waitlist/{id} - Remove entry
		r.Delete("/{id}", waitlistHandler.DeleteWaitlistEntry)
	})
}
