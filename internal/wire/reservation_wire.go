package wire

import (
	"theater-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireReservation(r chi.Router, reservationHandler *adaptor.ReservationHandler) {
	// ==================== PUBLIC ROUTES ====================
	// POST /api/reservations - Booking commit (capacity, promo, voucher, snapshot)
	r.Post("/api/reservations", reservationHandler.CreateReservation)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/reservations", func(r chi.Router) {
		// GET /api/admin/reservations - List reservations (paginated)
		r.Get("/", reservationHandler.GetReservations)

		// GET /api/admin/reservations/{id} - Reservation details
		r.Get("/{id}", reservationHandler.GetReservationByID)

		// PUT /api/admin/reservations/{id} - Edit booking details
		r.Put("/{id}", reservationHandler.UpdateReservation)

		// PUT /api/admin/reservations/{id}/status - Status transition
		r.Put("/{id}/status", reservationHandler.UpdateReservationStatus)

		// DELETE /api/admin/reservations/{id} - Remove reservation
		r.Delete("/{id}", reservationHandler.DeleteReservation)
	})

	// GET /api/admin/events/{id}/reservations - Reservations for one event
	r.Get("/api/admin/events/{id}/reservations", reservationHandler.GetReservationsByEvent)
}
