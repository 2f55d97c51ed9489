package adaptor

import (
	"encoding/json"
	"net/http"

	"theater-booking/internal/dto/request"
	"theater-booking/internal/usecase"
	"theater-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReservationHandler struct {
	service usecase.ReservationService
	log     *zap.Logger
}

func NewReservationHandler(service usecase.ReservationService, log *zap.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		log:     log.With(zap.String("handler", "reservation")),
	}
}

// CreateReservation handles POST /api/reservations
func (h *ReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req request.CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	reservation, err := h.service.CreateReservation(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create reservation")
		return
	}

	utils.ResponseCreated(w, "success", reservation)
}

// GetReservations handles GET /api/admin/reservations
func (h *ReservationHandler) GetReservations(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	reservations, err := h.service.GetReservations(r.Context(), req)
	if err != nil {
		handleServiceError(h.log, w, err, "get reservations")
		return
	}

	utils.ResponseSuccess(w, "success", reservations)
}

// GetReservationByID handles GET /api/admin/reservations/{id}
func (h *ReservationHandler) GetReservationByID(w http.ResponseWriter, r *http.Request) {
	reservationID := chi.URLParam(r, "id")
	if reservationID == "" {
		utils.ResponseBadRequest(w, "Reservation ID is required", nil)
		return
	}

	reservation, err := h.service.GetReservationByID(r.Context(), reservationID)
	if err != nil {
		handleServiceError(h.log, w, err, "get reservation by ID")
		return
	}

	utils.ResponseSuccess(w, "success", reservation)
}

// GetReservationsByEvent handles GET /api/admin/events/{id}/reservations
func (h *ReservationHandler) GetReservationsByEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")
	if eventID == "" {
		utils.ResponseBadRequest(w, "Event ID is required", nil)
		return
	}

	reservations, err := h.service.GetReservationsByEvent(r.Context(), eventID)
	if err != nil {
		handleServiceError(h.log, w, err, "get reservations by event")
		return
	}

	utils.ResponseSuccess(w, "success", reservations)
}

// UpdateReservation handles PUT /api/admin/reservations/{id}
func (h *ReservationHandler) UpdateReservation(w http.ResponseWriter, r *http.Request) {
	reservationID := chi.URLParam(r, "id")
	if reservationID == "" {
		utils.ResponseBadRequest(w, "Reservation ID is required", nil)
		return
	}

	var req request.UpdateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	reservation, err := h.service.UpdateReservation(r.Context(), reservationID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update reservation")
		return
	}

	utils.ResponseSuccess(w, "success", reservation)
}

// UpdateReservationStatus handles PUT /api/admin/reservations/{id}/status
func (h *ReservationHandler) UpdateReservationStatus(w http.ResponseWriter, r *http.Request) {
	reservationID := chi.URLParam(r, "id")
	if reservationID == "" {
		utils.ResponseBadRequest(w, "Reservation ID is required", nil)
		return
	}

	var req request.UpdateReservationStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	reservation, err := h.service.UpdateReservationStatus(r.Context(), reservationID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update reservation status")
		return
	}

	utils.ResponseSuccess(w, "success", reservation)
}

// DeleteReservation handles DELETE /api/admin/reservations/{id}
func (h *ReservationHandler) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	reservationID := chi.URLParam(r, "id")
	if reservationID == "" {
		utils.ResponseBadRequest(w, "Reservation ID is required", nil)
		return
	}

	if err := h.service.DeleteReservation(r.Context(), reservationID); err != nil {
		handleServiceError(h.log, w, err, "delete reservation")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
