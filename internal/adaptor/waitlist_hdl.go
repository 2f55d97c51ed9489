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

type WaitlistHandler struct {
	service usecase.WaitlistService
	log     *zap.Logger
}

func NewWaitlistHandler(service usecase.WaitlistService, log *zap.Logger) *WaitlistHandler {
	return &WaitlistHandler{
		service: service,
		log:     log.With(zap.String("handler", "waitlist")),
	}
}

// JoinWaitlist handles POST /api/waitlist
func (h *WaitlistHandler) JoinWaitlist(w http.ResponseWriter, r *http.Request) {
	var req request.JoinWaitlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	entry, err := h.service.JoinWaitlist(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "join waitlist")
		return
	}

	utils.ResponseCreated(w, "success", entry)
}

// GetWaitlistByEvent handles GET /api/admin/events/{id}/waitlist
func (h *WaitlistHandler) GetWaitlistByEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")
	if eventID == "" {
		utils.ResponseBadRequest(w, "Event ID is required", nil)
		return
	}

	entries, err := h.service.GetWaitlistByEvent(r.Context(), eventID)
	if err != nil {
		handleServiceError(h.log, w, err, "get waitlist by event")
		return
	}

	utils.ResponseSuccess(w, "success", entries)
}

// UpdateWaitlistStatus handles PUT /api/admin/waitlist/{id}/status
func (h *WaitlistHandler) UpdateWaitlistStatus(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "id")
	if entryID == "" {
		utils.ResponseBadRequest(w, "Waitlist entry ID is required", nil)
		return
	}

	var req request.UpdateWaitlistStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.UpdateWaitlistStatus(r.Context(), entryID, &req); err != nil {
		handleServiceError(h.log, w, err, "update waitlist status")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// DeleteWaitlistEntry handles DELETE /api/admin/waitlist/{id}
func (h *WaitlistHandler) DeleteWaitlistEntry(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "id")
	if entryID == "" {
		utils.ResponseBadRequest(w, "Waitlist entry ID is required", nil)
		return
	}

	if err := h.service.DeleteWaitlistEntry(r.Context(), entryID); err != nil {
		handleServiceError(h.log, w, err, "delete waitlist entry")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
