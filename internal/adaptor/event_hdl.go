package adaptor

import (
	"encoding/json"
	"net/http"

	"theater-booking/internal/dto/request"
	"theater-booking/internal/usecase"
	"theater-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type EventHandler struct {
	service  usecase.EventService
	capacity usecase.CapacityService
	log      *zap.Logger
}

func NewEventHandler(service usecase.EventService, capacity usecase.CapacityService, log *zap.Logger) *EventHandler {
	return &EventHandler{
		service:  service,
		capacity: capacity,
		log:      log.With(zap.String("handler", "event")),
	}
}

// CreateEvent handles POST /api/admin/events
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req request.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	event, err := h.service.CreateEvent(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create event")
		return
	}

	utils.ResponseCreated(w, "success", event)
}

// GetEvents handles GET /api/events with optional ?from=&to= date filter
func (h *EventHandler) GetEvents(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if from, to := query.Get("from"), query.Get("to"); from != "" && to != "" {
		events, err := h.service.GetEventsByDateRange(r.Context(), from, to)
		if err != nil {
			handleServiceError(h.log, w, err, "get events by date range")
			return
		}
		utils.ResponseSuccess(w, "success", events)
		return
	}

	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}

	events, err := h.service.GetEvents(r.Context(), req)
	if err != nil {
		handleServiceError(h.log, w, err, "get events")
		return
	}

	utils.ResponseSuccess(w, "success", events)
}

// GetEventByID handles GET /api/events/{id}
func (h *EventHandler) GetEventByID(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")
	if eventID == "" {
		utils.ResponseBadRequest(w, "Event ID is required", nil)
		return
	}

	event, err := h.service.GetEventByID(r.Context(), eventID)
	if err != nil {
		handleServiceError(h.log, w, err, "get event by ID")
		return
	}

	utils.ResponseSuccess(w, "success", event)
}

// GetAvailability handles GET /api/events/{id}/availability
func (h *EventHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	eventID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid event ID", nil)
		return
	}

	availability, err := h.capacity.GetAvailability(r.Context(), eventID)
	if err != nil {
		handleServiceError(h.log, w, err, "get event availability")
		return
	}

	utils.ResponseSuccess(w, "success", availability)
}

// UpdateEvent handles PUT /api/admin/events/{id}
func (h *EventHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")
	if eventID == "" {
		utils.ResponseBadRequest(w, "Event ID is required", nil)
		return
	}

	var req request.UpdateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	event, err := h.service.UpdateEvent(r.Context(), eventID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update event")
		return
	}

	utils.ResponseSuccess(w, "success", event)
}

// DeleteEvent handles DELETE /api/admin/events/{id}
func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")
	if eventID == "" {
		utils.ResponseBadRequest(w, "Event ID is required", nil)
		return
	}

	if err := h.service.DeleteEvent(r.Context(), eventID); err != nil {
		handleServiceError(h.log, w, err, "delete event")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
