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

type PricingHandler struct {
	service usecase.PricingService
	log     *zap.Logger
}

func NewPricingHandler(service usecase.PricingService, log *zap.Logger) *PricingHandler {
	return &PricingHandler{
		service: service,
		log:     log.With(zap.String("handler", "pricing")),
	}
}

// PreviewPrice handles POST /api/price/preview
func (h *PricingHandler) PreviewPrice(w http.ResponseWriter, r *http.Request) {
	var req request.PricePreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	preview, err := h.service.PreviewPrice(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "preview price")
		return
	}

	utils.ResponseSuccess(w, "success", preview)
}

// GetPriceTable handles GET /api/pricing/table
func (h *PricingHandler) GetPriceTable(w http.ResponseWriter, r *http.Request) {
	table, err := h.service.GetPriceTable(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "get price table")
		return
	}

	utils.ResponseSuccess(w, "success", table)
}

// UpdatePriceRule handles PUT /api/admin/pricing/rules
func (h *PricingHandler) UpdatePriceRule(w http.ResponseWriter, r *http.Request) {
	var req request.UpdatePriceRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.UpdatePriceRule(r.Context(), &req); err != nil {
		handleServiceError(h.log, w, err, "update price rule")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// DeletePriceRule handles DELETE /api/admin/pricing/rules/{dayType}/{arrangement}
func (h *PricingHandler) DeletePriceRule(w http.ResponseWriter, r *http.Request) {
	dayType := chi.URLParam(r, "dayType")
	arrangement := chi.URLParam(r, "arrangement")
	if dayType == "" || arrangement == "" {
		utils.ResponseBadRequest(w, "Day type and arrangement are required", nil)
		return
	}

	if err := h.service.DeletePriceRule(r.Context(), dayType, arrangement); err != nil {
		handleServiceError(h.log, w, err, "delete price rule")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// UpdateAddOn handles PUT /api/admin/pricing/add-ons
func (h *PricingHandler) UpdateAddOn(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateAddOnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.UpdateAddOn(r.Context(), &req); err != nil {
		handleServiceError(h.log, w, err, "update add-on")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// GetMerchandise handles GET /api/merchandise
func (h *PricingHandler) GetMerchandise(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.GetMerchandise(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "get merchandise")
		return
	}

	utils.ResponseSuccess(w, "success", items)
}

// UpsertMerchandise handles PUT /api/admin/merchandise
func (h *PricingHandler) UpsertMerchandise(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateMerchandiseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	item, err := h.service.UpsertMerchandise(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "save merchandise item")
		return
	}

	utils.ResponseSuccess(w, "success", item)
}

// DeleteMerchandise handles DELETE /api/admin/merchandise/{key}
func (h *PricingHandler) DeleteMerchandise(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if key == "" {
		utils.ResponseBadRequest(w, "Merchandise key is required", nil)
		return
	}

	if err := h.service.DeleteMerchandise(r.Context(), key); err != nil {
		handleServiceError(h.log, w, err, "delete merchandise item")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
