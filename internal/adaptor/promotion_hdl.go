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

type PromotionHandler struct {
	service usecase.PromotionService
	log     *zap.Logger
}

func NewPromotionHandler(service usecase.PromotionService, log *zap.Logger) *PromotionHandler {
	return &PromotionHandler{
		service: service,
		log:     log.With(zap.String("handler", "promotion")),
	}
}

// ValidateCode handles POST /api/promotions/validate
func (h *PromotionHandler) ValidateCode(w http.ResponseWriter, r *http.Request) {
	var req request.ValidatePromotionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.ValidateCode(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "validate promotion code")
		return
	}

	// An invalid code is a successful validation with a negative outcome.
	utils.ResponseSuccess(w, "success", result)
}

// CreatePromotion handles POST /api/admin/promotions
func (h *PromotionHandler) CreatePromotion(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePromotionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	promo, err := h.service.CreatePromotion(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create promotion")
		return
	}

	utils.ResponseCreated(w, "success", promo)
}

// GetPromotions handles GET /api/admin/promotions
func (h *PromotionHandler) GetPromotions(w http.ResponseWriter, r *http.Request) {
	promos, err := h.service.GetPromotions(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "get promotions")
		return
	}

	utils.ResponseSuccess(w, "success", promos)
}

// GetPromotionByID handles GET /api/admin/promotions/{id}
func (h *PromotionHandler) GetPromotionByID(w http.ResponseWriter, r *http.Request) {
	promotionID := chi.URLParam(r, "id")
	if promotionID == "" {
		utils.ResponseBadRequest(w, "Promotion ID is required", nil)
		return
	}

	promo, err := h.service.GetPromotionByID(r.Context(), promotionID)
	if err != nil {
		handleServiceError(h.log, w, err, "get promotion by ID")
		return
	}

	utils.ResponseSuccess(w, "success", promo)
}

// UpdatePromotion handles PUT /api/admin/promotions/{id}
func (h *PromotionHandler) UpdatePromotion(w http.ResponseWriter, r *http.Request) {
	promotionID := chi.URLParam(r, "id")
	if promotionID == "" {
		utils.ResponseBadRequest(w, "Promotion ID is required", nil)
		return
	}

	var req request.UpdatePromotionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	promo, err := h.service.UpdatePromotion(r.Context(), promotionID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update promotion")
		return
	}

	utils.ResponseSuccess(w, "success", promo)
}

// DeletePromotion handles DELETE /api/admin/promotions/{id}
func (h *PromotionHandler) DeletePromotion(w http.ResponseWriter, r *http.Request) {
	promotionID := chi.URLParam(r, "id")
	if promotionID == "" {
		utils.ResponseBadRequest(w, "Promotion ID is required", nil)
		return
	}

	if err := h.service.DeletePromotion(r.Context(), promotionID); err != nil {
		handleServiceError(h.log, w, err, "delete promotion")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// GetPromotionStats handles GET /api/admin/promotions/stats
func (h *PromotionHandler) GetPromotionStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetPromotionStats(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "get promotion stats")
		return
	}

	utils.ResponseSuccess(w, "success", stats)
}
