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

type VoucherHandler struct {
	service usecase.VoucherService
	log     *zap.Logger
}

func NewVoucherHandler(service usecase.VoucherService, log *zap.Logger) *VoucherHandler {
	return &VoucherHandler{
		service: service,
		log:     log.With(zap.String("handler", "voucher")),
	}
}

// ValidateCode handles POST /api/vouchers/validate
func (h *VoucherHandler) ValidateCode(w http.ResponseWriter, r *http.Request) {
	var req request.ValidateVoucherRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.ValidateCode(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "validate voucher")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// CreateVoucher handles POST /api/admin/vouchers
func (h *VoucherHandler) CreateVoucher(w http.ResponseWriter, r *http.Request) {
	var req request.CreateVoucherRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	voucher, err := h.service.CreateVoucher(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create voucher")
		return
	}

	utils.ResponseCreated(w, "success", voucher)
}

// GenerateBulkVouchers handles POST /api/admin/vouchers/bulk
func (h *VoucherHandler) GenerateBulkVouchers(w http.ResponseWriter, r *http.Request) {
	var req request.BulkGenerateVouchersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	vouchers, err := h.service.GenerateBulkVouchers(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "generate vouchers")
		return
	}

	utils.ResponseCreated(w, "success", vouchers)
}

// GetVouchers handles GET /api/admin/vouchers
func (h *VoucherHandler) GetVouchers(w http.ResponseWriter, r *http.Request) {
	vouchers, err := h.service.GetVouchers(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "get vouchers")
		return
	}

	utils.ResponseSuccess(w, "success", vouchers)
}

// GetVoucherByID handles GET /api/admin/vouchers/{id}
func (h *VoucherHandler) GetVoucherByID(w http.ResponseWriter, r *http.Request) {
	voucherID := chi.URLParam(r, "id")
	if voucherID == "" {
		utils.ResponseBadRequest(w, "Voucher ID is required", nil)
		return
	}

	voucher, err := h.service.GetVoucherByID(r.Context(), voucherID)
	if err != nil {
		handleServiceError(h.log, w, err, "get voucher by ID")
		return
	}

	utils.ResponseSuccess(w, "success", voucher)
}

// GetVoucherUsage handles GET /api/admin/vouchers/{id}/usage
func (h *VoucherHandler) GetVoucherUsage(w http.ResponseWriter, r *http.Request) {
	voucherID := chi.URLParam(r, "id")
	if voucherID == "" {
		utils.ResponseBadRequest(w, "Voucher ID is required", nil)
		return
	}

	usage, err := h.service.GetVoucherUsage(r.Context(), voucherID)
	if err != nil {
		handleServiceError(h.log, w, err, "get voucher usage")
		return
	}

	utils.ResponseSuccess(w, "success", usage)
}

// UpdateVoucher handles PUT /api/admin/vouchers/{id}
func (h *VoucherHandler) UpdateVoucher(w http.ResponseWriter, r *http.Request) {
	voucherID := chi.URLParam(r, "id")
	if voucherID == "" {
		utils.ResponseBadRequest(w, "Voucher ID is required", nil)
		return
	}

	var req request.UpdateVoucherRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	voucher, err := h.service.UpdateVoucher(r.Context(), voucherID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update voucher")
		return
	}

	utils.ResponseSuccess(w, "success", voucher)
}

// DeleteVoucher handles DELETE /api/admin/vouchers/{id}
func (h *VoucherHandler) DeleteVoucher(w http.ResponseWriter, r *http.Request) {
	voucherID := chi.URLParam(r, "id")
	if voucherID == "" {
		utils.ResponseBadRequest(w, "Voucher ID is required", nil)
		return
	}

	if err := h.service.DeleteVoucher(r.Context(), voucherID); err != nil {
		handleServiceError(h.log, w, err, "delete voucher")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// GetVoucherStats handles GET /api/admin/vouchers/stats
func (h *VoucherHandler) GetVoucherStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetVoucherStats(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "get voucher stats")
		return
	}

	utils.ResponseSuccess(w, "success", stats)
}
