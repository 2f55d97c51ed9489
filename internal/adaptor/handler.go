package adaptor

import (
	"errors"
	"net/http"
	"strings"

	"theater-booking/internal/data/entity"
	"theater-booking/internal/usecase"
	"theater-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Event       *EventHandler
	Reservation *ReservationHandler
	Pricing     *PricingHandler
	Promotion   *PromotionHandler
	Voucher     *VoucherHandler
	Waitlist    *WaitlistHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Event:       NewEventHandler(service.Event, service.Capacity, log),
		Reservation: NewReservationHandler(service.Reservation, log),
		Pricing:     NewPricingHandler(service.Pricing, log),
		Promotion:   NewPromotionHandler(service.Promotion, log),
		Voucher:     NewVoucherHandler(service.Voucher, log),
		Waitlist:    NewWaitlistHandler(service.Waitlist, log),
	}
}

// handleServiceError maps service errors to HTTP responses. Sentinel errors
// carry the booking semantics: a full event is a conflict, a pricing hole is
// unprocessable, a disallowed arrangement or closed event is a bad request.
func handleServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case errors.Is(err, entity.ErrCapacityExceeded):
		log.Warn(operation+" failed - capacity exceeded",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, errMsg)

	case errors.Is(err, entity.ErrConfigurationMissing):
		log.Error(operation+" failed - pricing configuration missing",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseUnprocessable(w, errMsg)

	case errors.Is(err, entity.ErrArrangementNotAllowed), errors.Is(err, entity.ErrEventNotBookable):
		log.Warn(operation+" failed - not bookable",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "not found"):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "validation failed"):
		log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "invalid"):
		log.Warn("Invalid input for "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "already exists"),
		strings.Contains(errMsg, "usage limit"),
		strings.Contains(errMsg, "insufficient balance"):
		log.Warn(operation+" failed - conflict",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, errMsg)

	case strings.Contains(errMsg, "still has"):
		log.Warn(operation+" failed - invalid state",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
