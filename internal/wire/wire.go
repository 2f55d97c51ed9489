// internal/wire/wire.go
package wire

import (
	"net/http"

	"theater-booking/internal/adaptor"
	"theater-booking/internal/data/repository"
	"theater-booking/internal/usecase"
	"theater-booking/pkg/middleware"
	"theater-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired dependencies
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring initializes services, handlers and the router
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger, publisher usecase.EventPublisher) *App {
	service := usecase.NewService(repo, config, logger, publisher)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

// setupRouter configures the Chi router
func setupRouter(handler *adaptor.Handler, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireEvent(r, handler.Event)
	wireReservation(r, handler.Reservation)
	wirePricing(r, handler.Pricing)
	wirePromotion(r, handler.Promotion)
	wireVoucher(r, handler.Voucher)
	wireWaitlist(r, handler.Waitlist)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
