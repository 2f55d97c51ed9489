// main.go
package main

import (
	"context"
	"log"

	"theater-booking/cmd"
	"theater-booking/internal/data/repository"
	"theater-booking/internal/usecase"
	"theater-booking/internal/wire"
	"theater-booking/pkg/database"
	"theater-booking/pkg/rabbitmq"
	"theater-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Event publisher is optional; bookings still commit without it
	var publisher usecase.EventPublisher
	if config.AMQP.Enabled {
		p, err := rabbitmq.NewPublisher(config.AMQP.URL, config.AMQP.Exchange, logger)
		if err != nil {
			logger.Fatal("Failed to connect to message broker", zap.Error(err))
		}
		defer p.Close()
		publisher = p

		logger.Info("Message broker connected", zap.String("exchange", config.AMQP.Exchange))
	}

	// Wire all dependencies
	app := wire.Wiring(repos, config, logger, publisher)

	// A price table with holes must stop the server, not surface as
	// zero-priced bookings later.
	if err := app.Service.Pricing.ValidateTable(context.Background()); err != nil {
		logger.Fatal("Price table validation failed", zap.Error(err))
	}

	logger.Info("Price table validated")

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
