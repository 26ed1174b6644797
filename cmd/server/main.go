package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/ticket-sales-api/internal/config"
	"github.com/iliyamo/ticket-sales-api/internal/database"
	"github.com/iliyamo/ticket-sales-api/internal/handler"
	"github.com/iliyamo/ticket-sales-api/internal/queue"
	"github.com/iliyamo/ticket-sales-api/internal/repository"
	"github.com/iliyamo/ticket-sales-api/internal/router"
)

func main() {
	// .env is optional; real deployments set variables in the environment.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional; nil disables caching and rate limiting.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; response cache and rate limiting disabled")
	}

	h := router.Handlers{
		Show:     handler.NewShowHandler(repository.NewShowRepo(db)),
		Ticket:   handler.NewTicketHandler(repository.NewTicketRepo(db)),
		Customer: handler.NewCustomerHandler(repository.NewUserRepo(db), repository.NewOrderRepo(db)),
		Order:    handler.NewOrderHandler(repository.NewOrderRepo(db), true),
		Payment:  handler.NewPaymentHandler(repository.NewPaymentRepo(db)),
		Venue:    handler.NewVenueHandler(repository.NewVenueRepo(db)),
		Category: handler.NewCategoryHandler(repository.NewCategoryRepo(db)),
	}

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAPI(e, h, rdb, cfg.PaymentsJWTSecret)

	// Background consumer logging confirmed orders; reconnects on its own.
	go func() {
		if err := queue.StartOrderConsumer(); err != nil {
			log.Printf("order consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
