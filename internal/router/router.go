// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/ticket-sales-api/internal/config"
	"github.com/iliyamo/ticket-sales-api/internal/handler"
	"github.com/iliyamo/ticket-sales-api/internal/middleware"
)

// Handlers bundles every route handler of the API so registration takes a
// single argument from main.
type Handlers struct {
	Show     *handler.ShowHandler
	Ticket   *handler.TicketHandler
	Customer *handler.CustomerHandler
	Order    *handler.OrderHandler
	Payment  *handler.PaymentHandler
	Venue    *handler.VenueHandler
	Category *handler.CategoryHandler
}

// RegisterRoutes registers routes that live outside the /api base path.
// Currently this is only the health check used by load balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAPI registers the /api route group.  All endpoints share the
// Redis token-bucket rate limiter; the read endpoints additionally go
// through the Redis response cache.  Both degrade to pass-through when rdb
// is nil.  When paymentsSecret is non-empty, GET /api/payments requires a
// Bearer token signed with it -- that endpoint returns full card numbers
// and is meant to stay internal.
func RegisterAPI(e *echo.Echo, h Handlers, rdb *redis.Client, paymentsSecret string) {
	api := e.Group("/api", middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cached := middleware.NewResponseCache(config.LoadCacheConfig(), rdb)

	// ---- Shows ----
	api.GET("/shows/upcoming", h.Show.ListUpcoming, cached)
	api.GET("/shows/:id", h.Show.GetByID, cached)
	api.GET("/shows/:id/tickets", h.Ticket.ListForShow, cached)

	// ---- Tickets ----
	api.GET("/tickets/available", h.Ticket.ListAvailable, cached)

	// ---- Customers & orders ----
	// Order history and the customer list reflect writes immediately, so
	// they stay uncached.
	api.GET("/customers", h.Customer.List)
	api.GET("/customers/:userId/orders", h.Customer.ListOrders)
	api.POST("/orders", h.Order.Create)

	// ---- Payments ----
	if paymentsSecret != "" {
		api.GET("/payments", h.Payment.List, middleware.JWTAuth(paymentsSecret))
	} else {
		api.GET("/payments", h.Payment.List)
	}

	// ---- Venues & categories ----
	api.GET("/venues", h.Venue.List, cached)
	api.GET("/categories", h.Category.List, cached)
}
