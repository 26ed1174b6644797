package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/ticket-sales-api/internal/queue"
	"github.com/iliyamo/ticket-sales-api/internal/repository"
	queue_publisher "github.com/iliyamo/ticket-sales-api/internal/service"
)

// OrderHandler serves order creation, the only mutating endpoint of the
// API.  A successful purchase claims the ticket atomically with the order
// insert; the losing side of a concurrent purchase receives 409.
type OrderHandler struct {
	OrderRepo *repository.OrderRepo
	// PublishEvents controls whether a successful order is announced on the
	// message broker.  Publishing is best effort and never fails the request.
	PublishEvents bool
}

// NewOrderHandler constructs an OrderHandler.
func NewOrderHandler(orderRepo *repository.OrderRepo, publishEvents bool) *OrderHandler {
	return &OrderHandler{OrderRepo: orderRepo, PublishEvents: publishEvents}
}

// createOrderRequest is the POST /api/orders body.  The ids are required;
// the custom card fields only matter when useCustomPayment is set.
type createOrderRequest struct {
	UserID           uint64  `json:"userId"`
	TicketID         uint64  `json:"ticketId"`
	UseCustomPayment bool    `json:"useCustomPayment"`
	CustomCardNumber *string `json:"customCardNumber"`
	CustomCardHolder *string `json:"customCardHolder"`
	CustomCardExpiry *string `json:"customCardExpiry"`
}

// OrderResponse echoes the inserted order row.
type OrderResponse struct {
	OrderID          uint64    `json:"OrderId"`
	UserID           uint64    `json:"UserId"`
	TicketID         uint64    `json:"TicketId"`
	OrderDate        time.Time `json:"OrderDate"`
	UseCustomPayment bool      `json:"UseCustomPayment"`
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c echo.Context) error {
	var body createOrderRequest
	if err := c.Bind(&body); err != nil {
		return failErr(c, http.StatusBadRequest, "invalid request body")
	}
	if body.UserID == 0 || body.TicketID == 0 {
		return failErr(c, http.StatusBadRequest, "userId and ticketId are required.")
	}

	n := repository.NewOrder{
		UserID:           body.UserID,
		TicketID:         body.TicketID,
		UseCustomPayment: body.UseCustomPayment,
		CustomCardNumber: toNullString(body.CustomCardNumber),
		CustomCardHolder: toNullString(body.CustomCardHolder),
		CustomCardExpiry: toNullString(body.CustomCardExpiry),
	}
	o, err := h.OrderRepo.Create(c.Request().Context(), n)
	if err != nil {
		if errors.Is(err, repository.ErrTicketUnavailable) {
			return failErr(c, http.StatusConflict, "Ticket is not available.")
		}
		return internalErr(c, err)
	}

	if h.PublishEvents {
		// Broker trouble must not undo a committed sale; the publisher logs
		// its own failures.
		_ = queue_publisher.PublishOrderCreated(c.Request().Context(), queue.OrderCreatedEvent{
			OrderID:          o.ID,
			UserID:           o.UserID,
			TicketID:         o.TicketID,
			OrderDate:        o.OrderDate.UTC().Format("2006-01-02 15:04:05"),
			UseCustomPayment: o.UseCustomPayment,
		})
	}

	return created(c, "Order created successfully.", OrderResponse{
		OrderID:          o.ID,
		UserID:           o.UserID,
		TicketID:         o.TicketID,
		OrderDate:        o.OrderDate,
		UseCustomPayment: o.UseCustomPayment,
	})
}

// toNullString maps an optional JSON string to its SQL representation,
// treating an absent or empty value as NULL.
func toNullString(s *string) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
