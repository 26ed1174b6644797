package handler

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/ticket-sales-api/internal/repository"
	"github.com/iliyamo/ticket-sales-api/internal/utils"
)

// CustomerHandler serves the customer listing and per-customer order
// history endpoints.  Stored card numbers are never returned verbatim
// here; they pass through utils.MaskCard first.
type CustomerHandler struct {
	UserRepo  *repository.UserRepo
	OrderRepo *repository.OrderRepo
}

// NewCustomerHandler constructs a CustomerHandler.
func NewCustomerHandler(userRepo *repository.UserRepo, orderRepo *repository.OrderRepo) *CustomerHandler {
	return &CustomerHandler{UserRepo: userRepo, OrderRepo: orderRepo}
}

// CustomerResponse is one user with spend aggregates, as returned by
// GET /api/customers.
type CustomerResponse struct {
	UserID            uint64     `json:"UserId"`
	UserName          string     `json:"UserName"`
	Email             string     `json:"Email"`
	MaskedPaymentCard *string    `json:"MaskedPaymentCard"`
	CardHolderName    *string    `json:"CardHolderName"`
	CardExpiry        *string    `json:"CardExpiry"`
	TotalOrders       uint32     `json:"TotalOrders"`
	LastOrderDate     *time.Time `json:"LastOrderDate"`
	TotalSpent        float64    `json:"TotalSpent"`
}

// CustomerOrderResponse is one order in a user's history.  Ticket, show
// and venue fields are pointers because the underlying joins are LEFT
// JOINs: an order whose ticket reference was cleared keeps its row with
// those fields null.
type CustomerOrderResponse struct {
	OrderID          uint64     `json:"OrderId"`
	OrderDate        time.Time  `json:"OrderDate"`
	UseCustomPayment bool       `json:"UseCustomPayment"`
	TicketID         *int64     `json:"TicketId"`
	SeatNumber       *string    `json:"SeatNumber"`
	TicketPrice      *float64   `json:"TicketPrice"`
	ShowName         *string    `json:"ShowName"`
	ShowDateTime     *time.Time `json:"ShowDateTime"`
	VenueName        *string    `json:"VenueName"`
	MaskedCardNumber *string    `json:"MaskedCardNumber"`
}

// List handles GET /api/customers, ordered alphabetically by user name.
func (h *CustomerHandler) List(c echo.Context) error {
	customers, err := h.UserRepo.ListCustomers(c.Request().Context())
	if err != nil {
		return internalErr(c, err)
	}
	out := make([]CustomerResponse, 0, len(customers))
	for _, cu := range customers {
		out = append(out, CustomerResponse{
			UserID:            cu.ID,
			UserName:          cu.Name,
			Email:             cu.Email,
			MaskedPaymentCard: maskedOrNil(cu.CardNumber),
			CardHolderName:    nullStr(cu.CardHolder),
			CardExpiry:        nullStr(cu.CardExpiry),
			TotalOrders:       cu.TotalOrders,
			LastOrderDate:     nullTime(cu.LastOrderDate),
			TotalSpent:        cu.TotalSpent,
		})
	}
	return listOK(c, len(out), out)
}

// ListOrders handles GET /api/customers/:userId/orders, newest order
// first.  A user without orders (or an unknown user id) yields a 404
// message, matching the original contract.
func (h *CustomerHandler) ListOrders(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		return failErr(c, http.StatusBadRequest, "invalid user id")
	}
	orders, err := h.OrderRepo.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return internalErr(c, err)
	}
	if len(orders) == 0 {
		return failMsg(c, http.StatusNotFound, "No orders found for this user.")
	}
	out := make([]CustomerOrderResponse, 0, len(orders))
	for _, o := range orders {
		// The displayed card is the order's custom card when the custom
		// payment flag is set, the user's default card otherwise.
		card := o.UserCardNumber
		if o.UseCustomPayment {
			card = o.CustomCardNumber
		}
		out = append(out, CustomerOrderResponse{
			OrderID:          o.ID,
			OrderDate:        o.OrderDate,
			UseCustomPayment: o.UseCustomPayment,
			TicketID:         nullInt(o.TicketID),
			SeatNumber:       nullStr(o.SeatNumber),
			TicketPrice:      nullFloat(o.TicketPrice),
			ShowName:         nullStr(o.ShowName),
			ShowDateTime:     nullTime(o.ShowDate),
			VenueName:        nullStr(o.VenueName),
			MaskedCardNumber: maskedOrNil(card),
		})
	}
	return listOK(c, len(out), out)
}

// maskedOrNil masks a nullable card number for display, mapping absent or
// blank numbers to a null JSON field.
func maskedOrNil(number sql.NullString) *string {
	if !number.Valid {
		return nil
	}
	masked := utils.MaskCard(number.String)
	if masked == "" {
		return nil
	}
	return &masked
}
