package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/ticket-sales-api/internal/repository"
)

// TicketHandler serves the ticket listing endpoints.  Both endpoints only
// surface tickets that are still claimable: availability flag set and no
// order reference.
type TicketHandler struct {
	TicketRepo *repository.TicketRepo
}

// NewTicketHandler constructs a TicketHandler.
func NewTicketHandler(ticketRepo *repository.TicketRepo) *TicketHandler {
	return &TicketHandler{TicketRepo: ticketRepo}
}

// AvailableTicketResponse is an available ticket with its show and venue,
// as returned by GET /api/tickets/available.
type AvailableTicketResponse struct {
	TicketID    uint64    `json:"TicketId"`
	SeatNumber  string    `json:"SeatNumber"`
	Price       float64   `json:"Price"`
	IsAvailable bool      `json:"IsAvailable"`
	ShowID      uint64    `json:"ShowId"`
	ShowName    string    `json:"ShowName"`
	ShowDate    time.Time `json:"ShowDate"`
	VenueName   string    `json:"VenueName"`
	Location    string    `json:"Location"`
}

// ShowTicketResponse is the narrower ticket projection used by
// GET /api/shows/:id/tickets.
type ShowTicketResponse struct {
	TicketID    uint64  `json:"TicketId"`
	SeatNumber  string  `json:"SeatNumber"`
	Price       float64 `json:"Price"`
	IsAvailable bool    `json:"IsAvailable"`
	ShowName    string  `json:"ShowName"`
	VenueName   string  `json:"VenueName"`
}

// ListAvailable handles GET /api/tickets/available, ordered by show date
// ascending.
func (h *TicketHandler) ListAvailable(c echo.Context) error {
	tickets, err := h.TicketRepo.ListAvailable(c.Request().Context())
	if err != nil {
		return internalErr(c, err)
	}
	out := make([]AvailableTicketResponse, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, AvailableTicketResponse{
			TicketID:    t.ID,
			SeatNumber:  t.SeatNumber,
			Price:       t.Price,
			IsAvailable: t.IsAvailable,
			ShowID:      t.ShowID,
			ShowName:    t.ShowName,
			ShowDate:    t.ShowDate,
			VenueName:   t.VenueName,
			Location:    t.Location,
		})
	}
	return listOK(c, len(out), out)
}

// ListForShow handles GET /api/shows/:id/tickets, ordered by price
// descending.  An unknown show id yields an empty list rather than a 404,
// matching the original contract.
func (h *TicketHandler) ListForShow(c echo.Context) error {
	showID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return failErr(c, http.StatusBadRequest, "invalid id")
	}
	tickets, err := h.TicketRepo.ListAvailableByShow(c.Request().Context(), showID)
	if err != nil {
		return internalErr(c, err)
	}
	out := make([]ShowTicketResponse, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, ShowTicketResponse{
			TicketID:    t.ID,
			SeatNumber:  t.SeatNumber,
			Price:       t.Price,
			IsAvailable: t.IsAvailable,
			ShowName:    t.ShowName,
			VenueName:   t.VenueName,
		})
	}
	return listOK(c, len(out), out)
}
