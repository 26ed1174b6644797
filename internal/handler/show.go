package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/ticket-sales-api/internal/repository"
)

// ShowHandler serves the read-only show endpoints.
type ShowHandler struct {
	ShowRepo *repository.ShowRepo
}

// NewShowHandler constructs a ShowHandler.
func NewShowHandler(showRepo *repository.ShowRepo) *ShowHandler {
	return &ShowHandler{ShowRepo: showRepo}
}

// ShowResponse is the JSON projection of a show with its category, venue
// and available-ticket count.  Field names preserve the original API
// contract.
type ShowResponse struct {
	ShowID           uint64    `json:"ShowId"`
	ShowName         string    `json:"ShowName"`
	ShowDescription  *string   `json:"ShowDescription"`
	ShowDate         time.Time `json:"ShowDate"`
	TicketPrice      float64   `json:"TicketPrice"`
	Category         string    `json:"Category"`
	Venue            string    `json:"Venue"`
	VenueLocation    string    `json:"VenueLocation"`
	VenueCapacity    uint32    `json:"VenueCapacity"`
	ImageFileName    *string   `json:"ImageFileName"`
	AvailableTickets uint32    `json:"AvailableTickets"`
}

func showResponseFrom(s repository.Show) ShowResponse {
	return ShowResponse{
		ShowID:           s.ID,
		ShowName:         s.Name,
		ShowDescription:  nullStr(s.Description),
		ShowDate:         s.Date,
		TicketPrice:      s.TicketPrice,
		Category:         s.Category,
		Venue:            s.Venue,
		VenueLocation:    s.VenueLocation,
		VenueCapacity:    s.VenueCapacity,
		ImageFileName:    nullStr(s.ImageFileName),
		AvailableTickets: s.AvailableTickets,
	}
}

// ListUpcoming handles GET /api/shows/upcoming.  Shows that have already
// started are excluded; a period with no shows yields an empty list, not
// an error.
func (h *ShowHandler) ListUpcoming(c echo.Context) error {
	shows, err := h.ShowRepo.ListUpcoming(c.Request().Context())
	if err != nil {
		return internalErr(c, err)
	}
	out := make([]ShowResponse, 0, len(shows))
	for _, s := range shows {
		out = append(out, showResponseFrom(s))
	}
	return listOK(c, len(out), out)
}

// GetByID handles GET /api/shows/:id.  It returns a single object (not an
// array) or a 404 message when no show has the requested id.
func (h *ShowHandler) GetByID(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return failErr(c, http.StatusBadRequest, "invalid id")
	}
	s, err := h.ShowRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrShowNotFound) {
			return failMsg(c, http.StatusNotFound, "Show not found.")
		}
		return internalErr(c, err)
	}
	return objectOK(c, showResponseFrom(*s))
}
