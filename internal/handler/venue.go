package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/ticket-sales-api/internal/repository"
)

// VenueHandler serves GET /api/venues.
type VenueHandler struct {
	VenueRepo *repository.VenueRepo
}

// NewVenueHandler constructs a VenueHandler.
func NewVenueHandler(venueRepo *repository.VenueRepo) *VenueHandler {
	return &VenueHandler{VenueRepo: venueRepo}
}

// VenueResponse is the plain venue projection.
type VenueResponse struct {
	VenueID       uint64 `json:"VenueId"`
	VenueName     string `json:"VenueName"`
	Location      string `json:"Location"`
	VenueCapacity uint32 `json:"VenueCapacity"`
}

// List handles GET /api/venues, ordered alphabetically by name.
func (h *VenueHandler) List(c echo.Context) error {
	venues, err := h.VenueRepo.ListAll(c.Request().Context())
	if err != nil {
		return internalErr(c, err)
	}
	out := make([]VenueResponse, 0, len(venues))
	for _, v := range venues {
		out = append(out, VenueResponse{
			VenueID:       v.ID,
			VenueName:     v.Name,
			Location:      v.Location,
			VenueCapacity: v.Capacity,
		})
	}
	return listOK(c, len(out), out)
}
