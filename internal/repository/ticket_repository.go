package repository

import (
	"context"
	"database/sql"
	"time"
)

// AvailableTicket is a ticket joined with its show and venue for the
// all-available listing.  Availability means the flag is set and no order
// has claimed the ticket yet.
type AvailableTicket struct {
	ID          uint64
	SeatNumber  string
	Price       float64
	IsAvailable bool
	ShowID      uint64
	ShowName    string
	ShowDate    time.Time
	VenueName   string
	Location    string
}

// ShowTicket is the narrower projection used when listing the available
// tickets of one show.
type ShowTicket struct {
	ID          uint64
	SeatNumber  string
	Price       float64
	IsAvailable bool
	ShowName    string
	VenueName   string
}

// TicketRepo manages read access to tickets.  Claiming a ticket is part of
// order creation and lives in OrderRepo so both statements share one
// transaction.
type TicketRepo struct {
	db *sql.DB
}

// NewTicketRepo constructs a TicketRepo with the given DB handle.
func NewTicketRepo(db *sql.DB) *TicketRepo {
	return &TicketRepo{db: db}
}

// ListAvailable returns every unclaimed ticket across all shows, ordered by
// show date ascending.
func (r *TicketRepo) ListAvailable(ctx context.Context) ([]AvailableTicket, error) {
	const q = `SELECT t.id, t.seat_number, t.price, t.is_available, t.show_id,
                      s.name, s.show_date, v.name, v.location
               FROM tickets t
               JOIN shows s ON t.show_id = s.id
               JOIN venues v ON t.venue_id = v.id
               WHERE t.is_available = 1 AND t.order_id IS NULL
               ORDER BY s.show_date ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []AvailableTicket
	for rows.Next() {
		var t AvailableTicket
		if err := rows.Scan(
			&t.ID, &t.SeatNumber, &t.Price, &t.IsAvailable, &t.ShowID,
			&t.ShowName, &t.ShowDate, &t.VenueName, &t.Location,
		); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ListAvailableByShow returns the unclaimed tickets of one show ordered by
// price descending.  A show with no remaining tickets (or an unknown show
// id) yields an empty slice, not an error.
func (r *TicketRepo) ListAvailableByShow(ctx context.Context, showID uint64) ([]ShowTicket, error) {
	const q = `SELECT t.id, t.seat_number, t.price, t.is_available, s.name, v.name
               FROM tickets t
               JOIN shows s ON t.show_id = s.id
               JOIN venues v ON t.venue_id = v.id
               WHERE t.show_id = ? AND t.is_available = 1 AND t.order_id IS NULL
               ORDER BY t.price DESC`
	rows, err := r.db.QueryContext(ctx, q, showID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []ShowTicket
	for rows.Next() {
		var t ShowTicket
		if err := rows.Scan(&t.ID, &t.SeatNumber, &t.Price, &t.IsAvailable, &t.ShowName, &t.VenueName); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
