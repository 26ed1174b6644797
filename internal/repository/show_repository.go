// Package repository contains data access logic for the ticket-sales schema.
// This file defines the Show model and repository methods for shows.  A Show
// row carries the joined category and venue columns plus the computed
// available-ticket count, because every caller of this repository consumes
// exactly that projection.
package repository

import (
	"context"      // context for controlling query lifetime
	"database/sql" // sql provides DB abstraction
	"errors"       // errors for sentinel comparisons
	"time"         // show dates are DATETIME columns scanned as time.Time
)

// Show represents a scheduled show joined with its category and venue.
// AvailableTickets counts the show's tickets whose availability flag is
// still set.  Description and ImageFileName are nullable in the schema.
type Show struct {
	ID               uint64
	Name             string
	Description      sql.NullString
	Date             time.Time
	TicketPrice      float64
	Category         string
	Venue            string
	VenueLocation    string
	VenueCapacity    uint32
	ImageFileName    sql.NullString
	AvailableTickets uint32
}

// ShowRepo manages read access to shows.
type ShowRepo struct {
	db *sql.DB
}

// NewShowRepo constructs a ShowRepo with the given DB handle.
func NewShowRepo(db *sql.DB) *ShowRepo {
	return &ShowRepo{db: db}
}

// ListUpcoming returns all shows whose date is at or after the current UTC
// time, ordered by date ascending.  The available-ticket count is computed
// by left-joining tickets that still have their availability flag set, so a
// sold-out show appears with a zero count rather than disappearing.  When
// no shows match it returns an empty slice and nil error.
func (r *ShowRepo) ListUpcoming(ctx context.Context) ([]Show, error) {
	const q = `SELECT s.id, s.name, s.description, s.show_date, s.ticket_price,
                      c.name, v.name, v.location, v.capacity, s.image_file_name,
                      COUNT(t.id)
               FROM shows s
               JOIN categories c ON s.category_id = c.id
               JOIN venues v ON s.venue_id = v.id
               LEFT JOIN tickets t ON t.show_id = s.id AND t.is_available = 1
               WHERE s.show_date >= UTC_TIMESTAMP()
               GROUP BY s.id, s.name, s.description, s.show_date, s.ticket_price,
                        c.name, v.name, v.location, v.capacity, s.image_file_name
               ORDER BY s.show_date ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []Show
	for rows.Next() {
		var s Show
		if err := rows.Scan(
			&s.ID, &s.Name, &s.Description, &s.Date, &s.TicketPrice,
			&s.Category, &s.Venue, &s.VenueLocation, &s.VenueCapacity,
			&s.ImageFileName, &s.AvailableTickets,
		); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID retrieves a single show with its available-ticket count computed
// by a correlated subquery.  It returns ErrShowNotFound when no row matches.
func (r *ShowRepo) GetByID(ctx context.Context, id uint64) (*Show, error) {
	const q = `SELECT s.id, s.name, s.description, s.show_date, s.ticket_price,
                      c.name, v.name, v.location, v.capacity, s.image_file_name,
                      (SELECT COUNT(*) FROM tickets WHERE show_id = s.id AND is_available = 1)
               FROM shows s
               JOIN categories c ON s.category_id = c.id
               JOIN venues v ON s.venue_id = v.id
               WHERE s.id = ?`
	var s Show
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&s.ID, &s.Name, &s.Description, &s.Date, &s.TicketPrice,
		&s.Category, &s.Venue, &s.VenueLocation, &s.VenueCapacity,
		&s.ImageFileName, &s.AvailableTickets,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShowNotFound
		}
		return nil, err
	}
	return &s, nil
}
