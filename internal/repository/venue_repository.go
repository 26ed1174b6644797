package repository

import (
	"context"
	"database/sql"
)

// Venue is a physical location hosting shows.
type Venue struct {
	ID       uint64
	Name     string
	Location string
	Capacity uint32
}

// VenueRepo manages read access to venues.
type VenueRepo struct {
	db *sql.DB
}

// NewVenueRepo constructs a VenueRepo with the given DB handle.
func NewVenueRepo(db *sql.DB) *VenueRepo {
	return &VenueRepo{db: db}
}

// ListAll returns all venues ordered alphabetically by name.
func (r *VenueRepo) ListAll(ctx context.Context) ([]Venue, error) {
	const q = `SELECT id, name, location, capacity FROM venues ORDER BY name ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []Venue
	for rows.Next() {
		var v Venue
		if err := rows.Scan(&v.ID, &v.Name, &v.Location, &v.Capacity); err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
