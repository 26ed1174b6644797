package repository

import (
	"context"
	"database/sql"
)

// Customer is a user row extended with per-user order aggregates.  The raw
// card number is selected so the handler can apply display masking; the
// full number itself is never serialized by the customers endpoint.
type Customer struct {
	ID            uint64
	Name          string
	Email         string
	CardNumber    sql.NullString
	CardHolder    sql.NullString
	CardExpiry    sql.NullString
	TotalOrders   uint32
	LastOrderDate sql.NullTime
	TotalSpent    float64
}

// UserRepo manages read access to users.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo constructs a UserRepo with the given DB handle.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// ListCustomers returns every user with aggregate order statistics,
// ordered alphabetically by name.  TotalSpent sums the prices of the
// tickets attached to the user's orders and is zero when the user has
// never ordered.
func (r *UserRepo) ListCustomers(ctx context.Context) ([]Customer, error) {
	const q = `SELECT u.id, u.name, u.email, u.card_number, u.card_holder, u.card_expiry,
                      (SELECT COUNT(*) FROM orders WHERE user_id = u.id),
                      (SELECT MAX(order_date) FROM orders WHERE user_id = u.id),
                      (SELECT COALESCE(SUM(t.price), 0)
                       FROM orders o
                       JOIN tickets t ON o.ticket_id = t.id
                       WHERE o.user_id = u.id)
               FROM users u
               ORDER BY u.name ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []Customer
	for rows.Next() {
		var c Customer
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Email, &c.CardNumber, &c.CardHolder, &c.CardExpiry,
			&c.TotalOrders, &c.LastOrderDate, &c.TotalSpent,
		); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
