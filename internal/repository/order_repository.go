package repository

import (
	"context"
	"database/sql"
	"time"
)

// Order is the row created by order creation, reselected after insert so
// the response echoes database-assigned values (id, timestamp).
type Order struct {
	ID               uint64
	UserID           uint64
	TicketID         uint64
	OrderDate        time.Time
	UseCustomPayment bool
}

// NewOrder carries the caller-supplied fields of an order about to be
// created.  The custom card fields are optional and stored as NULL when
// absent.
type NewOrder struct {
	UserID           uint64
	TicketID         uint64
	UseCustomPayment bool
	CustomCardNumber sql.NullString
	CustomCardHolder sql.NullString
	CustomCardExpiry sql.NullString
}

// CustomerOrder is an order joined with its user and, when the ticket
// reference is still intact, the ticket/show/venue chain.  Those joins are
// LEFT JOINs: an order whose ticket reference was cleared still appears
// with null ticket fields.  Both card numbers are selected raw; the
// handler masks whichever one the UseCustomPayment flag selects.
type CustomerOrder struct {
	ID               uint64
	OrderDate        time.Time
	UseCustomPayment bool
	CustomCardNumber sql.NullString
	UserCardNumber   sql.NullString
	TicketID         sql.NullInt64
	SeatNumber       sql.NullString
	TicketPrice      sql.NullFloat64
	ShowName         sql.NullString
	ShowDate         sql.NullTime
	VenueName        sql.NullString
}

// OrderRepo manages order persistence, including the ticket claim that
// accompanies every insert.
type OrderRepo struct {
	db *sql.DB
}

// NewOrderRepo constructs an OrderRepo with the given DB handle.
func NewOrderRepo(db *sql.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

// ListByUser returns a user's orders, newest first.  An unknown user id
// and a user with no orders are indistinguishable here; both yield an
// empty slice.
func (r *OrderRepo) ListByUser(ctx context.Context, userID uint64) ([]CustomerOrder, error) {
	const q = `SELECT o.id, o.order_date, o.use_custom_payment,
                      o.custom_card_number, u.card_number,
                      t.id, t.seat_number, t.price,
                      s.name, s.show_date, v.name
               FROM orders o
               JOIN users u ON o.user_id = u.id
               LEFT JOIN tickets t ON o.ticket_id = t.id
               LEFT JOIN shows s ON t.show_id = s.id
               LEFT JOIN venues v ON t.venue_id = v.id
               WHERE o.user_id = ?
               ORDER BY o.order_date DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []CustomerOrder
	for rows.Next() {
		var o CustomerOrder
		if err := rows.Scan(
			&o.ID, &o.OrderDate, &o.UseCustomPayment,
			&o.CustomCardNumber, &o.UserCardNumber,
			&o.TicketID, &o.SeatNumber, &o.TicketPrice,
			&o.ShowName, &o.ShowDate, &o.VenueName,
		); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Create inserts an order and claims its ticket inside one transaction.
// The claim is a conditional UPDATE that only touches a ticket whose
// availability flag is still set and whose order reference is still null;
// zero affected rows means the ticket was sold concurrently (or never
// existed) and the whole transaction is rolled back with
// ErrTicketUnavailable.  Exactly one of any number of concurrent attempts
// on the same ticket can therefore succeed.
func (r *OrderRepo) Create(ctx context.Context, n NewOrder) (*Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const ins = `INSERT INTO orders
                     (user_id, ticket_id, order_date, use_custom_payment,
                      custom_card_number, custom_card_holder, custom_card_expiry)
                 VALUES (?, ?, UTC_TIMESTAMP(), ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, ins,
		n.UserID, n.TicketID, n.UseCustomPayment,
		n.CustomCardNumber, n.CustomCardHolder, n.CustomCardExpiry,
	)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	const claim = `UPDATE tickets
                   SET order_id = ?, is_available = 0
                   WHERE id = ? AND is_available = 1 AND order_id IS NULL`
	res, err = tx.ExecContext(ctx, claim, id, n.TicketID)
	if err != nil {
		return nil, err
	}
	if affected, err := res.RowsAffected(); err != nil {
		return nil, err
	} else if affected == 0 {
		return nil, ErrTicketUnavailable
	}

	// Reselect the inserted row so the caller sees the DB-assigned timestamp.
	const sel = `SELECT id, user_id, ticket_id, order_date, use_custom_payment
                 FROM orders WHERE id = ?`
	var o Order
	if err := tx.QueryRowContext(ctx, sel, id).Scan(
		&o.ID, &o.UserID, &o.TicketID, &o.OrderDate, &o.UseCustomPayment,
	); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return &o, nil
}
