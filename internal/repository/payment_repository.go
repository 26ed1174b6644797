package repository

import (
	"context"
	"database/sql"
)

// Payment type labels as they appear in the API response.
const (
	PaymentTypeDefault = "User Default"
	PaymentTypeCustom  = "Order Custom Payment"
)

// PaymentRecord is one card known to the system: either a user's stored
// default card or the custom card attached to a single order.  CardCVV is
// always null for custom payments because orders never store a CVV.
type PaymentRecord struct {
	UserID         uint64
	UserName       string
	Email          string
	PaymentType    string
	FullCardNumber string
	CardHolderName sql.NullString
	CardExpiry     sql.NullString
	CardCVV        sql.NullString
	OrderID        sql.NullInt64
	OrderDate      sql.NullTime
}

// PaymentRepo reads the union of default and custom payment cards.
type PaymentRepo struct {
	db *sql.DB
}

// NewPaymentRepo constructs a PaymentRepo with the given DB handle.
func NewPaymentRepo(db *sql.DB) *PaymentRepo {
	return &PaymentRepo{db: db}
}

// ListAll returns every non-empty default card and every non-empty custom
// order card, ordered by user name, then payment type, then order date
// descending.  The ORDER BY relies on the column aliases of the first
// SELECT branch, which MySQL applies to the whole union.
func (r *PaymentRepo) ListAll(ctx context.Context) ([]PaymentRecord, error) {
	const q = `SELECT u.id AS user_id, u.name AS user_name, u.email AS email,
                      'User Default' AS payment_type,
                      u.card_number AS full_card_number,
                      u.card_holder AS card_holder,
                      u.card_expiry AS card_expiry,
                      u.card_cvv AS card_cvv,
                      NULL AS order_id, NULL AS order_date
               FROM users u
               WHERE u.card_number IS NOT NULL AND TRIM(u.card_number) <> ''
               UNION ALL
               SELECT u.id, u.name, u.email,
                      'Order Custom Payment',
                      o.custom_card_number,
                      o.custom_card_holder,
                      o.custom_card_expiry,
                      NULL,
                      o.id, o.order_date
               FROM orders o
               JOIN users u ON o.user_id = u.id
               WHERE o.use_custom_payment = 1
                 AND o.custom_card_number IS NOT NULL
                 AND TRIM(o.custom_card_number) <> ''
               ORDER BY user_name, payment_type, order_date DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []PaymentRecord
	for rows.Next() {
		var p PaymentRecord
		if err := rows.Scan(
			&p.UserID, &p.UserName, &p.Email, &p.PaymentType,
			&p.FullCardNumber, &p.CardHolderName, &p.CardExpiry, &p.CardCVV,
			&p.OrderID, &p.OrderDate,
		); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
