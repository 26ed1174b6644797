// Package queue defines message payloads exchanged over the message broker.
package queue

// OrderCreatedEvent is published after an order commits and its ticket is
// claimed.  It carries enough for downstream consumers (notification,
// analytics) to act without querying the primary database.  Card data is
// deliberately absent.
type OrderCreatedEvent struct {
	OrderID          uint64 `json:"order_id"`
	UserID           uint64 `json:"user_id"`
	TicketID         uint64 `json:"ticket_id"`
	OrderDate        string `json:"order_date"`
	UseCustomPayment bool   `json:"use_custom_payment"`
}
