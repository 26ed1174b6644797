// Package repository defines sentinel errors shared across repositories.
// Higher layers translate them into HTTP responses: not-found sentinels
// become 404 and ErrTicketUnavailable becomes 409.
package repository

import "errors"

// ErrShowNotFound indicates that a show was not located in the DB.
var ErrShowNotFound = errors.New("show not found")

// ErrTicketUnavailable is returned when an order cannot claim its ticket
// because the ticket no longer exists, is flagged unavailable, or already
// belongs to another order.  The losing side of two concurrent purchases
// of the same ticket receives this error.
var ErrTicketUnavailable = errors.New("ticket unavailable")
