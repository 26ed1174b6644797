// Package utils contains small helpers shared across handlers and
// repositories.  This file implements payment-card display masking.
package utils

import "strings"

// maskPrefix is the fixed display prefix placed before the last four
// digits of a card number.
const maskPrefix = "**** **** **** "

// MaskCard returns the display form of a payment-card number: the fixed
// masked prefix followed by the last four characters of the stored
// number.  Numbers shorter than four characters are returned with the
// whole remainder after the prefix, matching how the database RIGHT()
// function behaves on short strings.  Whitespace-only input yields an
// empty string so callers can map it to a null JSON field.
func MaskCard(number string) string {
	n := strings.TrimSpace(number)
	if n == "" {
		return ""
	}
	if len(n) > 4 {
		n = n[len(n)-4:]
	}
	return maskPrefix + n
}
