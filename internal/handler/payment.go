package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/ticket-sales-api/internal/repository"
	"github.com/iliyamo/ticket-sales-api/internal/utils"
)

// PaymentHandler serves GET /api/payments.  The endpoint intentionally
// exposes full card numbers next to their masked forms; deployments are
// expected to keep it internal (see the optional JWT guard in the router).
type PaymentHandler struct {
	PaymentRepo *repository.PaymentRepo
}

// NewPaymentHandler constructs a PaymentHandler.
func NewPaymentHandler(paymentRepo *repository.PaymentRepo) *PaymentHandler {
	return &PaymentHandler{PaymentRepo: paymentRepo}
}

// PaymentResponse is one payment card: a user's stored default or the
// custom card of a single order.  CardCVV is always null for custom
// payments.
type PaymentResponse struct {
	UserID           uint64     `json:"UserId"`
	UserName         string     `json:"UserName"`
	Email            string     `json:"Email"`
	PaymentType      string     `json:"PaymentType"`
	FullCardNumber   string     `json:"FullCardNumber"`
	MaskedCardNumber string     `json:"MaskedCardNumber"`
	CardHolderName   *string    `json:"CardHolderName"`
	CardExpiry       *string    `json:"CardExpiry"`
	CardCVV          *string    `json:"CardCVV"`
	OrderID          *int64     `json:"OrderId"`
	OrderDate        *time.Time `json:"OrderDate"`
}

// List handles GET /api/payments, ordered by user name, payment type and
// order date descending.
func (h *PaymentHandler) List(c echo.Context) error {
	records, err := h.PaymentRepo.ListAll(c.Request().Context())
	if err != nil {
		return internalErr(c, err)
	}
	out := make([]PaymentResponse, 0, len(records))
	for _, p := range records {
		out = append(out, PaymentResponse{
			UserID:           p.UserID,
			UserName:         p.UserName,
			Email:            p.Email,
			PaymentType:      p.PaymentType,
			FullCardNumber:   p.FullCardNumber,
			MaskedCardNumber: utils.MaskCard(p.FullCardNumber),
			CardHolderName:   nullStr(p.CardHolderName),
			CardExpiry:       nullStr(p.CardExpiry),
			CardCVV:          nullStr(p.CardCVV),
			OrderID:          nullInt(p.OrderID),
			OrderDate:        nullTime(p.OrderDate),
		})
	}
	return listOK(c, len(out), out)
}
