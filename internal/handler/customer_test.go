package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/ticket-sales-api/internal/repository"
)

var customerOrderColumns = []string{
	"id", "order_date", "use_custom_payment",
	"custom_card_number", "card_number",
	"ticket_id", "seat_number", "price",
	"show_name", "show_date", "venue_name",
}

func newCustomerTest(t *testing.T) (*CustomerHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewCustomerHandler(repository.NewUserRepo(db), repository.NewOrderRepo(db)), mock
}

func getCustomerOrders(t *testing.T, h *CustomerHandler, userID string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/customers/"+userID+"/orders", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/customers/:userId/orders")
	c.SetParamNames("userId")
	c.SetParamValues(userID)
	require.NoError(t, h.ListOrders(c))
	return rec
}

func TestListOrdersNoOrdersReturns404(t *testing.T) {
	h, mock := newCustomerTest(t)

	mock.ExpectQuery("FROM orders o").
		WithArgs(uint64(9)).
		WillReturnRows(sqlmock.NewRows(customerOrderColumns))

	rec := getCustomerOrders(t, h, "9")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "No orders found for this user.", resp["message"])
}

func TestListOrdersMasksSelectedCard(t *testing.T) {
	h, mock := newCustomerTest(t)

	orderDate := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	showDate := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
	mock.ExpectQuery("FROM orders o").
		WithArgs(uint64(9)).
		WillReturnRows(sqlmock.NewRows(customerOrderColumns).
			// Custom payment: the order's card wins over the user default.
			AddRow(2, orderDate.Add(time.Hour), true, "5500000000000004", "4532123456789012",
				11, "A1", 30.0, "May Night", showDate, "Opera House").
			AddRow(1, orderDate, false, nil, "4532123456789012",
				12, "A2", 30.0, "May Night", showDate, "Opera House"))

	rec := getCustomerOrders(t, h, "9")

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Success bool                    `json:"success"`
		Count   int                     `json:"count"`
		Data    []CustomerOrderResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Count)
	require.NotNil(t, resp.Data[0].MaskedCardNumber)
	assert.Equal(t, "**** **** **** 0004", *resp.Data[0].MaskedCardNumber)
	require.NotNil(t, resp.Data[1].MaskedCardNumber)
	assert.Equal(t, "**** **** **** 9012", *resp.Data[1].MaskedCardNumber)
}

func TestListCustomersMasksDefaultCard(t *testing.T) {
	h, mock := newCustomerTest(t)

	last := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery("FROM users u").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "email", "card_number", "card_holder", "card_expiry",
			"total_orders", "last_order_date", "total_spent",
		}).
			AddRow(1, "Alice", "alice@example.com", "4532123456789012", "Alice A", "11/27", 3, last, 120.5).
			AddRow(2, "Bob", "bob@example.com", nil, nil, nil, 0, nil, 0.0))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/customers", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/customers")
	require.NoError(t, h.List(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Success bool               `json:"success"`
		Count   int                `json:"count"`
		Data    []CustomerResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Count)

	require.NotNil(t, resp.Data[0].MaskedPaymentCard)
	assert.Equal(t, "**** **** **** 9012", *resp.Data[0].MaskedPaymentCard)
	assert.Equal(t, uint32(3), resp.Data[0].TotalOrders)
	assert.Equal(t, 120.5, resp.Data[0].TotalSpent)

	// No stored card and no orders: masked card and last order stay null,
	// spend is zero.
	assert.Nil(t, resp.Data[1].MaskedPaymentCard)
	assert.Nil(t, resp.Data[1].LastOrderDate)
	assert.Equal(t, 0.0, resp.Data[1].TotalSpent)
}

func TestListOrdersInvalidUserID(t *testing.T) {
	h, _ := newCustomerTest(t)
	rec := getCustomerOrders(t, h, "abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
