package handler

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/ticket-sales-api/internal/repository"
)

func newOrderTest(t *testing.T) (*OrderHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewOrderHandler(repository.NewOrderRepo(db), false), mock
}

func postOrder(t *testing.T, h *OrderHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/orders")
	require.NoError(t, h.Create(c))
	return rec
}

func TestCreateOrderMissingIDs(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing ticketId", `{"userId": 7}`},
		{"missing userId", `{"ticketId": 42}`},
		{"empty body", `{}`},
		{"zero ids", `{"userId": 0, "ticketId": 0}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, mock := newOrderTest(t)
			rec := postOrder(t, h, tc.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var resp map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, false, resp["success"])
			assert.Equal(t, "userId and ticketId are required.", resp["error"])
			// No SQL was expected and none may have run: validation failures
			// must not create an order row.
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCreateOrderSuccess(t *testing.T) {
	h, mock := newOrderTest(t)

	orderDate := time.Date(2026, 3, 14, 19, 30, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WillReturnResult(sqlmock.NewResult(101, 1))
	mock.ExpectExec("UPDATE tickets").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT id, user_id, ticket_id, order_date, use_custom_payment").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "ticket_id", "order_date", "use_custom_payment"}).
			AddRow(101, 7, 42, orderDate, false))
	mock.ExpectCommit()

	rec := postOrder(t, h, `{"userId": 7, "ticketId": 42}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var resp struct {
		Success bool          `json:"success"`
		Message string        `json:"message"`
		Data    OrderResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Order created successfully.", resp.Message)
	assert.Equal(t, uint64(101), resp.Data.OrderID)
	assert.Equal(t, uint64(7), resp.Data.UserID)
	assert.Equal(t, uint64(42), resp.Data.TicketID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrderTicketAlreadySold(t *testing.T) {
	h, mock := newOrderTest(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WillReturnResult(sqlmock.NewResult(102, 1))
	mock.ExpectExec("UPDATE tickets").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	rec := postOrder(t, h, `{"userId": 7, "ticketId": 42}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "Ticket is not available.", resp["error"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrderDatabaseFailure(t *testing.T) {
	h, mock := newOrderTest(t)

	mock.ExpectBegin().WillReturnError(sql.ErrConnDone)

	rec := postOrder(t, h, `{"userId": 7, "ticketId": 42}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	// The client sees only the fixed message, never the cause.
	assert.Equal(t, "Internal server error", resp["error"])
}
