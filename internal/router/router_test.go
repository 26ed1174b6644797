package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/ticket-sales-api/internal/handler"
	"github.com/iliyamo/ticket-sales-api/internal/repository"
)

func newTestEcho(t *testing.T, paymentsSecret string) *echo.Echo {
	t.Helper()
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	h := Handlers{
		Show:     handler.NewShowHandler(repository.NewShowRepo(db)),
		Ticket:   handler.NewTicketHandler(repository.NewTicketRepo(db)),
		Customer: handler.NewCustomerHandler(repository.NewUserRepo(db), repository.NewOrderRepo(db)),
		Order:    handler.NewOrderHandler(repository.NewOrderRepo(db), false),
		Payment:  handler.NewPaymentHandler(repository.NewPaymentRepo(db)),
		Venue:    handler.NewVenueHandler(repository.NewVenueRepo(db)),
		Category: handler.NewCategoryHandler(repository.NewCategoryRepo(db)),
	}
	e := echo.New()
	RegisterRoutes(e)
	RegisterAPI(e, h, nil, paymentsSecret)
	return e
}

func TestAllRoutesRegistered(t *testing.T) {
	e := newTestEcho(t, "")

	want := []string{
		"GET /healthz",
		"GET /api/shows/upcoming",
		"GET /api/shows/:id",
		"GET /api/shows/:id/tickets",
		"GET /api/tickets/available",
		"GET /api/customers",
		"GET /api/customers/:userId/orders",
		"POST /api/orders",
		"GET /api/payments",
		"GET /api/venues",
		"GET /api/categories",
	}
	got := map[string]bool{}
	for _, r := range e.Routes() {
		got[r.Method+" "+r.Path] = true
	}
	for _, route := range want {
		assert.True(t, got[route], "missing route %s", route)
	}
}

func TestPaymentsGuardedWhenSecretSet(t *testing.T) {
	e := newTestEcho(t, "test-secret")

	req := httptest.NewRequest(http.MethodGet, "/api/payments", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHealthz(t *testing.T) {
	e := newTestEcho(t, "")

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
