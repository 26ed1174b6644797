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

var showColumns = []string{
	"id", "name", "description", "show_date", "ticket_price",
	"category", "venue", "location", "capacity", "image_file_name",
	"available_tickets",
}

func getShow(t *testing.T, h *ShowHandler, id string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/shows/"+id, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/shows/:id")
	c.SetParamNames("id")
	c.SetParamValues(id)
	require.NoError(t, h.GetByID(c))
	return rec
}

func TestGetShowByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	date := time.Date(2026, 6, 1, 20, 0, 0, 0, time.UTC)
	mock.ExpectQuery("FROM shows s").
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows(showColumns).
			AddRow(3, "Spring Concert", "Strings all evening", date, 45.50,
				"Concert", "City Hall", "Main Street 1", 1200, "spring.jpg", 17))

	h := NewShowHandler(repository.NewShowRepo(db))
	rec := getShow(t, h, "3")

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Success bool         `json:"success"`
		Data    ShowResponse `json:"data"`
	}
	// The payload is a single object, not an array.
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, uint64(3), resp.Data.ShowID)
	assert.Equal(t, uint32(17), resp.Data.AvailableTickets)
	assert.Equal(t, "Concert", resp.Data.Category)
}

func TestGetShowByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM shows s").
		WithArgs(uint64(999)).
		WillReturnRows(sqlmock.NewRows(showColumns))

	h := NewShowHandler(repository.NewShowRepo(db))
	rec := getShow(t, h, "999")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "Show not found.", resp["message"])
}

func TestListUpcomingEmptyIsOK(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM shows s").
		WillReturnRows(sqlmock.NewRows(showColumns))

	h := NewShowHandler(repository.NewShowRepo(db))
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/shows/upcoming", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/shows/upcoming")
	require.NoError(t, h.ListUpcoming(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Success bool           `json:"success"`
		Count   int            `json:"count"`
		Data    []ShowResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 0, resp.Count)
	assert.NotNil(t, resp.Data) // empty array, not null
}
