// Package handler exposes the HTTP handlers of the ticket-sales API.  Every
// endpoint responds with the same envelope: {"success": true, ...} on the
// happy path, {"success": false, "error"|"message": ...} otherwise.  This
// file holds the envelope helpers and the sql.Null* to JSON pointer
// conversions shared by all handlers.
package handler

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// internalErrMsg is the only database-failure text clients ever see; the
// underlying cause is logged server-side and discarded from the response.
const internalErrMsg = "Internal server error"

// listOK writes a 200 list envelope with an explicit element count.
func listOK(c echo.Context, count int, data interface{}) error {
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"count":   count,
		"data":    data,
	})
}

// objectOK writes a 200 envelope around a single object.
func objectOK(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": data})
}

// created writes a 201 envelope with a confirmation message.
func created(c echo.Context, message string, data interface{}) error {
	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// failErr writes a failure envelope using the "error" key (400/409/500).
func failErr(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"success": false, "error": msg})
}

// failMsg writes a failure envelope using the "message" key.  The original
// API uses this shape for 404s, which are expected outcomes rather than
// faults.
func failMsg(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"success": false, "message": msg})
}

// internalErr logs the database fault and answers with the fixed 500 body.
func internalErr(c echo.Context, err error) error {
	c.Logger().Errorf("database error on %s %s: %v", c.Request().Method, c.Path(), err)
	return failErr(c, http.StatusInternalServerError, internalErrMsg)
}

// nullStr converts a nullable string column into a JSON-friendly pointer.
func nullStr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

// nullTime converts a nullable DATETIME column into a JSON-friendly pointer.
func nullTime(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}

// nullInt converts a nullable integer column into a JSON-friendly pointer.
func nullInt(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

// nullFloat converts a nullable numeric column into a JSON-friendly pointer.
func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
