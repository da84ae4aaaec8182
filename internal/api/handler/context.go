package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/weddingplan/planner-api/internal/api/middleware"
)

// apiKeyHeader carries a user-supplied Gemini key.
const apiKeyHeader = "X-Gemini-Key"

// ctxUserID extracts the user ID injected by the Auth middleware. Its absence
// means the route was mounted without authentication.
func ctxUserID(c echo.Context) (string, error) {
	id, _ := c.Get(middleware.CtxUserID).(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}
