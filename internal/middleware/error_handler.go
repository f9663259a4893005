package middleware

import (
	"net/http"

	"skinMatch/pkg/logger"

	jsonres "skinMatch/pkg/response"

	"github.com/labstack/echo/v4"
)

// ErrorHandler is the echo HTTPErrorHandler: it maps unhandled errors to the
// shared envelope so clients never see echo's default error body.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Internal server error"

	if httpErr, ok := err.(*echo.HTTPError); ok {
		code = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
	}

	if code >= http.StatusInternalServerError {
		logger.Error("Unhandled request error", "method", c.Request().Method, "path", c.Path(), "error", err)
	}

	if jsonErr := c.JSON(code, jsonres.Error(http.StatusText(code), message, nil)); jsonErr != nil {
		logger.Error("Failed to write error response", jsonErr)
	}
}
