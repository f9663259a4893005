package middleware

import (
	"context"

	"skinMatch/business/reco"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const TraceIDHeader = "X-Trace-Id"

// TraceID mints a trace id for each request (or reuses the caller's) and
// threads it through the request context so service logs can correlate.
func TraceID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			traceID := c.Request().Header.Get(TraceIDHeader)
			if traceID == "" {
				traceID = uuid.NewString()
			}

			ctx := context.WithValue(c.Request().Context(), reco.TraceIDKey, traceID)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Response().Header().Set(TraceIDHeader, traceID)

			return next(c)
		}
	}
}
