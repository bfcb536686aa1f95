package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const HeaderRequestID = "X-Request-ID"

const ctxKeyRequestID = "request_id"

// requestID returns the id RequestID stored on the context, or "" when
// the middleware is not installed.
func requestID(c echo.Context) string {
	rid, _ := c.Get(ctxKeyRequestID).(string)
	return rid
}

// RequestID assigns each request an id, honoring one supplied by the
// caller, and echoes it back in the response.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rid := c.Request().Header.Get(HeaderRequestID)
			if rid == "" {
				rid = uuid.NewString()
			}
			c.Set(ctxKeyRequestID, rid)
			c.Response().Header().Set(HeaderRequestID, rid)
			return next(c)
		}
	}
}
