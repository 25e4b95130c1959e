package middleware

import (
	"strconv"

	"birthday-song-service/internal/apperr"
	"birthday-song-service/internal/ratelimit"

	"github.com/labstack/echo/v4"
)

// RateLimit rejects requests over the limiter's window with 429 and always
// reports the current window through X-RateLimit-* headers.
func RateLimit(limiter *ratelimit.Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity := ratelimit.ClientIdentity(c.Request().Header)
			result := limiter.Allow(identity)

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
			h.Set("X-RateLimit-Reset", strconv.Itoa(result.ResetSeconds))

			if !result.Allowed {
				h.Set("Retry-After", strconv.Itoa(result.ResetSeconds))
				return apperr.RateLimited(result.ResetSeconds)
			}

			return next(c)
		}
	}
}
