package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"birthday-song-service/internal/apperr"
	"birthday-song-service/internal/ratelimit"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func TestRateLimit_SetsHeadersAndDenies(t *testing.T) {
	e := echo.New()
	limiter := ratelimit.NewLimiter(ratelimit.NewStore(), "generation", 1, time.Minute)
	h := RateLimit(limiter)(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "9.9.9.9")
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))

	assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "60", rec.Header().Get("X-RateLimit-Reset"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "9.9.9.9")
	rec = httptest.NewRecorder()
	err := h(e.NewContext(req, rec))

	require.Error(t, err)
	appErr, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindRateLimited, appErr.Kind)
	assert.Equal(t, 60, appErr.RetryAfter)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
}

func TestAdminAuth(t *testing.T) {
	const secret = "test-secret"
	e := echo.New()

	valid, err := IssueAdminToken(secret, "ops", time.Hour)
	require.NoError(t, err)

	nonAdmin, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "someone",
		"role": "viewer",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(secret))
	require.NoError(t, err)

	wrongKey, err := IssueAdminToken("other-secret", "ops", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name       string
		secret     string
		header     string
		wantStatus int
	}{
		{name: "valid admin token", secret: secret, header: "Bearer " + valid, wantStatus: http.StatusOK},
		{name: "missing header", secret: secret, header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong signing key", secret: secret, header: "Bearer " + wrongKey, wantStatus: http.StatusUnauthorized},
		{name: "not an admin", secret: secret, header: "Bearer " + nonAdmin, wantStatus: http.StatusForbidden},
		{name: "admin disabled", secret: "", header: "Bearer " + valid, wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()

			err := AdminAuth(tt.secret)(okHandler)(e.NewContext(req, rec))
			if tt.wantStatus == http.StatusOK {
				require.NoError(t, err)
				assert.Equal(t, http.StatusOK, rec.Code)
				return
			}

			require.Error(t, err)
			if appErr, ok := apperr.As(err); ok {
				assert.Equal(t, tt.wantStatus, appErr.Status())
				return
			}
			httpErr, ok := err.(*echo.HTTPError)
			require.True(t, ok)
			assert.Equal(t, tt.wantStatus, httpErr.Code)
		})
	}
}
