package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ott-admin/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-jwt-secret"

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("error", "test")
	require.NoError(t, err)
	return log
}

func signToken(t *testing.T, role string, expiresIn time.Duration, secret string) string {
	t.Helper()
	claims := AdminClaims{
		Role:  role,
		Email: "admin@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func protectedHandler(t *testing.T) http.Handler {
	mw := Auth(testSecret, testLogger(t))
	return mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		require.True(t, ok)
		w.Write([]byte(claims.Email))
	}))
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{
			name:       "admin token accepted",
			authHeader: "Bearer " + signToken(t, "admin", time.Hour, testSecret),
			wantStatus: http.StatusOK,
		},
		{
			name:       "service role accepted",
			authHeader: "Bearer " + signToken(t, "service_role", time.Hour, testSecret),
			wantStatus: http.StatusOK,
		},
		{
			name:       "authenticated user without admin role rejected",
			authHeader: "Bearer " + signToken(t, "authenticated", time.Hour, testSecret),
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "expired token rejected",
			authHeader: "Bearer " + signToken(t, "admin", -time.Hour, testSecret),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong secret rejected",
			authHeader: "Bearer " + signToken(t, "admin", time.Hour, "other-secret"),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "missing header rejected",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed header rejected",
			authHeader: "Token abc",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			protectedHandler(t).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "admin@example.com", rec.Body.String())
			} else {
				assert.Contains(t, rec.Body.String(), `"success":false`)
			}
		})
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	mw := RequestID()
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, RequestIDFromContext(r.Context()))
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	// A caller-provided ID passes through
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "trace-123")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "trace-123", rec.Header().Get("X-Request-ID"))
}
