package backend

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth_MintAndSubject(t *testing.T) {
	auth := testAuth(t)

	sub, err := auth.Subject(mint(t, auth, "alice"))
	require.NoError(t, err)
	assert.Equal(t, "alice", sub)
}

func TestAuth_Rejects(t *testing.T) {
	auth := testAuth(t)
	other, err := NewAuth("other-secret")
	require.NoError(t, err)

	expired, err := auth.Mint("alice", -time.Minute)
	require.NoError(t, err)

	noSub, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "alice",
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tests := map[string]string{
		"wrong secret": mint(t, other, "alice"),
		"expired":      expired,
		"missing sub":  noSub,
		"missing exp":  noExp,
		"garbage":      "not-a-token",
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := auth.Subject(token)
			assert.Error(t, err)
		})
	}
}

func TestNewAuth_RequiresSecret(t *testing.T) {
	_, err := NewAuth("  ")
	assert.Error(t, err)
}

func TestAuth_Middleware(t *testing.T) {
	auth := testAuth(t)
	e := echo.New()
	e.GET("/whoami", func(c echo.Context) error {
		return c.String(http.StatusOK, ownerOf(c))
	}, auth.Middleware())

	tests := []struct {
		name   string
		header string
		code   int
		body   string
	}{
		{name: "valid", header: "Bearer " + mint(t, auth, "alice"), code: http.StatusOK, body: "alice"},
		{name: "missing", header: "", code: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", code: http.StatusUnauthorized},
		{name: "invalid", header: "Bearer nope", code: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.code, rec.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, rec.Body.String())
			}
		})
	}
}
