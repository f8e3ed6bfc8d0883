package jwt

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkozyrev/devconnect/pkg/auth"
)

func newProtectedApp(secret, issuer string) *fiber.App {
	app := fiber.New()
	app.Get("/protected", NewAuthMiddleware(secret, issuer), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"userId": c.Locals("userId")})
	})
	return app
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	app := newProtectedApp("secret", "devconnect")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/protected", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "No token, authorization denied", body["msg"])
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	app := newProtectedApp("secret", "devconnect")

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(HeaderName, "not.a.token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Token is not valid", body["msg"])
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	gen := NewGenerator("secret", "devconnect", -time.Minute)
	token, err := gen.Generate(context.Background(), auth.User{ID: uuid.New()})
	require.NoError(t, err)

	app := newProtectedApp("secret", "devconnect")
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(HeaderName, token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_ValidTokenResolvesIdentity(t *testing.T) {
	user := auth.User{ID: uuid.New()}
	gen := NewGenerator("secret", "devconnect", time.Hour)
	token, err := gen.Generate(context.Background(), user)
	require.NoError(t, err)

	app := newProtectedApp("secret", "devconnect")
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(HeaderName, token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, user.ID.String(), body["userId"])
}
