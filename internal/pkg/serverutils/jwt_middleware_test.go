package serverutils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales-assistant-be/internal/config"
	"sales-assistant-be/pkg/store"
)

func newGuardedApp(secret string) *fiber.App {
	app := fiber.New()
	app.Use(NewJwtMiddleware(store.NewRevocationStore(nil), secret))
	app.Get("/me", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"user_id": ctx.Locals("user_id")})
	})
	return app
}

func signToken(t *testing.T, secret string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id":  "42f1f6f2-0000-0000-0000-000000000000",
		"username": "alice",
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

// A token issued with the configured secret must verify with the same
// configured secret, including on a fresh checkout where JWT_SECRET is not
// set and both sides fall back to the config default.
func TestJwtMiddlewareAcceptsTokenSignedWithConfigSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	os.Unsetenv("JWT_SECRET")

	cfg := config.Load()
	require.NotEmpty(t, cfg.App.JwtSecret, "config must supply a usable secret when the env is unset")

	app := newGuardedApp(cfg.App.JwtSecret)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, cfg.App.JwtSecret))

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "42f1f6f2-0000-0000-0000-000000000000", body["user_id"])
}

func TestJwtMiddlewareRejections(t *testing.T) {
	app := newGuardedApp("secret-a")

	tests := []struct {
		name    string
		header  string
		wantErr string
	}{
		{
			name:    "missing header",
			header:  "",
			wantErr: "Missing token",
		},
		{
			name:    "not bearer",
			header:  "Basic abc",
			wantErr: "Missing token",
		},
		{
			name:    "garbage token",
			header:  "Bearer not-a-jwt",
			wantErr: "Invalid token",
		},
		{
			name:    "wrong secret",
			header:  "Bearer " + signToken(t, "secret-b"),
			wantErr: "Invalid token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.wantErr, body["error"])
		})
	}
}
