package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func TestAuthFlow(t *testing.T) {
	t.Run("register login and fetch profile", func(t *testing.T) {
		app := setupApp(t)

		accessToken, _, _ := app.registerUser(t, "ana@example.com", "secret123")

		rec := app.request("GET", "/api/v1/profile", "", accessToken)
		if rec.Code != http.StatusOK {
			t.Fatalf("profile failed: %d %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		user := result["user"].(map[string]interface{})
		if user["email"] != "ana@example.com" {
			t.Errorf("expected ana@example.com, got %v", user["email"])
		}

		accessToken2, _ := app.loginUser(t, "ana@example.com", "secret123")
		rec = app.request("GET", "/api/v1/profile", "", accessToken2)
		if rec.Code != http.StatusOK {
			t.Errorf("profile with login token failed: %d", rec.Code)
		}
	})

	t.Run("register rejects duplicate email", func(t *testing.T) {
		app := setupApp(t)

		app.registerUser(t, "ana@example.com", "secret123")

		rec := app.request("POST", "/api/v1/auth/register",
			`{"email":"ana@example.com","password":"different123"}`, "")
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("login rejects wrong password", func(t *testing.T) {
		app := setupApp(t)

		app.registerUser(t, "ana@example.com", "secret123")

		rec := app.request("POST", "/api/v1/auth/login",
			`{"email":"ana@example.com","password":"wrongpass123"}`, "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("refresh rotates the token pair", func(t *testing.T) {
		app := setupApp(t)

		_, refreshToken, _ := app.registerUser(t, "ana@example.com", "secret123")

		rec := app.request("POST", "/api/v1/auth/refresh",
			fmt.Sprintf(`{"refresh_token":%q}`, refreshToken), "")
		if rec.Code != http.StatusOK {
			t.Fatalf("refresh failed: %d %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		newAccess := result["access_token"].(string)

		rec = app.request("GET", "/api/v1/profile", "", newAccess)
		if rec.Code != http.StatusOK {
			t.Errorf("profile with refreshed token failed: %d", rec.Code)
		}
	})

	t.Run("protected routes reject missing token", func(t *testing.T) {
		app := setupApp(t)

		rec := app.request("GET", "/api/v1/expenses", "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("refresh token cannot be used as access token", func(t *testing.T) {
		app := setupApp(t)

		_, refreshToken, _ := app.registerUser(t, "ana@example.com", "secret123")

		rec := app.request("GET", "/api/v1/profile", "", refreshToken)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}
