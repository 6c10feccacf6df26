package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ananth-NQI/bteam-backend/internal/auth"
	"github.com/Ananth-NQI/bteam-backend/internal/models"
	"github.com/Ananth-NQI/bteam-backend/internal/storage"
)

const cookieName = "bteam_session"

func newTestApp(t *testing.T) (*fiber.App, *auth.TokenIssuer, *storage.MemoryStore) {
	t.Helper()
	tokens := auth.NewTokenIssuer("middleware-secret", time.Hour)
	store := storage.NewMemoryStore()
	for _, u := range []*models.User{
		{ID: "u-1", Name: "U", Email: "u@co.com", Role: models.RoleEmployee},
		{ID: "a-1", Name: "A", Email: "a@co.com", Role: models.RoleAdmin},
	} {
		require.NoError(t, store.CreateUser(context.Background(), u))
	}

	app := fiber.New()
	app.Use(Session(tokens, cookieName))
	app.Get("/open", func(c *fiber.Ctx) error {
		id, ok := IdentityFrom(c)
		return c.JSON(fiber.Map{"ok": ok, "user": id.UserID})
	})
	app.Get("/member", RequireSession(), func(c *fiber.Ctx) error { return c.SendString("member") })
	app.Get("/admin", RequireAdmin(store), func(c *fiber.Ctx) error {
		id, _ := IdentityFrom(c)
		return c.SendString(id.Role)
	})
	app.Use("/dashboard", LoginRedirect("/login"))
	app.Get("/dashboard/*", func(c *fiber.Ctx) error { return c.SendString("dashboard") })
	return app, tokens, store
}

func issue(t *testing.T, tokens *auth.TokenIssuer, role string) string {
	t.Helper()
	return issueFor(t, tokens, "u-1", role)
}

func issueFor(t *testing.T, tokens *auth.TokenIssuer, userID, role string) string {
	t.Helper()
	token, err := tokens.Issue(auth.Identity{UserID: userID, Email: "u@co.com", Name: "U", Role: role})
	require.NoError(t, err)
	return token
}

func getAdmin(t *testing.T, app *fiber.App, token string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestRequireSession(t *testing.T) {
	app, tokens, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/member", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/member", nil)
	req.Header.Set("Authorization", "Bearer "+issue(t, tokens, models.RoleEmployee))
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/member", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: issue(t, tokens, models.RoleEmployee)})
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/member", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAdmin(t *testing.T) {
	app, tokens, _ := newTestApp(t)

	status, _ := getAdmin(t, app, "")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = getAdmin(t, app, issueFor(t, tokens, "u-1", models.RoleEmployee))
	assert.Equal(t, fiber.StatusForbidden, status)

	status, body := getAdmin(t, app, issueFor(t, tokens, "a-1", models.RoleAdmin))
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, models.RoleAdmin, body)
}

func TestRequireAdmin_UsesStoredRole(t *testing.T) {
	ctx := context.Background()
	app, tokens, store := newTestApp(t)

	// token still claims admin after the account was demoted
	adminToken := issueFor(t, tokens, "a-1", models.RoleAdmin)
	demoted := models.RoleEmployee
	require.NoError(t, store.UpdateUser(ctx, "a-1", &models.EmployeeUpdate{Role: &demoted}))
	status, _ := getAdmin(t, app, adminToken)
	assert.Equal(t, fiber.StatusForbidden, status)

	// a stale employee token is honoured once the account is promoted
	promoted := models.RoleAdmin
	require.NoError(t, store.UpdateUser(ctx, "u-1", &models.EmployeeUpdate{Role: &promoted}))
	status, body := getAdmin(t, app, issueFor(t, tokens, "u-1", models.RoleEmployee))
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, models.RoleAdmin, body)

	require.NoError(t, store.DeleteUser(ctx, "u-1"))
	status, _ = getAdmin(t, app, issueFor(t, tokens, "u-1", models.RoleAdmin))
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestLoginRedirect(t *testing.T) {
	app, tokens, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/dashboard/support", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTemporaryRedirect, resp.StatusCode)
	assert.Equal(t, "/login?callbackUrl=%2Fdashboard%2Fsupport", resp.Header.Get("Location"))

	req := httptest.NewRequest(http.MethodGet, "/dashboard/support", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: issue(t, tokens, models.RoleEmployee)})
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRateLimit(t *testing.T) {
	app := fiber.New()
	app.Post("/otp", RateLimit(2, time.Minute, nil), func(c *fiber.Ctx) error { return c.SendString("ok") })

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/otp", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}
	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/otp", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "abc", bearerToken("bearer abc"))
	assert.Empty(t, bearerToken("Basic abc"))
	assert.Empty(t, bearerToken(""))
}
