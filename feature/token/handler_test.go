package token

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func passthrough(c *fiber.Ctx) error {
	return c.Next()
}

func setupTestApp(db *gorm.DB) *fiber.App {
	issuer := NewIssuer(db, testAppID, testSecret, 60, zap.NewNop())
	svc := NewService(db, issuer, zap.NewNop())
	h := NewHandler(svc, passthrough)

	app := fiber.New()
	h.RegisterRoutes(app)
	return app
}

func TestHandleList(t *testing.T) {
	db, mock := setupMockDB(t)
	app := setupTestApp(db)

	created := time.Now().UTC().Add(-48 * time.Hour)
	mock.ExpectQuery("SELECT \\* FROM `api_tokens`").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "connection_name", "token", "created_at", "expires_at", "revoked", "last_used_at",
		}).
			AddRow(2, "Warehouse", "tok-2", created, time.Now().UTC().Add(time.Hour), false, nil).
			AddRow(1, "Backup", "tok-1", created, created.Add(time.Hour), true, nil))

	req := httptest.NewRequest("GET", "/tokens/", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var views []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&views))
	require.Len(t, views, 2)
	assert.Equal(t, "active", views[0]["status"])
	assert.Equal(t, "revoked", views[1]["status"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleIssue(t *testing.T) {
	db, mock := setupMockDB(t)
	app := setupTestApp(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `api_tokens`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	expiration := time.Now().UTC().AddDate(0, 0, 14).Format(time.RFC3339)
	body := fmt.Sprintf(`{"connection_name":"Warehouse","expires_at":%q}`, expiration)
	req := httptest.NewRequest("POST", "/tokens/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var view map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	assert.Equal(t, "Warehouse", view["connection_name"])
	assert.NotEmpty(t, view["token"])
	assert.Equal(t, "active", view["status"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleIssue_RejectsPastExpiration(t *testing.T) {
	db, mock := setupMockDB(t)
	app := setupTestApp(db)

	expiration := time.Now().UTC().Add(-time.Hour).Format(time.RFC3339)
	body := fmt.Sprintf(`{"connection_name":"Warehouse","expires_at":%q}`, expiration)
	req := httptest.NewRequest("POST", "/tokens/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleToggleRevoked(t *testing.T) {
	db, mock := setupMockDB(t)
	app := setupTestApp(db)

	created := time.Now().UTC().Add(-time.Hour)
	mock.ExpectQuery("SELECT \\* FROM `api_tokens`").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "connection_name", "token", "created_at", "expires_at", "revoked", "last_used_at",
		}).AddRow(3, "Warehouse", "tok-3", created, created.Add(48*time.Hour), false, nil))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `api_tokens`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	req := httptest.NewRequest("POST", "/tokens/3/revoke", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var view map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	assert.Equal(t, "revoked", view["status"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleToggleRevoked_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	app := setupTestApp(db)

	mock.ExpectQuery("SELECT \\* FROM `api_tokens`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	req := httptest.NewRequest("POST", "/tokens/99/revoke", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleDelete(t *testing.T) {
	db, mock := setupMockDB(t)
	app := setupTestApp(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `api_tokens`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	req := httptest.NewRequest("DELETE", "/tokens/3", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleDelete_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	app := setupTestApp(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `api_tokens`").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	req := httptest.NewRequest("DELETE", "/tokens/99", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequireValid_MissingToken(t *testing.T) {
	db, mock := setupMockDB(t)
	v := NewValidator(db, testAppID, testSecret, zap.NewNop())

	app := fiber.New()
	app.Get("/guarded", RequireValid(v), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	req := httptest.NewRequest("GET", "/guarded", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequireValid_AcceptsBearerToken(t *testing.T) {
	db, mock := setupMockDB(t)
	v := NewValidator(db, testAppID, testSecret, zap.NewNop())

	expiration := time.Now().UTC().Add(time.Hour)
	tokenString := signTestToken(t, testAppID, testAppID, testSecret, expiration)

	mock.ExpectQuery("SELECT \\* FROM `api_tokens`").
		WillReturnRows(tokenRows(tokenString, expiration, false))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `api_tokens`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	app := fiber.New()
	app.Get("/guarded", RequireValid(v), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	req := httptest.NewRequest("GET", "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}
