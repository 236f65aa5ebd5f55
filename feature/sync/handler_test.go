package sync

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func passthrough(c *fiber.Ctx) error {
	return c.Next()
}

func reject(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "invalid or expired token",
	})
}

func setupTestApp(t *testing.T, db *gorm.DB, tokenGuard fiber.Handler) *fiber.App {
	svc := newTestService(t, db)
	h := NewHandler(svc, tokenGuard, passthrough)

	app := fiber.New()
	h.RegisterRoutes(app)
	return app
}

func TestHandleBulkUpdate_EmptyPayload(t *testing.T) {
	db, mock := setupMockDB(t)
	app := setupTestApp(t, db, passthrough)

	expectSessionInsert(mock)

	req := httptest.NewRequest("POST", "/api/bulk_update", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result map[string]map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	for _, dataset := range []string{"deleted", "not_for_sale", "out_of_stock", "stock_updates"} {
		require.Contains(t, result, dataset)
		assert.Equal(t, float64(2), result[dataset]["result_code"])
		assert.Equal(t, "Operation not performed", result[dataset]["result_message"])
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleBulkUpdate_MalformedBody(t *testing.T) {
	db, mock := setupMockDB(t)
	app := setupTestApp(t, db, passthrough)

	req := httptest.NewRequest("POST", "/api/bulk_update", strings.NewReader(`not json`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleBulkUpdate_AppliesDeletions(t *testing.T) {
	db, mock := setupMockDB(t)
	app := setupTestApp(t, db, passthrough)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `sales_items`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "code"}).AddRow(4, "A1"))
	mock.ExpectExec("DELETE FROM `sales_items`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	expectSessionInsert(mock)

	body := `{"deleted":[{"code":"A1"}]}`
	req := httptest.NewRequest("POST", "/api/bulk_update", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result map[string]map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, float64(0), result["deleted"]["result_code"])
	assert.Equal(t, float64(1), result["deleted"]["deleted_count"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

// The guard runs before any business logic: a rejected credential never
// touches the store.
func TestSyncEndpoints_RejectedWithoutValidToken(t *testing.T) {
	db, mock := setupMockDB(t)
	app := setupTestApp(t, db, reject)

	for _, route := range []struct {
		method string
		path   string
	}{
		{"POST", "/api/bulk_update"},
		{"GET", "/api/purchases"},
		{"POST", "/api/items/delete_all"},
	} {
		req := httptest.NewRequest(route.method, route.path, strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, route.path)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandlePurchaseExport(t *testing.T) {
	db, mock := setupMockDB(t)
	app := setupTestApp(t, db, passthrough)

	bought := time.Date(2026, 8, 27, 14, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `purchase_history`").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "purchase_code", "salesitem_code", "salesitem_name",
			"salesitem_vendor_name", "salesitem_item_base_price",
			"quantity", "total_price", "purchase_time", "requires_sync",
		}).AddRow(1, "P-001", "A1", "Widget", "V", 9.5, 2, 19.0, bought, true))
	mock.ExpectExec("UPDATE `purchase_history`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	expectSessionInsert(mock)

	req := httptest.NewRequest("GET", "/api/purchases", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var records []PurchaseRecord
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&records))
	require.Len(t, records, 1)
	assert.Equal(t, "A1", records[0].Code)
	assert.Equal(t, 19.0, records[0].TotalPrice)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleResetStore(t *testing.T) {
	db, mock := setupMockDB(t)
	app := setupTestApp(t, db, passthrough)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `sales_items`").
		WillReturnResult(sqlmock.NewResult(0, 5))
	mock.ExpectExec("DELETE FROM `purchase_history`").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	expectSessionInsert(mock)

	req := httptest.NewRequest("POST", "/api/items/delete_all", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"success":true`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandleHistory(t *testing.T) {
	db, mock := setupMockDB(t)
	app := setupTestApp(t, db, passthrough)

	started := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT \\* FROM `sync_history`").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "remote_name", "timestamp_start", "timestamp_end",
			"error_code", "connection_type", "updates_received", "updates_sent",
		}).AddRow(1, "Warehouse", started, started.Add(time.Second), 0, "sync", 3, 0))

	req := httptest.NewRequest("GET", "/sync/history?limit=5", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var sessions []SyncHistory
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sessions))
	require.Len(t, sessions, 1)
	assert.Equal(t, ConnectionSync, sessions[0].ConnectionType)
	assert.Equal(t, 3, sessions[0].UpdatesReceived)
	assert.NoError(t, mock.ExpectationsWereMet())
}
