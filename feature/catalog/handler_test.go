package catalog

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHandleGetItemDetail(t *testing.T) {
	db, dbMock := setupMockDB(t)
	svc := NewService(db, nil, "storefront", "pictures/", zap.NewNop())
	h := NewHandler(svc)

	app := fiber.New()
	h.RegisterRoutes(app)

	dbMock.ExpectQuery("SELECT \\* FROM `sales_items`").
		WillReturnRows(itemRows().
			AddRow(1, "B2", "Widget", "d", "", 9.5, 3, "V", 0, time.Now().UTC()))

	req := httptest.NewRequest("GET", "/catalog/items/B2", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var detail ItemDetail
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&detail))
	assert.Equal(t, "B2", detail.Item.Code)
	assert.False(t, detail.PictureChecked)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestHandleGetItemDetail_NotFound(t *testing.T) {
	db, dbMock := setupMockDB(t)
	svc := NewService(db, nil, "storefront", "pictures/", zap.NewNop())
	h := NewHandler(svc)

	app := fiber.New()
	h.RegisterRoutes(app)

	dbMock.ExpectQuery("SELECT \\* FROM `sales_items`").
		WillReturnRows(itemRows())

	req := httptest.NewRequest("GET", "/catalog/items/Z9", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}
