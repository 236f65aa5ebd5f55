package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/feature/catalog/models"
)

func TestNewSalesItemCollection(t *testing.T) {
	coll, err := NewSalesItemCollection()
	require.NoError(t, err)

	assert.Equal(t, "sales_items", coll.Table())
	for _, column := range []string{"code", "name", "description", "vendor_name", "price_per_unit", "units_in_stock", "last_updated"} {
		assert.True(t, coll.CanSet(column), column)
	}
	// Present in the schema but deliberately not writable by the sync.
	assert.True(t, coll.HasColumn("units_purchased"))
	assert.False(t, coll.CanSet("units_purchased"))
}

func TestSalesItemSetters_CoerceLooseTypes(t *testing.T) {
	coll, err := NewSalesItemCollection()
	require.NoError(t, err)

	var item models.SalesItem
	// JSON numbers arrive as float64.
	coll.Set(&item, "code", "B2")
	coll.Set(&item, "price_per_unit", 9.5)
	coll.Set(&item, "units_in_stock", float64(3))
	now := time.Now().UTC()
	coll.Set(&item, "last_updated", now)

	assert.Equal(t, "B2", item.Code)
	assert.Equal(t, 9.5, item.PricePerUnit)
	assert.Equal(t, 3, item.UnitsInStock)
	assert.Equal(t, now, item.LastUpdated)
}
