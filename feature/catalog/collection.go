package catalog

import (
	"time"

	"storefront/core/batch"
	"storefront/core/utils"
	"storefront/feature/catalog/models"
)

// SalesItemSetters is the static table of writable sales_items columns used
// by the batch engine. Setters own the coercion from loosely typed payload
// values into the model's field types.
func SalesItemSetters() map[string]batch.Setter[models.SalesItem] {
	return map[string]batch.Setter[models.SalesItem]{
		"code": func(item *models.SalesItem, v any) {
			item.Code = utils.ToString(v)
		},
		"name": func(item *models.SalesItem, v any) {
			item.Name = utils.ToString(v)
		},
		"description": func(item *models.SalesItem, v any) {
			item.Description = utils.ToString(v)
		},
		"picture": func(item *models.SalesItem, v any) {
			item.Picture = utils.ToString(v)
		},
		"vendor_name": func(item *models.SalesItem, v any) {
			item.VendorName = utils.ToString(v)
		},
		"price_per_unit": func(item *models.SalesItem, v any) {
			item.PricePerUnit = utils.ToFloat(v)
		},
		"units_in_stock": func(item *models.SalesItem, v any) {
			item.UnitsInStock = utils.ToInt(v)
		},
		"last_updated": func(item *models.SalesItem, v any) {
			if t, ok := v.(time.Time); ok {
				item.LastUpdated = t
			}
		},
	}
}

// NewSalesItemCollection builds the batch collection for sales items,
// validating the setter table against the declared model schema.
func NewSalesItemCollection() (*batch.Collection[models.SalesItem], error) {
	return batch.NewCollection(SalesItemSetters())
}
