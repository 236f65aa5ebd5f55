package models

import "time"

// SalesItem represents one sellable inventory unit in the 'sales_items'
// table. Code is the immutable business key the warehouse sync matches on;
// rows are only ever mutated by the reconciliation engine or by purchase
// finalization, and removed via the delete-style sub-datasets.
type SalesItem struct {
	ID             int       `gorm:"column:id;primaryKey"`
	Code           string    `gorm:"column:code;size:32;uniqueIndex;not null"`
	Name           string    `gorm:"column:name;size:128;not null"`
	Description    string    `gorm:"column:description;type:text"`
	Picture        string    `gorm:"column:picture;size:256"`
	PricePerUnit   float64   `gorm:"column:price_per_unit"`
	UnitsInStock   int       `gorm:"column:units_in_stock"`
	VendorName     string    `gorm:"column:vendor_name;size:128"`
	UnitsPurchased int       `gorm:"column:units_purchased;default:0"`
	LastUpdated    time.Time `gorm:"column:last_updated"`
}

// TableName overrides the table name for SalesItem.
func (SalesItem) TableName() string {
	return "sales_items"
}

// Purchase represents one row of the 'purchase_history' table. Item fields
// are denormalized copies taken at purchase time, so history survives item
// deletion. RequiresSync flags rows the warehouse has not pulled yet.
type Purchase struct {
	ID            int       `gorm:"column:id;primaryKey"`
	PurchaseCode  string    `gorm:"column:purchase_code;size:50"`
	SalesItemID   int       `gorm:"column:salesitem_id"`
	SalesItemCode string    `gorm:"column:salesitem_code;size:32;not null"`
	SalesItemName string    `gorm:"column:salesitem_name;size:128;not null"`
	VendorName    string    `gorm:"column:salesitem_vendor_name;size:128;not null"`
	PurchaseTime  time.Time `gorm:"column:purchase_time"`
	ItemBasePrice float64   `gorm:"column:salesitem_item_base_price"`
	PurchasePrice float64   `gorm:"column:salesitem_purchase_price"`
	Quantity      int       `gorm:"column:quantity"`
	TotalPrice    float64   `gorm:"column:total_price"`
	RequiresSync  bool      `gorm:"column:requires_sync;default:true"`
}

// TableName overrides the table name for Purchase.
func (Purchase) TableName() string {
	return "purchase_history"
}
