package models

import (
	"time"

	"inventory-app/types"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ItemCategory string

const (
	CategoryEquipment   ItemCategory = "equipment"
	CategoryConsumable  ItemCategory = "consumable"
	CategorySparePart   ItemCategory = "spare_part"
	CategoryRawMaterial ItemCategory = "raw_material"
	CategoryPackaging   ItemCategory = "packaging"
	CategoryOther       ItemCategory = "other"
)

func (c ItemCategory) Valid() bool {
	switch c {
	case CategoryEquipment, CategoryConsumable, CategorySparePart,
		CategoryRawMaterial, CategoryPackaging, CategoryOther:
		return true
	}
	return false
}

type StockStatus string

const (
	StockStatusInStock    StockStatus = "in_stock"
	StockStatusLowStock   StockStatus = "low_stock"
	StockStatusOutOfStock StockStatus = "out_of_stock"
	StockStatusOverstock  StockStatus = "overstock"
)

// StockItem is a tracked part with a cached on-hand quantity.
// CurrentStock is derived from the ledger and is written only by the
// stock service; every other edit path must leave it untouched.
type StockItem struct {
	ID           types.SnowflakeID `json:"ID" gorm:"primaryKey"`
	PartNumber   string            `json:"part_number" gorm:"uniqueIndex;not null"`
	Name         string            `json:"name" gorm:"not null"`
	Category     ItemCategory      `json:"category" gorm:"size:30;default:other"`
	Uom          string            `json:"uom"`
	CostPrice    decimal.Decimal   `json:"cost_price" gorm:"type:decimal(20,4);default:0"`
	SellingPrice decimal.Decimal   `json:"selling_price" gorm:"type:decimal(20,4);default:0"`
	CurrentStock int               `json:"current_stock" gorm:"default:0"`
	MinimumStock int               `json:"minimum_stock" gorm:"default:0"`
	MaximumStock *int              `json:"maximum_stock" gorm:"default:null"`
	ReorderPoint *int              `json:"reorder_point" gorm:"default:null"`
	SupplierID   types.SnowflakeID `json:"supplier_id" gorm:"index;default:null"`
	IsActive     bool              `json:"is_active" gorm:"default:true"`
	Version      int               `json:"-" gorm:"default:0"`
	CreatedBy    string            `json:"created_by"`
	UpdatedBy    string            `json:"updated_by"`
	CreatedAt    time.Time         `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time         `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt    `json:"-" gorm:"index"`
}

// StockStatus classifies the current stock level against the item thresholds.
func (i *StockItem) StockStatus() StockStatus {
	switch {
	case i.CurrentStock == 0:
		return StockStatusOutOfStock
	case i.CurrentStock <= i.MinimumStock:
		return StockStatusLowStock
	case i.MaximumStock != nil && i.CurrentStock > *i.MaximumStock:
		return StockStatusOverstock
	default:
		return StockStatusInStock
	}
}

// NeedsReorder reports whether stock has dropped to the reorder point,
// falling back to the minimum stock threshold when none is set.
func (i *StockItem) NeedsReorder() bool {
	if i.ReorderPoint != nil {
		return i.CurrentStock <= *i.ReorderPoint
	}
	return i.CurrentStock <= i.MinimumStock
}
