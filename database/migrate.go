package database

import (
	"inventory-app/models"

	"gorm.io/gorm"
)

// Migrate runs the schema migrations for all models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Supplier{},
		&models.StockItem{},
		&models.LedgerEntry{},
		&models.PurchaseOrder{},
		&models.PurchaseOrderLine{},
	)
}
