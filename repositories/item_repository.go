package repositories

import (
	"context"
	"errors"
	"fmt"

	"inventory-app/models"
	"inventory-app/services"
	"inventory-app/types"

	"gorm.io/gorm"
)

type ItemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{db}
}

func (r *ItemRepository) GetItem(ctx context.Context, id types.SnowflakeID) (*models.StockItem, error) {
	var item models.StockItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("stock item %s: %w", id.String(), services.ErrNotFound)
		}
		return nil, err
	}
	return &item, nil
}

func (r *ItemRepository) GetItemByPartNumber(ctx context.Context, partNumber string) (*models.StockItem, error) {
	var item models.StockItem
	if err := r.db.WithContext(ctx).First(&item, "part_number = ?", partNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("part number %s: %w", partNumber, services.ErrNotFound)
		}
		return nil, err
	}
	return &item, nil
}

func (r *ItemRepository) CreateItem(ctx context.Context, item *models.StockItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// SaveItem updates the catalog fields only. CurrentStock and Version
// belong to ApplyMovement.
func (r *ItemRepository) SaveItem(ctx context.Context, item *models.StockItem) error {
	return r.db.WithContext(ctx).Model(&models.StockItem{}).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"name":          item.Name,
			"category":      item.Category,
			"uom":           item.Uom,
			"cost_price":    item.CostPrice,
			"selling_price": item.SellingPrice,
			"minimum_stock": item.MinimumStock,
			"maximum_stock": item.MaximumStock,
			"reorder_point": item.ReorderPoint,
			"supplier_id":   item.SupplierID,
			"is_active":     item.IsActive,
			"updated_by":    item.UpdatedBy,
		}).Error
}

// ApplyMovement writes the ledger entry and the item stock update in
// one transaction. The item row is version-checked so a lost race
// surfaces as ErrConcurrencyConflict instead of a silent lost update.
func (r *ItemRepository) ApplyMovement(ctx context.Context, item *models.StockItem, entry *models.LedgerEntry, expectedVersion int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(entry).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return services.ErrDuplicateReceipt
			}
			return fmt.Errorf("append ledger entry: %w", err)
		}

		res := tx.Model(&models.StockItem{}).
			Where("id = ? AND version = ?", item.ID, expectedVersion).
			Updates(map[string]interface{}{
				"current_stock": item.CurrentStock,
				"version":       item.Version,
				"cost_price":    item.CostPrice,
				"updated_by":    item.UpdatedBy,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return services.ErrConcurrencyConflict
		}
		return nil
	})
}

func (r *ItemRepository) HasLedgerKey(ctx context.Context, key string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.LedgerEntry{}).
		Where("idempotency_key = ?", key).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ItemRepository) GetItems(ctx context.Context) ([]models.StockItem, error) {
	var items []models.StockItem
	if err := r.db.WithContext(ctx).Order("part_number").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *ItemRepository) GetLowStockItems(ctx context.Context) ([]models.StockItem, error) {
	var items []models.StockItem
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND current_stock > 0 AND current_stock <= minimum_stock", true).
		Order("part_number").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *ItemRepository) GetOutOfStockItems(ctx context.Context) ([]models.StockItem, error) {
	var items []models.StockItem
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND current_stock = 0", true).
		Order("part_number").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *ItemRepository) GetLedgerEntries(ctx context.Context, itemID types.SnowflakeID) ([]models.LedgerEntry, error) {
	var entries []models.LedgerEntry
	err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("created_at DESC, id DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// LedgerSum returns the signed sum of all deltas for the item. It must
// always match the item's CurrentStock.
func (r *ItemRepository) LedgerSum(ctx context.Context, itemID types.SnowflakeID) (int, error) {
	sqlSum := `select coalesce(sum(quantity_delta), 0) as total
	from ledger_entries
	where item_id = ?`

	var total int
	if err := r.db.WithContext(ctx).Raw(sqlSum, itemID).Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
