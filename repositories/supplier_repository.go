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

type SupplierRepository struct {
	db *gorm.DB
}

func NewSupplierRepository(db *gorm.DB) *SupplierRepository {
	return &SupplierRepository{db}
}

func (r *SupplierRepository) GetSupplier(ctx context.Context, id types.SnowflakeID) (*models.Supplier, error) {
	var supplier models.Supplier
	if err := r.db.WithContext(ctx).First(&supplier, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("supplier %s: %w", id.String(), services.ErrNotFound)
		}
		return nil, err
	}
	return &supplier, nil
}

func (r *SupplierRepository) CreateSupplier(ctx context.Context, supplier *models.Supplier) error {
	return r.db.WithContext(ctx).Create(supplier).Error
}

func (r *SupplierRepository) SaveSupplier(ctx context.Context, supplier *models.Supplier) error {
	return r.db.WithContext(ctx).Save(supplier).Error
}

func (r *SupplierRepository) GetSuppliers(ctx context.Context) ([]models.Supplier, error) {
	var suppliers []models.Supplier
	if err := r.db.WithContext(ctx).Order("name").Find(&suppliers).Error; err != nil {
		return nil, err
	}
	return suppliers, nil
}

// SupplierInUse reports whether any active item or open purchase order
// still references the supplier. Such suppliers may only be
// deactivated, never hard-deleted.
func (r *SupplierRepository) SupplierInUse(ctx context.Context, id types.SnowflakeID) (bool, error) {
	var itemCount int64
	err := r.db.WithContext(ctx).Model(&models.StockItem{}).
		Where("supplier_id = ? AND is_active = ?", id, true).
		Count(&itemCount).Error
	if err != nil {
		return false, err
	}
	if itemCount > 0 {
		return true, nil
	}

	var orderCount int64
	err = r.db.WithContext(ctx).Model(&models.PurchaseOrder{}).
		Where("supplier_id = ? AND status IN ?", id,
			[]models.PurchaseOrderStatus{models.POStatusDraft, models.POStatusSent, models.POStatusConfirmed, models.POStatusPartiallyReceived}).
		Count(&orderCount).Error
	if err != nil {
		return false, err
	}
	return orderCount > 0, nil
}

func (r *SupplierRepository) DeleteSupplier(ctx context.Context, supplier *models.Supplier) error {
	return r.db.WithContext(ctx).Delete(supplier).Error
}
