package repositories

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"inventory-app/models"
	"inventory-app/services"
	"inventory-app/types"

	"gorm.io/gorm"
)

type PurchaseOrderRepository struct {
	db *gorm.DB
}

func NewPurchaseOrderRepository(db *gorm.DB) *PurchaseOrderRepository {
	return &PurchaseOrderRepository{db}
}

func (r *PurchaseOrderRepository) GetOrder(ctx context.Context, id types.SnowflakeID) (*models.PurchaseOrder, error) {
	var po models.PurchaseOrder
	err := r.db.WithContext(ctx).Preload("Lines").First(&po, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("purchase order %s: %w", id.String(), services.ErrNotFound)
		}
		return nil, err
	}
	return &po, nil
}

func (r *PurchaseOrderRepository) CreateOrder(ctx context.Context, po *models.PurchaseOrder) error {
	return r.db.WithContext(ctx).Create(po).Error
}

// SaveOrder writes the header guarded by a version check, then the
// received quantities of the lines, in one transaction.
func (r *PurchaseOrderRepository) SaveOrder(ctx context.Context, po *models.PurchaseOrder, expectedVersion int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.PurchaseOrder{}).
			Where("id = ? AND version = ?", po.ID, expectedVersion).
			Updates(map[string]interface{}{
				"status":               po.Status,
				"expected_date":        po.ExpectedDate,
				"actual_delivery_date": po.ActualDeliveryDate,
				"subtotal":             po.Subtotal,
				"tax":                  po.Tax,
				"shipping":             po.Shipping,
				"total":                po.Total,
				"notes":                po.Notes,
				"version":              po.Version,
				"updated_by":           po.UpdatedBy,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return services.ErrConcurrencyConflict
		}

		for i := range po.Lines {
			line := &po.Lines[i]
			err := tx.Model(&models.PurchaseOrderLine{}).
				Where("id = ?", line.ID).
				Update("quantity_received", line.QuantityReceived).Error
			if err != nil {
				return fmt.Errorf("update line %s: %w", line.ID.String(), err)
			}
		}
		return nil
	})
}

// NextOrderNumber generates PO<yymmdd><seq>, restarting the sequence
// each day.
func (r *PurchaseOrderRepository) NextOrderNumber(ctx context.Context) (string, error) {
	currentDate := time.Now().Format("060102")
	prefix := "PO" + currentDate

	var last models.PurchaseOrder
	err := r.db.WithContext(ctx).
		Where("order_number LIKE ?", prefix+"%").
		Order("order_number DESC").
		First(&last).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Sprintf("%s%04d", prefix, 1), nil
		}
		return "", err
	}

	lastSequence, _ := strconv.Atoi(last.OrderNumber[len(prefix):])
	return fmt.Sprintf("%s%04d", prefix, lastSequence+1), nil
}

func (r *PurchaseOrderRepository) GetOrders(ctx context.Context) ([]models.PurchaseOrder, error) {
	var orders []models.PurchaseOrder
	err := r.db.WithContext(ctx).Preload("Lines").Order("created_at DESC").Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// CountOpenOrdersForSupplier counts orders that still need handling.
func (r *PurchaseOrderRepository) CountOpenOrdersForSupplier(ctx context.Context, supplierID types.SnowflakeID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PurchaseOrder{}).
		Where("supplier_id = ? AND status IN ?", supplierID,
			[]models.PurchaseOrderStatus{models.POStatusDraft, models.POStatusSent, models.POStatusConfirmed, models.POStatusPartiallyReceived}).
		Count(&count).Error
	return count, err
}
