package services

import (
	"context"
	"errors"
	"fmt"

	"inventory-app/config"
	"inventory-app/controllers/idgen"
	"inventory-app/models"
	"inventory-app/types"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ItemService manages the stock item catalog. Quantity always flows
// through the StockService; everything here leaves CurrentStock alone
// except the optional initial count, which is recorded as a regular
// adjustment entry so the ledger stays complete from day one.
type ItemService struct {
	store ItemStore
	stock *StockService
	log   *logrus.Logger
}

func NewItemService(store ItemStore, stock *StockService) *ItemService {
	return &ItemService{
		store: store,
		stock: stock,
		log:   config.GetLogger(),
	}
}

type CreateItemInput struct {
	PartNumber   string
	Name         string
	Category     models.ItemCategory
	Uom          string
	CostPrice    decimal.Decimal
	SellingPrice decimal.Decimal
	MinimumStock int
	MaximumStock *int
	ReorderPoint *int
	SupplierID   types.SnowflakeID
	InitialCount int
	CreatedBy    string
}

type UpdateItemInput struct {
	Name         *string
	Category     *models.ItemCategory
	Uom          *string
	CostPrice    *decimal.Decimal
	SellingPrice *decimal.Decimal
	MinimumStock *int
	MaximumStock *int
	ReorderPoint *int
	SupplierID   *types.SnowflakeID
	UpdatedBy    string
}

func validateThresholds(minimum int, maximum *int) error {
	if minimum < 0 {
		return NewValidationError("minimum_stock", "must not be negative")
	}
	if maximum != nil && *maximum < minimum {
		return NewValidationError("maximum_stock", "must be greater than or equal to minimum stock")
	}
	return nil
}

// Create validates and persists a new item. CurrentStock starts at 0;
// a positive InitialCount is applied through the stock mutator as an
// "initial count" adjustment.
func (s *ItemService) Create(ctx context.Context, in CreateItemInput) (*models.StockItem, error) {
	if in.PartNumber == "" {
		return nil, NewValidationError("part_number", "is required")
	}
	if in.Name == "" {
		return nil, NewValidationError("name", "is required")
	}
	if in.Category != "" && !in.Category.Valid() {
		return nil, NewValidationError("category", "unknown category %q", in.Category)
	}
	if in.CostPrice.IsNegative() || in.SellingPrice.IsNegative() {
		return nil, NewValidationError("cost_price", "prices must not be negative")
	}
	if err := validateThresholds(in.MinimumStock, in.MaximumStock); err != nil {
		return nil, err
	}
	if in.InitialCount < 0 {
		return nil, NewValidationError("initial_count", "must not be negative")
	}

	_, err := s.store.GetItemByPartNumber(ctx, in.PartNumber)
	if err == nil {
		return nil, NewValidationError("part_number", "%q already exists", in.PartNumber)
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("part number lookup: %w", err)
	}

	category := in.Category
	if category == "" {
		category = models.CategoryOther
	}

	item := &models.StockItem{
		ID:           types.SnowflakeID(idgen.GenerateID()),
		PartNumber:   in.PartNumber,
		Name:         in.Name,
		Category:     category,
		Uom:          in.Uom,
		CostPrice:    in.CostPrice,
		SellingPrice: in.SellingPrice,
		MinimumStock: in.MinimumStock,
		MaximumStock: in.MaximumStock,
		ReorderPoint: in.ReorderPoint,
		SupplierID:   in.SupplierID,
		IsActive:     true,
		CreatedBy:    in.CreatedBy,
		UpdatedBy:    in.CreatedBy,
	}

	if err := s.store.CreateItem(ctx, item); err != nil {
		return nil, err
	}

	if in.InitialCount > 0 {
		item, _, err = s.stock.Adjust(ctx, AdjustStockInput{
			ItemID:      item.ID,
			Delta:       in.InitialCount,
			Type:        models.MovementAdjustment,
			Reason:      "initial count",
			PerformedBy: in.CreatedBy,
		})
		if err != nil {
			return nil, fmt.Errorf("record initial count: %w", err)
		}
	}

	s.log.WithFields(logrus.Fields{
		"item_id":     item.ID.String(),
		"part_number": item.PartNumber,
		"initial":     in.InitialCount,
	}).Info("stock item created")

	return item, nil
}

// Update edits non-quantity fields. It never writes CurrentStock and
// never creates a ledger entry.
func (s *ItemService) Update(ctx context.Context, id types.SnowflakeID, in UpdateItemInput) (*models.StockItem, error) {
	item, err := s.store.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, NewValidationError("name", "must not be empty")
		}
		item.Name = *in.Name
	}
	if in.Category != nil {
		if !in.Category.Valid() {
			return nil, NewValidationError("category", "unknown category %q", *in.Category)
		}
		item.Category = *in.Category
	}
	if in.Uom != nil {
		item.Uom = *in.Uom
	}
	if in.CostPrice != nil {
		if in.CostPrice.IsNegative() {
			return nil, NewValidationError("cost_price", "must not be negative")
		}
		item.CostPrice = *in.CostPrice
	}
	if in.SellingPrice != nil {
		if in.SellingPrice.IsNegative() {
			return nil, NewValidationError("selling_price", "must not be negative")
		}
		item.SellingPrice = *in.SellingPrice
	}

	minimum := item.MinimumStock
	if in.MinimumStock != nil {
		minimum = *in.MinimumStock
	}
	maximum := item.MaximumStock
	if in.MaximumStock != nil {
		maximum = in.MaximumStock
	}
	if err := validateThresholds(minimum, maximum); err != nil {
		return nil, err
	}
	item.MinimumStock = minimum
	item.MaximumStock = maximum

	if in.ReorderPoint != nil {
		item.ReorderPoint = in.ReorderPoint
	}
	if in.SupplierID != nil {
		item.SupplierID = *in.SupplierID
	}
	item.UpdatedBy = in.UpdatedBy

	if err := s.store.SaveItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Deactivate soft-deletes the item. History and stock are untouched.
func (s *ItemService) Deactivate(ctx context.Context, id types.SnowflakeID, actor string) (*models.StockItem, error) {
	item, err := s.store.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	item.IsActive = false
	item.UpdatedBy = actor
	if err := s.store.SaveItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}
