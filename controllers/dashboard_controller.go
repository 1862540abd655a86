package controllers

import (
	"inventory-app/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

// GetSummary returns the headline numbers for the landing screen.
func (c *DashboardController) GetSummary(ctx *fiber.Ctx) error {
	var totalItems, lowStock, outOfStock, activeSuppliers, openOrders int64

	if err := c.DB.Model(&models.StockItem{}).Where("is_active = ?", true).Count(&totalItems).Error; err != nil {
		return respondError(ctx, err)
	}
	if err := c.DB.Model(&models.StockItem{}).
		Where("is_active = ? AND current_stock > 0 AND current_stock <= minimum_stock", true).
		Count(&lowStock).Error; err != nil {
		return respondError(ctx, err)
	}
	if err := c.DB.Model(&models.StockItem{}).
		Where("is_active = ? AND current_stock = 0", true).
		Count(&outOfStock).Error; err != nil {
		return respondError(ctx, err)
	}
	if err := c.DB.Model(&models.Supplier{}).Where("is_active = ?", true).Count(&activeSuppliers).Error; err != nil {
		return respondError(ctx, err)
	}
	if err := c.DB.Model(&models.PurchaseOrder{}).
		Where("status IN ?", []models.PurchaseOrderStatus{
			models.POStatusDraft, models.POStatusSent, models.POStatusConfirmed, models.POStatusPartiallyReceived,
		}).
		Count(&openOrders).Error; err != nil {
		return respondError(ctx, err)
	}

	var items []models.StockItem
	if err := c.DB.Where("is_active = ? AND current_stock > 0", true).Find(&items).Error; err != nil {
		return respondError(ctx, err)
	}
	valuation := decimal.Zero
	for _, item := range items {
		valuation = valuation.Add(item.CostPrice.Mul(decimal.NewFromInt(int64(item.CurrentStock))))
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"total_items":          totalItems,
			"low_stock_items":      lowStock,
			"out_of_stock_items":   outOfStock,
			"active_suppliers":     activeSuppliers,
			"open_purchase_orders": openOrders,
			"stock_valuation":      valuation,
		},
	})
}
