package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"inventory-app/models"
	"inventory-app/repositories"
	"inventory-app/services"
	"inventory-app/types"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type ItemController struct {
	DB    *gorm.DB
	items *services.ItemService
	repo  *repositories.ItemRepository
}

func NewItemController(db *gorm.DB, items *services.ItemService) *ItemController {
	return &ItemController{
		DB:    db,
		items: items,
		repo:  repositories.NewItemRepository(db),
	}
}

type createItemInput struct {
	PartNumber   string              `json:"part_number" validate:"required,min=2"`
	Name         string              `json:"name" validate:"required,min=2"`
	Category     models.ItemCategory `json:"category"`
	Uom          string              `json:"uom"`
	CostPrice    decimal.Decimal     `json:"cost_price"`
	SellingPrice decimal.Decimal     `json:"selling_price"`
	MinimumStock int                 `json:"minimum_stock"`
	MaximumStock *int                `json:"maximum_stock"`
	ReorderPoint *int                `json:"reorder_point"`
	SupplierID   types.SnowflakeID   `json:"supplier_id"`
	InitialCount int                 `json:"initial_count"`
}

func (c *ItemController) CreateItem(ctx *fiber.Ctx) error {
	var input createItemInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	item, err := c.items.Create(ctx.Context(), services.CreateItemInput{
		PartNumber:   input.PartNumber,
		Name:         input.Name,
		Category:     input.Category,
		Uom:          input.Uom,
		CostPrice:    input.CostPrice,
		SellingPrice: input.SellingPrice,
		MinimumStock: input.MinimumStock,
		MaximumStock: input.MaximumStock,
		ReorderPoint: input.ReorderPoint,
		SupplierID:   input.SupplierID,
		InitialCount: input.InitialCount,
		CreatedBy:    actorFrom(ctx),
	})
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": itemView(item)})
}

type updateItemInput struct {
	Name         *string              `json:"name"`
	Category     *models.ItemCategory `json:"category"`
	Uom          *string              `json:"uom"`
	CostPrice    *decimal.Decimal     `json:"cost_price"`
	SellingPrice *decimal.Decimal     `json:"selling_price"`
	MinimumStock *int                 `json:"minimum_stock"`
	MaximumStock *int                 `json:"maximum_stock"`
	ReorderPoint *int                 `json:"reorder_point"`
	SupplierID   *types.SnowflakeID   `json:"supplier_id"`
}

func (c *ItemController) UpdateItem(ctx *fiber.Ctx) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var input updateItemInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	item, err := c.items.Update(ctx.Context(), id, services.UpdateItemInput{
		Name:         input.Name,
		Category:     input.Category,
		Uom:          input.Uom,
		CostPrice:    input.CostPrice,
		SellingPrice: input.SellingPrice,
		MinimumStock: input.MinimumStock,
		MaximumStock: input.MaximumStock,
		ReorderPoint: input.ReorderPoint,
		SupplierID:   input.SupplierID,
		UpdatedBy:    actorFrom(ctx),
	})
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": itemView(item)})
}

func (c *ItemController) DeactivateItem(ctx *fiber.Ctx) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	item, err := c.items.Deactivate(ctx.Context(), id, actorFrom(ctx))
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Item deactivated", "data": itemView(item)})
}

func (c *ItemController) GetItems(ctx *fiber.Ctx) error {
	items, err := c.repo.GetItems(ctx.Context())
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": fiber.Map{"items": itemViews(items)}})
}

func (c *ItemController) GetItemByID(ctx *fiber.Ctx) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	item, err := c.repo.GetItem(ctx.Context(), id)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": itemView(item)})
}

func (c *ItemController) GetLowStockItems(ctx *fiber.Ctx) error {
	items, err := c.repo.GetLowStockItems(ctx.Context())
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": fiber.Map{"items": itemViews(items)}})
}

func (c *ItemController) GetOutOfStockItems(ctx *fiber.Ctx) error {
	items, err := c.repo.GetOutOfStockItems(ctx.Context())
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": fiber.Map{"items": itemViews(items)}})
}

func (c *ItemController) GetItemLedger(ctx *fiber.Ctx) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	item, err := c.repo.GetItem(ctx.Context(), id)
	if err != nil {
		return respondError(ctx, err)
	}
	entries, err := c.repo.GetLedgerEntries(ctx.Context(), id)
	if err != nil {
		return respondError(ctx, err)
	}
	ledgerTotal, err := c.repo.LedgerSum(ctx.Context(), id)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"item":          itemView(item),
			"entries":       entries,
			"ledger_total":  ledgerTotal,
			"current_stock": item.CurrentStock,
		},
	})
}

// ExportExcel streams the stock list as an xlsx report. With
// ?filter=low-stock only the items at or below their threshold are
// included.
func (c *ItemController) ExportExcel(ctx *fiber.Ctx) error {
	var items []models.StockItem
	var err error
	if ctx.Query("filter") == "low-stock" {
		items, err = c.repo.GetLowStockItems(ctx.Context())
	} else {
		items, err = c.repo.GetItems(ctx.Context())
	}
	if err != nil {
		return respondError(ctx, err)
	}

	f := excelize.NewFile()
	sheet := "Sheet1"

	f.SetCellValue(sheet, "A1", "Part Number")
	f.SetCellValue(sheet, "B1", "Name")
	f.SetCellValue(sheet, "C1", "Category")
	f.SetCellValue(sheet, "D1", "UOM")
	f.SetCellValue(sheet, "E1", "Current Stock")
	f.SetCellValue(sheet, "F1", "Minimum Stock")
	f.SetCellValue(sheet, "G1", "Status")
	f.SetCellValue(sheet, "H1", "Cost Price")

	for i, item := range items {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), item.PartNumber)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), item.Name)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), string(item.Category))
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), item.Uom)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), item.CurrentStock)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), item.MinimumStock)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), string(item.StockStatus()))
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), item.CostPrice.String())
	}

	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", `attachment; filename="stock_report.xlsx"`)

	if err := f.Write(ctx.Response().BodyWriter()); err != nil {
		return ctx.Status(http.StatusInternalServerError).SendString("Failed to generate Excel")
	}

	return nil
}

// itemView augments the stored fields with the derived stock status.
func itemView(item *models.StockItem) fiber.Map {
	return fiber.Map{
		"item":         item,
		"stock_status": item.StockStatus(),
	}
}

func itemViews(items []models.StockItem) []fiber.Map {
	views := make([]fiber.Map, 0, len(items))
	for i := range items {
		views = append(views, itemView(&items[i]))
	}
	return views
}

func parseID(ctx *fiber.Ctx, param string) (types.SnowflakeID, error) {
	raw := ctx.Params(param)
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return types.SnowflakeID(v), nil
}
