package controllers

import (
	"errors"

	"inventory-app/models"
	"inventory-app/services"
	"inventory-app/types"
	"inventory-app/utils"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type StockController struct {
	DB    *gorm.DB
	stock *services.StockService
}

func NewStockController(db *gorm.DB, stock *services.StockService) *StockController {
	return &StockController{DB: db, stock: stock}
}

type receiveStockInput struct {
	ItemID         types.SnowflakeID `json:"item_id" validate:"required"`
	Quantity       int               `json:"quantity" validate:"required,gt=0"`
	UnitCost       *decimal.Decimal  `json:"unit_cost"`
	NewCostPrice   *decimal.Decimal  `json:"new_cost_price"`
	Reference      string            `json:"reference"`
	Notes          string            `json:"notes"`
	IdempotencyKey string            `json:"idempotency_key"`
}

func (c *StockController) ReceiveStock(ctx *fiber.Ctx) error {
	var input receiveStockInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	item, entry, err := c.stock.Receive(ctx.Context(), services.ReceiveStockInput{
		ItemID:         input.ItemID,
		Quantity:       input.Quantity,
		UnitCost:       input.UnitCost,
		NewCostPrice:   input.NewCostPrice,
		Reference:      input.Reference,
		Notes:          input.Notes,
		PerformedBy:    actorFrom(ctx),
		IdempotencyKey: input.IdempotencyKey,
	})
	if errors.Is(err, services.ErrDuplicateReceipt) {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Movement already applied", "data": itemView(item)})
	}
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": movementView(item, entry)})
}

type issueStockInput struct {
	ItemID         types.SnowflakeID `json:"item_id" validate:"required"`
	Quantity       int               `json:"quantity" validate:"required,gt=0"`
	Reference      string            `json:"reference"`
	Notes          string            `json:"notes"`
	IdempotencyKey string            `json:"idempotency_key"`
}

func (c *StockController) IssueStock(ctx *fiber.Ctx) error {
	var input issueStockInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	item, entry, err := c.stock.Issue(ctx.Context(), services.IssueStockInput{
		ItemID:         input.ItemID,
		Quantity:       input.Quantity,
		Reference:      input.Reference,
		Notes:          input.Notes,
		PerformedBy:    actorFrom(ctx),
		IdempotencyKey: input.IdempotencyKey,
	})
	if errors.Is(err, services.ErrDuplicateReceipt) {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Movement already applied", "data": itemView(item)})
	}
	if err != nil {
		return respondError(ctx, err)
	}

	utils.NotifyIfLowStock(item)

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": movementView(item, entry)})
}

type adjustStockInput struct {
	ItemID         types.SnowflakeID   `json:"item_id" validate:"required"`
	Delta          int                 `json:"delta" validate:"required"`
	Type           models.MovementType `json:"type"`
	Reason         string              `json:"reason" validate:"required"`
	Reference      string              `json:"reference"`
	Notes          string              `json:"notes"`
	IdempotencyKey string              `json:"idempotency_key"`
}

func (c *StockController) AdjustStock(ctx *fiber.Ctx) error {
	var input adjustStockInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	item, entry, err := c.stock.Adjust(ctx.Context(), services.AdjustStockInput{
		ItemID:         input.ItemID,
		Delta:          input.Delta,
		Type:           input.Type,
		Reason:         input.Reason,
		Reference:      input.Reference,
		Notes:          input.Notes,
		PerformedBy:    actorFrom(ctx),
		IdempotencyKey: input.IdempotencyKey,
	})
	if errors.Is(err, services.ErrDuplicateReceipt) {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Movement already applied", "data": itemView(item)})
	}
	if err != nil {
		return respondError(ctx, err)
	}

	utils.NotifyIfLowStock(item)

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": movementView(item, entry)})
}

func movementView(item *models.StockItem, entry *models.LedgerEntry) fiber.Map {
	return fiber.Map{
		"item":         item,
		"stock_status": item.StockStatus(),
		"entry":        entry,
	}
}
