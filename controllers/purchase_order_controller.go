package controllers

import (
	"context"
	"errors"
	"time"

	"inventory-app/models"
	"inventory-app/repositories"
	"inventory-app/services"
	"inventory-app/types"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PurchaseOrderController struct {
	DB        *gorm.DB
	orders    *services.PurchaseOrderService
	receiving *services.ReceivingService
	repo      *repositories.PurchaseOrderRepository
}

func NewPurchaseOrderController(db *gorm.DB, orders *services.PurchaseOrderService, receiving *services.ReceivingService) *PurchaseOrderController {
	return &PurchaseOrderController{
		DB:        db,
		orders:    orders,
		receiving: receiving,
		repo:      repositories.NewPurchaseOrderRepository(db),
	}
}

type createOrderInput struct {
	SupplierID   types.SnowflakeID         `json:"supplier_id" validate:"required"`
	OrderNumber  string                    `json:"order_number"`
	Lines        []services.OrderLineInput `json:"lines" validate:"required,min=1"`
	ExpectedDate *time.Time                `json:"expected_date"`
	Tax          decimal.Decimal           `json:"tax"`
	Shipping     decimal.Decimal           `json:"shipping"`
	Notes        string                    `json:"notes"`
}

func (c *PurchaseOrderController) CreateOrder(ctx *fiber.Ctx) error {
	var input createOrderInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	po, err := c.orders.Create(ctx.Context(), services.CreateOrderInput{
		SupplierID:   input.SupplierID,
		OrderNumber:  input.OrderNumber,
		Lines:        input.Lines,
		ExpectedDate: input.ExpectedDate,
		Tax:          input.Tax,
		Shipping:     input.Shipping,
		Notes:        input.Notes,
		CreatedBy:    actorFrom(ctx),
	})
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": po})
}

func (c *PurchaseOrderController) GetOrders(ctx *fiber.Ctx) error {
	orders, err := c.repo.GetOrders(ctx.Context())
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": fiber.Map{"purchase_orders": orders}})
}

func (c *PurchaseOrderController) GetOrderByID(ctx *fiber.Ctx) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	po, err := c.repo.GetOrder(ctx.Context(), id)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": po})
}

func (c *PurchaseOrderController) SendOrder(ctx *fiber.Ctx) error {
	return c.transition(ctx, c.orders.Send)
}

func (c *PurchaseOrderController) ConfirmOrder(ctx *fiber.Ctx) error {
	return c.transition(ctx, c.orders.Confirm)
}

func (c *PurchaseOrderController) CancelOrder(ctx *fiber.Ctx) error {
	return c.transition(ctx, c.orders.Cancel)
}

type receiveOrderInput struct {
	Lines     []services.ReceivedLine `json:"lines" validate:"required,min=1"`
	ReceiptID string                  `json:"receipt_id"`
}

func (c *PurchaseOrderController) ReceiveOrder(ctx *fiber.Ctx) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var input receiveOrderInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	po, err := c.receiving.Receive(ctx.Context(), id, input.Lines, actorFrom(ctx), input.ReceiptID)
	if errors.Is(err, services.ErrDuplicateReceipt) {
		// The receipt was fully applied by an earlier attempt.
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Receipt already applied", "data": po})
	}
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": po})
}

func (c *PurchaseOrderController) transition(ctx *fiber.Ctx, action func(context.Context, types.SnowflakeID, string) (*models.PurchaseOrder, error)) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	po, err := action(ctx.Context(), id, actorFrom(ctx))
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": po})
}
