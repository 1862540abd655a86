package controllers

import (
	"inventory-app/controllers/idgen"
	"inventory-app/models"
	"inventory-app/repositories"
	"inventory-app/types"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SupplierController struct {
	DB   *gorm.DB
	repo *repositories.SupplierRepository
}

func NewSupplierController(db *gorm.DB) *SupplierController {
	return &SupplierController{DB: db, repo: repositories.NewSupplierRepository(db)}
}

type supplierInput struct {
	Name          string `json:"name" validate:"required,min=2"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email" validate:"omitempty,email"`
	Address       string `json:"address"`
	PaymentTerms  string `json:"payment_terms"`
	Rating        int    `json:"rating" validate:"omitempty,min=1,max=5"`
}

func (c *SupplierController) CreateSupplier(ctx *fiber.Ctx) error {
	var input supplierInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	rating := input.Rating
	if rating == 0 {
		rating = 3
	}

	supplier := models.Supplier{
		ID:            types.SnowflakeID(idgen.GenerateID()),
		Name:          input.Name,
		ContactPerson: input.ContactPerson,
		Phone:         input.Phone,
		Email:         input.Email,
		Address:       input.Address,
		PaymentTerms:  input.PaymentTerms,
		Rating:        rating,
		IsActive:      true,
		CreatedBy:     actorFrom(ctx),
		UpdatedBy:     actorFrom(ctx),
	}

	if err := c.repo.CreateSupplier(ctx.Context(), &supplier); err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Supplier created successfully", "data": supplier})
}

func (c *SupplierController) GetSuppliers(ctx *fiber.Ctx) error {
	suppliers, err := c.repo.GetSuppliers(ctx.Context())
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": fiber.Map{"suppliers": suppliers}})
}

func (c *SupplierController) GetSupplierByID(ctx *fiber.Ctx) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	supplier, err := c.repo.GetSupplier(ctx.Context(), id)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": supplier})
}

func (c *SupplierController) UpdateSupplier(ctx *fiber.Ctx) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	supplier, err := c.repo.GetSupplier(ctx.Context(), id)
	if err != nil {
		return respondError(ctx, err)
	}

	var input supplierInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	supplier.Name = input.Name
	supplier.ContactPerson = input.ContactPerson
	supplier.Phone = input.Phone
	supplier.Email = input.Email
	supplier.Address = input.Address
	supplier.PaymentTerms = input.PaymentTerms
	if input.Rating != 0 {
		supplier.Rating = input.Rating
	}
	supplier.UpdatedBy = actorFrom(ctx)

	if err := c.repo.SaveSupplier(ctx.Context(), supplier); err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": supplier})
}

func (c *SupplierController) DeactivateSupplier(ctx *fiber.Ctx) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	supplier, err := c.repo.GetSupplier(ctx.Context(), id)
	if err != nil {
		return respondError(ctx, err)
	}

	supplier.IsActive = false
	supplier.UpdatedBy = actorFrom(ctx)
	if err := c.repo.SaveSupplier(ctx.Context(), supplier); err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Supplier deactivated", "data": supplier})
}

// DeleteSupplier hard-deletes a supplier, but only when nothing
// references it anymore. Referenced suppliers can only be deactivated.
func (c *SupplierController) DeleteSupplier(ctx *fiber.Ctx) error {
	id, err := parseID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	supplier, err := c.repo.GetSupplier(ctx.Context(), id)
	if err != nil {
		return respondError(ctx, err)
	}

	inUse, err := c.repo.SupplierInUse(ctx.Context(), id)
	if err != nil {
		return respondError(ctx, err)
	}
	if inUse {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"error":   "Supplier is referenced by active items or open purchase orders; deactivate it instead",
		})
	}

	if err := c.repo.DeleteSupplier(ctx.Context(), supplier); err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Supplier deleted"})
}
