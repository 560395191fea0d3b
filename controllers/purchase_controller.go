package controllers

import (
	"erp-app/middleware"
	"erp-app/repositories"
	"erp-app/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type PurchaseController struct {
	DB *gorm.DB
}

func NewPurchaseController(db *gorm.DB) *PurchaseController {
	return &PurchaseController{DB: db}
}

func (c *PurchaseController) CreatePurchase(ctx *fiber.Ctx) error {
	var input repositories.CreatePurchaseInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := utils.ValidateStruct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	repo := repositories.NewPurchaseRepository(c.DB)
	purchase, err := repo.Create(middleware.TenantID(ctx), input, middleware.UserID(ctx))
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Purchase order created", "data": purchase})
}

func (c *PurchaseController) MarkOrdered(ctx *fiber.Ctx) error {
	id, err := utils.ParamID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	repo := repositories.NewPurchaseRepository(c.DB)
	purchase, err := repo.MarkOrdered(middleware.TenantID(ctx), id)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Purchase order sent to supplier", "data": purchase})
}

func (c *PurchaseController) ReceivePurchase(ctx *fiber.Ctx) error {
	id, err := utils.ParamID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	repo := repositories.NewPurchaseRepository(c.DB)
	purchase, err := repo.Receive(middleware.TenantID(ctx), id, middleware.UserID(ctx))
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Purchase order received", "data": purchase})
}

func (c *PurchaseController) CancelPurchase(ctx *fiber.Ctx) error {
	id, err := utils.ParamID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	repo := repositories.NewPurchaseRepository(c.DB)
	purchase, err := repo.Cancel(middleware.TenantID(ctx), id)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Purchase order cancelled", "data": purchase})
}

func (c *PurchaseController) GetAllPurchases(ctx *fiber.Ctx) error {
	status := ctx.Query("status")

	repo := repositories.NewPurchaseRepository(c.DB)
	purchases, err := repo.List(middleware.TenantID(ctx), status)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": purchases})
}

func (c *PurchaseController) GetPurchaseByID(ctx *fiber.Ctx) error {
	id, err := utils.ParamID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	repo := repositories.NewPurchaseRepository(c.DB)
	purchase, err := repo.GetByID(middleware.TenantID(ctx), id)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": purchase})
}
