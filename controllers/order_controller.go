package controllers

import (
	"erp-app/middleware"
	"erp-app/repositories"
	"erp-app/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type OrderController struct {
	DB *gorm.DB
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db}
}

func (c *OrderController) CreateOrder(ctx *fiber.Ctx) error {
	var input repositories.CreateOrderInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := utils.ValidateStruct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	repo := repositories.NewOrderRepository(c.DB)
	order, err := repo.CreateOrder(middleware.TenantID(ctx), input, middleware.UserID(ctx))
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Order created successfully", "data": order})
}

func (c *OrderController) GetAllOrders(ctx *fiber.Ctx) error {
	posID, _ := utils.QueryID(ctx, "point_of_sale_id")

	repo := repositories.NewOrderRepository(c.DB)
	orders, err := repo.List(middleware.TenantID(ctx), posID)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": orders})
}

func (c *OrderController) GetOrderByID(ctx *fiber.Ctx) error {
	id, err := utils.ParamID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	repo := repositories.NewOrderRepository(c.DB)
	order, err := repo.GetByID(middleware.TenantID(ctx), id)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": order})
}
