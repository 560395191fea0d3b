package controllers

import (
	"erp-app/middleware"
	"erp-app/repositories"
	"erp-app/types"
	"erp-app/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ServerStockController struct {
	DB *gorm.DB
}

func NewServerStockController(db *gorm.DB) *ServerStockController {
	return &ServerStockController{DB: db}
}

func (c *ServerStockController) Delegate(ctx *fiber.Ctx) error {
	var input repositories.DelegateStockInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := utils.ValidateStruct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	repo := repositories.NewServerStockRepository(c.DB)
	stock, err := repo.Delegate(middleware.TenantID(ctx), input, middleware.UserID(ctx))
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Stock delegated successfully", "data": stock})
}

type saleInput struct {
	Quantity  int             `json:"quantity" validate:"required,min=1"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	OrderRef  string          `json:"order_ref"`
}

func (c *ServerStockController) RecordSale(ctx *fiber.Ctx) error {
	id, err := utils.ParamID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var input saleInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := utils.ValidateStruct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	repo := repositories.NewServerStockRepository(c.DB)
	stock, err := repo.RecordSale(middleware.TenantID(ctx), id, input.Quantity, input.UnitPrice, input.OrderRef, middleware.UserID(ctx))
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Sale recorded successfully", "data": stock})
}

type returnInput struct {
	Quantity    int               `json:"quantity" validate:"required,min=1"`
	WarehouseID types.SnowflakeID `json:"warehouse_id"`
	Notes       string            `json:"notes"`
}

func (c *ServerStockController) ReturnStock(ctx *fiber.Ctx) error {
	id, err := utils.ParamID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var input returnInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := utils.ValidateStruct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	repo := repositories.NewServerStockRepository(c.DB)
	stock, err := repo.ReturnStock(middleware.TenantID(ctx), id, input.Quantity, input.WarehouseID, input.Notes, middleware.UserID(ctx))
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Stock returned successfully", "data": stock})
}

type lossInput struct {
	Quantity int    `json:"quantity" validate:"required,min=1"`
	Reason   string `json:"reason" validate:"required"`
}

func (c *ServerStockController) DeclareLoss(ctx *fiber.Ctx) error {
	id, err := utils.ParamID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var input lossInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := utils.ValidateStruct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	repo := repositories.NewServerStockRepository(c.DB)
	stock, err := repo.DeclareLoss(middleware.TenantID(ctx), id, input.Quantity, input.Reason, middleware.UserID(ctx))
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Loss declared successfully", "data": stock})
}

func (c *ServerStockController) CloseStock(ctx *fiber.Ctx) error {
	id, err := utils.ParamID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	repo := repositories.NewServerStockRepository(c.DB)
	stock, err := repo.CloseStock(middleware.TenantID(ctx), id)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Stock closed successfully", "data": stock})
}

func (c *ServerStockController) GetAllServerStocks(ctx *fiber.Ctx) error {
	serverID, _ := utils.QueryID(ctx, "server_id")
	status := ctx.Query("status")

	repo := repositories.NewServerStockRepository(c.DB)
	stocks, err := repo.List(middleware.TenantID(ctx), serverID, status)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": stocks})
}

func (c *ServerStockController) GetServerStockByID(ctx *fiber.Ctx) error {
	id, err := utils.ParamID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	repo := repositories.NewServerStockRepository(c.DB)
	stock, err := repo.GetByID(middleware.TenantID(ctx), id)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": stock})
}

func (c *ServerStockController) GetMovements(ctx *fiber.Ctx) error {
	id, err := utils.ParamID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	repo := repositories.NewServerStockRepository(c.DB)
	movements, err := repo.GetMovements(middleware.TenantID(ctx), id)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": movements})
}
