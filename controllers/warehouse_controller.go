package controllers

import (
	"erp-app/middleware"
	"erp-app/models"
	"erp-app/types"
	"erp-app/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type WarehouseController struct {
	DB *gorm.DB
}

func NewWarehouseController(db *gorm.DB) *WarehouseController {
	return &WarehouseController{DB: db}
}

type warehouseInput struct {
	Code        string `json:"code" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

func (c *WarehouseController) CreateWarehouse(ctx *fiber.Ctx) error {
	var input warehouseInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := utils.ValidateStruct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	warehouse := models.Warehouse{
		TenantID:    middleware.TenantID(ctx),
		Code:        input.Code,
		Name:        input.Name,
		Description: input.Description,
		IsActive:    true,
	}
	if err := c.DB.Create(&warehouse).Error; err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Warehouse created successfully", "data": warehouse})
}

func (c *WarehouseController) GetAllWarehouses(ctx *fiber.Ctx) error {
	var warehouses []models.Warehouse
	if err := c.DB.Where("tenant_id = ?", middleware.TenantID(ctx)).Find(&warehouses).Error; err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(fiber.Map{"success": true, "data": warehouses})
}

func (c *WarehouseController) GetWarehouseByID(ctx *fiber.Ctx) error {
	id, err := utils.ParamID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var warehouse models.Warehouse
	if err := c.DB.Where("id = ? AND tenant_id = ?", id, middleware.TenantID(ctx)).First(&warehouse).Error; err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(fiber.Map{"success": true, "data": warehouse})
}

func (c *WarehouseController) UpdateWarehouse(ctx *fiber.Ctx) error {
	id, err := utils.ParamID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var input warehouseInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var warehouse models.Warehouse
	if err := c.DB.Where("id = ? AND tenant_id = ?", id, middleware.TenantID(ctx)).First(&warehouse).Error; err != nil {
		return respondError(ctx, err)
	}

	warehouse.Code = input.Code
	warehouse.Name = input.Name
	warehouse.Description = input.Description

	if err := c.DB.Save(&warehouse).Error; err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(fiber.Map{"success": true, "message": "Warehouse updated successfully", "data": warehouse})
}

type pointOfSaleInput struct {
	WarehouseID types.SnowflakeID `json:"warehouse_id" validate:"required"`
	Code        string            `json:"code" validate:"required"`
	Name        string            `json:"name" validate:"required"`
	Location    string            `json:"location"`
}

func (c *WarehouseController) CreatePointOfSale(ctx *fiber.Ctx) error {
	var input pointOfSaleInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := utils.ValidateStruct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	pos := models.PointOfSale{
		TenantID:    middleware.TenantID(ctx),
		WarehouseID: input.WarehouseID,
		Code:        input.Code,
		Name:        input.Name,
		Location:    input.Location,
		IsActive:    true,
	}
	if err := c.DB.Create(&pos).Error; err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Point of sale created successfully", "data": pos})
}

func (c *WarehouseController) GetAllPointsOfSale(ctx *fiber.Ctx) error {
	var pos []models.PointOfSale
	if err := c.DB.Where("tenant_id = ?", middleware.TenantID(ctx)).Find(&pos).Error; err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(fiber.Map{"success": true, "data": pos})
}
