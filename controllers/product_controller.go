package controllers

import (
	"erp-app/middleware"
	"erp-app/models"
	"erp-app/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductController struct {
	DB *gorm.DB
}

func NewProductController(db *gorm.DB) *ProductController {
	return &ProductController{DB: db}
}

type productInput struct {
	ItemCode    string          `json:"item_code" validate:"required"`
	Barcode     string          `json:"barcode"`
	ItemName    string          `json:"item_name" validate:"required"`
	Description string          `json:"description"`
	Uom         string          `json:"uom"`
	SalePrice   decimal.Decimal `json:"sale_price"`
	MinStock    int             `json:"min_stock"`
}

func (c *ProductController) CreateProduct(ctx *fiber.Ctx) error {
	var input productInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := utils.ValidateStruct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	uom := input.Uom
	if uom == "" {
		uom = "PCS"
	}

	product := models.Product{
		TenantID:    middleware.TenantID(ctx),
		ItemCode:    input.ItemCode,
		Barcode:     input.Barcode,
		ItemName:    input.ItemName,
		Description: input.Description,
		Uom:         uom,
		SalePrice:   input.SalePrice,
		MinStock:    input.MinStock,
		IsActive:    true,
		CreatedBy:   middleware.UserID(ctx),
	}
	if err := c.DB.Create(&product).Error; err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Product created successfully", "data": product})
}

func (c *ProductController) GetAllProducts(ctx *fiber.Ctx) error {
	var products []models.Product
	if err := c.DB.Where("tenant_id = ?", middleware.TenantID(ctx)).Find(&products).Error; err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": products})
}

func (c *ProductController) GetProductByID(ctx *fiber.Ctx) error {
	id, err := utils.ParamID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var product models.Product
	if err := c.DB.Where("id = ? AND tenant_id = ?", id, middleware.TenantID(ctx)).First(&product).Error; err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": product})
}

func (c *ProductController) UpdateProduct(ctx *fiber.Ctx) error {
	id, err := utils.ParamID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var input productInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var product models.Product
	if err := c.DB.Where("id = ? AND tenant_id = ?", id, middleware.TenantID(ctx)).First(&product).Error; err != nil {
		return respondError(ctx, err)
	}

	product.ItemCode = input.ItemCode
	product.Barcode = input.Barcode
	product.ItemName = input.ItemName
	product.Description = input.Description
	if input.Uom != "" {
		product.Uom = input.Uom
	}
	product.SalePrice = input.SalePrice
	product.MinStock = input.MinStock
	product.UpdatedBy = middleware.UserID(ctx)

	if err := c.DB.Save(&product).Error; err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Product updated successfully", "data": product})
}

func (c *ProductController) DeleteProduct(ctx *fiber.Ctx) error {
	id, err := utils.ParamID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	if err := c.DB.Where("id = ? AND tenant_id = ?", id, middleware.TenantID(ctx)).
		Delete(&models.Product{}).Error; err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Product deleted successfully"})
}
