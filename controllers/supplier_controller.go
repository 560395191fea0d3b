package controllers

import (
	"erp-app/middleware"
	"erp-app/models"
	"erp-app/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SupplierController struct {
	DB *gorm.DB
}

func NewSupplierController(db *gorm.DB) *SupplierController {
	return &SupplierController{DB: db}
}

type supplierInput struct {
	SupplierCode string `json:"supplier_code" validate:"required"`
	SupplierName string `json:"supplier_name" validate:"required"`
	SuppAddr1    string `json:"supp_addr1"`
	SuppCity     string `json:"supp_city"`
	SuppCountry  string `json:"supp_country"`
	SuppPhone    string `json:"supp_phone"`
	SuppEmail    string `json:"supp_email"`
}

func (c *SupplierController) CreateSupplier(ctx *fiber.Ctx) error {
	var input supplierInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := utils.ValidateStruct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	supplier := models.Supplier{
		TenantID:     middleware.TenantID(ctx),
		SupplierCode: input.SupplierCode,
		SupplierName: input.SupplierName,
		SuppAddr1:    input.SuppAddr1,
		SuppCity:     input.SuppCity,
		SuppCountry:  input.SuppCountry,
		SuppPhone:    input.SuppPhone,
		SuppEmail:    input.SuppEmail,
		IsActive:     true,
		CreatedBy:    middleware.UserID(ctx),
	}
	if err := c.DB.Create(&supplier).Error; err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Supplier created successfully", "data": supplier})
}

func (c *SupplierController) GetAllSuppliers(ctx *fiber.Ctx) error {
	var suppliers []models.Supplier
	if err := c.DB.Where("tenant_id = ?", middleware.TenantID(ctx)).Find(&suppliers).Error; err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Suppliers found", "data": suppliers})
}

func (c *SupplierController) GetSupplierByID(ctx *fiber.Ctx) error {
	id, err := utils.ParamID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var supplier models.Supplier
	if err := c.DB.Where("id = ? AND tenant_id = ?", id, middleware.TenantID(ctx)).First(&supplier).Error; err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Supplier found", "data": supplier})
}

func (c *SupplierController) UpdateSupplier(ctx *fiber.Ctx) error {
	id, err := utils.ParamID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var input supplierInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var supplier models.Supplier
	if err := c.DB.Where("id = ? AND tenant_id = ?", id, middleware.TenantID(ctx)).First(&supplier).Error; err != nil {
		return respondError(ctx, err)
	}

	supplier.SupplierCode = input.SupplierCode
	supplier.SupplierName = input.SupplierName
	supplier.SuppAddr1 = input.SuppAddr1
	supplier.SuppCity = input.SuppCity
	supplier.SuppCountry = input.SuppCountry
	supplier.SuppPhone = input.SuppPhone
	supplier.SuppEmail = input.SuppEmail
	supplier.UpdatedBy = middleware.UserID(ctx)

	if err := c.DB.Save(&supplier).Error; err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Supplier updated successfully", "data": supplier})
}

func (c *SupplierController) DeleteSupplier(ctx *fiber.Ctx) error {
	id, err := utils.ParamID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	if err := c.DB.Where("id = ? AND tenant_id = ?", id, middleware.TenantID(ctx)).
		Delete(&models.Supplier{}).Error; err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Supplier deleted successfully"})
}
