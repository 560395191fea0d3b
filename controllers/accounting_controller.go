package controllers

import (
	"erp-app/middleware"
	"erp-app/repositories"
	"erp-app/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AccountingController struct {
	DB *gorm.DB
}

func NewAccountingController(db *gorm.DB) *AccountingController {
	return &AccountingController{DB: db}
}

func (c *AccountingController) CreatePeriod(ctx *fiber.Ctx) error {
	var input repositories.CreatePeriodInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := utils.ValidateStruct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	repo := repositories.NewAccountingRepository(c.DB)
	period, err := repo.CreatePeriod(middleware.TenantID(ctx), input)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Accounting period created", "data": period})
}

func (c *AccountingController) ClosePeriod(ctx *fiber.Ctx) error {
	id, err := utils.ParamID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	repo := repositories.NewAccountingRepository(c.DB)
	period, err := repo.ClosePeriod(middleware.TenantID(ctx), id, middleware.UserID(ctx))
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Accounting period closed", "data": period})
}

func (c *AccountingController) ReopenPeriod(ctx *fiber.Ctx) error {
	id, err := utils.ParamID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	repo := repositories.NewAccountingRepository(c.DB)
	period, err := repo.ReopenPeriod(middleware.TenantID(ctx), id)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Accounting period reopened", "data": period})
}

func (c *AccountingController) PostEntry(ctx *fiber.Ctx) error {
	var input repositories.PostJournalEntryInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := utils.ValidateStruct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	repo := repositories.NewAccountingRepository(c.DB)
	entry, err := repo.PostEntry(middleware.TenantID(ctx), input, middleware.UserID(ctx))
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Journal entry posted", "data": entry})
}

func (c *AccountingController) GetAllPeriods(ctx *fiber.Ctx) error {
	repo := repositories.NewAccountingRepository(c.DB)
	periods, err := repo.ListPeriods(middleware.TenantID(ctx))
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": periods})
}

func (c *AccountingController) GetPeriodByID(ctx *fiber.Ctx) error {
	id, err := utils.ParamID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	repo := repositories.NewAccountingRepository(c.DB)
	period, err := repo.GetPeriod(middleware.TenantID(ctx), id)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": period})
}

func (c *AccountingController) GetAllEntries(ctx *fiber.Ctx) error {
	periodID, _ := utils.QueryID(ctx, "period_id")

	repo := repositories.NewAccountingRepository(c.DB)
	entries, err := repo.ListEntries(middleware.TenantID(ctx), periodID)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": entries})
}
