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

type CashController struct {
	DB *gorm.DB
}

func NewCashController(db *gorm.DB) *CashController {
	return &CashController{DB: db}
}

type openSessionInput struct {
	PointOfSaleID  types.SnowflakeID `json:"point_of_sale_id" validate:"required"`
	OpeningBalance decimal.Decimal   `json:"opening_balance"`
}

func (c *CashController) OpenSession(ctx *fiber.Ctx) error {
	var input openSessionInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := utils.ValidateStruct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	repo := repositories.NewCashRepository(c.DB)
	session, err := repo.OpenSession(middleware.TenantID(ctx), input.PointOfSaleID, input.OpeningBalance, middleware.UserID(ctx))
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Cash session opened successfully", "data": session})
}

type closeSessionInput struct {
	ClosingBalance decimal.Decimal `json:"closing_balance"`
	Notes          string          `json:"notes"`
}

func (c *CashController) CloseSession(ctx *fiber.Ctx) error {
	id, err := utils.ParamID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var input closeSessionInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	repo := repositories.NewCashRepository(c.DB)
	session, err := repo.CloseSession(middleware.TenantID(ctx), id, input.ClosingBalance, middleware.UserID(ctx), input.Notes)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Cash session closed", "data": session})
}

func (c *CashController) RecordMovement(ctx *fiber.Ctx) error {
	var input repositories.RecordMovementInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := utils.ValidateStruct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	repo := repositories.NewCashRepository(c.DB)
	movement, err := repo.RecordMovement(middleware.TenantID(ctx), input, middleware.UserID(ctx))
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Movement recorded", "data": movement})
}

func (c *CashController) GetSession(ctx *fiber.Ctx) error {
	id, err := utils.ParamID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	repo := repositories.NewCashRepository(c.DB)
	session, err := repo.GetSession(middleware.TenantID(ctx), id)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": session})
}

func (c *CashController) GetAllSessions(ctx *fiber.Ctx) error {
	posID, _ := utils.QueryID(ctx, "point_of_sale_id")
	status := ctx.Query("status")

	repo := repositories.NewCashRepository(c.DB)
	sessions, err := repo.ListSessions(middleware.TenantID(ctx), posID, status)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": sessions})
}

func (c *CashController) GetMovements(ctx *fiber.Ctx) error {
	sessionID, _ := utils.QueryID(ctx, "session_id")

	repo := repositories.NewCashRepository(c.DB)
	movements, err := repo.ListMovements(middleware.TenantID(ctx), sessionID)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": movements})
}

func (c *CashController) CreateRemittance(ctx *fiber.Ctx) error {
	var input repositories.CreateRemittanceInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := utils.ValidateStruct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	repo := repositories.NewCashRepository(c.DB)
	remittance, err := repo.CreateRemittance(middleware.TenantID(ctx), input, middleware.UserID(ctx))
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Remittance created", "data": remittance})
}

type receiveRemittanceInput struct {
	SessionID types.SnowflakeID `json:"session_id"`
}

func (c *CashController) ReceiveRemittance(ctx *fiber.Ctx) error {
	id, err := utils.ParamID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var input receiveRemittanceInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	repo := repositories.NewCashRepository(c.DB)
	remittance, err := repo.ReceiveRemittance(middleware.TenantID(ctx), id, input.SessionID, middleware.UserID(ctx))
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Remittance received", "data": remittance})
}

func (c *CashController) ValidateRemittance(ctx *fiber.Ctx) error {
	id, err := utils.ParamID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	repo := repositories.NewCashRepository(c.DB)
	remittance, err := repo.ValidateRemittance(middleware.TenantID(ctx), id, middleware.UserID(ctx))
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Remittance validated", "data": remittance})
}

type rejectRemittanceInput struct {
	Reason string `json:"reason" validate:"required"`
}

func (c *CashController) RejectRemittance(ctx *fiber.Ctx) error {
	id, err := utils.ParamID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var input rejectRemittanceInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := utils.ValidateStruct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	repo := repositories.NewCashRepository(c.DB)
	remittance, err := repo.RejectRemittance(middleware.TenantID(ctx), id, middleware.UserID(ctx), input.Reason)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Remittance rejected", "data": remittance})
}

func (c *CashController) GetAllRemittances(ctx *fiber.Ctx) error {
	status := ctx.Query("status")

	repo := repositories.NewCashRepository(c.DB)
	remittances, err := repo.ListRemittances(middleware.TenantID(ctx), status)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": remittances})
}
