package controllers

import (
	"erp-app/middleware"
	"erp-app/repositories"
	"erp-app/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type TransferController struct {
	DB *gorm.DB
}

func NewTransferController(db *gorm.DB) *TransferController {
	return &TransferController{DB: db}
}

func (c *TransferController) CreateRequest(ctx *fiber.Ctx) error {
	var input repositories.CreateStockRequestInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := utils.ValidateStruct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	repo := repositories.NewTransferRepository(c.DB)
	request, err := repo.CreateRequest(middleware.TenantID(ctx), input, middleware.UserID(ctx))
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Stock request created", "data": request})
}

func (c *TransferController) SubmitRequest(ctx *fiber.Ctx) error {
	id, err := utils.ParamID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	repo := repositories.NewTransferRepository(c.DB)
	request, err := repo.SubmitRequest(middleware.TenantID(ctx), id)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Stock request submitted", "data": request})
}

func (c *TransferController) ApproveRequest(ctx *fiber.Ctx) error {
	id, err := utils.ParamID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	repo := repositories.NewTransferRepository(c.DB)
	request, err := repo.ApproveRequest(middleware.TenantID(ctx), id, middleware.UserID(ctx))
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Stock request approved", "data": request})
}

type rejectRequestInput struct {
	Reason string `json:"reason"`
}

func (c *TransferController) RejectRequest(ctx *fiber.Ctx) error {
	id, err := utils.ParamID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var input rejectRequestInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	repo := repositories.NewTransferRepository(c.DB)
	request, err := repo.RejectRequest(middleware.TenantID(ctx), id, middleware.UserID(ctx), input.Reason)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Stock request rejected", "data": request})
}

func (c *TransferController) CancelRequest(ctx *fiber.Ctx) error {
	id, err := utils.ParamID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	repo := repositories.NewTransferRepository(c.DB)
	request, err := repo.CancelRequest(middleware.TenantID(ctx), id)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Stock request cancelled", "data": request})
}

func (c *TransferController) CreateTransferFromRequest(ctx *fiber.Ctx) error {
	id, err := utils.ParamID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	repo := repositories.NewTransferRepository(c.DB)
	transfer, err := repo.CreateTransferFromRequest(middleware.TenantID(ctx), id, middleware.UserID(ctx))
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Transfer created", "data": transfer})
}

func (c *TransferController) CreateTransfer(ctx *fiber.Ctx) error {
	var input repositories.CreateTransferInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := utils.ValidateStruct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	repo := repositories.NewTransferRepository(c.DB)
	transfer, err := repo.CreateTransfer(middleware.TenantID(ctx), input, middleware.UserID(ctx))
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Transfer created", "data": transfer})
}

func (c *TransferController) CompleteTransfer(ctx *fiber.Ctx) error {
	id, err := utils.ParamID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	repo := repositories.NewTransferRepository(c.DB)
	transfer, err := repo.CompleteTransfer(middleware.TenantID(ctx), id, middleware.UserID(ctx))
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Transfer completed", "data": transfer})
}

func (c *TransferController) GetAllRequests(ctx *fiber.Ctx) error {
	status := ctx.Query("status")

	repo := repositories.NewTransferRepository(c.DB)
	requests, err := repo.ListRequests(middleware.TenantID(ctx), status)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": requests})
}

func (c *TransferController) GetRequestByID(ctx *fiber.Ctx) error {
	id, err := utils.ParamID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	repo := repositories.NewTransferRepository(c.DB)
	request, err := repo.GetRequest(middleware.TenantID(ctx), id)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": request})
}

func (c *TransferController) GetAllTransfers(ctx *fiber.Ctx) error {
	status := ctx.Query("status")

	repo := repositories.NewTransferRepository(c.DB)
	transfers, err := repo.ListTransfers(middleware.TenantID(ctx), status)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": transfers})
}

func (c *TransferController) GetTransferByID(ctx *fiber.Ctx) error {
	id, err := utils.ParamID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	repo := repositories.NewTransferRepository(c.DB)
	transfer, err := repo.GetTransfer(middleware.TenantID(ctx), id)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": transfer})
}
