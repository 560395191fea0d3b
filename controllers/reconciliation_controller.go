package controllers

import (
	"fmt"
	"log"

	"erp-app/middleware"
	"erp-app/models"
	"erp-app/repositories"
	"erp-app/types"
	"erp-app/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type ReconciliationController struct {
	DB *gorm.DB
}

func NewReconciliationController(db *gorm.DB) *ReconciliationController {
	return &ReconciliationController{DB: db}
}

type openReconciliationInput struct {
	ServerID      types.SnowflakeID `json:"server_id" validate:"required"`
	ManagerID     types.SnowflakeID `json:"manager_id"`
	PointOfSaleID types.SnowflakeID `json:"point_of_sale_id"`
}

func (c *ReconciliationController) Open(ctx *fiber.Ctx) error {
	var input openReconciliationInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := utils.ValidateStruct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	repo := repositories.NewReconciliationRepository(c.DB)
	rec, err := repo.Open(middleware.TenantID(ctx), input.ServerID, input.ManagerID, input.PointOfSaleID)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Reconciliation opened successfully", "data": rec})
}

func (c *ReconciliationController) CalculateTotals(ctx *fiber.Ctx) error {
	id, err := utils.ParamID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	repo := repositories.NewReconciliationRepository(c.DB)
	rec, err := repo.CalculateTotals(middleware.TenantID(ctx), id)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": rec})
}

type submitInput struct {
	CashCollected decimal.Decimal `json:"cash_collected"`
	Notes         string          `json:"notes"`
}

func (c *ReconciliationController) SubmitForValidation(ctx *fiber.Ctx) error {
	id, err := utils.ParamID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var input submitInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	repo := repositories.NewReconciliationRepository(c.DB)
	rec, err := repo.SubmitForValidation(middleware.TenantID(ctx), id, input.CashCollected, input.Notes)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":               true,
		"message":               "Reconciliation submitted for validation",
		"data":                  rec,
		"acceptable_difference": rec.IsAcceptableDifference(models.DefaultDifferenceThreshold),
	})
}

func (c *ReconciliationController) Resubmit(ctx *fiber.Ctx) error {
	id, err := utils.ParamID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var input submitInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	repo := repositories.NewReconciliationRepository(c.DB)
	rec, err := repo.Resubmit(middleware.TenantID(ctx), id, input.CashCollected, input.Notes)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Reconciliation resubmitted", "data": rec})
}

type validateInput struct {
	Notes string `json:"notes"`
}

func (c *ReconciliationController) Validate(ctx *fiber.Ctx) error {
	id, err := utils.ParamID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var input validateInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	repo := repositories.NewReconciliationRepository(c.DB)
	rec, err := repo.Validate(middleware.TenantID(ctx), id, middleware.UserID(ctx), input.Notes)
	if err != nil {
		return respondError(ctx, err)
	}

	c.notifyServer(rec, "Reconciliation validated",
		fmt.Sprintf("Session %s was validated. Cash difference: %s", rec.Reference, rec.CashDifference.StringFixed(2)))

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Reconciliation validated", "data": rec})
}

type disputeInput struct {
	Reason string `json:"reason" validate:"required"`
}

func (c *ReconciliationController) Dispute(ctx *fiber.Ctx) error {
	id, err := utils.ParamID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var input disputeInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := utils.ValidateStruct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	repo := repositories.NewReconciliationRepository(c.DB)
	rec, err := repo.Dispute(middleware.TenantID(ctx), id, middleware.UserID(ctx), input.Reason)
	if err != nil {
		return respondError(ctx, err)
	}

	c.notifyServer(rec, "Reconciliation disputed",
		fmt.Sprintf("Session %s was disputed: %s", rec.Reference, input.Reason))

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Reconciliation disputed", "data": rec})
}

func (c *ReconciliationController) Close(ctx *fiber.Ctx) error {
	id, err := utils.ParamID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	repo := repositories.NewReconciliationRepository(c.DB)
	rec, err := repo.CloseReconciliation(middleware.TenantID(ctx), id)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Reconciliation closed", "data": rec})
}

func (c *ReconciliationController) GetAllReconciliations(ctx *fiber.Ctx) error {
	serverID, _ := utils.QueryID(ctx, "server_id")
	status := ctx.Query("status")

	repo := repositories.NewReconciliationRepository(c.DB)
	recs, err := repo.List(middleware.TenantID(ctx), serverID, status)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": recs})
}

func (c *ReconciliationController) GetReconciliationByID(ctx *fiber.Ctx) error {
	id, err := utils.ParamID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	repo := repositories.NewReconciliationRepository(c.DB)
	rec, err := repo.GetByID(middleware.TenantID(ctx), id)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": rec})
}

// ExportReconciliation streams the settlement statement as an xlsx file.
func (c *ReconciliationController) ExportReconciliation(ctx *fiber.Ctx) error {
	id, err := utils.ParamID(ctx, "id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	tenantID := middleware.TenantID(ctx)
	repo := repositories.NewReconciliationRepository(c.DB)
	rec, err := repo.GetByID(tenantID, id)
	if err != nil {
		return respondError(ctx, err)
	}

	var stocks []models.ServerStock
	if err := c.DB.Where("tenant_id = ? AND server_id = ? AND delegated_at >= ?",
		tenantID, rec.ServerID, rec.SessionStart).Find(&stocks).Error; err != nil {
		return respondError(ctx, err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Reconciliation"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Reference", "Product", "Delegated", "Sold", "Remaining", "Returned", "Lost", "Unit Price", "Sales Amount", "Status"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, s := range stocks {
		values := []interface{}{
			s.Reference, s.ProductID.String(), s.QuantityDelegated, s.QuantitySold,
			s.QuantityRemaining, s.QuantityReturned, s.QuantityLost,
			s.UnitPrice.StringFixed(2), s.TotalSalesAmount.StringFixed(2), s.Status,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	summaryRow := len(stocks) + 3
	summary := [][2]interface{}{
		{"Total sales", rec.TotalSales.StringFixed(2)},
		{"Cash expected", rec.CashExpected.StringFixed(2)},
		{"Cash collected", rec.CashCollected.StringFixed(2)},
		{"Cash difference", rec.CashDifference.StringFixed(2)},
		{"Status", rec.Status},
	}
	for i, pair := range summary {
		labelCell, _ := excelize.CoordinatesToCellName(1, summaryRow+i)
		valueCell, _ := excelize.CoordinatesToCellName(2, summaryRow+i)
		f.SetCellValue(sheet, labelCell, pair[0])
		f.SetCellValue(sheet, valueCell, pair[1])
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return respondError(ctx, err)
	}

	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", `attachment; filename="`+rec.Reference+`.xlsx"`)
	return ctx.Send(buf.Bytes())
}

// notifyServer mails the seller about a manager decision. Best-effort: a mail
// failure is logged and swallowed.
func (c *ReconciliationController) notifyServer(rec *models.ServerReconciliation, subject, body string) {
	var server models.User
	if err := c.DB.Where("id = ? AND tenant_id = ?", rec.ServerID, rec.TenantID).First(&server).Error; err != nil || server.Email == "" {
		return
	}

	html := fmt.Sprintf("<html><body><h3>%s</h3><p>%s</p><p>This is an auto-generated email.</p></body></html>", subject, body)
	if err := utils.SendMail([]string{server.Email}, subject, html); err != nil {
		log.Printf("Warning: notification mail for %s not sent: %v", rec.Reference, err)
	}
}
