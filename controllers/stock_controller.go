package controllers

import (
	"time"

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

type StockController struct {
	DB *gorm.DB
}

func NewStockController(db *gorm.DB) *StockController {
	return &StockController{DB: db}
}

func (c *StockController) GetAllStocks(ctx *fiber.Ctx) error {
	warehouseID, _ := utils.QueryID(ctx, "warehouse_id")

	repo := repositories.NewStockRepository(c.DB)
	stocks, err := repo.GetStocks(middleware.TenantID(ctx), warehouseID)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": stocks})
}

type receiveStockInput struct {
	ProductID   types.SnowflakeID `json:"product_id" validate:"required"`
	WarehouseID types.SnowflakeID `json:"warehouse_id" validate:"required"`
	Quantity    int               `json:"quantity" validate:"required"`
	UnitCost    decimal.Decimal   `json:"unit_cost"`
	Reference   string            `json:"reference"`
	Notes       string            `json:"notes"`
}

func (c *StockController) ReceiveStock(ctx *fiber.Ctx) error {
	var input receiveStockInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := utils.ValidateStruct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	repo := repositories.NewStockRepository(c.DB)
	stock, err := repo.AddStock(middleware.TenantID(ctx), input.ProductID, input.WarehouseID,
		input.Quantity, input.UnitCost, models.StockMoveIn, input.Reference, input.Notes, middleware.UserID(ctx))
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Stock received", "data": stock})
}

type adjustStockInput struct {
	ProductID   types.SnowflakeID `json:"product_id" validate:"required"`
	WarehouseID types.SnowflakeID `json:"warehouse_id" validate:"required"`
	CountedQty  int               `json:"counted_qty"`
	Notes       string            `json:"notes"`
}

func (c *StockController) AdjustStock(ctx *fiber.Ctx) error {
	var input adjustStockInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := utils.ValidateStruct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	repo := repositories.NewStockRepository(c.DB)
	stock, err := repo.Adjust(middleware.TenantID(ctx), input.ProductID, input.WarehouseID,
		input.CountedQty, input.Notes, middleware.UserID(ctx))
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Stock adjusted", "data": stock})
}

func (c *StockController) GetMovements(ctx *fiber.Ctx) error {
	productID, _ := utils.QueryID(ctx, "product_id")

	repo := repositories.NewStockRepository(c.DB)
	movements, err := repo.GetMovements(middleware.TenantID(ctx), productID)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "data": movements})
}

// ExportStockBalance streams the current stock balance per warehouse as xlsx.
func (c *StockController) ExportStockBalance(ctx *fiber.Ctx) error {
	tenantID := middleware.TenantID(ctx)
	warehouseID, _ := utils.QueryID(ctx, "warehouse_id")

	repo := repositories.NewStockRepository(c.DB)
	stocks, err := repo.GetStocks(tenantID, warehouseID)
	if err != nil {
		return respondError(ctx, err)
	}

	products := map[types.SnowflakeID]models.Product{}
	var list []models.Product
	if err := c.DB.Where("tenant_id = ?", tenantID).Find(&list).Error; err != nil {
		return respondError(ctx, err)
	}
	for _, p := range list {
		products[p.ID] = p
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Stock Balance"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Product Code", "Product Name", "Warehouse", "On Hand", "Reserved", "Available", "Cost Average", "Stock Value"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, s := range stocks {
		p := products[s.ProductID]
		value := s.CostAverage.Mul(decimal.NewFromInt(int64(s.QtyOnHand)))
		values := []interface{}{
			p.ItemCode, p.ItemName, s.WarehouseID.String(), s.QtyOnHand, s.QtyReserved,
			s.QtyAvailable, s.CostAverage.StringFixed(2), value.StringFixed(2),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return respondError(ctx, err)
	}

	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", `attachment; filename="stock-balance-`+time.Now().Format("20060102")+`.xlsx"`)
	return ctx.Send(buf.Bytes())
}
