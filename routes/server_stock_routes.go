package routes

import (
	"erp-app/config"
	"erp-app/controllers"
	"erp-app/middleware"
	"erp-app/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupServerStockRoutes(app *fiber.App, db *gorm.DB) {
	serverStockController := controllers.NewServerStockController(db)

	api := app.Group(config.MAIN_ROUTES+"/server-stocks", middleware.AuthMiddleware)

	api.Get("/", serverStockController.GetAllServerStocks)
	api.Get("/:id", serverStockController.GetServerStockByID)
	api.Get("/:id/movements", serverStockController.GetMovements)
	api.Post("/:id/sale", serverStockController.RecordSale)
	api.Post("/:id/return", serverStockController.ReturnStock)
	api.Post("/:id/loss", serverStockController.DeclareLoss)

	manage := app.Group(config.MAIN_ROUTES+"/server-stocks", middleware.AuthMiddleware,
		middleware.RequireRoles(models.RoleAdmin, models.RoleManager))
	manage.Post("/delegate", serverStockController.Delegate)
	manage.Post("/:id/close", serverStockController.CloseStock)
}
