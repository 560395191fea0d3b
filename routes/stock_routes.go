package routes

import (
	"erp-app/config"
	"erp-app/controllers"
	"erp-app/middleware"
	"erp-app/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupStockRoutes(app *fiber.App, db *gorm.DB) {
	stockController := controllers.NewStockController(db)

	api := app.Group(config.MAIN_ROUTES+"/stocks", middleware.AuthMiddleware)

	api.Get("/", stockController.GetAllStocks)
	api.Get("/movements", stockController.GetMovements)
	api.Get("/export", stockController.ExportStockBalance)

	manage := app.Group(config.MAIN_ROUTES+"/stocks", middleware.AuthMiddleware,
		middleware.RequireRoles(models.RoleAdmin, models.RoleManager))
	manage.Post("/receive", stockController.ReceiveStock)
	manage.Post("/adjust", stockController.AdjustStock)
}
