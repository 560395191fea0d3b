package routes

import (
	"erp-app/config"
	"erp-app/controllers"
	"erp-app/middleware"
	"erp-app/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupAccountingRoutes(app *fiber.App, db *gorm.DB) {
	accountingController := controllers.NewAccountingController(db)

	api := app.Group(config.MAIN_ROUTES+"/accounting", middleware.AuthMiddleware,
		middleware.RequireRoles(models.RoleAdmin, models.RoleManager))

	api.Post("/periods", accountingController.CreatePeriod)
	api.Get("/periods", accountingController.GetAllPeriods)
	api.Get("/periods/:id", accountingController.GetPeriodByID)
	api.Post("/periods/:id/close", accountingController.ClosePeriod)
	api.Post("/periods/:id/reopen", accountingController.ReopenPeriod)
	api.Post("/entries", accountingController.PostEntry)
	api.Get("/entries", accountingController.GetAllEntries)
}
