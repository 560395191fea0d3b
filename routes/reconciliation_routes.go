package routes

import (
	"erp-app/config"
	"erp-app/controllers"
	"erp-app/middleware"
	"erp-app/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupReconciliationRoutes(app *fiber.App, db *gorm.DB) {
	reconciliationController := controllers.NewReconciliationController(db)

	api := app.Group(config.MAIN_ROUTES+"/reconciliations", middleware.AuthMiddleware)

	api.Get("/", reconciliationController.GetAllReconciliations)
	api.Get("/:id", reconciliationController.GetReconciliationByID)
	api.Get("/:id/export", reconciliationController.ExportReconciliation)
	api.Post("/", reconciliationController.Open)
	api.Post("/:id/calculate", reconciliationController.CalculateTotals)
	api.Post("/:id/submit", reconciliationController.SubmitForValidation)
	api.Post("/:id/resubmit", reconciliationController.Resubmit)

	// Validation decisions belong to managers.
	manage := app.Group(config.MAIN_ROUTES+"/reconciliations", middleware.AuthMiddleware,
		middleware.RequireRoles(models.RoleAdmin, models.RoleManager))
	manage.Post("/:id/validate", reconciliationController.Validate)
	manage.Post("/:id/dispute", reconciliationController.Dispute)
	manage.Post("/:id/close", reconciliationController.Close)
}
