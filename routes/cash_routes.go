package routes

import (
	"erp-app/config"
	"erp-app/controllers"
	"erp-app/middleware"
	"erp-app/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupCashRoutes(app *fiber.App, db *gorm.DB) {
	cashController := controllers.NewCashController(db)

	api := app.Group(config.MAIN_ROUTES+"/cash", middleware.AuthMiddleware)

	api.Post("/sessions", cashController.OpenSession)
	api.Get("/sessions", cashController.GetAllSessions)
	api.Get("/sessions/:id", cashController.GetSession)
	api.Post("/sessions/:id/close", cashController.CloseSession)
	api.Post("/movements", cashController.RecordMovement)
	api.Get("/movements", cashController.GetMovements)
	api.Post("/remittances", cashController.CreateRemittance)
	api.Get("/remittances", cashController.GetAllRemittances)
	api.Post("/remittances/:id/receive", cashController.ReceiveRemittance)

	manage := app.Group(config.MAIN_ROUTES+"/cash", middleware.AuthMiddleware,
		middleware.RequireRoles(models.RoleAdmin, models.RoleManager))
	manage.Post("/remittances/:id/validate", cashController.ValidateRemittance)
	manage.Post("/remittances/:id/reject", cashController.RejectRemittance)
}
