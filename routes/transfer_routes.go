package routes

import (
	"erp-app/config"
	"erp-app/controllers"
	"erp-app/middleware"
	"erp-app/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupTransferRoutes(app *fiber.App, db *gorm.DB) {
	transferController := controllers.NewTransferController(db)

	requests := app.Group(config.MAIN_ROUTES+"/stock-requests", middleware.AuthMiddleware)
	requests.Post("/", transferController.CreateRequest)
	requests.Get("/", transferController.GetAllRequests)
	requests.Get("/:id", transferController.GetRequestByID)
	requests.Post("/:id/submit", transferController.SubmitRequest)
	requests.Post("/:id/cancel", transferController.CancelRequest)

	approvals := app.Group(config.MAIN_ROUTES+"/stock-requests", middleware.AuthMiddleware,
		middleware.RequireRoles(models.RoleAdmin, models.RoleManager))
	approvals.Post("/:id/approve", transferController.ApproveRequest)
	approvals.Post("/:id/reject", transferController.RejectRequest)
	approvals.Post("/:id/transfer", transferController.CreateTransferFromRequest)

	transfers := app.Group(config.MAIN_ROUTES+"/transfers", middleware.AuthMiddleware)
	transfers.Post("/", transferController.CreateTransfer)
	transfers.Get("/", transferController.GetAllTransfers)
	transfers.Get("/:id", transferController.GetTransferByID)
	transfers.Post("/:id/complete", transferController.CompleteTransfer)
}
