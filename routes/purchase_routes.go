package routes

import (
	"erp-app/config"
	"erp-app/controllers"
	"erp-app/middleware"
	"erp-app/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupPurchaseRoutes(app *fiber.App, db *gorm.DB) {
	purchaseController := controllers.NewPurchaseController(db)

	api := app.Group(config.MAIN_ROUTES+"/purchases", middleware.AuthMiddleware,
		middleware.RequireRoles(models.RoleAdmin, models.RoleManager))

	api.Post("/", purchaseController.CreatePurchase)
	api.Get("/", purchaseController.GetAllPurchases)
	api.Get("/:id", purchaseController.GetPurchaseByID)
	api.Post("/:id/order", purchaseController.MarkOrdered)
	api.Post("/:id/receive", purchaseController.ReceivePurchase)
	api.Post("/:id/cancel", purchaseController.CancelPurchase)
}
