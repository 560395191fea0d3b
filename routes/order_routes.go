package routes

import (
	"erp-app/config"
	"erp-app/controllers"
	"erp-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupOrderRoutes(app *fiber.App, db *gorm.DB) {
	orderController := controllers.NewOrderController(db)

	api := app.Group(config.MAIN_ROUTES+"/orders", middleware.AuthMiddleware)

	api.Post("/", orderController.CreateOrder)
	api.Get("/", orderController.GetAllOrders)
	api.Get("/:id", orderController.GetOrderByID)
}
