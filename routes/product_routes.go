package routes

import (
	"erp-app/config"
	"erp-app/controllers"
	"erp-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupProductRoutes(app *fiber.App, db *gorm.DB) {
	productController := controllers.NewProductController(db)

	api := app.Group(config.MAIN_ROUTES+"/products", middleware.AuthMiddleware)

	api.Post("/", productController.CreateProduct)
	api.Get("/", productController.GetAllProducts)
	api.Get("/:id", productController.GetProductByID)
	api.Put("/:id", productController.UpdateProduct)
	api.Delete("/:id", productController.DeleteProduct)
}
