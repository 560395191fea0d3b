package routes

import (
	"erp-app/config"
	"erp-app/controllers"
	"erp-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupWarehouseRoutes(app *fiber.App, db *gorm.DB) {
	warehouseController := controllers.NewWarehouseController(db)

	api := app.Group(config.MAIN_ROUTES+"/warehouses", middleware.AuthMiddleware)

	api.Post("/", warehouseController.CreateWarehouse)
	api.Get("/", warehouseController.GetAllWarehouses)
	api.Get("/:id", warehouseController.GetWarehouseByID)
	api.Put("/:id", warehouseController.UpdateWarehouse)

	pos := app.Group(config.MAIN_ROUTES+"/points-of-sale", middleware.AuthMiddleware)
	pos.Post("/", warehouseController.CreatePointOfSale)
	pos.Get("/", warehouseController.GetAllPointsOfSale)
}
