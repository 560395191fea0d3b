package main

import (
	"fmt"
	"log"

	"erp-app/config"
	"erp-app/controllers/idgen"
	"erp-app/database"
	"erp-app/migration"
	"erp-app/routes"
	seed "erp-app/seeder"

	"github.com/gofiber/fiber/v2"
)

func main() {
	config.LoadConfig()

	app := fiber.New()

	database.EnsureDatabaseExists(config.DBName)

	db, err := database.Open()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := migration.Migrate(db); err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	idgen.Init()
	idgen.AutoGenerateSnowflakeID(db)

	seed.Run(db)

	config.SetupCORS(app)

	routes.SetupAuthRoutes(app, db)
	routes.SetupUserRoutes(app, db)
	routes.SetupProductRoutes(app, db)
	routes.SetupSupplierRoutes(app, db)
	routes.SetupWarehouseRoutes(app, db)
	routes.SetupStockRoutes(app, db)
	routes.SetupServerStockRoutes(app, db)
	routes.SetupReconciliationRoutes(app, db)
	routes.SetupCashRoutes(app, db)
	routes.SetupTransferRoutes(app, db)
	routes.SetupOrderRoutes(app, db)
	routes.SetupPurchaseRoutes(app, db)
	routes.SetupAccountingRoutes(app, db)

	port := config.APP_PORT
	fmt.Println("🚀 Server running on port " + port)

	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}
}
