package main

import (
	"log"

	"inventory-app/config"
	"inventory-app/controllers"
	"inventory-app/controllers/idgen"
	"inventory-app/database"
	"inventory-app/repositories"
	"inventory-app/routes"
	"inventory-app/services"

	"github.com/gofiber/fiber/v2"
)

func main() {
	config.LoadConfig()
	idgen.Init(config.SnowflakeNode)

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}
	database.SeedAdminUser(db)

	// One repository/service instance per store so the per-item and
	// per-order locks are shared by every code path that mutates them.
	itemRepo := repositories.NewItemRepository(db)
	orderRepo := repositories.NewPurchaseOrderRepository(db)
	supplierRepo := repositories.NewSupplierRepository(db)

	stockService := services.NewStockService(itemRepo)
	itemService := services.NewItemService(itemRepo, stockService)
	orderService := services.NewPurchaseOrderService(orderRepo, itemRepo, supplierRepo)
	receivingService := services.NewReceivingService(orderRepo, stockService, orderService.OrderLocks())

	app := fiber.New()
	config.SetupCORS(app)

	routes.SetupAuthRoutes(app, controllers.NewAuthController(db))
	routes.SetupItemRoutes(app, controllers.NewItemController(db, itemService))
	routes.SetupStockRoutes(app, controllers.NewStockController(db, stockService))
	routes.SetupSupplierRoutes(app, controllers.NewSupplierController(db))
	routes.SetupPurchaseOrderRoutes(app, controllers.NewPurchaseOrderController(db, orderService, receivingService))
	routes.SetupDashboardRoutes(app, controllers.NewDashboardController(db))

	port := config.APP_PORT
	config.GetLogger().WithField("port", port).Info("server starting")

	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}
}
