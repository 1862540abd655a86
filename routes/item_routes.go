package routes

import (
	"inventory-app/config"
	"inventory-app/controllers"
	"inventory-app/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupItemRoutes(app *fiber.App, itemController *controllers.ItemController) {
	api := app.Group(config.MAIN_ROUTES+"/items", middleware.AuthMiddleware)

	api.Post("/", itemController.CreateItem)
	api.Get("/", itemController.GetItems)
	api.Get("/excel", itemController.ExportExcel)
	api.Get("/low-stock", itemController.GetLowStockItems)
	api.Get("/out-of-stock", itemController.GetOutOfStockItems)
	api.Get("/:id", itemController.GetItemByID)
	api.Get("/:id/ledger", itemController.GetItemLedger)
	api.Put("/:id", itemController.UpdateItem)
	api.Delete("/:id", itemController.DeactivateItem)
}
