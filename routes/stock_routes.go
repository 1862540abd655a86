package routes

import (
	"inventory-app/config"
	"inventory-app/controllers"
	"inventory-app/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupStockRoutes(app *fiber.App, stockController *controllers.StockController) {
	api := app.Group(config.MAIN_ROUTES+"/stock", middleware.AuthMiddleware)

	api.Post("/receive", stockController.ReceiveStock)
	api.Post("/issue", stockController.IssueStock)
	api.Post("/adjust", stockController.AdjustStock)
}
