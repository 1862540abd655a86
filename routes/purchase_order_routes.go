package routes

import (
	"inventory-app/config"
	"inventory-app/controllers"
	"inventory-app/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupPurchaseOrderRoutes(app *fiber.App, poController *controllers.PurchaseOrderController) {
	api := app.Group(config.MAIN_ROUTES+"/purchase-orders", middleware.AuthMiddleware)

	api.Post("/", poController.CreateOrder)
	api.Get("/", poController.GetOrders)
	api.Get("/:id", poController.GetOrderByID)
	api.Post("/:id/send", poController.SendOrder)
	api.Post("/:id/confirm", poController.ConfirmOrder)
	api.Post("/:id/cancel", poController.CancelOrder)
	api.Post("/:id/receive", poController.ReceiveOrder)
}
