package routes

import (
	"inventory-app/config"
	"inventory-app/controllers"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App, authController *controllers.AuthController) {
	api := app.Group(config.MAIN_ROUTES)

	api.Post("/login", authController.Login)
}
