package routes

import (
	"gearguard/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runHealthRouter(api *echo.Group, healthCtrl *controllers.HealthController) {
	api.GET("/health", healthCtrl.Check)
}
