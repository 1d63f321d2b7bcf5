package routes

import (
	"gearguard/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runRequestRouter(secureGroup *echo.Group, requestCtrl *controllers.RequestController) {
	requests := secureGroup.Group("/requests")
	requests.GET("", requestCtrl.GetRequests)
	// Статические пути объявлены до /:id.
	requests.GET("/kanban", requestCtrl.GetKanban)
	requests.GET("/calendar", requestCtrl.GetCalendar)
	requests.GET("/filter/overdue", requestCtrl.GetOverdueRequests)

	requests.GET("/:id", requestCtrl.FindRequest)
	requests.POST("", requestCtrl.CreateRequest)
	requests.PUT("/:id", requestCtrl.UpdateRequest)
	requests.PUT("/:id/status", requestCtrl.UpdateStatus)
	requests.PUT("/:id/assign", requestCtrl.AssignRequest)
	requests.DELETE("/:id", requestCtrl.DeleteRequest)
}
