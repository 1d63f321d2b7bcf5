package routes

import (
	"gearguard/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runEquipmentRouter(secureGroup *echo.Group, equipmentCtrl *controllers.EquipmentController) {
	equipment := secureGroup.Group("/equipment")
	equipment.GET("", equipmentCtrl.GetEquipments)
	equipment.GET("/search/query", equipmentCtrl.SearchEquipment)
	equipment.GET("/:id", equipmentCtrl.FindEquipment)
	equipment.GET("/:id/requests", equipmentCtrl.GetEquipmentRequests)
	equipment.POST("", equipmentCtrl.CreateEquipment)
	equipment.PUT("/:id", equipmentCtrl.UpdateEquipment)
	equipment.DELETE("/:id", equipmentCtrl.DeleteEquipment)
}
