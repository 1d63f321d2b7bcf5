package routes

import (
	"gearguard/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runReportRouter(secureGroup *echo.Group, reportCtrl *controllers.ReportController) {
	reports := secureGroup.Group("/reports")
	reports.GET("/dashboard/stats", reportCtrl.GetDashboardStats)
	reports.GET("/equipment", reportCtrl.GetEquipmentReport)
	reports.GET("/team", reportCtrl.GetTeamReport)
	reports.GET("/technician", reportCtrl.GetTechnicianReport)
	reports.GET("/performance", reportCtrl.GetPerformanceReport)
	reports.GET("/downtime", reportCtrl.GetDowntimeReport)
	reports.GET("/workload", reportCtrl.GetWorkloadReport)
}
