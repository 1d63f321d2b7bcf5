package routes

import (
	"gearguard/internal/controllers"

	"github.com/labstack/echo/v4"
)

func runTeamRouter(secureGroup *echo.Group, teamCtrl *controllers.TeamController) {
	teams := secureGroup.Group("/teams")
	teams.GET("", teamCtrl.GetTeams)
	teams.GET("/:id", teamCtrl.FindTeam)
	teams.POST("", teamCtrl.CreateTeam)
	teams.PUT("/:id", teamCtrl.UpdateTeam)
	teams.DELETE("/:id", teamCtrl.DeleteTeam)

	teams.GET("/:id/members", teamCtrl.GetMembers)
	teams.POST("/:id/members", teamCtrl.AddMember)
	teams.DELETE("/:id/members/:user_id", teamCtrl.RemoveMember)
}
