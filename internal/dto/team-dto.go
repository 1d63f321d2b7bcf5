package dto

import (
	"gearguard/internal/entities"

	"github.com/aarondl/null/v8"
)

type CreateTeamDTO struct {
	Name           string  `json:"name" validate:"omitempty,max=255"`
	Description    *string `json:"description"`
	TeamLeadID     *uint64 `json:"team_lead_id" validate:"omitempty,gt=0"`
	Specialization *string `json:"specialization" validate:"omitempty,max=255"`
	IsActive       *bool   `json:"is_active"`
}

type UpdateTeamDTO struct {
	Name           null.String `json:"name" validate:"omitempty,max=255"`
	Description    null.String `json:"description"`
	TeamLeadID     null.Uint64 `json:"team_lead_id"`
	Specialization null.String `json:"specialization" validate:"omitempty,max=255"`
	IsActive       null.Bool   `json:"is_active"`
}

type AddTeamMemberDTO struct {
	UserID *uint64 `json:"user_id"`
}

type TeamDetailsDTO struct {
	entities.Team
	Members []entities.TeamMember `json:"members"`
}
