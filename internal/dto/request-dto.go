package dto

import (
	"gearguard/internal/entities"

	"github.com/aarondl/null/v8"
)

type CreateRequestDTO struct {
	Subject        string  `json:"subject" validate:"omitempty,max=255"`
	EquipmentID    *uint64 `json:"equipment_id"`
	Type           *string `json:"type" validate:"omitempty,max=50"`
	Description    *string `json:"description"`
	Priority       *string `json:"priority" validate:"omitempty,max=50"`
	ScheduledDate  *string `json:"scheduled_date" validate:"omitempty,date_value"`
	AssignedToName *string `json:"assigned_to_name" validate:"omitempty,max=255"`
}

// UpdateRequestDTO - patch заявки. Валидность поля означает "перезаписать",
// пустая строка - обычное значение, а не "без изменений".
type UpdateRequestDTO struct {
	Subject        null.String  `json:"subject" validate:"omitempty,max=255"`
	Description    null.String  `json:"description"`
	Status         null.String  `json:"status" validate:"omitempty,request_status"`
	AssignedToID   null.Uint64  `json:"assigned_to_id"`
	AssignedTeamID null.Uint64  `json:"assigned_team_id"`
	Priority       null.String  `json:"priority" validate:"omitempty,max=50"`
	HoursSpent     null.Float64 `json:"hours_spent" validate:"omitempty,min=0"`
	Notes          null.String  `json:"notes"`
	AssignedToName null.String  `json:"assigned_to_name" validate:"omitempty,max=255"`
	ScheduledDate  null.String  `json:"scheduled_date" validate:"omitempty,date_value"`
}

type UpdateRequestStatusDTO struct {
	Status     string       `json:"status"`
	HoursSpent null.Float64 `json:"hours_spent" validate:"omitempty,min=0"`
}

type AssignRequestDTO struct {
	AssignedToID *uint64 `json:"assigned_to_id"`
}

type RequestFilter struct {
	Status      string
	TeamID      *uint64
	EquipmentID *uint64
	Overdue     bool
}

// CreatedRequestDTO - ответ на создание заявки.
type CreatedRequestDTO struct {
	ID                uint64  `json:"id"`
	RequestNumber     string  `json:"request_number"`
	Subject           string  `json:"subject"`
	EquipmentID       uint64  `json:"equipment_id"`
	EquipmentCategory *string `json:"equipment_category"`
	AssignedTeamID    *uint64 `json:"assigned_team_id"`
	Status            string  `json:"status"`
	Priority          string  `json:"priority"`
	AssignedToName    *string `json:"assigned_to_name"`
	IsOverdue         bool    `json:"is_overdue"`
}

type KanbanColumnDTO struct {
	Status   string                               `json:"status"`
	Count    int                                  `json:"count"`
	Requests []entities.MaintenanceRequestDetails `json:"requests"`
}
