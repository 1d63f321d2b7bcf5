package entities

import "time"

// MaintenanceRequest - заявка на обслуживание в том виде, в каком она лежит в БД.
type MaintenanceRequest struct {
	ID                uint64     `json:"id" db:"id"`
	RequestNumber     string     `json:"request_number" db:"request_number"`
	Type              string     `json:"type" db:"type"`
	Subject           string     `json:"subject" db:"subject"`
	Description       *string    `json:"description" db:"description"`
	EquipmentID       uint64     `json:"equipment_id" db:"equipment_id"`
	EquipmentCategory *string    `json:"equipment_category" db:"equipment_category"`
	AssignedTeamID    *uint64    `json:"assigned_team_id" db:"assigned_team_id"`
	AssignedToID      *uint64    `json:"assigned_to_id" db:"assigned_to_id"`
	AssignedToName    *string    `json:"assigned_to_name" db:"assigned_to_name"`
	Status            string     `json:"status" db:"status"`
	Priority          string     `json:"priority" db:"priority"`
	ScheduledDate     *time.Time `json:"scheduled_date" db:"scheduled_date"`
	IsOverdue         bool       `json:"is_overdue" db:"is_overdue"`
	HoursSpent        *float64   `json:"hours_spent" db:"hours_spent"`
	CreatedDate       time.Time  `json:"created_date" db:"created_date"`
	CompletedDate     *time.Time `json:"completed_date" db:"completed_date"`
	Notes             *string    `json:"notes" db:"notes"`
	CreatedByID       *uint64    `json:"created_by_id" db:"created_by_id"`
}

// MaintenanceRequestDetails - заявка с подтянутыми названиями оборудования и команды.
type MaintenanceRequestDetails struct {
	MaintenanceRequest
	EquipmentName *string `json:"equipment_name" db:"equipment_name"`
	SerialNumber  *string `json:"serial_number" db:"serial_number"`
	TeamName      *string `json:"team_name" db:"team_name"`
}
