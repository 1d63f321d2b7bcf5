package dto

import "github.com/aarondl/null/v8"

type CreateEquipmentDTO struct {
	Name           string  `json:"name" validate:"omitempty,max=255"`
	SerialNumber   string  `json:"serial_number" validate:"omitempty,max=255"`
	Category       *string `json:"category" validate:"omitempty,max=100"`
	Location       *string `json:"location"`
	Department     *string `json:"department"`
	PurchaseDate   *string `json:"purchase_date" validate:"omitempty,date_value"`
	WarrantyExpiry *string `json:"warranty_expiry" validate:"omitempty,date_value"`
	AssignedToID   *uint64 `json:"assigned_to_id" validate:"omitempty,gt=0"`
	AssignedTeamID *uint64 `json:"assigned_team_id" validate:"omitempty,gt=0"`
	Status         *string `json:"status" validate:"omitempty,max=50"`
	Notes          *string `json:"notes"`
}

// UpdateEquipmentDTO - слияние coalesce-on-null: null или отсутствие ключа = без изменений.
type UpdateEquipmentDTO struct {
	Name           null.String `json:"name" validate:"omitempty,max=255"`
	SerialNumber   null.String `json:"serial_number" validate:"omitempty,max=255"`
	Category       null.String `json:"category" validate:"omitempty,max=100"`
	Location       null.String `json:"location"`
	Department     null.String `json:"department"`
	PurchaseDate   null.String `json:"purchase_date" validate:"omitempty,date_value"`
	WarrantyExpiry null.String `json:"warranty_expiry" validate:"omitempty,date_value"`
	AssignedToID   null.Uint64 `json:"assigned_to_id"`
	AssignedTeamID null.Uint64 `json:"assigned_team_id"`
	Status         null.String `json:"status" validate:"omitempty,max=50"`
	Notes          null.String `json:"notes"`
}

type EquipmentFilter struct {
	Category   string
	Status     string
	Department string
}

type CreatedEquipmentDTO struct {
	ID           uint64 `json:"id"`
	Name         string `json:"name"`
	SerialNumber string `json:"serial_number"`
	Category     string `json:"category"`
	Status       string `json:"status"`
}
