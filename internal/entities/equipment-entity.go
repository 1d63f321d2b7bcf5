package entities

import "time"

type Equipment struct {
	ID             uint64     `json:"id" db:"id"`
	Name           string     `json:"name" db:"name"`
	SerialNumber   string     `json:"serial_number" db:"serial_number"`
	Category       string     `json:"category" db:"category"`
	Location       *string    `json:"location" db:"location"`
	Department     *string    `json:"department" db:"department"`
	PurchaseDate   *time.Time `json:"purchase_date" db:"purchase_date"`
	WarrantyExpiry *time.Time `json:"warranty_expiry" db:"warranty_expiry"`
	AssignedToID   *uint64    `json:"assigned_to_id" db:"assigned_to_id"`
	AssignedTeamID *uint64    `json:"assigned_team_id" db:"assigned_team_id"`
	Status         string     `json:"status" db:"status"`
	Notes          *string    `json:"notes" db:"notes"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
}
