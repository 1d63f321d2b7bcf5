package entities

import "time"

type Team struct {
	ID             uint64    `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Description    *string   `json:"description" db:"description"`
	TeamLeadID     *uint64   `json:"team_lead_id" db:"team_lead_id"`
	Specialization *string   `json:"specialization" db:"specialization"`
	IsActive       bool      `json:"is_active" db:"is_active"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// TeamSummary - строка списка команд с агрегатами.
type TeamSummary struct {
	Team
	MemberCount  int64   `json:"member_count" db:"member_count"`
	TeamLeadName *string `json:"team_lead_name" db:"team_lead_name"`
}

type TeamMember struct {
	ID       uint64    `json:"id" db:"id"`
	Name     string    `json:"name" db:"name"`
	Email    string    `json:"email" db:"email"`
	Role     string    `json:"role" db:"role"`
	JoinedAt time.Time `json:"joined_at" db:"joined_at"`
}
