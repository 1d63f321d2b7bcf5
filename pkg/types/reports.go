package types

import "time"

// ----- Сырые строки из БД (сканируются через pgx.RowToStructByName) -----

type StatusCount struct {
	Status string `db:"status"`
	Count  int64  `db:"count"`
}

type DashboardTotals struct {
	TotalRequests  int64    `db:"total_requests"`
	OverdueCount   int64    `db:"overdue_count"`
	AvgHours       *float64 `db:"avg_hours"`
	EquipmentCount int64    `db:"equipment_count"`
	TeamMembers    int64    `db:"team_members"`
}

type EquipmentReportRow struct {
	ID                uint64     `db:"id"`
	EquipmentName     string     `db:"equipment_name"`
	Category          string     `db:"category"`
	TotalRequests     int64      `db:"total_requests"`
	CompletedRequests int64      `db:"completed_requests"`
	OverdueRequests   int64      `db:"overdue_requests"`
	AvgHoursSpent     *float64   `db:"avg_hours_spent"`
	LastRequestDate   *time.Time `db:"last_request_date"`
}

type TeamReportRow struct {
	ID                 uint64   `db:"id"`
	TeamName           string   `db:"team_name"`
	TotalRequests      int64    `db:"total_requests"`
	CompletedRequests  int64    `db:"completed_requests"`
	InProgress         int64    `db:"in_progress"`
	TotalHoursSpent    *float64 `db:"total_hours_spent"`
	AvgHoursPerRequest *float64 `db:"avg_hours_per_request"`
}

type TechnicianReportRow struct {
	ID                uint64   `db:"id"`
	TechnicianName    string   `db:"technician_name"`
	Role              string   `db:"role"`
	AssignedRequests  int64    `db:"assigned_requests"`
	CompletedRequests int64    `db:"completed_requests"`
	InProgress        int64    `db:"in_progress"`
	TotalHoursSpent   *float64 `db:"total_hours_spent"`
	AvgHoursPerJob    *float64 `db:"avg_hours_per_job"`
}

type PerformanceOverallRow struct {
	TotalRequests    int64      `db:"total_requests"`
	TotalCompleted   int64      `db:"total_completed"`
	TotalOverdue     int64      `db:"total_overdue"`
	AvgHours         *float64   `db:"avg_hours"`
	FirstRequestDate *time.Time `db:"first_request_date"`
	LastRequestDate  *time.Time `db:"last_request_date"`
}

type MonthlyTrendRow struct {
	Month     string `db:"month"`
	Requests  int64  `db:"requests"`
	Completed int64  `db:"completed"`
	Overdue   int64  `db:"overdue"`
}

type DowntimeRow struct {
	ID                    uint64     `db:"id"`
	EquipmentName         string     `db:"equipment_name"`
	MaintenanceEvents     int64      `db:"maintenance_events"`
	CurrentPending        int64      `db:"current_pending"`
	TotalMaintenanceHours *float64   `db:"total_maintenance_hours"`
	LastMaintenanceDate   *time.Time `db:"last_maintenance_date"`
}

type WorkloadRow struct {
	TeamID        uint64 `db:"team_id"`
	TeamName      string `db:"team_name"`
	TotalAssigned int64  `db:"total_assigned"`
	NewRequests   int64  `db:"new_requests"`
	InProgress    int64  `db:"in_progress"`
	CriticalTasks int64  `db:"critical_tasks"`
}

// ----- То, что уходит клиенту -----

type DashboardStats struct {
	TotalRequests   int64            `json:"totalRequests"`
	StatusBreakdown map[string]int64 `json:"statusBreakdown"`
	OverdueCount    int64            `json:"overdueCount"`
	CompletionRate  string           `json:"completionRate"`
	AvgHours        float64          `json:"avgHours"`
	EquipmentCount  int64            `json:"equipmentCount"`
	TeamMembers     int64            `json:"teamMembers"`
	Timestamp       time.Time        `json:"timestamp"`
}

type EquipmentReportItem struct {
	EquipmentID       uint64     `json:"equipment_id"`
	EquipmentName     string     `json:"equipment_name"`
	Category          string     `json:"category"`
	TotalRequests     int64      `json:"total_requests"`
	CompletedRequests int64      `json:"completed_requests"`
	OverdueRequests   int64      `json:"overdue_requests"`
	CompletionRate    string     `json:"completion_rate"`
	AvgHoursSpent     float64    `json:"avg_hours_spent"`
	LastRequestDate   *time.Time `json:"last_request_date"`
}

type TeamReportItem struct {
	TeamID             uint64  `json:"team_id"`
	TeamName           string  `json:"team_name"`
	TotalRequests      int64   `json:"total_requests"`
	CompletedRequests  int64   `json:"completed_requests"`
	InProgress         int64   `json:"in_progress"`
	TotalHoursSpent    float64 `json:"total_hours_spent"`
	AvgHoursPerRequest float64 `json:"avg_hours_per_request"`
	EfficiencyRate     string  `json:"efficiency_rate"`
}

type TechnicianReportItem struct {
	TechnicianID      uint64  `json:"technician_id"`
	TechnicianName    string  `json:"technician_name"`
	Role              string  `json:"role"`
	AssignedRequests  int64   `json:"assigned_requests"`
	CompletedRequests int64   `json:"completed_requests"`
	InProgress        int64   `json:"in_progress"`
	TotalHoursSpent   float64 `json:"total_hours_spent"`
	AvgHoursPerJob    float64 `json:"avg_hours_per_job"`
	ProductivityRate  string  `json:"productivity_rate"`
}

type PerformanceOverall struct {
	TotalRequests      int64      `json:"total_requests"`
	CompletedRequests  int64      `json:"completed_requests"`
	OverdueRequests    int64      `json:"overdue_requests"`
	CompletionRate     string     `json:"completion_rate"`
	OverdueRate        string     `json:"overdue_rate"`
	AvgHoursPerRequest float64    `json:"avg_hours_per_request"`
	FirstRequestDate   *time.Time `json:"first_request_date"`
	LastRequestDate    *time.Time `json:"last_request_date"`
}

type MonthlyTrend struct {
	Month                string `json:"month"`
	TotalRequests        int64  `json:"total_requests"`
	Completed            int64  `json:"completed"`
	Overdue              int64  `json:"overdue"`
	CompletionPercentage string `json:"completion_percentage"`
}

type PerformanceReport struct {
	Overall       PerformanceOverall `json:"overall"`
	MonthlyTrends []MonthlyTrend     `json:"monthly_trends"`
}

type DowntimeItem struct {
	EquipmentID           uint64     `json:"equipment_id"`
	EquipmentName         string     `json:"equipment_name"`
	MaintenanceEvents     int64      `json:"maintenance_events"`
	CurrentPendingTasks   int64      `json:"current_pending_tasks"`
	TotalMaintenanceHours float64    `json:"total_maintenance_hours"`
	LastMaintenanceDate   *time.Time `json:"last_maintenance_date"`
	RiskLevel             string     `json:"risk_level"`
}

type WorkloadItem struct {
	TeamID              uint64 `json:"team_id"`
	TeamName            string `json:"team_name"`
	TotalAssigned       int64  `json:"total_assigned"`
	NewRequests         int64  `json:"new_requests"`
	InProgress          int64  `json:"in_progress"`
	CriticalTasks       int64  `json:"critical_tasks"`
	WorkloadStatus      string `json:"workload_status"`
	AvgDaysToCompletion string `json:"avg_days_to_completion"`
}
