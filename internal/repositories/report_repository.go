package repositories

import (
	"context"
	"fmt"

	"gearguard/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Агрегаты просрочки в отчётах считаются тем же живым условием, что и в списках заявок.
const (
	sumRepaired   = "COUNT(r.id) FILTER (WHERE r.status = 'Repaired')"
	sumInProgress = "COUNT(r.id) FILTER (WHERE r.status = 'In Progress')"
	sumOverdue    = "COUNT(r.id) FILTER (WHERE " + overdueCondition + ")"
)

type ReportRepositoryInterface interface {
	GetStatusBreakdown(ctx context.Context) ([]types.StatusCount, error)
	GetDashboardTotals(ctx context.Context) (*types.DashboardTotals, error)
	GetEquipmentReport(ctx context.Context) ([]types.EquipmentReportRow, error)
	GetTeamReport(ctx context.Context) ([]types.TeamReportRow, error)
	GetTechnicianReport(ctx context.Context) ([]types.TechnicianReportRow, error)
	GetPerformanceOverall(ctx context.Context) (*types.PerformanceOverallRow, error)
	GetMonthlyTrends(ctx context.Context, months int) ([]types.MonthlyTrendRow, error)
	GetDowntimeReport(ctx context.Context) ([]types.DowntimeRow, error)
	GetWorkloadReport(ctx context.Context) ([]types.WorkloadRow, error)
}

type reportRepository struct {
	db *pgxpool.Pool
}

func NewReportRepository(db *pgxpool.Pool) ReportRepositoryInterface {
	return &reportRepository{db: db}
}

func collectReport[T any](ctx context.Context, db *pgxpool.Pool, b sq.SelectBuilder) ([]T, error) {
	query, args, err := b.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса отчёта: %w", err)
	}
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса отчёта: %w", err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения строк отчёта: %w", err)
	}
	return items, nil
}

func (r *reportRepository) GetStatusBreakdown(ctx context.Context) ([]types.StatusCount, error) {
	b := sq.Select("status", "COUNT(*) AS count").
		From("maintenance_requests").
		GroupBy("status").
		OrderBy("status")
	return collectReport[types.StatusCount](ctx, r.db, b)
}

func (r *reportRepository) GetDashboardTotals(ctx context.Context) (*types.DashboardTotals, error) {
	b := sq.Select(
		"(SELECT COUNT(*) FROM maintenance_requests) AS total_requests",
		"(SELECT COUNT(*) FROM maintenance_requests r WHERE "+overdueCondition+") AS overdue_count",
		"(SELECT AVG(hours_spent)::float8 FROM maintenance_requests WHERE hours_spent > 0) AS avg_hours",
		"(SELECT COUNT(*) FROM equipment) AS equipment_count",
		"(SELECT COUNT(*) FROM users WHERE role IN ('technician', 'supervisor')) AS team_members",
	)
	items, err := collectReport[types.DashboardTotals](ctx, r.db, b)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return &types.DashboardTotals{}, nil
	}
	return &items[0], nil
}

func (r *reportRepository) GetEquipmentReport(ctx context.Context) ([]types.EquipmentReportRow, error) {
	b := sq.Select(
		"e.id", "e.name AS equipment_name", "e.category",
		"COUNT(r.id) AS total_requests",
		sumRepaired+" AS completed_requests",
		sumOverdue+" AS overdue_requests",
		"AVG(r.hours_spent)::float8 AS avg_hours_spent",
		"MAX(r.created_date) AS last_request_date",
	).
		From("equipment e").
		LeftJoin("maintenance_requests r ON e.id = r.equipment_id").
		GroupBy("e.id", "e.name", "e.category").
		OrderBy("total_requests DESC", "e.id ASC")
	return collectReport[types.EquipmentReportRow](ctx, r.db, b)
}

func (r *reportRepository) GetTeamReport(ctx context.Context) ([]types.TeamReportRow, error) {
	b := sq.Select(
		"t.id", "t.name AS team_name",
		"COUNT(r.id) AS total_requests",
		sumRepaired+" AS completed_requests",
		sumInProgress+" AS in_progress",
		"SUM(r.hours_spent)::float8 AS total_hours_spent",
		"AVG(r.hours_spent)::float8 AS avg_hours_per_request",
	).
		From("maintenance_teams t").
		LeftJoin("maintenance_requests r ON t.id = r.assigned_team_id").
		GroupBy("t.id", "t.name").
		OrderBy("total_requests DESC", "t.id ASC")
	return collectReport[types.TeamReportRow](ctx, r.db, b)
}

func (r *reportRepository) GetTechnicianReport(ctx context.Context) ([]types.TechnicianReportRow, error) {
	b := sq.Select(
		"u.id", "u.name AS technician_name", "u.role",
		"COUNT(r.id) AS assigned_requests",
		sumRepaired+" AS completed_requests",
		sumInProgress+" AS in_progress",
		"SUM(r.hours_spent)::float8 AS total_hours_spent",
		"AVG(r.hours_spent)::float8 AS avg_hours_per_job",
	).
		From("users u").
		LeftJoin("maintenance_requests r ON u.id = r.assigned_to_id").
		Where(sq.Eq{"u.role": []string{"technician", "supervisor"}}).
		GroupBy("u.id", "u.name", "u.role").
		OrderBy("completed_requests DESC", "u.id ASC")
	return collectReport[types.TechnicianReportRow](ctx, r.db, b)
}

func (r *reportRepository) GetPerformanceOverall(ctx context.Context) (*types.PerformanceOverallRow, error) {
	b := sq.Select(
		"COUNT(r.id) AS total_requests",
		sumRepaired+" AS total_completed",
		sumOverdue+" AS total_overdue",
		"AVG(r.hours_spent)::float8 AS avg_hours",
		"MIN(r.created_date) AS first_request_date",
		"MAX(r.created_date) AS last_request_date",
	).From("maintenance_requests r")
	items, err := collectReport[types.PerformanceOverallRow](ctx, r.db, b)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return &types.PerformanceOverallRow{}, nil
	}
	return &items[0], nil
}

// GetMonthlyTrends - помесячные корзины за последние months месяцев, новые сверху.
func (r *reportRepository) GetMonthlyTrends(ctx context.Context, months int) ([]types.MonthlyTrendRow, error) {
	b := sq.Select(
		"to_char(r.created_date, 'YYYY-MM') AS month",
		"COUNT(r.id) AS requests",
		sumRepaired+" AS completed",
		sumOverdue+" AS overdue",
	).
		From("maintenance_requests r").
		Where(sq.Expr("r.created_date >= NOW() - make_interval(months => ?)", months)).
		GroupBy("month").
		OrderBy("month DESC")
	return collectReport[types.MonthlyTrendRow](ctx, r.db, b)
}

func (r *reportRepository) GetDowntimeReport(ctx context.Context) ([]types.DowntimeRow, error) {
	b := sq.Select(
		"e.id", "e.name AS equipment_name",
		"COUNT(DISTINCT r.id) AS maintenance_events",
		"COUNT(r.id) FILTER (WHERE r.status IN ('New', 'In Progress')) AS current_pending",
		"SUM(r.hours_spent)::float8 AS total_maintenance_hours",
		"MAX(r.created_date) AS last_maintenance_date",
	).
		From("equipment e").
		LeftJoin("maintenance_requests r ON e.id = r.equipment_id").
		GroupBy("e.id", "e.name").
		Having("COUNT(DISTINCT r.id) > 0").
		OrderBy("total_maintenance_hours DESC NULLS LAST", "e.id ASC")
	return collectReport[types.DowntimeRow](ctx, r.db, b)
}

func (r *reportRepository) GetWorkloadReport(ctx context.Context) ([]types.WorkloadRow, error) {
	b := sq.Select(
		"t.id AS team_id", "t.name AS team_name",
		"COUNT(r.id) AS total_assigned",
		"COUNT(r.id) FILTER (WHERE r.status = 'New') AS new_requests",
		sumInProgress+" AS in_progress",
		"COUNT(r.id) FILTER (WHERE r.priority = 'Critical') AS critical_tasks",
	).
		From("maintenance_teams t").
		LeftJoin("maintenance_requests r ON t.id = r.assigned_team_id").
		GroupBy("t.id", "t.name").
		OrderBy("in_progress DESC", "critical_tasks DESC", "t.id ASC")
	return collectReport[types.WorkloadRow](ctx, r.db, b)
}
