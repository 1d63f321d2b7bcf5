package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"gearguard/internal/repositories"
	"gearguard/pkg/constants"
	"gearguard/pkg/types"
)

// Глубина помесячного тренда в отчёте производительности.
const trendMonths = 6

type ReportServiceInterface interface {
	GetDashboardStats(ctx context.Context) (*types.DashboardStats, error)
	GetEquipmentReport(ctx context.Context) ([]types.EquipmentReportItem, error)
	GetTeamReport(ctx context.Context) ([]types.TeamReportItem, error)
	GetTechnicianReport(ctx context.Context) ([]types.TechnicianReportItem, error)
	GetPerformanceReport(ctx context.Context) (*types.PerformanceReport, error)
	GetDowntimeReport(ctx context.Context) ([]types.DowntimeItem, error)
	GetWorkloadReport(ctx context.Context) ([]types.WorkloadItem, error)
}

type reportService struct {
	reportRepo repositories.ReportRepositoryInterface
	logger     *zap.Logger
	now        func() time.Time
}

func NewReportService(
	reportRepo repositories.ReportRepositoryInterface,
	logger *zap.Logger,
) ReportServiceInterface {
	return &reportService{
		reportRepo: reportRepo,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *reportService) GetDashboardStats(ctx context.Context) (*types.DashboardStats, error) {
	totals, err := s.reportRepo.GetDashboardTotals(ctx)
	if err != nil {
		return nil, err
	}
	breakdown, err := s.reportRepo.GetStatusBreakdown(ctx)
	if err != nil {
		return nil, err
	}

	statuses := make(map[string]int64, len(breakdown))
	for _, row := range breakdown {
		statuses[row.Status] = row.Count
	}

	return &types.DashboardStats{
		TotalRequests:   totals.TotalRequests,
		StatusBreakdown: statuses,
		OverdueCount:    totals.OverdueCount,
		CompletionRate:  rateOrZero(statuses[constants.RequestStatusRepaired], totals.TotalRequests),
		AvgHours:        hours(totals.AvgHours),
		EquipmentCount:  totals.EquipmentCount,
		TeamMembers:     totals.TeamMembers,
		Timestamp:       s.now(),
	}, nil
}

func (s *reportService) GetEquipmentReport(ctx context.Context) ([]types.EquipmentReportItem, error) {
	rows, err := s.reportRepo.GetEquipmentReport(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]types.EquipmentReportItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, types.EquipmentReportItem{
			EquipmentID:       r.ID,
			EquipmentName:     r.EquipmentName,
			Category:          r.Category,
			TotalRequests:     r.TotalRequests,
			CompletedRequests: r.CompletedRequests,
			OverdueRequests:   r.OverdueRequests,
			CompletionRate:    rateOrNA(r.CompletedRequests, r.TotalRequests),
			AvgHoursSpent:     hours(r.AvgHoursSpent),
			LastRequestDate:   r.LastRequestDate,
		})
	}
	return items, nil
}

func (s *reportService) GetTeamReport(ctx context.Context) ([]types.TeamReportItem, error) {
	rows, err := s.reportRepo.GetTeamReport(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]types.TeamReportItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, types.TeamReportItem{
			TeamID:             r.ID,
			TeamName:           r.TeamName,
			TotalRequests:      r.TotalRequests,
			CompletedRequests:  r.CompletedRequests,
			InProgress:         r.InProgress,
			TotalHoursSpent:    hours(r.TotalHoursSpent),
			AvgHoursPerRequest: hours(r.AvgHoursPerRequest),
			EfficiencyRate:     rateOrNA(r.CompletedRequests, r.TotalRequests),
		})
	}
	return items, nil
}

func (s *reportService) GetTechnicianReport(ctx context.Context) ([]types.TechnicianReportItem, error) {
	rows, err := s.reportRepo.GetTechnicianReport(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]types.TechnicianReportItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, types.TechnicianReportItem{
			TechnicianID:      r.ID,
			TechnicianName:    r.TechnicianName,
			Role:              r.Role,
			AssignedRequests:  r.AssignedRequests,
			CompletedRequests: r.CompletedRequests,
			InProgress:        r.InProgress,
			TotalHoursSpent:   hours(r.TotalHoursSpent),
			AvgHoursPerJob:    hours(r.AvgHoursPerJob),
			ProductivityRate:  rateOrNA(r.CompletedRequests, r.AssignedRequests),
		})
	}
	return items, nil
}

func (s *reportService) GetPerformanceReport(ctx context.Context) (*types.PerformanceReport, error) {
	overall, err := s.reportRepo.GetPerformanceOverall(ctx)
	if err != nil {
		return nil, err
	}
	trends, err := s.reportRepo.GetMonthlyTrends(ctx, trendMonths)
	if err != nil {
		return nil, err
	}

	report := &types.PerformanceReport{
		Overall: types.PerformanceOverall{
			TotalRequests:      overall.TotalRequests,
			CompletedRequests:  overall.TotalCompleted,
			OverdueRequests:    overall.TotalOverdue,
			CompletionRate:     rateOrZero(overall.TotalCompleted, overall.TotalRequests),
			OverdueRate:        rateOrZero(overall.TotalOverdue, overall.TotalRequests),
			AvgHoursPerRequest: hours(overall.AvgHours),
			FirstRequestDate:   overall.FirstRequestDate,
			LastRequestDate:    overall.LastRequestDate,
		},
		MonthlyTrends: make([]types.MonthlyTrend, 0, len(trends)),
	}
	for _, m := range trends {
		report.MonthlyTrends = append(report.MonthlyTrends, types.MonthlyTrend{
			Month:                m.Month,
			TotalRequests:        m.Requests,
			Completed:            m.Completed,
			Overdue:              m.Overdue,
			CompletionPercentage: rateOrNA(m.Completed, m.Requests),
		})
	}
	return report, nil
}

func (s *reportService) GetDowntimeReport(ctx context.Context) ([]types.DowntimeItem, error) {
	rows, err := s.reportRepo.GetDowntimeReport(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]types.DowntimeItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, types.DowntimeItem{
			EquipmentID:           r.ID,
			EquipmentName:         r.EquipmentName,
			MaintenanceEvents:     r.MaintenanceEvents,
			CurrentPendingTasks:   r.CurrentPending,
			TotalMaintenanceHours: hours(r.TotalMaintenanceHours),
			LastMaintenanceDate:   r.LastMaintenanceDate,
			RiskLevel:             RiskLevel(r.CurrentPending),
		})
	}
	return items, nil
}

func (s *reportService) GetWorkloadReport(ctx context.Context) ([]types.WorkloadItem, error) {
	rows, err := s.reportRepo.GetWorkloadReport(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]types.WorkloadItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, types.WorkloadItem{
			TeamID:              r.TeamID,
			TeamName:            r.TeamName,
			TotalAssigned:       r.TotalAssigned,
			NewRequests:         r.NewRequests,
			InProgress:          r.InProgress,
			CriticalTasks:       r.CriticalTasks,
			WorkloadStatus:      WorkloadStatus(r.InProgress),
			AvgDaysToCompletion: constants.NotAvailable,
		})
	}
	return items, nil
}
