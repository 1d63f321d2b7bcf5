package services

import (
	"context"
	"testing"
	"time"

	"gearguard/pkg/types"
	"gearguard/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newReportService(repo *MockReportRepository) *reportService {
	svc := NewReportService(repo, zap.NewNop()).(*reportService)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestFormatRate(t *testing.T) {
	assert.Equal(t, "N/A", FormatRate(0, 0, "N/A"))
	assert.Equal(t, "0%", FormatRate(3, 0, "0%"))
	assert.Equal(t, "33.33%", FormatRate(1, 3, "N/A"))
	assert.Equal(t, "100.00%", FormatRate(4, 4, "N/A"))
	assert.Equal(t, "0.00%", FormatRate(0, 5, "N/A"))
}

func TestRiskLevelAndWorkloadThresholds(t *testing.T) {
	assert.Equal(t, RiskLow, RiskLevel(0))
	assert.Equal(t, RiskLow, RiskLevel(1))
	assert.Equal(t, RiskMedium, RiskLevel(2))
	assert.Equal(t, RiskMedium, RiskLevel(3))
	assert.Equal(t, RiskHigh, RiskLevel(4))

	assert.Equal(t, WorkloadAvailable, WorkloadStatus(2))
	assert.Equal(t, WorkloadBusy, WorkloadStatus(3))
	assert.Equal(t, WorkloadBusy, WorkloadStatus(5))
	assert.Equal(t, WorkloadOverloaded, WorkloadStatus(6))
}

func TestDashboardWithNoRequests(t *testing.T) {
	repo := new(MockReportRepository)
	repo.On("GetDashboardTotals", mock.Anything).Return(&types.DashboardTotals{EquipmentCount: 2}, nil)
	repo.On("GetStatusBreakdown", mock.Anything).Return([]types.StatusCount{}, nil)

	stats, err := newReportService(repo).GetDashboardStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(0), stats.TotalRequests)
	assert.Equal(t, "0%", stats.CompletionRate)
	assert.Equal(t, 0.0, stats.AvgHours)
	assert.Equal(t, int64(2), stats.EquipmentCount)
	assert.Empty(t, stats.StatusBreakdown)
	assert.Equal(t, fixedNow, stats.Timestamp)
}

func TestDashboardCompletionRate(t *testing.T) {
	repo := new(MockReportRepository)
	repo.On("GetDashboardTotals", mock.Anything).Return(&types.DashboardTotals{
		TotalRequests: 8,
		OverdueCount:  1,
		AvgHours:      utils.ToPtr(2.456),
		TeamMembers:   3,
	}, nil)
	repo.On("GetStatusBreakdown", mock.Anything).Return([]types.StatusCount{
		{Status: "New", Count: 5},
		{Status: "Repaired", Count: 3},
	}, nil)

	stats, err := newReportService(repo).GetDashboardStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "37.50%", stats.CompletionRate)
	assert.Equal(t, 2.46, stats.AvgHours)
	assert.Equal(t, int64(5), stats.StatusBreakdown["New"])
	assert.Equal(t, int64(1), stats.OverdueCount)
}

func TestEquipmentReportNullAggregates(t *testing.T) {
	repo := new(MockReportRepository)
	repo.On("GetEquipmentReport", mock.Anything).Return([]types.EquipmentReportRow{
		{ID: 1, EquipmentName: "Lathe", Category: "Machinery"},
		{ID: 2, EquipmentName: "Press", TotalRequests: 4, CompletedRequests: 1, AvgHoursSpent: utils.ToPtr(3.0)},
	}, nil)

	items, err := newReportService(repo).GetEquipmentReport(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "N/A", items[0].CompletionRate)
	assert.Equal(t, 0.0, items[0].AvgHoursSpent)
	assert.Equal(t, "25.00%", items[1].CompletionRate)
	assert.Equal(t, 3.0, items[1].AvgHoursSpent)
}

func TestPerformanceReport(t *testing.T) {
	repo := new(MockReportRepository)
	repo.On("GetPerformanceOverall", mock.Anything).Return(&types.PerformanceOverallRow{}, nil)
	repo.On("GetMonthlyTrends", mock.Anything, 6).Return([]types.MonthlyTrendRow{
		{Month: "2026-03", Requests: 4, Completed: 2, Overdue: 1},
	}, nil)

	report, err := newReportService(repo).GetPerformanceReport(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "0%", report.Overall.CompletionRate)
	assert.Equal(t, "0%", report.Overall.OverdueRate)
	require.Len(t, report.MonthlyTrends, 1)
	assert.Equal(t, "50.00%", report.MonthlyTrends[0].CompletionPercentage)
	assert.Equal(t, int64(4), report.MonthlyTrends[0].TotalRequests)
}

func TestDowntimeAndWorkloadClassification(t *testing.T) {
	repo := new(MockReportRepository)
	repo.On("GetDowntimeReport", mock.Anything).Return([]types.DowntimeRow{
		{ID: 1, EquipmentName: "Lathe", MaintenanceEvents: 6, CurrentPending: 4},
	}, nil)
	repo.On("GetWorkloadReport", mock.Anything).Return([]types.WorkloadRow{
		{TeamID: 1, TeamName: "Mechanics", InProgress: 6},
		{TeamID: 2, TeamName: "IT"},
	}, nil)
	svc := newReportService(repo)

	downtime, err := svc.GetDowntimeReport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, RiskHigh, downtime[0].RiskLevel)
	assert.Equal(t, 0.0, downtime[0].TotalMaintenanceHours)

	workload, err := svc.GetWorkloadReport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, WorkloadOverloaded, workload[0].WorkloadStatus)
	assert.Equal(t, WorkloadAvailable, workload[1].WorkloadStatus)
	assert.Equal(t, "N/A", workload[1].AvgDaysToCompletion)
}

func TestTeamAndTechnicianRates(t *testing.T) {
	repo := new(MockReportRepository)
	repo.On("GetTeamReport", mock.Anything).Return([]types.TeamReportRow{
		{ID: 1, TeamName: "Mechanics", TotalRequests: 2, CompletedRequests: 2, TotalHoursSpent: utils.ToPtr(7.125)},
	}, nil)
	repo.On("GetTechnicianReport", mock.Anything).Return([]types.TechnicianReportRow{
		{ID: 9, TechnicianName: "Anna", Role: "technician"},
	}, nil)
	svc := newReportService(repo)

	teams, err := svc.GetTeamReport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "100.00%", teams[0].EfficiencyRate)
	assert.Equal(t, 7.13, teams[0].TotalHoursSpent)

	techs, err := svc.GetTechnicianReport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "N/A", techs[0].ProductivityRate)
}
