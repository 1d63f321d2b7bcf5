package services

import (
	"context"
	"time"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/pkg/types"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

// fakeTxManager выполняет fn без транзакции: репозитории замоканы, tx им не нужен.
type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(_ context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

type MockRequestRepository struct{ mock.Mock }

func (m *MockRequestRepository) GetRequests(ctx context.Context, filter dto.RequestFilter) ([]entities.MaintenanceRequestDetails, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.MaintenanceRequestDetails), args.Error(1)
}

func (m *MockRequestRepository) GetOverdueRequests(ctx context.Context) ([]entities.MaintenanceRequestDetails, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.MaintenanceRequestDetails), args.Error(1)
}

func (m *MockRequestRepository) GetPreventiveCalendar(ctx context.Context, from, to *time.Time) ([]entities.MaintenanceRequestDetails, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.MaintenanceRequestDetails), args.Error(1)
}

func (m *MockRequestRepository) FindRequest(ctx context.Context, id uint64) (*entities.MaintenanceRequestDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.MaintenanceRequestDetails), args.Error(1)
}

func (m *MockRequestRepository) FindRequestForUpdate(ctx context.Context, tx pgx.Tx, id uint64) (*entities.MaintenanceRequest, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.MaintenanceRequest), args.Error(1)
}

func (m *MockRequestRepository) NextRequestSequence(ctx context.Context, tx pgx.Tx) (uint64, error) {
	args := m.Called(ctx, tx)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockRequestRepository) CreateRequestInTx(ctx context.Context, tx pgx.Tx, req *entities.MaintenanceRequest) error {
	return m.Called(ctx, tx, req).Error(0)
}

func (m *MockRequestRepository) UpdateRequestInTx(ctx context.Context, tx pgx.Tx, req *entities.MaintenanceRequest) error {
	return m.Called(ctx, tx, req).Error(0)
}

func (m *MockRequestRepository) DeleteRequest(ctx context.Context, id uint64) error {
	return m.Called(ctx, id).Error(0)
}

type MockEquipmentRepository struct{ mock.Mock }

func (m *MockEquipmentRepository) GetEquipments(ctx context.Context, filter dto.EquipmentFilter) ([]entities.Equipment, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Equipment), args.Error(1)
}

func (m *MockEquipmentRepository) SearchEquipment(ctx context.Context, term string) ([]entities.Equipment, error) {
	args := m.Called(ctx, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Equipment), args.Error(1)
}

func (m *MockEquipmentRepository) FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Equipment), args.Error(1)
}

func (m *MockEquipmentRepository) FindEquipmentInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Equipment, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Equipment), args.Error(1)
}

func (m *MockEquipmentRepository) FindEquipmentForUpdate(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Equipment, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Equipment), args.Error(1)
}

func (m *MockEquipmentRepository) CreateEquipment(ctx context.Context, e *entities.Equipment) (*entities.Equipment, error) {
	args := m.Called(ctx, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Equipment), args.Error(1)
}

func (m *MockEquipmentRepository) UpdateEquipmentInTx(ctx context.Context, tx pgx.Tx, e *entities.Equipment) error {
	return m.Called(ctx, tx, e).Error(0)
}

func (m *MockEquipmentRepository) UpdateEquipmentStatusInTx(ctx context.Context, tx pgx.Tx, id uint64, status string) error {
	return m.Called(ctx, tx, id, status).Error(0)
}

func (m *MockEquipmentRepository) DeleteEquipment(ctx context.Context, id uint64) error {
	return m.Called(ctx, id).Error(0)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) GetUsers(ctx context.Context) ([]entities.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, id uint64) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByIDInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.User, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *entities.User) (*entities.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

type MockTeamRepository struct{ mock.Mock }

func (m *MockTeamRepository) GetTeams(ctx context.Context) ([]entities.TeamSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.TeamSummary), args.Error(1)
}

func (m *MockTeamRepository) FindTeam(ctx context.Context, id uint64) (*entities.Team, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Team), args.Error(1)
}

func (m *MockTeamRepository) FindTeamForUpdate(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Team, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Team), args.Error(1)
}

func (m *MockTeamRepository) CreateTeam(ctx context.Context, team *entities.Team) (*entities.Team, error) {
	args := m.Called(ctx, team)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Team), args.Error(1)
}

func (m *MockTeamRepository) UpdateTeamInTx(ctx context.Context, tx pgx.Tx, team *entities.Team) error {
	return m.Called(ctx, tx, team).Error(0)
}

func (m *MockTeamRepository) DeleteTeam(ctx context.Context, id uint64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockTeamRepository) GetMembers(ctx context.Context, teamID uint64) ([]entities.TeamMember, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.TeamMember), args.Error(1)
}

func (m *MockTeamRepository) AddMemberInTx(ctx context.Context, tx pgx.Tx, teamID, userID uint64) error {
	return m.Called(ctx, tx, teamID, userID).Error(0)
}

func (m *MockTeamRepository) RemoveMember(ctx context.Context, teamID, userID uint64) error {
	return m.Called(ctx, teamID, userID).Error(0)
}

type MockReportRepository struct{ mock.Mock }

func (m *MockReportRepository) GetStatusBreakdown(ctx context.Context) ([]types.StatusCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.StatusCount), args.Error(1)
}

func (m *MockReportRepository) GetDashboardTotals(ctx context.Context) (*types.DashboardTotals, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.DashboardTotals), args.Error(1)
}

func (m *MockReportRepository) GetEquipmentReport(ctx context.Context) ([]types.EquipmentReportRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.EquipmentReportRow), args.Error(1)
}

func (m *MockReportRepository) GetTeamReport(ctx context.Context) ([]types.TeamReportRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.TeamReportRow), args.Error(1)
}

func (m *MockReportRepository) GetTechnicianReport(ctx context.Context) ([]types.TechnicianReportRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.TechnicianReportRow), args.Error(1)
}

func (m *MockReportRepository) GetPerformanceOverall(ctx context.Context) (*types.PerformanceOverallRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.PerformanceOverallRow), args.Error(1)
}

func (m *MockReportRepository) GetMonthlyTrends(ctx context.Context, months int) ([]types.MonthlyTrendRow, error) {
	args := m.Called(ctx, months)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.MonthlyTrendRow), args.Error(1)
}

func (m *MockReportRepository) GetDowntimeReport(ctx context.Context) ([]types.DowntimeRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.DowntimeRow), args.Error(1)
}

func (m *MockReportRepository) GetWorkloadReport(ctx context.Context) ([]types.WorkloadRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.WorkloadRow), args.Error(1)
}

// memoryCache - CacheRepositoryInterface в памяти, без TTL.
type memoryCache struct {
	data map[string]string
	ints map[string]int64
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string]string{}, ints: map[string]int64{}}
}

func (c *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.data[key] = "set"
	return nil
}

func (c *memoryCache) Get(_ context.Context, key string) (string, error) {
	v, ok := c.data[key]
	if !ok {
		return "", context.Canceled
	}
	return v, nil
}

func (c *memoryCache) Exists(_ context.Context, key string) (bool, error) {
	_, ok := c.data[key]
	return ok, nil
}

func (c *memoryCache) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.data, k)
		delete(c.ints, k)
	}
	return nil
}

func (c *memoryCache) Incr(_ context.Context, key string) (int64, error) {
	c.ints[key]++
	return c.ints[key], nil
}

func (c *memoryCache) Expire(_ context.Context, _ string, _ time.Duration) (bool, error) {
	return true, nil
}
