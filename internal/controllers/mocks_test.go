package controllers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/pkg/types"
	"gearguard/pkg/validation"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRequestService struct{ mock.Mock }

func (m *MockRequestService) GetRequests(ctx context.Context, filter dto.RequestFilter) ([]entities.MaintenanceRequestDetails, error) {
	args := m.Called(ctx, filter)
	res, _ := args.Get(0).([]entities.MaintenanceRequestDetails)
	return res, args.Error(1)
}

func (m *MockRequestService) GetKanban(ctx context.Context, filter dto.RequestFilter) ([]dto.KanbanColumnDTO, error) {
	args := m.Called(ctx, filter)
	res, _ := args.Get(0).([]dto.KanbanColumnDTO)
	return res, args.Error(1)
}

func (m *MockRequestService) GetCalendar(ctx context.Context, from, to *time.Time) ([]entities.MaintenanceRequestDetails, error) {
	args := m.Called(ctx, from, to)
	res, _ := args.Get(0).([]entities.MaintenanceRequestDetails)
	return res, args.Error(1)
}

func (m *MockRequestService) GetOverdueRequests(ctx context.Context) ([]entities.MaintenanceRequestDetails, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).([]entities.MaintenanceRequestDetails)
	return res, args.Error(1)
}

func (m *MockRequestService) FindRequest(ctx context.Context, id uint64) (*entities.MaintenanceRequestDetails, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*entities.MaintenanceRequestDetails)
	return res, args.Error(1)
}

func (m *MockRequestService) CreateRequest(ctx context.Context, payload dto.CreateRequestDTO) (*dto.CreatedRequestDTO, error) {
	args := m.Called(ctx, payload)
	res, _ := args.Get(0).(*dto.CreatedRequestDTO)
	return res, args.Error(1)
}

func (m *MockRequestService) UpdateRequest(ctx context.Context, id uint64, payload dto.UpdateRequestDTO) error {
	return m.Called(ctx, id, payload).Error(0)
}

func (m *MockRequestService) UpdateStatus(ctx context.Context, id uint64, payload dto.UpdateRequestStatusDTO) error {
	return m.Called(ctx, id, payload).Error(0)
}

func (m *MockRequestService) AssignRequest(ctx context.Context, id uint64, payload dto.AssignRequestDTO) error {
	return m.Called(ctx, id, payload).Error(0)
}

func (m *MockRequestService) DeleteRequest(ctx context.Context, id uint64) error {
	return m.Called(ctx, id).Error(0)
}

type MockReportService struct{ mock.Mock }

func (m *MockReportService) GetDashboardStats(ctx context.Context) (*types.DashboardStats, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).(*types.DashboardStats)
	return res, args.Error(1)
}

func (m *MockReportService) GetEquipmentReport(ctx context.Context) ([]types.EquipmentReportItem, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).([]types.EquipmentReportItem)
	return res, args.Error(1)
}

func (m *MockReportService) GetTeamReport(ctx context.Context) ([]types.TeamReportItem, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).([]types.TeamReportItem)
	return res, args.Error(1)
}

func (m *MockReportService) GetTechnicianReport(ctx context.Context) ([]types.TechnicianReportItem, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).([]types.TechnicianReportItem)
	return res, args.Error(1)
}

func (m *MockReportService) GetPerformanceReport(ctx context.Context) (*types.PerformanceReport, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).(*types.PerformanceReport)
	return res, args.Error(1)
}

func (m *MockReportService) GetDowntimeReport(ctx context.Context) ([]types.DowntimeItem, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).([]types.DowntimeItem)
	return res, args.Error(1)
}

func (m *MockReportService) GetWorkloadReport(ctx context.Context) ([]types.WorkloadItem, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).([]types.WorkloadItem)
	return res, args.Error(1)
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validation.New()
	return e
}

// newContext собирает echo.Context; params - пары имя/значение path-параметров.
func newContext(e *echo.Echo, method, target, body string, params ...string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if len(params) > 0 {
		names := make([]string, 0, len(params)/2)
		values := make([]string, 0, len(params)/2)
		for i := 0; i+1 < len(params); i += 2 {
			names = append(names, params[i])
			values = append(values, params[i+1])
		}
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}
	return c, rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}
