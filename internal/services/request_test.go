package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/pkg/constants"
	"gearguard/pkg/contextkeys"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/utils"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type requestFixture struct {
	svc       *RequestService
	requests  *MockRequestRepository
	equipment *MockEquipmentRepository
	users     *MockUserRepository
}

func newRequestFixture() *requestFixture {
	f := &requestFixture{
		requests:  new(MockRequestRepository),
		equipment: new(MockEquipmentRepository),
		users:     new(MockUserRepository),
	}
	f.svc = NewRequestService(fakeTxManager{}, f.requests, f.equipment, f.users, zap.NewNop()).(*RequestService)
	f.svc.now = func() time.Time { return fixedNow }
	return f
}

func authedCtx(userID uint64) context.Context {
	return context.WithValue(context.Background(), contextkeys.UserIDKey, userID)
}

func assertHTTPError(t *testing.T, err error, code int, message string) {
	t.Helper()
	var httpErr *apperrors.HttpError
	require.True(t, errors.As(err, &httpErr), "expected HttpError, got %v", err)
	assert.Equal(t, code, httpErr.Code)
	assert.Equal(t, message, httpErr.Message)
}

func TestCreateRequestRequiresSubjectAndEquipment(t *testing.T) {
	f := newRequestFixture()

	_, err := f.svc.CreateRequest(authedCtx(1), dto.CreateRequestDTO{EquipmentID: utils.ToPtr(uint64(1))})
	assertHTTPError(t, err, http.StatusBadRequest, "Subject and equipment_id are required")

	_, err = f.svc.CreateRequest(authedCtx(1), dto.CreateRequestDTO{Subject: "Fix belt"})
	assertHTTPError(t, err, http.StatusBadRequest, "Subject and equipment_id are required")
}

func TestCreateRequestUnknownEquipment(t *testing.T) {
	f := newRequestFixture()
	f.equipment.On("FindEquipmentInTx", mock.Anything, mock.Anything, uint64(99)).Return(nil, apperrors.ErrNotFound)

	_, err := f.svc.CreateRequest(authedCtx(1), dto.CreateRequestDTO{Subject: "Fix belt", EquipmentID: utils.ToPtr(uint64(99))})
	assertHTTPError(t, err, http.StatusNotFound, "Equipment not found")
	f.requests.AssertNotCalled(t, "CreateRequestInTx", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateRequestDenormalisesEquipment(t *testing.T) {
	f := newRequestFixture()
	teamID := uint64(3)
	f.equipment.On("FindEquipmentInTx", mock.Anything, mock.Anything, uint64(1)).
		Return(&entities.Equipment{ID: 1, Category: "Machinery", AssignedTeamID: &teamID}, nil)
	f.requests.On("NextRequestSequence", mock.Anything, mock.Anything).Return(uint64(5), nil)

	var saved *entities.MaintenanceRequest
	f.requests.On("CreateRequestInTx", mock.Anything, mock.Anything, mock.AnythingOfType("*entities.MaintenanceRequest")).
		Run(func(args mock.Arguments) {
			saved = args.Get(2).(*entities.MaintenanceRequest)
			saved.ID = 5
		}).Return(nil)

	past := "2026-03-01"
	created, err := f.svc.CreateRequest(authedCtx(42), dto.CreateRequestDTO{
		Subject:       "Fix belt",
		EquipmentID:   utils.ToPtr(uint64(1)),
		ScheduledDate: &past,
	})
	require.NoError(t, err)

	assert.Equal(t, uint64(5), created.ID)
	assert.Equal(t, "REQ-2026-0005", created.RequestNumber)
	assert.Equal(t, constants.RequestStatusNew, created.Status)
	assert.Equal(t, constants.PriorityMedium, created.Priority)
	assert.Equal(t, "Machinery", *created.EquipmentCategory)
	assert.Equal(t, teamID, *created.AssignedTeamID)
	assert.True(t, created.IsOverdue)

	require.NotNil(t, saved)
	assert.Equal(t, constants.RequestTypeCorrective, saved.Type)
	assert.Equal(t, uint64(42), *saved.CreatedByID)
}

func TestCreateRequestWithoutUser(t *testing.T) {
	f := newRequestFixture()
	_, err := f.svc.CreateRequest(context.Background(), dto.CreateRequestDTO{Subject: "x", EquipmentID: utils.ToPtr(uint64(1))})
	assert.ErrorIs(t, err, apperrors.ErrUserIDNotFoundInContext)
}

func TestUpdateRequestNotFound(t *testing.T) {
	f := newRequestFixture()
	f.requests.On("FindRequestForUpdate", mock.Anything, mock.Anything, uint64(8)).Return(nil, apperrors.ErrNotFound)

	err := f.svc.UpdateRequest(context.Background(), 8, dto.UpdateRequestDTO{Priority: null.StringFrom("Low")})
	assertHTTPError(t, err, http.StatusNotFound, "Request not found")
}

func TestUpdateStatusValidation(t *testing.T) {
	f := newRequestFixture()

	err := f.svc.UpdateStatus(context.Background(), 1, dto.UpdateRequestStatusDTO{})
	assertHTTPError(t, err, http.StatusBadRequest, "Status is required")

	err = f.svc.UpdateStatus(context.Background(), 1, dto.UpdateRequestStatusDTO{Status: "Closed"})
	assertHTTPError(t, err, http.StatusBadRequest, "Invalid status")
}

func TestUpdateStatusRepairedKeepsHoursWhenOmitted(t *testing.T) {
	f := newRequestFixture()
	existing := baseRequest()
	f.requests.On("FindRequestForUpdate", mock.Anything, mock.Anything, existing.ID).Return(&existing, nil)

	var saved entities.MaintenanceRequest
	f.requests.On("UpdateRequestInTx", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { saved = *args.Get(2).(*entities.MaintenanceRequest) }).
		Return(nil)

	require.NoError(t, f.svc.UpdateStatus(context.Background(), existing.ID, dto.UpdateRequestStatusDTO{Status: constants.RequestStatusRepaired}))

	assert.Equal(t, constants.RequestStatusRepaired, saved.Status)
	assert.Equal(t, 1.5, *saved.HoursSpent)
	assert.False(t, saved.IsOverdue)
	require.NotNil(t, saved.CompletedDate)
	assert.Equal(t, fixedNow, *saved.CompletedDate)
	f.equipment.AssertNotCalled(t, "UpdateEquipmentStatusInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatusZeroHoursIsProvided(t *testing.T) {
	f := newRequestFixture()
	existing := baseRequest()
	f.requests.On("FindRequestForUpdate", mock.Anything, mock.Anything, existing.ID).Return(&existing, nil)

	var saved entities.MaintenanceRequest
	f.requests.On("UpdateRequestInTx", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { saved = *args.Get(2).(*entities.MaintenanceRequest) }).
		Return(nil)

	payload := dto.UpdateRequestStatusDTO{Status: constants.RequestStatusInProgress, HoursSpent: null.Float64From(0)}
	require.NoError(t, f.svc.UpdateStatus(context.Background(), existing.ID, payload))
	assert.Equal(t, 0.0, *saved.HoursSpent)
	assert.True(t, saved.IsOverdue)
}

func TestUpdateStatusScrapRetiresEquipment(t *testing.T) {
	f := newRequestFixture()
	existing := baseRequest()
	f.requests.On("FindRequestForUpdate", mock.Anything, mock.Anything, existing.ID).Return(&existing, nil)
	f.requests.On("UpdateRequestInTx", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.equipment.On("UpdateEquipmentStatusInTx", mock.Anything, mock.Anything, existing.EquipmentID, constants.EquipmentStatusScrap).Return(nil)

	require.NoError(t, f.svc.UpdateStatus(context.Background(), existing.ID, dto.UpdateRequestStatusDTO{Status: constants.RequestStatusScrap}))
	f.equipment.AssertExpectations(t)
}

func TestAssignRequest(t *testing.T) {
	f := newRequestFixture()

	err := f.svc.AssignRequest(context.Background(), 7, dto.AssignRequestDTO{})
	assertHTTPError(t, err, http.StatusBadRequest, "assigned_to_id is required")

	existing := baseRequest()
	f.requests.On("FindRequestForUpdate", mock.Anything, mock.Anything, existing.ID).Return(&existing, nil)
	f.users.On("FindUserByIDInTx", mock.Anything, mock.Anything, uint64(404)).Return(nil, apperrors.ErrNotFound)
	f.users.On("FindUserByIDInTx", mock.Anything, mock.Anything, uint64(12)).Return(&entities.User{ID: 12, Name: "Ivan Petrov"}, nil)

	var saved entities.MaintenanceRequest
	f.requests.On("UpdateRequestInTx", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { saved = *args.Get(2).(*entities.MaintenanceRequest) }).
		Return(nil)

	err = f.svc.AssignRequest(context.Background(), existing.ID, dto.AssignRequestDTO{AssignedToID: utils.ToPtr(uint64(404))})
	assertHTTPError(t, err, http.StatusNotFound, "User not found")

	require.NoError(t, f.svc.AssignRequest(context.Background(), existing.ID, dto.AssignRequestDTO{AssignedToID: utils.ToPtr(uint64(12))}))
	assert.Equal(t, uint64(12), *saved.AssignedToID)
	assert.Equal(t, "Ivan Petrov", *saved.AssignedToName)
}

func TestDeleteRequestNotFound(t *testing.T) {
	f := newRequestFixture()
	f.requests.On("DeleteRequest", mock.Anything, uint64(3)).Return(apperrors.ErrNotFound)

	err := f.svc.DeleteRequest(context.Background(), 3)
	assertHTTPError(t, err, http.StatusNotFound, "Request not found")
}

func TestGetKanbanKeepsColumnOrder(t *testing.T) {
	f := newRequestFixture()
	mk := func(id uint64, status string) entities.MaintenanceRequestDetails {
		return entities.MaintenanceRequestDetails{MaintenanceRequest: entities.MaintenanceRequest{ID: id, Status: status}}
	}
	f.requests.On("GetRequests", mock.Anything, dto.RequestFilter{}).Return([]entities.MaintenanceRequestDetails{
		mk(1, constants.RequestStatusRepaired),
		mk(2, constants.RequestStatusNew),
		mk(3, constants.RequestStatusNew),
	}, nil)

	columns, err := f.svc.GetKanban(context.Background(), dto.RequestFilter{Status: "ignored"})
	require.NoError(t, err)
	require.Len(t, columns, 4)

	assert.Equal(t, constants.RequestStatusNew, columns[0].Status)
	assert.Equal(t, 2, columns[0].Count)
	assert.Equal(t, constants.RequestStatusInProgress, columns[1].Status)
	assert.Empty(t, columns[1].Requests)
	assert.NotNil(t, columns[1].Requests)
	assert.Equal(t, 1, columns[2].Count)
	assert.Equal(t, constants.RequestStatusScrap, columns[3].Status)
}

func TestGetCalendarRejectsInvertedRange(t *testing.T) {
	f := newRequestFixture()
	from := fixedNow
	to := fixedNow.Add(-time.Hour)

	_, err := f.svc.GetCalendar(context.Background(), &from, &to)
	assertHTTPError(t, err, http.StatusBadRequest, "from must be before to")
}

func TestGetRequestsRejectsUnknownStatus(t *testing.T) {
	f := newRequestFixture()
	_, err := f.svc.GetRequests(context.Background(), dto.RequestFilter{Status: "Closed"})
	assertHTTPError(t, err, http.StatusBadRequest, "Invalid status")
}
