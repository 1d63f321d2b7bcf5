package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/utils"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCreateEquipmentDefaults(t *testing.T) {
	repo := new(MockEquipmentRepository)
	svc := NewEquipmentService(fakeTxManager{}, repo, new(MockRequestRepository), zap.NewNop())

	_, err := svc.CreateEquipment(context.Background(), dto.CreateEquipmentDTO{Name: "Lathe"})
	assertHTTPError(t, err, http.StatusBadRequest, "Name and serial number are required")

	repo.On("CreateEquipment", mock.Anything, mock.MatchedBy(func(e *entities.Equipment) bool {
		return e.Category == "Machinery" && e.Status == "Active" && e.PurchaseDate != nil
	})).Return(&entities.Equipment{ID: 1, Name: "Lathe", SerialNumber: "SN-100", Category: "Machinery", Status: "Active"}, nil)

	created, err := svc.CreateEquipment(context.Background(), dto.CreateEquipmentDTO{
		Name: "Lathe", SerialNumber: "SN-100", PurchaseDate: utils.ToPtr("2024-01-10"),
	})
	require.NoError(t, err)
	assert.Equal(t, "SN-100", created.SerialNumber)
}

func TestCreateEquipmentDuplicateSerial(t *testing.T) {
	repo := new(MockEquipmentRepository)
	repo.On("CreateEquipment", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewConflictError("Equipment with this serial number already exists"))
	svc := NewEquipmentService(fakeTxManager{}, repo, new(MockRequestRepository), zap.NewNop())

	_, err := svc.CreateEquipment(context.Background(), dto.CreateEquipmentDTO{Name: "Lathe", SerialNumber: "SN-100"})
	assertHTTPError(t, err, http.StatusBadRequest, "Equipment with this serial number already exists")
}

func TestUpdateEquipmentMergesAllFields(t *testing.T) {
	repo := new(MockEquipmentRepository)
	loc := "Hall A"
	purchase := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	existing := &entities.Equipment{ID: 4, Name: "Lathe", SerialNumber: "SN-1", Category: "Machinery", Location: &loc, Status: "Active", PurchaseDate: &purchase}
	repo.On("FindEquipmentForUpdate", mock.Anything, mock.Anything, uint64(4)).Return(existing, nil)

	var saved entities.Equipment
	repo.On("UpdateEquipmentInTx", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { saved = *args.Get(2).(*entities.Equipment) }).
		Return(nil)

	svc := NewEquipmentService(fakeTxManager{}, repo, new(MockRequestRepository), zap.NewNop())
	require.NoError(t, svc.UpdateEquipment(context.Background(), 4, dto.UpdateEquipmentDTO{Status: null.StringFrom("Maintenance")}))

	assert.Equal(t, "Maintenance", saved.Status)
	assert.Equal(t, "Lathe", saved.Name)
	assert.Equal(t, &loc, saved.Location)
	assert.Equal(t, purchase, *saved.PurchaseDate)
}

func TestSearchEquipmentMinLength(t *testing.T) {
	svc := NewEquipmentService(fakeTxManager{}, new(MockEquipmentRepository), new(MockRequestRepository), zap.NewNop())
	_, err := svc.SearchEquipment(context.Background(), " a ")
	assertHTTPError(t, err, http.StatusBadRequest, "Search query must be at least 2 characters")
}

func TestEquipmentRequestsUnknownEquipment(t *testing.T) {
	repo := new(MockEquipmentRepository)
	repo.On("FindEquipment", mock.Anything, uint64(9)).Return(nil, apperrors.ErrNotFound)
	svc := NewEquipmentService(fakeTxManager{}, repo, new(MockRequestRepository), zap.NewNop())

	_, err := svc.GetEquipmentRequests(context.Background(), 9)
	assertHTTPError(t, err, http.StatusNotFound, "Equipment not found")
}

func newTeamFixture() (TeamServiceInterface, *MockTeamRepository, *MockUserRepository) {
	teams := new(MockTeamRepository)
	users := new(MockUserRepository)
	return NewTeamService(fakeTxManager{}, teams, users, zap.NewNop()), teams, users
}

func TestCreateTeamRequiresName(t *testing.T) {
	svc, teams, _ := newTeamFixture()

	_, err := svc.CreateTeam(context.Background(), dto.CreateTeamDTO{Name: "  "})
	assertHTTPError(t, err, http.StatusBadRequest, "Team name is required")

	teams.On("CreateTeam", mock.Anything, mock.MatchedBy(func(team *entities.Team) bool { return team.IsActive })).
		Return(&entities.Team{ID: 1, Name: "Mechanics", IsActive: true}, nil)
	team, err := svc.CreateTeam(context.Background(), dto.CreateTeamDTO{Name: "Mechanics"})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), team.ID)
}

func TestAddMember(t *testing.T) {
	svc, teams, users := newTeamFixture()

	err := svc.AddMember(context.Background(), 1, dto.AddTeamMemberDTO{})
	assertHTTPError(t, err, http.StatusBadRequest, "User ID is required")

	teams.On("FindTeamForUpdate", mock.Anything, mock.Anything, uint64(404)).Return(nil, apperrors.ErrNotFound)
	err = svc.AddMember(context.Background(), 404, dto.AddTeamMemberDTO{UserID: utils.ToPtr(uint64(2))})
	assertHTTPError(t, err, http.StatusNotFound, "Team not found")

	teams.On("FindTeamForUpdate", mock.Anything, mock.Anything, uint64(1)).Return(&entities.Team{ID: 1}, nil)
	users.On("FindUserByIDInTx", mock.Anything, mock.Anything, uint64(404)).Return(nil, apperrors.ErrNotFound)
	err = svc.AddMember(context.Background(), 1, dto.AddTeamMemberDTO{UserID: utils.ToPtr(uint64(404))})
	assertHTTPError(t, err, http.StatusNotFound, "User not found")

	users.On("FindUserByIDInTx", mock.Anything, mock.Anything, uint64(2)).Return(&entities.User{ID: 2}, nil)
	teams.On("AddMemberInTx", mock.Anything, mock.Anything, uint64(1), uint64(2)).
		Return(apperrors.NewConflictError("User is already a team member")).Once()
	err = svc.AddMember(context.Background(), 1, dto.AddTeamMemberDTO{UserID: utils.ToPtr(uint64(2))})
	assertHTTPError(t, err, http.StatusBadRequest, "User is already a team member")
}

func TestUpdateTeamKeepsOmittedFields(t *testing.T) {
	svc, teams, _ := newTeamFixture()
	hydraulics := "Hydraulics"
	teams.On("FindTeamForUpdate", mock.Anything, mock.Anything, uint64(1)).
		Return(&entities.Team{ID: 1, Name: "Mechanics", Specialization: &hydraulics, IsActive: true}, nil)

	var saved entities.Team
	teams.On("UpdateTeamInTx", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { saved = *args.Get(2).(*entities.Team) }).
		Return(nil)

	updated, err := svc.UpdateTeam(context.Background(), 1, dto.UpdateTeamDTO{IsActive: null.BoolFrom(false)})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.False(t, saved.IsActive)
	assert.Equal(t, "Mechanics", saved.Name)
	assert.Equal(t, "Hydraulics", *saved.Specialization)
}

func TestFindTeamIncludesMembers(t *testing.T) {
	svc, teams, _ := newTeamFixture()
	teams.On("FindTeam", mock.Anything, uint64(1)).Return(&entities.Team{ID: 1, Name: "Mechanics"}, nil)
	teams.On("GetMembers", mock.Anything, uint64(1)).Return([]entities.TeamMember{{ID: 2, Name: "Anna"}}, nil)

	details, err := svc.FindTeam(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Mechanics", details.Name)
	assert.Len(t, details.Members, 1)
}
