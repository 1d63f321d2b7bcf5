package services

import (
	"context"
	"strings"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/utils"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const msgTeamNotFound = "Team not found"

type TeamServiceInterface interface {
	GetTeams(ctx context.Context) ([]entities.TeamSummary, error)
	FindTeam(ctx context.Context, id uint64) (*dto.TeamDetailsDTO, error)
	GetMembers(ctx context.Context, id uint64) ([]entities.TeamMember, error)
	CreateTeam(ctx context.Context, payload dto.CreateTeamDTO) (*entities.Team, error)
	UpdateTeam(ctx context.Context, id uint64, payload dto.UpdateTeamDTO) (*entities.Team, error)
	DeleteTeam(ctx context.Context, id uint64) error
	AddMember(ctx context.Context, teamID uint64, payload dto.AddTeamMemberDTO) error
	RemoveMember(ctx context.Context, teamID, userID uint64) error
}

type TeamService struct {
	txManager      repositories.TxManagerInterface
	teamRepository repositories.TeamRepositoryInterface
	userRepository repositories.UserRepositoryInterface
	logger         *zap.Logger
}

func NewTeamService(
	txManager repositories.TxManagerInterface,
	teamRepository repositories.TeamRepositoryInterface,
	userRepository repositories.UserRepositoryInterface,
	logger *zap.Logger,
) TeamServiceInterface {
	return &TeamService{
		txManager:      txManager,
		teamRepository: teamRepository,
		userRepository: userRepository,
		logger:         logger,
	}
}

func (s *TeamService) GetTeams(ctx context.Context) ([]entities.TeamSummary, error) {
	return s.teamRepository.GetTeams(ctx)
}

func (s *TeamService) FindTeam(ctx context.Context, id uint64) (*dto.TeamDetailsDTO, error) {
	team, err := s.teamRepository.FindTeam(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, msgTeamNotFound)
	}
	members, err := s.teamRepository.GetMembers(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.TeamDetailsDTO{Team: *team, Members: members}, nil
}

func (s *TeamService) GetMembers(ctx context.Context, id uint64) ([]entities.TeamMember, error) {
	if _, err := s.teamRepository.FindTeam(ctx, id); err != nil {
		return nil, notFoundAs(err, msgTeamNotFound)
	}
	return s.teamRepository.GetMembers(ctx, id)
}

func (s *TeamService) CreateTeam(ctx context.Context, payload dto.CreateTeamDTO) (*entities.Team, error) {
	name := strings.TrimSpace(payload.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("Team name is required")
	}

	created, err := s.teamRepository.CreateTeam(ctx, &entities.Team{
		Name:           name,
		Description:    payload.Description,
		TeamLeadID:     payload.TeamLeadID,
		Specialization: payload.Specialization,
		IsActive:       utils.Coalesce(payload.IsActive, true),
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Команда создана", zap.Uint64("id", created.ID), zap.String("name", created.Name))
	return created, nil
}

func (s *TeamService) UpdateTeam(ctx context.Context, id uint64, payload dto.UpdateTeamDTO) (*entities.Team, error) {
	var updated entities.Team
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		existing, err := s.teamRepository.FindTeamForUpdate(ctx, tx, id)
		if err != nil {
			return notFoundAs(err, msgTeamNotFound)
		}

		merged := *existing
		merged.Name = utils.MergeString(payload.Name, existing.Name)
		merged.Description = utils.MergeStringPtr(payload.Description, existing.Description)
		merged.TeamLeadID = utils.MergeUint64Ptr(payload.TeamLeadID, existing.TeamLeadID)
		merged.Specialization = utils.MergeStringPtr(payload.Specialization, existing.Specialization)
		merged.IsActive = utils.MergeBool(payload.IsActive, existing.IsActive)
		if strings.TrimSpace(merged.Name) == "" {
			return apperrors.NewValidationError("Team name is required")
		}

		updated = merged
		return s.teamRepository.UpdateTeamInTx(ctx, tx, &merged)
	})
	if err != nil {
		return nil, notFoundAs(err, msgTeamNotFound)
	}
	s.logger.Info("Команда обновлена", zap.Uint64("id", id))
	return &updated, nil
}

func (s *TeamService) DeleteTeam(ctx context.Context, id uint64) error {
	if err := s.teamRepository.DeleteTeam(ctx, id); err != nil {
		return notFoundAs(err, msgTeamNotFound)
	}
	s.logger.Info("Команда удалена", zap.Uint64("id", id))
	return nil
}

// AddMember: команда блокируется FOR UPDATE, чтобы её не удалили между проверкой и вставкой.
func (s *TeamService) AddMember(ctx context.Context, teamID uint64, payload dto.AddTeamMemberDTO) error {
	if payload.UserID == nil || *payload.UserID == 0 {
		return apperrors.NewValidationError("User ID is required")
	}
	userID := *payload.UserID

	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := s.teamRepository.FindTeamForUpdate(ctx, tx, teamID); err != nil {
			return notFoundAs(err, msgTeamNotFound)
		}
		if _, err := s.userRepository.FindUserByIDInTx(ctx, tx, userID); err != nil {
			return notFoundAs(err, msgUserNotFound)
		}
		return s.teamRepository.AddMemberInTx(ctx, tx, teamID, userID)
	})
	if err != nil {
		return err
	}
	s.logger.Info("Участник добавлен в команду", zap.Uint64("team_id", teamID), zap.Uint64("user_id", userID))
	return nil
}

func (s *TeamService) RemoveMember(ctx context.Context, teamID, userID uint64) error {
	if err := s.teamRepository.RemoveMember(ctx, teamID, userID); err != nil {
		return err
	}
	s.logger.Info("Участник удалён из команды", zap.Uint64("team_id", teamID), zap.Uint64("user_id", userID))
	return nil
}
