package repositories

import (
	"context"
	"errors"
	"fmt"

	"gearguard/internal/entities"
	apperrors "gearguard/pkg/errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const (
	teamTable       = "maintenance_teams"
	teamMemberTable = "team_members"
)

var teamColumns = []string{"id", "name", "description", "team_lead_id", "specialization", "is_active", "created_at"}

type TeamRepositoryInterface interface {
	GetTeams(ctx context.Context) ([]entities.TeamSummary, error)
	FindTeam(ctx context.Context, id uint64) (*entities.Team, error)
	FindTeamForUpdate(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Team, error)
	CreateTeam(ctx context.Context, team *entities.Team) (*entities.Team, error)
	UpdateTeamInTx(ctx context.Context, tx pgx.Tx, team *entities.Team) error
	DeleteTeam(ctx context.Context, id uint64) error
	GetMembers(ctx context.Context, teamID uint64) ([]entities.TeamMember, error)
	AddMemberInTx(ctx context.Context, tx pgx.Tx, teamID, userID uint64) error
	RemoveMember(ctx context.Context, teamID, userID uint64) error
}

type TeamRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewTeamRepository(storage *pgxpool.Pool, logger *zap.Logger) TeamRepositoryInterface {
	return &TeamRepository{storage: storage, logger: logger}
}

func (r *TeamRepository) GetTeams(ctx context.Context) ([]entities.TeamSummary, error) {
	query, args, err := sq.Select(
		"t.id", "t.name", "t.description", "t.team_lead_id", "t.specialization", "t.is_active", "t.created_at",
		"COUNT(tm.user_id) AS member_count",
		"u.name AS team_lead_name",
	).
		From(teamTable + " t").
		LeftJoin(teamMemberTable + " tm ON t.id = tm.team_id").
		LeftJoin("users u ON t.team_lead_id = u.id").
		GroupBy("t.id", "u.name").
		OrderBy("t.created_at DESC", "t.id DESC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query teams: %w", err)
	}
	teams, err := pgx.CollectRows(rows, pgx.RowToStructByName[entities.TeamSummary])
	if err != nil {
		return nil, fmt.Errorf("scan teams: %w", err)
	}
	return teams, nil
}

func (r *TeamRepository) findOne(ctx context.Context, q querier, id uint64, suffix string) (*entities.Team, error) {
	b := sq.Select(teamColumns...).From(teamTable).Where(sq.Eq{"id": id}).PlaceholderFormat(sq.Dollar)
	if suffix != "" {
		b = b.Suffix(suffix)
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query team %d: %w", id, err)
	}
	team, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[entities.Team])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan team %d: %w", id, err)
	}
	return &team, nil
}

func (r *TeamRepository) FindTeam(ctx context.Context, id uint64) (*entities.Team, error) {
	return r.findOne(ctx, r.storage, id, "")
}

func (r *TeamRepository) FindTeamForUpdate(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Team, error) {
	return r.findOne(ctx, tx, id, "FOR UPDATE")
}

func (r *TeamRepository) CreateTeam(ctx context.Context, t *entities.Team) (*entities.Team, error) {
	query, args, err := sq.Insert(teamTable).
		Columns("name", "description", "team_lead_id", "specialization", "is_active").
		Values(t.Name, t.Description, t.TeamLeadID, t.Specialization, t.IsActive).
		Suffix("RETURNING id, name, description, team_lead_id, specialization, is_active, created_at").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("insert team: %w", err)
	}
	created, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[entities.Team])
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, apperrors.NewValidationError("Team lead does not exist")
		}
		return nil, fmt.Errorf("insert team: %w", err)
	}
	return &created, nil
}

func (r *TeamRepository) UpdateTeamInTx(ctx context.Context, tx pgx.Tx, t *entities.Team) error {
	query, args, err := sq.Update(teamTable).
		Set("name", t.Name).
		Set("description", t.Description).
		Set("team_lead_id", t.TeamLeadID).
		Set("specialization", t.Specialization).
		Set("is_active", t.IsActive).
		Where(sq.Eq{"id": t.ID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.NewValidationError("Team lead does not exist")
		}
		return fmt.Errorf("update team: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *TeamRepository) DeleteTeam(ctx context.Context, id uint64) error {
	tag, err := r.storage.Exec(ctx, `DELETE FROM maintenance_teams WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *TeamRepository) GetMembers(ctx context.Context, teamID uint64) ([]entities.TeamMember, error) {
	query, args, err := sq.Select("u.id", "u.name", "u.email", "u.role", "tm.joined_at").
		From(teamMemberTable + " tm").
		Join("users u ON tm.user_id = u.id").
		Where(sq.Eq{"tm.team_id": teamID}).
		OrderBy("tm.joined_at ASC", "u.id ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query team members: %w", err)
	}
	members, err := pgx.CollectRows(rows, pgx.RowToStructByName[entities.TeamMember])
	if err != nil {
		return nil, fmt.Errorf("scan team members: %w", err)
	}
	return members, nil
}

func (r *TeamRepository) AddMemberInTx(ctx context.Context, tx pgx.Tx, teamID, userID uint64) error {
	_, err := tx.Exec(ctx, `INSERT INTO team_members (team_id, user_id) VALUES ($1, $2)`, teamID, userID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("User is already a team member")
		}
		return fmt.Errorf("insert team member: %w", err)
	}
	return nil
}

func (r *TeamRepository) RemoveMember(ctx context.Context, teamID, userID uint64) error {
	tag, err := r.storage.Exec(ctx, `DELETE FROM team_members WHERE team_id = $1 AND user_id = $2`, teamID, userID)
	if err != nil {
		return fmt.Errorf("delete team member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("Member not found in team")
	}
	return nil
}
