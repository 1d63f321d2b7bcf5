package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	apperrors "gearguard/pkg/errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const requestTable = "maintenance_requests"

// overdueCondition - то же правило, что ComputeOverdue, но на стороне БД,
// чтобы просрочка считалась на момент чтения, а не последней записи.
const overdueCondition = "(r.status NOT IN ('Repaired', 'Scrap') AND r.scheduled_date IS NOT NULL AND r.scheduled_date < NOW())"

// Ключ advisory-lock для генерации номеров заявок.
const requestNumberLockKey int64 = 0x6765617267756172

var requestColumns = []string{
	"id", "request_number", "type", "subject", "description", "equipment_id", "equipment_category",
	"assigned_team_id", "assigned_to_id", "assigned_to_name", "status", "priority", "scheduled_date",
	"is_overdue", "hours_spent::float8 AS hours_spent", "created_date", "completed_date", "notes", "created_by_id",
}

var requestDetailColumns = []string{
	"r.id", "r.request_number", "r.type", "r.subject", "r.description", "r.equipment_id", "r.equipment_category",
	"r.assigned_team_id", "r.assigned_to_id",
	"COALESCE(r.assigned_to_name, u.name) AS assigned_to_name",
	"r.status", "r.priority", "r.scheduled_date",
	overdueCondition + " AS is_overdue",
	"r.hours_spent::float8 AS hours_spent", "r.created_date", "r.completed_date", "r.notes", "r.created_by_id",
	"e.name AS equipment_name", "e.serial_number", "t.name AS team_name",
}

type RequestRepositoryInterface interface {
	GetRequests(ctx context.Context, filter dto.RequestFilter) ([]entities.MaintenanceRequestDetails, error)
	GetOverdueRequests(ctx context.Context) ([]entities.MaintenanceRequestDetails, error)
	GetPreventiveCalendar(ctx context.Context, from, to *time.Time) ([]entities.MaintenanceRequestDetails, error)
	FindRequest(ctx context.Context, id uint64) (*entities.MaintenanceRequestDetails, error)
	FindRequestForUpdate(ctx context.Context, tx pgx.Tx, id uint64) (*entities.MaintenanceRequest, error)
	NextRequestSequence(ctx context.Context, tx pgx.Tx) (uint64, error)
	CreateRequestInTx(ctx context.Context, tx pgx.Tx, request *entities.MaintenanceRequest) error
	UpdateRequestInTx(ctx context.Context, tx pgx.Tx, request *entities.MaintenanceRequest) error
	DeleteRequest(ctx context.Context, id uint64) error
}

type RequestRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewRequestRepository(storage *pgxpool.Pool, logger *zap.Logger) RequestRepositoryInterface {
	return &RequestRepository{storage: storage, logger: logger}
}

func (r *RequestRepository) selectDetails() sq.SelectBuilder {
	return sq.Select(requestDetailColumns...).
		From(requestTable + " r").
		LeftJoin("equipment e ON r.equipment_id = e.id").
		LeftJoin("users u ON r.assigned_to_id = u.id").
		LeftJoin("maintenance_teams t ON r.assigned_team_id = t.id").
		PlaceholderFormat(sq.Dollar)
}

func (r *RequestRepository) listDetails(ctx context.Context, b sq.SelectBuilder) ([]entities.MaintenanceRequestDetails, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query requests: %w", err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[entities.MaintenanceRequestDetails])
	if err != nil {
		return nil, fmt.Errorf("scan requests: %w", err)
	}
	return items, nil
}

func (r *RequestRepository) GetRequests(ctx context.Context, filter dto.RequestFilter) ([]entities.MaintenanceRequestDetails, error) {
	b := r.selectDetails()
	if filter.Status != "" {
		b = b.Where(sq.Eq{"r.status": filter.Status})
	}
	if filter.TeamID != nil {
		b = b.Where(sq.Eq{"r.assigned_team_id": *filter.TeamID})
	}
	if filter.EquipmentID != nil {
		b = b.Where(sq.Eq{"r.equipment_id": *filter.EquipmentID})
	}
	if filter.Overdue {
		b = b.Where(overdueCondition)
	}
	return r.listDetails(ctx, b.OrderBy("r.created_date DESC", "r.id DESC"))
}

// GetOverdueRequests - просроченные заявки, самые старые по плану первыми.
// Repaired и Scrap исключаются оба, как и во всех отчётах.
func (r *RequestRepository) GetOverdueRequests(ctx context.Context) ([]entities.MaintenanceRequestDetails, error) {
	return r.listDetails(ctx, r.selectDetails().Where(overdueCondition).OrderBy("r.scheduled_date ASC", "r.id ASC"))
}

func (r *RequestRepository) GetPreventiveCalendar(ctx context.Context, from, to *time.Time) ([]entities.MaintenanceRequestDetails, error) {
	b := r.selectDetails().
		Where(sq.Eq{"r.type": "Preventive"}).
		Where(sq.NotEq{"r.scheduled_date": nil})
	if from != nil {
		b = b.Where(sq.GtOrEq{"r.scheduled_date": *from})
	}
	if to != nil {
		b = b.Where(sq.Lt{"r.scheduled_date": *to})
	}
	return r.listDetails(ctx, b.OrderBy("r.scheduled_date ASC", "r.id ASC"))
}

func (r *RequestRepository) FindRequest(ctx context.Context, id uint64) (*entities.MaintenanceRequestDetails, error) {
	items, err := r.listDetails(ctx, r.selectDetails().Where(sq.Eq{"r.id": id}))
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &items[0], nil
}

func (r *RequestRepository) FindRequestForUpdate(ctx context.Context, tx pgx.Tx, id uint64) (*entities.MaintenanceRequest, error) {
	query, args, err := sq.Select(requestColumns...).
		From(requestTable).
		Where(sq.Eq{"id": id}).
		Suffix("FOR UPDATE").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query request %d: %w", id, err)
	}
	req, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[entities.MaintenanceRequest])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan request %d: %w", id, err)
	}
	return &req, nil
}

// NextRequestSequence возвращает MAX(id)+1. Advisory-lock держится до конца транзакции,
// поэтому параллельные создатели получают номера по очереди.
func (r *RequestRepository) NextRequestSequence(ctx context.Context, tx pgx.Tx) (uint64, error) {
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, requestNumberLockKey); err != nil {
		return 0, fmt.Errorf("lock request numbers: %w", err)
	}

	var maxID int64
	if err := tx.QueryRow(ctx, `SELECT COALESCE(MAX(id), 0) FROM maintenance_requests`).Scan(&maxID); err != nil {
		return 0, fmt.Errorf("read max request id: %w", err)
	}
	return uint64(maxID) + 1, nil
}

func (r *RequestRepository) CreateRequestInTx(ctx context.Context, tx pgx.Tx, req *entities.MaintenanceRequest) error {
	query, args, err := sq.Insert(requestTable).
		Columns("request_number", "type", "subject", "description", "equipment_id", "equipment_category",
			"assigned_team_id", "assigned_to_id", "assigned_to_name", "status", "priority", "scheduled_date",
			"is_overdue", "hours_spent", "notes", "created_by_id").
		Values(req.RequestNumber, req.Type, req.Subject, req.Description, req.EquipmentID, req.EquipmentCategory,
			req.AssignedTeamID, req.AssignedToID, req.AssignedToName, req.Status, req.Priority, req.ScheduledDate,
			req.IsOverdue, req.HoursSpent, req.Notes, req.CreatedByID).
		Suffix("RETURNING id, created_date").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if err := tx.QueryRow(ctx, query, args...).Scan(&req.ID, &req.CreatedDate); err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("Request number already exists, please retry")
		}
		if isForeignKeyViolation(err) {
			return apperrors.NewNotFoundError("Equipment not found")
		}
		return fmt.Errorf("insert request: %w", err)
	}
	return nil
}

func (r *RequestRepository) UpdateRequestInTx(ctx context.Context, tx pgx.Tx, req *entities.MaintenanceRequest) error {
	query, args, err := sq.Update(requestTable).
		SetMap(map[string]interface{}{
			"subject":          req.Subject,
			"description":      req.Description,
			"status":           req.Status,
			"assigned_to_id":   req.AssignedToID,
			"assigned_team_id": req.AssignedTeamID,
			"assigned_to_name": req.AssignedToName,
			"priority":         req.Priority,
			"scheduled_date":   req.ScheduledDate,
			"is_overdue":       req.IsOverdue,
			"hours_spent":      req.HoursSpent,
			"completed_date":   req.CompletedDate,
			"notes":            req.Notes,
		}).
		Where(sq.Eq{"id": req.ID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.NewValidationError("Assigned user or team does not exist")
		}
		return fmt.Errorf("update request %d: %w", req.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *RequestRepository) DeleteRequest(ctx context.Context, id uint64) error {
	tag, err := r.storage.Exec(ctx, `DELETE FROM maintenance_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
