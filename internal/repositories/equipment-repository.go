package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	apperrors "gearguard/pkg/errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const equipmentTable = "equipment"

var equipmentColumns = []string{
	"id", "name", "serial_number", "category", "location", "department",
	"purchase_date", "warranty_expiry", "assigned_to_id", "assigned_team_id",
	"status", "notes", "created_at",
}

const equipmentReturning = "RETURNING id, name, serial_number, category, location, department, " +
	"purchase_date, warranty_expiry, assigned_to_id, assigned_team_id, status, notes, created_at"

const msgSerialExists = "Equipment with this serial number already exists"

type EquipmentRepositoryInterface interface {
	GetEquipments(ctx context.Context, filter dto.EquipmentFilter) ([]entities.Equipment, error)
	SearchEquipment(ctx context.Context, term string) ([]entities.Equipment, error)
	FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error)
	FindEquipmentInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Equipment, error)
	FindEquipmentForUpdate(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Equipment, error)
	CreateEquipment(ctx context.Context, equipment *entities.Equipment) (*entities.Equipment, error)
	UpdateEquipmentInTx(ctx context.Context, tx pgx.Tx, equipment *entities.Equipment) error
	UpdateEquipmentStatusInTx(ctx context.Context, tx pgx.Tx, id uint64, status string) error
	DeleteEquipment(ctx context.Context, id uint64) error
}

type EquipmentRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewEquipmentRepository(storage *pgxpool.Pool, logger *zap.Logger) EquipmentRepositoryInterface {
	return &EquipmentRepository{storage: storage, logger: logger}
}

func (r *EquipmentRepository) selectEquipment() sq.SelectBuilder {
	return sq.Select(equipmentColumns...).From(equipmentTable).PlaceholderFormat(sq.Dollar)
}

func (r *EquipmentRepository) list(ctx context.Context, b sq.SelectBuilder) ([]entities.Equipment, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query equipment: %w", err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[entities.Equipment])
	if err != nil {
		return nil, fmt.Errorf("scan equipment: %w", err)
	}
	return items, nil
}

func (r *EquipmentRepository) findOne(ctx context.Context, q querier, id uint64, suffix string) (*entities.Equipment, error) {
	b := r.selectEquipment().Where(sq.Eq{"id": id})
	if suffix != "" {
		b = b.Suffix(suffix)
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query equipment %d: %w", id, err)
	}
	item, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[entities.Equipment])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan equipment %d: %w", id, err)
	}
	return &item, nil
}

func (r *EquipmentRepository) GetEquipments(ctx context.Context, filter dto.EquipmentFilter) ([]entities.Equipment, error) {
	b := r.selectEquipment()
	if filter.Category != "" {
		b = b.Where(sq.Eq{"category": filter.Category})
	}
	if filter.Status != "" {
		b = b.Where(sq.Eq{"status": filter.Status})
	}
	if filter.Department != "" {
		b = b.Where(sq.Eq{"department": filter.Department})
	}
	return r.list(ctx, b.OrderBy("created_at DESC", "id DESC"))
}

// SearchEquipment ищет по подстроке в имени или серийном номере без учёта регистра.
func (r *EquipmentRepository) SearchEquipment(ctx context.Context, term string) ([]entities.Equipment, error) {
	pattern := "%" + escapeLike(term) + "%"
	b := r.selectEquipment().
		Where(sq.Or{sq.ILike{"name": pattern}, sq.ILike{"serial_number": pattern}}).
		OrderBy("name ASC")
	return r.list(ctx, b)
}

func (r *EquipmentRepository) FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error) {
	return r.findOne(ctx, r.storage, id, "")
}

func (r *EquipmentRepository) FindEquipmentInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Equipment, error) {
	return r.findOne(ctx, tx, id, "FOR SHARE")
}

func (r *EquipmentRepository) FindEquipmentForUpdate(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Equipment, error) {
	return r.findOne(ctx, tx, id, "FOR UPDATE")
}

func (r *EquipmentRepository) CreateEquipment(ctx context.Context, e *entities.Equipment) (*entities.Equipment, error) {
	query, args, err := sq.Insert(equipmentTable).
		Columns("name", "serial_number", "category", "location", "department", "purchase_date",
			"warranty_expiry", "assigned_to_id", "assigned_team_id", "status", "notes").
		Values(e.Name, e.SerialNumber, e.Category, e.Location, e.Department, e.PurchaseDate,
			e.WarrantyExpiry, e.AssignedToID, e.AssignedTeamID, e.Status, e.Notes).
		Suffix(equipmentReturning).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("insert equipment: %w", err)
	}
	created, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[entities.Equipment])
	if err != nil {
		return nil, mapEquipmentWriteError(err)
	}
	return &created, nil
}

func (r *EquipmentRepository) UpdateEquipmentInTx(ctx context.Context, tx pgx.Tx, e *entities.Equipment) error {
	query, args, err := sq.Update(equipmentTable).
		SetMap(map[string]interface{}{
			"name":             e.Name,
			"serial_number":    e.SerialNumber,
			"category":         e.Category,
			"location":         e.Location,
			"department":       e.Department,
			"purchase_date":    e.PurchaseDate,
			"warranty_expiry":  e.WarrantyExpiry,
			"assigned_to_id":   e.AssignedToID,
			"assigned_team_id": e.AssignedTeamID,
			"status":           e.Status,
			"notes":            e.Notes,
		}).
		Where(sq.Eq{"id": e.ID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return mapEquipmentWriteError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentRepository) UpdateEquipmentStatusInTx(ctx context.Context, tx pgx.Tx, id uint64, status string) error {
	tag, err := tx.Exec(ctx, `UPDATE equipment SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("update equipment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentRepository) DeleteEquipment(ctx context.Context, id uint64) error {
	tag, err := r.storage.Exec(ctx, `DELETE FROM equipment WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete equipment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func mapEquipmentWriteError(err error) error {
	if isUniqueViolation(err) {
		return apperrors.NewConflictError(msgSerialExists)
	}
	if isForeignKeyViolation(err) {
		return apperrors.NewValidationError("Assigned user or team does not exist")
	}
	return fmt.Errorf("write equipment: %w", err)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
