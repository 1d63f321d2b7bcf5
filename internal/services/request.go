package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/utils"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const (
	msgRequestNotFound   = "Request not found"
	msgEquipmentNotFound = "Equipment not found"
	msgUserNotFound      = "User not found"
)

type RequestServiceInterface interface {
	GetRequests(ctx context.Context, filter dto.RequestFilter) ([]entities.MaintenanceRequestDetails, error)
	GetKanban(ctx context.Context, filter dto.RequestFilter) ([]dto.KanbanColumnDTO, error)
	GetCalendar(ctx context.Context, from, to *time.Time) ([]entities.MaintenanceRequestDetails, error)
	GetOverdueRequests(ctx context.Context) ([]entities.MaintenanceRequestDetails, error)
	FindRequest(ctx context.Context, id uint64) (*entities.MaintenanceRequestDetails, error)
	CreateRequest(ctx context.Context, payload dto.CreateRequestDTO) (*dto.CreatedRequestDTO, error)
	UpdateRequest(ctx context.Context, id uint64, payload dto.UpdateRequestDTO) error
	UpdateStatus(ctx context.Context, id uint64, payload dto.UpdateRequestStatusDTO) error
	AssignRequest(ctx context.Context, id uint64, payload dto.AssignRequestDTO) error
	DeleteRequest(ctx context.Context, id uint64) error
}

type RequestService struct {
	txManager     repositories.TxManagerInterface
	requestRepo   repositories.RequestRepositoryInterface
	equipmentRepo repositories.EquipmentRepositoryInterface
	userRepo      repositories.UserRepositoryInterface
	logger        *zap.Logger
	now           func() time.Time
}

func NewRequestService(
	txManager repositories.TxManagerInterface,
	requestRepo repositories.RequestRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	logger *zap.Logger,
) RequestServiceInterface {
	return &RequestService{
		txManager:     txManager,
		requestRepo:   requestRepo,
		equipmentRepo: equipmentRepo,
		userRepo:      userRepo,
		logger:        logger,
		now:           time.Now,
	}
}

func notFoundAs(err error, message string) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		var httpErr *apperrors.HttpError
		if errors.As(err, &httpErr) {
			return err
		}
		return apperrors.NewNotFoundError(message)
	}
	return err
}

func (s *RequestService) GetRequests(ctx context.Context, filter dto.RequestFilter) ([]entities.MaintenanceRequestDetails, error) {
	if filter.Status != "" && !constants.IsValidRequestStatus(filter.Status) {
		return nil, apperrors.NewValidationError("Invalid status")
	}
	return s.requestRepo.GetRequests(ctx, filter)
}

// GetKanban раскладывает заявки по колонкам в фиксированном порядке статусов.
// Пустые колонки тоже возвращаются.
func (s *RequestService) GetKanban(ctx context.Context, filter dto.RequestFilter) ([]dto.KanbanColumnDTO, error) {
	filter.Status = ""
	items, err := s.requestRepo.GetRequests(ctx, filter)
	if err != nil {
		return nil, err
	}

	byStatus := make(map[string][]entities.MaintenanceRequestDetails, len(constants.RequestStatuses))
	for _, item := range items {
		byStatus[item.Status] = append(byStatus[item.Status], item)
	}

	columns := make([]dto.KanbanColumnDTO, 0, len(constants.RequestStatuses))
	for _, status := range constants.RequestStatuses {
		reqs := byStatus[status]
		if reqs == nil {
			reqs = []entities.MaintenanceRequestDetails{}
		}
		columns = append(columns, dto.KanbanColumnDTO{Status: status, Count: len(reqs), Requests: reqs})
	}
	return columns, nil
}

func (s *RequestService) GetCalendar(ctx context.Context, from, to *time.Time) ([]entities.MaintenanceRequestDetails, error) {
	if from != nil && to != nil && !from.Before(*to) {
		return nil, apperrors.NewValidationError("from must be before to")
	}
	return s.requestRepo.GetPreventiveCalendar(ctx, from, to)
}

func (s *RequestService) GetOverdueRequests(ctx context.Context) ([]entities.MaintenanceRequestDetails, error) {
	return s.requestRepo.GetOverdueRequests(ctx)
}

func (s *RequestService) FindRequest(ctx context.Context, id uint64) (*entities.MaintenanceRequestDetails, error) {
	req, err := s.requestRepo.FindRequest(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, msgRequestNotFound)
	}
	return req, nil
}

func (s *RequestService) CreateRequest(ctx context.Context, payload dto.CreateRequestDTO) (*dto.CreatedRequestDTO, error) {
	if strings.TrimSpace(payload.Subject) == "" || payload.EquipmentID == nil {
		return nil, apperrors.NewValidationError("Subject and equipment_id are required")
	}

	creatorID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	scheduled, err := utils.ParseOptionalDate(payload.ScheduledDate)
	if err != nil {
		return nil, apperrors.NewValidationError("Invalid scheduled_date")
	}

	now := s.now()
	req := &entities.MaintenanceRequest{
		Type:           utils.Coalesce(payload.Type, constants.RequestTypeCorrective),
		Subject:        payload.Subject,
		Description:    payload.Description,
		EquipmentID:    *payload.EquipmentID,
		AssignedToName: payload.AssignedToName,
		Status:         constants.RequestStatusNew,
		Priority:       utils.Coalesce(payload.Priority, constants.PriorityMedium),
		ScheduledDate:  scheduled,
		IsOverdue:      ComputeOverdue(scheduled, constants.RequestStatusNew, now),
		CreatedByID:    &creatorID,
	}
	if req.Type == "" {
		req.Type = constants.RequestTypeCorrective
	}
	if req.Priority == "" {
		req.Priority = constants.PriorityMedium
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		equipment, err := s.equipmentRepo.FindEquipmentInTx(ctx, tx, req.EquipmentID)
		if err != nil {
			return notFoundAs(err, msgEquipmentNotFound)
		}
		category := equipment.Category
		req.EquipmentCategory = &category
		req.AssignedTeamID = equipment.AssignedTeamID

		maxID, err := s.requestRepo.NextRequestSequence(ctx, tx)
		if err != nil {
			return err
		}
		req.RequestNumber = FormatRequestNumber(now.Year(), maxID)

		return s.requestRepo.CreateRequestInTx(ctx, tx, req)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Создана заявка на обслуживание",
		zap.Uint64("id", req.ID),
		zap.String("request_number", req.RequestNumber),
		zap.Uint64("equipment_id", req.EquipmentID),
		zap.Uint64("created_by", creatorID))

	return &dto.CreatedRequestDTO{
		ID:                req.ID,
		RequestNumber:     req.RequestNumber,
		Subject:           req.Subject,
		EquipmentID:       req.EquipmentID,
		EquipmentCategory: req.EquipmentCategory,
		AssignedTeamID:    req.AssignedTeamID,
		Status:            req.Status,
		Priority:          req.Priority,
		AssignedToName:    req.AssignedToName,
		IsOverdue:         req.IsOverdue,
	}, nil
}

// modifyRequest - общий read-modify-write под FOR UPDATE. Переход в Scrap
// списывает оборудование в той же транзакции.
func (s *RequestService) modifyRequest(ctx context.Context, id uint64, mutate func(tx pgx.Tx, req entities.MaintenanceRequest) (entities.MaintenanceRequest, error)) error {
	return s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		existing, err := s.requestRepo.FindRequestForUpdate(ctx, tx, id)
		if err != nil {
			return notFoundAs(err, msgRequestNotFound)
		}

		updated, err := mutate(tx, *existing)
		if err != nil {
			return err
		}

		if err := s.requestRepo.UpdateRequestInTx(ctx, tx, &updated); err != nil {
			return notFoundAs(err, msgRequestNotFound)
		}

		if updated.Status == constants.RequestStatusScrap && existing.Status != constants.RequestStatusScrap {
			if err := s.equipmentRepo.UpdateEquipmentStatusInTx(ctx, tx, updated.EquipmentID, constants.EquipmentStatusScrap); err != nil {
				return notFoundAs(err, msgEquipmentNotFound)
			}
			s.logger.Info("Оборудование списано по заявке",
				zap.Uint64("request_id", id), zap.Uint64("equipment_id", updated.EquipmentID))
		}
		return nil
	})
}

func (s *RequestService) UpdateRequest(ctx context.Context, id uint64, payload dto.UpdateRequestDTO) error {
	err := s.modifyRequest(ctx, id, func(_ pgx.Tx, req entities.MaintenanceRequest) (entities.MaintenanceRequest, error) {
		return ApplyRequestPatch(req, payload, s.now())
	})
	if err != nil {
		return err
	}
	s.logger.Info("Заявка обновлена", zap.Uint64("id", id))
	return nil
}

func (s *RequestService) UpdateStatus(ctx context.Context, id uint64, payload dto.UpdateRequestStatusDTO) error {
	if payload.Status == "" {
		return apperrors.NewValidationError("Status is required")
	}
	if !constants.IsValidRequestStatus(payload.Status) {
		return apperrors.NewValidationError("Invalid status")
	}

	err := s.modifyRequest(ctx, id, func(_ pgx.Tx, req entities.MaintenanceRequest) (entities.MaintenanceRequest, error) {
		req.HoursSpent = utils.MergeFloat64Ptr(payload.HoursSpent, req.HoursSpent)
		return ApplyStatus(req, payload.Status, s.now()), nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("Статус заявки изменён", zap.Uint64("id", id), zap.String("status", payload.Status))
	return nil
}

// AssignRequest фиксирует имя исполнителя на момент назначения.
func (s *RequestService) AssignRequest(ctx context.Context, id uint64, payload dto.AssignRequestDTO) error {
	if payload.AssignedToID == nil || *payload.AssignedToID == 0 {
		return apperrors.NewValidationError("assigned_to_id is required")
	}
	userID := *payload.AssignedToID

	err := s.modifyRequest(ctx, id, func(tx pgx.Tx, req entities.MaintenanceRequest) (entities.MaintenanceRequest, error) {
		user, err := s.userRepo.FindUserByIDInTx(ctx, tx, userID)
		if err != nil {
			return req, notFoundAs(err, msgUserNotFound)
		}
		name := user.Name
		req.AssignedToID = &userID
		req.AssignedToName = &name
		return req, nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("Заявка назначена", zap.Uint64("id", id), zap.Uint64("assigned_to_id", userID))
	return nil
}

func (s *RequestService) DeleteRequest(ctx context.Context, id uint64) error {
	if err := s.requestRepo.DeleteRequest(ctx, id); err != nil {
		return notFoundAs(err, msgRequestNotFound)
	}
	s.logger.Info("Заявка удалена", zap.Uint64("id", id))
	return nil
}
