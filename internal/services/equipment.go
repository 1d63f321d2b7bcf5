package services

import (
	"context"
	"strings"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/utils"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type EquipmentServiceInterface interface {
	GetEquipments(ctx context.Context, filter dto.EquipmentFilter) ([]entities.Equipment, error)
	SearchEquipment(ctx context.Context, term string) ([]entities.Equipment, error)
	FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error)
	GetEquipmentRequests(ctx context.Context, id uint64) ([]entities.MaintenanceRequestDetails, error)
	CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.CreatedEquipmentDTO, error)
	UpdateEquipment(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) error
	DeleteEquipment(ctx context.Context, id uint64) error
}

type EquipmentService struct {
	txManager           repositories.TxManagerInterface
	equipmentRepository repositories.EquipmentRepositoryInterface
	requestRepository   repositories.RequestRepositoryInterface
	logger              *zap.Logger
}

func NewEquipmentService(
	txManager repositories.TxManagerInterface,
	equipmentRepository repositories.EquipmentRepositoryInterface,
	requestRepository repositories.RequestRepositoryInterface,
	logger *zap.Logger,
) EquipmentServiceInterface {
	return &EquipmentService{
		txManager:           txManager,
		equipmentRepository: equipmentRepository,
		requestRepository:   requestRepository,
		logger:              logger,
	}
}

func (s *EquipmentService) GetEquipments(ctx context.Context, filter dto.EquipmentFilter) ([]entities.Equipment, error) {
	return s.equipmentRepository.GetEquipments(ctx, filter)
}

func (s *EquipmentService) SearchEquipment(ctx context.Context, term string) ([]entities.Equipment, error) {
	term = strings.TrimSpace(term)
	if len([]rune(term)) < constants.MinSearchLength {
		return nil, apperrors.NewValidationError("Search query must be at least 2 characters")
	}
	return s.equipmentRepository.SearchEquipment(ctx, term)
}

func (s *EquipmentService) FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error) {
	item, err := s.equipmentRepository.FindEquipment(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, msgEquipmentNotFound)
	}
	return item, nil
}

// GetEquipmentRequests - история обслуживания одной единицы оборудования.
func (s *EquipmentService) GetEquipmentRequests(ctx context.Context, id uint64) ([]entities.MaintenanceRequestDetails, error) {
	if _, err := s.FindEquipment(ctx, id); err != nil {
		return nil, err
	}
	return s.requestRepository.GetRequests(ctx, dto.RequestFilter{EquipmentID: &id})
}

func (s *EquipmentService) CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.CreatedEquipmentDTO, error) {
	name := strings.TrimSpace(payload.Name)
	serial := strings.TrimSpace(payload.SerialNumber)
	if name == "" || serial == "" {
		return nil, apperrors.NewValidationError("Name and serial number are required")
	}

	purchase, err := utils.ParseOptionalDate(payload.PurchaseDate)
	if err != nil {
		return nil, apperrors.NewValidationError("Invalid purchase_date")
	}
	warranty, err := utils.ParseOptionalDate(payload.WarrantyExpiry)
	if err != nil {
		return nil, apperrors.NewValidationError("Invalid warranty_expiry")
	}

	category := utils.Coalesce(payload.Category, constants.DefaultEquipmentCategory)
	if category == "" {
		category = constants.DefaultEquipmentCategory
	}
	status := utils.Coalesce(payload.Status, constants.EquipmentStatusActive)
	if status == "" {
		status = constants.EquipmentStatusActive
	}

	created, err := s.equipmentRepository.CreateEquipment(ctx, &entities.Equipment{
		Name:           name,
		SerialNumber:   serial,
		Category:       category,
		Location:       payload.Location,
		Department:     payload.Department,
		PurchaseDate:   purchase,
		WarrantyExpiry: warranty,
		AssignedToID:   payload.AssignedToID,
		AssignedTeamID: payload.AssignedTeamID,
		Status:         status,
		Notes:          payload.Notes,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Оборудование создано", zap.Uint64("id", created.ID), zap.String("serial_number", created.SerialNumber))
	return &dto.CreatedEquipmentDTO{
		ID:           created.ID,
		Name:         created.Name,
		SerialNumber: created.SerialNumber,
		Category:     created.Category,
		Status:       created.Status,
	}, nil
}

// UpdateEquipment - coalesce-on-null по всем изменяемым полям, включая статус.
func (s *EquipmentService) UpdateEquipment(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) error {
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		existing, err := s.equipmentRepository.FindEquipmentForUpdate(ctx, tx, id)
		if err != nil {
			return notFoundAs(err, msgEquipmentNotFound)
		}

		merged := *existing
		merged.Name = utils.MergeString(payload.Name, existing.Name)
		merged.SerialNumber = utils.MergeString(payload.SerialNumber, existing.SerialNumber)
		merged.Category = utils.MergeString(payload.Category, existing.Category)
		merged.Location = utils.MergeStringPtr(payload.Location, existing.Location)
		merged.Department = utils.MergeStringPtr(payload.Department, existing.Department)
		merged.AssignedToID = utils.MergeUint64Ptr(payload.AssignedToID, existing.AssignedToID)
		merged.AssignedTeamID = utils.MergeUint64Ptr(payload.AssignedTeamID, existing.AssignedTeamID)
		merged.Status = utils.MergeString(payload.Status, existing.Status)
		merged.Notes = utils.MergeStringPtr(payload.Notes, existing.Notes)

		if merged.PurchaseDate, err = utils.MergeDatePtr(payload.PurchaseDate, existing.PurchaseDate); err != nil {
			return apperrors.NewValidationError("Invalid purchase_date")
		}
		if merged.WarrantyExpiry, err = utils.MergeDatePtr(payload.WarrantyExpiry, existing.WarrantyExpiry); err != nil {
			return apperrors.NewValidationError("Invalid warranty_expiry")
		}

		return s.equipmentRepository.UpdateEquipmentInTx(ctx, tx, &merged)
	})
	if err != nil {
		return notFoundAs(err, msgEquipmentNotFound)
	}
	s.logger.Info("Оборудование обновлено", zap.Uint64("id", id))
	return nil
}

// DeleteEquipment удаляет и связанные заявки (ON DELETE CASCADE в схеме).
func (s *EquipmentService) DeleteEquipment(ctx context.Context, id uint64) error {
	if err := s.equipmentRepository.DeleteEquipment(ctx, id); err != nil {
		return notFoundAs(err, msgEquipmentNotFound)
	}
	s.logger.Info("Оборудование удалено", zap.Uint64("id", id))
	return nil
}
