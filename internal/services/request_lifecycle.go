package services

import (
	"fmt"
	"time"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/utils"
)

// Правила жизненного цикла заявки. Без БД и часов: now всегда передаётся снаружи.

func IsClosedStatus(status string) bool {
	return constants.IsClosedRequestStatus(status)
}

// ComputeOverdue: заявка просрочена, пока она не закрыта и плановая дата уже прошла.
func ComputeOverdue(scheduled *time.Time, status string, now time.Time) bool {
	if scheduled == nil || IsClosedStatus(status) {
		return false
	}
	return scheduled.Before(now)
}

func FormatRequestNumber(year int, seq uint64) string {
	return fmt.Sprintf(constants.RequestNumberFormat, year, seq)
}

func NextRequestNumber(maxID uint64, now time.Time) string {
	return FormatRequestNumber(now.Year(), maxID+1)
}

// ResolveCompletedDate ставит дату завершения один раз, при первом переходе в закрытый статус.
func ResolveCompletedDate(existing *time.Time, newStatus string, now time.Time) *time.Time {
	if existing != nil {
		return existing
	}
	if IsClosedStatus(newStatus) {
		t := now
		return &t
	}
	return nil
}

// ApplyStatus меняет статус и пересчитывает производные поля.
func ApplyStatus(req entities.MaintenanceRequest, status string, now time.Time) entities.MaintenanceRequest {
	req.Status = status
	req.IsOverdue = ComputeOverdue(req.ScheduledDate, req.Status, now)
	req.CompletedDate = ResolveCompletedDate(req.CompletedDate, req.Status, now)
	return req
}

// ApplyRequestPatch сливает patch в заявку (null = без изменений) и пересчитывает
// просрочку по итоговым scheduled_date и status. Пустая scheduled_date снимает плановую дату.
func ApplyRequestPatch(existing entities.MaintenanceRequest, patch dto.UpdateRequestDTO, now time.Time) (entities.MaintenanceRequest, error) {
	merged := existing

	merged.Subject = utils.MergeString(patch.Subject, existing.Subject)
	merged.Description = utils.MergeStringPtr(patch.Description, existing.Description)
	merged.AssignedToID = utils.MergeUint64Ptr(patch.AssignedToID, existing.AssignedToID)
	merged.AssignedTeamID = utils.MergeUint64Ptr(patch.AssignedTeamID, existing.AssignedTeamID)
	merged.Priority = utils.MergeString(patch.Priority, existing.Priority)
	merged.HoursSpent = utils.MergeFloat64Ptr(patch.HoursSpent, existing.HoursSpent)
	merged.Notes = utils.MergeStringPtr(patch.Notes, existing.Notes)
	merged.AssignedToName = utils.MergeStringPtr(patch.AssignedToName, existing.AssignedToName)

	scheduled, err := utils.MergeDatePtr(patch.ScheduledDate, existing.ScheduledDate)
	if err != nil {
		return existing, apperrors.NewValidationError("Invalid scheduled_date")
	}
	merged.ScheduledDate = scheduled

	status := existing.Status
	if patch.Status.Valid {
		if !constants.IsValidRequestStatus(patch.Status.String) {
			return existing, apperrors.NewValidationError("Invalid status")
		}
		status = patch.Status.String
	}

	return ApplyStatus(merged, status, now), nil
}
