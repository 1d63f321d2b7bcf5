package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/utils"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Колонки инвентарной ведомости. Шапка ищется по подстроке в названии колонки.
const (
	colName = iota
	colSerial
	colCategory
	colDepartment
	colLocation
	colPurchaseDate
	colWarranty
	colCount
)

var importHeaderKeywords = [colCount][]string{
	colName:         {"name", "наименование"},
	colSerial:       {"serial", "серийный"},
	colCategory:     {"category", "категория"},
	colDepartment:   {"department", "подразделение"},
	colLocation:     {"location", "место"},
	colPurchaseDate: {"purchase", "покупк"},
	colWarranty:     {"warranty", "гаранти"},
}

type ImportResult struct {
	Created int
	Skipped int
}

type EquipmentImportService struct {
	equipmentRepo repositories.EquipmentRepositoryInterface
	logger        *zap.Logger
}

func NewEquipmentImportService(equipmentRepo repositories.EquipmentRepositoryInterface, logger *zap.Logger) *EquipmentImportService {
	return &EquipmentImportService{equipmentRepo: equipmentRepo, logger: logger}
}

// ImportXLSX читает первую книгу с подходящей шапкой и создаёт оборудование построчно.
// Дубликаты серийных номеров пропускаются, остальные ошибки прерывают импорт.
func (s *EquipmentImportService) ImportXLSX(ctx context.Context, r io.Reader) (ImportResult, error) {
	var result ImportResult

	f, err := excelize.OpenReader(r)
	if err != nil {
		return result, fmt.Errorf("ошибка открытия файла: %w", err)
	}
	defer f.Close()

	var items []entities.Equipment
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return result, err
		}
		parsed, skipped, ok := ParseEquipmentRows(rows)
		if !ok {
			continue
		}
		s.logger.Info("Импорт: шапка найдена", zap.String("sheet", sheet), zap.Int("rows", len(parsed)))
		items = parsed
		result.Skipped += skipped
		break
	}
	if items == nil {
		return result, errors.New("не найдена шапка таблицы: нужны колонки name и serial")
	}

	for i := range items {
		if _, err := s.equipmentRepo.CreateEquipment(ctx, &items[i]); err != nil {
			if errors.Is(err, apperrors.ErrConflict) {
				s.logger.Warn("Импорт: серийный номер уже есть", zap.String("serial_number", items[i].SerialNumber))
				result.Skipped++
				continue
			}
			return result, err
		}
		result.Created++
	}
	return result, nil
}

// ParseEquipmentRows ищет строку-шапку и разбирает всё, что ниже неё.
// Строки без имени или серийного номера считаются пропущенными.
func ParseEquipmentRows(rows [][]string) (items []entities.Equipment, skipped int, ok bool) {
	headerRow, index := findImportHeader(rows)
	if headerRow < 0 {
		return nil, 0, false
	}

	items = []entities.Equipment{}
	for _, row := range rows[headerRow+1:] {
		cell := func(col int) string {
			i := index[col]
			if i < 0 || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		name, serial := cell(colName), cell(colSerial)
		if name == "" && serial == "" {
			continue
		}
		if name == "" || serial == "" {
			skipped++
			continue
		}

		item := entities.Equipment{
			Name:         name,
			SerialNumber: serial,
			Category:     constants.DefaultEquipmentCategory,
			Status:       constants.EquipmentStatusActive,
		}
		if v := cell(colCategory); v != "" {
			item.Category = v
		}
		if v := cell(colDepartment); v != "" {
			item.Department = utils.ToPtr(v)
		}
		if v := cell(colLocation); v != "" {
			item.Location = utils.ToPtr(v)
		}
		if v := cell(colPurchaseDate); v != "" {
			if t, err := utils.ParseDate(v); err == nil {
				item.PurchaseDate = &t
			}
		}
		if v := cell(colWarranty); v != "" {
			if t, err := utils.ParseDate(v); err == nil {
				item.WarrantyExpiry = &t
			}
		}
		items = append(items, item)
	}
	return items, skipped, true
}

func findImportHeader(rows [][]string) (int, [colCount]int) {
	for rIdx, row := range rows {
		var index [colCount]int
		for i := range index {
			index[i] = -1
		}
		for cIdx, raw := range row {
			title := strings.ToLower(strings.TrimSpace(raw))
			if title == "" {
				continue
			}
			for col, keywords := range importHeaderKeywords {
				if index[col] != -1 {
					continue
				}
				for _, kw := range keywords {
					if strings.Contains(title, kw) {
						index[col] = cIdx
						break
					}
				}
			}
		}
		if index[colName] != -1 && index[colSerial] != -1 && index[colName] != index[colSerial] {
			return rIdx, index
		}
	}
	var none [colCount]int
	return -1, none
}
