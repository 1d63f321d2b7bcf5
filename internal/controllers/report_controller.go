package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"gearguard/internal/services"
	"gearguard/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

func wantsXLSX(ctx echo.Context) bool {
	return strings.EqualFold(ctx.QueryParam("format"), "xlsx")
}

func (c *ReportController) GetDashboardStats(ctx echo.Context) error {
	res, err := c.reportService.GetDashboardStats(ctx.Request().Context())
	if err != nil {
		c.logger.Error("Dashboard: не удалось собрать статистику", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "", http.StatusOK)
}

var equipmentReportHeaders = []string{
	"ID", "Оборудование", "Категория", "Всего заявок", "Выполнено", "Просрочено",
	"Процент выполнения", "Среднее время (ч)", "Последняя заявка",
}

func (c *ReportController) GetEquipmentReport(ctx echo.Context) error {
	res, err := c.reportService.GetEquipmentReport(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if wantsXLSX(ctx) {
		rows := make([][]interface{}, 0, len(res))
		for _, r := range res {
			rows = append(rows, []interface{}{
				r.EquipmentID, r.EquipmentName, r.Category, r.TotalRequests, r.CompletedRequests,
				r.OverdueRequests, r.CompletionRate, r.AvgHoursSpent, formatReportDate(r.LastRequestDate),
			})
		}
		return c.respondWithXLSX(ctx, "equipment", "Оборудование", equipmentReportHeaders, rows)
	}
	return utils.SuccessResponse(ctx, res, "", http.StatusOK, len(res))
}

var teamReportHeaders = []string{
	"ID", "Команда", "Всего заявок", "Выполнено", "В работе", "Всего часов", "Часов на заявку", "Эффективность",
}

func (c *ReportController) GetTeamReport(ctx echo.Context) error {
	res, err := c.reportService.GetTeamReport(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if wantsXLSX(ctx) {
		rows := make([][]interface{}, 0, len(res))
		for _, r := range res {
			rows = append(rows, []interface{}{
				r.TeamID, r.TeamName, r.TotalRequests, r.CompletedRequests, r.InProgress,
				r.TotalHoursSpent, r.AvgHoursPerRequest, r.EfficiencyRate,
			})
		}
		return c.respondWithXLSX(ctx, "team", "Команды", teamReportHeaders, rows)
	}
	return utils.SuccessResponse(ctx, res, "", http.StatusOK, len(res))
}

var technicianReportHeaders = []string{
	"ID", "Техник", "Роль", "Назначено", "Выполнено", "В работе", "Всего часов", "Часов на работу", "Продуктивность",
}

func (c *ReportController) GetTechnicianReport(ctx echo.Context) error {
	res, err := c.reportService.GetTechnicianReport(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if wantsXLSX(ctx) {
		rows := make([][]interface{}, 0, len(res))
		for _, r := range res {
			rows = append(rows, []interface{}{
				r.TechnicianID, r.TechnicianName, r.Role, r.AssignedRequests, r.CompletedRequests,
				r.InProgress, r.TotalHoursSpent, r.AvgHoursPerJob, r.ProductivityRate,
			})
		}
		return c.respondWithXLSX(ctx, "technician", "Техники", technicianReportHeaders, rows)
	}
	return utils.SuccessResponse(ctx, res, "", http.StatusOK, len(res))
}

var performanceReportHeaders = []string{"Месяц", "Всего заявок", "Выполнено", "Просрочено", "Процент выполнения"}

// В xlsx уходит только помесячная динамика, общие цифры есть в JSON.
func (c *ReportController) GetPerformanceReport(ctx echo.Context) error {
	res, err := c.reportService.GetPerformanceReport(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if wantsXLSX(ctx) {
		rows := make([][]interface{}, 0, len(res.MonthlyTrends))
		for _, m := range res.MonthlyTrends {
			rows = append(rows, []interface{}{m.Month, m.TotalRequests, m.Completed, m.Overdue, m.CompletionPercentage})
		}
		return c.respondWithXLSX(ctx, "performance", "Динамика", performanceReportHeaders, rows)
	}
	return utils.SuccessResponse(ctx, res, "", http.StatusOK)
}

var downtimeReportHeaders = []string{
	"ID", "Оборудование", "Обслуживаний", "Ожидают", "Часов обслуживания", "Последнее обслуживание", "Риск",
}

func (c *ReportController) GetDowntimeReport(ctx echo.Context) error {
	res, err := c.reportService.GetDowntimeReport(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if wantsXLSX(ctx) {
		rows := make([][]interface{}, 0, len(res))
		for _, r := range res {
			rows = append(rows, []interface{}{
				r.EquipmentID, r.EquipmentName, r.MaintenanceEvents, r.CurrentPendingTasks,
				r.TotalMaintenanceHours, formatReportDate(r.LastMaintenanceDate), r.RiskLevel,
			})
		}
		return c.respondWithXLSX(ctx, "downtime", "Простои", downtimeReportHeaders, rows)
	}
	return utils.SuccessResponse(ctx, res, "", http.StatusOK, len(res))
}

var workloadReportHeaders = []string{
	"ID", "Команда", "Назначено", "Новые", "В работе", "Критичные", "Загрузка", "Дней до выполнения",
}

func (c *ReportController) GetWorkloadReport(ctx echo.Context) error {
	res, err := c.reportService.GetWorkloadReport(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if wantsXLSX(ctx) {
		rows := make([][]interface{}, 0, len(res))
		for _, r := range res {
			rows = append(rows, []interface{}{
				r.TeamID, r.TeamName, r.TotalAssigned, r.NewRequests, r.InProgress,
				r.CriticalTasks, r.WorkloadStatus, r.AvgDaysToCompletion,
			})
		}
		return c.respondWithXLSX(ctx, "workload", "Загрузка", workloadReportHeaders, rows)
	}
	return utils.SuccessResponse(ctx, res, "", http.StatusOK, len(res))
}

func formatReportDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("02.01.2006")
}

func (c *ReportController) respondWithXLSX(ctx echo.Context, name, sheet string, headers []string, rows [][]interface{}) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	lastHeader, _ := excelize.CoordinatesToCellName(len(headers), 1)
	_ = f.SetCellStyle(sheet, "A1", lastHeader, style)

	for i := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return utils.ErrorResponse(ctx, err, c.logger)
		}
	}
	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	_ = f.SetColWidth(sheet, "B", lastCol, 20)

	fileName := fmt.Sprintf("%s_report_%s.xlsx", name, time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, xlsxContentType)
	ctx.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}
