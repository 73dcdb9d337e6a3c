package services

import (
	"context"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"asset-desk/internal/dto"
	"asset-desk/internal/entities"
	apperrors "asset-desk/pkg/errors"
	"asset-desk/pkg/types"
)

const reportSheet = "Requests"

var reportHeaders = []string{
	"ID", "Issue type", "Status", "Employee ID", "Employee", "Asset ID", "Asset", "Description", "Request date",
}

type ReportServiceInterface interface {
	ExportRequests(ctx context.Context, session types.Session, query dto.RequestListQuery) (*excelize.File, error)
}

type ReportService struct {
	requestService RequestServiceInterface
	logger         *zap.Logger
}

func NewReportService(requestService RequestServiceInterface, logger *zap.Logger) *ReportService {
	return &ReportService{requestService: requestService, logger: logger}
}

// ExportRequests - выгрузка отфильтрованного списка заявок в XLSX.
func (s *ReportService) ExportRequests(ctx context.Context, session types.Session, query dto.RequestListQuery) (*excelize.File, error) {
	if !session.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}
	items, err := s.requestService.GetRequests(ctx, session, query)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(reportSheet, "A1", &reportHeaders); err != nil {
		return nil, err
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	f.SetCellStyle(reportSheet, "A1", "I1", style)

	for i, item := range items {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := reportRow(item)
		if err := f.SetSheetRow(reportSheet, cell, &row); err != nil {
			return nil, err
		}
	}
	f.SetColWidth(reportSheet, "E", "E", 25)
	f.SetColWidth(reportSheet, "G", "G", 25)
	f.SetColWidth(reportSheet, "H", "H", 50)

	s.logger.Info("Сформирован отчёт по заявкам", zap.Int("rows", len(items)))
	return f, nil
}

func reportRow(item entities.AssetRequest) []interface{} {
	return []interface{}{
		item.ID, item.IssueType, item.EffectiveStatus(), item.EmployeeID, item.EmployeeName,
		item.AssetID, item.AssetName, item.Description, item.RequestDate,
	}
}
