package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aarondl/null/v8"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"asset-desk/internal/dto"
	"asset-desk/pkg/constants"
	apperrors "asset-desk/pkg/errors"
	"asset-desk/pkg/types"
)

// ImportResult - итог импорта активов.
type ImportResult struct {
	Created int      `json:"created"`
	Skipped int      `json:"skipped"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"`
}

// AssetImporter загружает активы из XLSX через AssetService,
// поэтому правила валидации и сброс кеша те же, что и у API.
type AssetImporter struct {
	assetService AssetServiceInterface
	logger       *zap.Logger
}

func NewAssetImporter(assetService AssetServiceInterface, logger *zap.Logger) *AssetImporter {
	return &AssetImporter{assetService: assetService, logger: logger}
}

type importColumns struct {
	name, number, category, status, condition, purchased int
}

// Import читает первый лист, на котором найдена шапка с колонками name и asset number.
// Дубликаты assetNumber пропускаются.
func (s *AssetImporter) Import(ctx context.Context, session types.Session, r io.Reader) (*ImportResult, error) {
	if !session.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("file is not a valid XLSX workbook: %v", err)
	}
	defer f.Close()

	rows, headerRow, cols, err := findImportHeader(f)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	for i := headerRow + 1; i < len(rows); i++ {
		row := rows[i]
		payload := dto.AssetDTO{
			Name:           safeGet(row, cols.name),
			AssetNumber:    safeGet(row, cols.number),
			CategoryName:   safeGet(row, cols.category),
			Status:         safeGet(row, cols.status),
			AssetCondition: safeGet(row, cols.condition),
		}
		if payload.Name == "" && payload.AssetNumber == "" {
			continue
		}
		if payload.Status == "" {
			payload.Status = constants.AssetStatusAvailable
		}
		if payload.AssetCondition == "" {
			payload.AssetCondition = constants.AssetConditionGood
		}
		if d := safeGet(row, cols.purchased); d != "" {
			payload.PurchasedDate = null.StringFrom(d)
		}

		_, err := s.assetService.CreateAsset(ctx, session, payload)
		switch {
		case err == nil:
			result.Created++
		case errors.Is(err, apperrors.ErrConflict):
			result.Skipped++
		default:
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+1, err))
		}
	}

	s.logger.Info("Импорт активов завершён",
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed),
	)
	return result, nil
}

func findImportHeader(f *excelize.File) ([][]string, int, importColumns, error) {
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, 0, importColumns{}, err
		}
		for rIdx, row := range rows {
			cols := importColumns{-1, -1, -1, -1, -1, -1}
			for cIdx, title := range row {
				switch normalizeHeader(title) {
				case "name":
					cols.name = cIdx
				case "assetnumber", "number":
					cols.number = cIdx
				case "category", "categoryname":
					cols.category = cIdx
				case "status":
					cols.status = cIdx
				case "condition", "assetcondition":
					cols.condition = cIdx
				case "purchaseddate", "purchased":
					cols.purchased = cIdx
				}
			}
			if cols.name != -1 && cols.number != -1 {
				return rows, rIdx, cols, nil
			}
		}
	}
	return nil, 0, importColumns{}, apperrors.NewInvalidInputError("header row with name and asset number columns not found")
}

func normalizeHeader(in string) string {
	replacer := strings.NewReplacer(" ", "", "_", "", "-", "")
	return replacer.Replace(strings.ToLower(strings.TrimSpace(in)))
}

func safeGet(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
