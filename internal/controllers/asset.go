package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"asset-desk/internal/dto"
	"asset-desk/internal/entities"
	"asset-desk/internal/services"
	apperrors "asset-desk/pkg/errors"
	"asset-desk/pkg/utils"
)

type AssetController struct {
	assetService services.AssetServiceInterface
	importer     *services.AssetImporter
	logger       *zap.Logger
}

func NewAssetController(assetService services.AssetServiceInterface, importer *services.AssetImporter, logger *zap.Logger) *AssetController {
	return &AssetController{assetService: assetService, importer: importer, logger: logger}
}

func (c *AssetController) GetAssets(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	res, total, err := c.assetService.GetAssets(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if res == nil {
		res = make([]entities.Asset, 0)
	}
	return utils.SuccessResponse(ctx, res, "Assets fetched", http.StatusOK, total)
}

func (c *AssetController) FindAsset(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	res, err := c.assetService.FindAsset(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Asset fetched", http.StatusOK)
}

// GetAvailable - GET /assets/available?search=&category=.
func (c *AssetController) GetAvailable(ctx echo.Context) error {
	var query dto.AvailableAssetsQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(ctx, &query); err != nil {
		return utils.ErrorResponse(ctx, badRequest("Invalid query parameters", err), c.logger)
	}

	res, err := c.assetService.GetAvailableForRequest(ctx.Request().Context(), query)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Available assets fetched", http.StatusOK)
}

func (c *AssetController) GetByStatus(ctx echo.Context) error {
	res, err := c.assetService.GetAssetsByStatus(ctx.Request().Context(), ctx.Param("status"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if res == nil {
		res = make([]entities.Asset, 0)
	}
	return utils.SuccessResponse(ctx, res, "Assets fetched", http.StatusOK)
}

func (c *AssetController) GetAssigned(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	session, err := utils.GetSessionFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	employeeID, err := parseIDParam(ctx, "employeeId")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.assetService.GetAssignedAssets(reqCtx, session, employeeID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if res == nil {
		res = make([]entities.Asset, 0)
	}
	return utils.SuccessResponse(ctx, res, "Assets fetched", http.StatusOK)
}

func (c *AssetController) CreateAsset(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	session, err := utils.GetSessionFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.AssetDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, badRequest("Invalid request body", err), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.assetService.CreateAsset(reqCtx, session, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Asset created", http.StatusCreated)
}

func (c *AssetController) UpdateAsset(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	session, err := utils.GetSessionFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.AssetDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, badRequest("Invalid request body", err), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.assetService.UpdateAsset(reqCtx, session, id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Asset updated", http.StatusOK)
}

func (c *AssetController) DeleteAsset(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	session, err := utils.GetSessionFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.assetService.DeleteAsset(reqCtx, session, id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, struct{}{}, "Asset deleted", http.StatusOK)
}

// ImportAssets - POST /assets/import, XLSX в поле file.
func (c *AssetController) ImportAssets(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	session, err := utils.GetSessionFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusBadRequest, "File is required", nil, nil),
			c.logger,
		)
	}
	src, err := fileHeader.Open()
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusInternalServerError, "Could not read the uploaded file", err, nil),
			c.logger,
		)
	}
	defer src.Close()

	res, err := c.importer.Import(reqCtx, session, src)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Assets imported", http.StatusOK)
}
