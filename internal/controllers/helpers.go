package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "asset-desk/pkg/errors"
)

// parseIDParam читает числовой параметр пути.
func parseIDParam(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewHttpError(http.StatusBadRequest, "Invalid "+name+" format", nil, map[string]interface{}{name: c.Param(name)})
	}
	return id, nil
}

func badRequest(message string, err error) error {
	return apperrors.NewHttpError(http.StatusBadRequest, message, nil, map[string]interface{}{"cause": errString(err)})
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
