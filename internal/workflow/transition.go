// Package workflow содержит правила согласования заявок: допустимые переходы
// статусов, проекцию статуса актива и выборки для экранов списка.
// Пакет не работает с БД, сервисы применяют его внутри транзакции.
package workflow

import (
	"strings"

	"asset-desk/internal/entities"
	"asset-desk/pkg/constants"
	apperrors "asset-desk/pkg/errors"
)

// DecisionStatuses - статусы, которые администратор может выбрать.
var DecisionStatuses = []string{
	constants.RequestStatusApproved,
	constants.RequestStatusRejected,
	constants.RequestStatusUnderReview,
}

func IsDecisionStatus(status string) bool {
	for _, s := range DecisionStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// NormalizeStatus приводит ввод к виду кодов статусов.
func NormalizeStatus(status string) string {
	return strings.ToUpper(strings.TrimSpace(status))
}

// RequiresConfirmation - APPROVED и REJECTED необратимы.
func RequiresConfirmation(next string) bool {
	return constants.IsFinalRequestStatus(next)
}

// ValidateDecision проверяет решение до обращения к хранилищу.
func ValidateDecision(next string, confirmed bool) error {
	if !IsDecisionStatus(next) {
		return apperrors.NewInvalidInputError("status must be one of APPROVED, REJECTED, UNDER_REVIEW, got %q", next)
	}
	if RequiresConfirmation(next) && !confirmed {
		return apperrors.ErrConfirmationRequired
	}
	return nil
}

// CheckTransition проверяет переход из текущего эффективного статуса.
// Из финальных статусов (и из RESOLVED сервисных обращений) переходов нет.
func CheckTransition(current, next string) error {
	if !IsDecisionStatus(next) {
		return apperrors.NewInvalidInputError("status must be one of APPROVED, REJECTED, UNDER_REVIEW, got %q", next)
	}
	return CheckEditable(current)
}

// Apply возвращает заявку с новым статусом, если переход допустим.
func Apply(req entities.AssetRequest, next string) (entities.AssetRequest, error) {
	if err := CheckTransition(req.EffectiveStatus(), next); err != nil {
		return req, err
	}
	req.Status.SetValid(next)
	return req, nil
}

// CheckEditable - менять можно только заявку, которая ждёт решения.
func CheckEditable(current string) error {
	switch current {
	case constants.RequestStatusPending, constants.RequestStatusUnderReview:
		return nil
	}
	return apperrors.ErrInvalidTransition
}
