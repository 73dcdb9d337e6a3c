package validation

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"asset-desk/pkg/constants"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// registerRules регистрирует теги, которые мы используем в struct tags
func registerRules(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"notblank":        isNotBlank,
		"custom_email":    isGoodEmailFormat,
		"issue_type":      isIssueType,
		"request_status":  isRequestStatus,
		"decision_status": isDecisionStatus,
		"asset_status":    isAssetStatus,
		"asset_condition": isAssetCondition,
		"role":            isRole,
		"date_ymd":        isDate,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

// isNotBlank - строка непуста после обрезки пробелов
func isNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func isGoodEmailFormat(fl validator.FieldLevel) bool {
	return emailRegex.MatchString(fl.Field().String())
}

func isIssueType(fl validator.FieldLevel) bool {
	return constants.IsKnownIssueType(fl.Field().String())
}

func isRequestStatus(fl validator.FieldLevel) bool {
	return constants.IsKnownRequestStatus(fl.Field().String())
}

// isDecisionStatus - статусы, которые может выставить администратор
func isDecisionStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case constants.RequestStatusApproved, constants.RequestStatusRejected, constants.RequestStatusUnderReview:
		return true
	}
	return false
}

func isAssetStatus(fl validator.FieldLevel) bool {
	return constants.IsKnownAssetStatus(fl.Field().String())
}

func isAssetCondition(fl validator.FieldLevel) bool {
	return constants.IsKnownAssetCondition(fl.Field().String())
}

func isRole(fl validator.FieldLevel) bool {
	return constants.IsKnownRole(strings.ToUpper(fl.Field().String()))
}

func isDate(fl validator.FieldLevel) bool {
	return dateRegex.MatchString(fl.Field().String())
}

var dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
