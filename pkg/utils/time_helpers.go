package utils

import (
	"fmt"
	"time"

	"asset-desk/pkg/constants"
)

// Today - календарная дата по локальному времени сервера, "YYYY-MM-DD".
func Today(now time.Time) string {
	return now.Format(constants.DateLayout)
}

// ParseDate проверяет строку даты "YYYY-MM-DD".
func ParseDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(constants.DateLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("некорректная дата %q: %w", value, err)
	}
	return t, nil
}
