package database

import (
	"fmt"
	"strings"
)

// Допустимые значения enum-полей.
// Неизвестное значение отклоняется на пути записи (ErrValidation),
// до классификатора и агрегатора такие данные не доходят.
var (
	allowedPaymentTerms = map[string]bool{
		"quarterly":   true,
		"semi_annual": true,
		"annual":      true,
	}

	allowedContractStatuses = map[string]bool{
		"active":   true,
		"inactive": true,
	}

	allowedPaymentStatuses = map[string]bool{
		"received": true,
		"pending":  true,
		"overdue":  true,
		"partial":  true,
	}

	allowedPaymentMethods = map[string]bool{
		"bank_transfer": true,
		"cheque":        true,
		"online":        true,
		"cash":          true,
	}

	allowedComplaintPriorities = map[string]bool{
		"high":   true,
		"medium": true,
		"low":    true,
	}

	allowedComplaintStatuses = map[string]bool{
		"open":        true,
		"assigned":    true,
		"in_progress": true,
		"resolved":    true,
	}

	allowedScheduleStatuses = map[string]bool{
		"scheduled": true,
		"completed": true,
		"cancelled": true,
	}
)

// validateEnum проверяет значение enum-поля по whitelist
func validateEnum(field, value string, allowed map[string]bool) error {
	if !allowed[value] {
		return fmt.Errorf("%w: unknown %s %q (allowed: %s)",
			ErrValidation, field, value, strings.Join(enumKeys(allowed), ", "))
	}
	return nil
}

// validateRequired проверяет, что обязательное строковое поле заполнено
func validateRequired(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is required", ErrValidation, field)
	}
	return nil
}

// validateDate проверяет формат календарной даты ISO-8601
func validateDate(field, value string) error {
	if _, err := parseISODate(value); err != nil {
		return fmt.Errorf("%w: %s must be an ISO-8601 date: %v", ErrValidation, field, err)
	}
	return nil
}

func enumKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
