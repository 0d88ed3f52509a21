package repository

import (
	"strings"

	"alcyxob/gym-management/internal/domain"
)

// Bounds accepted by the MemberRepository registration month queries.
const (
	MinRegistrationYear = 1900
	MaxRegistrationYear = 2100
)

// RequireID rejects blank identifiers and lookup keys before they reach storage.
func RequireID(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return domain.NewError(domain.ErrInvalidArgument, "%s cannot be empty", field)
	}
	return nil
}

// ValidateRegistrationMonth checks the year and month of a monthly report.
func ValidateRegistrationMonth(year, month int) error {
	if year < MinRegistrationYear || year > MaxRegistrationYear {
		return domain.NewError(domain.ErrInvalidArgument, "year must be between %d and %d", MinRegistrationYear, MaxRegistrationYear)
	}
	if month < 1 || month > 12 {
		return domain.NewError(domain.ErrInvalidArgument, "month must be between 1 and 12")
	}
	return nil
}
