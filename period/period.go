package period

import (
	"net/http"
	"time"

	"go-payrun/apperror"
)

// Basis is the client's pay calculation basis: how many days a full month
// of attendance represents.
type Basis string

const (
	BasisCalendarDays Basis = "calendar_days"
	BasisWorkingDays  Basis = "working_days"
)

var (
	ErrInvalidBasis = apperror.New(
		apperror.CodeInvalidPeriod,
		"invalid pay calculation basis, must be working_days or calendar_days",
		http.StatusBadRequest,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidPeriod,
		"invalid period, month must be 1-12 and year positive",
		http.StatusBadRequest,
	)
)

// Valid reports whether b is one of the supported bases.
func (b Basis) Valid() bool {
	return b == BasisCalendarDays || b == BasisWorkingDays
}

// TotalDays returns the applicable days in the given month for the basis:
// every day for calendar_days, Monday-Friday only for working_days.
func TotalDays(basis Basis, month, year int) (int, error) {
	if month < 1 || month > 12 || year <= 0 {
		return 0, ErrInvalidPeriod
	}

	switch basis {
	case BasisCalendarDays:
		return daysInMonth(month, year), nil
	case BasisWorkingDays:
		return workingDaysInMonth(month, year), nil
	default:
		return 0, ErrInvalidBasis
	}
}

func daysInMonth(month, year int) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func workingDaysInMonth(month, year int) int {
	total := daysInMonth(month, year)
	working := 0
	for day := 1; day <= total; day++ {
		weekday := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Weekday()
		if weekday != time.Saturday && weekday != time.Sunday {
			working++
		}
	}
	return working
}
