package payroll

import (
	"github.com/shopspring/decimal"

	payrollerrors "go-payrun/payroll/errors"
)

// AttendanceFactor derives the proration ratio days worked / total days,
// capped at 1.0. Over-attendance is not an error: mid-month hires are
// routinely recorded with more days than the basis allows, and the cap is
// the intended handling. The returned ratio is unrounded; callers round to
// FactorPlaces only for display.
func AttendanceFactor(daysWorked float64, totalDays int) (decimal.Decimal, error) {
	if daysWorked < 0 {
		return decimal.Zero, payrollerrors.ErrNegativeDaysWorked
	}
	if totalDays <= 0 {
		return decimal.Zero, payrollerrors.ErrInvalidTotalDays
	}

	factor := decimal.NewFromFloat(daysWorked).Div(decimal.NewFromInt(int64(totalDays)))

	one := decimal.NewFromInt(1)
	if factor.GreaterThan(one) {
		factor = one
	}
	return factor, nil
}
