package payroll

import (
	"github.com/shopspring/decimal"

	payrollerrors "go-payrun/payroll/errors"
)

// AdjustSalaryComponents scales every component by the attendance factor.
// Each adjusted amount is rounded to MoneyPlaces half-up and the gross is
// the sum of the rounded amounts, so the per-component figures always add
// up to the reported gross.
func AdjustSalaryComponents(components SalaryComponentSet, factor decimal.Decimal) (AdjustedComponentSet, error) {
	one := decimal.NewFromInt(1)
	if factor.IsNegative() || factor.GreaterThan(one) {
		return AdjustedComponentSet{}, payrollerrors.ErrFactorOutOfRange
	}

	adjusted := AdjustedComponentSet{
		Components: make([]AdjustedComponent, 0, len(components)),
		Gross:      decimal.Zero,
	}

	for _, c := range components {
		adjustedAmount := c.Amount.Mul(factor).Round(MoneyPlaces)

		adjusted.Components = append(adjusted.Components, AdjustedComponent{
			Name:             c.Name,
			BaseAmount:       c.Amount,
			AdjustedAmount:   adjustedAmount,
			AttendanceFactor: factor.Round(FactorPlaces),
			Adjustment:       adjustedAmount.Sub(c.Amount),
		})

		adjusted.Gross = adjusted.Gross.Add(adjustedAmount)
	}

	return adjusted, nil
}
