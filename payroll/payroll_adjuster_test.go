package payroll_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"go-payrun/payroll"
	payrollerrors "go-payrun/payroll/errors"
)

func sampleComponents() payroll.SalaryComponentSet {
	return payroll.SalaryComponentSet{
		{Name: "basic_salary", Amount: decimal.NewFromInt(400000)},
		{Name: "housing_allowance", Amount: decimal.NewFromInt(100000)},
		{Name: "transport_allowance", Amount: decimal.NewFromInt(50000)},
		{Name: "medical_allowance", Amount: decimal.NewFromInt(50000)},
	}
}

func TestAdjustSalaryComponents(t *testing.T) {
	t.Run("prorated gross from rounded components", func(t *testing.T) {
		factor := decimal.RequireFromString("0.8182")

		adjusted, err := payroll.AdjustSalaryComponents(sampleComponents(), factor)
		assert.NoError(t, err)
		assert.Len(t, adjusted.Components, 4)

		assert.Equal(t, "327280", adjusted.Components[0].AdjustedAmount.String())
		assert.Equal(t, "81820", adjusted.Components[1].AdjustedAmount.String())
		assert.Equal(t, "40910", adjusted.Components[2].AdjustedAmount.String())
		assert.Equal(t, "40910", adjusted.Components[3].AdjustedAmount.String())
		assert.Equal(t, "490920", adjusted.Gross.String())
	})

	t.Run("factor one is identity", func(t *testing.T) {
		adjusted, err := payroll.AdjustSalaryComponents(sampleComponents(), decimal.NewFromInt(1))
		assert.NoError(t, err)

		for _, c := range adjusted.Components {
			assert.True(t, c.AdjustedAmount.Equal(c.BaseAmount), c.Name)
			assert.True(t, c.Adjustment.IsZero(), c.Name)
		}
		assert.Equal(t, "600000", adjusted.Gross.String())
	})

	t.Run("adjustment is non-positive below full attendance", func(t *testing.T) {
		adjusted, err := payroll.AdjustSalaryComponents(sampleComponents(), decimal.RequireFromString("0.5"))
		assert.NoError(t, err)

		for _, c := range adjusted.Components {
			assert.False(t, c.Adjustment.IsPositive(), c.Name)
		}
	})

	t.Run("gross monotonically non-decreasing in factor", func(t *testing.T) {
		previous := decimal.Zero
		for _, f := range []string{"0.1", "0.25", "0.5", "0.75", "0.9", "1"} {
			adjusted, err := payroll.AdjustSalaryComponents(sampleComponents(), decimal.RequireFromString(f))
			assert.NoError(t, err)
			assert.True(t, adjusted.Gross.GreaterThanOrEqual(previous), f)
			previous = adjusted.Gross
		}
	})

	t.Run("synthetic gross key resolves", func(t *testing.T) {
		adjusted, err := payroll.AdjustSalaryComponents(sampleComponents(), decimal.NewFromInt(1))
		assert.NoError(t, err)

		gross, ok := adjusted.Amount(payroll.GrossSalaryKey)
		assert.True(t, ok)
		assert.True(t, gross.Equal(adjusted.Gross))
	})

	t.Run("factor above one rejected", func(t *testing.T) {
		_, err := payroll.AdjustSalaryComponents(sampleComponents(), decimal.RequireFromString("1.01"))
		assert.ErrorIs(t, err, payrollerrors.ErrFactorOutOfRange)
	})

	t.Run("negative factor rejected", func(t *testing.T) {
		_, err := payroll.AdjustSalaryComponents(sampleComponents(), decimal.RequireFromString("-0.1"))
		assert.ErrorIs(t, err, payrollerrors.ErrFactorOutOfRange)
	})

	t.Run("half-up rounding on adjusted amounts", func(t *testing.T) {
		components := payroll.SalaryComponentSet{
			{Name: "basic_salary", Amount: decimal.RequireFromString("100.01")},
		}

		adjusted, err := payroll.AdjustSalaryComponents(components, decimal.RequireFromString("0.5"))
		assert.NoError(t, err)
		// 50.005 rounds up to 50.01.
		assert.Equal(t, "50.01", adjusted.Components[0].AdjustedAmount.String())
	})
}
