package template

import (
	"github.com/shopspring/decimal"

	"go-payrun/payroll"
	"go-payrun/period"
)

// DefaultStatutoryRules is the standard statutory deduction set applied
// when a client has no custom rules: pension on basic, housing and
// transport, NHF on basic, NSITF on gross.
func DefaultStatutoryRules() []payroll.DeductionRule {
	return []payroll.DeductionRule{
		{
			Name:           "pension_contribution",
			Kind:           payroll.DeductionPercentage,
			Enabled:        true,
			Rate:           decimal.NewFromInt(8),
			BaseComponents: []string{"basic_salary", "housing_allowance", "transport_allowance"},
		},
		{
			Name:           "nhf_contribution",
			Kind:           payroll.DeductionPercentage,
			Enabled:        true,
			Rate:           decimal.RequireFromString("2.5"),
			BaseComponents: []string{"basic_salary"},
		},
		{
			Name:    "nsitf_contribution",
			Kind:    payroll.DeductionPercentage,
			Enabled: true,
			Rate:    decimal.NewFromInt(1),
		},
	}
}

// Default returns a ready-to-use template for clients that have not been
// configured yet.
func Default(clientID string) ClientTemplate {
	return ClientTemplate{
		ClientID:             clientID,
		Name:                 "Standard Statutory Template",
		PayBasis:             period.BasisWorkingDays,
		AnnualDivisionFactor: DefaultAnnualDivisionFactor,
		Deductions:           DefaultStatutoryRules(),
	}
}
