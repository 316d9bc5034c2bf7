// Package template holds the per-client calculation configuration: the
// pay basis, the deduction rules, and optionally the invoice line items.
// It is the record shape the client/template configuration store hands to
// the engine; how it is persisted is outside this module.
package template

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"go-payrun/apperror"
	"go-payrun/invoice"
	"go-payrun/payroll"
	"go-payrun/period"
)

// DefaultAnnualDivisionFactor converts annual template rates to monthly.
const DefaultAnnualDivisionFactor = 12

type ClientTemplate struct {
	ClientID string       `json:"client_id" validate:"required"`
	Name     string       `json:"name" validate:"required"`
	PayBasis period.Basis `json:"pay_basis" validate:"required,oneof=calendar_days working_days"`

	// AnnualDivisionFactor divides annual rates into pay-period rates.
	// Zero means DefaultAnnualDivisionFactor.
	AnnualDivisionFactor int `json:"annual_division_factor" validate:"gte=0"`

	Deductions []payroll.DeductionRule `json:"deductions" validate:"dive"`

	// LineItems may be empty; the invoice evaluator then falls back to
	// the standard four-line template.
	LineItems []invoice.LineItemSpec `json:"line_items" validate:"dive"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report json field names so validation errors read like the payloads
	// clients configure.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the template's structural rules and returns an
// AppError describing the first violation.
func (t ClientTemplate) Validate() error {
	if err := validate.Struct(t); err != nil {
		return apperror.MapValidationError(err)
	}
	return nil
}

// MonthlyRate converts an annual template rate using the template's
// division factor.
func (t ClientTemplate) MonthlyRate(annual decimal.Decimal) decimal.Decimal {
	factor := t.AnnualDivisionFactor
	if factor <= 0 {
		factor = DefaultAnnualDivisionFactor
	}
	return annual.Div(decimal.NewFromInt(int64(factor))).Round(payroll.MoneyPlaces)
}

// ComponentsFromAnnual builds a component set from annual rates, divided
// into pay-period amounts. Order of the input slice is preserved.
func (t ClientTemplate) ComponentsFromAnnual(annual payroll.SalaryComponentSet) payroll.SalaryComponentSet {
	monthly := make(payroll.SalaryComponentSet, 0, len(annual))
	for _, c := range annual {
		monthly = append(monthly, payroll.SalaryComponent{
			Name:   c.Name,
			Amount: t.MonthlyRate(c.Amount),
		})
	}
	return monthly
}
