package payroll

import "github.com/shopspring/decimal"

// GrossSalaryKey is the synthetic component name under which the computed
// gross is exposed, so deduction rules and invoice formulas can reference
// it the same way they reference a real component.
const GrossSalaryKey = "gross_salary"

// MoneyPlaces is the number of decimal places every monetary amount is
// rounded to, half-up, at the point it is produced.
const MoneyPlaces = 2

// FactorPlaces is the display precision of the attendance factor. The
// unrounded ratio is what feeds the arithmetic.
const FactorPlaces = 4

// SalaryComponent is one named element of an employee's compensation
// structure, e.g. basic_salary or housing_allowance.
type SalaryComponent struct {
	Name   string
	Amount decimal.Decimal
}

// SalaryComponentSet is the employee's compensation structure. Order is
// meaningful and preserved through adjustment.
type SalaryComponentSet []SalaryComponent

// Employee is the resolved compensation record the engine computes from.
type Employee struct {
	ID         string
	Name       string
	Components SalaryComponentSet
}

// AttendanceRecord is one uploaded attendance row for a pay period.
// DaysWorked may be fractional (half days).
type AttendanceRecord struct {
	EmployeeID string
	Month      int
	Year       int
	DaysWorked float64
}

// AdjustedComponent is a salary component scaled by the attendance factor.
type AdjustedComponent struct {
	Name             string
	BaseAmount       decimal.Decimal
	AdjustedAmount   decimal.Decimal
	AttendanceFactor decimal.Decimal
	// Adjustment = AdjustedAmount - BaseAmount, <= 0 whenever the factor
	// is below 1.
	Adjustment decimal.Decimal
}

// AdjustedComponentSet holds the scaled components plus the gross computed
// from them.
type AdjustedComponentSet struct {
	Components []AdjustedComponent
	Gross      decimal.Decimal
}

// Amount returns the adjusted amount for a component name. The synthetic
// gross key resolves to the computed gross.
func (s AdjustedComponentSet) Amount(name string) (decimal.Decimal, bool) {
	if name == GrossSalaryKey {
		return s.Gross, true
	}
	for _, c := range s.Components {
		if c.Name == name {
			return c.AdjustedAmount, true
		}
	}
	return decimal.Zero, false
}

type DeductionKind string

const (
	DeductionPercentage     DeductionKind = "percentage"
	DeductionFixed          DeductionKind = "fixed"
	DeductionFormula        DeductionKind = "formula"
	DeductionProratedAnnual DeductionKind = "prorated_annual"
)

// DeductionRule is one configured statutory or custom withholding.
type DeductionRule struct {
	Name    string        `json:"name" validate:"required"`
	Kind    DeductionKind `json:"kind" validate:"required,oneof=percentage fixed formula prorated_annual"`
	Enabled bool          `json:"enabled"`

	// Rate is the percentage for percentage rules and the annual amount
	// for prorated_annual rules.
	Rate decimal.Decimal `json:"rate"`
	// Amount is the literal monthly amount for fixed rules.
	Amount decimal.Decimal `json:"amount"`
	// Formula is a govaluate expression over adjusted component names plus
	// GROSS_SALARY, for formula rules.
	Formula string `json:"formula"`
	// BaseComponents lists the component names the percentage applies to.
	// Empty means the computed gross.
	BaseComponents []string `json:"base_components"`
}

// DeductionResult is one evaluated rule. Disabled rules appear with a zero
// amount so consumers can rely on key presence.
type DeductionResult struct {
	Name   string
	Amount decimal.Decimal
}

// PayrollResult is the full per-employee outcome of one calculation run.
type PayrollResult struct {
	EmployeeID         string
	EmployeeName       string
	AttendanceFactor   decimal.Decimal // rounded to FactorPlaces
	AdjustedComponents AdjustedComponentSet
	GrossSalary        decimal.Decimal
	Deductions         []DeductionResult
	TotalDeductions    decimal.Decimal
	NetSalary          decimal.Decimal
	// CreditToBank is gross plus deductions: the disbursement funds both
	// net pay and the employer's deduction remittances. Deliberate domain
	// convention, not gross minus deductions.
	CreditToBank decimal.Decimal
}

// Deduction returns the evaluated amount for a rule name.
func (r PayrollResult) Deduction(name string) (decimal.Decimal, bool) {
	for _, d := range r.Deductions {
		if d.Name == name {
			return d.Amount, true
		}
	}
	return decimal.Zero, false
}

// BatchSummary aggregates the successful results of a batch run.
type BatchSummary struct {
	TotalEmployees    int
	TotalGross        decimal.Decimal
	TotalNet          decimal.Decimal
	TotalCreditToBank decimal.Decimal
	TotalDeductions   decimal.Decimal
}

// BatchError records a per-record failure that did not abort the batch.
type BatchError struct {
	Index      int
	EmployeeID string
	Err        error
}

func (e BatchError) Error() string {
	return e.Err.Error()
}

func (e BatchError) Unwrap() error {
	return e.Err
}
