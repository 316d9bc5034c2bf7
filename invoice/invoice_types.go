package invoice

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Well-known seed keys every invoice run starts from.
const (
	KeyTotalEmployerCosts = "TOTAL_EMPLOYER_COSTS"
	KeyTotalStaffCount    = "TOTAL_STAFF_COUNT"
)

type FormulaType string

const (
	// FormulaComponent copies an already-computed value.
	FormulaComponent FormulaType = "component"
	// FormulaPercentage is a percentage of a base value.
	FormulaPercentage FormulaType = "percentage"
	// FormulaPercentageSubtraction is a negative percentage of a base
	// value, for expressing deductions inside the running total.
	FormulaPercentageSubtraction FormulaType = "percentage_subtraction"
	// FormulaSum totals a list of other values.
	FormulaSum FormulaType = "sum"
	// FormulaFixedAmount is a configured literal.
	FormulaFixedAmount FormulaType = "fixed_amount"
	// FormulaPerStaff is an amount multiplied by the staff count.
	FormulaPerStaff FormulaType = "per_staff"
)

// LineItemSpec is one configured invoice row. Items are sorted ascending
// by Order (stable) before evaluation; references between items use ids,
// depends_on aliases, or the well-known seed keys.
type LineItemSpec struct {
	ID             string          `json:"id" validate:"required"`
	Name           string          `json:"name" validate:"required"`
	Order          int             `json:"order"`
	FormulaType    FormulaType     `json:"formula_type" validate:"required,oneof=component percentage percentage_subtraction sum fixed_amount per_staff"`
	DependsOn      string          `json:"depends_on"`
	BaseComponent  string          `json:"base_component"`
	Percentage     decimal.Decimal `json:"percentage"`
	Amount         decimal.Decimal `json:"amount"`
	AmountPerStaff decimal.Decimal `json:"amount_per_staff"`
	SumItems       []string        `json:"sum_items"`
}

// LineItemValue is one evaluated invoice row, in presentation order.
type LineItemValue struct {
	ItemNumber int
	Name       string
	Value      decimal.Decimal
}

// Invoice is the outcome of one invoice run over a payroll batch.
type Invoice struct {
	RunID          uuid.UUID
	Month          int
	Year           int
	TotalEmployees int
	LineItems      []LineItemValue
	GeneratedAt    time.Time
}

// Total returns the value of the last line item, which by convention is
// the total invoice value in both the default and client templates.
func (inv Invoice) Total() decimal.Decimal {
	if len(inv.LineItems) == 0 {
		return decimal.Zero
	}
	return inv.LineItems[len(inv.LineItems)-1].Value
}
