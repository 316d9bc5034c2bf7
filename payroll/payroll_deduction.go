package payroll

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/Knetic/govaluate"
	"github.com/shopspring/decimal"

	"go-payrun/apperror"
	payrollerrors "go-payrun/payroll/errors"
)

// DeductionContext carries the attendance and template context some
// deduction kinds need beyond the adjusted components.
type DeductionContext struct {
	// Factor is the unrounded, capped attendance factor for the period.
	Factor decimal.Decimal
	// AnnualDivisionFactor converts annual amounts to monthly ones.
	// Zero means the default of 12.
	AnnualDivisionFactor int
}

func (c DeductionContext) divisionFactor() decimal.Decimal {
	if c.AnnualDivisionFactor > 0 {
		return decimal.NewFromInt(int64(c.AnnualDivisionFactor))
	}
	return decimal.NewFromInt(12)
}

// EvaluateDeductions applies the rules in the order supplied. Disabled
// rules (and zero-rate percentage rules) evaluate to zero but still appear
// in the result so downstream consumers can rely on key presence. A rule
// referencing a component name absent from the adjusted set fails with
// ErrUnknownBaseComponent; missing bases are never silently defaulted.
func EvaluateDeductions(adjusted AdjustedComponentSet, rules []DeductionRule, dctx DeductionContext) ([]DeductionResult, decimal.Decimal, error) {
	results := make([]DeductionResult, 0, len(rules))
	total := decimal.Zero

	for _, rule := range rules {
		amount, err := evaluateRule(adjusted, rule, dctx)
		if err != nil {
			return nil, decimal.Zero, err
		}

		results = append(results, DeductionResult{Name: rule.Name, Amount: amount})
		total = total.Add(amount)
	}

	return results, total, nil
}

func evaluateRule(adjusted AdjustedComponentSet, rule DeductionRule, dctx DeductionContext) (decimal.Decimal, error) {
	if !rule.Enabled {
		return decimal.Zero, nil
	}

	switch rule.Kind {
	case DeductionPercentage:
		if rule.Rate.IsZero() {
			return decimal.Zero, nil
		}
		base, err := deductionBase(adjusted, rule)
		if err != nil {
			return decimal.Zero, err
		}
		return base.Mul(rule.Rate).Div(decimal.NewFromInt(100)).Round(MoneyPlaces), nil

	case DeductionFixed:
		// Fixed amounts are not attendance-prorated.
		return rule.Amount.Round(MoneyPlaces), nil

	case DeductionFormula:
		return evaluateFormulaRule(adjusted, rule)

	case DeductionProratedAnnual:
		monthly := rule.Rate.Div(dctx.divisionFactor())
		return monthly.Mul(dctx.Factor).Round(MoneyPlaces), nil

	default:
		return decimal.Zero, apperror.Wrap(
			fmt.Errorf("rule %q has kind %q", rule.Name, rule.Kind),
			apperror.CodeInvalidInput,
			payrollerrors.ErrInvalidDeductionRule.Message,
			http.StatusBadRequest,
		)
	}
}

// deductionBase sums the adjusted amounts of the rule's declared base
// components. An empty list means the computed gross.
func deductionBase(adjusted AdjustedComponentSet, rule DeductionRule) (decimal.Decimal, error) {
	if len(rule.BaseComponents) == 0 {
		return adjusted.Gross, nil
	}

	base := decimal.Zero
	for _, name := range rule.BaseComponents {
		amount, ok := adjusted.Amount(name)
		if !ok {
			return decimal.Zero, apperror.Wrap(
				fmt.Errorf("rule %q references %q", rule.Name, name),
				apperror.CodeUnknownBaseComponent,
				payrollerrors.ErrUnknownBaseComponent.Message,
				http.StatusUnprocessableEntity,
			)
		}
		base = base.Add(amount)
	}
	return base, nil
}

var sumCallPattern = regexp.MustCompile(`(?i)SUM\s*\(`)

// evaluateFormulaRule evaluates a free-text expression against the
// adjusted component values. SUM(...) is legacy template syntax for plain
// grouping and is normalized away before parsing.
func evaluateFormulaRule(adjusted AdjustedComponentSet, rule DeductionRule) (decimal.Decimal, error) {
	if strings.TrimSpace(rule.Formula) == "" {
		return decimal.Zero, apperror.Wrap(
			fmt.Errorf("rule %q has an empty formula", rule.Name),
			apperror.CodeInvalidInput,
			payrollerrors.ErrInvalidFormula.Message,
			http.StatusBadRequest,
		)
	}

	expr := sumCallPattern.ReplaceAllString(rule.Formula, "(")

	expression, err := govaluate.NewEvaluableExpression(expr)
	if err != nil {
		return decimal.Zero, apperror.Wrap(err,
			apperror.CodeInvalidInput,
			payrollerrors.ErrInvalidFormula.Message,
			http.StatusBadRequest,
		)
	}

	params := make(map[string]interface{}, len(adjusted.Components)+2)
	for _, c := range adjusted.Components {
		params[c.Name], _ = c.AdjustedAmount.Float64()
	}
	params[GrossSalaryKey], _ = adjusted.Gross.Float64()
	params["GROSS_SALARY"], _ = adjusted.Gross.Float64()

	value, err := expression.Evaluate(params)
	if err != nil {
		return decimal.Zero, apperror.Wrap(err,
			apperror.CodeInvalidInput,
			payrollerrors.ErrInvalidFormula.Message,
			http.StatusBadRequest,
		)
	}

	number, ok := value.(float64)
	if !ok {
		return decimal.Zero, apperror.Wrap(
			fmt.Errorf("rule %q formula yielded %T, want number", rule.Name, value),
			apperror.CodeInvalidInput,
			payrollerrors.ErrInvalidFormula.Message,
			http.StatusBadRequest,
		)
	}

	return decimal.NewFromFloat(number).Round(MoneyPlaces), nil
}
