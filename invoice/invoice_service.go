package invoice

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"go-payrun/payroll"
)

//go:generate mockgen -source=invoice_service.go -destination=mock/invoice_service_mock.go -package=mock
type Service interface {
	EvaluateInvoice(ctx context.Context, items []LineItemSpec, seed map[string]decimal.Decimal) ([]LineItemValue, error)
	Generate(ctx context.Context, items []LineItemSpec, results []payroll.PayrollResult, month, year int) (Invoice, error)
}

type service struct{}

func NewService() Service {
	return &service{}
}

// BuildSeed derives the evaluator seed table from a payroll batch. Total
// employer costs is the sum of every employee's gross plus deductions,
// which is exactly the credit-to-bank total.
func BuildSeed(results []payroll.PayrollResult) map[string]decimal.Decimal {
	totalCosts := decimal.Zero
	for _, r := range results {
		totalCosts = totalCosts.Add(r.GrossSalary).Add(r.TotalDeductions)
	}

	return map[string]decimal.Decimal{
		KeyTotalEmployerCosts: totalCosts,
		KeyTotalStaffCount:    decimal.NewFromInt(int64(len(results))),
	}
}

func (s *service) EvaluateInvoice(ctx context.Context, items []LineItemSpec, seed map[string]decimal.Decimal) ([]LineItemValue, error) {
	return Evaluate(items, seed)
}

func (s *service) Generate(
	ctx context.Context,
	items []LineItemSpec,
	results []payroll.PayrollResult,
	month, year int,
) (Invoice, error) {
	seed := BuildSeed(results)

	rows, err := Evaluate(items, seed)
	if err != nil {
		zap.L().Error("invoice evaluation failed",
			zap.Int("line_items", len(items)),
			zap.Error(err),
		)
		return Invoice{}, err
	}

	inv := Invoice{
		RunID:          uuid.New(),
		Month:          month,
		Year:           year,
		TotalEmployees: len(results),
		LineItems:      rows,
		GeneratedAt:    time.Now().UTC(),
	}

	zap.L().Info("invoice generated",
		zap.String("run_id", inv.RunID.String()),
		zap.Int("total_employees", inv.TotalEmployees),
		zap.Int("line_items", len(rows)),
		zap.String("total_invoice_value", inv.Total().String()),
	)

	return inv, nil
}
