package payroll

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"go-payrun/period"
)

// batchWorkers bounds the per-employee parallelism of a batch run.
// Results are re-assembled in input order regardless.
const batchWorkers = 8

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	CalculatePayroll(ctx context.Context, employee Employee, daysWorked float64, basis period.Basis, month, year int, rules []DeductionRule) (PayrollResult, error)
	CalculateBatch(ctx context.Context, records []AttendanceRecord, basis period.Basis, month, year int, rules []DeductionRule) ([]PayrollResult, BatchSummary, []BatchError)
}

// EmployeeResolver looks up an employee's compensation structure. Backed
// by the HR data store outside this engine.
type EmployeeResolver interface {
	ResolveEmployee(ctx context.Context, employeeID string) (Employee, error)
}

// Config tunes template-level calculation behavior.
type Config struct {
	// AnnualDivisionFactor converts annual rule amounts to monthly ones.
	// Zero means 12.
	AnnualDivisionFactor int
}

type service struct {
	resolver EmployeeResolver
	cfg      Config
}

func NewService(resolver EmployeeResolver) Service {
	return NewServiceWithConfig(resolver, Config{})
}

func NewServiceWithConfig(resolver EmployeeResolver, cfg Config) Service {
	return &service{resolver: resolver, cfg: cfg}
}

func (s *service) CalculatePayroll(
	ctx context.Context,
	employee Employee,
	daysWorked float64,
	basis period.Basis,
	month, year int,
	rules []DeductionRule,
) (PayrollResult, error) {
	totalDays, err := period.TotalDays(basis, month, year)
	if err != nil {
		return PayrollResult{}, err
	}

	factor, err := AttendanceFactor(daysWorked, totalDays)
	if err != nil {
		return PayrollResult{}, err
	}

	adjusted, err := AdjustSalaryComponents(employee.Components, factor)
	if err != nil {
		return PayrollResult{}, err
	}

	deductions, totalDeductions, err := EvaluateDeductions(adjusted, rules, DeductionContext{
		Factor:               factor,
		AnnualDivisionFactor: s.cfg.AnnualDivisionFactor,
	})
	if err != nil {
		return PayrollResult{}, err
	}

	result := PayrollResult{
		EmployeeID:         employee.ID,
		EmployeeName:       employee.Name,
		AttendanceFactor:   factor.Round(FactorPlaces),
		AdjustedComponents: adjusted,
		GrossSalary:        adjusted.Gross,
		Deductions:         deductions,
		TotalDeductions:    totalDeductions,
		NetSalary:          adjusted.Gross.Sub(totalDeductions),
		// Gross plus deductions: the disbursement covers net pay and the
		// deduction remittances.
		CreditToBank: adjusted.Gross.Add(totalDeductions),
	}

	zap.L().Debug("payroll calculated",
		zap.String("employee_id", employee.ID),
		zap.String("attendance_factor", result.AttendanceFactor.String()),
		zap.String("gross_salary", result.GrossSalary.String()),
		zap.String("net_salary", result.NetSalary.String()),
	)

	return result, nil
}

func (s *service) CalculateBatch(
	ctx context.Context,
	records []AttendanceRecord,
	basis period.Basis,
	month, year int,
	rules []DeductionRule,
) ([]PayrollResult, BatchSummary, []BatchError) {
	type slot struct {
		result PayrollResult
		err    error
	}
	slots := make([]slot, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchWorkers)

	for i, record := range records {
		i, record := i, record
		g.Go(func() error {
			employee, err := s.resolver.ResolveEmployee(gctx, record.EmployeeID)
			if err != nil {
				slots[i] = slot{err: err}
				return nil
			}

			result, err := s.CalculatePayroll(gctx, employee, record.DaysWorked, basis, month, year, rules)
			slots[i] = slot{result: result, err: err}
			return nil
		})
	}

	// Workers never return errors; failures are collected per record.
	_ = g.Wait()

	results := make([]PayrollResult, 0, len(records))
	var batchErrors []BatchError
	summary := BatchSummary{
		TotalGross:        decimal.Zero,
		TotalNet:          decimal.Zero,
		TotalCreditToBank: decimal.Zero,
		TotalDeductions:   decimal.Zero,
	}

	for i, st := range slots {
		if st.err != nil {
			zap.L().Warn("batch record failed",
				zap.Int("index", i),
				zap.String("employee_id", records[i].EmployeeID),
				zap.Error(st.err),
			)
			batchErrors = append(batchErrors, BatchError{
				Index:      i,
				EmployeeID: records[i].EmployeeID,
				Err:        st.err,
			})
			continue
		}

		results = append(results, st.result)
		summary.TotalEmployees++
		summary.TotalGross = summary.TotalGross.Add(st.result.GrossSalary)
		summary.TotalNet = summary.TotalNet.Add(st.result.NetSalary)
		summary.TotalCreditToBank = summary.TotalCreditToBank.Add(st.result.CreditToBank)
		summary.TotalDeductions = summary.TotalDeductions.Add(st.result.TotalDeductions)
	}

	zap.L().Info("batch calculation completed",
		zap.Int("records", len(records)),
		zap.Int("succeeded", summary.TotalEmployees),
		zap.Int("failed", len(batchErrors)),
		zap.String("total_gross", summary.TotalGross.String()),
		zap.String("total_credit_to_bank", summary.TotalCreditToBank.String()),
	)

	return results, summary, batchErrors
}
