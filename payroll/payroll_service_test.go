package payroll_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"go-payrun/payroll"
	payrollerrors "go-payrun/payroll/errors"
	"go-payrun/period"
)

type fakeResolver struct {
	resolveFn func(ctx context.Context, employeeID string) (payroll.Employee, error)
}

func (f *fakeResolver) ResolveEmployee(ctx context.Context, employeeID string) (payroll.Employee, error) {
	return f.resolveFn(ctx, employeeID)
}

func statutoryRules() []payroll.DeductionRule {
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

func TestService_CalculatePayroll(t *testing.T) {
	svc := payroll.NewService(&fakeResolver{})
	ctx := context.Background()

	employee := payroll.Employee{
		ID:         "EMP-001",
		Name:       "Ada Obi",
		Components: sampleComponents(),
	}

	t.Run("full attendance", func(t *testing.T) {
		result, err := svc.CalculatePayroll(ctx, employee, 22, period.BasisWorkingDays, 9, 2025, statutoryRules())
		assert.NoError(t, err)

		assert.Equal(t, "1", result.AttendanceFactor.String())
		assert.Equal(t, "600000", result.GrossSalary.String())

		pension, ok := result.Deduction("pension_contribution")
		assert.True(t, ok)
		assert.Equal(t, "44000", pension.String())

		nhf, ok := result.Deduction("nhf_contribution")
		assert.True(t, ok)
		assert.Equal(t, "10000", nhf.String())

		nsitf, ok := result.Deduction("nsitf_contribution")
		assert.True(t, ok)
		assert.Equal(t, "6000", nsitf.String())

		assert.Equal(t, "60000", result.TotalDeductions.String())
		assert.Equal(t, "540000", result.NetSalary.String())
		assert.Equal(t, "660000", result.CreditToBank.String())
	})

	t.Run("partial attendance on working days basis", func(t *testing.T) {
		result, err := svc.CalculatePayroll(ctx, employee, 18, period.BasisWorkingDays, 9, 2025, statutoryRules())
		assert.NoError(t, err)

		// 18 of 22 working days in September 2025.
		assert.Equal(t, "0.8182", result.AttendanceFactor.String())
		assert.True(t, result.GrossSalary.LessThan(decimal.NewFromInt(600000)))
	})

	t.Run("result invariants hold", func(t *testing.T) {
		for _, days := range []float64{0, 5, 11.5, 18, 22, 30} {
			result, err := svc.CalculatePayroll(ctx, employee, days, period.BasisWorkingDays, 9, 2025, statutoryRules())
			assert.NoError(t, err)

			// net + deductions == gross, credit == gross + deductions.
			assert.True(t, result.NetSalary.Add(result.TotalDeductions).Equal(result.GrossSalary))
			assert.True(t, result.CreditToBank.Equal(result.GrossSalary.Add(result.TotalDeductions)))
			assert.True(t, result.CreditToBank.Equal(result.NetSalary.Add(result.TotalDeductions.Mul(decimal.NewFromInt(2)))))
		}
	})

	t.Run("gross never decreases with more days worked", func(t *testing.T) {
		previous := decimal.NewFromInt(-1)
		for days := 0.0; days <= 22; days++ {
			result, err := svc.CalculatePayroll(ctx, employee, days, period.BasisWorkingDays, 9, 2025, statutoryRules())
			assert.NoError(t, err)
			assert.True(t, result.GrossSalary.GreaterThanOrEqual(previous))
			previous = result.GrossSalary
		}
	})

	t.Run("invalid period surfaces", func(t *testing.T) {
		_, err := svc.CalculatePayroll(ctx, employee, 18, period.BasisWorkingDays, 13, 2025, statutoryRules())
		assert.ErrorIs(t, err, period.ErrInvalidPeriod)
	})

	t.Run("negative days surfaces", func(t *testing.T) {
		_, err := svc.CalculatePayroll(ctx, employee, -3, period.BasisWorkingDays, 9, 2025, statutoryRules())
		assert.ErrorIs(t, err, payrollerrors.ErrNegativeDaysWorked)
	})
}

func TestService_CalculateBatch(t *testing.T) {
	ctx := context.Background()

	employees := map[string]payroll.Employee{
		"EMP-001": {ID: "EMP-001", Name: "Ada Obi", Components: sampleComponents()},
		"EMP-002": {ID: "EMP-002", Name: "Bola Ade", Components: payroll.SalaryComponentSet{
			{Name: "basic_salary", Amount: decimal.NewFromInt(250000)},
			{Name: "housing_allowance", Amount: decimal.NewFromInt(50000)},
		}},
	}

	resolver := &fakeResolver{
		resolveFn: func(ctx context.Context, employeeID string) (payroll.Employee, error) {
			employee, ok := employees[employeeID]
			if !ok {
				return payroll.Employee{}, payrollerrors.ErrEmployeeNotFound
			}
			return employee, nil
		},
	}
	svc := payroll.NewService(resolver)

	t.Run("partial failure keeps successes", func(t *testing.T) {
		records := []payroll.AttendanceRecord{
			{EmployeeID: "EMP-001", Month: 9, Year: 2025, DaysWorked: 22},
			{EmployeeID: "EMP-404", Month: 9, Year: 2025, DaysWorked: 20},
			{EmployeeID: "EMP-002", Month: 9, Year: 2025, DaysWorked: 11},
		}

		results, summary, batchErrors := svc.CalculateBatch(ctx, records, period.BasisWorkingDays, 9, 2025, statutoryRules())

		assert.Len(t, results, 2)
		assert.Len(t, batchErrors, 1)
		assert.Equal(t, 2, summary.TotalEmployees)

		assert.Equal(t, 1, batchErrors[0].Index)
		assert.Equal(t, "EMP-404", batchErrors[0].EmployeeID)
		assert.ErrorIs(t, batchErrors[0].Err, payrollerrors.ErrEmployeeNotFound)

		// Input order preserved across the failed record.
		assert.Equal(t, "EMP-001", results[0].EmployeeID)
		assert.Equal(t, "EMP-002", results[1].EmployeeID)
	})

	t.Run("summary sums successful results only", func(t *testing.T) {
		records := []payroll.AttendanceRecord{
			{EmployeeID: "EMP-001", Month: 9, Year: 2025, DaysWorked: 22},
			{EmployeeID: "EMP-404", Month: 9, Year: 2025, DaysWorked: 22},
		}

		results, summary, batchErrors := svc.CalculateBatch(ctx, records, period.BasisWorkingDays, 9, 2025, nil)

		assert.Len(t, results, 1)
		assert.Len(t, batchErrors, 1)
		assert.Equal(t, "600000", summary.TotalGross.String())
		assert.Equal(t, "600000", summary.TotalNet.String())
		assert.Equal(t, "600000", summary.TotalCreditToBank.String())
	})

	t.Run("duplicate employee ids produce duplicate results", func(t *testing.T) {
		records := []payroll.AttendanceRecord{
			{EmployeeID: "EMP-001", Month: 9, Year: 2025, DaysWorked: 22},
			{EmployeeID: "EMP-001", Month: 9, Year: 2025, DaysWorked: 22},
		}

		results, summary, batchErrors := svc.CalculateBatch(ctx, records, period.BasisWorkingDays, 9, 2025, nil)

		assert.Len(t, results, 2)
		assert.Empty(t, batchErrors)
		assert.Equal(t, 2, summary.TotalEmployees)
		assert.Equal(t, "1200000", summary.TotalGross.String())
	})

	t.Run("invalid record collected not fatal", func(t *testing.T) {
		records := []payroll.AttendanceRecord{
			{EmployeeID: "EMP-001", Month: 9, Year: 2025, DaysWorked: -1},
			{EmployeeID: "EMP-002", Month: 9, Year: 2025, DaysWorked: 22},
		}

		results, _, batchErrors := svc.CalculateBatch(ctx, records, period.BasisWorkingDays, 9, 2025, nil)

		assert.Len(t, results, 1)
		assert.Len(t, batchErrors, 1)
		assert.ErrorIs(t, batchErrors[0].Err, payrollerrors.ErrNegativeDaysWorked)
	})

	t.Run("large batch keeps input order", func(t *testing.T) {
		var records []payroll.AttendanceRecord
		for i := 0; i < 50; i++ {
			id := "EMP-001"
			if i%2 == 1 {
				id = "EMP-002"
			}
			records = append(records, payroll.AttendanceRecord{
				EmployeeID: id, Month: 9, Year: 2025, DaysWorked: 22,
			})
		}

		results, summary, batchErrors := svc.CalculateBatch(ctx, records, period.BasisWorkingDays, 9, 2025, nil)

		assert.Empty(t, batchErrors)
		assert.Equal(t, 50, summary.TotalEmployees)
		for i, result := range results {
			want := "EMP-001"
			if i%2 == 1 {
				want = "EMP-002"
			}
			assert.Equal(t, want, result.EmployeeID)
		}
	})
}

func TestValidateAttendance(t *testing.T) {
	t.Run("clean records", func(t *testing.T) {
		report := payroll.ValidateAttendance([]payroll.AttendanceRecord{
			{EmployeeID: "EMP-001", Month: 9, Year: 2025, DaysWorked: 18},
		}, period.BasisWorkingDays)

		assert.True(t, report.Valid)
		assert.Empty(t, report.Errors)
		assert.Empty(t, report.Warnings)
		assert.Equal(t, 1, report.ProcessedRecords)
	})

	t.Run("over-attendance warns only", func(t *testing.T) {
		report := payroll.ValidateAttendance([]payroll.AttendanceRecord{
			{EmployeeID: "EMP-001", Month: 9, Year: 2025, DaysWorked: 25},
		}, period.BasisWorkingDays)

		assert.True(t, report.Valid)
		assert.Len(t, report.Warnings, 1)
	})

	t.Run("missing id and negative days are errors", func(t *testing.T) {
		report := payroll.ValidateAttendance([]payroll.AttendanceRecord{
			{EmployeeID: "", Month: 9, Year: 2025, DaysWorked: 10},
			{EmployeeID: "EMP-002", Month: 9, Year: 2025, DaysWorked: -2},
		}, period.BasisWorkingDays)

		assert.False(t, report.Valid)
		assert.Len(t, report.Errors, 2)
		assert.Equal(t, 2, report.ProcessedRecords)
	})
}
