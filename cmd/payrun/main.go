package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"go-payrun/invoice"
	"go-payrun/payroll"
	payrollerrors "go-payrun/payroll/errors"
	"go-payrun/template"
)

// runInput is the JSON payload a run is driven by: the resolved employee
// records, the uploaded attendance, and optionally the client template.
type runInput struct {
	Month    int                      `json:"month"`
	Year     int                      `json:"year"`
	Template *template.ClientTemplate `json:"template"`

	Employees []struct {
		ID         string `json:"id"`
		Name       string `json:"name"`
		Components []struct {
			Name   string          `json:"name"`
			Amount decimal.Decimal `json:"amount"`
		} `json:"components"`
	} `json:"employees"`

	Attendance []struct {
		EmployeeID string  `json:"employee_id"`
		DaysWorked float64 `json:"days_worked"`
	} `json:"attendance"`
}

type runOutput struct {
	Summary    payroll.BatchSummary    `json:"summary"`
	Results    []payroll.PayrollResult `json:"results"`
	Errors     []string                `json:"errors,omitempty"`
	Invoice    invoice.Invoice         `json:"invoice"`
}

type mapResolver map[string]payroll.Employee

func (m mapResolver) ResolveEmployee(_ context.Context, employeeID string) (payroll.Employee, error) {
	employee, ok := m[employeeID]
	if !ok {
		return payroll.Employee{}, payrollerrors.ErrEmployeeNotFound
	}
	return employee, nil
}

func main() {
	_ = godotenv.Load()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	inputPath := flag.String("input", "", "path to the run input JSON")
	flag.Parse()

	if *inputPath == "" {
		fmt.Fprintln(os.Stderr, "usage: payrun -input run.json")
		os.Exit(2)
	}

	if err := run(*inputPath); err != nil {
		logger.Fatal("run failed", zap.Error(err))
	}
}

func run(inputPath string) error {
	raw, err := os.ReadFile(inputPath)
	if err != nil {
		return err
	}

	var input runInput
	if err := json.Unmarshal(raw, &input); err != nil {
		return err
	}

	tpl := template.Default("default")
	if input.Template != nil {
		tpl = *input.Template
	}
	if err := tpl.Validate(); err != nil {
		return err
	}

	rules := tpl.Deductions
	if len(rules) == 0 {
		rules = template.DefaultStatutoryRules()
	}

	resolver := make(mapResolver, len(input.Employees))
	records := make([]payroll.AttendanceRecord, 0, len(input.Attendance))

	for _, e := range input.Employees {
		components := make(payroll.SalaryComponentSet, 0, len(e.Components))
		for _, c := range e.Components {
			components = append(components, payroll.SalaryComponent{Name: c.Name, Amount: c.Amount})
		}
		resolver[e.ID] = payroll.Employee{ID: e.ID, Name: e.Name, Components: components}
	}

	for _, a := range input.Attendance {
		records = append(records, payroll.AttendanceRecord{
			EmployeeID: a.EmployeeID,
			Month:      input.Month,
			Year:       input.Year,
			DaysWorked: a.DaysWorked,
		})
	}

	if report := payroll.ValidateAttendance(records, tpl.PayBasis); !report.Valid {
		return fmt.Errorf("attendance validation failed: %v", report.Errors)
	}

	ctx := context.Background()
	payrollService := payroll.NewServiceWithConfig(resolver, payroll.Config{
		AnnualDivisionFactor: tpl.AnnualDivisionFactor,
	})

	results, summary, batchErrors := payrollService.CalculateBatch(
		ctx, records, tpl.PayBasis, input.Month, input.Year, rules,
	)

	inv, err := invoice.NewService().Generate(ctx, tpl.LineItems, results, input.Month, input.Year)
	if err != nil {
		return err
	}

	output := runOutput{
		Summary: summary,
		Results: results,
		Invoice: inv,
	}
	for _, be := range batchErrors {
		output.Errors = append(output.Errors,
			fmt.Sprintf("record %d (%s): %v", be.Index, be.EmployeeID, be.Err))
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
