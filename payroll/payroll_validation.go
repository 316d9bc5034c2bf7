package payroll

import (
	"fmt"

	"go-payrun/period"
)

// ValidationReport is the outcome of a pre-flight check over uploaded
// attendance data. Errors block a batch run; warnings do not.
type ValidationReport struct {
	Valid            bool
	Errors           []string
	Warnings         []string
	ProcessedRecords int
}

// ValidateAttendance checks uploaded records against the pay basis before
// a batch run. Over-attendance only warns: the factor caps it at 1.0
// during calculation.
func ValidateAttendance(records []AttendanceRecord, basis period.Basis) ValidationReport {
	report := ValidationReport{Valid: true}

	for i, record := range records {
		if record.EmployeeID == "" {
			report.Valid = false
			report.Errors = append(report.Errors,
				fmt.Sprintf("record %d: missing employee id", i))
		}

		if record.DaysWorked < 0 {
			report.Valid = false
			report.Errors = append(report.Errors,
				fmt.Sprintf("record %d: days worked must be a non-negative number", i))
		}

		totalDays, err := period.TotalDays(basis, record.Month, record.Year)
		if err != nil {
			report.Valid = false
			report.Errors = append(report.Errors,
				fmt.Sprintf("record %d: %v", i, err))
		} else if record.DaysWorked > float64(totalDays) {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("record %d: days worked (%g) exceeds maximum for %s basis (%d)",
					i, record.DaysWorked, basis, totalDays))
		}

		report.ProcessedRecords++
	}

	return report
}
