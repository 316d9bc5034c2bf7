package payrollerrors

import (
	"net/http"

	"go-payrun/apperror"
)

var (
	ErrNegativeDaysWorked = apperror.New(
		apperror.CodeInvalidInput,
		"days worked cannot be negative",
		http.StatusBadRequest,
	)
	ErrInvalidTotalDays = apperror.New(
		apperror.CodeInvalidInput,
		"total days must be positive",
		http.StatusBadRequest,
	)
	ErrFactorOutOfRange = apperror.New(
		apperror.CodeInvalidInput,
		"attendance factor must be between 0 and 1",
		http.StatusBadRequest,
	)
	ErrUnknownBaseComponent = apperror.New(
		apperror.CodeUnknownBaseComponent,
		"deduction rule references a component absent from the adjusted set",
		http.StatusUnprocessableEntity,
	)
	ErrInvalidDeductionRule = apperror.New(
		apperror.CodeInvalidInput,
		"invalid deduction rule configuration",
		http.StatusBadRequest,
	)
	ErrInvalidFormula = apperror.New(
		apperror.CodeInvalidInput,
		"deduction formula could not be evaluated",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
)
