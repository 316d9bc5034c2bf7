package invoiceerrors

import (
	"net/http"

	"go-payrun/apperror"
)

var (
	ErrDuplicateLineItemID = apperror.New(
		apperror.CodeInvalidInput,
		"line item ids must be unique",
		http.StatusBadRequest,
	)
	ErrCircularDependency = apperror.New(
		apperror.CodeInvalidState,
		"line item formulas form a circular dependency",
		http.StatusUnprocessableEntity,
	)
	ErrMissingLineItemID = apperror.New(
		apperror.CodeInvalidInput,
		"line item id is required",
		http.StatusBadRequest,
	)
)
