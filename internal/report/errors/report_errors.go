package reporterrors

import (
	"net/http"

	"leavedesk/internal/shared/apperror"
)

var (
	ErrUnknownReportType = apperror.New(
		apperror.CodeInvalidInput,
		"unknown report type",
		http.StatusBadRequest,
	)
	ErrNotAuthorized = apperror.New(
		apperror.CodeForbidden,
		"you are not authorized to download this report",
		http.StatusForbidden,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
)
