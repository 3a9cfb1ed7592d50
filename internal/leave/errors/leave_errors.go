package leaveerrors

import (
	"net/http"

	"leavedesk/internal/shared/apperror"
)

var (
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"startDate must be before or equal endDate",
		http.StatusBadRequest,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave not found",
		http.StatusNotFound,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"requesting employee no longer exists",
		http.StatusNotFound,
	)

	// ErrNotAuthorized: the actor's role never has authority over this
	// request, no matter what status it is in.
	ErrNotAuthorized = apperror.New(
		apperror.CodeForbidden,
		"you do not have authority over this leave request",
		http.StatusForbidden,
	)

	// ErrInvalidStatus: the actor's role does have authority, but the
	// request is not in the status that role acts on.
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidState,
		"leave request is not in a status you can act on",
		http.StatusBadRequest,
	)

	ErrDecisionConflict = apperror.New(
		apperror.CodeConflict,
		"leave request was decided concurrently, reload and retry",
		http.StatusConflict,
	)
)
