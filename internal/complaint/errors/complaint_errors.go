package complainterrors

import (
	"net/http"

	"go-complaintdesk/internal/shared/apperror"
)

var (
	ErrComplaintNotFound = apperror.New(
		apperror.CodeNotFound,
		"complaint not found",
		http.StatusNotFound,
	)
	ErrWorkerNotFound = apperror.New(
		apperror.CodeNotFound,
		"worker not found",
		http.StatusNotFound,
	)
	ErrNotAWorker = apperror.New(
		apperror.CodeInvalidInput,
		"user is not flagged as a worker",
		http.StatusBadRequest,
	)
	ErrInvalidComplaintID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid complaint id",
		http.StatusBadRequest,
	)
	ErrInvalidOwnerID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid owner id",
		http.StatusBadRequest,
	)
	ErrAlreadyAssigned = apperror.New(
		apperror.CodeConflict,
		"complaint is already assigned or closed",
		http.StatusConflict,
	)
	ErrAlreadyClosed = apperror.New(
		apperror.CodeConflict,
		"complaint is already closed",
		http.StatusConflict,
	)
	ErrFeedbackRequired = apperror.New(
		apperror.CodeInvalidInput,
		"feedback is required to close a complaint",
		http.StatusBadRequest,
	)
	ErrNotOwnerOrAssignee = apperror.New(
		apperror.CodeForbidden,
		"only the reporting employee or the assigned worker can close a complaint",
		http.StatusForbidden,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected DD/MM/YY",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
)
