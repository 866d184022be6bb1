package apperror

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrBadRequest         = errors.New("bad request")
	ErrConflict           = errors.New("conflict")
	ErrInternal           = errors.New("internal server error")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Domain rule violations. These are recovered locally and returned as
	// typed results, never as opaque failures.
	ErrNotOwner        = errors.New("no permission to upload this video")
	ErrSelfReview      = errors.New("user cannot review own video")
	ErrSampleVideo     = errors.New("sample videos are not reviewable")
	ErrUploadClosed    = errors.New("the video no longer accepts uploads")
	ErrReviewClosed    = errors.New("the video is no longer under review")
	ErrAlreadyReviewed = errors.New("the user already reviewed this video")
	ErrTooManyPending  = errors.New("too many pending approval videos")
	ErrReviewConflict  = errors.New("review conflicted with a concurrent update")
	ErrRateLimited     = errors.New("rate limit exceeded")
)

// AppError is a custom error type that can hold an HTTP status code
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError
func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// MapErrorToStatus maps common errors to HTTP status codes
func MapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden), errors.Is(err, ErrNotOwner), errors.Is(err, ErrSelfReview):
		return http.StatusForbidden
	case errors.Is(err, ErrBadRequest), errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrTooManyPending):
		return http.StatusNotAcceptable
	case errors.Is(err, ErrUploadClosed), errors.Is(err, ErrSampleVideo),
		errors.Is(err, ErrReviewClosed), errors.Is(err, ErrReviewConflict),
		errors.Is(err, ErrAlreadyReviewed):
		return http.StatusConflict
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	}
	// Default to internal server error
	return http.StatusInternalServerError
}
