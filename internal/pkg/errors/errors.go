// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package errors provides unified error handling for the DownloadHub application.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError represents an application error with HTTP status code and error code.
// It implements the error interface and supports error wrapping (Go 1.13+).
type AppError struct {
	Code       string `json:"code"`    // Error code (e.g., "SOFTWARE_NOT_FOUND")
	Message    string `json:"message"` // Human-readable error message
	StatusCode int    `json:"-"`       // HTTP status code (not serialized)
	Err        error  `json:"-"`       // Wrapped error (not serialized)
}

// Error returns the error message string.
// Implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
// Enables Go 1.13+ error unwrapping with errors.Is() and errors.As().
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is an AppError with the same code.
// This lets errors.Is(err, ErrSoftwareNotFound) match wrapped copies.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// IsNotFound reports whether the status code is 404.
func (e *AppError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// New creates a new AppError without wrapping an existing error.
func New(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// Wrap creates a new AppError that wraps an existing error.
func Wrap(err error, code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Err:        err,
	}
}

// Predefined error instances for common error scenarios.
var (
	ErrSoftwareNotFound = New("SOFTWARE_NOT_FOUND", "Software not found", http.StatusNotFound)
	ErrPartNotFound     = New("PART_NOT_FOUND", "Download part not found", http.StatusNotFound)
	ErrCategoryNotFound = New("CATEGORY_NOT_FOUND", "Category not found", http.StatusNotFound)
	ErrPageNotFound     = New("PAGE_NOT_FOUND", "Page not found", http.StatusNotFound)
	ErrSessionNotFound  = New("SESSION_NOT_FOUND", "Download session not found", http.StatusNotFound)
	ErrInvalidInput     = New("INVALID_INPUT", "Invalid input parameters", http.StatusBadRequest)
	ErrInternal         = New("INTERNAL_ERROR", "Internal server error", http.StatusInternalServerError)
)

// NewInvalidInput creates a new invalid input error (400) without wrapping.
func NewInvalidInput(message string) *AppError {
	return New("INVALID_INPUT", message, http.StatusBadRequest)
}

// InvalidInput reports a validation failure as a 400 whose message is the failure text.
func InvalidInput(err error) *AppError {
	return NewInvalidInput(err.Error())
}

// WrapInvalidInput wraps an error as an invalid input error (400).
func WrapInvalidInput(err error, message string) *AppError {
	return Wrap(err, "INVALID_INPUT", message, http.StatusBadRequest)
}

// WrapInternal wraps an error as an internal server error (500).
func WrapInternal(err error, message string) *AppError {
	return Wrap(err, "INTERNAL_ERROR", message, http.StatusInternalServerError)
}

// NotFound reports whether err carries a 404 AppError anywhere in its chain.
func NotFound(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.IsNotFound()
	}
	return false
}

// From extracts the AppError from err, or wraps err as an internal error.
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return WrapInternal(err, "Internal server error")
}
