package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrCanceled     ErrorCode = "CANCELED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Manifest errors
	ErrManifestLoad    ErrorCode = "MANIFEST_LOAD"
	ErrManifestParse   ErrorCode = "MANIFEST_PARSE"
	ErrManifestInvalid ErrorCode = "MANIFEST_INVALID"

	// Fetch errors
	ErrFetchClone ErrorCode = "FETCH_CLONE"
	ErrFetchPull  ErrorCode = "FETCH_PULL"
	ErrFetchSetup ErrorCode = "FETCH_SETUP"

	// Link errors
	ErrLinkDir     ErrorCode = "LINK_DIR"
	ErrLinkCreate  ErrorCode = "LINK_CREATE"
	ErrLinkInvalid ErrorCode = "LINK_INVALID"

	// Command errors
	ErrInstallConflict ErrorCode = "INSTALL_CONFLICT"
	ErrRemove          ErrorCode = "REMOVE"
)

// DetailOutput is the detail key holding captured process output.
const DetailOutput = "output"

// VimfilesError represents a structured error with code and details
type VimfilesError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface. Captured process output, when
// present, is appended verbatim so the operator sees what git printed.
func (e *VimfilesError) Error() string {
	var msg string
	if e.Wrapped != nil {
		msg = fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	} else {
		msg = fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	if out, ok := e.Details[DetailOutput].(string); ok && strings.TrimSpace(out) != "" {
		msg += "\n" + strings.TrimRight(out, "\n")
	}
	return msg
}

// Unwrap implements the errors.Unwrap interface
func (e *VimfilesError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *VimfilesError) Is(target error) bool {
	var targetErr *VimfilesError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new VimfilesError with the given code and message
func New(code ErrorCode, message string) *VimfilesError {
	return &VimfilesError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new VimfilesError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *VimfilesError {
	return &VimfilesError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a VimfilesError
func Wrap(err error, code ErrorCode, message string) *VimfilesError {
	if err == nil {
		return nil
	}
	return &VimfilesError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *VimfilesError {
	if err == nil {
		return nil
	}
	return &VimfilesError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *VimfilesError) WithDetail(key string, value interface{}) *VimfilesError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *VimfilesError) WithDetails(details map[string]interface{}) *VimfilesError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var vErr *VimfilesError
	if errors.As(err, &vErr) {
		return vErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a VimfilesError
func GetErrorCode(err error) ErrorCode {
	var vErr *VimfilesError
	if errors.As(err, &vErr) {
		return vErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a VimfilesError
func GetErrorDetails(err error) map[string]interface{} {
	var vErr *VimfilesError
	if errors.As(err, &vErr) {
		return vErr.Details
	}
	return nil
}

// GetOutput returns captured process output attached to err, if any.
func GetOutput(err error) string {
	if out, ok := GetErrorDetails(err)[DetailOutput].(string); ok {
		return out
	}
	return ""
}

// IsManifestError reports whether err came from loading the manifest.
func IsManifestError(err error) bool {
	return hasAnyCode(err, ErrManifestLoad, ErrManifestParse, ErrManifestInvalid)
}

// IsFetchError reports whether err came from a repository fetch.
func IsFetchError(err error) bool {
	return hasAnyCode(err, ErrFetchClone, ErrFetchPull, ErrFetchSetup)
}

// IsLinkError reports whether err came from link reconciliation.
func IsLinkError(err error) bool {
	return hasAnyCode(err, ErrLinkDir, ErrLinkCreate, ErrLinkInvalid)
}

func hasAnyCode(err error, codes ...ErrorCode) bool {
	code := GetErrorCode(err)
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}
