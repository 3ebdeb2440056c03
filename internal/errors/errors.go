package errors

import "fmt"

// ErrorCode represents a report pipeline error code.
type ErrorCode string

const (
	ErrValidation    ErrorCode = "VALIDATION"    // 400: missing metadata or zero photos at generation time
	ErrNotFound      ErrorCode = "NOT_FOUND"     // 404
	ErrConflict      ErrorCode = "CONFLICT"      // 409: generation already in flight, or stale session result
	ErrIO            ErrorCode = "IO"            // 422: an uploaded photo could not be read
	ErrConfiguration ErrorCode = "CONFIGURATION" // 500: generation backend unusable without external fix
	ErrStorageLoad   ErrorCode = "STORAGE_LOAD"  // 500: persisted history unreadable (recovered internally)
	ErrTransport     ErrorCode = "TRANSPORT"     // 502: network/service failure, safe to resubmit
	ErrGeneration    ErrorCode = "GENERATION"    // 502: service returned empty or invalid content
	ErrInternal      ErrorCode = "INTERNAL"      // 500
)

// ReportError represents a structured error with code, status, and details.
type ReportError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *ReportError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewValidation creates a 400 error for a failed generation precondition.
func NewValidation(msg string) *ReportError {
	return &ReportError{
		Code:    ErrValidation,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for when a report cannot be found.
func NewNotFound(id string) *ReportError {
	return &ReportError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("rapport niet gevonden: %s", id),
		Details: map[string]any{"id": id},
	}
}

// NewConflict creates a 409 error for concurrent or stale generation attempts.
func NewConflict(msg string) *ReportError {
	return &ReportError{
		Code:    ErrConflict,
		Status:  409,
		Message: msg,
	}
}

// NewIO creates a 422 error for a photo whose payload could not be read.
// The photo is identified by its 1-based index so the message matches the
// "Foto N" numbering used everywhere else.
func NewIO(photoIndex int, err error) *ReportError {
	msg := fmt.Sprintf("Foto %d kon niet worden gelezen", photoIndex)
	if err != nil {
		msg = fmt.Sprintf("%s: %v", msg, err)
	}
	return &ReportError{
		Code:    ErrIO,
		Status:  422,
		Message: msg,
		Details: map[string]any{"photo_index": photoIndex},
	}
}

// NewConfiguration creates a 500 error for a generation backend that cannot
// be used without external intervention (missing or rejected credentials).
func NewConfiguration(msg string) *ReportError {
	return &ReportError{
		Code:    ErrConfiguration,
		Status:  500,
		Message: msg,
	}
}

// NewStorageLoad creates a 500 error for an unreadable persisted history.
// Callers recover from this by starting with an empty collection; it is
// never surfaced as a blocking error.
func NewStorageLoad(err error) *ReportError {
	msg := "opgeslagen historie kon niet worden gelezen"
	if err != nil {
		msg = fmt.Sprintf("%s: %v", msg, err)
	}
	return &ReportError{
		Code:    ErrStorageLoad,
		Status:  500,
		Message: msg,
	}
}

// NewTransport creates a 502 error for a network or service failure during
// generation. Resubmitting the same request is safe.
func NewTransport(err error) *ReportError {
	msg := "netwerkfout tijdens het genereren van het rapport"
	if err != nil {
		msg = fmt.Sprintf("%s: %v", msg, err)
	}
	return &ReportError{
		Code:    ErrTransport,
		Status:  502,
		Message: msg,
	}
}

// NewGeneration creates a 502 error for a rejected request or an empty or
// malformed model response. The result must not be archived.
func NewGeneration(msg string) *ReportError {
	return &ReportError{
		Code:    ErrGeneration,
		Status:  502,
		Message: msg,
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *ReportError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &ReportError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a ReportError with the given code.
func Is(err error, code ErrorCode) bool {
	if rErr, ok := err.(*ReportError); ok {
		return rErr.Code == code
	}
	return false
}

// Retryable reports whether resubmitting the same generation request may
// succeed. Transport failures are transient and an empty model response is
// worth another attempt; configuration and validation failures are not.
func Retryable(err error) bool {
	return Is(err, ErrTransport) || Is(err, ErrGeneration)
}
