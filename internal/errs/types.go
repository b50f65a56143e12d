package errs

import "fmt"

type ErrorMessage struct {
	Message string
}

func (e *ErrorMessage) Error() string { return e.Message }

// NotFoundError covers resources that do not exist or do not belong to the
// caller. Both cases surface as the same condition so lookups cannot be used
// to probe for other users' data.
type NotFoundError struct {
	ErrorMessage
}

type AlreadyExistsError struct {
	ErrorMessage
}

type ValidationError struct {
	ErrorMessage
}

// FormatError marks a single unparseable token (date or amount) in an
// imported statement. Row-local: the import pipeline converts it to a skip.
type FormatError struct {
	ErrorMessage
}

// UnrecognizedLayoutError means a statement's header set matched no known
// layout. Batch-fatal: the whole import fails with the headers seen.
type UnrecognizedLayoutError struct {
	ErrorMessage
	Headers []string
}

type DatabaseError struct {
	ErrorMessage
	Operation string
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewAlreadyExistsError(message string) *AlreadyExistsError {
	return &AlreadyExistsError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewFormatError(format string, args ...any) *FormatError {
	return &FormatError{
		ErrorMessage: ErrorMessage{Message: fmt.Sprintf(format, args...)},
	}
}

func NewUnrecognizedLayoutError(headers []string) *UnrecognizedLayoutError {
	return &UnrecognizedLayoutError{
		ErrorMessage: ErrorMessage{Message: fmt.Sprintf("unrecognized CSV layout, headers: %v", headers)},
		Headers:      headers,
	}
}

func NewDatabaseError(operation string, err error) *DatabaseError {
	return &DatabaseError{
		ErrorMessage: ErrorMessage{Message: err.Error()},
		Operation:    operation,
	}
}
