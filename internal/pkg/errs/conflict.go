package errs

import "fmt"

// ConflictError reports that a uniquely keyed resource already exists.
//
// Example:
//
//	if errors.Is(err, gorm.ErrDuplicatedKey) {
//	    return errs.NewConflictErrorWithCause("sku", tpl.SKU(), err)
//	}
type ConflictError struct {
	ParamName string
	Key       any
	Cause     error
}

func NewConflictError(paramName string, key any) *ConflictError {
	return &ConflictError{ParamName: paramName, Key: key}
}

func NewConflictErrorWithCause(paramName string, key any, cause error) *ConflictError {
	return &ConflictError{ParamName: paramName, Key: key, Cause: cause}
}

func (e *ConflictError) Error() string {
	msg := fmt.Sprintf("%s: %s %s already exists", ErrConflict, e.ParamName, sanitize(e.Key))
	return withCause(msg, e.Cause)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}
