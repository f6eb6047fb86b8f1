package errs

import "fmt"

// CorruptedRecordError reports a stored row that cannot be turned back into
// a valid aggregate. Unwrap yields only ErrCorruptedRecord: the validation
// error in Cause describes the stored data, not the caller's input, and must
// not surface as a client error.
type CorruptedRecordError struct {
	Entity string
	ID     string
	Cause  error
}

func NewCorruptedRecordError(entity, id string, cause error) *CorruptedRecordError {
	return &CorruptedRecordError{Entity: entity, ID: sanitize(id), Cause: cause}
}

func (e *CorruptedRecordError) Error() string {
	return withCause(fmt.Sprintf("%s: %s %s", ErrCorruptedRecord, e.Entity, e.ID), e.Cause)
}

func (e *CorruptedRecordError) Unwrap() error {
	return ErrCorruptedRecord
}
