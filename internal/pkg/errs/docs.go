// Package errs provides the error taxonomy of the fulfillment service.
//
// Every error type unwraps to one sentinel, so callers classify failures with
// errors.Is and never by message:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: malformed input
//   - ObjectNotFoundError: a primary entity (order, document) does not exist
//   - ConflictError: a uniquely keyed resource already exists
//   - UpstreamError: an external dependency (blob storage, template lookup, broker) failed
//
// The HTTP adapter maps the sentinels to status codes:
//
//	ErrValueIsInvalid, ErrValueIsRequired, ErrValueIsOutOfRange -> 400
//	ErrObjectNotFound                                           -> 404
//	ErrConflict                                                 -> 409
//	ErrUpstream                                                 -> 502
//
// Anything else is reported as 500.
package errs
