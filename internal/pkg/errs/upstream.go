package errs

import "fmt"

// UpstreamError reports a failure of an external dependency (blob storage,
// template lookup, message broker). Cause carries the dependency's own error
// and is exposed to callers as details.
type UpstreamError struct {
	Dependency string
	Cause      error
}

func NewUpstreamError(dependency string, cause error) *UpstreamError {
	return &UpstreamError{Dependency: dependency, Cause: cause}
}

func (e *UpstreamError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrUpstream, e.Dependency), e.Cause)
}

func (e *UpstreamError) Unwrap() error {
	return ErrUpstream
}
