package pypln

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials is returned when credentials are neither a
	// username/password pair nor a token.
	ErrInvalidCredentials = errors.New("pypln: invalid credentials")

	// ErrFetchFailed matches any *ResponseError produced by a read.
	ErrFetchFailed = errors.New("pypln: fetch failed")

	// ErrCreateFailed matches any *ResponseError produced by a create.
	ErrCreateFailed = errors.New("pypln: create failed")

	// ErrAuthRequired is returned by resource methods called on a value that
	// was not hydrated through a Session.
	ErrAuthRequired = errors.New("pypln: resource has no session, authentication required")
)

// ResponseError describes an HTTP response with an unexpected status.
type ResponseError struct {
	// Kind is ErrFetchFailed or ErrCreateFailed.
	Kind       error
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("%s: %s %s returned status %d: %q",
		e.Kind, e.Method, e.URL, e.StatusCode, e.Body)
}

// Is reports whether target is the kind of this error.
func (e *ResponseError) Is(target error) bool {
	return e.Kind == target
}

// IsNotFound checks if the error is a 404 response.
func IsNotFound(err error) bool {
	var respErr *ResponseError
	if errors.As(err, &respErr) {
		return respErr.StatusCode == 404
	}
	return false
}

// IsUnauthorized checks if the error is a 401 or 403 response.
func IsUnauthorized(err error) bool {
	var respErr *ResponseError
	if errors.As(err, &respErr) {
		return respErr.StatusCode == 401 || respErr.StatusCode == 403
	}
	return false
}
