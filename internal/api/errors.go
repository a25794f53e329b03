package api

import "fmt"

// InvalidSessionIDError means the session ID failed the format check.
// It is raised before any network call.
type InvalidSessionIDError struct {
	ID string
}

func (e *InvalidSessionIDError) Error() string {
	return fmt.Sprintf(
		"invalid session ID format: %q. Expected format: session_01... (e.g. session_01QJaJSUgfY6khmFTzJaMqph)",
		e.ID)
}

// APIError is a non-2xx response from the sessions API. The response body
// is kept verbatim: the server's error text is the main diagnostic for
// auth and permission failures.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.Body)
}

// ProfileError marks a failed organization profile lookup. It is
// distinguished from a generic transport failure because it usually means
// the token itself has expired rather than the request being malformed.
type ProfileError struct {
	Err error
}

func (e *ProfileError) Error() string {
	return fmt.Sprintf("failed to fetch profile (token may be expired): %v", e.Err)
}

func (e *ProfileError) Unwrap() error {
	return e.Err
}
