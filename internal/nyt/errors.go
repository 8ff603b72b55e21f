package nyt

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrCookieNotFound is returned when a login response carries no NYT-S cookie.
var ErrCookieNotFound = errors.New("NYT-S cookie not found")

// ErrNoPuzzle is returned when the puzzle metadata lists no results for a date.
var ErrNoPuzzle = errors.New("no puzzle published for date")

// HTTPError reports a non-2xx response from the games API.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Status     string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %s", e.Method, e.URL, e.Status)
}

// AuthenticationError reports a failed login exchange.
type AuthenticationError struct {
	Err error
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed: %v", e.Err)
}

func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return &HTTPError{
		Method:     resp.Request.Method,
		URL:        resp.Request.URL.Redacted(),
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
	}
}
