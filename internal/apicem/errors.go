package apicem

import "fmt"

// ConnectionError reports a transport failure reaching the controller.
type ConnectionError struct {
	Op  string
	URL string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// AuthenticationError reports a login response without the expected
// service ticket or version.
type AuthenticationError struct {
	Reason string
}

func (e *AuthenticationError) Error() string {
	return "login failure: " + e.Reason
}

// RequestError reports an authenticated GET whose body lacks the
// "response" envelope.
type RequestError struct {
	Path       string
	StatusCode int
	Reason     string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("GET %s returned %d: %s", e.Path, e.StatusCode, e.Reason)
}
