// Package errs provides the error types the ledger API uses to report
// failures to clients.
package errs

import (
	"errors"
	"net/http"
)

// Response is the document returned to the client when a request fails.
// Fields is only set for data validation failures.
type Response struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Trusted is an error whose message is safe to show the client, paired
// with the status code to respond with.
type Trusted struct {
	Err    error
	Status int
}

// NewTrusted wraps a provided error with an HTTP status code. Handlers use
// this for expected failures such as a rejected transaction.
func NewTrusted(err error, status int) error {
	return &Trusted{err, status}
}

// BadRequest wraps the error as a trusted 400 response.
func BadRequest(err error) error {
	return NewTrusted(err, http.StatusBadRequest)
}

// Error implements the error interface.
func (te *Trusted) Error() string {
	return te.Err.Error()
}

// Unwrap returns the wrapped error.
func (te *Trusted) Unwrap() error {
	return te.Err
}

// IsTrusted checks if a Trusted error exists in the chain.
func IsTrusted(err error) bool {
	var te *Trusted
	return errors.As(err, &te)
}

// GetTrusted returns the Trusted error in the chain or nil.
func GetTrusted(err error) *Trusted {
	var te *Trusted
	if !errors.As(err, &te) {
		return nil
	}
	return te
}
