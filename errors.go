package promquery

import (
	"fmt"

	"github.com/pkg/errors"
)

// Sentinel errors returned by the client before or during response
// handling.
var (
	// ErrUnexpectedContentType is returned when a response does not
	// carry a JSON media type. The body is not parsed in that case.
	ErrUnexpectedContentType = errors.New("unexpected content type")

	// ErrEmptySeriesSelector is returned when Series is called without
	// any selector. The endpoint requires at least one.
	ErrEmptySeriesSelector = errors.New("at least one series selector is required")
)

// ErrorType is the error category the server reports in its error
// envelope.
type ErrorType string

const (
	ErrorTimeout     ErrorType = "timeout"
	ErrorCanceled    ErrorType = "canceled"
	ErrorExec        ErrorType = "execution"
	ErrorBadData     ErrorType = "bad_data"
	ErrorInternal    ErrorType = "internal"
	ErrorUnavailable ErrorType = "unavailable"
	ErrorNotFound    ErrorType = "not_found"
)

// APIError is an error envelope returned by the server itself, as
// opposed to a transport or decoding failure on the client side. Type
// and Msg carry the server's errorType and error fields verbatim.
type APIError struct {
	Type ErrorType
	Msg  string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Type, e.Msg)
}

// IsTimeout reports whether the query timed out on the server.
func (e *APIError) IsTimeout() bool { return e.Type == ErrorTimeout }

// IsCanceled reports whether the query was canceled on the server.
func (e *APIError) IsCanceled() bool { return e.Type == ErrorCanceled }

// IsExec reports whether the query failed during evaluation.
func (e *APIError) IsExec() bool { return e.Type == ErrorExec }

// IsBadData reports whether the server rejected the request parameters,
// e.g. because of a PromQL syntax error.
func (e *APIError) IsBadData() bool { return e.Type == ErrorBadData }

// IsInternal reports whether the server hit an internal error.
func (e *APIError) IsInternal() bool { return e.Type == ErrorInternal }

// IsUnavailable reports whether the server was unavailable.
func (e *APIError) IsUnavailable() bool { return e.Type == ErrorUnavailable }

// IsNotFound reports whether the requested resource was not found.
func (e *APIError) IsNotFound() bool { return e.Type == ErrorNotFound }
