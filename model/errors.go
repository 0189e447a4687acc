package model

import (
	"github.com/pkg/errors"
)

// Sentinel decode errors. Errors returned by the decoders in this
// package wrap one of these, so callers can classify failures with
// errors.Is regardless of the context that was added along the way.
var (
	// ErrInvalidNumber is returned when a sample value token cannot be
	// parsed as a float or one of the special tokens.
	ErrInvalidNumber = errors.New("invalid sample value")

	// ErrInvalidTimestamp is returned when a timestamp is not a finite
	// number of seconds.
	ErrInvalidTimestamp = errors.New("invalid timestamp")

	// ErrUnknownResultType is returned when a result type discriminant
	// is outside the known set.
	ErrUnknownResultType = errors.New("unknown result type")

	// ErrMalformedPayload is returned when the JSON structure does not
	// match the shape announced by the payload's discriminant, or does
	// not match any expected shape at all.
	ErrMalformedPayload = errors.New("malformed payload")
)

// IsDecodeErr reports whether err originated in one of this package's
// decoders rather than in the JSON machinery or the transport.
func IsDecodeErr(err error) bool {
	return errors.Is(err, ErrInvalidNumber) ||
		errors.Is(err, ErrInvalidTimestamp) ||
		errors.Is(err, ErrUnknownResultType) ||
		errors.Is(err, ErrMalformedPayload)
}
