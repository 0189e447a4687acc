package promquery

import (
	"encoding/json"
	"mime"

	"github.com/pkg/errors"

	"github.com/slok/promquery/model"
)

// Warnings are non-fatal notices the server attached to an otherwise
// successful response.
type Warnings []string

// apiEnvelope is the outer object every endpoint wraps its payload in.
type apiEnvelope struct {
	Status    string          `json:"status"`
	Data      json.RawMessage `json:"data"`
	ErrorType ErrorType       `json:"errorType"`
	Error     string          `json:"error"`
	Warnings  []string        `json:"warnings"`
}

// ParseResponse decodes a raw API response body into dst. The content
// type must be a JSON media type; anything else fails with
// ErrUnexpectedContentType before any parsing is attempted. A response
// with status "error" maps to *APIError carrying the server's fields
// verbatim. dst may be nil when the caller only cares about the
// status. Decoding is all-or-nothing; no partial result is ever
// written on error.
func ParseResponse(contentType string, body []byte, dst interface{}) (Warnings, error) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != "application/json" {
		return nil, errors.Wrapf(ErrUnexpectedContentType, "%q", contentType)
	}

	var env apiEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, errors.Wrapf(model.ErrMalformedPayload, "response body is not a valid envelope: %s", err)
	}

	warnings := Warnings(env.Warnings)
	switch env.Status {
	case "success":
		if dst != nil && len(env.Data) > 0 && string(env.Data) != "null" {
			if err := json.Unmarshal(env.Data, dst); err != nil {
				if model.IsDecodeErr(err) {
					return warnings, err
				}
				return warnings, errors.Wrapf(model.ErrMalformedPayload, "unexpected response data: %s", err)
			}
		}
		return warnings, nil
	case "error":
		return warnings, &APIError{Type: env.ErrorType, Msg: env.Error}
	default:
		return warnings, errors.Wrapf(model.ErrMalformedPayload, "unknown response status %q", env.Status)
	}
}
