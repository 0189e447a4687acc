package model

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// SampleValue is a single measured value. The wire encoding is a JSON
// string rather than a bare number so that precision survives and the
// special values NaN, +Inf and -Inf can be represented.
type SampleValue float64

// String renders the value the way the wire format expects it,
// including the special tokens for non-finite values.
func (v SampleValue) String() string {
	f := float64(v)
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, +1):
		return "+Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Equal reports whether two values are equal, treating NaN as equal to
// itself so that decoded payloads can be compared structurally.
func (v SampleValue) Equal(o SampleValue) bool {
	return v == o || (math.IsNaN(float64(v)) && math.IsNaN(float64(o)))
}

// MarshalJSON implements json.Marshaler.
func (v SampleValue) MarshalJSON() ([]byte, error) {
	return strconv.AppendQuote(nil, v.String()), nil
}

// UnmarshalJSON implements json.Unmarshaler. The usual wire form is a
// string, but bare numbers are accepted as well because the server
// emits them in per-step query statistics.
func (v *SampleValue) UnmarshalJSON(b []byte) error {
	if len(b) == 0 {
		return errors.Wrap(ErrInvalidNumber, "empty sample value")
	}
	s := string(b)
	if b[0] == '"' {
		var err error
		s, err = strconv.Unquote(s)
		if err != nil {
			return errors.Wrapf(ErrInvalidNumber, "sample value %s is not a valid JSON string", b)
		}
	}
	f, err := parseSampleValue(s)
	if err != nil {
		return err
	}
	*v = SampleValue(f)
	return nil
}

// parseSampleValue parses a wire sample value token. The special tokens
// are matched case-sensitively; everything else must be a plain decimal
// float. Alternate spellings of the specials that strconv would accept
// ("nan", "inf", hex floats) are not valid on the wire.
func parseSampleValue(s string) (float64, error) {
	switch s {
	case "NaN":
		return math.NaN(), nil
	case "+Inf":
		return math.Inf(+1), nil
	case "-Inf":
		return math.Inf(-1), nil
	}
	if strings.ContainsAny(s, "xX") {
		return 0, errors.Wrapf(ErrInvalidNumber, "cannot parse %q as a sample value", s)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.Wrapf(ErrInvalidNumber, "cannot parse %q as a sample value", s)
	}
	return f, nil
}

// Time is a point in time, encoded on the wire as a JSON number of
// seconds since the Unix epoch. The fractional part carries sub-second
// precision.
type Time float64

// TimeFromUnix returns the Time corresponding to the given time.Time.
func TimeFromUnix(t time.Time) Time {
	return Time(float64(t.UnixNano()) / 1e9)
}

// Time converts to a time.Time with nanosecond resolution.
func (t Time) Time() time.Time {
	sec, frac := math.Modf(float64(t))
	return time.Unix(int64(sec), int64(frac*1e9))
}

// Add returns the time t+d.
func (t Time) Add(d time.Duration) Time {
	return t + Time(d.Seconds())
}

// Before reports whether t is before o.
func (t Time) Before(o Time) bool { return t < o }

// After reports whether t is after o.
func (t Time) After(o Time) bool { return t > o }

func (t Time) String() string {
	return strconv.FormatFloat(float64(t), 'f', -1, 64)
}

// MarshalJSON implements json.Marshaler. Non-finite timestamps cannot
// be represented on the wire and are rejected.
func (t Time) MarshalJSON() ([]byte, error) {
	f := float64(t)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, errors.Wrapf(ErrInvalidTimestamp, "cannot encode non-finite timestamp")
	}
	return []byte(t.String()), nil
}

// UnmarshalJSON implements json.Unmarshaler. The wire form is a JSON
// number; anything non-finite (e.g. an out-of-range literal) is
// malformed.
func (t *Time) UnmarshalJSON(b []byte) error {
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return errors.Wrapf(ErrInvalidTimestamp, "cannot parse %s as a timestamp", b)
	}
	*t = Time(f)
	return nil
}

// SamplePair is a single (timestamp, value) data point. The wire form
// is the two-element array [timestamp, "value"].
type SamplePair struct {
	Timestamp Time
	Value     SampleValue
}

// Equal reports whether both timestamp and value are equal, with NaN
// values comparing equal to themselves.
func (p SamplePair) Equal(o SamplePair) bool {
	return p.Timestamp == o.Timestamp && p.Value.Equal(o.Value)
}

func (p SamplePair) String() string {
	return fmt.Sprintf("%s @[%s]", p.Value, p.Timestamp)
}

// MarshalJSON implements json.Marshaler.
func (p SamplePair) MarshalJSON() ([]byte, error) {
	t, err := p.Timestamp.MarshalJSON()
	if err != nil {
		return nil, err
	}
	v, err := p.Value.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return []byte(fmt.Sprintf("[%s,%s]", t, v)), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *SamplePair) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return errors.Wrap(ErrMalformedPayload, "sample is not a JSON array")
	}
	if len(raw) != 2 {
		return errors.Wrapf(ErrMalformedPayload, "sample must be a [timestamp, value] pair, got %d elements", len(raw))
	}
	if err := p.Timestamp.UnmarshalJSON(raw[0]); err != nil {
		return err
	}
	return p.Value.UnmarshalJSON(raw[1])
}
