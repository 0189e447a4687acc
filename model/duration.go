package model

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Duration is a duration in the server's string form, like "30s",
// "1h" or compounds like "1h30m". It wraps time.Duration, so all the
// usual arithmetic works after a conversion.
type Duration time.Duration

var durationRE = regexp.MustCompile(`^(?:([0-9]+)y)?(?:([0-9]+)w)?(?:([0-9]+)d)?(?:([0-9]+)h)?(?:([0-9]+)m)?(?:([0-9]+)s)?(?:([0-9]+)ms)?$`)

// ParseDuration parses a duration string of the units y, w, d, h, m,
// s and ms, in descending order without repetition.
func ParseDuration(s string) (Duration, error) {
	switch s {
	case "0":
		return 0, nil
	case "":
		return 0, errors.Wrap(ErrMalformedPayload, "empty duration string")
	}
	m := durationRE.FindStringSubmatch(s)
	if m == nil {
		return 0, errors.Wrapf(ErrMalformedPayload, "invalid duration %q", s)
	}

	var d time.Duration
	add := func(group int, unit time.Duration) error {
		if m[group] == "" {
			return nil
		}
		n, err := strconv.ParseInt(m[group], 10, 64)
		if err != nil {
			return errors.Wrapf(ErrMalformedPayload, "invalid duration %q", s)
		}
		d += time.Duration(n) * unit
		return nil
	}

	units := []time.Duration{
		365 * 24 * time.Hour, // y
		7 * 24 * time.Hour,   // w
		24 * time.Hour,       // d
		time.Hour,
		time.Minute,
		time.Second,
		time.Millisecond,
	}
	for i, unit := range units {
		if err := add(i+1, unit); err != nil {
			return 0, err
		}
	}
	return Duration(d), nil
}

// String renders the duration back into its wire form, largest units
// first, omitting zero components.
func (d Duration) String() string {
	if d == 0 {
		return "0s"
	}
	ms := int64(time.Duration(d) / time.Millisecond)
	sign := ""
	if ms < 0 {
		sign, ms = "-", -ms
	}

	var b strings.Builder
	b.WriteString(sign)
	emit := func(unit string, msPerUnit int64) {
		if n := ms / msPerUnit; n > 0 {
			fmt.Fprintf(&b, "%d%s", n, unit)
			ms -= n * msPerUnit
		}
	}
	emit("y", 1000*60*60*24*365)
	emit("w", 1000*60*60*24*7)
	emit("d", 1000*60*60*24)
	emit("h", 1000*60*60)
	emit("m", 1000*60)
	emit("s", 1000)
	emit("ms", 1)
	return b.String()
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return strconv.AppendQuote(nil, d.String()), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(b []byte) error {
	s, err := strconv.Unquote(string(b))
	if err != nil {
		return errors.Wrap(ErrMalformedPayload, "duration is not a JSON string")
	}
	parsed, err := ParseDuration(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
