package model

import (
	"strconv"

	"github.com/pkg/errors"
)

// The state enumerations below are closed sets: decoding validates the
// wire string against the known members and fails on anything else.
// Note that "unknown" is itself a legal wire value for some of them,
// distinct from a decode failure.

// unmarshalEnum extracts the string token of an enumeration value.
func unmarshalEnum(b []byte, kind string) (string, error) {
	s, err := strconv.Unquote(string(b))
	if err != nil {
		return "", errors.Wrapf(ErrMalformedPayload, "%s is not a JSON string", kind)
	}
	return s, nil
}

// RuleHealth is the health of a recording or alerting rule.
type RuleHealth string

const (
	RuleHealthGood    RuleHealth = "ok"
	RuleHealthErr     RuleHealth = "err"
	RuleHealthUnknown RuleHealth = "unknown"
)

// IsGood reports whether the last rule evaluation succeeded.
func (h RuleHealth) IsGood() bool { return h == RuleHealthGood }

// IsErr reports whether the last rule evaluation failed.
func (h RuleHealth) IsErr() bool { return h == RuleHealthErr }

func (h RuleHealth) String() string { return string(h) }

// UnmarshalJSON implements json.Unmarshaler.
func (h *RuleHealth) UnmarshalJSON(b []byte) error {
	s, err := unmarshalEnum(b, "rule health")
	if err != nil {
		return err
	}
	switch v := RuleHealth(s); v {
	case RuleHealthGood, RuleHealthErr, RuleHealthUnknown:
		*h = v
		return nil
	}
	return errors.Wrapf(ErrMalformedPayload, "unknown rule health %q", s)
}

// AlertState is the activation state of an alert.
type AlertState string

const (
	AlertStateInactive AlertState = "inactive"
	AlertStatePending  AlertState = "pending"
	AlertStateFiring   AlertState = "firing"
)

// IsInactive reports whether the alert is not active.
func (s AlertState) IsInactive() bool { return s == AlertStateInactive }

// IsPending reports whether the alert is active but still within its
// for-duration.
func (s AlertState) IsPending() bool { return s == AlertStatePending }

// IsFiring reports whether the alert is firing.
func (s AlertState) IsFiring() bool { return s == AlertStateFiring }

func (s AlertState) String() string { return string(s) }

// UnmarshalJSON implements json.Unmarshaler.
func (s *AlertState) UnmarshalJSON(b []byte) error {
	raw, err := unmarshalEnum(b, "alert state")
	if err != nil {
		return err
	}
	switch v := AlertState(raw); v {
	case AlertStateInactive, AlertStatePending, AlertStateFiring:
		*s = v
		return nil
	}
	return errors.Wrapf(ErrMalformedPayload, "unknown alert state %q", raw)
}

// TargetHealth is the health of a scrape target.
type TargetHealth string

const (
	TargetHealthUp      TargetHealth = "up"
	TargetHealthDown    TargetHealth = "down"
	TargetHealthUnknown TargetHealth = "unknown"
)

// IsUp reports whether the last scrape of the target succeeded.
func (h TargetHealth) IsUp() bool { return h == TargetHealthUp }

// IsDown reports whether the last scrape of the target failed.
func (h TargetHealth) IsDown() bool { return h == TargetHealthDown }

func (h TargetHealth) String() string { return string(h) }

// UnmarshalJSON implements json.Unmarshaler.
func (h *TargetHealth) UnmarshalJSON(b []byte) error {
	s, err := unmarshalEnum(b, "target health")
	if err != nil {
		return err
	}
	switch v := TargetHealth(s); v {
	case TargetHealthUp, TargetHealthDown, TargetHealthUnknown:
		*h = v
		return nil
	}
	return errors.Wrapf(ErrMalformedPayload, "unknown target health %q", s)
}

// MetricType is the type of a metric as reported by metadata queries.
type MetricType string

const (
	MetricTypeCounter        MetricType = "counter"
	MetricTypeGauge          MetricType = "gauge"
	MetricTypeHistogram      MetricType = "histogram"
	MetricTypeGaugeHistogram MetricType = "gaugehistogram"
	MetricTypeSummary        MetricType = "summary"
	MetricTypeInfo           MetricType = "info"
	MetricTypeStateset       MetricType = "stateset"
	MetricTypeUnknown        MetricType = "unknown"
)

func (t MetricType) String() string { return string(t) }

// UnmarshalJSON implements json.Unmarshaler.
func (t *MetricType) UnmarshalJSON(b []byte) error {
	s, err := unmarshalEnum(b, "metric type")
	if err != nil {
		return err
	}
	switch v := MetricType(s); v {
	case MetricTypeCounter, MetricTypeGauge, MetricTypeHistogram,
		MetricTypeGaugeHistogram, MetricTypeSummary, MetricTypeInfo,
		MetricTypeStateset, MetricTypeUnknown:
		*t = v
		return nil
	}
	return errors.Wrapf(ErrMalformedPayload, "unknown metric type %q", s)
}

// WALReplayState is the progress state of a write-ahead-log replay.
type WALReplayState string

const (
	WALReplayWaiting    WALReplayState = "waiting"
	WALReplayInProgress WALReplayState = "in progress"
	WALReplayDone       WALReplayState = "done"
)

// IsDone reports whether the replay has finished.
func (s WALReplayState) IsDone() bool { return s == WALReplayDone }

func (s WALReplayState) String() string { return string(s) }

// UnmarshalJSON implements json.Unmarshaler.
func (s *WALReplayState) UnmarshalJSON(b []byte) error {
	raw, err := unmarshalEnum(b, "WAL replay state")
	if err != nil {
		return err
	}
	switch v := WALReplayState(raw); v {
	case WALReplayWaiting, WALReplayInProgress, WALReplayDone:
		*s = v
		return nil
	}
	return errors.Wrapf(ErrMalformedPayload, "unknown WAL replay state %q", raw)
}
