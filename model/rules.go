package model

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// RuleKind discriminates the two kinds of rules the rules endpoint
// returns.
type RuleKind string

const (
	RuleKindAlerting  RuleKind = "alerting"
	RuleKindRecording RuleKind = "recording"
)

func (k RuleKind) String() string { return string(k) }

// RuleGroup is a group of rules evaluated together at a fixed
// interval.
type RuleGroup struct {
	Name     string  `json:"name"`
	File     string  `json:"file"`
	Interval float64 `json:"interval"`
	Rules    []Rule  `json:"rules"`
}

// Rule is the tagged union of alerting and recording rules,
// discriminated by the wire "type" field. Use the accessors to get at
// the stored kind.
type Rule struct {
	kind      RuleKind
	alerting  *AlertingRule
	recording *RecordingRule
}

// Kind returns the discriminant of the stored rule.
func (r *Rule) Kind() RuleKind { return r.kind }

// Alerting returns the stored alerting rule. The second return value
// is false when the rule is of a different kind.
func (r *Rule) Alerting() (*AlertingRule, bool) {
	if r.kind != RuleKindAlerting {
		return nil, false
	}
	return r.alerting, true
}

// Recording returns the stored recording rule. The second return value
// is false when the rule is of a different kind.
func (r *Rule) Recording() (*RecordingRule, bool) {
	if r.kind != RuleKindRecording {
		return nil, false
	}
	return r.recording, true
}

// Name returns the rule name regardless of the kind.
func (r *Rule) Name() string {
	switch r.kind {
	case RuleKindAlerting:
		return r.alerting.Name
	case RuleKindRecording:
		return r.recording.Name
	}
	return ""
}

// Health returns the rule health regardless of the kind.
func (r *Rule) Health() RuleHealth {
	switch r.kind {
	case RuleKindAlerting:
		return r.alerting.Health
	case RuleKindRecording:
		return r.recording.Health
	}
	return RuleHealthUnknown
}

// UnmarshalJSON implements json.Unmarshaler. An unknown rule type is a
// decode error.
func (r *Rule) UnmarshalJSON(b []byte) error {
	var aux struct {
		Type RuleKind `json:"type"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return errors.Wrap(ErrMalformedPayload, "rule is not a JSON object")
	}
	switch aux.Type {
	case RuleKindAlerting:
		var ar AlertingRule
		if err := json.Unmarshal(b, &ar); err != nil {
			return asDecodeErr(err, "alerting rule")
		}
		*r = Rule{kind: RuleKindAlerting, alerting: &ar}
	case RuleKindRecording:
		var rr RecordingRule
		if err := json.Unmarshal(b, &rr); err != nil {
			return asDecodeErr(err, "recording rule")
		}
		*r = Rule{kind: RuleKindRecording, recording: &rr}
	default:
		return errors.Wrapf(ErrMalformedPayload, "unknown rule type %q", aux.Type)
	}
	return nil
}

// AlertingRule is a rule that fires alerts when its expression holds
// for the configured duration.
type AlertingRule struct {
	Name        string     `json:"name"`
	Query       string     `json:"query"`
	Duration    float64    `json:"duration"`
	Labels      Metric     `json:"labels"`
	Annotations Metric     `json:"annotations"`
	Alerts      []Alert    `json:"alerts"`
	Health      RuleHealth `json:"health"`
}

// RecordingRule is a rule that precomputes an expression into a new
// series.
type RecordingRule struct {
	Name   string     `json:"name"`
	Query  string     `json:"query"`
	Labels Metric     `json:"labels"`
	Health RuleHealth `json:"health"`
}
