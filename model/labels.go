package model

import (
	"fmt"
	"sort"
	"strings"
)

// MetricNameLabel is the reserved label that carries the metric name.
const MetricNameLabel = "__name__"

// Metric is the set of labels identifying a single time series. Keys
// are unique; insertion order is irrelevant for equality.
type Metric map[string]string

// Name returns the metric name, or the empty string when the label set
// has none.
func (m Metric) Name() string {
	return m[MetricNameLabel]
}

// Equal reports whether both label sets contain exactly the same pairs.
func (m Metric) Equal(o Metric) bool {
	if len(m) != len(o) {
		return false
	}
	for k, v := range m {
		ov, ok := o[k]
		if !ok || ov != v {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the label set.
func (m Metric) Clone() Metric {
	c := make(Metric, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

// String renders the label set in the familiar name{k="v",...} form.
// Labels are sorted so the output is stable.
func (m Metric) String() string {
	names := make([]string, 0, len(m))
	for name := range m {
		if name != MetricNameLabel {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return m.Name()
	}
	sort.Strings(names)

	pairs := make([]string, 0, len(names))
	for _, name := range names {
		pairs = append(pairs, fmt.Sprintf("%s=%q", name, m[name]))
	}
	return fmt.Sprintf("%s{%s}", m.Name(), strings.Join(pairs, ", "))
}
