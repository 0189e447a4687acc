package model

// TargetMetadata is metadata about a metric as exposed by a specific
// target. Metric is empty when the query filtered on a single metric
// name.
type TargetMetadata struct {
	Target Metric     `json:"target"`
	Metric string     `json:"metric,omitempty"`
	Type   MetricType `json:"type"`
	Help   string     `json:"help"`
	Unit   string     `json:"unit"`
}

// MetricMetadata is metadata about a metric, aggregated over all
// targets exposing it.
type MetricMetadata struct {
	Type MetricType `json:"type"`
	Help string     `json:"help"`
	Unit string     `json:"unit"`
}

// Alertmanagers is the collection of active and dropped alertmanagers
// known to the server.
type Alertmanagers struct {
	Active  []Alertmanager `json:"activeAlertmanagers"`
	Dropped []Alertmanager `json:"droppedAlertmanagers"`
}

// Alertmanager is a single alertmanager discovery result.
type Alertmanager struct {
	URL string `json:"url"`
}
