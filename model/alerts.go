package model

import "time"

// Alert is a single alert, either pending or firing.
type Alert struct {
	ActiveAt    time.Time  `json:"activeAt"`
	Annotations Metric     `json:"annotations"`
	Labels      Metric     `json:"labels"`
	State       AlertState `json:"state"`
	Value       string     `json:"value"`
}
