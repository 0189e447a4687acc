package model

// Stats are the statistics the server gathered while it processed a
// query. They are only present when the query asked for them.
type Stats struct {
	Timings Timings `json:"timings"`
	Samples Samples `json:"samples"`
}

// Timings are the per-phase execution timings of a query, in seconds.
type Timings struct {
	EvalTotalTime        float64 `json:"evalTotalTime"`
	ResultSortTime       float64 `json:"resultSortTime"`
	QueryPreparationTime float64 `json:"queryPreparationTime"`
	InnerEvalTime        float64 `json:"innerEvalTime"`
	ExecQueueTime        float64 `json:"execQueueTime"`
	ExecTotalTime        float64 `json:"execTotalTime"`
}

// Samples are the sample counts of a query. PerStep is only populated
// for range queries; its entries carry the count as the sample value.
type Samples struct {
	PerStep     []SamplePair `json:"totalQueryableSamplesPerStep,omitempty"`
	Total       int64        `json:"totalQueryableSamples"`
	PeakSamples int64        `json:"peakSamples"`
}
