package model

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

// buildDateFormat is the non-RFC3339 format the buildinfo endpoint
// uses, like "20191102-16:19:59".
const buildDateFormat = "20060102-15:04:05"

// BuildInformation describes the build of the server binary.
type BuildInformation struct {
	Version   string
	Revision  string
	Branch    string
	BuildUser string
	BuildDate time.Time
	GoVersion string
}

// UnmarshalJSON implements json.Unmarshaler.
func (i *BuildInformation) UnmarshalJSON(b []byte) error {
	var aux struct {
		Version   string `json:"version"`
		Revision  string `json:"revision"`
		Branch    string `json:"branch"`
		BuildUser string `json:"buildUser"`
		BuildDate string `json:"buildDate"`
		GoVersion string `json:"goVersion"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return asDecodeErr(err, "build information object")
	}
	date, err := time.Parse(buildDateFormat, aux.BuildDate)
	if err != nil {
		return errors.Wrapf(ErrMalformedPayload, "invalid build date %q", aux.BuildDate)
	}
	*i = BuildInformation{
		Version:   aux.Version,
		Revision:  aux.Revision,
		Branch:    aux.Branch,
		BuildUser: aux.BuildUser,
		BuildDate: date,
		GoVersion: aux.GoVersion,
	}
	return nil
}

// RuntimeInformation describes the running state of the server.
type RuntimeInformation struct {
	StartTime           time.Time `json:"startTime"`
	CWD                 string    `json:"CWD"`
	ReloadConfigSuccess bool      `json:"reloadConfigSuccess"`
	LastConfigTime      time.Time `json:"lastConfigTime"`
	CorruptionCount     int64     `json:"corruptionCount"`
	GoroutineCount      int       `json:"goroutineCount"`
	GoMaxProcs          int       `json:"GOMAXPROCS"`
	GoGC                string    `json:"GOGC"`
	GoDebug             string    `json:"GODEBUG"`
	StorageRetention    Duration  `json:"storageRetention"`
}

// TSDBStats are cardinality statistics of the server's TSDB.
type TSDBStats struct {
	HeadStats                   HeadStats   `json:"headStats"`
	SeriesCountByMetricName     []ItemCount `json:"seriesCountByMetricName"`
	LabelValueCountByLabelName  []ItemCount `json:"labelValueCountByLabelName"`
	MemoryInBytesByLabelName    []ItemCount `json:"memoryInBytesByLabelName"`
	SeriesCountByLabelValuePair []ItemCount `json:"seriesCountByLabelValuePair"`
}

// HeadStats describe the TSDB head block. Min/MaxTime are in
// milliseconds since the epoch.
type HeadStats struct {
	NumSeries  uint64 `json:"numSeries"`
	ChunkCount int64  `json:"chunkCount"`
	MinTime    int64  `json:"minTime"`
	MaxTime    int64  `json:"maxTime"`
}

// ItemCount is a named count, like a metric name and its series count.
type ItemCount struct {
	Name  string `json:"name"`
	Value uint64 `json:"value"`
}

// WALReplayStatus is the progress of a write-ahead-log replay. State
// is nil when the server did not report one.
type WALReplayStatus struct {
	Min     int             `json:"min"`
	Max     int             `json:"max"`
	Current int             `json:"current"`
	State   *WALReplayState `json:"state,omitempty"`
}
