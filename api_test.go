package promquery_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/promquery"
	"github.com/slok/promquery/model"
)

func TestSeries(t *testing.T) {
	h := &recordingHandler{body: `{
		"status": "success",
		"data": [
			{"__name__": "up", "job": "prometheus", "instance": "localhost:9090"},
			{"__name__": "up", "job": "node", "instance": "localhost:9100"}
		]
	}`}
	cli := newTestClient(t, h)

	series, _, err := cli.Series(context.Background(),
		[]string{`up`, `process_start_time_seconds{job="prometheus"}`},
		time.Unix(1700000000, 0), time.Unix(1700003600, 0))
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal("/api/v1/series", h.gotPath)
	assert.Equal([]string{"up", `process_start_time_seconds{job="prometheus"}`}, h.gotQuery["match[]"])
	assert.Equal("1700000000", h.gotQuery.Get("start"))
	assert.Equal("1700003600", h.gotQuery.Get("end"))

	require.Len(t, series, 2)
	assert.Equal("up", series[0].Name())
	assert.Equal("node", series[1]["job"])
}

func TestSeriesRequiresSelector(t *testing.T) {
	cli, err := promquery.NewClient("http://127.0.0.1:0")
	require.NoError(t, err)

	// The check happens before any request is made.
	_, _, err = cli.Series(context.Background(), nil, time.Time{}, time.Time{})
	assert.True(t, errors.Is(err, promquery.ErrEmptySeriesSelector))
}

func TestLabelNames(t *testing.T) {
	h := &recordingHandler{body: `{
		"status": "success",
		"data": ["__name__", "instance", "job"]
	}`}
	cli := newTestClient(t, h)

	names, _, err := cli.LabelNames(context.Background(), []string{"up"}, time.Time{}, time.Time{})
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/labels", h.gotPath)
	assert.Equal(t, "up", h.gotQuery.Get("match[]"))
	assert.Equal(t, []string{"__name__", "instance", "job"}, names)
}

func TestLabelValues(t *testing.T) {
	h := &recordingHandler{body: `{
		"status": "success",
		"data": ["node", "prometheus"]
	}`}
	cli := newTestClient(t, h)

	values, _, err := cli.LabelValues(context.Background(), "job", nil, time.Time{}, time.Time{})
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/label/job/values", h.gotPath)
	assert.Equal(t, []string{"node", "prometheus"}, values)
}

func TestRules(t *testing.T) {
	h := &recordingHandler{body: `{
		"status": "success",
		"data": {"groups": [
			{
				"name": "example",
				"file": "/rules.yaml",
				"interval": 60,
				"rules": [
					{"type": "recording", "name": "job:up:sum", "query": "sum by (job) (up)", "health": "ok"}
				]
			}
		]}
	}`}
	cli := newTestClient(t, h)

	groups, err := cli.Rules(context.Background(), model.RuleKindRecording)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal("/api/v1/rules", h.gotPath)
	assert.Equal("recording", h.gotQuery.Get("type"))

	require.Len(t, groups, 1)
	require.Len(t, groups[0].Rules, 1)
	assert.Equal("job:up:sum", groups[0].Rules[0].Name())
}

func TestAlerts(t *testing.T) {
	h := &recordingHandler{body: `{
		"status": "success",
		"data": {"alerts": [
			{
				"activeAt": "2018-07-04T20:27:12.60602144+02:00",
				"annotations": {},
				"labels": {"alertname": "HighErrorRate"},
				"state": "pending",
				"value": "1e+00"
			}
		]}
	}`}
	cli := newTestClient(t, h)

	alerts, err := cli.Alerts(context.Background())
	require.NoError(t, err)

	require.Len(t, alerts, 1)
	assert.Equal(t, "HighErrorRate", alerts[0].Labels["alertname"])
	assert.True(t, alerts[0].State.IsPending())
}

func TestTargets(t *testing.T) {
	h := &recordingHandler{body: `{
		"status": "success",
		"data": {
			"activeTargets": [
				{
					"discoveredLabels": {},
					"labels": {"job": "prometheus"},
					"scrapePool": "prometheus",
					"scrapeUrl": "http://127.0.0.1:9090/metrics",
					"lastError": "",
					"lastScrape": "2017-01-17T15:07:44.723715405+01:00",
					"lastScrapeDuration": 0.05,
					"health": "up",
					"scrapeInterval": "30s",
					"scrapeTimeout": "10s"
				}
			],
			"droppedTargets": []
		}
	}`}
	cli := newTestClient(t, h)

	targets, err := cli.Targets(context.Background(), promquery.TargetStateActive)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal("active", h.gotQuery.Get("state"))
	require.Len(t, targets.Active, 1)
	assert.True(targets.Active[0].Health.IsUp())
	assert.Empty(targets.Dropped)
}

func TestTargetMetadata(t *testing.T) {
	h := &recordingHandler{body: `{
		"status": "success",
		"data": [
			{
				"target": {"instance": "127.0.0.1:9090", "job": "prometheus"},
				"type": "gauge",
				"help": "Number of goroutines that currently exist.",
				"unit": ""
			}
		]
	}`}
	cli := newTestClient(t, h)

	md, err := cli.TargetMetadata(context.Background(), `{job="prometheus"}`, "go_goroutines", 5)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal("/api/v1/targets/metadata", h.gotPath)
	assert.Equal(`{job="prometheus"}`, h.gotQuery.Get("match_target"))
	assert.Equal("go_goroutines", h.gotQuery.Get("metric"))
	assert.Equal("5", h.gotQuery.Get("limit"))
	require.Len(t, md, 1)
	assert.Equal(model.MetricTypeGauge, md[0].Type)
}

func TestMetricMetadata(t *testing.T) {
	h := &recordingHandler{body: `{
		"status": "success",
		"data": {
			"http_requests_total": [{"type": "counter", "help": "Total requests.", "unit": ""}]
		}
	}`}
	cli := newTestClient(t, h)

	md, err := cli.MetricMetadata(context.Background(), "", 0)
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/metadata", h.gotPath)
	require.Len(t, md["http_requests_total"], 1)
	assert.Equal(t, model.MetricTypeCounter, md["http_requests_total"][0].Type)
}

func TestFlags(t *testing.T) {
	h := &recordingHandler{body: `{
		"status": "success",
		"data": {"alertmanager.notification-queue-capacity": "10000", "query.timeout": "2m"}
	}`}
	cli := newTestClient(t, h)

	flags, err := cli.Flags(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2m", flags["query.timeout"])
}

func TestStatusEndpoints(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		expPath string
		call    func(*promquery.Client) error
	}{
		{
			name: "Build information should decode.",
			body: `{"status": "success", "data": {
				"version": "2.13.1", "revision": "abc", "branch": "HEAD",
				"buildUser": "root", "buildDate": "20191017-13:15:01", "goVersion": "go1.13.1"
			}}`,
			expPath: "/api/v1/status/buildinfo",
			call: func(c *promquery.Client) error {
				info, err := c.BuildInformation(context.Background())
				if err != nil {
					return err
				}
				assert.Equal(t, "2.13.1", info.Version)
				return nil
			},
		},
		{
			name: "Runtime information should decode.",
			body: `{"status": "success", "data": {
				"startTime": "2019-11-02T17:23:59+01:00", "CWD": "/",
				"reloadConfigSuccess": true, "lastConfigTime": "2019-11-02T17:23:59+01:00",
				"corruptionCount": 0, "goroutineCount": 217, "GOMAXPROCS": 2,
				"GOGC": "", "GODEBUG": "", "storageRetention": "15d"
			}}`,
			expPath: "/api/v1/status/runtimeinfo",
			call: func(c *promquery.Client) error {
				info, err := c.RuntimeInformation(context.Background())
				if err != nil {
					return err
				}
				assert.Equal(t, 217, info.GoroutineCount)
				return nil
			},
		},
		{
			name: "TSDB statistics should decode.",
			body: `{"status": "success", "data": {
				"headStats": {"numSeries": 508, "chunkCount": 937, "minTime": 1, "maxTime": 2},
				"seriesCountByMetricName": [], "labelValueCountByLabelName": [],
				"memoryInBytesByLabelName": [], "seriesCountByLabelValuePair": []
			}}`,
			expPath: "/api/v1/status/tsdb",
			call: func(c *promquery.Client) error {
				stats, err := c.TSDBStats(context.Background())
				if err != nil {
					return err
				}
				assert.Equal(t, uint64(508), stats.HeadStats.NumSeries)
				return nil
			},
		},
		{
			name:    "WAL replay progress should decode.",
			body:    `{"status": "success", "data": {"min": 2, "max": 5, "current": 5, "state": "done"}}`,
			expPath: "/api/v1/status/walreplay",
			call: func(c *promquery.Client) error {
				status, err := c.WALReplay(context.Background())
				if err != nil {
					return err
				}
				assert.Equal(t, 5, status.Current)
				return nil
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			h := &recordingHandler{body: test.body}
			cli := newTestClient(t, h)

			require.NoError(t, test.call(cli))
			assert.Equal(t, test.expPath, h.gotPath)
			assert.Equal(t, http.MethodGet, h.gotMethod)
		})
	}
}
