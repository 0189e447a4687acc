package promquery

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/slok/promquery/model"
)

// TargetState filters the targets endpoint by target lifecycle state.
type TargetState string

const (
	TargetStateActive  TargetState = "active"
	TargetStateDropped TargetState = "dropped"
	TargetStateAny     TargetState = "any"
)

// timeRangeParams adds optional start/end parameters shared by the
// series and label endpoints.
func timeRangeParams(p url.Values, start, end time.Time) {
	if !start.IsZero() {
		p.Set("start", formatTime(start))
	}
	if !end.IsZero() {
		p.Set("end", formatTime(end))
	}
}

// Series finds series by the given selectors, e.g.
// `up{job="prometheus"}`. At least one selector is required; the
// optional time range restricts the search.
func (c *Client) Series(ctx context.Context, selectors []string, start, end time.Time) ([]model.Metric, Warnings, error) {
	if len(selectors) == 0 {
		return nil, nil, ErrEmptySeriesSelector
	}
	p := url.Values{}
	for _, sel := range selectors {
		p.Add("match[]", sel)
	}
	timeRangeParams(p, start, end)

	var series []model.Metric
	w, err := c.get(ctx, "/series", p, &series)
	if err != nil {
		return nil, w, err
	}
	return series, w, nil
}

// LabelNames returns the label names present in the database,
// optionally restricted by selectors and a time range.
func (c *Client) LabelNames(ctx context.Context, selectors []string, start, end time.Time) ([]string, Warnings, error) {
	p := url.Values{}
	for _, sel := range selectors {
		p.Add("match[]", sel)
	}
	timeRangeParams(p, start, end)

	var names []string
	w, err := c.get(ctx, "/labels", p, &names)
	if err != nil {
		return nil, w, err
	}
	return names, w, nil
}

// LabelValues returns the known values of one label, optionally
// restricted by selectors and a time range.
func (c *Client) LabelValues(ctx context.Context, label string, selectors []string, start, end time.Time) ([]string, Warnings, error) {
	p := url.Values{}
	for _, sel := range selectors {
		p.Add("match[]", sel)
	}
	timeRangeParams(p, start, end)

	var values []string
	w, err := c.get(ctx, "/label/"+url.PathEscape(label)+"/values", p, &values)
	if err != nil {
		return nil, w, err
	}
	return values, w, nil
}

// The endpoints below do not return warnings: the server only attaches
// warnings to expression, series and label queries, so there is nothing
// to surface here.

// Rules returns the currently loaded rule groups. A non-empty kind
// restricts the result to alerting or recording rules.
func (c *Client) Rules(ctx context.Context, kind model.RuleKind) ([]model.RuleGroup, error) {
	p := url.Values{}
	if kind != "" {
		p.Set("type", string(kind))
	}
	var data struct {
		Groups []model.RuleGroup `json:"groups"`
	}
	if _, err := c.get(ctx, "/rules", p, &data); err != nil {
		return nil, err
	}
	return data.Groups, nil
}

// Alerts returns all currently active alerts.
func (c *Client) Alerts(ctx context.Context) ([]model.Alert, error) {
	var data struct {
		Alerts []model.Alert `json:"alerts"`
	}
	if _, err := c.get(ctx, "/alerts", nil, &data); err != nil {
		return nil, err
	}
	return data.Alerts, nil
}

// Alertmanagers returns the current state of alertmanager discovery.
func (c *Client) Alertmanagers(ctx context.Context) (*model.Alertmanagers, error) {
	var ams model.Alertmanagers
	if _, err := c.get(ctx, "/alertmanagers", nil, &ams); err != nil {
		return nil, err
	}
	return &ams, nil
}

// Targets returns the current state of target discovery, optionally
// filtered by lifecycle state.
func (c *Client) Targets(ctx context.Context, state TargetState) (*model.Targets, error) {
	p := url.Values{}
	if state != "" {
		p.Set("state", string(state))
	}
	var targets model.Targets
	if _, err := c.get(ctx, "/targets", p, &targets); err != nil {
		return nil, err
	}
	return &targets, nil
}

// TargetMetadata returns metric metadata per target. matchTarget
// selects targets by their label sets, metric filters on one metric
// name; both are optional, limit <= 0 means no limit.
func (c *Client) TargetMetadata(ctx context.Context, matchTarget, metric string, limit int) ([]model.TargetMetadata, error) {
	p := url.Values{}
	if matchTarget != "" {
		p.Set("match_target", matchTarget)
	}
	if metric != "" {
		p.Set("metric", metric)
	}
	if limit > 0 {
		p.Set("limit", strconv.Itoa(limit))
	}
	var md []model.TargetMetadata
	if _, err := c.get(ctx, "/targets/metadata", p, &md); err != nil {
		return nil, err
	}
	return md, nil
}

// MetricMetadata returns metadata about metrics, keyed by metric name.
// metric optionally filters on one name, limit <= 0 means no limit.
func (c *Client) MetricMetadata(ctx context.Context, metric string, limit int) (map[string][]model.MetricMetadata, error) {
	p := url.Values{}
	if metric != "" {
		p.Set("metric", metric)
	}
	if limit > 0 {
		p.Set("limit", strconv.Itoa(limit))
	}
	var md map[string][]model.MetricMetadata
	if _, err := c.get(ctx, "/metadata", p, &md); err != nil {
		return nil, err
	}
	return md, nil
}

// Flags returns the flag values the server was started with.
func (c *Client) Flags(ctx context.Context) (map[string]string, error) {
	var flags map[string]string
	if _, err := c.get(ctx, "/status/flags", nil, &flags); err != nil {
		return nil, err
	}
	return flags, nil
}

// BuildInformation returns the build information of the server binary.
func (c *Client) BuildInformation(ctx context.Context) (*model.BuildInformation, error) {
	var info model.BuildInformation
	if _, err := c.get(ctx, "/status/buildinfo", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// RuntimeInformation returns runtime state of the server.
func (c *Client) RuntimeInformation(ctx context.Context) (*model.RuntimeInformation, error) {
	var info model.RuntimeInformation
	if _, err := c.get(ctx, "/status/runtimeinfo", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// TSDBStats returns cardinality statistics of the server's TSDB.
func (c *Client) TSDBStats(ctx context.Context) (*model.TSDBStats, error) {
	var stats model.TSDBStats
	if _, err := c.get(ctx, "/status/tsdb", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// WALReplay returns the progress of the server's WAL replay.
func (c *Client) WALReplay(ctx context.Context) (*model.WALReplayStatus, error) {
	var status model.WALReplayStatus
	if _, err := c.get(ctx, "/status/walreplay", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}
