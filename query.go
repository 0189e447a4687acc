package promquery

import (
	"context"
	"net/url"
	"time"

	"github.com/pkg/errors"

	"github.com/slok/promquery/model"
)

// Range is the time range and resolution of a range query.
type Range struct {
	Start time.Time
	End   time.Time
	// Step is the resolution of the returned sample streams.
	Step time.Duration
}

// InstantQuery is a builder for an instant expression query. All
// parameters besides the expression are optional.
type InstantQuery struct {
	c       *Client
	expr    string
	ts      time.Time
	timeout time.Duration
	stats   bool
}

// Query starts an instant query for the given expression. The
// expression is passed to the server as-is.
func (c *Client) Query(expr string) *InstantQuery {
	return &InstantQuery{c: c, expr: expr}
}

// At sets the evaluation time. When unset, the server evaluates at its
// current time.
func (q *InstantQuery) At(t time.Time) *InstantQuery {
	q.ts = t
	return q
}

// Timeout sets the server-side evaluation timeout.
func (q *InstantQuery) Timeout(d time.Duration) *InstantQuery {
	q.timeout = d
	return q
}

// Stats asks the server to include execution statistics in the
// response.
func (q *InstantQuery) Stats() *InstantQuery {
	q.stats = true
	return q
}

func (q *InstantQuery) params() url.Values {
	p := url.Values{}
	p.Set("query", q.expr)
	if !q.ts.IsZero() {
		p.Set("time", formatTime(q.ts))
	}
	if q.timeout > 0 {
		p.Set("timeout", q.timeout.String())
	}
	if q.stats {
		p.Set("stats", "all")
	}
	return p
}

// Do executes the query with a GET request.
func (q *InstantQuery) Do(ctx context.Context) (*model.QueryData, Warnings, error) {
	var data model.QueryData
	w, err := q.c.get(ctx, "/query", q.params(), &data)
	if err != nil {
		return nil, w, err
	}
	return &data, w, nil
}

// DoPost executes the query with a form-encoded POST request. Useful
// when the expression is too long for a URL.
func (q *InstantQuery) DoPost(ctx context.Context) (*model.QueryData, Warnings, error) {
	var data model.QueryData
	w, err := q.c.postForm(ctx, "/query", q.params(), &data)
	if err != nil {
		return nil, w, err
	}
	return &data, w, nil
}

// RangeQuery is a builder for a range expression query.
type RangeQuery struct {
	c       *Client
	expr    string
	r       Range
	timeout time.Duration
	stats   bool
}

// QueryRange starts a range query for the given expression over r.
func (c *Client) QueryRange(expr string, r Range) *RangeQuery {
	return &RangeQuery{c: c, expr: expr, r: r}
}

// Timeout sets the server-side evaluation timeout.
func (q *RangeQuery) Timeout(d time.Duration) *RangeQuery {
	q.timeout = d
	return q
}

// Stats asks the server to include execution statistics in the
// response.
func (q *RangeQuery) Stats() *RangeQuery {
	q.stats = true
	return q
}

func (q *RangeQuery) validate() error {
	if q.r.Start.IsZero() || q.r.End.IsZero() {
		return errors.New("range query requires a start and an end time")
	}
	if q.r.Step <= 0 {
		return errors.New("range query requires a positive step")
	}
	return nil
}

func (q *RangeQuery) params() url.Values {
	p := url.Values{}
	p.Set("query", q.expr)
	p.Set("start", formatTime(q.r.Start))
	p.Set("end", formatTime(q.r.End))
	p.Set("step", q.r.Step.String())
	if q.timeout > 0 {
		p.Set("timeout", q.timeout.String())
	}
	if q.stats {
		p.Set("stats", "all")
	}
	return p
}

// Do executes the query with a GET request.
func (q *RangeQuery) Do(ctx context.Context) (*model.QueryData, Warnings, error) {
	if err := q.validate(); err != nil {
		return nil, nil, err
	}
	var data model.QueryData
	w, err := q.c.get(ctx, "/query_range", q.params(), &data)
	if err != nil {
		return nil, w, err
	}
	return &data, w, nil
}

// DoPost executes the query with a form-encoded POST request.
func (q *RangeQuery) DoPost(ctx context.Context) (*model.QueryData, Warnings, error) {
	if err := q.validate(); err != nil {
		return nil, nil, err
	}
	var data model.QueryData
	w, err := q.c.postForm(ctx, "/query_range", q.params(), &data)
	if err != nil {
		return nil, w, err
	}
	return &data, w, nil
}
