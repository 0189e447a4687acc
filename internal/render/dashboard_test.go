package render

import (
	"math"
	"testing"
	"time"

	"github.com/mum4k/termdash/widgets/linechart"
	"github.com/mum4k/termdash/widgets/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/promquery/model"
)

type fakeChart struct {
	series map[string][]float64
}

func (f *fakeChart) Series(label string, values []float64, opts ...linechart.SeriesOption) error {
	if f.series == nil {
		f.series = map[string][]float64{}
	}
	f.series[label] = values
	return nil
}

type fakeText struct {
	lines  []string
	resets int
}

func (f *fakeText) Write(s string, opts ...text.WriteOption) error {
	f.lines = append(f.lines, s)
	return nil
}

func (f *fakeText) Reset() {
	f.resets++
	f.lines = nil
}

func stream(job string, values ...float64) model.SampleStream {
	s := model.SampleStream{Metric: model.Metric{"job": job}}
	for i, v := range values {
		s.Values = append(s.Values, model.SamplePair{
			Timestamp: model.Time(i + 1),
			Value:     model.SampleValue(v),
		})
	}
	return s
}

func TestDashboardSync(t *testing.T) {
	assert := assert.New(t)

	chart := &fakeChart{}
	legend := &fakeText{}
	d := &Dashboard{header: &fakeText{}, chart: chart, legend: legend}

	m := model.Matrix{
		stream("a", 1, 2, 3),
		stream("b", 4, math.NaN(), 6),
	}
	require.NoError(t, d.Sync(time.Unix(1700000000, 0), m))

	assert.Equal([]float64{1, 2, 3}, chart.series["series-0"])
	// Non-finite points are dropped before charting.
	assert.Equal([]float64{4, 6}, chart.series["series-1"])
	assert.Len(legend.lines, 2)
	assert.Contains(legend.lines[0], `job="a"`)
}

func TestDashboardSyncClearsStaleSeries(t *testing.T) {
	assert := assert.New(t)

	chart := &fakeChart{}
	d := &Dashboard{header: &fakeText{}, chart: chart, legend: &fakeText{}}

	require.NoError(t, d.Sync(time.Unix(1700000000, 0), model.Matrix{
		stream("a", 1, 2),
		stream("b", 3, 4),
		stream("c", 5, 6),
	}))
	require.NoError(t, d.Sync(time.Unix(1700000010, 0), model.Matrix{
		stream("a", 7, 8),
	}))

	// A smaller refresh blanks what the previous one drew.
	assert.Equal([]float64{7, 8}, chart.series["series-0"])
	assert.Empty(chart.series["series-1"])
	assert.Empty(chart.series["series-2"])

	// A later refresh does not touch series it never drew.
	chart.series = nil
	require.NoError(t, d.Sync(time.Unix(1700000020, 0), model.Matrix{
		stream("a", 9),
	}))
	_, clearedAgain := chart.series["series-1"]
	assert.False(clearedAgain)
}

func TestDashboardXLabels(t *testing.T) {
	assert := assert.New(t)

	assert.Empty(xLabels(nil))

	labels := xLabels([]model.SamplePair{
		{Timestamp: model.TimeFromUnix(time.Unix(1700000000, 0))},
		{Timestamp: model.TimeFromUnix(time.Unix(1700000060, 0))},
		{Timestamp: model.TimeFromUnix(time.Unix(1700000120, 0))},
	})
	assert.Len(labels, 2)
	assert.Contains(labels, 0)
	assert.Contains(labels, 2)
}
