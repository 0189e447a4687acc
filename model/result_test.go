package model_test

import (
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/promquery/model"
)

func TestQueryResultUnmarshal(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expErr   error
		validate func(*testing.T, model.QueryResult)
	}{
		{
			name: "A vector payload should decode into the vector variant.",
			raw: `{
				"resultType": "vector",
				"result": [{"metric": {"job": "a"}, "value": [1700000000.5, "12.3"]}]
			}`,
			validate: func(t *testing.T, r model.QueryResult) {
				assert := assert.New(t)
				assert.Equal(model.ValVector, r.Type())
				assert.True(r.IsVector())
				assert.False(r.IsMatrix())
				assert.False(r.Empty())

				v, ok := r.Vector()
				require.True(t, ok)
				require.Len(t, v, 1)
				assert.Equal("a", v[0].Metric["job"])
				assert.True(v[0].Value.Equal(model.SamplePair{Timestamp: 1700000000.5, Value: 12.3}))

				_, ok = r.Matrix()
				assert.False(ok)
				_, ok = r.Scalar()
				assert.False(ok)
			},
		},
		{
			name: "A matrix payload should decode into the matrix variant, order preserved.",
			raw: `{
				"resultType": "matrix",
				"result": [{"metric": {}, "values": [[1, "1"], [2, "2"], [3, "3"]]}]
			}`,
			validate: func(t *testing.T, r model.QueryResult) {
				assert := assert.New(t)
				m, ok := r.Matrix()
				require.True(t, ok)
				require.Len(t, m, 1)
				require.Len(t, m[0].Values, 3)
				for i, p := range m[0].Values {
					assert.Equal(model.Time(i+1), p.Timestamp)
					assert.Equal(model.SampleValue(i+1), p.Value)
				}
			},
		},
		{
			name: "A scalar payload should decode into the scalar variant.",
			raw:  `{"resultType": "scalar", "result": [1700000000, "3.14"]}`,
			validate: func(t *testing.T, r model.QueryResult) {
				assert := assert.New(t)
				s, ok := r.Scalar()
				require.True(t, ok)
				assert.True(s.Equal(model.SamplePair{Timestamp: 1700000000, Value: 3.14}))
			},
		},
		{
			name: "An empty vector decodes as an empty result.",
			raw:  `{"resultType": "vector", "result": []}`,
			validate: func(t *testing.T, r model.QueryResult) {
				assert.True(t, r.Empty())
			},
		},
		{
			name:   "An unknown discriminant should fail distinctly.",
			raw:    `{"resultType": "bogus", "result": []}`,
			expErr: model.ErrUnknownResultType,
		},
		{
			name:   "A scalar discriminant with a vector payload should fail.",
			raw:    `{"resultType": "scalar", "result": [{"metric": {}, "value": [1, "2"]}]}`,
			expErr: model.ErrMalformedPayload,
		},
		{
			name:   "A vector discriminant with a scalar payload should fail.",
			raw:    `{"resultType": "vector", "result": [1, "2"]}`,
			expErr: model.ErrMalformedPayload,
		},
		{
			name:   "A vector entry carrying matrix-shaped values should fail, not decode to a zero sample.",
			raw:    `{"resultType": "vector", "result": [{"metric": {"job": "a"}, "values": [[1, "1"], [2, "2"]]}]}`,
			expErr: model.ErrMalformedPayload,
		},
		{
			name:   "A matrix entry carrying a vector-shaped value should fail, not decode to an empty stream.",
			raw:    `{"resultType": "matrix", "result": [{"metric": {"job": "a"}, "value": [1700000000.5, "12.3"]}]}`,
			expErr: model.ErrMalformedPayload,
		},
		{
			name:   "A missing discriminant should fail.",
			raw:    `{"result": []}`,
			expErr: model.ErrMalformedPayload,
		},
		{
			name:   "A missing payload should fail.",
			raw:    `{"resultType": "vector"}`,
			expErr: model.ErrMalformedPayload,
		},
		{
			name:   "A non-object should fail.",
			raw:    `[1, 2, 3]`,
			expErr: model.ErrMalformedPayload,
		},
		{
			name:   "A bad value inside the payload keeps its own error.",
			raw:    `{"resultType": "vector", "result": [{"metric": {}, "value": [1, "one"]}]}`,
			expErr: model.ErrInvalidNumber,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var r model.QueryResult
			err := json.Unmarshal([]byte(test.raw), &r)

			if test.expErr != nil {
				assert.True(t, errors.Is(err, test.expErr))
				assert.True(t, model.IsDecodeErr(err))
				return
			}
			require.NoError(t, err)
			test.validate(t, r)
		})
	}
}

func TestQueryResultRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		result model.QueryResult
	}{
		{
			name: "A vector should survive a round trip.",
			result: model.VectorResult(model.Vector{
				{Metric: model.Metric{"job": "a", "instance": "b"}, Value: model.SamplePair{Timestamp: 1, Value: 2}},
			}),
		},
		{
			name: "A matrix should survive a round trip.",
			result: model.MatrixResult(model.Matrix{
				{Metric: model.Metric{"job": "a"}, Values: []model.SamplePair{{Timestamp: 1, Value: 1}, {Timestamp: 2, Value: 2}}},
			}),
		},
		{
			name:   "A scalar should survive a round trip.",
			result: model.ScalarResult(model.SamplePair{Timestamp: 1700000000, Value: 3.14}),
		},
		{
			name:   "A nil vector should encode as an empty list and come back empty.",
			result: model.VectorResult(nil),
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert := assert.New(t)

			raw, err := json.Marshal(test.result)
			require.NoError(t, err)

			var back model.QueryResult
			require.NoError(t, json.Unmarshal(raw, &back))

			assert.Equal(test.result.Type(), back.Type())
			assert.Equal(test.result.Empty(), back.Empty())

			again, err := json.Marshal(back)
			require.NoError(t, err)
			assert.JSONEq(string(raw), string(again))
		})
	}
}

func TestQueryDataStats(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expStats bool
		validate func(*testing.T, *model.Stats)
	}{
		{
			name: "Without a stats field there are no stats.",
			raw:  `{"resultType": "scalar", "result": [1, "1"]}`,
		},
		{
			name: "A stats object should decode alongside the result.",
			raw: `{
				"resultType": "vector",
				"result": [],
				"stats": {
					"timings": {"evalTotalTime": 0.5, "execTotalTime": 0.6},
					"samples": {"totalQueryableSamples": 100, "peakSamples": 10,
						"totalQueryableSamplesPerStep": [[1, 50], [2, 50]]}
				}
			}`,
			expStats: true,
			validate: func(t *testing.T, s *model.Stats) {
				assert := assert.New(t)
				assert.Equal(0.5, s.Timings.EvalTotalTime)
				assert.Equal(0.6, s.Timings.ExecTotalTime)
				assert.Equal(int64(100), s.Samples.Total)
				assert.Equal(int64(10), s.Samples.PeakSamples)
				require.Len(t, s.Samples.PerStep, 2)
				assert.Equal(model.SampleValue(50), s.Samples.PerStep[0].Value)
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var d model.QueryData
			require.NoError(t, json.Unmarshal([]byte(test.raw), &d))

			if !test.expStats {
				assert.Nil(t, d.Stats)
				return
			}
			require.NotNil(t, d.Stats)
			test.validate(t, d.Stats)
		})
	}
}

func TestQueryDataMarshalKeepsStats(t *testing.T) {
	assert := assert.New(t)

	d := model.QueryData{
		Result: model.ScalarResult(model.SamplePair{Timestamp: 1, Value: 2}),
		Stats:  &model.Stats{Samples: model.Samples{Total: 7}},
	}
	raw, err := json.Marshal(d)
	require.NoError(t, err)

	var back model.QueryData
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.True(back.Result.IsScalar())
	require.NotNil(t, back.Stats)
	assert.Equal(int64(7), back.Stats.Samples.Total)
}
