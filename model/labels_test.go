package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slok/promquery/model"
)

func TestMetric(t *testing.T) {
	assert := assert.New(t)

	m := model.Metric{
		model.MetricNameLabel: "http_requests_total",
		"job":                 "api",
		"code":                "200",
	}

	assert.Equal("http_requests_total", m.Name())
	assert.Equal(`http_requests_total{code="200", job="api"}`, m.String())

	assert.True(m.Equal(m.Clone()))
	assert.False(m.Equal(model.Metric{"job": "api"}))

	c := m.Clone()
	c["job"] = "web"
	assert.Equal("api", m["job"])

	assert.Equal("", model.Metric{"job": "api"}.Name())
	assert.Equal("up", model.Metric{model.MetricNameLabel: "up"}.String())
}
