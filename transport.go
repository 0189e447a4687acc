package promquery

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// InstrumentedTransport wraps next with in-flight, request count and
// duration metrics registered on reg. Use it to observe the client
// from the application's own metrics endpoint:
//
//	rt, _ := promquery.InstrumentedTransport(prometheus.DefaultRegisterer, http.DefaultTransport)
//	cli, _ := promquery.NewClient(addr, promquery.WithHTTPClient(&http.Client{Transport: rt}))
func InstrumentedTransport(reg prometheus.Registerer, next http.RoundTripper) (http.RoundTripper, error) {
	if next == nil {
		next = http.DefaultTransport
	}

	inFlight := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "promquery_client_in_flight_requests",
		Help: "Number of API requests currently in flight.",
	})
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "promquery_client_requests_total",
		Help: "Total number of API requests by status code and method.",
	}, []string{"code", "method"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "promquery_client_request_duration_seconds",
		Help:    "API request latencies.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})

	registered := make([]prometheus.Collector, 0, 3)
	for _, col := range []prometheus.Collector{inFlight, counter, duration} {
		if err := reg.Register(col); err != nil {
			// Leave the registry as it was found.
			for _, r := range registered {
				reg.Unregister(r)
			}
			return nil, err
		}
		registered = append(registered, col)
	}

	return promhttp.InstrumentRoundTripperInFlight(inFlight,
		promhttp.InstrumentRoundTripperCounter(counter,
			promhttp.InstrumentRoundTripperDuration(duration, next))), nil
}
