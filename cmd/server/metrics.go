package main

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vnpoem/poetic"
)

type metrics struct {
	requests    *prometheus.CounterVec
	stanzaScore *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)
	return &metrics{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "poetic_requests_total",
			Help: "HTTP requests by endpoint and status code.",
		}, []string{"endpoint", "code"}),
		stanzaScore: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "poetic_stanza_score",
			Help:    "Scores of analyzed stanzas by form.",
			Buckets: []float64{0, 25, 50, 70, 80, 90, 95, 99, 100},
		}, []string{"form"}),
	}
}

// instrument counts requests to h under endpoint.
func (m *metrics) instrument(endpoint string, h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		h.ServeHTTP(sw, r)
		m.requests.WithLabelValues(endpoint, strconv.Itoa(sw.status)).Inc()
	})
}

func (m *metrics) observe(a *poetic.Analysis) {
	h := m.stanzaScore.WithLabelValues(a.Form.Tag())
	for _, st := range a.Stanzas {
		h.Observe(st.Score)
	}
}
