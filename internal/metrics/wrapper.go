package metrics

import "strconv"

// MetricsWrapper adapts Metrics to the small interfaces the ml and web
// packages declare, so neither imports Prometheus directly.
type MetricsWrapper struct {
	m *Metrics
}

func NewWrapper(m *Metrics) *MetricsWrapper {
	return &MetricsWrapper{m: m}
}

// ml.MetricsInterface

func (w *MetricsWrapper) PredictionsInc() {
	w.m.PredictionsTotal.Inc()
}

func (w *MetricsWrapper) PredictionFailuresInc() {
	w.m.PredictionFailures.Inc()
}

func (w *MetricsWrapper) PredictionLatencyObserve(v float64) {
	w.m.PredictionLatency.Observe(v)
}

func (w *MetricsWrapper) PredictedPriceObserve(v float64) {
	w.m.PredictedPrice.Observe(v)
}

func (w *MetricsWrapper) ModelAgeSet(v float64) {
	w.m.ModelAge.Set(v)
}

// web.Metrics

func (w *MetricsWrapper) RoleSelected(role string) {
	w.m.RoleSelections.WithLabelValues(role).Inc()
}

func (w *MetricsWrapper) RequestServed(route string, code int) {
	w.m.HTTPRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
}

func (w *MetricsWrapper) FeedClientsSet(n int) {
	w.m.FeedClients.Set(float64(n))
}

func (w *MetricsWrapper) HistoryWrite(ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	w.m.HistoryWrites.WithLabelValues(result).Inc()
}
