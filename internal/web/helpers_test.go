package web

import (
	"sync"
	"testing"

	"clean-energy-predictor/internal/features"
	"clean-energy-predictor/internal/ml"

	"github.com/stretchr/testify/require"
)

const (
	fixtureScaler = "../ml/testdata/scaler.json"
	fixtureModel  = "../ml/testdata/random_forest_model.json"
)

// mockPredictor records every record it is asked about.
type mockPredictor struct {
	mu      sync.Mutex
	price   float64
	err     error
	records []features.FeatureRecord
}

func (m *mockPredictor) Predict(record features.FeatureRecord) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, record)
	return m.price, m.err
}

func (m *mockPredictor) Info() ml.ModelInfo {
	return ml.ModelInfo{Version: "mock", Trees: 1, ScalerKind: "standard"}
}

func (m *mockPredictor) last() features.FeatureRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.records[len(m.records)-1]
}

// mockMetrics implements Metrics for testing
type mockMetrics struct {
	mu          sync.Mutex
	roles       map[string]int
	requests    map[string]int
	feedClients int
	historyOK   int
	historyErr  int
}

func newMockMetrics() *mockMetrics {
	return &mockMetrics{roles: map[string]int{}, requests: map[string]int{}}
}

func (m *mockMetrics) RoleSelected(role string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.roles[role]++
}

func (m *mockMetrics) RequestServed(route string, code int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[route]++
}

func (m *mockMetrics) FeedClientsSet(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.feedClients = n
}

func (m *mockMetrics) HistoryWrite(ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ok {
		m.historyOK++
	} else {
		m.historyErr++
	}
}

func (m *mockMetrics) roleCount(role string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.roles[role]
}

func (m *mockMetrics) requestCount(route string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requests[route]
}

func fixturePredictor(t *testing.T) *ml.Predictor {
	t.Helper()
	p, err := ml.New(fixtureScaler, fixtureModel)
	require.NoError(t, err)
	return p
}

func testConfig() Config {
	return Config{HistoryLimit: 10}
}
