package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clean-energy-predictor/internal/advice"
	"clean-energy-predictor/internal/features"
	"clean-energy-predictor/internal/ml"
	"clean-energy-predictor/internal/storage"
	"clean-energy-predictor/internal/web"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, history web.HistoryStore) *httptest.Server {
	t.Helper()
	p, err := ml.New("../ml/testdata/scaler.json", "../ml/testdata/random_forest_model.json")
	require.NoError(t, err)

	srv := web.NewServer(p, history, nil, web.Config{HistoryLimit: 5})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestClient_Predict(t *testing.T) {
	ts := newTestServer(t, nil)
	c := New(ts.URL+"/", time.Second)

	res, err := c.Predict(context.Background(), features.Default(), features.Household)
	require.NoError(t, err)

	assert.Equal(t, "$0.0967", res.FormattedPrice)
	assert.Equal(t, features.Household, res.Role)
	assert.Equal(t, advice.Advise(features.Household), res.Advice)
	assert.Contains(t, res.Text(), "Predicted Purchasing Price: $0.0967 per kWh")
}

func TestClient_PredictExplicitZeros(t *testing.T) {
	ts := newTestServer(t, nil)
	c := New(ts.URL, time.Second)

	res, err := c.Predict(context.Background(), features.FeatureRecord{Hour: 23}, features.PolicyPlanner)
	require.NoError(t, err)
	assert.Equal(t, "$0.0600", res.FormattedPrice)
	assert.Equal(t, features.FeatureRecord{Hour: 23}, res.Features)
}

func TestClient_PredictValidationError(t *testing.T) {
	ts := newTestServer(t, nil)
	c := New(ts.URL, time.Second)

	_, err := c.Predict(context.Background(), features.FeatureRecord{Hour: 30}, features.EnergyManager)
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	require.Len(t, apiErr.Errors, 1)
	assert.Equal(t, "hour", apiErr.Errors[0].Field)
	assert.Contains(t, err.Error(), "hour must be less than or equal to 23")
}

func TestClient_Health(t *testing.T) {
	ts := newTestServer(t, nil)
	c := New(ts.URL, time.Second)

	assert.NoError(t, c.Health(context.Background()))
}

func TestClient_HealthUnhealthy(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"degraded"}`))
	}))
	defer ts.Close()

	err := New(ts.URL, time.Second).Health(context.Background())
	assert.ErrorContains(t, err, "degraded")
}

func TestClient_Unreachable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	err := New(url, 200*time.Millisecond).Health(context.Background())
	assert.ErrorContains(t, err, "request failed")
}

func TestClient_ModelInfoAndRoles(t *testing.T) {
	ts := newTestServer(t, nil)
	c := New(ts.URL, time.Second)

	info, err := c.ModelInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "rf-2024.06", info.Version)
	assert.Equal(t, 3, info.Trees)

	roles, err := c.Roles(context.Background())
	require.NoError(t, err)
	require.Len(t, roles, 3)
	assert.Equal(t, "household", roles[0].Key)
}

func TestClient_History(t *testing.T) {
	store, err := storage.New(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	ts := newTestServer(t, store)
	c := New(ts.URL, time.Second)

	for i := 0; i < 3; i++ {
		_, err := c.Predict(context.Background(), features.Default(), features.Household)
		require.NoError(t, err)
	}

	hist, err := c.History(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, hist.Count)

	hist, err = c.History(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 3, hist.Count)
}

func TestClient_HistoryDisabled(t *testing.T) {
	ts := newTestServer(t, nil)
	c := New(ts.URL, time.Second)

	_, err := c.History(context.Background(), 0)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Contains(t, err.Error(), "prediction history is disabled")
}
