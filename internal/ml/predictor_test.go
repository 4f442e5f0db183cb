package ml

import (
	"math"
	"sync"
	"testing"

	"clean-energy-predictor/internal/features"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredictor_DefaultRecord(t *testing.T) {
	metrics := &MockMetrics{}
	p := fixturePredictor(t, metrics)

	price, err := p.Predict(features.Default())
	require.NoError(t, err)

	// scaled [3.396, 0.698, -1.667, -0.03] -> 0.08, 0.10, 0.11
	assert.InDelta(t, (0.08+0.10+0.11)/3, price, 1e-12)

	assert.Equal(t, 1, metrics.predictions)
	assert.Equal(t, 0, metrics.failures)
	assert.Len(t, metrics.latencies, 1)
	assert.Equal(t, []float64{price}, metrics.prices)
	assert.Greater(t, metrics.modelAge, 0.0)
}

func TestPredictor_FiniteOverValidRange(t *testing.T) {
	p := fixturePredictor(t, nil)

	energies := []float64{0, 0.5, 1000, 2698, 1e6}
	prices := []float64{0, 2.97, 10, 500}
	for _, e := range energies {
		for _, g := range prices {
			for hour := features.MinHour; hour <= features.MaxHour; hour++ {
				rec := features.FeatureRecord{UnmetKWh: e, LoadKWh: e, Hour: hour, NaturalGasPrice: g}
				price, err := p.Predict(rec)
				require.NoError(t, err, rec.String())
				assert.False(t, math.IsNaN(price) || math.IsInf(price, 0), rec.String())
			}
		}
	}
}

func TestPredictor_ColumnOrderMatters(t *testing.T) {
	p := fixturePredictor(t, nil)

	tests := []struct {
		i, j int
		rec  features.FeatureRecord
	}{
		{0, 1, features.FeatureRecord{UnmetKWh: 500, LoadKWh: 2698, Hour: 0, NaturalGasPrice: 2.97}},
		{0, 2, features.FeatureRecord{UnmetKWh: 2000, LoadKWh: 2698, Hour: 5, NaturalGasPrice: 2.97}},
		{0, 3, features.FeatureRecord{UnmetKWh: 2000, LoadKWh: 2698, Hour: 0, NaturalGasPrice: 2.97}},
		{1, 2, features.Default()},
		{1, 3, features.FeatureRecord{UnmetKWh: 500, LoadKWh: 2698, Hour: 0, NaturalGasPrice: 2.97}},
		{2, 3, features.FeatureRecord{UnmetKWh: 2698, LoadKWh: 2698, Hour: 20, NaturalGasPrice: 5}},
	}

	for _, tt := range tests {
		t.Run(features.Columns[tt.i]+" <-> "+features.Columns[tt.j], func(t *testing.T) {
			row := tt.rec.Row()
			swapped := tt.rec.Row()
			swapped[tt.i], swapped[tt.j] = swapped[tt.j], swapped[tt.i]

			want, err := p.predictRow(row)
			require.NoError(t, err)
			got, err := p.predictRow(swapped)
			require.NoError(t, err)

			assert.NotEqual(t, want, got, "swapping columns %d and %d went unnoticed", tt.i, tt.j)
		})
	}
}

func TestPredictor_ShapeErrorOnWrongWidth(t *testing.T) {
	p := fixturePredictor(t, nil)

	_, err := p.predictRow([]float64{1, 2, 3})
	require.Error(t, err)
	assert.True(t, IsShapeError(err))
	assert.Contains(t, err.Error(), "expected 4 features, got 3")
}

func TestPredictor_MissingArtifacts(t *testing.T) {
	tests := []struct {
		name   string
		scaler string
		model  string
		kind   string
	}{
		{"scaler missing", "testdata/missing_scaler.json", fixtureModel, "scaler"},
		{"model missing", fixtureScaler, "testdata/missing_model.json", "model"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.scaler, tt.model)
			require.Error(t, err)
			assert.Nil(t, p)

			var ae *ArtifactError
			require.ErrorAs(t, err, &ae)
			assert.Equal(t, tt.kind, ae.Kind)
		})
	}
}

func TestPredictor_ColumnNameMismatch(t *testing.T) {
	scaler := writeFile(t, "scaler.json", `{
		"kind": "standard",
		"feature_names": ["Load (kWh)", "Unmet(kWh)", "Hour", "Natural Gas Price ($/M Btu)"],
		"mean": [0, 0, 0, 0],
		"scale": [1, 1, 1, 1]
	}`)

	_, err := New(scaler, fixtureModel)
	require.Error(t, err)
	assert.True(t, IsArtifactError(err))
	assert.True(t, IsShapeError(err))
	assert.Contains(t, err.Error(), "column mismatch")
}

func TestPredictor_WrongArtifactWidth(t *testing.T) {
	scaler := writeFile(t, "scaler.json", `{"kind":"standard","mean":[0,0,0],"scale":[1,1,1]}`)

	_, err := New(scaler, fixtureModel)
	require.Error(t, err)
	assert.True(t, IsArtifactError(err))
	assert.True(t, IsShapeError(err))
}

func TestPredictor_NilSafety(t *testing.T) {
	var p *Predictor

	_, err := p.Predict(features.Default())
	assert.Error(t, err)
}

func TestPredictor_Info(t *testing.T) {
	p := fixturePredictor(t, nil)

	info := p.Info()
	assert.Equal(t, "rf-2024.06", info.Version)
	assert.Equal(t, 3, info.Trees)
	assert.Equal(t, ScalerStandard, info.ScalerKind)
	assert.Equal(t, features.Columns[:], info.FeatureNames)
	assert.Equal(t, fixtureModel, info.ModelPath)
	assert.False(t, info.LoadedAt.IsZero())
}

func TestPredictor_ConcurrentReads(t *testing.T) {
	metrics := &MockMetrics{}
	p := fixturePredictor(t, metrics)
	want, err := p.Predict(features.Default())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := 0; k < 50; k++ {
				got, err := p.Predict(features.Default())
				assert.NoError(t, err)
				assert.Equal(t, want, got)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1+16*50, metrics.predictions)
}

// BenchmarkPredictor_Predict benchmarks the full scale-then-forest path
func BenchmarkPredictor_Predict(b *testing.B) {
	predictor, err := New(fixtureScaler, fixtureModel)
	if err != nil {
		b.Fatal(err)
	}

	record := features.Default()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = predictor.Predict(record)
	}
}
