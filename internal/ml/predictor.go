package ml

import (
	"fmt"
	"math"
	"time"

	"clean-energy-predictor/internal/features"

	"github.com/rs/zerolog/log"
)

// MetricsInterface defines metrics methods needed by the predictor
type MetricsInterface interface {
	PredictionsInc()
	PredictionFailuresInc()
	PredictionLatencyObserve(float64)
	PredictedPriceObserve(float64)
	ModelAgeSet(float64)
}

// Predictor runs scaler then model on a single record. It holds no mutable
// state, so one instance serves every request concurrently.
type Predictor struct {
	artifacts *Artifacts
	metrics   MetricsInterface
}

// ModelInfo is what /api/model reports.
type ModelInfo struct {
	Version      string    `json:"version"`
	TrainedAt    time.Time `json:"trained_at,omitempty"`
	FeatureNames []string  `json:"feature_names"`
	Trees        int       `json:"trees"`
	ScalerKind   string    `json:"scaler_kind"`
	ScalerPath   string    `json:"scaler_path"`
	ModelPath    string    `json:"model_path"`
	LoadedAt     time.Time `json:"loaded_at"`
}

func New(scalerPath, modelPath string) (*Predictor, error) {
	return NewWithMetrics(scalerPath, modelPath, nil)
}

// NewWithMetrics loads both artifacts. A returned error is always an
// *ArtifactError and means the process must not serve predictions.
func NewWithMetrics(scalerPath, modelPath string, metrics MetricsInterface) (*Predictor, error) {
	a, err := LoadArtifacts(scalerPath, modelPath)
	if err != nil {
		return nil, err
	}
	return NewFromArtifacts(a, metrics), nil
}

// NewFromArtifacts wraps artifacts that were already loaded.
func NewFromArtifacts(a *Artifacts, metrics MetricsInterface) *Predictor {
	p := &Predictor{artifacts: a, metrics: metrics}
	if metrics != nil {
		metrics.ModelAgeSet(a.Age(time.Now()).Seconds())
	}
	return p
}

// Predict builds the fixed-order row for record and runs the pipeline.
func (p *Predictor) Predict(record features.FeatureRecord) (float64, error) {
	if p == nil || p.artifacts == nil {
		return 0, fmt.Errorf("predictor is not initialised")
	}

	start := time.Now()
	price, err := p.predictRow(record.Row())
	if p.metrics != nil {
		p.metrics.PredictionLatencyObserve(time.Since(start).Seconds())
	}
	if err != nil {
		if p.metrics != nil {
			p.metrics.PredictionFailuresInc()
		}
		log.Error().Err(err).Stringer("features", record).Msg("prediction failed")
		return 0, err
	}

	if p.metrics != nil {
		p.metrics.PredictionsInc()
		p.metrics.PredictedPriceObserve(price)
	}

	log.Debug().
		Stringer("features", record).
		Float64("price", price).
		Msg("prediction successful")

	return price, nil
}

// predictRow is the table-level pipeline: transform, predict, take the
// first and only output.
func (p *Predictor) predictRow(row []float64) (float64, error) {
	scaled, err := p.artifacts.Scaler.Transform(row)
	if err != nil {
		return 0, fmt.Errorf("scale features: %w", err)
	}

	out, err := p.artifacts.Model.Predict([][]float64{scaled})
	if err != nil {
		return 0, fmt.Errorf("run model: %w", err)
	}
	if len(out) != 1 {
		return 0, fmt.Errorf("model returned %d predictions for 1 row", len(out))
	}

	price := out[0]
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, ErrNonFinitePrediction
	}
	return price, nil
}

// Info describes the loaded artifacts.
func (p *Predictor) Info() ModelInfo {
	a := p.artifacts
	names := a.Model.FeatureNames
	if len(names) == 0 {
		names = features.Columns[:]
	}
	return ModelInfo{
		Version:      a.Model.Version,
		TrainedAt:    a.Model.TrainedAt,
		FeatureNames: names,
		Trees:        a.Model.NumTrees(),
		ScalerKind:   a.Scaler.Kind,
		ScalerPath:   a.ScalerPath,
		ModelPath:    a.ModelPath,
		LoadedAt:     a.LoadedAt,
	}
}
