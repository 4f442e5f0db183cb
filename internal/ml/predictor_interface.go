// Package ml loads the fitted feature scaler and random-forest regressor
// exported from the training notebook and runs them on a FeatureRecord.
//
// Both artifacts are loaded once at startup and shared read-only by every
// request; nothing in this package mutates them after LoadArtifacts returns.
package ml

import "clean-energy-predictor/internal/features"

// PredictorInterface is what the HTTP layer needs from a predictor.
type PredictorInterface interface {
	// Predict scales the record and returns the model's price estimate.
	Predict(record features.FeatureRecord) (float64, error)

	// Info describes the loaded artifacts.
	Info() ModelInfo
}
