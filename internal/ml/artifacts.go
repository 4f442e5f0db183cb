package ml

import (
	"os"
	"time"

	"clean-energy-predictor/internal/features"

	"github.com/rs/zerolog/log"
)

// Artifacts is the fitted scaler and model pair, loaded once and shared
// read-only for the life of the process.
type Artifacts struct {
	Scaler     *Scaler
	Model      *Forest
	ScalerPath string
	ModelPath  string
	LoadedAt   time.Time
	ModelMTime time.Time
}

// LoadArtifacts reads both files and checks them against the training
// column order. Any failure is an *ArtifactError; callers should treat it
// as fatal.
func LoadArtifacts(scalerPath, modelPath string) (*Artifacts, error) {
	scaler, err := LoadScaler(scalerPath)
	if err != nil {
		return nil, err
	}
	if err := checkColumns("scaler", scaler.NumFeatures(), scaler.FeatureNames); err != nil {
		return nil, &ArtifactError{Kind: "scaler", Path: scalerPath, Err: err}
	}

	model, err := LoadForest(modelPath)
	if err != nil {
		return nil, err
	}
	if err := checkColumns("model", model.NumFeatures(), model.FeatureNames); err != nil {
		return nil, &ArtifactError{Kind: "model", Path: modelPath, Err: err}
	}

	a := &Artifacts{
		Scaler:     scaler,
		Model:      model,
		ScalerPath: scalerPath,
		ModelPath:  modelPath,
		LoadedAt:   time.Now(),
	}
	if info, err := os.Stat(modelPath); err == nil {
		a.ModelMTime = info.ModTime()
	}

	log.Info().
		Str("scaler_path", scalerPath).
		Str("scaler_kind", scaler.Kind).
		Str("model_path", modelPath).
		Str("model_version", model.Version).
		Int("trees", model.NumTrees()).
		Msg("model artifacts loaded")

	return a, nil
}

// checkColumns compares an artifact's width and (when exported) column
// names with features.Columns.
func checkColumns(stage string, n int, names []string) error {
	if n != features.NumFeatures {
		return &ShapeError{Stage: stage, Expected: features.NumFeatures, Got: n}
	}
	if len(names) == 0 {
		return nil
	}
	for i, name := range names {
		if name != features.Columns[i] {
			return &ShapeError{
				Stage:    stage,
				Expected: features.NumFeatures,
				Got:      n,
				Want:     features.Columns[:],
				Have:     names,
			}
		}
	}
	return nil
}

// Age is how old the model is: training time when exported, file
// modification time otherwise.
func (a *Artifacts) Age(now time.Time) time.Duration {
	switch {
	case !a.Model.TrainedAt.IsZero():
		return now.Sub(a.Model.TrainedAt)
	case !a.ModelMTime.IsZero():
		return now.Sub(a.ModelMTime)
	default:
		return 0
	}
}
