package ml

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNonFinitePrediction is returned when the model yields NaN or ±Inf.
var ErrNonFinitePrediction = errors.New("model produced a non-finite prediction")

// ArtifactError reports a scaler or model file that is missing, unreadable
// or corrupt. It is raised at startup only; a process holding a Predictor
// never sees it.
type ArtifactError struct {
	Kind string // "scaler" or "model"
	Path string
	Err  error
}

func (e *ArtifactError) Error() string {
	return fmt.Sprintf("%s artifact %s: %v", e.Kind, e.Path, e.Err)
}

func (e *ArtifactError) Unwrap() error {
	return e.Err
}

// ShapeError reports a feature table that does not match what an artifact
// was fitted on, either in width or in column names.
type ShapeError struct {
	Stage    string // "scaler" or "model"
	Expected int
	Got      int
	Want     []string
	Have     []string
}

func (e *ShapeError) Error() string {
	if len(e.Want) > 0 || len(e.Have) > 0 {
		return fmt.Sprintf("%s: column mismatch: want [%s], have [%s]",
			e.Stage, strings.Join(e.Want, ", "), strings.Join(e.Have, ", "))
	}
	return fmt.Sprintf("%s: expected %d features, got %d", e.Stage, e.Expected, e.Got)
}

// IsArtifactError reports whether err (or anything it wraps) is an ArtifactError.
func IsArtifactError(err error) bool {
	var ae *ArtifactError
	return errors.As(err, &ae)
}

// IsShapeError reports whether err (or anything it wraps) is a ShapeError.
func IsShapeError(err error) bool {
	var se *ShapeError
	return errors.As(err, &se)
}
