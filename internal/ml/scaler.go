package ml

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"gonum.org/v1/gonum/floats"
)

// Supported scaler kinds. They mirror scikit-learn's StandardScaler and
// MinMaxScaler after export to JSON.
const (
	ScalerStandard = "standard"
	ScalerMinMax   = "minmax"
)

// Scaler is a fitted, read-only feature transform.
type Scaler struct {
	Kind         string
	FeatureNames []string

	mean  []float64 // standard
	scale []float64 // both kinds
	min   []float64 // minmax
}

type scalerFile struct {
	Kind         string    `json:"kind"`
	FeatureNames []string  `json:"feature_names"`
	Mean         []float64 `json:"mean"`
	Scale        []float64 `json:"scale"`
	Min          []float64 `json:"min"`
}

// LoadScaler reads a scaler export from path.
func LoadScaler(path string) (*Scaler, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ArtifactError{Kind: "scaler", Path: path, Err: err}
	}

	var f scalerFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, &ArtifactError{Kind: "scaler", Path: path, Err: fmt.Errorf("decode: %w", err)}
	}

	s, err := newScaler(f)
	if err != nil {
		return nil, &ArtifactError{Kind: "scaler", Path: path, Err: err}
	}
	return s, nil
}

func newScaler(f scalerFile) (*Scaler, error) {
	if f.Kind == "" {
		f.Kind = ScalerStandard
	}

	n := len(f.Scale)
	if n == 0 {
		return nil, fmt.Errorf("scale is empty")
	}
	if err := checkFinite("scale", f.Scale); err != nil {
		return nil, err
	}

	s := &Scaler{Kind: f.Kind, FeatureNames: f.FeatureNames, scale: f.Scale}

	switch f.Kind {
	case ScalerStandard:
		if len(f.Mean) != n {
			return nil, fmt.Errorf("mean has %d entries, scale has %d", len(f.Mean), n)
		}
		if err := checkFinite("mean", f.Mean); err != nil {
			return nil, err
		}
		for i, v := range f.Scale {
			if v == 0 {
				return nil, fmt.Errorf("scale[%d] is zero", i)
			}
		}
		s.mean = f.Mean
	case ScalerMinMax:
		if len(f.Min) != n {
			return nil, fmt.Errorf("min has %d entries, scale has %d", len(f.Min), n)
		}
		if err := checkFinite("min", f.Min); err != nil {
			return nil, err
		}
		s.min = f.Min
	default:
		return nil, fmt.Errorf("unsupported scaler kind %q", f.Kind)
	}

	if len(f.FeatureNames) != 0 && len(f.FeatureNames) != n {
		return nil, &ShapeError{Stage: "scaler", Expected: n, Got: len(f.FeatureNames)}
	}
	return s, nil
}

// NumFeatures is the row width the scaler was fitted on.
func (s *Scaler) NumFeatures() int {
	return len(s.scale)
}

// Transform scales one row. The input slice is not modified.
func (s *Scaler) Transform(row []float64) ([]float64, error) {
	if len(row) != len(s.scale) {
		return nil, &ShapeError{Stage: "scaler", Expected: len(s.scale), Got: len(row)}
	}

	out := make([]float64, len(row))
	copy(out, row)

	switch s.Kind {
	case ScalerMinMax:
		floats.Mul(out, s.scale)
		floats.Add(out, s.min)
	default:
		floats.Sub(out, s.mean)
		floats.Div(out, s.scale)
	}
	return out, nil
}

func checkFinite(name string, vs []float64) error {
	for i, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s[%d] is not finite", name, i)
		}
	}
	return nil
}
