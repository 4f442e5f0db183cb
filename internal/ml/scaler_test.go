package ml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScaler_Fixture(t *testing.T) {
	s, err := LoadScaler(fixtureScaler)
	require.NoError(t, err)

	assert.Equal(t, ScalerStandard, s.Kind)
	assert.Equal(t, 4, s.NumFeatures())
	assert.Len(t, s.FeatureNames, 4)
}

func TestScaler_TransformStandard(t *testing.T) {
	s, err := LoadScaler(fixtureScaler)
	require.NoError(t, err)

	row := []float64{1500, 2500, 11.5, 4.0}
	out, err := s.Transform(row)
	require.NoError(t, err)

	assert.InDeltaSlice(t, []float64{1, 0.5, 0, 1}, out, 1e-12)
	assert.Equal(t, []float64{1500, 2500, 11.5, 4.0}, row, "input row must not be modified")
}

func TestScaler_TransformMinMax(t *testing.T) {
	path := writeFile(t, "scaler.json", `{
		"kind": "minmax",
		"scale": [0.001, 0.001, 0.0434782608695652, 0.1],
		"min": [0, -0.5, 0, 0]
	}`)

	s, err := LoadScaler(path)
	require.NoError(t, err)

	out, err := s.Transform([]float64{1000, 1000, 23, 5})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 0.5, 1, 0.5}, out, 1e-9)
}

func TestScaler_TransformWrongWidth(t *testing.T) {
	s, err := LoadScaler(fixtureScaler)
	require.NoError(t, err)

	_, err = s.Transform([]float64{1, 2, 3})
	require.Error(t, err)

	var se *ShapeError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 4, se.Expected)
	assert.Equal(t, 3, se.Got)
}

func TestLoadScaler_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", `scaler`},
		{"empty scale", `{"kind":"standard","mean":[],"scale":[]}`},
		{"mean length mismatch", `{"kind":"standard","mean":[1,2],"scale":[1,2,3]}`},
		{"zero scale", `{"kind":"standard","mean":[0,0],"scale":[1,0]}`},
		{"minmax without min", `{"kind":"minmax","scale":[1,1]}`},
		{"unknown kind", `{"kind":"robust","scale":[1]}`},
		{"feature names mismatch", `{"kind":"standard","feature_names":["a"],"mean":[0,0],"scale":[1,1]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "scaler.json", tt.content)
			_, err := LoadScaler(path)
			require.Error(t, err)
			assert.True(t, IsArtifactError(err), "expected ArtifactError, got %T", err)
		})
	}
}

func TestLoadScaler_Missing(t *testing.T) {
	_, err := LoadScaler("testdata/does-not-exist.json")
	require.Error(t, err)

	var ae *ArtifactError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "scaler", ae.Kind)
	assert.Equal(t, "testdata/does-not-exist.json", ae.Path)
}
