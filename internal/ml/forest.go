package ml

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"gonum.org/v1/gonum/stat"
)

// ModelRandomForest is the only model kind the loader accepts.
const ModelRandomForest = "random_forest"

const leaf = -1

// tree holds one regression tree in scikit-learn's flat array layout.
// Node i is a leaf when left[i] == -1.
type tree struct {
	left      []int
	right     []int
	feature   []int
	threshold []float64
	value     []float64
}

func (t *tree) predict(x []float64) float64 {
	node := 0
	for t.left[node] != leaf {
		if x[t.feature[node]] <= t.threshold[node] {
			node = t.left[node]
		} else {
			node = t.right[node]
		}
	}
	return t.value[node]
}

// Forest is a fitted random-forest regressor. Its output is the mean of
// the per-tree outputs.
type Forest struct {
	Version      string
	TrainedAt    time.Time
	FeatureNames []string

	nFeatures int
	trees     []tree
}

type treeFile struct {
	ChildrenLeft  []int     `json:"children_left"`
	ChildrenRight []int     `json:"children_right"`
	Feature       []int     `json:"feature"`
	Threshold     []float64 `json:"threshold"`
	Value         []float64 `json:"value"`
}

type forestFile struct {
	Kind         string     `json:"kind"`
	Version      string     `json:"version"`
	TrainedAt    time.Time  `json:"trained_at"`
	FeatureNames []string   `json:"feature_names"`
	NFeatures    int        `json:"n_features"`
	Trees        []treeFile `json:"trees"`
}

// LoadForest reads a random-forest export from path.
func LoadForest(path string) (*Forest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ArtifactError{Kind: "model", Path: path, Err: err}
	}

	var f forestFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, &ArtifactError{Kind: "model", Path: path, Err: fmt.Errorf("decode: %w", err)}
	}

	forest, err := newForest(f)
	if err != nil {
		return nil, &ArtifactError{Kind: "model", Path: path, Err: err}
	}
	return forest, nil
}

func newForest(f forestFile) (*Forest, error) {
	if f.Kind != "" && f.Kind != ModelRandomForest {
		return nil, fmt.Errorf("unsupported model kind %q", f.Kind)
	}
	if f.NFeatures <= 0 {
		f.NFeatures = len(f.FeatureNames)
	}
	if f.NFeatures <= 0 {
		return nil, fmt.Errorf("n_features is missing")
	}
	if len(f.FeatureNames) != 0 && len(f.FeatureNames) != f.NFeatures {
		return nil, &ShapeError{Stage: "model", Expected: f.NFeatures, Got: len(f.FeatureNames)}
	}
	if len(f.Trees) == 0 {
		return nil, fmt.Errorf("forest has no trees")
	}

	forest := &Forest{
		Version:      f.Version,
		TrainedAt:    f.TrainedAt,
		FeatureNames: f.FeatureNames,
		nFeatures:    f.NFeatures,
		trees:        make([]tree, 0, len(f.Trees)),
	}
	for i, tf := range f.Trees {
		t, err := newTree(tf, f.NFeatures)
		if err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
		forest.trees = append(forest.trees, t)
	}
	return forest, nil
}

// newTree checks the flat arrays so predict can walk them without bounds
// checks. Children must have a higher index than their parent, which is how
// scikit-learn numbers nodes and guarantees every walk terminates.
func newTree(tf treeFile, nFeatures int) (tree, error) {
	n := len(tf.ChildrenLeft)
	if n == 0 {
		return tree{}, fmt.Errorf("no nodes")
	}
	if len(tf.ChildrenRight) != n || len(tf.Feature) != n || len(tf.Threshold) != n || len(tf.Value) != n {
		return tree{}, fmt.Errorf("node arrays differ in length")
	}

	for i := 0; i < n; i++ {
		l, r := tf.ChildrenLeft[i], tf.ChildrenRight[i]
		if l == leaf {
			if r != leaf {
				return tree{}, fmt.Errorf("node %d has only one child", i)
			}
			continue
		}
		if l <= i || l >= n || r <= i || r >= n {
			return tree{}, fmt.Errorf("node %d has invalid children (%d, %d)", i, l, r)
		}
		if tf.Feature[i] < 0 || tf.Feature[i] >= nFeatures {
			return tree{}, fmt.Errorf("node %d splits on feature %d of %d", i, tf.Feature[i], nFeatures)
		}
	}

	return tree{
		left:      tf.ChildrenLeft,
		right:     tf.ChildrenRight,
		feature:   tf.Feature,
		threshold: tf.Threshold,
		value:     tf.Value,
	}, nil
}

// NumFeatures is the row width the forest was fitted on.
func (f *Forest) NumFeatures() int {
	return f.nFeatures
}

// NumTrees is the ensemble size.
func (f *Forest) NumTrees() int {
	return len(f.trees)
}

// Predict returns one prediction per input row.
func (f *Forest) Predict(rows [][]float64) ([]float64, error) {
	out := make([]float64, len(rows))
	votes := make([]float64, len(f.trees))

	for r, x := range rows {
		if len(x) != f.nFeatures {
			return nil, &ShapeError{Stage: "model", Expected: f.nFeatures, Got: len(x)}
		}
		for i := range f.trees {
			votes[i] = f.trees[i].predict(x)
		}
		out[r] = stat.Mean(votes, nil)
	}
	return out, nil
}
