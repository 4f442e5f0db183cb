package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"clean-energy-predictor/internal/features"
	"clean-energy-predictor/internal/ml"
)

// Synthetic artifacts in the same JSON layout the training notebook
// exports, for running the server without a trained model.

type scalerExport struct {
	Kind         string    `json:"kind"`
	FeatureNames []string  `json:"feature_names"`
	Mean         []float64 `json:"mean"`
	Scale        []float64 `json:"scale"`
}

type treeExport struct {
	ChildrenLeft  []int     `json:"children_left"`
	ChildrenRight []int     `json:"children_right"`
	Feature       []int     `json:"feature"`
	Threshold     []float64 `json:"threshold"`
	Value         []float64 `json:"value"`
}

type forestExport struct {
	Kind         string       `json:"kind"`
	Version      string       `json:"version"`
	TrainedAt    time.Time    `json:"trained_at"`
	FeatureNames []string     `json:"feature_names"`
	NFeatures    int          `json:"n_features"`
	Trees        []treeExport `json:"trees"`
}

func main() {
	var (
		outDir = flag.String("out", ".", "Directory to write scaler.json and random_forest_model.json")
		trees  = flag.Int("trees", 25, "Number of trees")
		depth  = flag.Int("depth", 5, "Depth of each tree")
		seed   = flag.Int64("seed", 7, "Random seed")
	)
	flag.Parse()

	if *trees < 1 || *depth < 1 {
		log.Fatalf("trees and depth must be positive")
	}

	rng := rand.New(rand.NewSource(*seed))
	names := features.Columns[:]

	fmt.Printf("Generating sample artifacts...\n")
	fmt.Printf("  Trees: %d\n", *trees)
	fmt.Printf("  Depth: %d\n", *depth)
	fmt.Printf("  Output: %s\n", *outDir)

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	// Rough training-set statistics for the four columns
	scaler := scalerExport{
		Kind:         ml.ScalerStandard,
		FeatureNames: names,
		Mean:         []float64{2698.0, 2698.0, 11.5, 2.97},
		Scale:        []float64{1500.0, 1200.0, 6.92, 0.85},
	}

	forest := forestExport{
		Kind:         ml.ModelRandomForest,
		Version:      fmt.Sprintf("sample-%d", *seed),
		TrainedAt:    time.Now().UTC().Truncate(time.Second),
		FeatureNames: names,
		NFeatures:    features.NumFeatures,
	}
	for i := 0; i < *trees; i++ {
		forest.Trees = append(forest.Trees, randomTree(rng, *depth))
	}

	scalerPath := filepath.Join(*outDir, "scaler.json")
	modelPath := filepath.Join(*outDir, "random_forest_model.json")

	if err := writeJSON(scalerPath, scaler); err != nil {
		log.Fatalf("Failed to write scaler: %v", err)
	}
	if err := writeJSON(modelPath, forest); err != nil {
		log.Fatalf("Failed to write model: %v", err)
	}

	// Round-trip through the real loader so a bad export fails here
	p, err := ml.New(scalerPath, modelPath)
	if err != nil {
		log.Fatalf("Generated artifacts do not load: %v", err)
	}
	price, err := p.Predict(features.Default())
	if err != nil {
		log.Fatalf("Sample prediction failed: %v", err)
	}

	fmt.Printf("✓ Wrote %s and %s\n", scalerPath, modelPath)
	fmt.Printf("  Default record predicts $%.4f per kWh\n", price)
}

// randomTree grows a full binary tree in pre-order, so every child index
// is greater than its parent's.
func randomTree(rng *rand.Rand, depth int) treeExport {
	var t treeExport

	var grow func(level int) int
	grow = func(level int) int {
		idx := len(t.Value)
		t.ChildrenLeft = append(t.ChildrenLeft, -1)
		t.ChildrenRight = append(t.ChildrenRight, -1)
		t.Feature = append(t.Feature, -2)
		t.Threshold = append(t.Threshold, -2)
		t.Value = append(t.Value, 0)

		if level == depth {
			// prices cluster around 5 to 15 cents per kWh
			t.Value[idx] = 0.05 + rng.Float64()*0.10
			return idx
		}

		t.Feature[idx] = rng.Intn(features.NumFeatures)
		t.Threshold[idx] = rng.NormFloat64()

		left := grow(level + 1)
		right := grow(level + 1)
		t.ChildrenLeft[idx] = left
		t.ChildrenRight[idx] = right
		t.Value[idx] = (t.Value[left] + t.Value[right]) / 2
		return idx
	}

	grow(0)
	return t
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
