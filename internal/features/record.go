// Package features defines the input record fed to the price model.
// The column order declared here is the order the scaler and the random
// forest were fitted on; every table handed to the artifacts is built by
// FeatureRecord.Row so the order lives in exactly one place.
package features

import (
	"fmt"

	"github.com/creasty/defaults"
)

// Column names as they appeared in the training frame.
const (
	ColUnmet           = "Unmet(kWh)"
	ColLoad            = "Load (kWh)"
	ColHour            = "Hour"
	ColNaturalGasPrice = "Natural Gas Price ($/M Btu)"
)

// Columns is the fixed training column order.
var Columns = [NumFeatures]string{ColUnmet, ColLoad, ColHour, ColNaturalGasPrice}

// NumFeatures is the width of a model input row.
const NumFeatures = 4

const (
	MinHour = 0
	MaxHour = 23
)

// FeatureRecord is one model input. Field order matches Columns.
type FeatureRecord struct {
	UnmetKWh        float64 `json:"unmet_kwh" yaml:"unmet_kwh" default:"2698.0" validate:"gte=0"`
	LoadKWh         float64 `json:"load_kwh" yaml:"load_kwh" default:"2698.0" validate:"gte=0"`
	Hour            int     `json:"hour" yaml:"hour" default:"0" validate:"gte=0,lte=23"`
	NaturalGasPrice float64 `json:"natural_gas_price" yaml:"natural_gas_price" default:"2.97" validate:"gte=0"`
}

// Default returns the record the form shows before any interaction.
func Default() FeatureRecord {
	var r FeatureRecord
	if err := defaults.Set(&r); err != nil {
		// struct tags are static, so this only fires on a programming error
		panic(fmt.Sprintf("features: invalid default tags: %v", err))
	}
	return r
}

// Row assembles the single-row table in training column order.
func (r FeatureRecord) Row() []float64 {
	return []float64{r.UnmetKWh, r.LoadKWh, float64(r.Hour), r.NaturalGasPrice}
}

// Clamp forces the record into the ranges the input widgets enforce:
// negative energy and price values become 0, hour is pinned to [0,23].
func (r FeatureRecord) Clamp() FeatureRecord {
	r.UnmetKWh = nonNegative(r.UnmetKWh)
	r.LoadKWh = nonNegative(r.LoadKWh)
	r.NaturalGasPrice = nonNegative(r.NaturalGasPrice)
	if r.Hour < MinHour {
		r.Hour = MinHour
	}
	if r.Hour > MaxHour {
		r.Hour = MaxHour
	}
	return r
}

// Valid reports whether the record is already inside the widget bounds.
func (r FeatureRecord) Valid() bool {
	return r == r.Clamp()
}

func (r FeatureRecord) String() string {
	return fmt.Sprintf("%s=%.4f %s=%.4f %s=%d %s=%.4f",
		ColUnmet, r.UnmetKWh, ColLoad, r.LoadKWh, ColHour, r.Hour, ColNaturalGasPrice, r.NaturalGasPrice)
}

func nonNegative(v float64) float64 {
	// NaN compares false against everything; treat it as the lower bound too
	if v < 0 || v != v {
		return 0
	}
	return v
}
