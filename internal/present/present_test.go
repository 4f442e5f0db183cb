package present

import (
	"testing"
	"time"

	"clean-energy-predictor/internal/advice"
	"clean-energy-predictor/internal/features"

	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		name  string
		price float64
		want  string
	}{
		{"four decimals", 1234.56789, "$1234.5679"},
		{"exact tie rounds to even", 0.03125, "$0.0312"},
		{"exact tie rounds up to even", 0.09375, "$0.0938"},
		{"zero padded", 0.1, "$0.1000"},
		{"negative passes through", -0.5, "$-0.5000"},
		{"zero", 0, "$0.0000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPrice(tt.price))
		})
	}
}

func TestSuccessMessage(t *testing.T) {
	assert.Equal(t, "Predicted Purchasing Price: $0.0900 per kWh", SuccessMessage(0.09))
}

func TestRender(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	rec := features.Default()

	res := Render(0.0812345, features.EnergyManager, rec, at)

	assert.Equal(t, 0.0812345, res.Price)
	assert.Equal(t, "$0.0812", res.FormattedPrice)
	assert.Equal(t, "Predicted Purchasing Price: $0.0812 per kWh", res.Message)
	assert.Equal(t, features.EnergyManager, res.Role)
	assert.Equal(t, "Energy Manager", res.RoleLabel)
	assert.Equal(t, advice.Advise(features.EnergyManager), res.Advice)
	assert.Equal(t, rec, res.Features)
	assert.Equal(t, at, res.Timestamp)

	text := res.Text()
	assert.Contains(t, text, res.Message)
	assert.Contains(t, text, advice.Heading)
	assert.Contains(t, text, res.Advice)
}
