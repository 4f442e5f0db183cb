package advice

import (
	"strings"
	"testing"

	"clean-energy-predictor/internal/features"

	"github.com/stretchr/testify/assert"
)

func TestAdvise_TotalAndDeterministic(t *testing.T) {
	for _, role := range features.Roles {
		t.Run(role.Key(), func(t *testing.T) {
			first := Advise(role)
			assert.NotEmpty(t, first)
			assert.Equal(t, first, Advise(role))
		})
	}
}

func TestAdvise_PairwiseDistinct(t *testing.T) {
	seen := make(map[string]features.Role)
	for _, role := range features.Roles {
		text := Advise(role)
		if other, dup := seen[text]; dup {
			t.Fatalf("roles %s and %s share advisory text", other, role)
		}
		seen[text] = role
	}
	assert.Len(t, seen, 3)
}

func TestAdvise_Text(t *testing.T) {
	assert.True(t, strings.HasPrefix(Advise(features.Household), "Lower predicted prices indicate"))
	assert.Contains(t, Advise(features.EnergyManager), "integrating renewables.")
	assert.Contains(t, Advise(features.PolicyPlanner), "design tariff policies")
}

func TestAdvise_UnknownRole(t *testing.T) {
	assert.Empty(t, Advise(features.Role(42)))
}
