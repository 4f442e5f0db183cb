// Package advice maps a user role to the advisory text shown under a
// prediction.
package advice

import "clean-energy-predictor/internal/features"

// Heading precedes the advisory text on the result page.
const Heading = "How This Helps You:"

const (
	householdText = "Lower predicted prices indicate a good time to use energy-intensive appliances. " +
		"Smart scheduling can help you save money and reduce your carbon footprint."
	energyManagerText = "This forecast supports load optimization and can help you decide when to shift usage or store energy. " +
		"It also assists in maximizing the value of integrating renewables."
	policyPlannerText = "Use this insight to design tariff policies, plan subsidies, and build long-term energy strategies. " +
		"Accurate predictions support wider access and infrastructure planning."
)

// Advise returns the fixed advisory string for role. Roles outside the
// declared set yield "", which callers never see because ParseRole rejects
// them before they get here.
func Advise(role features.Role) string {
	switch role {
	case features.Household:
		return householdText
	case features.EnergyManager:
		return energyManagerText
	case features.PolicyPlanner:
		return policyPlannerText
	default:
		return ""
	}
}
