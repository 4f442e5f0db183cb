// Package present turns a predicted price and advisory text into the
// strings shown to the user.
package present

import (
	"fmt"
	"time"

	"clean-energy-predictor/internal/advice"
	"clean-energy-predictor/internal/features"
)

// FormatPrice renders a price with exactly four decimals, e.g. "$0.0901".
// Rounding is Go's %.4f: correctly rounded, exact ties go to even.
func FormatPrice(price float64) string {
	return fmt.Sprintf("$%.4f", price)
}

// SuccessMessage is the line shown once a prediction completes.
func SuccessMessage(price float64) string {
	return fmt.Sprintf("Predicted Purchasing Price: %s per kWh", FormatPrice(price))
}

// Result is a rendered prediction. It is what the page, the JSON API, the
// live feed and the history store all carry.
type Result struct {
	ID             string                 `json:"id,omitempty"`
	Price          float64                `json:"price"`
	FormattedPrice string                 `json:"formatted_price"`
	Message        string                 `json:"message"`
	Role           features.Role          `json:"role"`
	RoleLabel      string                 `json:"role_label"`
	AdviceHeading  string                 `json:"advice_heading"`
	Advice         string                 `json:"advice"`
	Features       features.FeatureRecord `json:"features"`
	Timestamp      time.Time              `json:"timestamp"`
}

// Render assembles a Result for price and role.
func Render(price float64, role features.Role, rec features.FeatureRecord, at time.Time) Result {
	return Result{
		Price:          price,
		FormattedPrice: FormatPrice(price),
		Message:        SuccessMessage(price),
		Role:           role,
		RoleLabel:      role.String(),
		AdviceHeading:  advice.Heading,
		Advice:         advice.Advise(role),
		Features:       rec,
		Timestamp:      at,
	}
}

// Text is the plain-text rendering used by the CLI.
func (r Result) Text() string {
	return fmt.Sprintf("%s\n\n%s\n%s\n", r.Message, r.AdviceHeading, r.Advice)
}
