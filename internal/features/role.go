package features

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Role is the user category chosen in the form. It only selects advisory
// text and never reaches the model.
type Role uint8

const (
	Household Role = iota
	EnergyManager
	PolicyPlanner
)

// Roles lists every role in dropdown order. The first entry is the default.
var Roles = []Role{Household, EnergyManager, PolicyPlanner}

var roleKeys = map[Role]string{
	Household:     "household",
	EnergyManager: "energy_manager",
	PolicyPlanner: "policy_planner",
}

var roleLabels = map[Role]string{
	Household:     "Household User",
	EnergyManager: "Energy Manager",
	PolicyPlanner: "Policy Planner",
}

// DefaultRole is preselected in the dropdown.
const DefaultRole = Household

// Valid reports whether r is one of the three declared roles.
func (r Role) Valid() bool {
	_, ok := roleKeys[r]
	return ok
}

// Key is the stable machine identifier used in forms and JSON.
func (r Role) Key() string {
	if k, ok := roleKeys[r]; ok {
		return k
	}
	return fmt.Sprintf("role(%d)", uint8(r))
}

// String returns the dropdown label.
func (r Role) String() string {
	if l, ok := roleLabels[r]; ok {
		return l
	}
	return r.Key()
}

// ParseRole accepts either the key ("energy_manager") or the label
// ("Energy Manager"), case-insensitively.
func ParseRole(s string) (Role, error) {
	needle := strings.TrimSpace(s)
	for _, r := range Roles {
		if strings.EqualFold(needle, roleKeys[r]) || strings.EqualFold(needle, roleLabels[r]) {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown role %q", s)
}

func (r Role) MarshalJSON() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("unknown role %d", uint8(r))
	}
	return json.Marshal(r.Key())
}

func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("role must be a string: %w", err)
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
