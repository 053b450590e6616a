package types

import "github.com/m-mizutani/goerr/v2"

// Role identifies which party of a case a viewer acts as. RoleNone is the
// sentinel for statuses where no party holds the next move.
type Role string

const (
	RoleReporter   Role = "reporter"
	RoleRespondent Role = "respondent"
	RoleHR         Role = "hr"
	RoleCompliance Role = "compliance"
	RoleCoach      Role = "coach"
	RoleNone       Role = "none"
)

// AllRoles returns all roles that can view a case. RoleNone is excluded; it
// is a routing result, not a viewer identity.
func AllRoles() []Role {
	return []Role{
		RoleReporter,
		RoleRespondent,
		RoleHR,
		RoleCompliance,
		RoleCoach,
	}
}

// IsValid checks if the role is a viewer role
func (r Role) IsValid() bool {
	switch r {
	case RoleReporter, RoleRespondent, RoleHR, RoleCompliance, RoleCoach:
		return true
	default:
		return false
	}
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// ParseRole parses a string into a viewer Role
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", goerr.New("invalid role", goerr.V("input", s))
	}
	return r, nil
}
