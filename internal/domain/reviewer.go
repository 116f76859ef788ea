package domain

type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleSupervisor Role = "SUPERVISOR"
	RoleAgent      Role = "AGENT"
	RoleObserver   Role = "OBSERVER"
)

type Availability string

const (
	AvailabilityOnline  Availability = "ONLINE"
	AvailabilityAway    Availability = "AWAY"
	AvailabilityOffline Availability = "OFFLINE"
)

type Reviewer struct {
	ID           string
	Login        string
	Role         Role
	Availability Availability
}

func ValidRole(role Role) bool {
	switch role {
	case RoleAdmin, RoleSupervisor, RoleAgent, RoleObserver:
		return true
	}
	return false
}

func ValidAvailability(availability Availability) bool {
	switch availability {
	case AvailabilityOnline, AvailabilityAway, AvailabilityOffline:
		return true
	}
	return false
}

// EligibleForRotation — only online agents are placed into the rotation queue
func (r *Reviewer) EligibleForRotation() bool {
	return r.Role == RoleAgent && r.Availability == AvailabilityOnline
}
