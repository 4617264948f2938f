package auth

import "littlelemon/internal/domain" // Importing domain models

// Role is the closed set of requester roles. A user holds at most one of
// the Manager / Delivery Crew groups; holding neither makes them a Customer.
type Role int

const (
	RoleCustomer     Role = iota // No group memberships
	RoleDeliveryCrew             // "Delivery Crew" group member
	RoleManager                  // "Manager" group member
)

// String returns the human-readable role name
func (r Role) String() string {
	switch r {
	case RoleManager:
		return "Manager"
	case RoleDeliveryCrew:
		return "Delivery Crew"
	default:
		return "Customer"
	}
}

// RoleOf resolves a user's role from their loaded group memberships.
// Manager wins over Delivery Crew if a user somehow holds both.
func RoleOf(user *domain.User) Role {
	if user.InGroup(domain.GroupManager) {
		return RoleManager
	}
	if user.InGroup(domain.GroupDeliveryCrew) {
		return RoleDeliveryCrew
	}
	return RoleCustomer
}
