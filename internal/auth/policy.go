package auth

import "net/http" // HTTP method names

// Resource is a protected resource kind
type Resource int

const (
	ResourceMenu   Resource = iota // Menu categories and items
	ResourceGroups                 // Group records and role rosters
	ResourceCart                   // A customer's cart lines
	ResourceOrders                 // Orders and their items
)

// Action is the operation class requested against a resource
type Action int

const (
	ActionRead   Action = iota // GET
	ActionCreate               // POST
	ActionUpdate               // PUT / PATCH
	ActionDelete               // DELETE
)

// ActionForMethod maps an HTTP method to its action class
func ActionForMethod(method string) Action {
	switch method {
	case http.MethodPost:
		return ActionCreate
	case http.MethodPut, http.MethodPatch:
		return ActionUpdate
	case http.MethodDelete:
		return ActionDelete
	default:
		return ActionRead
	}
}

// roleMask is a bit set of roles
type roleMask uint8

const (
	maskCustomer     roleMask = 1 << iota // Customer bit
	maskDeliveryCrew                      // Delivery Crew bit
	maskManager                           // Manager bit

	maskStaff  = maskManager | maskDeliveryCrew              // Manager or Delivery Crew
	maskAnyone = maskCustomer | maskDeliveryCrew | maskManager // Any authenticated role
)

// bit returns the mask bit for a role
func (r Role) bit() roleMask {
	switch r {
	case RoleManager:
		return maskManager
	case RoleDeliveryCrew:
		return maskDeliveryCrew
	default:
		return maskCustomer
	}
}

// policy is the single declarative permission table. Unauthenticated menu
// reads never reach this table (those routes carry no auth middleware);
// everything here is evaluated against an authenticated requester's role.
// Order reads are allowed for every role and then narrowed per-row by the
// lifecycle handlers (own orders / assigned orders / all orders).
var policy = map[Resource]map[Action]roleMask{
	ResourceMenu: {
		ActionRead:   maskAnyone,
		ActionCreate: maskManager,
		ActionUpdate: maskManager,
		ActionDelete: maskManager,
	},
	ResourceGroups: {
		ActionRead:   maskManager,
		ActionCreate: maskManager,
		ActionUpdate: maskManager,
		ActionDelete: maskManager,
	},
	ResourceCart: {
		ActionRead:   maskCustomer,
		ActionCreate: maskCustomer,
		ActionUpdate: maskCustomer,
		ActionDelete: maskCustomer,
	},
	ResourceOrders: {
		ActionRead:   maskAnyone,
		ActionCreate: maskCustomer,
		ActionUpdate: maskStaff,
		ActionDelete: maskManager,
	},
}

// Allow decides whether a role may perform an action on a resource
func Allow(role Role, resource Resource, action Action) bool {
	actions, ok := policy[resource]
	if !ok {
		return false // Unknown resources are denied
	}
	return actions[action]&role.bit() != 0
}

// DenyMessage is the error body text returned on an authorization denial,
// kept byte-compatible with the pre-existing API clients.
func DenyMessage(resource Resource, action Action) string {
	switch resource {
	case ResourceCart:
		return "You do not have permission to perform this action."
	case ResourceOrders:
		switch action {
		case ActionCreate:
			return "Not a customer"
		case ActionUpdate:
			return "Only staff can update orders"
		case ActionDelete:
			return "Only managers can delete orders"
		}
	}
	return "Manager access required"
}
