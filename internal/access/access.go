// Package access models the roles a request principal can hold.
package access

// Group names as stored in the groups table.
const (
	GroupManager      = "Manager"
	GroupDeliveryCrew = "Delivery Crew"
)

// Role is the effective role used when an operation branches by role.
type Role int

const (
	Customer Role = iota
	DeliveryCrew
	Manager
)

func (r Role) String() string {
	switch r {
	case Manager:
		return "manager"
	case DeliveryCrew:
		return "delivery_crew"
	default:
		return "customer"
	}
}

// Principal is the authenticated caller, resolved once per request.
type Principal struct {
	UserID   string
	Username string
	manager  bool
	crew     bool
}

// NewPrincipal builds a principal from the user's group names.
func NewPrincipal(userID, username string, groups []string) Principal {
	p := Principal{UserID: userID, Username: username}
	for _, g := range groups {
		switch g {
		case GroupManager:
			p.manager = true
		case GroupDeliveryCrew:
			p.crew = true
		}
	}
	return p
}

// IsManager reports membership of the Manager group.
func (p Principal) IsManager() bool { return p.manager }

// IsDeliveryCrew reports membership of the Delivery Crew group.
func (p Principal) IsDeliveryCrew() bool { return p.crew }

// IsCustomer is true for authenticated users outside both staff groups.
func (p Principal) IsCustomer() bool { return !p.manager && !p.crew }

// Role picks the effective role. Manager wins over Delivery Crew when a
// user belongs to both groups.
func (p Principal) Role() Role {
	switch {
	case p.manager:
		return Manager
	case p.crew:
		return DeliveryCrew
	default:
		return Customer
	}
}

// Roles lists every role the principal holds.
func (p Principal) Roles() []string {
	var roles []string
	if p.manager {
		roles = append(roles, Manager.String())
	}
	if p.crew {
		roles = append(roles, DeliveryCrew.String())
	}
	if len(roles) == 0 {
		roles = append(roles, Customer.String())
	}
	return roles
}
