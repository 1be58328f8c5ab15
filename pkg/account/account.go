package account

import "context"

// Role identifies the capacity in which an account participates in a booking.
type Role string

const (
	// RoleRequester is the customer side of a booking.
	RoleRequester Role = "REQUESTER"
	// RoleProvider is the service-provider side of a booking.
	RoleProvider Role = "PROVIDER"
)

// Valid reports whether the role is one of the known account roles.
func (r Role) Valid() bool {
	return r == RoleRequester || r == RoleProvider
}

// Account is the projection of an externally-owned account that this module
// needs: identity, capacity, and a name for notification messages.
type Account struct {
	ID          string `json:"id"`
	Role        Role   `json:"role"`
	DisplayName string `json:"display_name"`
}

// Resolver looks up accounts owned by the external account system.
type Resolver interface {
	// Resolve returns the account for the given id, or ErrAccountNotFound.
	Resolve(ctx context.Context, id string) (*Account, error)
}
