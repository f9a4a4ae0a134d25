package entity

// Role represents the type of role a user can have in the storefront.
type Role string

const (
	// RoleCustomer is assigned to every self-registered account.
	RoleCustomer Role = "customer"
	// RoleAdmin manages catalog, coupons and orders.
	RoleAdmin Role = "admin"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleAdmin:
		return true
	default:
		return false
	}
}
