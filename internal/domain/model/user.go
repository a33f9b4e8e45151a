package model

import "time"

// Role grants access to privileged operations. Roles are totally ordered.
type Role string

const (
	RoleClient Role = "Client"
	RoleStaff  Role = "Staff"
	RoleAdmin  Role = "Admin"
)

func (r Role) rank() int {
	switch r {
	case RoleClient:
		return 1
	case RoleStaff:
		return 2
	case RoleAdmin:
		return 3
	default:
		return 0
	}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool { return r.rank() > 0 }

// AtLeast reports whether r grants every privilege of required.
func (r Role) AtLeast(required Role) bool {
	return r.Valid() && r.rank() >= required.rank()
}

// User is a storefront customer identified by an external Discord account.
type User struct {
	ID            int64
	DiscordID     string
	Username      string
	Discriminator string
	Avatar        string
	Email         string
	Credits       float64
	ReferralCode  string
	ReferredBy    *int64
	Role          Role
	LastLogin     time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ExternalIdentity is the profile returned by the identity provider.
type ExternalIdentity struct {
	ID            string
	Username      string
	Discriminator string
	Avatar        string
	Email         string
}
