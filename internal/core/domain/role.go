package domain

import "time"

// Role determines which route tree and feature set a session can access.
// Assigned at account creation, read-only afterwards.
type Role string

const (
	RoleGeneralUser Role = "general_user"
	RolePartner     Role = "partner"
	RoleDealer      Role = "dealer"
	RoleAdmin       Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleGeneralUser, RolePartner, RoleDealer, RoleAdmin:
		return true
	}
	return false
}

// UserStatus tracks the account lifecycle around OTP verification.
type UserStatus string

const (
	UserPendingOTP UserStatus = "pending_otp"
	UserActive     UserStatus = "active"
)

// User models an account in the directory: a general user, an independent
// partner (architect/engineer/contractor), a material dealer, or an admin.
type User struct {
	ID           string     `json:"id" bson:"_id,omitempty"`
	Username     string     `json:"username" bson:"username"`
	Email        string     `json:"email,omitempty" bson:"email,omitempty"`
	Phone        string     `json:"phone,omitempty" bson:"phone,omitempty"`
	PasswordHash string     `json:"-" bson:"password_hash"`
	Role         Role       `json:"role" bson:"role"`
	Status       UserStatus `json:"status" bson:"status"`
	// DealerID scopes dealer accounts to their own records. Empty for
	// general users and admins.
	DealerID  string    `json:"dealer_id,omitempty" bson:"dealer_id,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
