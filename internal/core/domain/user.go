package domain

import "time"

// Role is the account level of a planner user.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
	RoleGuest Role = "GUEST"
)

// Permissions are the per-account feature flags an admin can toggle.
type Permissions struct {
	AllowCustomAPIKey bool `json:"allow_custom_api_key" bson:"allow_custom_api_key"`
	CloudStorage      bool `json:"cloud_storage" bson:"cloud_storage"`
}

// User models an authenticated actor in the system.
type User struct {
	ID           string      `json:"id" bson:"_id"`
	Email        string      `json:"email,omitempty" bson:"email,omitempty"`
	DisplayName  string      `json:"display_name" bson:"display_name"`
	PasswordHash string      `json:"-" bson:"password_hash,omitempty"`
	Role         Role        `json:"role" bson:"role"`
	Activated    bool        `json:"activated" bson:"activated"`
	Permissions  Permissions `json:"permissions" bson:"permissions"`
	WeddingDate  string      `json:"wedding_date,omitempty" bson:"wedding_date,omitempty"`
	CreatedAt    time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at" bson:"updated_at"`
}

// CloudEnabled reports whether the user's planner data may be pushed to the
// remote store.
func (u *User) CloudEnabled() bool {
	return u != nil && u.Role != RoleGuest && u.Permissions.CloudStorage
}

// Unlimited reports whether usage counters are ignored for this user.
func (u *User) Unlimited() bool {
	if u == nil {
		return false
	}
	return u.Role == RoleAdmin || (u.Role == RoleUser && u.Activated)
}
