// Package models defines the portal records the client works with. All of
// them are owned by the remote system; the client only holds cached copies.
package models

import (
	"strings"
	"time"
)

// Role is the coarse authorization tag attached to a user record.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Normalize maps any stored role value onto the two known roles.
// Anything other than admin (including an absent role) counts as a
// regular user.
func (r Role) Normalize() Role {
	if r == RoleAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// User is a portal account record.
type User struct {
	ID        string    `json:"_id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Gender    string    `json:"gender,omitempty"`
	Role      Role      `json:"role,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// FullName joins the name parts, tolerating either being empty.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
