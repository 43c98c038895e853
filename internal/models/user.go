// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the data structures shared by the storage
// backends, the newsroom service and the HTTP handlers.
package models

import (
	"fmt"
	"time"
)

// Role represents a user's permission level in the system.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCreator Role = "creator"
	RoleReader  Role = "reader"
)

// Roles lists every role in display order.
var Roles = []Role{RoleAdmin, RoleCreator, RoleReader}

// ParseRole converts a stored or submitted string into a Role.
// Matching is exact; unknown values are rejected.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleCreator, RoleReader:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// Identity is a registered or predefined user record. The JSON shape is
// the one persisted in the session record.
type Identity struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"name"`
	Role         Role      `json:"role"`
	Avatar       string    `json:"avatar,omitempty"`
	PasswordHash string    `json:"-"` // Never serialize the hash
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

// IsAdmin returns true if the identity has the admin role.
func (u *Identity) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanManage returns true for roles that work in the admin console.
func (u *Identity) CanManage() bool {
	switch u.Role {
	case RoleAdmin, RoleCreator:
		return true
	case RoleReader:
		return false
	}
	return false
}

// Initial returns the first letter of the display name for avatar
// placeholders.
func (u *Identity) Initial() string {
	for _, r := range u.DisplayName {
		return string(r)
	}
	return "?"
}
