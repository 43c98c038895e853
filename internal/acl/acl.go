// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package acl holds the role × resource × action permission matrix edited
// in the admin console. The admin row is fixed to all-true and cannot be
// changed. Mutating admin operations consult the matrix before they run.
package acl

import (
	"context"
	"fmt"
	"sync"

	"newsdesk/internal/models"
)

// Resource is a permission-controlled area of the console.
type Resource string

const (
	ResourcePosts    Resource = "posts"
	ResourceUsers    Resource = "users"
	ResourceComments Resource = "comments"
	ResourceSettings Resource = "settings"
)

// Resources lists every resource in display order.
var Resources = []Resource{ResourcePosts, ResourceUsers, ResourceComments, ResourceSettings}

// Action is an operation on a resource.
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Actions lists every action in display order.
var Actions = []Action{ActionCreate, ActionRead, ActionUpdate, ActionDelete}

// Permissions maps role → resource → action → allowed.
type Permissions map[models.Role]map[Resource]map[Action]bool

// Repository persists the matrix. LoadPermissions returns nil when nothing
// has been saved yet.
type Repository interface {
	LoadPermissions(ctx context.Context) (Permissions, error)
	SavePermissions(ctx context.Context, p Permissions) error
}

// Defaults returns the permissions a fresh install starts with.
func Defaults() Permissions {
	row := func(create, read, update, del bool) map[Action]bool {
		return map[Action]bool{
			ActionCreate: create, ActionRead: read, ActionUpdate: update, ActionDelete: del,
		}
	}
	return Permissions{
		models.RoleAdmin: fullAccess(),
		models.RoleCreator: {
			ResourcePosts:    row(true, true, true, false),
			ResourceUsers:    row(false, true, false, false),
			ResourceComments: row(true, true, true, false),
			ResourceSettings: row(false, true, false, false),
		},
		models.RoleReader: {
			ResourcePosts:    row(false, true, false, false),
			ResourceUsers:    row(false, false, false, false),
			ResourceComments: row(true, true, false, false),
			ResourceSettings: row(false, false, false, false),
		},
	}
}

// fullAccess returns an all-true resource map.
func fullAccess() map[Resource]map[Action]bool {
	out := make(map[Resource]map[Action]bool, len(Resources))
	for _, res := range Resources {
		out[res] = make(map[Action]bool, len(Actions))
		for _, act := range Actions {
			out[res][act] = true
		}
	}
	return out
}

// Matrix is the live, goroutine-safe permission matrix.
type Matrix struct {
	mu    sync.RWMutex
	perms Permissions
	repo  Repository
}

// New creates a matrix holding the default permissions. repo may be nil,
// in which case Save and Load only touch memory.
func New(repo Repository) *Matrix {
	return &Matrix{perms: Defaults(), repo: repo}
}

// Load replaces the in-memory matrix with the persisted one, if any.
// Unknown roles, resources and actions in the stored value are ignored and
// the admin row is always reset to all-true.
func (m *Matrix) Load(ctx context.Context) error {
	if m.repo == nil {
		return nil
	}
	stored, err := m.repo.LoadPermissions(ctx)
	if err != nil {
		return fmt.Errorf("acl load: %w", err)
	}
	if stored == nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.perms = Defaults()
	for role, resources := range stored {
		for res, actions := range resources {
			for act, v := range actions {
				m.setLocked(role, res, act, v)
			}
		}
	}
	return nil
}

// Save persists the current matrix.
func (m *Matrix) Save(ctx context.Context) error {
	if m.repo == nil {
		return nil
	}
	if err := m.repo.SavePermissions(ctx, m.Snapshot()); err != nil {
		return fmt.Errorf("acl save: %w", err)
	}
	return nil
}

// Set changes a single permission. It reports false and leaves the matrix
// unchanged when the role is admin or any coordinate is unknown.
func (m *Matrix) Set(role models.Role, res Resource, act Action, value bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.setLocked(role, res, act, value)
}

func (m *Matrix) setLocked(role models.Role, res Resource, act Action, value bool) bool {
	switch role {
	case models.RoleAdmin:
		return false
	case models.RoleCreator, models.RoleReader:
	default:
		return false
	}
	if !knownResource(res) || !knownAction(act) {
		return false
	}
	m.perms[role][res][act] = value
	return true
}

// Apply sets every editable cell from p. Cells missing from p are treated
// as false, matching an HTML form where unchecked boxes are not submitted.
func (m *Matrix) Apply(p Permissions) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, role := range []models.Role{models.RoleCreator, models.RoleReader} {
		for _, res := range Resources {
			for _, act := range Actions {
				m.setLocked(role, res, act, p[role][res][act])
			}
		}
	}
}

// Allowed reports whether role may perform act on res.
func (m *Matrix) Allowed(role models.Role, res Resource, act Action) bool {
	if role == models.RoleAdmin {
		return true
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.perms[role][res][act]
}

// Granted counts the actions role holds on res (the "n/4" overview).
func (m *Matrix) Granted(role models.Role, res Resource) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, act := range Actions {
		if m.perms[role][res][act] {
			n++
		}
	}
	return n
}

// Snapshot returns a deep copy of the matrix.
func (m *Matrix) Snapshot() Permissions {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(Permissions, len(m.perms))
	for role, resources := range m.perms {
		out[role] = make(map[Resource]map[Action]bool, len(resources))
		for res, actions := range resources {
			out[role][res] = make(map[Action]bool, len(actions))
			for act, v := range actions {
				out[role][res][act] = v
			}
		}
	}
	return out
}

func knownResource(res Resource) bool {
	for _, r := range Resources {
		if r == res {
			return true
		}
	}
	return false
}

func knownAction(act Action) bool {
	for _, a := range Actions {
		if a == act {
			return true
		}
	}
	return false
}
