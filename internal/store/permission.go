// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"newsdesk/internal/acl"
	"newsdesk/internal/models"
)

// PermissionStore persists the permission matrix one cell per row.
type PermissionStore struct {
	db *sql.DB
}

// NewPermissionStore creates a new PermissionStore.
func NewPermissionStore(db *sql.DB) *PermissionStore {
	return &PermissionStore{db: db}
}

// LoadPermissions returns the saved matrix, or nil if nothing was saved.
func (s *PermissionStore) LoadPermissions(ctx context.Context) (acl.Permissions, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT role, resource, action, allowed FROM permissions`)
	if err != nil {
		return nil, fmt.Errorf("load permissions: %w", err)
	}
	defer rows.Close()

	var perms acl.Permissions
	for rows.Next() {
		var (
			role    models.Role
			res     acl.Resource
			act     acl.Action
			allowed bool
		)
		if err := rows.Scan(&role, &res, &act, &allowed); err != nil {
			return nil, fmt.Errorf("scan permission: %w", err)
		}
		if perms == nil {
			perms = make(acl.Permissions)
		}
		if perms[role] == nil {
			perms[role] = make(map[acl.Resource]map[acl.Action]bool)
		}
		if perms[role][res] == nil {
			perms[role][res] = make(map[acl.Action]bool)
		}
		perms[role][res][act] = allowed
	}
	return perms, rows.Err()
}

// SavePermissions replaces the stored matrix in a single transaction.
func (s *PermissionStore) SavePermissions(ctx context.Context, p acl.Permissions) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save permissions: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM permissions`); err != nil {
		return fmt.Errorf("clear permissions: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO permissions (role, resource, action, allowed) VALUES ($1, $2, $3, $4)`)
	if err != nil {
		return fmt.Errorf("save permissions: %w", err)
	}
	defer stmt.Close()

	for role, resources := range p {
		for res, actions := range resources {
			for act, allowed := range actions {
				if _, err := stmt.ExecContext(ctx, string(role), string(res), string(act), allowed); err != nil {
					return fmt.Errorf("save permission %s/%s/%s: %w", role, res, act, err)
				}
			}
		}
	}

	return tx.Commit()
}
