// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"newsdesk/internal/models"
)

// ActivityLogStore is the append-only audit log.
type ActivityLogStore struct {
	db *sql.DB
}

// NewActivityLogStore creates a new ActivityLogStore.
func NewActivityLogStore(db *sql.DB) *ActivityLogStore {
	return &ActivityLogStore{db: db}
}

// Append records an entry. The actor's display name is stored alongside
// the id so the entry stays readable after the user is removed.
func (s *ActivityLogStore) Append(ctx context.Context, e *models.ActivityLog) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO activity_logs (id, user_id, user_name, action, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, e.ID, e.UserID, e.User.DisplayName, string(e.Action), e.Details, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("append activity log: %w", err)
	}
	return nil
}

// List returns every entry, newest first.
func (s *ActivityLogStore) List(ctx context.Context) ([]models.ActivityLog, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT l.id, l.user_id, COALESCE(u.display_name, l.user_name),
		       COALESCE(u.email, ''), COALESCE(u.role, 'reader'),
		       l.action, l.details, l.created_at
		FROM activity_logs l
		LEFT JOIN users u ON u.id = l.user_id
		ORDER BY l.created_at DESC, l.id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list activity logs: %w", err)
	}
	defer rows.Close()

	var logs []models.ActivityLog
	for rows.Next() {
		var e models.ActivityLog
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.User.DisplayName, &e.User.Email, &e.User.Role,
			&e.Action, &e.Details, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan activity log: %w", err)
		}
		e.User.ID = e.UserID
		logs = append(logs, e)
	}
	return logs, rows.Err()
}
