// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"newsdesk/internal/models"
	"newsdesk/internal/seed"
)

// Seed loads the bootstrap dataset into an empty database. It is a no-op
// once any user exists. passwordHash is stored for every predefined
// identity. Settings and permissions are left unset so their defaults apply.
func Seed(ctx context.Context, db *sql.DB, passwordHash string) error {
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}
	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed begin: %w", err)
	}
	defer tx.Rollback()

	names := make(map[string]string)
	for _, u := range seed.Identities(passwordHash) {
		names[u.ID] = u.DisplayName
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO users (id, email, password_hash, display_name, role, avatar, is_active, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, u.ID, u.Email, u.PasswordHash, u.DisplayName, string(u.Role), u.Avatar, u.IsActive, u.CreatedAt); err != nil {
			return fmt.Errorf("seed user %s: %w", u.Email, err)
		}
	}

	for _, p := range seed.Articles() {
		if err := insertSeedPost(ctx, tx, p, names[p.AuthorID]); err != nil {
			return err
		}
	}

	for _, c := range seed.Comments() {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO comments (id, post_id, user_id, user_name, content, is_approved, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, c.ID, c.PostID, c.UserID, names[c.UserID], c.Content, c.IsApproved, c.CreatedAt); err != nil {
			return fmt.Errorf("seed comment %s: %w", c.ID, err)
		}
	}

	for _, l := range seed.Likes() {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO likes (id, post_id, user_id, created_at) VALUES ($1, $2, $3, $4)
		`, l.ID, l.PostID, l.UserID, l.CreatedAt); err != nil {
			return fmt.Errorf("seed like %s: %w", l.ID, err)
		}
	}

	for _, e := range seed.ActivityLogs() {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO activity_logs (id, user_id, user_name, action, details, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, e.ID, e.UserID, names[e.UserID], string(e.Action), e.Details, e.CreatedAt); err != nil {
			return fmt.Errorf("seed activity log %s: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded with bootstrap data", "users", len(names))
	return nil
}

func insertSeedPost(ctx context.Context, tx *sql.Tx, p models.Article, authorName string) error {
	tags, err := json.Marshal(p.Tags)
	if err != nil {
		return fmt.Errorf("seed post %s tags: %w", p.ID, err)
	}
	if p.MediaURLs == nil {
		p.MediaURLs = []string{}
	}
	media, err := json.Marshal(p.MediaURLs)
	if err != nil {
		return fmt.Errorf("seed post %s media: %w", p.ID, err)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO posts (id, title, content, excerpt, district, tags, author_id,
		                   author_name, media_urls, is_published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, p.ID, p.Title, p.Content, p.Excerpt, p.District, string(tags), p.AuthorID,
		authorName, string(media), p.IsPublished, p.CreatedAt, p.UpdatedAt); err != nil {
		return fmt.Errorf("seed post %s: %w", p.ID, err)
	}
	return nil
}
