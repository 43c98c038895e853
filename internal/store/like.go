// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"newsdesk/internal/models"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique constraint errors.
const uniqueViolation = "23505"

// LikeStore handles like persistence. The (post_id, user_id) pair is unique.
type LikeStore struct {
	db *sql.DB
}

// NewLikeStore creates a new LikeStore.
func NewLikeStore(db *sql.DB) *LikeStore {
	return &LikeStore{db: db}
}

// List returns every like, newest first.
func (s *LikeStore) List(ctx context.Context) ([]models.Like, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, post_id, user_id, created_at
		FROM likes ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list likes: %w", err)
	}
	defer rows.Close()

	var likes []models.Like
	for rows.Next() {
		var l models.Like
		if err := rows.Scan(&l.ID, &l.PostID, &l.UserID, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan like: %w", err)
		}
		likes = append(likes, l)
	}
	return likes, rows.Err()
}

// Find returns the like of userID on postID. Returns nil if not found.
func (s *LikeStore) Find(ctx context.Context, postID, userID string) (*models.Like, error) {
	l := &models.Like{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, post_id, user_id, created_at
		FROM likes WHERE post_id = $1 AND user_id = $2
	`, postID, userID).Scan(&l.ID, &l.PostID, &l.UserID, &l.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find like: %w", err)
	}
	return l, nil
}

// Create inserts a like. A duplicate (post, user) pair yields
// models.ErrDuplicateLike.
func (s *LikeStore) Create(ctx context.Context, l *models.Like) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO likes (id, post_id, user_id, created_at) VALUES ($1, $2, $3, $4)
	`, l.ID, l.PostID, l.UserID, l.CreatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return models.ErrDuplicateLike
	}
	if err != nil {
		return fmt.Errorf("create like: %w", err)
	}
	return nil
}

// Delete removes a like.
func (s *LikeStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM likes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete like: %w", err)
	}
	return requireRow(res, "delete like")
}
