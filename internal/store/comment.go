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

// CommentStore handles comment persistence.
type CommentStore struct {
	db *sql.DB
}

// NewCommentStore creates a new CommentStore.
func NewCommentStore(db *sql.DB) *CommentStore {
	return &CommentStore{db: db}
}

const commentSelect = `
	SELECT c.id, c.post_id, c.user_id, COALESCE(u.display_name, c.user_name),
	       COALESCE(u.email, ''), COALESCE(u.role, 'reader'), COALESCE(u.avatar, ''),
	       c.content, c.is_approved, c.created_at
	FROM comments c
	LEFT JOIN users u ON u.id = c.user_id`

func (s *CommentStore) query(ctx context.Context, q string, args ...any) ([]models.Comment, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(
			&c.ID, &c.PostID, &c.UserID, &c.User.DisplayName,
			&c.User.Email, &c.User.Role, &c.User.Avatar,
			&c.Content, &c.IsApproved, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		c.User.ID = c.UserID
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// List returns every comment, newest first.
func (s *CommentStore) List(ctx context.Context) ([]models.Comment, error) {
	comments, err := s.query(ctx, commentSelect+` ORDER BY c.created_at DESC, c.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

// ListByPost returns the comments on one article, oldest first.
func (s *CommentStore) ListByPost(ctx context.Context, postID string) ([]models.Comment, error) {
	comments, err := s.query(ctx, commentSelect+` WHERE c.post_id = $1 ORDER BY c.created_at ASC, c.id ASC`, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments by post: %w", err)
	}
	return comments, nil
}

// Create inserts a new comment.
func (s *CommentStore) Create(ctx context.Context, c *models.Comment) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO comments (id, post_id, user_id, user_name, content, is_approved, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, c.ID, c.PostID, c.UserID, c.User.DisplayName, c.Content, c.IsApproved, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

// Approve marks a comment as approved.
func (s *CommentStore) Approve(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE comments SET is_approved = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("approve comment: %w", err)
	}
	return requireRow(res, "approve comment")
}

// Delete removes a comment.
func (s *CommentStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return requireRow(res, "delete comment")
}
