// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package newsroom holds the collection logic behind every reader and
// admin view: posts, comments, likes, activity logs, users, settings and
// the dashboard. Mutations that come from the admin console are checked
// against the permission matrix and recorded in the activity log.
package newsroom

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/ksuid"

	"newsdesk/internal/acl"
	"newsdesk/internal/models"
)

var (
	// ErrForbidden is returned when the permission matrix denies an action.
	ErrForbidden = errors.New("not permitted")

	// ErrSelfAction is returned when admins try to disable or delete
	// themselves.
	ErrSelfAction = errors.New("cannot perform this action on your own account")

	// ErrSignInRequired is returned for reader actions that need a session.
	ErrSignInRequired = errors.New("sign in required")

	// ErrCommentsClosed is returned when comments are turned off site-wide.
	ErrCommentsClosed = errors.New("comments are disabled")

	// ErrEmptyComment is returned for blank comment bodies.
	ErrEmptyComment = errors.New("comment cannot be empty")

	// ErrInvalidSettings is returned when settings fail validation.
	ErrInvalidSettings = errors.New("invalid settings")
)

// UserRepository is the identity directory.
type UserRepository interface {
	List(ctx context.Context) ([]models.Identity, error)
	FindByID(ctx context.Context, id string) (*models.Identity, error)
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}

// PostRepository stores articles.
type PostRepository interface {
	List(ctx context.Context) ([]models.Article, error)
	FindByID(ctx context.Context, id string) (*models.Article, error)
	Create(ctx context.Context, a *models.Article) error
	Update(ctx context.Context, a *models.Article) error
	Delete(ctx context.Context, id string) error
}

// CommentRepository stores comments.
type CommentRepository interface {
	List(ctx context.Context) ([]models.Comment, error)
	ListByPost(ctx context.Context, postID string) ([]models.Comment, error)
	Create(ctx context.Context, c *models.Comment) error
	Approve(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// LikeRepository stores likes.
type LikeRepository interface {
	List(ctx context.Context) ([]models.Like, error)
	Find(ctx context.Context, postID, userID string) (*models.Like, error)
	Create(ctx context.Context, l *models.Like) error
	Delete(ctx context.Context, id string) error
}

// LogRepository is the append-only activity log.
type LogRepository interface {
	Append(ctx context.Context, e *models.ActivityLog) error
	List(ctx context.Context) ([]models.ActivityLog, error)
}

// SettingsRepository stores the site settings.
type SettingsRepository interface {
	Load(ctx context.Context) (models.Settings, error)
	Save(ctx context.Context, s models.Settings) error
}

// Repositories bundles the storage the service works on.
type Repositories struct {
	Users    UserRepository
	Posts    PostRepository
	Comments CommentRepository
	Likes    LikeRepository
	Logs     LogRepository
	Settings SettingsRepository
}

// Service implements the newsroom operations.
type Service struct {
	repo   Repositories
	matrix *acl.Matrix
	now    func() time.Time
}

// New creates a Service.
func New(repo Repositories, matrix *acl.Matrix) *Service {
	return &Service{repo: repo, matrix: matrix, now: time.Now}
}

// authorize checks the matrix for actor.
func (s *Service) authorize(actor *models.Identity, res acl.Resource, act acl.Action) error {
	if actor == nil {
		return ErrSignInRequired
	}
	if !s.matrix.Allowed(actor.Role, res, act) {
		return fmt.Errorf("%w: %s %s", ErrForbidden, act, res)
	}
	return nil
}

// record appends an activity entry. Failures are only logged.
func (s *Service) record(ctx context.Context, actor *models.Identity, action models.Action, details string) {
	err := s.repo.Logs.Append(ctx, &models.ActivityLog{
		ID:        ksuid.New().String(),
		UserID:    actor.ID,
		User:      *actor,
		Action:    action,
		Details:   details,
		CreatedAt: s.now(),
	})
	if err != nil {
		slog.Warn("activity log append failed", "action", action, "error", err)
	}
}
