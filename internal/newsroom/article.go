// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package newsroom

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/segmentio/ksuid"

	"newsdesk/internal/acl"
	"newsdesk/internal/auth"
	"newsdesk/internal/models"
)

// relatedCount is how many related stories the article page lists.
const relatedCount = 2

// Article is the reader's view of one story.
type Article struct {
	Post          *models.Article
	Comments      []models.Comment
	Liked         bool
	AllowComments bool
	Related       []models.Article
}

// ArticleView loads a published article for the viewer. Drafts are only
// visible to admin-shell roles. Returns nil when there is nothing to show.
// Readers see approved comments plus their own pending ones.
func (s *Service) ArticleView(ctx context.Context, viewer auth.Session, id string) (*Article, error) {
	post, err := s.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, nil
	}
	if !post.IsPublished && !(viewer.SignedIn() && viewer.Identity.CanManage()) {
		return nil, nil
	}

	thread, err := s.repo.Comments.ListByPost(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("article comments: %w", err)
	}
	thread = slices.DeleteFunc(thread, func(c models.Comment) bool {
		return !c.IsApproved && !(viewer.SignedIn() && c.UserID == viewer.Identity.ID)
	})

	settings, err := s.repo.Settings.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("article settings: %w", err)
	}

	view := &Article{Post: post, Comments: thread, AllowComments: settings.AllowComments}
	if viewer.SignedIn() {
		like, err := s.repo.Likes.Find(ctx, id, viewer.Identity.ID)
		if err != nil {
			return nil, fmt.Errorf("article like: %w", err)
		}
		view.Liked = like != nil
	}

	published, err := s.PublishedPosts(ctx, CategoryAll)
	if err != nil {
		return nil, err
	}
	for _, p := range published {
		if len(view.Related) == relatedCount {
			break
		}
		if p.ID != id {
			view.Related = append(view.Related, p)
		}
	}
	return view, nil
}

// LikeState is the outcome of ToggleLike.
type LikeState struct {
	Liked bool
	Count int
}

// ToggleLike likes or unlikes a post for the viewer. Anonymous viewers get
// the current count back and nothing changes.
func (s *Service) ToggleLike(ctx context.Context, viewer auth.Session, postID string) (LikeState, error) {
	post, err := s.repo.Posts.FindByID(ctx, postID)
	if err != nil {
		return LikeState{}, fmt.Errorf("toggle like: %w", err)
	}
	if post == nil {
		return LikeState{}, models.ErrNotFound
	}

	var liked bool
	if viewer.SignedIn() {
		uid := viewer.Identity.ID
		existing, err := s.repo.Likes.Find(ctx, postID, uid)
		if err != nil {
			return LikeState{}, fmt.Errorf("toggle like: %w", err)
		}
		if existing != nil {
			err = s.repo.Likes.Delete(ctx, existing.ID)
		} else {
			liked = true
			err = s.repo.Likes.Create(ctx, &models.Like{
				ID:        ksuid.New().String(),
				PostID:    postID,
				UserID:    uid,
				CreatedAt: s.now(),
			})
			// A concurrent toggle got there first.
			if errors.Is(err, models.ErrDuplicateLike) {
				err = nil
			}
		}
		if err != nil && !errors.Is(err, models.ErrNotFound) {
			return LikeState{}, fmt.Errorf("toggle like: %w", err)
		}
	}

	c, err := s.loadCounters(ctx)
	if err != nil {
		return LikeState{}, err
	}
	return LikeState{Liked: liked, Count: c.likes[postID]}, nil
}

// AddComment attaches a comment by the viewer to a post. Whether it starts
// approved depends on the requireApproval setting.
func (s *Service) AddComment(ctx context.Context, viewer auth.Session, postID, content string) (*models.Comment, error) {
	if !viewer.SignedIn() {
		return nil, ErrSignInRequired
	}
	if err := s.authorize(viewer.Identity, acl.ResourceComments, acl.ActionCreate); err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyComment
	}

	settings, err := s.repo.Settings.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}
	if !settings.AllowComments {
		return nil, ErrCommentsClosed
	}

	post, err := s.repo.Posts.FindByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}
	if post == nil {
		return nil, models.ErrNotFound
	}

	c := &models.Comment{
		ID:         ksuid.New().String(),
		PostID:     postID,
		UserID:     viewer.Identity.ID,
		User:       *viewer.Identity,
		Content:    content,
		IsApproved: !settings.RequireApproval,
		CreatedAt:  s.now(),
	}
	if err := s.repo.Comments.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}
	s.record(ctx, viewer.Identity, models.ActionComment, fmt.Sprintf("Commented on post %q", post.Title))
	return c, nil
}
