// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package newsroom

import (
	"context"
	"fmt"
	"slices"

	"newsdesk/internal/acl"
	"newsdesk/internal/models"
)

// CommentStats summarizes a list of comments.
type CommentStats struct {
	Total    int
	Approved int
	Pending  int
}

// CommentedPost is a sidebar entry on the moderation page.
type CommentedPost struct {
	ID    string
	Title string
	Count int
}

// ListComments returns every comment newest first, or only those on
// postID when it is not empty.
func (s *Service) ListComments(ctx context.Context, postID string) ([]models.Comment, error) {
	comments, err := s.repo.Comments.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	if postID == "" {
		return comments, nil
	}
	return slices.DeleteFunc(comments, func(c models.Comment) bool { return c.PostID != postID }), nil
}

// Stats counts approved and pending comments.
func Stats(comments []models.Comment) CommentStats {
	st := CommentStats{Total: len(comments)}
	for _, c := range comments {
		if c.IsApproved {
			st.Approved++
		} else {
			st.Pending++
		}
	}
	return st
}

// CommentStats counts every comment on the site.
func (s *Service) CommentStats(ctx context.Context) (CommentStats, error) {
	comments, err := s.repo.Comments.List(ctx)
	if err != nil {
		return CommentStats{}, fmt.Errorf("comment stats: %w", err)
	}
	return Stats(comments), nil
}

// CommentedPosts lists the posts that have at least one comment, in the
// order their newest comment appears.
func (s *Service) CommentedPosts(ctx context.Context) ([]CommentedPost, error) {
	comments, err := s.repo.Comments.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("commented posts: %w", err)
	}
	var out []CommentedPost
	index := make(map[string]int)
	for _, c := range comments {
		if i, ok := index[c.PostID]; ok {
			out[i].Count++
			continue
		}
		title := "(deleted post)"
		if post, err := s.repo.Posts.FindByID(ctx, c.PostID); err == nil && post != nil {
			title = post.Title
		}
		index[c.PostID] = len(out)
		out = append(out, CommentedPost{ID: c.PostID, Title: title, Count: 1})
	}
	return out, nil
}

// ApproveComment marks a comment approved.
func (s *Service) ApproveComment(ctx context.Context, actor *models.Identity, id string) error {
	if err := s.authorize(actor, acl.ResourceComments, acl.ActionUpdate); err != nil {
		return err
	}
	if err := s.repo.Comments.Approve(ctx, id); err != nil {
		return fmt.Errorf("approve comment: %w", err)
	}
	return nil
}

// DeleteComment removes a comment.
func (s *Service) DeleteComment(ctx context.Context, actor *models.Identity, id string) error {
	if err := s.authorize(actor, acl.ResourceComments, acl.ActionDelete); err != nil {
		return err
	}
	if err := s.repo.Comments.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}
