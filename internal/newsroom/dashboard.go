// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package newsroom

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"newsdesk/internal/models"
)

const (
	topPostCount     = 3
	recentEntryCount = 5
)

// Dashboard is the admin landing page.
type Dashboard struct {
	Posts     int
	Published int
	Users     int
	Comments  CommentStats
	Likes     int
	TopPosts  []models.Article
	Recent    []models.ActivityLog
}

// Dashboard gathers site totals, the most engaging posts and the latest
// activity.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	posts, err := s.ListPosts(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.repo.Users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard users: %w", err)
	}
	comments, err := s.CommentStats(ctx)
	if err != nil {
		return nil, err
	}
	likes, err := s.repo.Likes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard likes: %w", err)
	}
	logs, err := s.repo.Logs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard logs: %w", err)
	}

	d := &Dashboard{
		Posts:    len(posts),
		Users:    len(users),
		Comments: comments,
		Likes:    len(likes),
	}
	for _, p := range posts {
		if p.IsPublished {
			d.Published++
		}
	}

	top := slices.Clone(posts)
	slices.SortStableFunc(top, func(a, b models.Article) int {
		return cmp.Compare(b.LikesCount+b.CommentsCount, a.LikesCount+a.CommentsCount)
	})
	d.TopPosts = top[:min(topPostCount, len(top))]
	d.Recent = logs[:min(recentEntryCount, len(logs))]
	return d, nil
}
