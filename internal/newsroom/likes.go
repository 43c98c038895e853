// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package newsroom

import (
	"context"
	"fmt"
	"math"
	"slices"
	"time"

	"newsdesk/internal/models"
)

// LikeGroup is the likes of one post.
type LikeGroup struct {
	PostID string
	Title  string
	Count  int
	Latest time.Time
}

// LikesSummary is the likes overview page.
type LikesSummary struct {
	Total   int
	Posts   int
	Average float64
	Groups  []LikeGroup
	Recent  []models.Like
}

// Aggregate groups likes by post. Groups keep first-seen order and Recent
// is sorted newest first. Average is likes per liked post rounded to one
// decimal, or 0 when nothing is liked.
func Aggregate(likes []models.Like) LikesSummary {
	sum := LikesSummary{Total: len(likes)}
	index := make(map[string]int)
	for _, l := range likes {
		i, ok := index[l.PostID]
		if !ok {
			i = len(sum.Groups)
			index[l.PostID] = i
			sum.Groups = append(sum.Groups, LikeGroup{PostID: l.PostID})
		}
		g := &sum.Groups[i]
		g.Count++
		if l.CreatedAt.After(g.Latest) {
			g.Latest = l.CreatedAt
		}
	}
	sum.Posts = len(sum.Groups)
	if sum.Posts > 0 {
		sum.Average = math.Round(float64(sum.Total)/float64(sum.Posts)*10) / 10
	}

	sum.Recent = slices.Clone(likes)
	slices.SortStableFunc(sum.Recent, func(a, b models.Like) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return sum
}

// LikesOverview aggregates every like and fills in post titles.
func (s *Service) LikesOverview(ctx context.Context) (LikesSummary, error) {
	likes, err := s.repo.Likes.List(ctx)
	if err != nil {
		return LikesSummary{}, fmt.Errorf("likes overview: %w", err)
	}
	sum := Aggregate(likes)
	for i := range sum.Groups {
		g := &sum.Groups[i]
		g.Title = "(deleted post)"
		post, err := s.repo.Posts.FindByID(ctx, g.PostID)
		if err != nil {
			return LikesSummary{}, fmt.Errorf("likes overview: %w", err)
		}
		if post != nil {
			g.Title = post.Title
		}
	}
	return sum, nil
}
