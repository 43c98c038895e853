// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package newsroom

import (
	"context"
	"testing"
	"time"

	"newsdesk/internal/models"
)

func TestAggregate(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	likes := []models.Like{
		{ID: "a", PostID: "1", CreatedAt: t0},
		{ID: "b", PostID: "1", CreatedAt: t0.Add(2 * time.Hour)},
		{ID: "c", PostID: "2", CreatedAt: t0.Add(time.Hour)},
	}

	sum := Aggregate(likes)
	if sum.Average != 1.5 {
		t.Errorf("average: got %v, want 1.5", sum.Average)
	}
	if sum.Total != 3 || sum.Posts != 2 {
		t.Errorf("totals: %+v", sum)
	}
	if sum.Groups[0].PostID != "1" || sum.Groups[0].Count != 2 || !sum.Groups[0].Latest.Equal(t0.Add(2*time.Hour)) {
		t.Errorf("group 1: %+v", sum.Groups[0])
	}
	if sum.Recent[0].ID != "b" || sum.Recent[2].ID != "a" {
		t.Errorf("recent order: %+v", sum.Recent)
	}
	if likes[0].ID != "a" {
		t.Error("Aggregate must not reorder its input")
	}
}

func TestAggregateEmpty(t *testing.T) {
	sum := Aggregate(nil)
	if sum.Average != 0 || sum.Total != 0 || sum.Posts != 0 || len(sum.Groups) != 0 {
		t.Errorf("empty: %+v", sum)
	}
}

func TestAggregateRounding(t *testing.T) {
	likes := []models.Like{{PostID: "1"}, {PostID: "1"}, {PostID: "2"}, {PostID: "3"}}
	// 4 likes over 3 posts.
	if got := Aggregate(likes).Average; got != 1.3 {
		t.Errorf("average: got %v, want 1.3", got)
	}
}

func TestLikesOverview(t *testing.T) {
	svc, mem := newService(t)
	ctx := context.Background()

	sum, err := svc.LikesOverview(ctx)
	if err != nil {
		t.Fatalf("LikesOverview: %v", err)
	}
	if sum.Total != 2 || sum.Average != 1 {
		t.Errorf("summary: %+v", sum)
	}
	if sum.Groups[0].Title != "Breaking: Major Infrastructure Development" {
		t.Errorf("title: %q", sum.Groups[0].Title)
	}

	mem.Posts.Delete(ctx, "2")
	sum, _ = svc.LikesOverview(ctx)
	if sum.Total != 1 {
		t.Errorf("likes of deleted posts should go: %+v", sum)
	}
}
