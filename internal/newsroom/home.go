// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package newsroom

import (
	"context"
	"slices"
	"strings"
	"time"

	"newsdesk/internal/models"
)

// CategoryAll is the category filter value that keeps every story.
const CategoryAll = "all"

// BreakingTag marks a story for the breaking banner.
const BreakingTag = "breaking"

// Categories lists the reader home filters in display order.
var Categories = []string{CategoryAll, "Politics", "Sports", "Technology", "Health", "Business"}

// sideStories is how many stories sit next to the featured one.
const sideStories = 2

// Home is the reader landing page.
type Home struct {
	Category   string
	Categories []string
	Breaking   *Story
	Featured   *Story
	Stories    []Story
	Current    []Story
}

// Story is an article as shown on the home page.
type Story struct {
	ID        string
	Title     string
	Excerpt   string
	District  string
	Category  string
	Thumbnail string
	Published string
	Likes     int
	Comments  int
}

// NormalizeCategory maps user input to one of Categories, defaulting to
// CategoryAll.
func NormalizeCategory(c string) string {
	for _, known := range Categories {
		if strings.EqualFold(known, c) {
			return known
		}
	}
	return CategoryAll
}

// ReaderHome assembles the landing page for a category.
func (s *Service) ReaderHome(ctx context.Context, category string) (*Home, error) {
	category = NormalizeCategory(category)

	all, err := s.PublishedPosts(ctx, CategoryAll)
	if err != nil {
		return nil, err
	}
	loc := s.location(ctx)

	home := &Home{Category: category, Categories: Categories}
	for i := range all {
		if all[i].HasTag(BreakingTag) {
			st := s.story(&all[i], loc)
			home.Breaking = &st
			break
		}
	}

	filtered := slices.Clone(all)
	if category != CategoryAll {
		filtered = slices.DeleteFunc(filtered, func(a models.Article) bool { return !a.HasTag(category) })
	}
	for i := range filtered {
		st := s.story(&filtered[i], loc)
		switch {
		case i == 0:
			home.Featured = &st
		case i <= sideStories:
			home.Stories = append(home.Stories, st)
		default:
			home.Current = append(home.Current, st)
		}
	}
	return home, nil
}

// story flattens an article. The category is the first tag that names a
// known category.
func (s *Service) story(a *models.Article, loc *time.Location) Story {
	st := Story{
		ID:        a.ID,
		Title:     a.Title,
		Excerpt:   a.Excerpt,
		District:  a.District,
		Thumbnail: a.Thumbnail(),
		Published: a.CreatedAt.In(loc).Format("Jan 2, 03:04 PM"),
		Likes:     a.LikesCount,
		Comments:  a.CommentsCount,
	}
	for _, c := range Categories[1:] {
		if a.HasTag(c) {
			st.Category = c
			break
		}
	}
	return st
}

// location returns the configured site time zone.
func (s *Service) location(ctx context.Context) *time.Location {
	settings, err := s.repo.Settings.Load(ctx)
	if err != nil {
		return time.UTC
	}
	return settings.Location()
}
