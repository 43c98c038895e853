// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package seed holds the bootstrap dataset shared by the in-memory store
// and the development seeding of the postgres backend. Every function
// returns fresh values so callers may mutate them freely.
package seed

import (
	"time"

	"newsdesk/internal/models"
)

// DefaultPassword is the shared password of every predefined identity.
const DefaultPassword = "password"

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic("seed: bad timestamp " + s)
	}
	return t
}

// Identities returns the predefined identity directory. passwordHash is
// stored on every entry.
func Identities(passwordHash string) []models.Identity {
	return []models.Identity{
		{
			ID:           "1",
			Email:        "admin@news.com",
			DisplayName:  "Admin User",
			Role:         models.RoleAdmin,
			Avatar:       "https://images.unsplash.com/photo-1649972904349-6e44c42644a7?w=100",
			PasswordHash: passwordHash,
			IsActive:     true,
			CreatedAt:    ts("2024-01-01T00:00:00Z"),
		},
		{
			ID:           "2",
			Email:        "creator@news.com",
			DisplayName:  "Content Creator",
			Role:         models.RoleCreator,
			PasswordHash: passwordHash,
			IsActive:     true,
			CreatedAt:    ts("2024-01-02T00:00:00Z"),
		},
		{
			ID:           "3",
			Email:        "reader@news.com",
			DisplayName:  "Regular Reader",
			Role:         models.RoleReader,
			PasswordHash: passwordHash,
			IsActive:     true,
			CreatedAt:    ts("2024-01-03T00:00:00Z"),
		},
	}
}

// Articles returns the bootstrap articles. Author is left empty; stores
// resolve it from AuthorID.
func Articles() []models.Article {
	return []models.Article{
		{
			ID:          "1",
			Title:       "Breaking: Major Infrastructure Development",
			Content:     "The government has announced a massive infrastructure investment across multiple districts.\n\n### Key features of the program\n\n- Construction of new highways and bridge systems\n- Modernization of public transportation\n- Expansion of broadband internet access\n- Upgrading of water and sewage systems\n",
			Excerpt:     "Major infrastructure development announced...",
			District:    "Central District",
			Tags:        []string{"infrastructure", "development", "Politics", "breaking"},
			AuthorID:    "1",
			MediaURLs:   []string{"https://images.unsplash.com/photo-1486312338219-ce68e2c4d99b?w=800&h=400&fit=crop"},
			IsPublished: true,
			CreatedAt:   ts("2024-01-15T10:30:00Z"),
			UpdatedAt:   ts("2024-01-15T10:30:00Z"),
		},
		{
			ID:          "2",
			Title:       "Local Community Event Success",
			Content:     "Community event details...",
			Excerpt:     "Local community comes together...",
			District:    "North District",
			Tags:        []string{"community", "events"},
			AuthorID:    "2",
			IsPublished: true,
			CreatedAt:   ts("2024-01-14T15:20:00Z"),
			UpdatedAt:   ts("2024-01-14T15:20:00Z"),
		},
		{
			ID:          "3",
			Title:       "Local Sports Team Wins Championship",
			Content:     "After an intense final match, the local team secured their first championship.",
			Excerpt:     "After an intense final match, the local team secures their first championship...",
			District:    "North District",
			Tags:        []string{"Sports", "Local"},
			AuthorID:    "2",
			MediaURLs:   []string{"https://images.unsplash.com/photo-1461896836934-ffe607ba8211?w=600&h=300&fit=crop"},
			IsPublished: true,
			CreatedAt:   ts("2024-01-14T15:30:00Z"),
			UpdatedAt:   ts("2024-01-14T15:30:00Z"),
		},
		{
			ID:          "4",
			Title:       "Technology Innovation Hub Opens",
			Content:     "A new technology center aims to foster innovation and entrepreneurship.",
			Excerpt:     "New technology center aims to foster innovation and entrepreneurship...",
			District:    "South District",
			Tags:        []string{"Technology", "Business"},
			AuthorID:    "2",
			MediaURLs:   []string{"https://images.unsplash.com/photo-1518770660439-4636190af475?w=600&h=300&fit=crop"},
			IsPublished: true,
			CreatedAt:   ts("2024-01-13T09:15:00Z"),
			UpdatedAt:   ts("2024-01-13T09:15:00Z"),
		},
		{
			ID:          "5",
			Title:       "Economic Policy Changes Impact Local Businesses",
			Content:     "New regulations are affecting small and medium enterprises.",
			Excerpt:     "New regulations affecting small and medium enterprises...",
			District:    "Central District",
			Tags:        []string{"Business"},
			AuthorID:    "1",
			MediaURLs:   []string{"https://images.unsplash.com/photo-1649972904349-6e44c42644a7?w=300&h=200&fit=crop"},
			IsPublished: true,
			CreatedAt:   ts("2024-01-12T14:20:00Z"),
			UpdatedAt:   ts("2024-01-12T14:20:00Z"),
		},
		{
			ID:          "6",
			Title:       "Healthcare System Reforms Announced",
			Content:     "Major changes to public healthcare infrastructure were announced today.",
			Excerpt:     "Major changes to public healthcare infrastructure...",
			District:    "East District",
			Tags:        []string{"Health"},
			AuthorID:    "1",
			MediaURLs:   []string{"https://images.unsplash.com/photo-1581091226825-a6a2a5aee158?w=300&h=200&fit=crop"},
			IsPublished: true,
			CreatedAt:   ts("2024-01-11T11:45:00Z"),
			UpdatedAt:   ts("2024-01-11T11:45:00Z"),
		},
		{
			ID:          "7",
			Title:       "Environmental Conservation Initiatives",
			Content:     "New green energy projects are planned across multiple regions.",
			Excerpt:     "New green energy projects across multiple regions...",
			District:    "West District",
			Tags:        []string{"Environment"},
			AuthorID:    "2",
			IsPublished: false,
			CreatedAt:   ts("2024-01-10T16:30:00Z"),
			UpdatedAt:   ts("2024-01-10T16:30:00Z"),
		},
	}
}

// Comments returns the bootstrap comments. User is left empty; stores
// resolve it from UserID.
func Comments() []models.Comment {
	return []models.Comment{
		{
			ID:         "1",
			PostID:     "1",
			UserID:     "3",
			Content:    "Great article! Very informative and well-written.",
			IsApproved: true,
			CreatedAt:  ts("2024-01-15T12:30:00Z"),
		},
		{
			ID:         "2",
			PostID:     "1",
			UserID:     "2",
			Content:    "Thanks for sharing this update. Looking forward to seeing the progress.",
			IsApproved: false,
			CreatedAt:  ts("2024-01-15T14:20:00Z"),
		},
	}
}

// Likes returns the bootstrap likes.
func Likes() []models.Like {
	return []models.Like{
		{ID: "1", PostID: "1", UserID: "3", CreatedAt: ts("2024-01-15T13:30:00Z")},
		{ID: "2", PostID: "2", UserID: "2", CreatedAt: ts("2024-01-14T16:20:00Z")},
	}
}

// ActivityLogs returns the bootstrap activity log entries.
func ActivityLogs() []models.ActivityLog {
	return []models.ActivityLog{
		{ID: "1", UserID: "1", Action: models.ActionCreatePost, Details: `Created post "Breaking: Major Infrastructure Development"`, CreatedAt: ts("2024-01-15T10:30:00Z")},
		{ID: "2", UserID: "2", Action: models.ActionLogin, Details: "User logged in from IP 192.168.1.100", CreatedAt: ts("2024-01-15T09:15:00Z")},
		{ID: "3", UserID: "1", Action: models.ActionEditPost, Details: `Edited post "Local Community Event Success"`, CreatedAt: ts("2024-01-14T16:45:00Z")},
		{ID: "4", UserID: "2", Action: models.ActionComment, Details: `Commented on post "Breaking: Major Infrastructure Development"`, CreatedAt: ts("2024-01-14T15:30:00Z")},
		{ID: "5", UserID: "1", Action: models.ActionDeletePost, Details: `Deleted post "Outdated Information"`, CreatedAt: ts("2024-01-13T11:20:00Z")},
	}
}
