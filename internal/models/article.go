// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"slices"
	"strings"
	"time"
)

// Article is a news post. LikesCount and CommentsCount are derived from the
// like and comment collections when articles are read; stores never
// persist them.
type Article struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	Excerpt       string    `json:"excerpt"`
	District      string    `json:"district"`
	Tags          []string  `json:"tags"`
	AuthorID      string    `json:"authorId"`
	Author        Identity  `json:"author"`
	MediaURLs     []string  `json:"mediaUrls"`
	LikesCount    int       `json:"likesCount"`
	CommentsCount int       `json:"commentsCount"`
	IsPublished   bool      `json:"isPublished"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Thumbnail returns the first media URL, or "" when the article has none.
func (a *Article) Thumbnail() string {
	if len(a.MediaURLs) == 0 {
		return ""
	}
	return a.MediaURLs[0]
}

// HasTag reports whether the article carries the tag, ignoring case.
func (a *Article) HasTag(tag string) bool {
	return slices.ContainsFunc(a.Tags, func(t string) bool {
		return strings.EqualFold(t, tag)
	})
}

// Comment is a reader comment attached to an article.
type Comment struct {
	ID         string    `json:"id"`
	PostID     string    `json:"postId"`
	UserID     string    `json:"userId"`
	User       Identity  `json:"user"`
	Content    string    `json:"content"`
	IsApproved bool      `json:"isApproved"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Like records that a user liked an article. At most one exists per
// (PostID, UserID).
type Like struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}
