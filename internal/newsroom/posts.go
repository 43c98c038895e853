// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package newsroom

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/segmentio/ksuid"

	"newsdesk/internal/acl"
	"newsdesk/internal/models"
)

// PostInput is the editable part of an article.
type PostInput struct {
	Title       string
	Content     string
	Excerpt     string
	District    string
	Tags        string // comma separated
	MediaURLs   []string
	IsPublished bool
}

// ParseTags splits a comma separated list, trimming blanks.
func ParseTags(s string) []string {
	tags := []string{}
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// counters holds like and approved-comment counts per post id.
type counters struct {
	likes    map[string]int
	comments map[string]int
}

func (s *Service) loadCounters(ctx context.Context) (counters, error) {
	likes, err := s.repo.Likes.List(ctx)
	if err != nil {
		return counters{}, fmt.Errorf("count likes: %w", err)
	}
	comments, err := s.repo.Comments.List(ctx)
	if err != nil {
		return counters{}, fmt.Errorf("count comments: %w", err)
	}
	c := counters{likes: make(map[string]int), comments: make(map[string]int)}
	for _, l := range likes {
		c.likes[l.PostID]++
	}
	for _, cm := range comments {
		if cm.IsApproved {
			c.comments[cm.PostID]++
		}
	}
	return c, nil
}

func (c counters) apply(a *models.Article) {
	a.LikesCount = c.likes[a.ID]
	a.CommentsCount = c.comments[a.ID]
}

// ListPosts returns every article, newest first, with derived counters.
func (s *Service) ListPosts(ctx context.Context) ([]models.Article, error) {
	posts, err := s.repo.Posts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	c, err := s.loadCounters(ctx)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		c.apply(&posts[i])
	}
	return posts, nil
}

// GetPost returns one article with derived counters, or nil.
func (s *Service) GetPost(ctx context.Context, id string) (*models.Article, error) {
	post, err := s.repo.Posts.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	if post == nil {
		return nil, nil
	}
	c, err := s.loadCounters(ctx)
	if err != nil {
		return nil, err
	}
	c.apply(post)
	return post, nil
}

// PublishedPosts returns published articles, optionally narrowed to one
// category tag. An empty category or "all" keeps everything.
func (s *Service) PublishedPosts(ctx context.Context, category string) ([]models.Article, error) {
	posts, err := s.ListPosts(ctx)
	if err != nil {
		return nil, err
	}
	all := category == "" || strings.EqualFold(category, CategoryAll)
	return slices.DeleteFunc(posts, func(a models.Article) bool {
		return !a.IsPublished || (!all && !a.HasTag(category))
	}), nil
}

// CreatePost stores a new article authored by actor.
func (s *Service) CreatePost(ctx context.Context, actor *models.Identity, in PostInput) (*models.Article, error) {
	if err := s.authorize(actor, acl.ResourcePosts, acl.ActionCreate); err != nil {
		return nil, err
	}
	now := s.now()
	post := &models.Article{
		ID:          ksuid.New().String(),
		Title:       in.Title,
		Content:     in.Content,
		Excerpt:     in.Excerpt,
		District:    in.District,
		Tags:        ParseTags(in.Tags),
		AuthorID:    actor.ID,
		Author:      *actor,
		MediaURLs:   nonNil(in.MediaURLs),
		IsPublished: in.IsPublished,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	s.record(ctx, actor, models.ActionCreatePost, fmt.Sprintf("Created post %q", post.Title))
	return post, nil
}

// UpdatePost merges in into the stored article and refreshes UpdatedAt.
func (s *Service) UpdatePost(ctx context.Context, actor *models.Identity, id string, in PostInput) (*models.Article, error) {
	if err := s.authorize(actor, acl.ResourcePosts, acl.ActionUpdate); err != nil {
		return nil, err
	}
	post, err := s.repo.Posts.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	if post == nil {
		return nil, models.ErrNotFound
	}
	post.Title = in.Title
	post.Content = in.Content
	post.Excerpt = in.Excerpt
	post.District = in.District
	post.Tags = ParseTags(in.Tags)
	post.MediaURLs = nonNil(in.MediaURLs)
	post.IsPublished = in.IsPublished
	post.UpdatedAt = s.now()

	if err := s.repo.Posts.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	s.record(ctx, actor, models.ActionEditPost, fmt.Sprintf("Edited post %q", post.Title))
	return post, nil
}

// DeletePost removes an article with its comments and likes.
func (s *Service) DeletePost(ctx context.Context, actor *models.Identity, id string) error {
	if err := s.authorize(actor, acl.ResourcePosts, acl.ActionDelete); err != nil {
		return err
	}
	post, err := s.repo.Posts.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if post == nil {
		return models.ErrNotFound
	}
	if err := s.repo.Posts.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	s.record(ctx, actor, models.ActionDeletePost, fmt.Sprintf("Deleted post %q", post.Title))
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return slices.Clone(s)
}
