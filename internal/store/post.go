// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"newsdesk/internal/models"
)

// PostStore handles article persistence. Authors are resolved with a join
// on users, falling back to the name captured when the post was written.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

const postSelect = `
	SELECT p.id, p.title, p.content, p.excerpt, p.district, p.tags,
	       p.author_id, COALESCE(u.display_name, p.author_name),
	       COALESCE(u.email, ''), COALESCE(u.role, 'reader'), COALESCE(u.avatar, ''),
	       p.media_urls, p.is_published, p.created_at, p.updated_at
	FROM posts p
	LEFT JOIN users u ON u.id = p.author_id`

func scanPost(row interface{ Scan(...any) error }) (*models.Article, error) {
	a := &models.Article{}
	var tags, media []byte
	err := row.Scan(
		&a.ID, &a.Title, &a.Content, &a.Excerpt, &a.District, &tags,
		&a.AuthorID, &a.Author.DisplayName,
		&a.Author.Email, &a.Author.Role, &a.Author.Avatar,
		&media, &a.IsPublished, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.Author.ID = a.AuthorID
	if err := json.Unmarshal(tags, &a.Tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	if err := json.Unmarshal(media, &a.MediaURLs); err != nil {
		return nil, fmt.Errorf("decode media urls: %w", err)
	}
	return a, nil
}

// List returns all articles, newest first.
func (s *PostStore) List(ctx context.Context) ([]models.Article, error) {
	rows, err := s.db.QueryContext(ctx, postSelect+` ORDER BY p.created_at DESC, p.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []models.Article
	for rows.Next() {
		a, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *a)
	}
	return posts, rows.Err()
}

// FindByID retrieves an article by id. Returns nil if not found.
func (s *PostStore) FindByID(ctx context.Context, id string) (*models.Article, error) {
	a, err := scanPost(s.db.QueryRowContext(ctx, postSelect+` WHERE p.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return a, nil
}

// Create inserts a new article. Counters are derived, never stored.
func (s *PostStore) Create(ctx context.Context, a *models.Article) error {
	tags, media, err := encodeLists(a)
	if err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO posts (id, title, content, excerpt, district, tags, author_id,
		                   author_name, media_urls, is_published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, a.ID, a.Title, a.Content, a.Excerpt, a.District, tags, a.AuthorID,
		a.Author.DisplayName, media, a.IsPublished, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}

// Update saves the editable fields of an existing article.
func (s *PostStore) Update(ctx context.Context, a *models.Article) error {
	tags, media, err := encodeLists(a)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE posts
		SET title = $1, content = $2, excerpt = $3, district = $4, tags = $5,
		    media_urls = $6, is_published = $7, updated_at = $8
		WHERE id = $9
	`, a.Title, a.Content, a.Excerpt, a.District, tags, media, a.IsPublished, a.UpdatedAt, a.ID)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	return requireRow(res, "update post")
}

// Delete removes an article. Comments and likes cascade.
func (s *PostStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return requireRow(res, "delete post")
}

func encodeLists(a *models.Article) (tags, media string, err error) {
	t, err := json.Marshal(nonNil(a.Tags))
	if err != nil {
		return "", "", err
	}
	m, err := json.Marshal(nonNil(a.MediaURLs))
	if err != nil {
		return "", "", err
	}
	return string(t), string(m), nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
