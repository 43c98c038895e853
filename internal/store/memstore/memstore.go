// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package memstore is the in-memory storage backend. It mirrors the
// per-entity stores of the postgres backend method for method so the
// service layer can run against either. All stores share one lock.
package memstore

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"newsdesk/internal/acl"
	"newsdesk/internal/models"
	"newsdesk/internal/seed"
)

// data is the shared state behind every entity store.
type data struct {
	mu       sync.RWMutex
	users    []models.Identity
	posts    []models.Article
	comments []models.Comment
	likes    []models.Like
	logs     []models.ActivityLog
	settings models.Settings
	perms    acl.Permissions
}

// Store groups the entity stores of one in-memory dataset.
type Store struct {
	Users       *UserStore
	Posts       *PostStore
	Comments    *CommentStore
	Likes       *LikeStore
	Logs        *ActivityLogStore
	Settings    *SettingStore
	Permissions *PermissionStore
}

// New returns a store seeded with the bootstrap dataset. passwordHash is
// the bcrypt hash every predefined identity logs in with.
func New(passwordHash string) *Store {
	d := &data{
		users:    seed.Identities(passwordHash),
		posts:    seed.Articles(),
		comments: seed.Comments(),
		likes:    seed.Likes(),
		logs:     seed.ActivityLogs(),
		settings: models.DefaultSettings(),
	}
	// Snapshot actor names the way the postgres seed does.
	for i := range d.posts {
		d.posts[i].Author = d.resolve(d.posts[i].AuthorID, d.posts[i].Author)
	}
	for i := range d.comments {
		d.comments[i].User = d.resolve(d.comments[i].UserID, d.comments[i].User)
	}
	for i := range d.logs {
		d.logs[i].User = d.resolve(d.logs[i].UserID, d.logs[i].User)
	}
	return wrap(d)
}

// NewEmpty returns a store with no records and default settings.
func NewEmpty() *Store {
	return wrap(&data{settings: models.DefaultSettings()})
}

func wrap(d *data) *Store {
	return &Store{
		Users:       &UserStore{d: d},
		Posts:       &PostStore{d: d},
		Comments:    &CommentStore{d: d},
		Likes:       &LikeStore{d: d},
		Logs:        &ActivityLogStore{d: d},
		Settings:    &SettingStore{d: d},
		Permissions: &PermissionStore{d: d},
	}
}

// userLocked returns the identity with the given id. Callers hold d.mu.
func (d *data) userLocked(id string) (models.Identity, bool) {
	for _, u := range d.users {
		if u.ID == id {
			return u, true
		}
	}
	return models.Identity{}, false
}

// resolve fills a display identity from the directory, keeping the stored
// snapshot when the user no longer exists.
func (d *data) resolve(id string, snapshot models.Identity) models.Identity {
	if u, ok := d.userLocked(id); ok {
		u.PasswordHash = ""
		return u
	}
	if snapshot.ID == "" {
		snapshot.ID = id
	}
	return snapshot
}

// newestFirst sorts by CreatedAt descending, breaking ties by id.
func newestFirst[T any](items []T, created func(T) int64, id func(T) string) {
	slices.SortStableFunc(items, func(a, b T) int {
		if c := cmp.Compare(created(b), created(a)); c != 0 {
			return c
		}
		return cmp.Compare(id(b), id(a))
	})
}

// UserStore is the identity directory.
type UserStore struct{ d *data }

// List returns every identity ordered by creation date.
func (s *UserStore) List(ctx context.Context) ([]models.Identity, error) {
	s.d.mu.RLock()
	defer s.d.mu.RUnlock()
	out := slices.Clone(s.d.users)
	slices.SortStableFunc(out, func(a, b models.Identity) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return out, nil
}

// FindByID returns the identity with the given id, or nil.
func (s *UserStore) FindByID(ctx context.Context, id string) (*models.Identity, error) {
	s.d.mu.RLock()
	defer s.d.mu.RUnlock()
	if u, ok := s.d.userLocked(id); ok {
		return &u, nil
	}
	return nil, nil
}

// FindByEmail returns the identity with exactly this email, or nil.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.Identity, error) {
	s.d.mu.RLock()
	defer s.d.mu.RUnlock()
	for _, u := range s.d.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

// SetActive sets the active flag of an identity.
func (s *UserStore) SetActive(ctx context.Context, id string, active bool) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	for i := range s.d.users {
		if s.d.users[i].ID == id {
			s.d.users[i].IsActive = active
			return nil
		}
	}
	return models.ErrNotFound
}

// Delete removes an identity.
func (s *UserStore) Delete(ctx context.Context, id string) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	n := len(s.d.users)
	s.d.users = slices.DeleteFunc(s.d.users, func(u models.Identity) bool { return u.ID == id })
	if len(s.d.users) == n {
		return models.ErrNotFound
	}
	return nil
}

// PostStore holds articles.
type PostStore struct{ d *data }

// List returns every article, newest first, with authors resolved.
func (s *PostStore) List(ctx context.Context) ([]models.Article, error) {
	s.d.mu.RLock()
	defer s.d.mu.RUnlock()
	out := make([]models.Article, len(s.d.posts))
	for i, p := range s.d.posts {
		out[i] = s.d.clonePost(p)
	}
	newestFirst(out,
		func(a models.Article) int64 { return a.CreatedAt.UnixNano() },
		func(a models.Article) string { return a.ID })
	return out, nil
}

// FindByID returns the article with the given id, or nil.
func (s *PostStore) FindByID(ctx context.Context, id string) (*models.Article, error) {
	s.d.mu.RLock()
	defer s.d.mu.RUnlock()
	for _, p := range s.d.posts {
		if p.ID == id {
			a := s.d.clonePost(p)
			return &a, nil
		}
	}
	return nil, nil
}

// Create stores a new article. Counters are never persisted.
func (s *PostStore) Create(ctx context.Context, a *models.Article) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	p := *a
	p.Tags = slices.Clone(a.Tags)
	p.MediaURLs = slices.Clone(a.MediaURLs)
	p.LikesCount, p.CommentsCount = 0, 0
	s.d.posts = append(s.d.posts, p)
	return nil
}

// Update replaces the editable fields of an existing article.
func (s *PostStore) Update(ctx context.Context, a *models.Article) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	for i := range s.d.posts {
		if s.d.posts[i].ID != a.ID {
			continue
		}
		p := &s.d.posts[i]
		p.Title = a.Title
		p.Content = a.Content
		p.Excerpt = a.Excerpt
		p.District = a.District
		p.Tags = slices.Clone(a.Tags)
		p.MediaURLs = slices.Clone(a.MediaURLs)
		p.IsPublished = a.IsPublished
		p.UpdatedAt = a.UpdatedAt
		return nil
	}
	return models.ErrNotFound
}

// Delete removes an article together with its comments and likes.
func (s *PostStore) Delete(ctx context.Context, id string) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	n := len(s.d.posts)
	s.d.posts = slices.DeleteFunc(s.d.posts, func(p models.Article) bool { return p.ID == id })
	if len(s.d.posts) == n {
		return models.ErrNotFound
	}
	s.d.comments = slices.DeleteFunc(s.d.comments, func(c models.Comment) bool { return c.PostID == id })
	s.d.likes = slices.DeleteFunc(s.d.likes, func(l models.Like) bool { return l.PostID == id })
	return nil
}

func (d *data) clonePost(p models.Article) models.Article {
	p.Tags = slices.Clone(p.Tags)
	p.MediaURLs = slices.Clone(p.MediaURLs)
	p.Author = d.resolve(p.AuthorID, p.Author)
	return p
}

// CommentStore holds comments.
type CommentStore struct{ d *data }

// List returns every comment, newest first.
func (s *CommentStore) List(ctx context.Context) ([]models.Comment, error) {
	s.d.mu.RLock()
	defer s.d.mu.RUnlock()
	out := s.d.resolvedComments(func(models.Comment) bool { return true })
	newestFirst(out,
		func(c models.Comment) int64 { return c.CreatedAt.UnixNano() },
		func(c models.Comment) string { return c.ID })
	return out, nil
}

// ListByPost returns the comments of one article, oldest first.
func (s *CommentStore) ListByPost(ctx context.Context, postID string) ([]models.Comment, error) {
	s.d.mu.RLock()
	defer s.d.mu.RUnlock()
	out := s.d.resolvedComments(func(c models.Comment) bool { return c.PostID == postID })
	slices.SortStableFunc(out, func(a, b models.Comment) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return out, nil
}

func (d *data) resolvedComments(keep func(models.Comment) bool) []models.Comment {
	var out []models.Comment
	for _, c := range d.comments {
		if keep(c) {
			c.User = d.resolve(c.UserID, c.User)
			out = append(out, c)
		}
	}
	return out
}

// Create stores a new comment.
func (s *CommentStore) Create(ctx context.Context, c *models.Comment) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	s.d.comments = append(s.d.comments, *c)
	return nil
}

// Approve marks a comment as approved.
func (s *CommentStore) Approve(ctx context.Context, id string) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	for i := range s.d.comments {
		if s.d.comments[i].ID == id {
			s.d.comments[i].IsApproved = true
			return nil
		}
	}
	return models.ErrNotFound
}

// Delete removes a comment.
func (s *CommentStore) Delete(ctx context.Context, id string) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	n := len(s.d.comments)
	s.d.comments = slices.DeleteFunc(s.d.comments, func(c models.Comment) bool { return c.ID == id })
	if len(s.d.comments) == n {
		return models.ErrNotFound
	}
	return nil
}

// LikeStore holds likes.
type LikeStore struct{ d *data }

// List returns every like, newest first.
func (s *LikeStore) List(ctx context.Context) ([]models.Like, error) {
	s.d.mu.RLock()
	defer s.d.mu.RUnlock()
	out := slices.Clone(s.d.likes)
	newestFirst(out,
		func(l models.Like) int64 { return l.CreatedAt.UnixNano() },
		func(l models.Like) string { return l.ID })
	return out, nil
}

// Find returns the like of userID on postID, or nil.
func (s *LikeStore) Find(ctx context.Context, postID, userID string) (*models.Like, error) {
	s.d.mu.RLock()
	defer s.d.mu.RUnlock()
	for _, l := range s.d.likes {
		if l.PostID == postID && l.UserID == userID {
			return &l, nil
		}
	}
	return nil, nil
}

// Create stores a like. A second like by the same user on the same article
// is rejected with models.ErrDuplicateLike.
func (s *LikeStore) Create(ctx context.Context, l *models.Like) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	for _, existing := range s.d.likes {
		if existing.PostID == l.PostID && existing.UserID == l.UserID {
			return models.ErrDuplicateLike
		}
	}
	s.d.likes = append(s.d.likes, *l)
	return nil
}

// Delete removes a like.
func (s *LikeStore) Delete(ctx context.Context, id string) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	n := len(s.d.likes)
	s.d.likes = slices.DeleteFunc(s.d.likes, func(l models.Like) bool { return l.ID == id })
	if len(s.d.likes) == n {
		return models.ErrNotFound
	}
	return nil
}

// ActivityLogStore is the append-only audit log.
type ActivityLogStore struct{ d *data }

// Append adds an entry.
func (s *ActivityLogStore) Append(ctx context.Context, e *models.ActivityLog) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	s.d.logs = append(s.d.logs, *e)
	return nil
}

// List returns every entry, newest first, with actors resolved.
func (s *ActivityLogStore) List(ctx context.Context) ([]models.ActivityLog, error) {
	s.d.mu.RLock()
	defer s.d.mu.RUnlock()
	out := make([]models.ActivityLog, len(s.d.logs))
	for i, e := range s.d.logs {
		e.User = s.d.resolve(e.UserID, e.User)
		out[i] = e
	}
	newestFirst(out,
		func(e models.ActivityLog) int64 { return e.CreatedAt.UnixNano() },
		func(e models.ActivityLog) string { return e.ID })
	return out, nil
}

// SettingStore holds the site settings.
type SettingStore struct{ d *data }

// Load returns the current settings.
func (s *SettingStore) Load(ctx context.Context) (models.Settings, error) {
	s.d.mu.RLock()
	defer s.d.mu.RUnlock()
	return s.d.settings, nil
}

// Save replaces the settings.
func (s *SettingStore) Save(ctx context.Context, settings models.Settings) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	s.d.settings = settings
	return nil
}

// PermissionStore persists the permission matrix.
type PermissionStore struct{ d *data }

// LoadPermissions returns the saved matrix, or nil when none was saved.
func (s *PermissionStore) LoadPermissions(ctx context.Context) (acl.Permissions, error) {
	s.d.mu.RLock()
	defer s.d.mu.RUnlock()
	return copyPerms(s.d.perms), nil
}

// SavePermissions stores a copy of p.
func (s *PermissionStore) SavePermissions(ctx context.Context, p acl.Permissions) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	s.d.perms = copyPerms(p)
	return nil
}

func copyPerms(p acl.Permissions) acl.Permissions {
	if p == nil {
		return nil
	}
	out := make(acl.Permissions, len(p))
	for role, resources := range p {
		out[role] = make(map[acl.Resource]map[acl.Action]bool, len(resources))
		for res, actions := range resources {
			out[role][res] = make(map[acl.Action]bool, len(actions))
			for act, v := range actions {
				out[role][res][act] = v
			}
		}
	}
	return out
}
