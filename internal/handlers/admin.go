// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"newsdesk/internal/acl"
	"newsdesk/internal/cache"
	"newsdesk/internal/middleware"
	"newsdesk/internal/models"
	"newsdesk/internal/newsroom"
	"newsdesk/internal/render"
	"newsdesk/internal/storage"
)

// Admin groups all admin console HTTP handlers.
type Admin struct {
	renderer  *render.Renderer
	news      *newsroom.Service
	matrix    *acl.Matrix
	media     storage.Store
	pageCache *cache.PageCache
}

// NewAdmin creates a new Admin handler group. pageCache may be nil.
func NewAdmin(renderer *render.Renderer, news *newsroom.Service, matrix *acl.Matrix, media storage.Store, pageCache *cache.PageCache) *Admin {
	return &Admin{
		renderer:  renderer,
		news:      news,
		matrix:    matrix,
		media:     media,
		pageCache: pageCache,
	}
}

// actor returns the signed-in identity. Routes are guarded by
// RequireRoles, so it is never nil there.
func actor(r *http.Request) *models.Identity {
	return middleware.SessionFromCtx(r.Context()).Identity
}

// can checks the matrix for the current viewer.
func (a *Admin) can(r *http.Request, res acl.Resource, act acl.Action) bool {
	return a.matrix.Allowed(middleware.SessionFromCtx(r.Context()).Role(), res, act)
}

// page renders an admin page. A load error becomes a flash so the shell
// still renders.
func (a *Admin) page(w http.ResponseWriter, r *http.Request, name, title, section string, data map[string]any, loadErr error) {
	pd := &render.PageData{Title: title, Section: section, Data: data}
	if loadErr != nil {
		pd.Flashes = append(pd.Flashes, render.Flash{Type: "error", Message: errorMessage(r, loadErr)})
	}
	a.renderer.Page(w, r, name, pd)
}

// Dashboard renders the admin overview.
func (a *Admin) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := a.news.Dashboard(r.Context())
	if d == nil {
		d = &newsroom.Dashboard{}
	}
	a.page(w, r, "dashboard", "Dashboard", "dashboard", map[string]any{"Dashboard": d}, err)
}

// PostsList renders the article table.
func (a *Admin) PostsList(w http.ResponseWriter, r *http.Request) {
	posts, err := a.news.ListPosts(r.Context())
	a.page(w, r, "posts_list", "Posts", "posts", map[string]any{
		"Posts":     posts,
		"CanCreate": a.can(r, acl.ResourcePosts, acl.ActionCreate),
		"CanUpdate": a.can(r, acl.ResourcePosts, acl.ActionUpdate),
		"CanDelete": a.can(r, acl.ResourcePosts, acl.ActionDelete),
	}, err)
}

// PostNew renders an empty editor.
func (a *Admin) PostNew(w http.ResponseWriter, r *http.Request) {
	a.postForm(w, r, http.StatusOK, postForm{}, true, "")
}

// PostCreate saves a new article.
func (a *Admin) PostCreate(w http.ResponseWriter, r *http.Request) {
	form := parsePostForm(r)
	if msg := check(form); msg != "" {
		a.postForm(w, r, http.StatusUnprocessableEntity, form, true, msg)
		return
	}

	post, err := a.news.CreatePost(r.Context(), actor(r), form.input())
	if err != nil {
		fail(w, r, "/admin/posts", err)
		return
	}
	a.invalidate(r.Context(), post.ID)
	middleware.Redirect(w, r, withQuery("/admin/posts", "notice", "Post created."))
}

// PostEdit renders the editor for an existing article.
func (a *Admin) PostEdit(w http.ResponseWriter, r *http.Request) {
	post, err := a.news.GetPost(r.Context(), idParam(r))
	if err != nil {
		fail(w, r, "/admin/posts", err)
		return
	}
	if post == nil {
		fail(w, r, "/admin/posts", models.ErrNotFound)
		return
	}
	a.postForm(w, r, http.StatusOK, postFormFrom(post), false, "")
}

// PostUpdate saves changes to an article.
func (a *Admin) PostUpdate(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	form := parsePostForm(r)
	form.ID = id
	if msg := check(form); msg != "" {
		a.postForm(w, r, http.StatusUnprocessableEntity, form, false, msg)
		return
	}

	if _, err := a.news.UpdatePost(r.Context(), actor(r), id, form.input()); err != nil {
		fail(w, r, "/admin/posts", err)
		return
	}
	a.invalidate(r.Context(), id)
	middleware.Redirect(w, r, withQuery("/admin/posts", "notice", "Post updated."))
}

// PostDelete removes an article.
func (a *Admin) PostDelete(w http.ResponseWriter, r *http.Request) {
	id := idParam(r)
	if err := a.news.DeletePost(r.Context(), actor(r), id); err != nil {
		fail(w, r, "/admin/posts", err)
		return
	}
	a.invalidate(r.Context(), id)
	middleware.Redirect(w, r, withQuery("/admin/posts", "notice", "Post deleted."))
}

func (a *Admin) postForm(w http.ResponseWriter, r *http.Request, status int, form postForm, isNew bool, msg string) {
	title := "Edit Post"
	if isNew {
		title = "New Post"
	}
	settings, err := a.news.Settings(r.Context())
	if err != nil {
		slog.Warn("load settings failed", "error", err)
		settings = models.DefaultSettings()
	}
	a.renderer.PageStatus(w, r, status, "post_form", &render.PageData{
		Title:   title,
		Section: "posts",
		Data: map[string]any{
			"Form":        form,
			"IsNew":       isNew,
			"Error":       msg,
			"MaxUploadMB": settings.MaxUploadSizeMB,
		},
	})
}

// invalidate drops the cached reader pages that show the article.
func (a *Admin) invalidate(ctx context.Context, id string) {
	if a.pageCache != nil {
		a.pageCache.InvalidateArticle(ctx, id)
	}
}

// invalidateAll drops every cached reader page.
func (a *Admin) invalidateAll(ctx context.Context) {
	if a.pageCache != nil {
		a.pageCache.InvalidateAll(ctx)
	}
}
