// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"newsdesk/internal/auth"
	"newsdesk/internal/cache"
	"newsdesk/internal/middleware"
	"newsdesk/internal/models"
	"newsdesk/internal/newsroom"
	"newsdesk/internal/render"
)

// Public groups the reader-facing handlers.
type Public struct {
	renderer  *render.Renderer
	news      *newsroom.Service
	pageCache *cache.PageCache
}

// NewPublic creates a new Public handler group. pageCache may be nil.
func NewPublic(renderer *render.Renderer, news *newsroom.Service, pageCache *cache.PageCache) *Public {
	return &Public{renderer: renderer, news: news, pageCache: pageCache}
}

// Home renders the reader front page, optionally filtered by ?category=.
func (p *Public) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := middleware.SessionFromCtx(ctx)
	site, ok := p.site(w, r, sess)
	if !ok {
		return
	}

	category := newsroom.NormalizeCategory(r.URL.Query().Get("category"))
	key := cache.HomeKey(category)
	if p.serveCached(w, r, sess, key) {
		return
	}

	home, err := p.news.ReaderHome(ctx, category)
	if err != nil {
		slog.Error("reader home failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	p.respond(w, r, sess, key, "home", &render.PageData{
		Title:   "Latest News",
		Section: "home",
		Site:    site,
		Data:    map[string]any{"Home": home},
	})
}

// Article renders a single story with its comments.
func (p *Public) Article(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := middleware.SessionFromCtx(ctx)
	site, ok := p.site(w, r, sess)
	if !ok {
		return
	}

	id := idParam(r)
	key := cache.ArticleKey(id)
	if p.serveCached(w, r, sess, key) {
		return
	}

	article, err := p.news.ArticleView(ctx, sess, id)
	if err != nil {
		slog.Error("article view failed", "id", id, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if article == nil {
		p.NotFound(w, r)
		return
	}

	p.respond(w, r, sess, key, "article", &render.PageData{
		Title:   article.Post.Title,
		Section: "home",
		Site:    site,
		Data: map[string]any{
			"Article": article,
			"Like": render.LikeButton{
				PostID:   id,
				Liked:    article.Liked,
				Count:    article.Post.LikesCount,
				SignedIn: sess.SignedIn(),
			},
		},
	})
}

// Like toggles the viewer's like and swaps in the new button.
func (p *Public) Like(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := middleware.SessionFromCtx(ctx)
	id := idParam(r)

	state, err := p.news.ToggleLike(ctx, sess, id)
	if errors.Is(err, models.ErrNotFound) {
		p.NotFound(w, r)
		return
	}
	if err != nil {
		slog.Error("toggle like failed", "id", id, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if sess.SignedIn() {
		p.invalidate(ctx, id)
	}

	if r.Header.Get("HX-Request") != "true" {
		http.Redirect(w, r, "/news/"+id, http.StatusSeeOther)
		return
	}
	p.renderer.Partial(w, "like_button", render.LikeButton{
		PostID:   id,
		Liked:    state.Liked,
		Count:    state.Count,
		SignedIn: sess.SignedIn(),
	})
}

// Comment posts a comment and returns to the article.
func (p *Public) Comment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := middleware.SessionFromCtx(ctx)
	id := idParam(r)
	back := "/news/" + id

	form := commentForm{Content: r.FormValue("content")}
	if msg := check(form); msg != "" {
		middleware.Redirect(w, r, withQuery(back, "error", msg)+"#comments")
		return
	}

	c, err := p.news.AddComment(ctx, sess, id, form.Content)
	switch {
	case errors.Is(err, newsroom.ErrSignInRequired):
		middleware.Redirect(w, r, "/login")
		return
	case errors.Is(err, models.ErrNotFound):
		p.NotFound(w, r)
		return
	case err != nil:
		fail(w, r, back, err)
		return
	}

	notice := "Comment submitted for approval."
	if c.IsApproved {
		notice = "Comment posted."
		p.invalidate(ctx, id)
	}
	middleware.Redirect(w, r, withQuery(back, "notice", notice)+"#comments")
}

// NotFound renders the 404 page.
func (p *Public) NotFound(w http.ResponseWriter, r *http.Request) {
	p.renderer.PageStatus(w, r, http.StatusNotFound, "not_found", &render.PageData{
		Title: "Page Not Found",
	})
}

// Pinger reports whether a backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

// Ping calls f.
func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// Health reports the state of each named backend as JSON. Any failing
// backend turns the response into a 503.
func Health(backends map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		body := map[string]string{"status": "ok"}
		for name, b := range backends {
			if err := b.Ping(r.Context()); err != nil {
				slog.Warn("health check failed", "backend", name, "error", err)
				body[name] = "unreachable"
				body["status"] = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			body[name] = "ok"
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}
}

// site loads the settings and answers with the maintenance page when the
// site is closed to the viewer. ok is false once a response was written.
func (p *Public) site(w http.ResponseWriter, r *http.Request, sess auth.Session) (models.Settings, bool) {
	site, err := p.news.Settings(r.Context())
	if err != nil {
		slog.Warn("load settings failed", "error", err)
		site = models.DefaultSettings()
	}
	if site.MaintenanceMode && !(sess.SignedIn() && sess.Identity.CanManage()) {
		w.Header().Set("Retry-After", "3600")
		p.renderer.PageStatus(w, r, http.StatusServiceUnavailable, "maintenance", &render.PageData{
			Title: "Maintenance",
			Site:  site,
		})
		return site, false
	}
	return site, true
}

// cacheable reports whether the response is the same for every anonymous
// visitor. Flash parameters and HTMX fragments are never cached.
func (p *Public) cacheable(r *http.Request, sess auth.Session) bool {
	if p.pageCache == nil || sess.State != auth.StateAnonymous {
		return false
	}
	if r.Method != http.MethodGet || r.Header.Get("HX-Request") == "true" {
		return false
	}
	q := r.URL.Query()
	return !q.Has("notice") && !q.Has("error") && !q.Has("denied")
}

func (p *Public) serveCached(w http.ResponseWriter, r *http.Request, sess auth.Session, key string) bool {
	if !p.cacheable(r, sess) {
		return false
	}
	html, ok := p.pageCache.Get(r.Context(), key)
	if !ok {
		return false
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Cache", "HIT")
	w.Write(html)
	return true
}

// respond renders the page, storing it in the cache when it is shared.
func (p *Public) respond(w http.ResponseWriter, r *http.Request, sess auth.Session, key, name string, data *render.PageData) {
	data.Session = sess
	if !p.cacheable(r, sess) {
		p.renderer.Page(w, r, name, data)
		return
	}
	html, err := p.renderer.Bytes(r, name, data)
	if err != nil {
		slog.Error("render page failed", "page", name, "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	p.pageCache.Set(r.Context(), key, html)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Cache", "MISS")
	w.Write(html)
}

func (p *Public) invalidate(ctx context.Context, id string) {
	if p.pageCache != nil {
		p.pageCache.InvalidateArticle(ctx, id)
	}
}
