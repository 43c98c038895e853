// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// newsdesk server. Routes are split into the reader site, the guest-only
// sign-in pages and the role-gated admin console.
package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"newsdesk/internal/acl"
	"newsdesk/internal/handlers"
	"newsdesk/internal/middleware"
	"newsdesk/internal/models"
	"newsdesk/web"
)

// Deps are the collaborators the routes are wired to.
type Deps struct {
	Sessions      middleware.SessionRestorer
	Matrix        *acl.Matrix
	Admin         *handlers.Admin
	Auth          *handlers.Auth
	Public        *handlers.Public
	Health        http.HandlerFunc
	AuthLimiter   *middleware.RateLimiter // may be nil
	SecureCookies bool
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(d Deps) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	// Health check and assets skip sessions and CSRF.
	r.Get("/health", d.Health)
	r.Handle("/static/*", staticHandler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.LoadSession(d.Sessions))
		r.Use(middleware.NewCSRF(d.SecureCookies))

		// Reader site.
		r.Get("/", d.Public.Home)
		r.Get("/news/{id}", d.Public.Article)
		r.Post("/news/{id}/like", d.Public.Like)
		r.Post("/news/{id}/comments", d.Public.Comment)

		// Sign-in pages, only while nobody is signed in.
		r.Group(func(r chi.Router) {
			r.Use(middleware.GuestOnly)
			r.Get("/login", d.Auth.LoginPage)
			r.Get("/register", d.Auth.RegisterPage)
			r.Group(func(r chi.Router) {
				if d.AuthLimiter != nil {
					r.Use(d.AuthLimiter.Middleware)
				}
				r.Post("/login", d.Auth.LoginSubmit)
				r.Post("/register", d.Auth.RegisterSubmit)
			})
		})
		r.Post("/logout", d.Auth.Logout)

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleCreator))
			adminRoutes(r, d)
		})

		// Everything else, with the session loaded for the page shell.
		r.NotFound(d.Public.NotFound)
	})

	return r
}

// adminRoutes registers the console. Reads are gated by the permission
// matrix here; writes are checked again by the newsroom service.
func adminRoutes(r chi.Router, d Deps) {
	a := d.Admin
	perm := func(res acl.Resource, act acl.Action) func(http.Handler) http.Handler {
		return middleware.RequirePermission(d.Matrix, res, act)
	}

	r.Get("/", a.Dashboard)

	r.Route("/posts", func(r chi.Router) {
		r.Use(perm(acl.ResourcePosts, acl.ActionRead))
		r.Get("/", a.PostsList)
		r.With(perm(acl.ResourcePosts, acl.ActionCreate)).Get("/new", a.PostNew)
		r.Post("/", a.PostCreate)
		r.Post("/media", a.MediaUpload)
		r.With(perm(acl.ResourcePosts, acl.ActionUpdate)).Get("/{id}/edit", a.PostEdit)
		r.Put("/{id}", a.PostUpdate)
		r.Post("/{id}", a.PostUpdate)
		r.Delete("/{id}", a.PostDelete)
		r.Post("/{id}/delete", a.PostDelete)
	})

	r.Route("/users", func(r chi.Router) {
		r.Use(perm(acl.ResourceUsers, acl.ActionRead))
		r.Get("/", a.Users)
		r.Post("/{id}/toggle", a.UserToggle)
		r.Delete("/{id}", a.UserDelete)
		r.Post("/{id}/delete", a.UserDelete)
	})

	r.Route("/comments", func(r chi.Router) {
		r.Use(perm(acl.ResourceComments, acl.ActionRead))
		r.Get("/", a.Comments)
		r.Post("/{id}/approve", a.CommentApprove)
		r.Delete("/{id}", a.CommentDelete)
		r.Post("/{id}/delete", a.CommentDelete)
	})

	r.With(perm(acl.ResourcePosts, acl.ActionRead)).Get("/likes", a.Likes)
	r.Get("/logs", a.Logs)

	r.Route("/settings", func(r chi.Router) {
		r.Use(perm(acl.ResourceSettings, acl.ActionRead))
		r.Get("/", a.Settings)
		r.Post("/", a.SettingsSave)
	})

	r.Route("/acl", func(r chi.Router) {
		r.Use(middleware.RequireRoles(models.RoleAdmin))
		r.Get("/", a.ACL)
		r.Post("/", a.ACLSave)
	})

	// Unknown console paths fall back to the dashboard.
	r.NotFound(a.Dashboard)
}

// staticHandler serves the embedded web/static tree under /static/.
func staticHandler() http.Handler {
	sub, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		panic("router: embedded static tree missing: " + err.Error())
	}
	fileServer := http.StripPrefix("/static/", http.FileServerFS(sub))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		fileServer.ServeHTTP(w, r)
	})
}
