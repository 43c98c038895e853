// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the HTTP handlers for the reader site, the
// sign-in pages and the admin console. Handlers are grouped by audience:
// Auth, Public and Admin.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"newsdesk/internal/middleware"
	"newsdesk/internal/models"
	"newsdesk/internal/newsroom"
)

// errorMessage turns a service error into text safe to show the viewer.
// Unknown errors are logged and replaced by a generic message.
func errorMessage(r *http.Request, err error) string {
	switch {
	case errors.Is(err, newsroom.ErrForbidden):
		return "You do not have permission to do that."
	case errors.Is(err, models.ErrNotFound):
		return "That item no longer exists."
	case errors.Is(err, newsroom.ErrSelfAction):
		return "You cannot do that to your own account."
	case errors.Is(err, newsroom.ErrSignInRequired):
		return "Please sign in first."
	case errors.Is(err, newsroom.ErrCommentsClosed):
		return "Comments are disabled."
	case errors.Is(err, newsroom.ErrEmptyComment):
		return "Comment cannot be empty."
	case errors.Is(err, newsroom.ErrInvalidSettings):
		return upperFirst(err.Error()) + "."
	}
	slog.Error("request failed",
		"path", r.URL.Path,
		"request_id", middleware.RequestIDFromCtx(r.Context()),
		"error", err,
	)
	return "Something went wrong. Please try again."
}

// fail redirects back with the error as a flash.
func fail(w http.ResponseWriter, r *http.Request, back string, err error) {
	middleware.Redirect(w, r, withQuery(back, "error", errorMessage(r, err)))
}

// withQuery appends key=value to path.
func withQuery(path, key, value string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + key + "=" + url.QueryEscape(value)
}

// idParam returns the {id} route parameter.
func idParam(r *http.Request) string {
	return chi.URLParam(r, "id")
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
