// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"net/http"
	"strings"

	"newsdesk/internal/acl"
	"newsdesk/internal/middleware"
	"newsdesk/internal/models"
	"newsdesk/internal/newsroom"
)

// Users renders the user directory with optional ?q= search.
func (a *Admin) Users(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	users, err := a.news.SearchUsers(ctx, q)
	stats, serr := a.news.UserStats(ctx)
	a.page(w, r, "users", "Users", "users", map[string]any{
		"Users":     users,
		"Stats":     stats,
		"Query":     q,
		"CanUpdate": a.can(r, acl.ResourceUsers, acl.ActionUpdate),
		"CanDelete": a.can(r, acl.ResourceUsers, acl.ActionDelete),
	}, errors.Join(err, serr))
}

// UserToggle activates or deactivates an account.
func (a *Admin) UserToggle(w http.ResponseWriter, r *http.Request) {
	active, err := a.news.ToggleUserActive(r.Context(), actor(r), idParam(r))
	if err != nil {
		fail(w, r, "/admin/users", err)
		return
	}
	notice := "User deactivated."
	if active {
		notice = "User activated."
	}
	middleware.Redirect(w, r, withQuery("/admin/users", "notice", notice))
}

// UserDelete removes an account.
func (a *Admin) UserDelete(w http.ResponseWriter, r *http.Request) {
	if err := a.news.DeleteUser(r.Context(), actor(r), idParam(r)); err != nil {
		fail(w, r, "/admin/users", err)
		return
	}
	middleware.Redirect(w, r, withQuery("/admin/users", "notice", "User deleted."))
}

// Comments renders the moderation queue, optionally for one ?post=.
func (a *Admin) Comments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	selected := r.URL.Query().Get("post")

	comments, err := a.news.ListComments(ctx, selected)
	stats, serr := a.news.CommentStats(ctx)
	commented, cerr := a.news.CommentedPosts(ctx)
	posts, perr := a.news.ListPosts(ctx)

	a.page(w, r, "comments", "Comments", "comments", map[string]any{
		"Comments":  comments,
		"Stats":     stats,
		"Posts":     commented,
		"Selected":  selected,
		"Titles":    titles(posts),
		"CanUpdate": a.can(r, acl.ResourceComments, acl.ActionUpdate),
		"CanDelete": a.can(r, acl.ResourceComments, acl.ActionDelete),
	}, errors.Join(err, serr, cerr, perr))
}

// CommentApprove publishes a pending comment.
func (a *Admin) CommentApprove(w http.ResponseWriter, r *http.Request) {
	back := commentsBack(r)
	if err := a.news.ApproveComment(r.Context(), actor(r), idParam(r)); err != nil {
		fail(w, r, back, err)
		return
	}
	a.invalidateAll(r.Context())
	middleware.Redirect(w, r, withQuery(back, "notice", "Comment approved."))
}

// CommentDelete removes a comment.
func (a *Admin) CommentDelete(w http.ResponseWriter, r *http.Request) {
	back := commentsBack(r)
	if err := a.news.DeleteComment(r.Context(), actor(r), idParam(r)); err != nil {
		fail(w, r, back, err)
		return
	}
	a.invalidateAll(r.Context())
	middleware.Redirect(w, r, withQuery(back, "notice", "Comment deleted."))
}

// commentsBack keeps the selected post filter across a moderation action.
func commentsBack(r *http.Request) string {
	if post := r.URL.Query().Get("post"); post != "" {
		return withQuery("/admin/comments", "post", post)
	}
	return "/admin/comments"
}

// Likes renders the likes overview.
func (a *Admin) Likes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	summary, err := a.news.LikesOverview(ctx)
	users, uerr := a.news.SearchUsers(ctx, "")
	posts, perr := a.news.ListPosts(ctx)

	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.DisplayName
	}
	for _, l := range summary.Recent {
		if names[l.UserID] == "" {
			names[l.UserID] = "Former user"
		}
	}

	a.page(w, r, "likes", "Likes", "likes", map[string]any{
		"Summary": summary,
		"Users":   names,
		"Titles":  titles(posts),
	}, errors.Join(err, uerr, perr))
}

// Logs renders the activity log with ?q= and ?action= filters.
func (a *Admin) Logs(w http.ResponseWriter, r *http.Request) {
	f := newsroom.LogFilter{
		Query:  strings.TrimSpace(r.URL.Query().Get("q")),
		Action: r.URL.Query().Get("action"),
	}
	if f.Action != "" && f.Action != "all" {
		if _, err := models.ParseAction(f.Action); err != nil {
			f.Action = "all"
		}
	}

	page, err := a.news.SearchLogs(r.Context(), f)
	if page == nil {
		page = &newsroom.LogPage{}
	}
	a.page(w, r, "logs", "Activity Logs", "logs", map[string]any{
		"Page":    page,
		"Query":   f.Query,
		"Action":  f.Action,
		"Actions": models.Actions,
	}, err)
}

// titles maps post ids to titles for the moderation views.
func titles(posts []models.Article) map[string]string {
	m := make(map[string]string, len(posts))
	for _, p := range posts {
		m[p.ID] = p.Title
	}
	return m
}
