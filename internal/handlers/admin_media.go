// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"time"

	"newsdesk/internal/acl"
	"newsdesk/internal/models"
	"newsdesk/internal/storage"
)

// multipartOverhead covers form boundaries and headers around the file.
const multipartOverhead = 64 << 10

// MediaUpload stores an image for the post editor and returns the media
// list item to append. The size limit comes from the site settings.
func (a *Admin) MediaUpload(w http.ResponseWriter, r *http.Request) {
	if !a.can(r, acl.ResourcePosts, acl.ActionCreate) && !a.can(r, acl.ResourcePosts, acl.ActionUpdate) {
		writeMediaError(w, "You do not have permission to upload media.", http.StatusForbidden)
		return
	}

	ctx := r.Context()
	settings, err := a.news.Settings(ctx)
	if err != nil {
		slog.Warn("load settings failed", "error", err)
		settings = models.DefaultSettings()
	}
	limit := settings.MaxUploadBytes()
	tooLarge := fmt.Sprintf("File too large. Maximum size is %d MB.", settings.MaxUploadSizeMB)

	r.Body = http.MaxBytesReader(w, r.Body, limit+multipartOverhead)
	if err := r.ParseMultipartForm(limit); err != nil {
		writeMediaError(w, tooLarge, http.StatusRequestEntityTooLarge)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeMediaError(w, "No file provided.", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if header.Size > limit {
		writeMediaError(w, tooLarge, http.StatusRequestEntityTooLarge)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeMediaError(w, "Failed to read file.", http.StatusInternalServerError)
		return
	}

	contentType, ext, err := storage.Sniff(data)
	if err != nil {
		writeMediaError(w, "Only JPEG, PNG, GIF and WebP images are allowed.", http.StatusUnsupportedMediaType)
		return
	}

	key := storage.Key(time.Now(), header.Filename, ext)
	url, err := a.media.Put(ctx, key, contentType, data)
	if err != nil {
		slog.Error("media upload failed", "key", key, "error", err)
		writeMediaError(w, "Failed to upload file.", http.StatusBadGateway)
		return
	}

	slog.Info("media uploaded", "key", key, "type", contentType, "size", len(data), "user_id", actor(r).ID)
	a.renderer.Partial(w, "media_item", url)
}

// writeMediaError answers an upload with a short HTML error fragment.
func writeMediaError(w http.ResponseWriter, msg string, status int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprintf(w, `<li class="flash flash-error">%s</li>`, html.EscapeString(msg))
}
