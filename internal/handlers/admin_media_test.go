// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"newsdesk/internal/models"
)

// pngHeader is enough of a PNG for content sniffing.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func uploadRequest(t *testing.T, field, filename string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatal(err)
	}
	fw.Write(data)
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/admin/posts/media", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

type failingMedia struct{}

func (failingMedia) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	return "", errors.New("bucket unavailable")
}

func TestMediaUpload(t *testing.T) {
	env := newTestEnv(t)

	rr := serve(env.Admin.MediaUpload, as(uploadRequest(t, "file", "Front Page.png", pngHeader), env.identity(t, "2")))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d; body: %s", rr.Code, rr.Body.String())
	}
	body := rr.Body.String()
	if !strings.Contains(body, `class="media-item"`) || !strings.Contains(body, "https://images.unsplash.com/photo-") {
		t.Errorf("unexpected fragment: %s", body)
	}
	if !strings.Contains(body, `name="media_urls"`) {
		t.Error("fragment should add a media_urls field to the editor form")
	}
}

func TestMediaUploadRejects(t *testing.T) {
	tests := []struct {
		name   string
		ident  string
		req    func(t *testing.T) *http.Request
		setup  func(env *testEnv)
		status int
		msg    string
	}{
		{
			name:  "not an image",
			ident: "1",
			req: func(t *testing.T) *http.Request {
				return uploadRequest(t, "file", "notes.png", []byte("just some text pretending"))
			},
			status: http.StatusUnsupportedMediaType,
			msg:    "Only JPEG, PNG, GIF and WebP images are allowed.",
		},
		{
			name:  "missing file",
			ident: "1",
			req: func(t *testing.T) *http.Request {
				return uploadRequest(t, "other", "a.png", pngHeader)
			},
			status: http.StatusBadRequest,
			msg:    "No file provided.",
		},
		{
			name:  "over the configured limit",
			ident: "1",
			req: func(t *testing.T) *http.Request {
				return uploadRequest(t, "file", "big.png", append(bytes.Clone(pngHeader), make([]byte, 2<<20)...))
			},
			setup: func(env *testEnv) {
				s := models.DefaultSettings()
				s.MaxUploadSizeMB = 1
				env.Mem.Settings.Save(context.Background(), s)
			},
			status: http.StatusRequestEntityTooLarge,
			msg:    "File too large. Maximum size is 1 MB.",
		},
		{
			name:  "reader",
			ident: "3",
			req: func(t *testing.T) *http.Request {
				return uploadRequest(t, "file", "a.png", pngHeader)
			},
			status: http.StatusForbidden,
			msg:    "You do not have permission to upload media.",
		},
		{
			name:  "storage failure",
			ident: "1",
			req: func(t *testing.T) *http.Request {
				return uploadRequest(t, "file", "a.png", pngHeader)
			},
			setup: func(env *testEnv) {
				env.Admin.media = failingMedia{}
			},
			status: http.StatusBadGateway,
			msg:    "Failed to upload file.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			if tt.setup != nil {
				tt.setup(env)
			}
			rr := serve(env.Admin.MediaUpload, as(tt.req(t), env.identity(t, tt.ident)))
			if rr.Code != tt.status {
				t.Fatalf("status = %d, want %d; body: %s", rr.Code, tt.status, rr.Body.String())
			}
			if !strings.Contains(rr.Body.String(), tt.msg) {
				t.Errorf("body = %q, want %q", rr.Body.String(), tt.msg)
			}
		})
	}
}
