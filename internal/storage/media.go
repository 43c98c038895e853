// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/segmentio/ksuid"

	"newsdesk/internal/slug"
)

// ErrUnsupportedType is returned by Sniff for anything but raster images.
var ErrUnsupportedType = errors.New("unsupported media type")

// allowedTypes maps accepted MIME types to the extension stored.
var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Store is where uploads end up.
type Store interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// Sniff detects the content type of data from its bytes, ignoring the
// client-supplied name and header. Only raster images are accepted.
func Sniff(data []byte) (contentType, ext string, err error) {
	mt := mimetype.Detect(data)
	for m := mt; m != nil; m = m.Parent() {
		if ext, ok := allowedTypes[m.String()]; ok {
			return m.String(), ext, nil
		}
	}
	return "", "", fmt.Errorf("%w: %s", ErrUnsupportedType, mt.String())
}

// Key builds the object key for an upload:
// media/<year>/<month>/<slugged-name>-<ksuid><ext>.
func Key(now time.Time, filename, ext string) string {
	base := slug.Generate(strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)))
	if base == "" {
		base = "upload"
	}
	return fmt.Sprintf("media/%d/%02d/%s-%s%s", now.Year(), now.Month(), base, ksuid.New().String(), ext)
}

// Mock stands in for object storage. It keeps nothing and returns a
// placeholder image URL unique to the upload time.
type Mock struct {
	now func() time.Time
}

// NewMock returns a Mock using the wall clock.
func NewMock() *Mock {
	return &Mock{now: time.Now}
}

// Put returns a placeholder URL.
func (m *Mock) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	return fmt.Sprintf("https://images.unsplash.com/photo-%d?w=400", m.now().UnixMilli()), nil
}
