// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render turns page data into HTML. It picks the reader or admin
// shell from the viewer's role and supports full-page and HTMX partial
// rendering, detected via the HX-Request header.
package render

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"newsdesk/internal/auth"
	"newsdesk/internal/markdown"
	"newsdesk/internal/middleware"
	"newsdesk/internal/models"
)

//go:embed templates
var templateFS embed.FS

// Shell is the outer layout a page is rendered in.
type Shell int

const (
	// ShellReader is the public site layout.
	ShellReader Shell = iota
	// ShellAdmin is the console layout with the sidebar.
	ShellAdmin
)

// ShellFor selects the layout for a role. An empty role (anonymous) gets
// the reader shell.
func ShellFor(role models.Role) Shell {
	switch role {
	case models.RoleAdmin, models.RoleCreator:
		return ShellAdmin
	case models.RoleReader:
		return ShellReader
	}
	return ShellReader
}

// String returns the name of the layout template.
func (s Shell) String() string {
	if s == ShellAdmin {
		return "shell_admin"
	}
	return "shell_reader"
}

// bareShell wraps the standalone pages.
const bareShell = "shell_bare"

// standalonePages render without the role shells.
var standalonePages = map[string]bool{
	"login":     true,
	"register":  true,
	"not_found": true,
}

// PageData holds all data passed to page templates.
type PageData struct {
	Title     string          // Page title for <title> tag
	Section   string          // Active navigation entry
	Session   auth.Session    // Current viewer
	Site      models.Settings // Site name, description and timezone
	CSRFToken string          // Empty on anonymous pages so they can be cached
	Data      map[string]any  // Page-specific data
	Flashes   []Flash         // One-time notification messages
}

// Local formats t in the site timezone.
func (p *PageData) Local(t time.Time) string {
	return t.In(p.Site.Location()).Format("Jan 2, 2006 03:04 PM")
}

// Day formats the date part of t in the site timezone.
func (p *PageData) Day(t time.Time) string {
	return t.In(p.Site.Location()).Format("Jan 2, 2006")
}

// Flash represents a one-time notification message displayed to the user.
type Flash struct {
	Type    string // "success", "error", "info"
	Message string
}

// LikeButton is the data of the like_button partial.
type LikeButton struct {
	PostID   string
	Liked    bool
	Count    int
	SignedIn bool
}

// SiteSource provides the current site settings.
type SiteSource interface {
	Settings(ctx context.Context) (models.Settings, error)
}

// Renderer handles template parsing and execution.
type Renderer struct {
	pages    map[string]*template.Template
	partials *template.Template
	site     SiteSource
}

var funcMap = template.FuncMap{
	"markdown": markdown.Render,
	"join":     strings.Join,
	"activeClass": func(current, target string) string {
		if current == target {
			return "nav-link active"
		}
		return "nav-link"
	},
	"lower": strings.ToLower,
}

// New parses every page template together with the layouts and partials.
func New(site SiteSource) (*Renderer, error) {
	rn := &Renderer{pages: make(map[string]*template.Template), site: site}

	partials, err := template.New("partials").Funcs(funcMap).ParseFS(templateFS, "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse partials: %w", err)
	}
	rn.partials = partials

	entries, err := fs.ReadDir(templateFS, "templates/pages")
	if err != nil {
		return nil, fmt.Errorf("read page templates: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".html" {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ".html")
		tmpl, err := template.New(name).Funcs(funcMap).ParseFS(templateFS,
			"templates/layouts/*.html",
			"templates/partials/*.html",
			"templates/pages/"+e.Name(),
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		rn.pages[name] = tmpl
	}

	return rn, nil
}

// Page renders a page with status 200.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, name string, data *PageData) {
	rn.PageStatus(w, r, http.StatusOK, name, data)
}

// PageStatus renders a full page, or only its "content" block for HTMX
// requests.
func (rn *Renderer) PageStatus(w http.ResponseWriter, r *http.Request, status int, name string, data *PageData) {
	var buf bytes.Buffer
	var err error
	if isHTMX(r) {
		err = rn.execute(&buf, r, name, "content", data)
	} else {
		err = rn.execute(&buf, r, name, "", data)
	}
	if err != nil {
		slog.Error("render page failed", "page", name, "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// Bytes renders a full page into memory, for the page cache.
func (rn *Renderer) Bytes(r *http.Request, name string, data *PageData) ([]byte, error) {
	var buf bytes.Buffer
	if err := rn.execute(&buf, r, name, "", data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Partial renders a single partial template, such as the like button.
func (rn *Renderer) Partial(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := rn.partials.ExecuteTemplate(&buf, name, data); err != nil {
		slog.Error("render partial failed", "partial", name, "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// execute fills in the request-derived fields and runs the template. An
// empty block selects the layout for the page.
func (rn *Renderer) execute(buf *bytes.Buffer, r *http.Request, name, block string, data *PageData) error {
	tmpl, ok := rn.pages[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	rn.prepare(r, name, data)

	if block == "" {
		block = ShellFor(data.Session.Role()).String()
		if standalonePages[name] {
			block = bareShell
		}
	}
	return tmpl.ExecuteTemplate(buf, block, data)
}

// prepare injects the session, site settings, CSRF token and query flashes.
func (rn *Renderer) prepare(r *http.Request, name string, data *PageData) {
	ctx := r.Context()
	if data.Session.State == auth.StateUnloaded {
		data.Session = middleware.SessionFromCtx(ctx)
	}
	if data.Site.SiteName == "" {
		data.Site = models.DefaultSettings()
		if rn.site != nil {
			if s, err := rn.site.Settings(ctx); err == nil {
				data.Site = s
			} else {
				slog.Warn("load site settings failed", "error", err)
			}
		}
	}
	if data.Session.SignedIn() || standalonePages[name] {
		data.CSRFToken = middleware.CSRFTokenFromCtx(ctx)
	}
	data.Flashes = append(data.Flashes, FlashesFromQuery(r)...)
}

// FlashesFromQuery turns the notice, error and denied query parameters set
// by redirects into flashes.
func FlashesFromQuery(r *http.Request) []Flash {
	q := r.URL.Query()
	var out []Flash
	if msg := q.Get("notice"); msg != "" {
		out = append(out, Flash{Type: "success", Message: msg})
	}
	if msg := q.Get("error"); msg != "" {
		out = append(out, Flash{Type: "error", Message: msg})
	}
	if res := q.Get("denied"); res != "" {
		out = append(out, Flash{Type: "error", Message: "You do not have permission to access " + res + "."})
	}
	return out
}

// isHTMX returns true if the request was made by HTMX (has HX-Request header).
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
