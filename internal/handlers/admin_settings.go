// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"newsdesk/internal/acl"
	"newsdesk/internal/middleware"
	"newsdesk/internal/models"
	"newsdesk/internal/newsroom"
	"newsdesk/internal/render"
)

// timezones offered by the settings form. The stored value is always
// added if missing.
var timezones = []string{
	"UTC",
	"Asia/Kolkata",
	"Asia/Dubai",
	"Asia/Singapore",
	"Asia/Tokyo",
	"Europe/London",
	"Europe/Berlin",
	"Europe/Bucharest",
	"America/New_York",
	"America/Chicago",
	"America/Los_Angeles",
	"Australia/Sydney",
}

// Settings renders the site settings form.
func (a *Admin) Settings(w http.ResponseWriter, r *http.Request) {
	settings, err := a.news.Settings(r.Context())
	if err != nil {
		settings = models.DefaultSettings()
	}
	a.settingsPage(w, r, http.StatusOK, settings, "", err)
}

// SettingsSave validates and stores the site settings. Every cached reader
// page is dropped since names, comment rules and maintenance all show there.
func (a *Admin) SettingsSave(w http.ResponseWriter, r *http.Request) {
	form := parseSettingsForm(r)
	if msg := check(form); msg != "" {
		a.settingsPage(w, r, http.StatusUnprocessableEntity, form.settings(), msg, nil)
		return
	}

	_, err := a.news.SaveSettings(r.Context(), actor(r), form.settings())
	switch {
	case errors.Is(err, newsroom.ErrInvalidSettings):
		a.settingsPage(w, r, http.StatusUnprocessableEntity, form.settings(), errorMessage(r, err), nil)
		return
	case err != nil:
		fail(w, r, "/admin/settings", err)
		return
	}

	a.invalidateAll(r.Context())
	slog.Info("settings saved", "user_id", actor(r).ID)
	middleware.Redirect(w, r, withQuery("/admin/settings", "notice", "Settings saved."))
}

func (a *Admin) settingsPage(w http.ResponseWriter, r *http.Request, status int, s models.Settings, msg string, loadErr error) {
	zones := timezones
	if s.Timezone != "" && !slices.Contains(zones, s.Timezone) {
		zones = append(slices.Clone(zones), s.Timezone)
	}
	pd := &render.PageData{
		Title:   "Settings",
		Section: "settings",
		Data: map[string]any{
			"Settings":       s,
			"Error":          msg,
			"CanEdit":        a.can(r, acl.ResourceSettings, acl.ActionUpdate),
			"Timezones":      zones,
			"MaxUploadLimit": newsroom.MaxUploadLimitMB,
		},
	}
	if loadErr != nil {
		pd.Flashes = append(pd.Flashes, render.Flash{Type: "error", Message: errorMessage(r, loadErr)})
	}
	a.renderer.PageStatus(w, r, status, "settings", pd)
}

type aclCell struct {
	Key     string
	Allowed bool
}

type aclResourceRow struct {
	Resource acl.Resource
	Cells    []aclCell
}

type aclRoleRows struct {
	Role      models.Role
	Locked    bool
	Resources []aclResourceRow
}

type aclGranted struct {
	Resource acl.Resource
	Granted  int
}

type aclOverview struct {
	Role      models.Role
	Resources []aclGranted
}

// aclRoles is the display order of the matrix.
var aclRoles = []models.Role{models.RoleAdmin, models.RoleCreator, models.RoleReader}

// ACL renders the permission matrix editor.
func (a *Admin) ACL(w http.ResponseWriter, r *http.Request) {
	var overview []aclOverview
	var rows []aclRoleRows
	for _, role := range aclRoles {
		ov := aclOverview{Role: role}
		row := aclRoleRows{Role: role, Locked: role == models.RoleAdmin}
		for _, res := range acl.Resources {
			ov.Resources = append(ov.Resources, aclGranted{Resource: res, Granted: a.matrix.Granted(role, res)})
			rr := aclResourceRow{Resource: res}
			for _, act := range acl.Actions {
				rr.Cells = append(rr.Cells, aclCell{
					Key:     permKey(role, res, act),
					Allowed: a.matrix.Allowed(role, res, act),
				})
			}
			row.Resources = append(row.Resources, rr)
		}
		overview = append(overview, ov)
		rows = append(rows, row)
	}

	a.page(w, r, "acl", "Access Control", "acl", map[string]any{
		"Overview":    overview,
		"Rows":        rows,
		"Actions":     acl.Actions,
		"ActionCount": len(acl.Actions),
	}, nil)
}

// ACLSave replaces the editable rows of the matrix with the submitted
// checkboxes. Unchecked boxes are not submitted and become false.
func (a *Admin) ACLSave(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		fail(w, r, "/admin/acl", err)
		return
	}
	perms := make(acl.Permissions)
	for _, v := range r.PostForm["perm"] {
		parts := strings.Split(strings.TrimSpace(v), ":")
		if len(parts) != 3 {
			continue
		}
		role, res, act := models.Role(parts[0]), acl.Resource(parts[1]), acl.Action(parts[2])
		if perms[role] == nil {
			perms[role] = make(map[acl.Resource]map[acl.Action]bool)
		}
		if perms[role][res] == nil {
			perms[role][res] = make(map[acl.Action]bool)
		}
		perms[role][res][act] = true
	}

	a.matrix.Apply(perms)
	if err := a.matrix.Save(r.Context()); err != nil {
		fail(w, r, "/admin/acl", err)
		return
	}
	slog.Info("permissions saved", "user_id", actor(r).ID)
	middleware.Redirect(w, r, withQuery("/admin/acl", "notice", "Permissions saved."))
}

func permKey(role models.Role, res acl.Resource, act acl.Action) string {
	return string(role) + ":" + string(res) + ":" + string(act)
}
