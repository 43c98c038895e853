// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strconv"
	"time"

	// Embedded zone database so Timezone resolves on minimal images.
	_ "time/tzdata"
)

// Settings holds the site-wide configuration edited in the admin console.
type Settings struct {
	SiteName           string    `json:"siteName"`
	SiteDescription    string    `json:"siteDescription"`
	EmailNotifications bool      `json:"emailNotifications"`
	PushNotifications  bool      `json:"pushNotifications"`
	MaintenanceMode    bool      `json:"maintenanceMode"`
	AllowComments      bool      `json:"allowComments"`
	RequireApproval    bool      `json:"requireApproval"`
	MaxUploadSizeMB    int       `json:"maxUploadSize"`
	Timezone           string    `json:"timezone"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// DefaultSettings returns the settings a fresh install starts with.
func DefaultSettings() Settings {
	return Settings{
		SiteName:           "News CMS",
		SiteDescription:    "Your trusted news source",
		EmailNotifications: true,
		PushNotifications:  false,
		MaintenanceMode:    false,
		AllowComments:      true,
		RequireApproval:    true,
		MaxUploadSizeMB:    10,
		Timezone:           "Asia/Kolkata",
	}
}

// MaxUploadBytes returns the upload limit in bytes.
func (s Settings) MaxUploadBytes() int64 {
	return int64(s.MaxUploadSizeMB) << 20
}

// Location returns the configured time zone, falling back to UTC when the
// name cannot be loaded.
func (s Settings) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// SettingsMap flattens settings into key/value pairs for key-value storage.
func (s Settings) SettingsMap() map[string]string {
	return map[string]string{
		"site_name":           s.SiteName,
		"site_description":    s.SiteDescription,
		"email_notifications": strconv.FormatBool(s.EmailNotifications),
		"push_notifications":  strconv.FormatBool(s.PushNotifications),
		"maintenance_mode":    strconv.FormatBool(s.MaintenanceMode),
		"allow_comments":      strconv.FormatBool(s.AllowComments),
		"require_approval":    strconv.FormatBool(s.RequireApproval),
		"max_upload_size_mb":  strconv.Itoa(s.MaxUploadSizeMB),
		"timezone":            s.Timezone,
	}
}

// SettingsFromMap is the inverse of SettingsMap. Missing or unparsable
// keys keep their default values.
func SettingsFromMap(m map[string]string) Settings {
	s := DefaultSettings()
	str := func(key string, dst *string) {
		if v, ok := m[key]; ok && v != "" {
			*dst = v
		}
	}
	flag := func(key string, dst *bool) {
		if v, err := strconv.ParseBool(m[key]); err == nil {
			*dst = v
		}
	}
	str("site_name", &s.SiteName)
	str("site_description", &s.SiteDescription)
	str("timezone", &s.Timezone)
	flag("email_notifications", &s.EmailNotifications)
	flag("push_notifications", &s.PushNotifications)
	flag("maintenance_mode", &s.MaintenanceMode)
	flag("allow_comments", &s.AllowComments)
	flag("require_approval", &s.RequireApproval)
	if n, err := strconv.Atoi(m["max_upload_size_mb"]); err == nil && n > 0 {
		s.MaxUploadSizeMB = n
	}
	return s
}
