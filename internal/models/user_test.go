// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"testing"
	"time"
)

// TestParseRole verifies exact matching against the three known roles.
func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{in: "admin", want: RoleAdmin},
		{in: "creator", want: RoleCreator},
		{in: "reader", want: RoleReader},
		{in: "ADMIN", wantErr: true},
		{in: "editor", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRole(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRole(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseRole(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// TestIdentityCanManage verifies that only admin-shell roles manage content.
func TestIdentityCanManage(t *testing.T) {
	tests := []struct {
		role Role
		want bool
	}{
		{RoleAdmin, true},
		{RoleCreator, true},
		{RoleReader, false},
		{Role("superadmin"), false},
	}

	for _, tt := range tests {
		u := &Identity{Role: tt.role}
		if got := u.CanManage(); got != tt.want {
			t.Errorf("Identity{Role: %q}.CanManage() = %v, want %v", tt.role, got, tt.want)
		}
	}
}

func TestIdentityInitial(t *testing.T) {
	if got := (&Identity{DisplayName: "Émile"}).Initial(); got != "É" {
		t.Errorf("Initial: got %q, want %q", got, "É")
	}
	if got := (&Identity{}).Initial(); got != "?" {
		t.Errorf("Initial (empty): got %q, want %q", got, "?")
	}
}

func TestArticleHelpers(t *testing.T) {
	a := &Article{Tags: []string{"Politics", "breaking"}}
	if !a.HasTag("politics") {
		t.Error("HasTag should ignore case")
	}
	if a.HasTag("sports") {
		t.Error("HasTag(sports) should be false")
	}
	if a.Thumbnail() != "" {
		t.Error("expected empty thumbnail without media")
	}
	a.MediaURLs = []string{"https://cdn.example/a.jpg", "https://cdn.example/b.jpg"}
	if a.Thumbnail() != "https://cdn.example/a.jpg" {
		t.Errorf("Thumbnail: got %q", a.Thumbnail())
	}
}

func TestParseAction(t *testing.T) {
	for _, a := range Actions {
		got, err := ParseAction(string(a))
		if err != nil || got != a {
			t.Errorf("ParseAction(%q) = %q, %v", a, got, err)
		}
	}
	if _, err := ParseAction("publish"); err == nil {
		t.Error("expected error for unknown action")
	}
}

// TestSettingsMapRoundTrip checks that the key/value form used by the
// postgres backend preserves every field.
func TestSettingsMapRoundTrip(t *testing.T) {
	s := DefaultSettings()
	s.SiteName = "Daily Ledger"
	s.MaintenanceMode = true
	s.RequireApproval = false
	s.MaxUploadSizeMB = 25

	got := SettingsFromMap(s.SettingsMap())
	got.UpdatedAt = s.UpdatedAt
	if got != s {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", got, s)
	}
}

func TestSettingsFromMapKeepsDefaults(t *testing.T) {
	got := SettingsFromMap(map[string]string{
		"max_upload_size_mb": "lots",
		"allow_comments":     "maybe",
	})
	want := DefaultSettings()
	if got.MaxUploadSizeMB != want.MaxUploadSizeMB {
		t.Errorf("MaxUploadSizeMB: got %d, want %d", got.MaxUploadSizeMB, want.MaxUploadSizeMB)
	}
	if got.AllowComments != want.AllowComments {
		t.Errorf("AllowComments: got %v, want %v", got.AllowComments, want.AllowComments)
	}
}

func TestSettingsLocation(t *testing.T) {
	s := DefaultSettings()
	s.Timezone = "Not/AZone"
	if s.Location() != time.UTC {
		t.Error("expected UTC fallback for unknown zone")
	}
	if DefaultSettings().MaxUploadBytes() != 10<<20 {
		t.Errorf("MaxUploadBytes: got %d", DefaultSettings().MaxUploadBytes())
	}
}
