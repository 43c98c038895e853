// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package newsroom

import (
	"context"
	"fmt"
	"strings"
	"time"

	"newsdesk/internal/acl"
	"newsdesk/internal/models"
)

// MaxUploadLimitMB caps the configurable upload size.
const MaxUploadLimitMB = 100

// Settings returns the current site settings.
func (s *Service) Settings(ctx context.Context) (models.Settings, error) {
	settings, err := s.repo.Settings.Load(ctx)
	if err != nil {
		return models.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	return settings, nil
}

// SaveSettings validates and stores the settings.
func (s *Service) SaveSettings(ctx context.Context, actor *models.Identity, in models.Settings) (models.Settings, error) {
	if err := s.authorize(actor, acl.ResourceSettings, acl.ActionUpdate); err != nil {
		return models.Settings{}, err
	}
	in.SiteName = strings.TrimSpace(in.SiteName)
	in.SiteDescription = strings.TrimSpace(in.SiteDescription)
	if in.SiteName == "" {
		return models.Settings{}, fmt.Errorf("%w: site name is required", ErrInvalidSettings)
	}
	if in.MaxUploadSizeMB < 1 || in.MaxUploadSizeMB > MaxUploadLimitMB {
		return models.Settings{}, fmt.Errorf("%w: upload size must be between 1 and %d MB", ErrInvalidSettings, MaxUploadLimitMB)
	}
	if _, err := time.LoadLocation(in.Timezone); err != nil || in.Timezone == "" {
		return models.Settings{}, fmt.Errorf("%w: unknown timezone %q", ErrInvalidSettings, in.Timezone)
	}

	in.UpdatedAt = s.now()
	if err := s.repo.Settings.Save(ctx, in); err != nil {
		return models.Settings{}, fmt.Errorf("save settings: %w", err)
	}
	return in, nil
}
