// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package newsroom

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"newsdesk/internal/acl"
	"newsdesk/internal/models"
)

// UserStats summarizes the directory.
type UserStats struct {
	Total    int
	Active   int
	Admins   int
	Creators int
}

// SearchUsers returns identities whose name or email contains q, ignoring
// case. Password hashes are cleared.
func (s *Service) SearchUsers(ctx context.Context, q string) ([]models.Identity, error) {
	users, err := s.repo.Users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	q = strings.ToLower(strings.TrimSpace(q))
	users = slices.DeleteFunc(users, func(u models.Identity) bool {
		return q != "" &&
			!strings.Contains(strings.ToLower(u.DisplayName), q) &&
			!strings.Contains(strings.ToLower(u.Email), q)
	})
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

// Tally counts users by status and role.
func Tally(users []models.Identity) UserStats {
	st := UserStats{Total: len(users)}
	for _, u := range users {
		if u.IsActive {
			st.Active++
		}
		switch u.Role {
		case models.RoleAdmin:
			st.Admins++
		case models.RoleCreator:
			st.Creators++
		case models.RoleReader:
		}
	}
	return st
}

// UserStats counts the whole directory.
func (s *Service) UserStats(ctx context.Context) (UserStats, error) {
	users, err := s.repo.Users.List(ctx)
	if err != nil {
		return UserStats{}, fmt.Errorf("user stats: %w", err)
	}
	return Tally(users), nil
}

// ToggleUserActive flips the active flag and returns the new value.
func (s *Service) ToggleUserActive(ctx context.Context, actor *models.Identity, id string) (bool, error) {
	if err := s.authorize(actor, acl.ResourceUsers, acl.ActionUpdate); err != nil {
		return false, err
	}
	if actor.ID == id {
		return false, ErrSelfAction
	}
	user, err := s.repo.Users.FindByID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("toggle user: %w", err)
	}
	if user == nil {
		return false, models.ErrNotFound
	}
	if err := s.repo.Users.SetActive(ctx, id, !user.IsActive); err != nil {
		return false, fmt.Errorf("toggle user: %w", err)
	}
	return !user.IsActive, nil
}

// DeleteUser removes an identity. Content they wrote keeps their name.
func (s *Service) DeleteUser(ctx context.Context, actor *models.Identity, id string) error {
	if err := s.authorize(actor, acl.ResourceUsers, acl.ActionDelete); err != nil {
		return err
	}
	if actor.ID == id {
		return ErrSelfAction
	}
	if err := s.repo.Users.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
