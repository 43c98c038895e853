// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package acl

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"newsdesk/internal/models"
)

// memRepo is an in-memory Repository for tests.
type memRepo struct {
	saved   Permissions
	loadErr error
}

func (r *memRepo) LoadPermissions(context.Context) (Permissions, error) {
	return r.saved, r.loadErr
}

func (r *memRepo) SavePermissions(_ context.Context, p Permissions) error {
	r.saved = p
	return nil
}

func TestDefaults(t *testing.T) {
	m := New(nil)

	tests := []struct {
		role models.Role
		res  Resource
		act  Action
		want bool
	}{
		{models.RoleAdmin, ResourceSettings, ActionDelete, true},
		{models.RoleCreator, ResourcePosts, ActionCreate, true},
		{models.RoleCreator, ResourcePosts, ActionDelete, false},
		{models.RoleCreator, ResourceUsers, ActionRead, true},
		{models.RoleCreator, ResourceUsers, ActionUpdate, false},
		{models.RoleReader, ResourceComments, ActionCreate, true},
		{models.RoleReader, ResourceUsers, ActionRead, false},
	}
	for _, tt := range tests {
		if got := m.Allowed(tt.role, tt.res, tt.act); got != tt.want {
			t.Errorf("Allowed(%s, %s, %s) = %v, want %v", tt.role, tt.res, tt.act, got, tt.want)
		}
	}
}

// TestSetAdminIsNoop verifies that no permission of the admin role can be
// changed, for any resource and action.
func TestSetAdminIsNoop(t *testing.T) {
	m := New(nil)
	before := m.Snapshot()

	for _, res := range Resources {
		for _, act := range Actions {
			if m.Set(models.RoleAdmin, res, act, false) {
				t.Errorf("Set(admin, %s, %s) reported a change", res, act)
			}
		}
	}

	if !reflect.DeepEqual(before, m.Snapshot()) {
		t.Error("matrix changed after admin Set calls")
	}
}

func TestSetRejectsUnknownCoordinates(t *testing.T) {
	m := New(nil)
	before := m.Snapshot()

	if m.Set(models.Role("guest"), ResourcePosts, ActionRead, true) {
		t.Error("unknown role accepted")
	}
	if m.Set(models.RoleReader, Resource("billing"), ActionRead, true) {
		t.Error("unknown resource accepted")
	}
	if m.Set(models.RoleReader, ResourcePosts, Action("publish"), true) {
		t.Error("unknown action accepted")
	}
	if !reflect.DeepEqual(before, m.Snapshot()) {
		t.Error("matrix changed after rejected Set calls")
	}
}

func TestSetAndGranted(t *testing.T) {
	m := New(nil)

	if got := m.Granted(models.RoleCreator, ResourcePosts); got != 3 {
		t.Fatalf("Granted before: got %d, want 3", got)
	}
	if !m.Set(models.RoleCreator, ResourcePosts, ActionDelete, true) {
		t.Fatal("Set(creator, posts, delete) should succeed")
	}
	if !m.Allowed(models.RoleCreator, ResourcePosts, ActionDelete) {
		t.Error("expected creator to be allowed to delete posts")
	}
	if got := m.Granted(models.RoleCreator, ResourcePosts); got != 4 {
		t.Errorf("Granted after: got %d, want 4", got)
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	m := New(nil)
	snap := m.Snapshot()
	snap[models.RoleReader][ResourceUsers][ActionDelete] = true

	if m.Allowed(models.RoleReader, ResourceUsers, ActionDelete) {
		t.Error("mutating a snapshot leaked into the matrix")
	}
}

func TestApplyTreatsMissingAsFalse(t *testing.T) {
	m := New(nil)
	m.Apply(Permissions{
		models.RoleReader: {ResourceUsers: {ActionRead: true}},
		models.RoleAdmin:  {ResourcePosts: {ActionDelete: false}},
	})

	if !m.Allowed(models.RoleReader, ResourceUsers, ActionRead) {
		t.Error("reader users.read should be granted")
	}
	if m.Allowed(models.RoleReader, ResourcePosts, ActionRead) {
		t.Error("reader posts.read should be revoked (missing from form)")
	}
	if m.Allowed(models.RoleCreator, ResourcePosts, ActionCreate) {
		t.Error("creator posts.create should be revoked (missing from form)")
	}
	if !m.Allowed(models.RoleAdmin, ResourcePosts, ActionDelete) {
		t.Error("admin must keep full access")
	}
}

func TestSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	repo := &memRepo{}

	m := New(repo)
	m.Set(models.RoleReader, ResourceUsers, ActionRead, true)
	if err := m.Save(ctx); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// A tampered admin row in storage must not survive loading.
	repo.saved[models.RoleAdmin][ResourceUsers][ActionDelete] = false

	fresh := New(repo)
	if err := fresh.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !fresh.Allowed(models.RoleReader, ResourceUsers, ActionRead) {
		t.Error("loaded matrix lost reader users.read")
	}
	if got := fresh.Granted(models.RoleAdmin, ResourceUsers); got != 4 {
		t.Errorf("admin users grants after load: got %d, want 4", got)
	}
}

func TestLoadNothingStored(t *testing.T) {
	m := New(&memRepo{})
	if err := m.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(m.Snapshot(), Defaults()) {
		t.Error("expected defaults when nothing is stored")
	}
}

func TestLoadError(t *testing.T) {
	m := New(&memRepo{loadErr: errors.New("boom")})
	if err := m.Load(context.Background()); err == nil {
		t.Error("expected error from Load")
	}
}
