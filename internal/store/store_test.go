// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/segmentio/ksuid"

	"newsdesk/internal/database"
	"newsdesk/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "newsdesk")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "newsdesk")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Connect(context.Background(), testDSN())
	if err != nil {
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// insertUser adds a throwaway user and removes it when the test ends.
func insertUser(t *testing.T, db *sql.DB, role models.Role) models.Identity {
	t.Helper()
	u := models.Identity{
		ID:           ksuid.New().String(),
		DisplayName:  "Store Test",
		Role:         role,
		PasswordHash: "hash",
		IsActive:     true,
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}
	u.Email = u.ID + "@store-test.local"
	_, err := db.Exec(`
		INSERT INTO users (id, email, password_hash, display_name, role, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, u.ID, u.Email, u.PasswordHash, u.DisplayName, string(u.Role), u.IsActive, u.CreatedAt)
	if err != nil {
		t.Fatalf("insert user: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM users WHERE id = $1", u.ID) })
	return u
}

// insertPost adds a throwaway article by author and removes it afterwards.
func insertPost(t *testing.T, db *sql.DB, author models.Identity) *models.Article {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Microsecond)
	a := &models.Article{
		ID:        ksuid.New().String(),
		Title:     "Store test post",
		Tags:      []string{"a", "b"},
		AuthorID:  author.ID,
		Author:    author,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := NewPostStore(db).Create(context.Background(), a); err != nil {
		t.Fatalf("create post: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM posts WHERE id = $1", a.ID) })
	return a
}
