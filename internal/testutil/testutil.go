package testutil

import (
	"context"
	"database/sql"
	"testing"

	"taskManagement/internal/db"
	"taskManagement/models"
)

// OpenInMemoryDB opens an in-memory SQLite database and applies migrations.
// Caller is responsible for closing the DB, typically via t.Cleanup.
func OpenInMemoryDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	// A shared cache memory database so that multiple connections share the same DB if needed.
	d, err := db.Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

// SeedUser inserts a user directly and returns it. The stored hash is a
// fixed placeholder; the schema layer treats it as opaque.
func SeedUser(t *testing.T, d *sql.DB, username string) *models.User {
	t.Helper()
	res, err := d.ExecContext(context.Background(),
		`INSERT INTO users (username, password_hash) VALUES (?, ?)`, username, "$2a$10$testhashtesthashtesthash")
	if err != nil {
		t.Fatalf("seed user %q: %v", username, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("seed user id: %v", err)
	}
	return &models.User{ID: id, Username: username}
}
