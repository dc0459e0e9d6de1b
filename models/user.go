package models

// User represents an account in the system.
// It maps to the `users` table in SQLite. PasswordHash is opaque to this
// layer; only a hash is ever stored, never a plaintext password.
type User struct {
	ID           int64   `db:"id" json:"id"`
	Username     string  `db:"username" json:"username"`
	PasswordHash string  `db:"password_hash" json:"-"`
	Email        *string `db:"email" json:"email,omitempty"`
	CreatedAt    string  `db:"created_at" json:"created_at"`
	UpdatedAt    string  `db:"updated_at" json:"updated_at"`
}
