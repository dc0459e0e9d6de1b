package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"taskManagement/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, username, password_hash, email, created_at, updated_at`

// Create inserts a new user. passwordHash must already be hashed; this layer
// treats it as opaque. Uniqueness violations on username and email surface as
// ErrDuplicateUsername and ErrDuplicateEmail; an empty username surfaces as
// ErrEmptyUsername via the check constraint.
func (r *UserRepository) Create(ctx context.Context, username, passwordHash string, email *string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `INSERT INTO users (username, password_hash, email) VALUES (?, ?, ?)`,
		username, passwordHash, email)
	if err != nil {
		return nil, mapSqliteErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	// Query back to capture the defaulted timestamps.
	u, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("created user not found: id=%d", id)
	}
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	return scanUser(row)
}

func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.User
	for rows.Next() {
		var u models.User
		var email sql.NullString
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &email, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		if email.Valid {
			v := email.String
			u.Email = &v
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateEmail sets (or clears, when nil) the email for the given user.
func (r *UserRepository) UpdateEmail(ctx context.Context, id int64, email *string) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `UPDATE users SET email = ?, updated_at = datetime('now') WHERE id = ?`, email, id)
	if err != nil {
		return mapSqliteErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Delete removes a user; owned tasks go with it through the FK cascade.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// scanUser scans a single user row, returning (nil, nil) when absent.
func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	var email sql.NullString
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &email, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if email.Valid {
		v := email.String
		u.Email = &v
	}
	return &u, nil
}
