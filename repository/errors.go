package repository

import (
	"errors"
	"strings"

	"github.com/mattn/go-sqlite3"
)

// Recoverable error kinds surfaced by the repositories. Constraint
// violations are mapped onto these so callers never have to inspect raw
// driver errors; match with errors.Is.
var (
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateEmail    = errors.New("email already exists")
	ErrEmptyUsername     = errors.New("username must not be empty")
	ErrUserNotFound      = errors.New("user not found")

	ErrTaskNotFound       = errors.New("task not found")
	ErrInvalidUser        = errors.New("referenced user does not exist")
	ErrInvalidStatus      = errors.New("invalid task status")
	ErrInvalidPriority    = errors.New("invalid task priority")
	ErrEmptyTitle         = errors.New("title must not be empty")
	ErrTitleTooLong       = errors.New("title exceeds maximum length")
	ErrDescriptionTooLong = errors.New("description exceeds maximum length")
)

// mapSqliteErr translates SQLite constraint failures on the users and tasks
// tables into the sentinel kinds above. Unrecognized errors pass through.
func mapSqliteErr(err error) error {
	if err == nil {
		return nil
	}
	var se sqlite3.Error
	if !errors.As(err, &se) {
		return err
	}
	switch se.ExtendedCode {
	case sqlite3.ErrConstraintUnique:
		// Message names the violated column, e.g.
		// "UNIQUE constraint failed: users.username".
		msg := se.Error()
		switch {
		case strings.Contains(msg, "users.username"):
			return ErrDuplicateUsername
		case strings.Contains(msg, "users.email"):
			return ErrDuplicateEmail
		}
	case sqlite3.ErrConstraintCheck:
		// Named constraints keep this mapping precise as the schema grows.
		if strings.Contains(se.Error(), "users_username_nonempty") {
			return ErrEmptyUsername
		}
	case sqlite3.ErrConstraintForeignKey:
		return ErrInvalidUser
	}
	return err
}
