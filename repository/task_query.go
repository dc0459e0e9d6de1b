package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"taskManagement/models"
)

// ListByUser returns the user's tasks ordered by created_at desc, id desc,
// optionally restricted to one status. The filter rides the composite
// (user_id, status) index.
func (r *TaskRepository) ListByUser(ctx context.Context, userID int64, status *models.TaskStatus) ([]models.Task, error) {
	if status != nil && !status.Valid() {
		return nil, ErrInvalidStatus
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var rows *sql.Rows
	var err error
	if status != nil {
		rows, err = r.db.QueryContext(ctx,
			`SELECT `+taskColumns+` FROM tasks WHERE user_id = ? AND status = ? ORDER BY created_at DESC, id DESC`,
			userID, string(*status))
	} else {
		rows, err = r.db.QueryContext(ctx,
			`SELECT `+taskColumns+` FROM tasks WHERE user_id = ? ORDER BY created_at DESC, id DESC`,
			userID)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTaskRows(rows)
}

// ListTasksParams represents filters and pagination for ListFiltered.
type ListTasksParams struct {
	UserID   *int64
	Statuses []models.TaskStatus
	Priority *models.TaskPriority
	DueFrom  *string // optional inclusive lower bound on due_date
	DueTo    *string // optional inclusive upper bound on due_date
	Limit    int
	Offset   int
}

// ListFiltered returns tasks matching the given filters ordered by
// created_at desc, id desc.
func (r *TaskRepository) ListFiltered(ctx context.Context, p ListTasksParams) ([]models.Task, error) {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var where []string
	var args []any

	if p.UserID != nil {
		where = append(where, "user_id = ?")
		args = append(args, *p.UserID)
	}
	if len(p.Statuses) > 0 {
		placeholders := make([]string, len(p.Statuses))
		for i, s := range p.Statuses {
			if !s.Valid() {
				return nil, ErrInvalidStatus
			}
			placeholders[i] = "?"
			args = append(args, string(s))
		}
		where = append(where, "status IN ("+strings.Join(placeholders, ",")+")")
	}
	if p.Priority != nil {
		if !p.Priority.Valid() {
			return nil, ErrInvalidPriority
		}
		where = append(where, "priority = ?")
		args = append(args, string(*p.Priority))
	}
	if p.DueFrom != nil {
		where = append(where, "due_date >= ?")
		args = append(args, *p.DueFrom)
	}
	if p.DueTo != nil {
		where = append(where, "due_date <= ?")
		args = append(args, *p.DueTo)
	}

	query := `SELECT ` + taskColumns + ` FROM tasks`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?"
	args = append(args, p.Limit, p.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTaskRows(rows)
}

// ListDueBetween returns tasks with a due date inside [from, to] ordered by
// due_date asc, id asc. Tasks without a due date never match; the predicate
// matches the partial due_date index.
func (r *TaskRepository) ListDueBetween(ctx context.Context, from, to string) ([]models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE due_date IS NOT NULL AND due_date >= ? AND due_date <= ? ORDER BY due_date ASC, id ASC`,
		from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTaskRows(rows)
}

// scanTaskRows is a helper to scan rows into Task objects.
func scanTaskRows(rows *sql.Rows) ([]models.Task, error) {
	var out []models.Task
	for rows.Next() {
		var t models.Task
		var status, priority string
		var dueDate sql.NullString
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &status, &priority, &dueDate, &t.UserID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		t.Status = models.TaskStatus(status)
		t.Priority = models.TaskPriority(priority)
		if dueDate.Valid {
			v := dueDate.String
			t.DueDate = &v
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
