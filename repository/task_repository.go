package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"taskManagement/models"
)

// TaskRepository is the core repository for Task entities.
// Every write path validates the closed status/priority sets before touching
// the database, since the schema stores both as free TEXT.
type TaskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskColumns = `id, title, description, status, priority, due_date, user_id, created_at, updated_at`

// CreateTaskParams carries the caller-supplied fields for a new task.
// Empty Status/Priority take the todo/medium defaults.
type CreateTaskParams struct {
	UserID      int64
	Title       string
	Description string
	Status      models.TaskStatus
	Priority    models.TaskPriority
	DueDate     *string
}

// Create inserts a new task for the given user. A nonexistent user surfaces
// as ErrInvalidUser; out-of-set status/priority as ErrInvalidStatus and
// ErrInvalidPriority before any write.
func (r *TaskRepository) Create(ctx context.Context, p CreateTaskParams) (*models.Task, error) {
	if strings.TrimSpace(p.Title) == "" {
		return nil, ErrEmptyTitle
	}
	if len(p.Title) > models.MaxTitleLength {
		return nil, ErrTitleTooLong
	}
	if len(p.Description) > models.MaxDescriptionLength {
		return nil, ErrDescriptionTooLong
	}
	if p.Status == "" {
		p.Status = models.DefaultTaskStatus
	}
	if !p.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	if p.Priority == "" {
		p.Priority = models.DefaultTaskPriority
	}
	if !p.Priority.Valid() {
		return nil, ErrInvalidPriority
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (title, description, status, priority, due_date, user_id) VALUES (?,?,?,?,?,?)`,
		p.Title, p.Description, string(p.Status), string(p.Priority), p.DueDate, p.UserID)
	if err != nil {
		return nil, mapSqliteErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	// Query back to capture the defaulted timestamps.
	t, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("created task not found: id=%d", id)
	}
	return t, nil
}

// GetByID fetches a task by its ID, returning (nil, nil) when absent.
func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	var t models.Task
	var status, priority string
	var dueDate sql.NullString
	err := row.Scan(&t.ID, &t.Title, &t.Description, &status, &priority, &dueDate, &t.UserID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	t.Status = models.TaskStatus(status)
	t.Priority = models.TaskPriority(priority)
	if dueDate.Valid {
		v := dueDate.String
		t.DueDate = &v
	}
	return &t, nil
}

// Update applies a partial update; nil fields are left untouched. A non-nil
// DueDate pointing at an empty string clears the due date. updated_at is
// bumped whenever anything changes.
func (r *TaskRepository) Update(ctx context.Context, id int64, upd models.UpdateTask) (*models.Task, error) {
	var set []string
	var args []any

	if upd.Title != nil {
		if strings.TrimSpace(*upd.Title) == "" {
			return nil, ErrEmptyTitle
		}
		if len(*upd.Title) > models.MaxTitleLength {
			return nil, ErrTitleTooLong
		}
		set = append(set, "title = ?")
		args = append(args, *upd.Title)
	}
	if upd.Description != nil {
		if len(*upd.Description) > models.MaxDescriptionLength {
			return nil, ErrDescriptionTooLong
		}
		set = append(set, "description = ?")
		args = append(args, *upd.Description)
	}
	if upd.Status != nil {
		if !upd.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		set = append(set, "status = ?")
		args = append(args, string(*upd.Status))
	}
	if upd.Priority != nil {
		if !upd.Priority.Valid() {
			return nil, ErrInvalidPriority
		}
		set = append(set, "priority = ?")
		args = append(args, string(*upd.Priority))
	}
	if upd.DueDate != nil {
		if *upd.DueDate == "" {
			set = append(set, "due_date = NULL")
		} else {
			set = append(set, "due_date = ?")
			args = append(args, *upd.DueDate)
		}
	}
	if len(set) == 0 {
		// Nothing to change; still report a missing task.
		t, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if t == nil {
			return nil, ErrTaskNotFound
		}
		return t, nil
	}
	set = append(set, "updated_at = datetime('now')")

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	args = append(args, id)
	res, err := r.db.ExecContext(ctx, `UPDATE tasks SET `+strings.Join(set, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return nil, mapSqliteErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrTaskNotFound
	}
	return r.GetByID(ctx, id)
}

// UpdateStatus transitions a task to the given status.
func (r *TaskRepository) UpdateStatus(ctx context.Context, id int64, status models.TaskStatus) (*models.Task, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	return r.setColumn(ctx, id, "status", string(status))
}

// UpdatePriority changes a task's priority.
func (r *TaskRepository) UpdatePriority(ctx context.Context, id int64, priority models.TaskPriority) (*models.Task, error) {
	if !priority.Valid() {
		return nil, ErrInvalidPriority
	}
	return r.setColumn(ctx, id, "priority", string(priority))
}

func (r *TaskRepository) setColumn(ctx context.Context, id int64, column, value string) (*models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `UPDATE tasks SET `+column+` = ?, updated_at = datetime('now') WHERE id = ?`, value, id)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrTaskNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete removes a task by ID.
func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// CountByUser returns the total number of tasks owned by a user.
func (r *TaskRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks WHERE user_id = ?`, userID).Scan(&n)
	return n, err
}

// BelongsToUser reports whether the task is owned by the given user.
// Intended for authorization checks in higher layers.
func (r *TaskRepository) BelongsToUser(ctx context.Context, taskID, userID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks WHERE id = ? AND user_id = ?`, taskID, userID).Scan(&n)
	return n > 0, err
}
