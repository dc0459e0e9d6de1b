package models

// TaskStatus represents the current progress of a task.
// The set is closed; the tasks table stores it as free TEXT, so every write
// path must validate against it.
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

// DefaultTaskStatus is assigned when a task is created without a status.
const DefaultTaskStatus = TaskStatusTodo

// Valid reports whether s is a member of the closed status set.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

// ParseTaskStatus converts a raw string into a TaskStatus.
func ParseTaskStatus(raw string) (TaskStatus, bool) {
	s := TaskStatus(raw)
	return s, s.Valid()
}

// TaskPriority represents the urgency of a task. Closed set, same
// enforcement caveat as TaskStatus.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

// DefaultTaskPriority is assigned when a task is created without a priority.
const DefaultTaskPriority = TaskPriorityMedium

// Valid reports whether p is a member of the closed priority set.
func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return true
	}
	return false
}

// ParseTaskPriority converts a raw string into a TaskPriority.
func ParseTaskPriority(raw string) (TaskPriority, bool) {
	p := TaskPriority(raw)
	return p, p.Valid()
}

// Bounds on user-supplied text fields, checked before any write.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 2000
)

// Task represents a task record owned by a user.
// It maps to the `tasks` table in SQLite with a cascading FK to users.
// DueDate is nullable in the DB; a pointer distinguishes null from zero.
type Task struct {
	ID          int64        `db:"id" json:"id"`
	Title       string       `db:"title" json:"title"`
	Description string       `db:"description" json:"description"`
	Status      TaskStatus   `db:"status" json:"status"`
	Priority    TaskPriority `db:"priority" json:"priority"`
	DueDate     *string      `db:"due_date" json:"due_date,omitempty"`
	UserID      int64        `db:"user_id" json:"user_id"`
	CreatedAt   string       `db:"created_at" json:"created_at"`
	UpdatedAt   string       `db:"updated_at" json:"updated_at"`
}

// UpdateTask carries a partial update: nil fields are left untouched.
// A non-nil DueDate pointing at an empty string clears the due date.
type UpdateTask struct {
	Title       *string       `json:"title,omitempty"`
	Description *string       `json:"description,omitempty"`
	Status      *TaskStatus   `json:"status,omitempty"`
	Priority    *TaskPriority `json:"priority,omitempty"`
	DueDate     *string       `json:"due_date,omitempty"`
}
