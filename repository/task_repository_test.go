package repository

import (
	"context"
	"errors"
	"strings"
	"testing"

	"taskManagement/internal/db"
	"taskManagement/internal/testutil"
	"taskManagement/models"
)

func TestTaskRepository_CreateDefaultsAndGet(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "taskcreate")
	u := testutil.SeedUser(t, d, "owner")
	repo := NewTaskRepository(d)
	ctx := context.Background()

	// Status and priority omitted: must default to todo/medium.
	task, err := repo.Create(ctx, CreateTaskParams{UserID: u.ID, Title: "write docs"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if task.Status != models.TaskStatusTodo || task.Priority != models.TaskPriorityMedium {
		t.Fatalf("defaults not applied: %+v", task)
	}
	if task.Description != "" || task.DueDate != nil {
		t.Fatalf("unexpected optional fields: %+v", task)
	}
	if task.CreatedAt == "" || task.UpdatedAt == "" {
		t.Fatalf("timestamps not defaulted: %+v", task)
	}

	due := "2026-09-01"
	task2, err := repo.Create(ctx, CreateTaskParams{
		UserID:      u.ID,
		Title:       "ship it",
		Description: "final pass",
		Status:      models.TaskStatusInProgress,
		Priority:    models.TaskPriorityUrgent,
		DueDate:     &due,
	})
	if err != nil {
		t.Fatalf("create full: %v", err)
	}
	if task2.Status != models.TaskStatusInProgress || task2.Priority != models.TaskPriorityUrgent {
		t.Fatalf("explicit fields lost: %+v", task2)
	}
	if task2.DueDate == nil || *task2.DueDate != due {
		t.Fatalf("due date lost: %+v", task2)
	}

	g, err := repo.GetByID(ctx, task2.ID)
	if err != nil || g == nil || g.Title != "ship it" {
		t.Fatalf("get by id: %v %+v", err, g)
	}
	missing, err := repo.GetByID(ctx, 99999)
	if err != nil || missing != nil {
		t.Fatalf("expected nil for missing task: %v %+v", err, missing)
	}
}

func TestTaskRepository_Validation(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "taskvalidate")
	u := testutil.SeedUser(t, d, "owner")
	repo := NewTaskRepository(d)
	ctx := context.Background()

	cases := []struct {
		name string
		p    CreateTaskParams
		want error
	}{
		{"empty title", CreateTaskParams{UserID: u.ID, Title: "  "}, ErrEmptyTitle},
		{"long title", CreateTaskParams{UserID: u.ID, Title: strings.Repeat("x", models.MaxTitleLength+1)}, ErrTitleTooLong},
		{"long description", CreateTaskParams{UserID: u.ID, Title: "t", Description: strings.Repeat("x", models.MaxDescriptionLength+1)}, ErrDescriptionTooLong},
		{"bad status", CreateTaskParams{UserID: u.ID, Title: "t", Status: "archived"}, ErrInvalidStatus},
		{"bad priority", CreateTaskParams{UserID: u.ID, Title: "t", Priority: "critical"}, ErrInvalidPriority},
	}
	for _, tc := range cases {
		if _, err := repo.Create(ctx, tc.p); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}

	// Free text must never reach the table.
	var n int
	if err := d.QueryRow(`SELECT COUNT(*) FROM tasks`).Scan(&n); err != nil || n != 0 {
		t.Fatalf("invalid rows written: n=%d err=%v", n, err)
	}
}

func TestTaskRepository_InvalidUser(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "taskfk")
	repo := NewTaskRepository(d)

	_, err := repo.Create(context.Background(), CreateTaskParams{UserID: 42, Title: "orphan"})
	if !errors.Is(err, ErrInvalidUser) {
		t.Fatalf("expected ErrInvalidUser, got %v", err)
	}
}

func TestTaskRepository_UpdateStatusAndPriority(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "taskstatus")
	u := testutil.SeedUser(t, d, "owner")
	repo := NewTaskRepository(d)
	ctx := context.Background()

	task, err := repo.Create(ctx, CreateTaskParams{UserID: u.ID, Title: "move me"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.UpdateStatus(ctx, task.ID, models.TaskStatusDone)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if got.Status != models.TaskStatusDone {
		t.Fatalf("status not updated: %+v", got)
	}

	if _, err := repo.UpdateStatus(ctx, task.ID, "paused"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if _, err := repo.UpdateStatus(ctx, 99999, models.TaskStatusDone); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}

	got, err = repo.UpdatePriority(ctx, task.ID, models.TaskPriorityHigh)
	if err != nil || got.Priority != models.TaskPriorityHigh {
		t.Fatalf("update priority: %v %+v", err, got)
	}
	if _, err := repo.UpdatePriority(ctx, task.ID, "severe"); !errors.Is(err, ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority, got %v", err)
	}
}

func TestTaskRepository_PartialUpdate(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "taskupdate")
	u := testutil.SeedUser(t, d, "owner")
	repo := NewTaskRepository(d)
	ctx := context.Background()

	due := "2026-10-01"
	task, err := repo.Create(ctx, CreateTaskParams{UserID: u.ID, Title: "draft notes", Description: "keep me", DueDate: &due})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	title := "renamed"
	status := models.TaskStatusInProgress
	got, err := repo.Update(ctx, task.ID, models.UpdateTask{Title: &title, Status: &status})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Title != "renamed" || got.Status != models.TaskStatusInProgress {
		t.Fatalf("update not applied: %+v", got)
	}
	// Untouched fields survive.
	if got.Description != "keep me" || got.DueDate == nil || *got.DueDate != due {
		t.Fatalf("untouched fields changed: %+v", got)
	}

	// Clearing the due date with an empty string.
	empty := ""
	got, err = repo.Update(ctx, task.ID, models.UpdateTask{DueDate: &empty})
	if err != nil {
		t.Fatalf("clear due date: %v", err)
	}
	if got.DueDate != nil {
		t.Fatalf("due date not cleared: %+v", got)
	}

	bad := models.TaskStatus("paused")
	if _, err := repo.Update(ctx, task.ID, models.UpdateTask{Status: &bad}); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if _, err := repo.Update(ctx, 99999, models.UpdateTask{Title: &title}); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
	// No-field update on a live row is a fetch.
	if _, err := repo.Update(ctx, task.ID, models.UpdateTask{}); err != nil {
		t.Fatalf("empty update: %v", err)
	}
}

func TestTaskRepository_DeleteAndOwnership(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "taskdelete")
	owner := testutil.SeedUser(t, d, "owner")
	other := testutil.SeedUser(t, d, "other")
	repo := NewTaskRepository(d)
	ctx := context.Background()

	task, err := repo.Create(ctx, CreateTaskParams{UserID: owner.ID, Title: "mine"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	ok, err := repo.BelongsToUser(ctx, task.ID, owner.ID)
	if err != nil || !ok {
		t.Fatalf("belongs to owner: %v %v", ok, err)
	}
	ok, err = repo.BelongsToUser(ctx, task.ID, other.ID)
	if err != nil || ok {
		t.Fatalf("belongs to other: %v %v", ok, err)
	}

	if err := repo.Delete(ctx, task.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx, task.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestUserDelete_CascadesToTasks(t *testing.T) {
	d, err := db.Open("file:taskcascade?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	users := NewUserRepository(d)
	tasks := NewTaskRepository(d)
	ctx := context.Background()

	u, err := users.Create(ctx, "doomed", "h", nil)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	survivor, err := users.Create(ctx, "survivor", "h", nil)
	if err != nil {
		t.Fatalf("create survivor: %v", err)
	}

	for _, title := range []string{"a", "b", "c"} {
		if _, err := tasks.Create(ctx, CreateTaskParams{UserID: u.ID, Title: title}); err != nil {
			t.Fatalf("create task %s: %v", title, err)
		}
	}
	if _, err := tasks.Create(ctx, CreateTaskParams{UserID: survivor.ID, Title: "keep"}); err != nil {
		t.Fatalf("create survivor task: %v", err)
	}

	if err := users.Delete(ctx, u.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	n, err := tasks.CountByUser(ctx, u.ID)
	if err != nil || n != 0 {
		t.Fatalf("expected cascade to remove tasks, count=%d err=%v", n, err)
	}
	n, err = tasks.CountByUser(ctx, survivor.ID)
	if err != nil || n != 1 {
		t.Fatalf("survivor's tasks touched, count=%d err=%v", n, err)
	}
}
