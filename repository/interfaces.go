package repository

import (
	"context"

	"taskManagement/models"
)

// UserRepositoryI defines operations on User entities.
type UserRepositoryI interface {
	Create(ctx context.Context, username, passwordHash string, email *string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context, limit, offset int) ([]models.User, error)
	UpdateEmail(ctx context.Context, id int64, email *string) error
	Delete(ctx context.Context, id int64) error
}

// TaskRepositoryI defines operations on Task entities.
type TaskRepositoryI interface {
	Create(ctx context.Context, p CreateTaskParams) (*models.Task, error)
	GetByID(ctx context.Context, id int64) (*models.Task, error)
	ListByUser(ctx context.Context, userID int64, status *models.TaskStatus) ([]models.Task, error)
	ListFiltered(ctx context.Context, p ListTasksParams) ([]models.Task, error)
	ListDueBetween(ctx context.Context, from, to string) ([]models.Task, error)
	Update(ctx context.Context, id int64, upd models.UpdateTask) (*models.Task, error)
	UpdateStatus(ctx context.Context, id int64, status models.TaskStatus) (*models.Task, error)
	UpdatePriority(ctx context.Context, id int64, priority models.TaskPriority) (*models.Task, error)
	Delete(ctx context.Context, id int64) error
	CountByUser(ctx context.Context, userID int64) (int64, error)
	BelongsToUser(ctx context.Context, taskID, userID int64) (bool, error)
}
