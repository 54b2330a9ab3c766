package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/task"
)

var taskColumns = []string{"id", "title", "description", "start_date", "end_date", "status", "created_at", "updated_at"}

type taskRepository struct {
	base
}

var _ task.Repository = (*taskRepository)(nil) // interface compliance check

func NewTaskRepository(db *sqlx.DB, opts Options) *taskRepository {
	return &taskRepository{base: newBase(db, opts)}
}

func (repo *taskRepository) CreateTask(ctx context.Context, t task.Task) (task.Task, error) {
	id, err := repo.insert(ctx, core.EntityTask, map[string]interface{}{
		"title":       t.Title,
		"description": t.Description,
		"start_date":  t.StartDate,
		"end_date":    t.EndDate,
		"status":      t.Status,
		"created_at":  t.CreatedAt,
		"updated_at":  t.UpdatedAt,
	})
	if err != nil {
		return task.Task{}, err
	}
	t.ID = id
	return t, nil
}

func (repo *taskRepository) QueryTasks(ctx context.Context) ([]task.Task, error) {
	tasks := make([]task.Task, 0)
	err := repo.query(ctx, core.EntityTask, taskColumns, nil, &tasks)
	return tasks, err
}

func (repo *taskRepository) GetTaskByID(ctx context.Context, id int) (task.Task, error) {
	var t task.Task
	err := repo.getByID(ctx, core.EntityTask, id, taskColumns, &t)
	return t, err
}

func (repo *taskRepository) UpdateTask(ctx context.Context, id int, changes core.Changes) (task.Task, error) {
	var t task.Task
	if err := repo.update(ctx, core.EntityTask, id, changes, taskColumns, &t); err != nil {
		return task.Task{}, err
	}
	return t, nil
}

func (repo *taskRepository) DeleteTask(ctx context.Context, id int) error {
	return repo.deleteRow(ctx, core.EntityTask, id)
}
