package sqlxrepos

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/assignment"
)

var assignmentColumns = []string{"id", "student_id", "homework_id", "task_id", "created_at"}

type assignmentRepository struct {
	base
}

var _ assignment.Repository = (*assignmentRepository)(nil) // interface compliance check

func NewAssignmentRepository(db *sqlx.DB, opts Options) *assignmentRepository {
	return &assignmentRepository{base: newBase(db, opts)}
}

func (repo *assignmentRepository) CreateAssignment(
	ctx context.Context,
	a assignment.Assignment,
	refs ...core.Ref,
) (assignment.Assignment, error) {
	id, err := repo.insert(ctx, core.EntityAssignment, map[string]interface{}{
		"student_id":  a.StudentID,
		"homework_id": a.HomeworkID,
		"task_id":     a.TaskID,
		"created_at":  a.CreatedAt,
	}, refs...)
	if err != nil {
		return assignment.Assignment{}, err
	}
	a.ID = id
	return a, nil
}

func (repo *assignmentRepository) QueryAssignments(ctx context.Context, filter assignment.QueryFilter) ([]assignment.Assignment, error) {
	where := sq.Eq{}
	if filter.StudentID != 0 {
		where["student_id"] = filter.StudentID
	}

	as := make([]assignment.Assignment, 0)
	err := repo.query(ctx, core.EntityAssignment, assignmentColumns, where, &as)
	return as, err
}

func (repo *assignmentRepository) GetAssignmentByID(ctx context.Context, id int) (assignment.Assignment, error) {
	var a assignment.Assignment
	err := repo.getByID(ctx, core.EntityAssignment, id, assignmentColumns, &a)
	return a, err
}

func (repo *assignmentRepository) UpdateAssignment(
	ctx context.Context,
	id int,
	changes core.Changes,
	refs ...core.Ref,
) (assignment.Assignment, error) {
	var a assignment.Assignment
	if err := repo.update(ctx, core.EntityAssignment, id, changes, assignmentColumns, &a, refs...); err != nil {
		return assignment.Assignment{}, err
	}
	return a, nil
}

func (repo *assignmentRepository) DeleteAssignment(ctx context.Context, id int) error {
	return repo.deleteRow(ctx, core.EntityAssignment, id)
}
