package sqlxrepos

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/student"
)

var studentColumns = []string{"id", "name", "email", "parent_id", "teacher_id", "classroom", "created_at", "updated_at"}

type studentRepository struct {
	base
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *sqlx.DB, opts Options) *studentRepository {
	return &studentRepository{base: newBase(db, opts)}
}

func (repo *studentRepository) CreateStudent(ctx context.Context, st student.Student, refs ...core.Ref) (student.Student, error) {
	id, err := repo.insert(ctx, core.EntityStudent, map[string]interface{}{
		"name":       st.Name,
		"email":      st.Email,
		"parent_id":  st.ParentID,
		"teacher_id": st.TeacherID,
		"classroom":  st.Classroom,
		"created_at": st.CreatedAt,
		"updated_at": st.UpdatedAt,
	}, refs...)
	if err != nil {
		return student.Student{}, err
	}
	st.ID = id
	return st, nil
}

func (repo *studentRepository) QueryStudents(ctx context.Context, filter student.QueryFilter) ([]student.Student, error) {
	where := sq.Eq{}
	if filter.ParentID != 0 {
		where["parent_id"] = filter.ParentID
	}
	if filter.TeacherID != 0 {
		where["teacher_id"] = filter.TeacherID
	}

	students := make([]student.Student, 0)
	err := repo.query(ctx, core.EntityStudent, studentColumns, where, &students)
	return students, err
}

func (repo *studentRepository) GetStudentByID(ctx context.Context, id int) (student.Student, error) {
	var st student.Student
	err := repo.getByID(ctx, core.EntityStudent, id, studentColumns, &st)
	return st, err
}

func (repo *studentRepository) UpdateStudent(ctx context.Context, id int, changes core.Changes, refs ...core.Ref) (student.Student, error) {
	var st student.Student
	if err := repo.update(ctx, core.EntityStudent, id, changes, studentColumns, &st, refs...); err != nil {
		return student.Student{}, err
	}
	return st, nil
}

func (repo *studentRepository) DeleteStudent(ctx context.Context, id int) error {
	return repo.deleteRow(ctx, core.EntityStudent, id)
}
