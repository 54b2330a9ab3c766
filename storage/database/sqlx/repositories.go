package sqlxrepos

import (
	"github.com/jmoiron/sqlx"

	"github.com/trezcool/shule/core/assignment"
	"github.com/trezcool/shule/core/homework"
	"github.com/trezcool/shule/core/student"
	"github.com/trezcool/shule/core/task"
	"github.com/trezcool/shule/core/user"
)

// Repositories bundles one repository per entity, all sharing db & opts.
type Repositories struct {
	Users       user.Repository
	Students    student.Repository
	Homework    homework.Repository
	Tasks       task.Repository
	Assignments assignment.Repository
}

func NewRepositories(db *sqlx.DB, opts Options) Repositories {
	return Repositories{
		Users:       NewUserRepository(db, opts),
		Students:    NewStudentRepository(db, opts),
		Homework:    NewHomeworkRepository(db, opts),
		Tasks:       NewTaskRepository(db, opts),
		Assignments: NewAssignmentRepository(db, opts),
	}
}
