package assignment

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/shule/core"
)

// References an assignment holds.
var (
	StudentRef  = core.Reference{Field: "student_id", Entity: core.EntityStudent}
	HomeworkRef = core.Reference{Field: "homework_id", Entity: core.EntityHomework}
	TaskRef     = core.Reference{Field: "task_id", Entity: core.EntityTask}
)

// Assignment gives a Student either a Homework or a Task, never both.
type Assignment struct {
	ID         int       `json:"id" db:"id"`
	StudentID  int       `json:"student_id" db:"student_id"`
	HomeworkID null.Int  `json:"homework_id" db:"homework_id"`
	TaskID     null.Int  `json:"task_id" db:"task_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"` // UTC
}

func (a Assignment) References() []core.Ref {
	refs := []core.Ref{StudentRef.To(a.StudentID)}
	if a.HomeworkID.Valid {
		refs = append(refs, HomeworkRef.To(a.HomeworkID.Int))
	}
	if a.TaskID.Valid {
		refs = append(refs, TaskRef.To(a.TaskID.Int))
	}
	return refs
}

// NewAssignment contains information needed to create a new Assignment.
// Exactly one of HomeworkID and TaskID must be set.
type NewAssignment struct {
	StudentID  int      `json:"student_id" yaml:"student_id" validate:"required"`
	HomeworkID null.Int `json:"homework_id" yaml:"homework_id" validate:"omitempty,min=1"`
	TaskID     null.Int `json:"task_id" yaml:"task_id" validate:"omitempty,min=1"`
}

// UpdateAssignment defines what information may be provided to modify an existing Assignment.
// Supplying HomeworkID turns the assignment into a homework one (TaskID is cleared) and vice versa.
type UpdateAssignment struct {
	StudentID  *int `json:"student_id" validate:"omitempty,min=1"`
	HomeworkID *int `json:"homework_id" validate:"omitempty,min=1"`
	TaskID     *int `json:"task_id" validate:"omitempty,min=1"`
}

func (ua UpdateAssignment) IsEmpty() bool {
	return ua.StudentID == nil && ua.HomeworkID == nil && ua.TaskID == nil
}

// QueryFilter narrows assignment listings down to one student. Zero values are ignored.
type QueryFilter struct {
	StudentID int `query:"student_id"`
}
