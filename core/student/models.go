package student

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/user"
)

// References a student holds.
var (
	ParentRef  = core.Reference{Field: "parent_id", Entity: core.EntityUser, Role: user.RoleParent}
	TeacherRef = core.Reference{Field: "teacher_id", Entity: core.EntityUser, Role: user.RoleTeacher}
)

type Student struct {
	ID        int         `json:"id" db:"id"`
	Name      string      `json:"name" db:"name"`
	Email     string      `json:"email" db:"email"`
	ParentID  int         `json:"parent_id" db:"parent_id"`
	TeacherID int         `json:"teacher_id" db:"teacher_id"`
	Classroom null.String `json:"classroom" db:"classroom"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"` // UTC
	UpdatedAt time.Time   `json:"updated_at" db:"updated_at"` // UTC
}

func (st Student) References() []core.Ref {
	return []core.Ref{ParentRef.To(st.ParentID), TeacherRef.To(st.TeacherID)}
}

// NewStudent contains information needed to create a new Student.
type NewStudent struct {
	Name      string `json:"name" yaml:"name" validate:"required,notblank"`
	Email     string `json:"email" yaml:"email" validate:"required,email"`
	ParentID  int    `json:"parent_id" yaml:"parent_id" validate:"required"`
	TeacherID int    `json:"teacher_id" yaml:"teacher_id" validate:"required"`
	Classroom string `json:"classroom" yaml:"classroom"`
}

func (ns *NewStudent) Clean() {
	ns.Name = core.CleanString(ns.Name)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	ns.Classroom = core.CleanString(ns.Classroom)
}

// UpdateStudent defines what information may be provided to modify an existing Student.
// nil fields are left untouched; an empty Classroom clears it.
type UpdateStudent struct {
	Name      *string `json:"name" validate:"omitempty,notblank"`
	Email     *string `json:"email" validate:"omitempty,email"`
	ParentID  *int    `json:"parent_id" validate:"omitempty,min=1"`
	TeacherID *int    `json:"teacher_id" validate:"omitempty,min=1"`
	Classroom *string `json:"classroom"`
}

func (us *UpdateStudent) Clean() {
	core.CleanStringPtr(us.Name)
	core.CleanStringPtr(us.Email, true /* lower */)
	core.CleanStringPtr(us.Classroom)
}

func (us UpdateStudent) IsEmpty() bool {
	return us.Name == nil && us.Email == nil && us.ParentID == nil && us.TeacherID == nil && us.Classroom == nil
}

// QueryFilter narrows student listings down to one relation. Zero values are ignored.
type QueryFilter struct {
	TeacherID int `query:"teacher_id"`
	ParentID  int `query:"parent_id"`
}
