package student

import (
	"context"

	"github.com/kat-co/vala"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/shule/core"
)

type (
	Repository interface {
		// CreateStudent resolves refs then inserts st.
		CreateStudent(ctx context.Context, st Student, refs ...core.Ref) (Student, error)
		// QueryStudents applies AND on the non-zero QueryFilter fields.
		QueryStudents(ctx context.Context, filter QueryFilter) ([]Student, error)
		GetStudentByID(ctx context.Context, id int) (Student, error)
		// UpdateStudent checks the student exists, resolves refs then writes changes.
		UpdateStudent(ctx context.Context, id int, changes core.Changes, refs ...core.Ref) (Student, error)
		DeleteStudent(ctx context.Context, id int) error
	}

	Service interface {
		Create(ctx context.Context, ns NewStudent) (Student, error)
		QueryAll(ctx context.Context) ([]Student, error)
		QueryByTeacher(ctx context.Context, teacherID int) ([]Student, error)
		QueryByParent(ctx context.Context, parentID int) ([]Student, error)
		GetByID(ctx context.Context, id int) (Student, error)
		Update(ctx context.Context, id int, us UpdateStudent) (Student, error)
		Delete(ctx context.Context, id int) error
	}

	service struct {
		repo      Repository
		validator *core.Validator
	}
)

var _ Service = (*service)(nil) // interface compliance check

func NewService(repo Repository, v *core.Validator) Service {
	vala.BeginValidation().Validate(
		vala.IsNotNil(repo, "repo"),
		vala.IsNotNil(v, "v"),
	).CheckAndPanic()

	return &service{repo: repo, validator: v}
}

func (svc *service) Create(ctx context.Context, ns NewStudent) (Student, error) {
	ns.Clean()
	if err := svc.validator.Struct(ns); err != nil {
		return Student{}, err
	}

	now := core.Now()
	st := Student{
		Name:      ns.Name,
		Email:     ns.Email,
		ParentID:  ns.ParentID,
		TeacherID: ns.TeacherID,
		Classroom: null.NewString(ns.Classroom, ns.Classroom != ""),
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.CreateStudent(ctx, st, st.References()...)
}

func (svc *service) QueryAll(ctx context.Context) ([]Student, error) {
	return svc.repo.QueryStudents(ctx, QueryFilter{})
}

func (svc *service) QueryByTeacher(ctx context.Context, teacherID int) ([]Student, error) {
	return svc.repo.QueryStudents(ctx, QueryFilter{TeacherID: teacherID})
}

func (svc *service) QueryByParent(ctx context.Context, parentID int) ([]Student, error) {
	return svc.repo.QueryStudents(ctx, QueryFilter{ParentID: parentID})
}

func (svc *service) GetByID(ctx context.Context, id int) (Student, error) {
	return svc.repo.GetStudentByID(ctx, id)
}

func (svc *service) Update(ctx context.Context, id int, us UpdateStudent) (Student, error) {
	us.Clean()
	if us.IsEmpty() {
		return Student{}, core.ErrNoFieldsToUpdate
	}
	if err := svc.validator.Struct(us); err != nil {
		return Student{}, err
	}

	var refs []core.Ref
	changes := core.Changes{"updated_at": core.Now()}
	if us.Name != nil {
		changes["name"] = *us.Name
	}
	if us.Email != nil {
		changes["email"] = *us.Email
	}
	if us.Classroom != nil {
		changes["classroom"] = null.NewString(*us.Classroom, *us.Classroom != "")
	}
	if us.ParentID != nil {
		changes["parent_id"] = *us.ParentID
		refs = append(refs, ParentRef.To(*us.ParentID))
	}
	if us.TeacherID != nil {
		changes["teacher_id"] = *us.TeacherID
		refs = append(refs, TeacherRef.To(*us.TeacherID))
	}
	return svc.repo.UpdateStudent(ctx, id, changes, refs...)
}

func (svc *service) Delete(ctx context.Context, id int) error {
	return svc.repo.DeleteStudent(ctx, id)
}
