package assignment

import (
	"context"

	"github.com/kat-co/vala"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/shule/core"
)

type (
	Repository interface {
		CreateAssignment(ctx context.Context, a Assignment, refs ...core.Ref) (Assignment, error)
		QueryAssignments(ctx context.Context, filter QueryFilter) ([]Assignment, error)
		GetAssignmentByID(ctx context.Context, id int) (Assignment, error)
		UpdateAssignment(ctx context.Context, id int, changes core.Changes, refs ...core.Ref) (Assignment, error)
		DeleteAssignment(ctx context.Context, id int) error
	}

	Service interface {
		Create(ctx context.Context, na NewAssignment) (Assignment, error)
		QueryAll(ctx context.Context) ([]Assignment, error)
		QueryByStudent(ctx context.Context, studentID int) ([]Assignment, error)
		GetByID(ctx context.Context, id int) (Assignment, error)
		Update(ctx context.Context, id int, ua UpdateAssignment) (Assignment, error)
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

	InitValidators(v)
	return &service{repo: repo, validator: v}
}

func (svc *service) Create(ctx context.Context, na NewAssignment) (Assignment, error) {
	if err := svc.validator.Struct(na); err != nil {
		return Assignment{}, err
	}

	a := Assignment{
		StudentID:  na.StudentID,
		HomeworkID: na.HomeworkID,
		TaskID:     na.TaskID,
		CreatedAt:  core.Now(),
	}
	return svc.repo.CreateAssignment(ctx, a, a.References()...)
}

func (svc *service) QueryAll(ctx context.Context) ([]Assignment, error) {
	return svc.repo.QueryAssignments(ctx, QueryFilter{})
}

func (svc *service) QueryByStudent(ctx context.Context, studentID int) ([]Assignment, error) {
	return svc.repo.QueryAssignments(ctx, QueryFilter{StudentID: studentID})
}

func (svc *service) GetByID(ctx context.Context, id int) (Assignment, error) {
	return svc.repo.GetAssignmentByID(ctx, id)
}

func (svc *service) Update(ctx context.Context, id int, ua UpdateAssignment) (Assignment, error) {
	if ua.IsEmpty() {
		return Assignment{}, core.ErrNoFieldsToUpdate
	}
	if err := svc.validator.Struct(ua); err != nil {
		return Assignment{}, err
	}

	var refs []core.Ref
	changes := make(core.Changes)
	if ua.StudentID != nil {
		changes["student_id"] = *ua.StudentID
		refs = append(refs, StudentRef.To(*ua.StudentID))
	}
	if ua.HomeworkID != nil {
		changes["homework_id"] = null.IntFrom(*ua.HomeworkID)
		changes["task_id"] = null.Int{}
		refs = append(refs, HomeworkRef.To(*ua.HomeworkID))
	}
	if ua.TaskID != nil {
		changes["task_id"] = null.IntFrom(*ua.TaskID)
		changes["homework_id"] = null.Int{}
		refs = append(refs, TaskRef.To(*ua.TaskID))
	}
	return svc.repo.UpdateAssignment(ctx, id, changes, refs...)
}

func (svc *service) Delete(ctx context.Context, id int) error {
	return svc.repo.DeleteAssignment(ctx, id)
}
