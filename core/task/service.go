package task

import (
	"context"

	"github.com/kat-co/vala"

	"github.com/trezcool/shule/core"
)

type (
	Repository interface {
		CreateTask(ctx context.Context, t Task) (Task, error)
		QueryTasks(ctx context.Context) ([]Task, error)
		GetTaskByID(ctx context.Context, id int) (Task, error)
		UpdateTask(ctx context.Context, id int, changes core.Changes) (Task, error)
		DeleteTask(ctx context.Context, id int) error
	}

	Service interface {
		Create(ctx context.Context, nt NewTask) (Task, error)
		QueryAll(ctx context.Context) ([]Task, error)
		GetByID(ctx context.Context, id int) (Task, error)
		Update(ctx context.Context, id int, ut UpdateTask) (Task, error)
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

func (svc *service) Create(ctx context.Context, nt NewTask) (Task, error) {
	nt.Clean()
	if err := svc.validator.Struct(nt); err != nil {
		return Task{}, err
	}

	now := core.Now()
	t := Task{
		Title:       nt.Title,
		Description: nt.Description,
		StartDate:   nt.StartDate,
		EndDate:     nt.EndDate,
		Status:      nt.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if t.Status == "" {
		t.Status = StatusIncomplete
	}
	if err := t.checkDates(); err != nil {
		return Task{}, err
	}
	return svc.repo.CreateTask(ctx, t)
}

func (svc *service) QueryAll(ctx context.Context) ([]Task, error) {
	return svc.repo.QueryTasks(ctx)
}

func (svc *service) GetByID(ctx context.Context, id int) (Task, error) {
	return svc.repo.GetTaskByID(ctx, id)
}

func (svc *service) Update(ctx context.Context, id int, ut UpdateTask) (Task, error) {
	ut.Clean()
	if ut.IsEmpty() {
		return Task{}, core.ErrNoFieldsToUpdate
	}
	if err := svc.validator.Struct(ut); err != nil {
		return Task{}, err
	}

	t, err := svc.repo.GetTaskByID(ctx, id)
	if err != nil {
		return Task{}, err
	}
	changes := ut.apply(&t)
	if err := t.checkDates(); err != nil {
		return Task{}, err
	}
	changes["updated_at"] = core.Now()
	return svc.repo.UpdateTask(ctx, id, changes)
}

func (svc *service) Delete(ctx context.Context, id int) error {
	return svc.repo.DeleteTask(ctx, id)
}
