package homework

import (
	"context"

	"github.com/kat-co/vala"

	"github.com/trezcool/shule/core"
)

type (
	Repository interface {
		CreateHomework(ctx context.Context, hw Homework) (Homework, error)
		QueryHomework(ctx context.Context) ([]Homework, error)
		GetHomeworkByID(ctx context.Context, id int) (Homework, error)
		UpdateHomework(ctx context.Context, id int, changes core.Changes) (Homework, error)
		DeleteHomework(ctx context.Context, id int) error
	}

	Service interface {
		Create(ctx context.Context, nh NewHomework) (Homework, error)
		QueryAll(ctx context.Context) ([]Homework, error)
		GetByID(ctx context.Context, id int) (Homework, error)
		Update(ctx context.Context, id int, uh UpdateHomework) (Homework, error)
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

func (svc *service) Create(ctx context.Context, nh NewHomework) (Homework, error) {
	nh.Clean()
	if err := svc.validator.Struct(nh); err != nil {
		return Homework{}, err
	}

	now := core.Now()
	hw := Homework{
		Title:        nh.Title,
		Description:  nh.Description,
		ChapterStart: nh.ChapterStart,
		ChapterEnd:   nh.ChapterEnd,
		VerseStart:   nh.VerseStart,
		VerseEnd:     nh.VerseEnd,
		DueDate:      nh.DueDate,
		Status:       nh.Status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if hw.DueDate.IsZero() {
		hw.DueDate = core.Today()
	}
	if hw.Status == "" {
		hw.Status = StatusPending
	}
	if err := hw.check(); err != nil {
		return Homework{}, err
	}
	return svc.repo.CreateHomework(ctx, hw)
}

func (svc *service) QueryAll(ctx context.Context) ([]Homework, error) {
	return svc.repo.QueryHomework(ctx)
}

func (svc *service) GetByID(ctx context.Context, id int) (Homework, error) {
	return svc.repo.GetHomeworkByID(ctx, id)
}

func (svc *service) Update(ctx context.Context, id int, uh UpdateHomework) (Homework, error) {
	uh.Clean()
	if uh.IsEmpty() {
		return Homework{}, core.ErrNoFieldsToUpdate
	}
	if err := svc.validator.Struct(uh); err != nil {
		return Homework{}, err
	}

	// ranges are checked against the stored row merged with the supplied fields
	hw, err := svc.repo.GetHomeworkByID(ctx, id)
	if err != nil {
		return Homework{}, err
	}
	changes := uh.apply(&hw)
	if err := hw.check(); err != nil {
		return Homework{}, err
	}
	changes["updated_at"] = core.Now()
	return svc.repo.UpdateHomework(ctx, id, changes)
}

func (svc *service) Delete(ctx context.Context, id int) error {
	return svc.repo.DeleteHomework(ctx, id)
}
