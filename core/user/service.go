package user

import (
	"context"

	"github.com/kat-co/vala"

	"github.com/trezcool/shule/core"
)

var (
	// errors
	ErrEmailExists = core.NewConstraintError("a user with this email already exists", nil)
)

type (
	Repository interface {
		CreateUser(ctx context.Context, usr User) (User, error)
		QueryUsers(ctx context.Context) ([]User, error)
		GetUserByID(ctx context.Context, id int) (User, error)
		GetUserByEmail(ctx context.Context, email string) (User, error)
		UpdateUser(ctx context.Context, id int, changes core.Changes) (User, error)
		DeleteUser(ctx context.Context, id int) error
	}

	Service interface {
		Create(ctx context.Context, nu NewUser) (User, error)
		QueryAll(ctx context.Context) ([]User, error)
		GetByID(ctx context.Context, id int) (User, error)
		GetByEmail(ctx context.Context, email string) (User, error)
		Update(ctx context.Context, id int, uu UpdateUser) (User, error)
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

func (svc *service) Create(ctx context.Context, nu NewUser) (User, error) {
	nu.Clean()
	if err := svc.validator.Struct(nu); err != nil {
		return User{}, err
	}

	now := core.Now()
	usr := User{
		Name:      nu.Name,
		Email:     nu.Email,
		Role:      nu.Role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, err
	}
	return svc.repo.CreateUser(ctx, usr)
}

func (svc *service) QueryAll(ctx context.Context) ([]User, error) {
	return svc.repo.QueryUsers(ctx)
}

func (svc *service) GetByID(ctx context.Context, id int) (User, error) {
	return svc.repo.GetUserByID(ctx, id)
}

func (svc *service) GetByEmail(ctx context.Context, email string) (User, error) {
	return svc.repo.GetUserByEmail(ctx, core.CleanString(email, true /* lower */))
}

func (svc *service) Update(ctx context.Context, id int, uu UpdateUser) (User, error) {
	uu.Clean()
	if uu.IsEmpty() {
		return User{}, core.ErrNoFieldsToUpdate
	}
	if err := svc.validator.Struct(uu); err != nil {
		return User{}, err
	}

	changes := core.Changes{"updated_at": core.Now()}
	if uu.Name != nil {
		changes["name"] = *uu.Name
	}
	if uu.Email != nil {
		changes["email"] = *uu.Email
	}
	if uu.Role != nil {
		changes["role"] = *uu.Role
	}
	if uu.Password != nil {
		var usr User
		if err := usr.SetPassword(*uu.Password); err != nil {
			return User{}, err
		}
		changes["password"] = usr.PasswordHash
	}
	return svc.repo.UpdateUser(ctx, id, changes)
}

func (svc *service) Delete(ctx context.Context, id int) error {
	return svc.repo.DeleteUser(ctx, id)
}
