package sqlxrepos

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/user"
)

var userColumns = []string{"id", "name", "email", "password", "role", "created_at", "updated_at"}

type userRepository struct {
	base
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *sqlx.DB, opts Options) *userRepository {
	return &userRepository{base: newBase(db, opts)}
}

func (repo *userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	id, err := repo.insert(ctx, core.EntityUser, map[string]interface{}{
		"name":       usr.Name,
		"email":      usr.Email,
		"password":   usr.PasswordHash,
		"role":       usr.Role,
		"created_at": usr.CreatedAt,
		"updated_at": usr.UpdatedAt,
	})
	if err != nil {
		return user.User{}, emailError(err)
	}
	usr.ID = id
	return usr, nil
}

func (repo *userRepository) QueryUsers(ctx context.Context) ([]user.User, error) {
	users := make([]user.User, 0)
	err := repo.query(ctx, core.EntityUser, userColumns, nil, &users)
	return users, err
}

func (repo *userRepository) GetUserByID(ctx context.Context, id int) (user.User, error) {
	var usr user.User
	err := repo.getByID(ctx, core.EntityUser, id, userColumns, &usr)
	return usr, err
}

func (repo *userRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	var usr user.User
	err := repo.withConn(ctx, func(conn *sqlx.Conn) error {
		query := repo.sb.Select(userColumns...).From(tables[core.EntityUser]).Where(sq.Eq{"email": email})
		return notFound(get(ctx, conn, &usr, query), core.EntityUser, 0)
	})
	return usr, err
}

func (repo *userRepository) UpdateUser(ctx context.Context, id int, changes core.Changes) (user.User, error) {
	var usr user.User
	if err := repo.update(ctx, core.EntityUser, id, changes, userColumns, &usr); err != nil {
		return user.User{}, emailError(err)
	}
	return usr, nil
}

func (repo *userRepository) DeleteUser(ctx context.Context, id int) error {
	return repo.deleteRow(ctx, core.EntityUser, id)
}

// emailError reports a taken email as user.ErrEmailExists.
func emailError(err error) error {
	if isUniqueViolation(err, tables[core.EntityUser], "email") {
		return user.ErrEmailExists
	}
	return err
}
