package user_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/user"
	"github.com/trezcool/shule/tests"
)

func setup(t *testing.T) (user.Service, user.Repository) {
	db := testutil.PrepareDB(t)
	repos := testutil.Repositories(t, db, core.DeleteRestrict)
	return user.NewService(repos.Users, core.NewValidator()), repos.Users
}

func strPtr(s string) *string { return &s }

func TestService_Create(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	tests := []struct {
		name       string
		nu         user.NewUser
		wantFields []string
	}{
		{name: "empty", nu: user.NewUser{}, wantFields: []string{"name", "email", "password", "role"}},
		{
			name:       "bad email & role",
			nu:         user.NewUser{Name: "Bad", Email: "bad", Password: "v3ry-l0ng-pwd", Role: "student"},
			wantFields: []string{"email", "role"},
		},
		{
			name:       "blank name",
			nu:         user.NewUser{Name: "   ", Email: "blank@test.cd", Password: "v3ry-l0ng-pwd", Role: user.RoleAdmin},
			wantFields: []string{"name"},
		},
		{
			name:       "short password",
			nu:         user.NewUser{Name: "Short", Email: "short@test.cd", Password: "pwd", Role: user.RoleAdmin},
			wantFields: []string{"password"},
		},
		{
			name:       "password with spaces",
			nu:         user.NewUser{Name: "Space", Email: "space@test.cd", Password: "my pass word", Role: user.RoleAdmin},
			wantFields: []string{"password"},
		},
		{
			name:       "password like name",
			nu:         user.NewUser{Name: "Jeanne Mwamba", Email: "jm@test.cd", Password: "jeannemwamba", Role: user.RoleAdmin},
			wantFields: []string{"password"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.nu)
			var vErr *core.ValidationError
			require.ErrorAs(t, err, &vErr)
			fields := make([]string, 0, len(vErr.Fields))
			for _, fld := range vErr.Fields {
				fields = append(fields, fld.Field)
			}
			assert.ElementsMatch(t, tt.wantFields, fields)
		})
	}

	t.Run("required message", func(t *testing.T) {
		_, err := svc.Create(ctx, user.NewUser{Name: "No Role", Email: "norole@test.cd", Password: "v3ry-l0ng-pwd"})
		assert.EqualError(t, err, "role: this field is required")
	})
}

func TestService_CreateGet(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	usr, err := svc.Create(ctx, user.NewUser{
		Name:     " Amani Kasongo ",
		Email:    "Amani@Test.CD",
		Password: "s3cr3t-pwd",
		Role:     "Teacher",
	})
	require.NoError(t, err)
	assert.NotZero(t, usr.ID)
	assert.NoError(t, usr.CheckPassword("s3cr3t-pwd"))

	got, err := svc.GetByID(ctx, usr.ID)
	require.NoError(t, err)
	assert.Equal(t, "Amani Kasongo", got.Name)
	assert.Equal(t, "amani@test.cd", got.Email)
	assert.Equal(t, user.RoleTeacher, got.Role)
	assert.Equal(t, usr.PasswordHash, got.PasswordHash)

	byEmail, err := svc.GetByEmail(ctx, " AMANI@test.cd")
	require.NoError(t, err)
	assert.Equal(t, usr.ID, byEmail.ID)

	_, err = svc.GetByID(ctx, usr.ID+1)
	assert.True(t, core.IsNotFound(err))
}

func TestService_CreateDuplicateEmail(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()
	testutil.CreateUser(t, repo, "First", "taken@test.cd", user.RoleParent)

	_, err := svc.Create(ctx, user.NewUser{Name: "Second", Email: "TAKEN@test.cd", Password: "s3cr3t-pwd", Role: user.RoleParent})
	assert.True(t, core.IsConstraintError(err))
	assert.EqualError(t, err, "a user with this email already exists")

	users, err := svc.QueryAll(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestService_Update(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()
	usr := testutil.CreateUser(t, repo, "Parent", "parent@test.cd", user.RoleParent)

	t.Run("no fields", func(t *testing.T) {
		_, err := svc.Update(ctx, usr.ID, user.UpdateUser{})
		assert.Equal(t, core.ErrNoFieldsToUpdate, err)
		assert.EqualError(t, err, "no fields to update")
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := svc.Update(ctx, usr.ID+100, user.UpdateUser{Name: strPtr("Ghost")})
		assert.True(t, core.IsNotFound(err))
	})

	t.Run("bad role", func(t *testing.T) {
		_, err := svc.Update(ctx, usr.ID, user.UpdateUser{Role: strPtr("janitor")})
		assert.EqualError(t, err, "role: must be one of: admin teacher parent")
	})

	t.Run("named fields only", func(t *testing.T) {
		updated, err := svc.Update(ctx, usr.ID, user.UpdateUser{Name: strPtr(" Papa ")})
		require.NoError(t, err)
		assert.Equal(t, "Papa", updated.Name)
		assert.Equal(t, usr.Email, updated.Email)
		assert.Equal(t, usr.Role, updated.Role)
		assert.Equal(t, usr.PasswordHash, updated.PasswordHash)
		assert.False(t, updated.UpdatedAt.Before(usr.UpdatedAt))

		again, err := svc.Update(ctx, usr.ID, user.UpdateUser{Name: strPtr("Papa")})
		require.NoError(t, err)
		assert.Equal(t, updated.Name, again.Name)
	})

	t.Run("password", func(t *testing.T) {
		updated, err := svc.Update(ctx, usr.ID, user.UpdateUser{Password: strPtr("n3w-s3cr3t")})
		require.NoError(t, err)
		assert.NotEqual(t, usr.PasswordHash, updated.PasswordHash)
		assert.NoError(t, updated.CheckPassword("n3w-s3cr3t"))
	})
}

func TestService_Delete(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()
	usr := testutil.CreateUser(t, repo, "Admin", "admin@test.cd", user.RoleAdmin)

	require.NoError(t, svc.Delete(ctx, usr.ID))
	assert.True(t, core.IsNotFound(svc.Delete(ctx, usr.ID)))
}
