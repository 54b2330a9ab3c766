package echoapi_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/user"
	"github.com/trezcool/shule/tests"
)

func Test_userApi_create(t *testing.T) {
	app := setup(t, core.DeleteRestrict)
	testutil.CreateUser(t, app.repos.Users, "Taken", "taken@test.cd", user.RoleAdmin)

	t.Run("valid", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/users", []byte(`{
			"name": "  Jane Doe ",
			"email": "Jane@Test.cd",
			"password": "Sup3r-s3cr3t!",
			"role": "Teacher"
		}`))
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var got map[string]interface{}
		decode(t, rec, &got)
		assert.NotZero(t, got["id"])
		assert.Equal(t, "Jane Doe", got["name"])
		assert.Equal(t, "jane@test.cd", got["email"])
		assert.Equal(t, user.RoleTeacher, got["role"])
		assert.NotContains(t, got, "password", "password hash must not leak")
	})

	runHTTPTests(t, app, []httpTest{
		{
			name:     "duplicate email",
			method:   http.MethodPost,
			path:     "/v1/users",
			body:     []byte(`{"name": "Other", "email": "TAKEN@test.cd", "password": "Sup3r-s3cr3t!", "role": "parent"}`),
			wantCode: http.StatusConflict,
			wantData: marchallObj(t, httpErr{Error: "a user with this email already exists"}),
		},
	})

	t.Run("missing fields", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/users", []byte(`{"role": "janitor"}`))
		app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var got map[string]string
		decode(t, rec, &got)
		assert.Equal(t, "this field is required", got["name"])
		assert.Equal(t, "this field is required", got["email"])
		assert.Equal(t, "this field is required", got["password"])
		assert.Equal(t, "must be one of: admin teacher parent", got["role"])
	})
}

func Test_userApi_detail(t *testing.T) {
	app := setup(t, core.DeleteRestrict)
	ctx := context.Background()

	parent := testutil.CreateUser(t, app.repos.Users, "Parent", "parent@test.cd", user.RoleParent)
	teacher := testutil.CreateUser(t, app.repos.Users, "Teacher", "teacher@test.cd", user.RoleTeacher)
	admin := testutil.CreateUser(t, app.repos.Users, "Admin", "admin@test.cd", user.RoleAdmin)
	testutil.CreateStudent(t, app.repos.Students, "kid", parent.ID, teacher.ID)

	parent, err := app.repos.Users.GetUserByID(ctx, parent.ID)
	require.NoError(t, err)
	teacher, err = app.repos.Users.GetUserByID(ctx, teacher.ID)
	require.NoError(t, err)
	admin, err = app.repos.Users.GetUserByID(ctx, admin.ID)
	require.NoError(t, err)

	runHTTPTests(t, app, []httpTest{
		{
			name:     "list",
			method:   http.MethodGet,
			path:     "/v1/users",
			wantCode: http.StatusOK,
			wantData: marchallList(t, parent, teacher, admin),
		},
		{
			name:     "roles",
			method:   http.MethodGet,
			path:     "/v1/users/roles",
			wantCode: http.StatusOK,
			wantData: marchallObj(t, user.Roles),
		},
		{
			name:     "retrieve",
			method:   http.MethodGet,
			path:     "/v1/users/" + itoa(admin.ID),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, admin),
		},
		{
			name:     "retrieve unknown",
			method:   http.MethodGet,
			path:     "/v1/users/999",
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "user not found"}),
		},
		{
			name:     "update unknown",
			method:   http.MethodPut,
			path:     "/v1/users/999",
			body:     []byte(`{"name": "Ghost"}`),
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "user not found"}),
		},
		{
			name:     "update to a taken email",
			method:   http.MethodPut,
			path:     "/v1/users/" + itoa(admin.ID),
			body:     []byte(`{"email": "parent@test.cd"}`),
			wantCode: http.StatusConflict,
			wantData: marchallObj(t, httpErr{Error: "a user with this email already exists"}),
		},
		{
			name:     "delete referenced",
			method:   http.MethodDelete,
			path:     "/v1/users/" + itoa(teacher.ID),
			wantCode: http.StatusConflict,
			wantData: marchallObj(t, httpErr{Error: "cannot delete user: still referenced by 1 student(s)"}),
		},
		{
			name:     "delete",
			method:   http.MethodDelete,
			path:     "/v1/users/" + itoa(admin.ID),
			wantCode: http.StatusNoContent,
		},
		{
			name:     "delete again",
			method:   http.MethodDelete,
			path:     "/v1/users/" + itoa(admin.ID),
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "user not found"}),
		},
	})

	t.Run("update", func(t *testing.T) {
		req, rec := newRequest(http.MethodPut, "/v1/users/"+itoa(parent.ID), []byte(`{"name": "Mama"}`))
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var got user.User
		decode(t, rec, &got)
		assert.Equal(t, parent.ID, got.ID)
		assert.Equal(t, "Mama", got.Name)
		assert.Equal(t, parent.Email, got.Email, "untouched fields are kept")
		assert.Equal(t, parent.Role, got.Role, "untouched fields are kept")
	})
}
