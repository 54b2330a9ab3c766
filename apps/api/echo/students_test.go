package echoapi_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/student"
	"github.com/trezcool/shule/core/user"
	"github.com/trezcool/shule/tests"
)

func Test_studentApi(t *testing.T) {
	app := setup(t, core.DeleteRestrict)
	ctx := context.Background()

	parent := testutil.CreateUser(t, app.repos.Users, "Parent", "parent@test.cd", user.RoleParent)
	parent2 := testutil.CreateUser(t, app.repos.Users, "Parent 2", "parent2@test.cd", user.RoleParent)
	teacher := testutil.CreateUser(t, app.repos.Users, "Teacher", "teacher@test.cd", user.RoleTeacher)
	teacher2 := testutil.CreateUser(t, app.repos.Users, "Teacher 2", "teacher2@test.cd", user.RoleTeacher)

	kid1 := testutil.CreateStudent(t, app.repos.Students, "kid1", parent.ID, teacher.ID)
	kid2 := testutil.CreateStudent(t, app.repos.Students, "kid2", parent2.ID, teacher.ID)
	kid3 := testutil.CreateStudent(t, app.repos.Students, "kid3", parent.ID, teacher2.ID)
	reload := func(st student.Student) student.Student {
		st, err := app.repos.Students.GetStudentByID(ctx, st.ID)
		require.NoError(t, err)
		return st
	}
	kid1, kid2, kid3 = reload(kid1), reload(kid2), reload(kid3)

	runHTTPTests(t, app, []httpTest{
		{
			name:     "list",
			method:   http.MethodGet,
			path:     "/v1/students",
			wantCode: http.StatusOK,
			wantData: marchallList(t, kid1, kid2, kid3),
		},
		{
			name:     "list by teacher",
			method:   http.MethodGet,
			path:     "/v1/students?teacher_id=" + itoa(teacher.ID),
			wantCode: http.StatusOK,
			wantData: marchallList(t, kid1, kid2),
		},
		{
			name:     "list by parent",
			method:   http.MethodGet,
			path:     "/v1/students?parent_id=" + itoa(parent.ID),
			wantCode: http.StatusOK,
			wantData: marchallList(t, kid1, kid3),
		},
		{
			name:     "list by unknown teacher",
			method:   http.MethodGet,
			path:     "/v1/students?teacher_id=999",
			wantCode: http.StatusOK,
			wantData: marchallList(t),
		},
		{
			name:     "retrieve",
			method:   http.MethodGet,
			path:     "/v1/students/" + itoa(kid2.ID),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, kid2),
		},
		{
			name:     "create with a teacher as parent",
			method:   http.MethodPost,
			path:     "/v1/students",
			body:     []byte(`{"name": "kid4", "email": "kid4@test.cd", "parent_id": ` + itoa(teacher.ID) + `, "teacher_id": ` + itoa(teacher.ID) + `}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"parent_id": "invalid parent_id: no such parent exists"}),
		},
		{
			name:     "update with unknown teacher",
			method:   http.MethodPut,
			path:     "/v1/students/" + itoa(kid1.ID),
			body:     []byte(`{"teacher_id": 999}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"teacher_id": "invalid teacher_id: no such teacher exists"}),
		},
		{
			name:     "update unknown",
			method:   http.MethodPut,
			path:     "/v1/students/999",
			body:     []byte(`{"teacher_id": 999}`),
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "student not found"}),
		},
		{
			name:     "delete",
			method:   http.MethodDelete,
			path:     "/v1/students/" + itoa(kid3.ID),
			wantCode: http.StatusNoContent,
		},
	})

	t.Run("create", func(t *testing.T) {
		body := `{"name": "kid4", "email": "kid4@test.cd", "parent_id": ` + itoa(parent2.ID) +
			`, "teacher_id": ` + itoa(teacher2.ID) + `, "classroom": "6B"}`
		req, rec := newRequest(http.MethodPost, "/v1/students", []byte(body))
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var got student.Student
		decode(t, rec, &got)
		assert.NotZero(t, got.ID)
		assert.Equal(t, parent2.ID, got.ParentID)
		assert.Equal(t, teacher2.ID, got.TeacherID)
		assert.Equal(t, "6B", got.Classroom.String)
	})

	t.Run("update", func(t *testing.T) {
		req, rec := newRequest(http.MethodPut, "/v1/students/"+itoa(kid2.ID), []byte(`{"teacher_id": `+itoa(teacher2.ID)+`}`))
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var got student.Student
		decode(t, rec, &got)
		assert.Equal(t, teacher2.ID, got.TeacherID)
		assert.Equal(t, kid2.ParentID, got.ParentID, "untouched fields are kept")
		assert.Equal(t, kid2.Name, got.Name, "untouched fields are kept")
	})
}
