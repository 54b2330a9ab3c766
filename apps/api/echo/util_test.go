package echoapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/trezcool/shule/apps/api/echo"
	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/assignment"
	"github.com/trezcool/shule/core/homework"
	"github.com/trezcool/shule/core/student"
	"github.com/trezcool/shule/core/task"
	"github.com/trezcool/shule/core/user"
	"github.com/trezcool/shule/storage/database/sqlx"
	"github.com/trezcool/shule/tests"
)

type testApp struct {
	*Server
	repos sqlxrepos.Repositories
}

func setup(t *testing.T, policy core.DeletePolicy) testApp {
	conf := testutil.NewConfig(t)
	conf.Debug = false

	// set up DB & repos
	db := testutil.PrepareDB(t)
	repos := testutil.Repositories(t, db, policy)

	// set up services
	v := core.NewValidator()
	srv := NewServer(ServerDeps{
		Conf:          conf,
		Logger:        testutil.NewLogger(t),
		UserSvc:       user.NewService(repos.Users, v),
		StudentSvc:    student.NewService(repos.Students, v),
		HomeworkSvc:   homework.NewService(repos.Homework, v),
		TaskSvc:       task.NewService(repos.Tasks, v),
		AssignmentSvc: assignment.NewService(repos.Assignments, v),
	})
	return testApp{Server: srv, repos: repos}
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func (app testApp) do(t *testing.T, tt httpTest) *httptest.ResponseRecorder {
	req, rec := newRequest(tt.method, tt.path, tt.body)
	app.ServeHTTP(rec, req)
	return rec
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	if objs == nil {
		objs = []interface{}{}
	}
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList(): %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()

	assert.Equal(t, tt.wantCode, rec.Code, "code")
	if tt.wantData == nil {
		if tt.wantCode == http.StatusNoContent {
			assert.Empty(t, rec.Body.String(), "data")
		}
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if assert.NoError(t, err, "jsonBytesEqual()") {
		assert.True(t, ok, "data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

// runHTTPTests runs every test against app, in order.
func runHTTPTests(t *testing.T, app testApp, tests []httpTest) {
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkCodeAndData(t, tt, app.do(t, tt))
		})
	}
}

// decode reads a JSON response body into dest.
func decode(t *testing.T, rec *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dest); err != nil {
		t.Fatalf("decode(%s): %v", rec.Body.String(), err)
	}
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
