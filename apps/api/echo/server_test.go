package echoapi_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/shule/core"
)

func TestServer_home(t *testing.T) {
	app := setup(t, core.DeleteRestrict)

	req, rec := newRequest(http.MethodGet, "/")
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome to Shule API!", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"), "request id")
}

func TestServer_errors(t *testing.T) {
	app := setup(t, core.DeleteRestrict)

	runHTTPTests(t, app, []httpTest{
		{
			name:     "unknown route",
			method:   http.MethodGet,
			path:     "/v1/unknown",
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "Not Found"}),
		},
		{
			name:     "malformed id",
			method:   http.MethodGet,
			path:     "/v1/users/abc",
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "not found"}),
		},
		{
			name:     "non-positive id",
			method:   http.MethodDelete,
			path:     "/v1/tasks/0",
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "not found"}),
		},
		{
			name:     "trailing slash",
			method:   http.MethodGet,
			path:     "/v1/users/",
			wantCode: http.StatusOK,
			wantData: marchallList(t),
		},
		{
			name:     "no fields to update",
			method:   http.MethodPut,
			path:     "/v1/homework/1",
			body:     []byte(`{}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "no fields to update"}),
		},
	})
}

func TestServer_malformedBody(t *testing.T) {
	app := setup(t, core.DeleteRestrict)

	req, rec := newRequest(http.MethodPost, "/v1/users", []byte(`{"name": `))
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var data httpErr
	decode(t, rec, &data)
	assert.NotEmpty(t, data.Error)
}
