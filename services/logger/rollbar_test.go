package logsvc

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/user"
)

func newTestLogger() (*RollbarLogger, *bytes.Buffer) {
	buf := new(bytes.Buffer)
	conf := &core.Config{Env: "TEST", TestMode: true}
	return NewRollbarLogger(log.New(buf, "", 0), conf), buf
}

func TestNewEntry_MergesExtras(t *testing.T) {
	usr := user.User{ID: 7, Name: "Jane", Email: "jane@example.com"}
	cause := errors.New("boom")
	e := newEntry("failed", []interface{}{
		map[string]interface{}{"id": 1, "path": "/v1/users"},
		cause,
		usr,
		map[string]interface{}{"id": 2},
		errors.New("second"),
		42,
		nil,
	})

	assert.Equal(t, "failed", e.msg)
	assert.Equal(t, cause, e.err)
	require.NotNil(t, e.person)
	assert.Equal(t, 7, e.person.ID)
	assert.Equal(t, map[string]interface{}{
		"id":   2,
		"path": "/v1/users",
		"args": []interface{}{"second", 42},
	}, e.extras)
}

func TestNewEntry_NoArgs(t *testing.T) {
	e := newEntry("hello", nil)
	assert.Nil(t, e.err)
	assert.Nil(t, e.person)
	assert.Empty(t, e.extras)
}

func TestRollbarLogger_PrintsExtrasSorted(t *testing.T) {
	logger, buf := newTestLogger()

	logger.Warn("deleting referenced student", map[string]interface{}{"id": 3, "dependents": "2 assignment(s)"})

	assert.Equal(t, "deleting referenced student dependents=2 assignment(s) id=3\n", buf.String())
}

func TestRollbarLogger_PrintsUserAndError(t *testing.T) {
	logger, buf := newTestLogger()

	logger.Error("request failed", errors.New("db down"), user.User{ID: 5}, map[string]interface{}{"method": "GET"})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.GreaterOrEqual(t, len(lines), 2)
	assert.Equal(t, "request failed user=5 method=GET", lines[0])
	assert.Equal(t, "db down", lines[1])
}

func TestRollbarLogger_Levels(t *testing.T) {
	logger, buf := newTestLogger()

	logger.Debug("one")
	logger.Info("two", 3)

	assert.Equal(t, "one\ntwo args=[3]\n", buf.String())
}
