package testutil

import (
	"context"
	"io/ioutil"
	"log"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/assignment"
	"github.com/trezcool/shule/core/homework"
	"github.com/trezcool/shule/core/student"
	"github.com/trezcool/shule/core/task"
	"github.com/trezcool/shule/core/user"
	"github.com/trezcool/shule/services/logger"
	"github.com/trezcool/shule/storage/database"
	"github.com/trezcool/shule/storage/database/sqlx"
)

// NewConfig returns a test config pointing at a fresh sqlite file.
func NewConfig(t *testing.T) *core.Config {
	return &core.Config{
		Env:      "TEST",
		AppName:  "Shule",
		Debug:    true,
		TestMode: true,
		Database: core.DBConfig{
			Engine:       database.EngineSQLite,
			Path:         filepath.Join(t.TempDir(), "shule.db"),
			DeletePolicy: core.DeleteRestrict,
		},
	}
}

// PrepareDB opens a migrated sqlite database, closed when the test ends.
func PrepareDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := database.Open(NewConfig(t))
	require.NoError(t, err, "opening database")
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.Migrate(db), "migrating database")
	return db
}

// NewLogger returns a logger writing nowhere, with rollbar disabled.
func NewLogger(t *testing.T) core.Logger {
	return logsvc.NewRollbarLogger(log.New(ioutil.Discard, "", 0), NewConfig(t))
}

// Repositories returns every repository on db, deleting per policy.
func Repositories(t *testing.T, db *sqlx.DB, policy core.DeletePolicy) sqlxrepos.Repositories {
	return sqlxrepos.NewRepositories(db, sqlxrepos.Options{DeletePolicy: policy, Logger: NewLogger(t)})
}

func CreateUser(t *testing.T, repo user.Repository, name, email, role string) user.User {
	t.Helper()

	now := core.Now()
	usr := user.User{Name: name, Email: email, Role: role, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, usr.SetPassword("s3cr3t-pwd"), "CreateUser()")
	usr, err := repo.CreateUser(context.Background(), usr)
	require.NoError(t, err, "CreateUser()")
	return usr
}

func CreateStudent(t *testing.T, repo student.Repository, name string, parentID, teacherID int) student.Student {
	t.Helper()

	now := core.Now()
	st := student.Student{
		Name:      name,
		Email:     name + "@students.test",
		ParentID:  parentID,
		TeacherID: teacherID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	st, err := repo.CreateStudent(context.Background(), st, st.References()...)
	require.NoError(t, err, "CreateStudent()")
	return st
}

func CreateHomework(t *testing.T, repo homework.Repository, title string) homework.Homework {
	t.Helper()

	now := core.Now()
	hw := homework.Homework{
		Title:        title,
		Description:  "read " + title,
		ChapterStart: null.IntFrom(1),
		ChapterEnd:   null.IntFrom(2),
		DueDate:      core.Today(),
		Status:       homework.StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	hw, err := repo.CreateHomework(context.Background(), hw)
	require.NoError(t, err, "CreateHomework()")
	return hw
}

func CreateTask(t *testing.T, repo task.Repository, title string, start, end core.Date) task.Task {
	t.Helper()

	now := core.Now()
	tsk := task.Task{
		Title:       title,
		Description: "do " + title,
		StartDate:   start,
		EndDate:     end,
		Status:      task.StatusIncomplete,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	tsk, err := repo.CreateTask(context.Background(), tsk)
	require.NoError(t, err, "CreateTask()")
	return tsk
}

// CreateAssignment assigns a homework (taskID = 0) or a task (homeworkID = 0) to a student.
func CreateAssignment(t *testing.T, repo assignment.Repository, studentID, homeworkID, taskID int) assignment.Assignment {
	t.Helper()

	a := assignment.Assignment{
		StudentID:  studentID,
		HomeworkID: null.NewInt(homeworkID, homeworkID != 0),
		TaskID:     null.NewInt(taskID, taskID != 0),
		CreatedAt:  core.Now(),
	}
	a, err := repo.CreateAssignment(context.Background(), a, a.References()...)
	require.NoError(t, err, "CreateAssignment()")
	return a
}
