package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/homework"
	"github.com/trezcool/shule/core/task"
)

const seedYAML = `
users:
  - name: Principal
    email: principal@test.cd
    password: Sup3r-s3cr3t!
    role: admin
  - name: Mrs Teacher
    email: Teacher@test.cd
    password: Sup3r-s3cr3t!
    role: teacher
  - name: Mr Parent
    email: parent@test.cd
    password: Sup3r-s3cr3t!
    role: parent
students:
  - name: Kid
    email: kid@test.cd
    parent: parent@test.cd
    teacher: teacher@test.cd
    classroom: 6B
homework:
  - title: Genesis
    description: read the first chapters
    chapter_start: 1
    chapter_end: 3
    due_date: 2030-01-31
tasks:
  - title: Volcano
    description: build a model
    start_date: 2030-02-01
    end_date: 2030-02-15
    status: completed
assignments:
  - student: kid@test.cd
    homework: Genesis
  - student: kid@test.cd
    task: Volcano
`

func Test_commandLine_seed(t *testing.T) {
	cli := setup(t)
	ctx := context.Background()

	file := filepath.Join(t.TempDir(), "fixtures.yaml")
	require.NoError(t, os.WriteFile(file, []byte(seedYAML), 0o600))

	out, err := cli.exec(t, cliTest{args: []string{"seed", "--file", file}})
	require.NoError(t, err)
	assert.Contains(t, out, "seeded 3 user(s), 1 student(s), 1 homework, 1 task(s), 2 assignment(s)")

	students, err := cli.svcs.students.QueryAll(ctx)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "6B", students[0].Classroom.String)

	hws, err := cli.svcs.homework.QueryAll(ctx)
	require.NoError(t, err)
	require.Len(t, hws, 1)
	assert.Equal(t, "2030-01-31", hws[0].DueDate.String())
	assert.Equal(t, homework.StatusPending, hws[0].Status)

	tasks, err := cli.svcs.tasks.QueryAll(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, task.StatusCompleted, tasks[0].Status)

	as, err := cli.svcs.assignments.QueryByStudent(ctx, students[0].ID)
	require.NoError(t, err)
	require.Len(t, as, 2)
	assert.Equal(t, hws[0].ID, as[0].HomeworkID.Int)
	assert.Equal(t, tasks[0].ID, as[1].TaskID.Int)
}

func Test_commandLine_seedErrors(t *testing.T) {
	tests := []struct {
		name       string
		yaml       string
		wantErrStr string
	}{
		{
			name:       "malformed yaml",
			yaml:       "users: [",
			wantErrStr: "parsing fixtures",
		},
		{
			name: "student with unknown parent",
			yaml: `
students:
  - name: Kid
    email: kid@test.cd
    parent: nobody@test.cd
    teacher: nobody@test.cd
`,
			wantErrStr: "students[0]",
		},
		{
			name: "task with a malformed date",
			yaml: `
tasks:
  - title: Volcano
    description: build a model
    start_date: 01/02/2030
    end_date: 2030-02-15
`,
			wantErrStr: "start_date: must be a YYYY-MM-DD date",
		},
		{
			name: "assignment to unknown homework",
			yaml: `
users:
  - {name: T, email: t@test.cd, password: Sup3r-s3cr3t!, role: teacher}
  - {name: P, email: p@test.cd, password: Sup3r-s3cr3t!, role: parent}
students:
  - {name: Kid, email: kid@test.cd, parent: p@test.cd, teacher: t@test.cd}
assignments:
  - {student: kid@test.cd, homework: Nope}
`,
			wantErrStr: "assignments[0]",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli := setup(t)
			_, err := cli.seed(context.Background(), []byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErrStr)
			if tt.name != "malformed yaml" {
				assert.True(t, core.IsValidationError(err), "want a validation error, got %v", err)
			}
		})
	}
}
