package main

import (
	"context"
	"io/ioutil"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/volatiletech/null/v8"
	"gopkg.in/yaml.v3"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/assignment"
	"github.com/trezcool/shule/core/homework"
	"github.com/trezcool/shule/core/student"
	"github.com/trezcool/shule/core/task"
	"github.com/trezcool/shule/core/user"
)

// fixtures is the layout of a seed file. Records point at each other by natural keys:
// users and students by email, homework and tasks by title.
type fixtures struct {
	Users       []user.NewUser      `yaml:"users"`
	Students    []studentFixture    `yaml:"students"`
	Homework    []homeworkFixture   `yaml:"homework"`
	Tasks       []taskFixture       `yaml:"tasks"`
	Assignments []assignmentFixture `yaml:"assignments"`
}

type studentFixture struct {
	Name      string `yaml:"name"`
	Email     string `yaml:"email"`
	Parent    string `yaml:"parent"`  // email
	Teacher   string `yaml:"teacher"` // email
	Classroom string `yaml:"classroom"`
}

type homeworkFixture struct {
	Title        string `yaml:"title"`
	Description  string `yaml:"description"`
	ChapterStart *int   `yaml:"chapter_start"`
	ChapterEnd   *int   `yaml:"chapter_end"`
	VerseStart   *int   `yaml:"verse_start"`
	VerseEnd     *int   `yaml:"verse_end"`
	DueDate      string `yaml:"due_date"`
	Status       string `yaml:"status"`
}

type taskFixture struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	StartDate   string `yaml:"start_date"`
	EndDate     string `yaml:"end_date"`
	Status      string `yaml:"status"`
}

type assignmentFixture struct {
	Student  string `yaml:"student"`  // email
	Homework string `yaml:"homework"` // title
	Task     string `yaml:"task"`     // title
}

// seedCounts reports how many records of each kind were created.
type seedCounts struct {
	Users, Students, Homework, Tasks, Assignments int
}

func (cli *commandLine) seedCommand() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load users, students, homework, tasks & assignments from a YAML fixtures file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := ioutil.ReadFile(file)
			if err != nil {
				return errors.Wrap(err, "reading fixtures")
			}
			n, err := cli.seed(cmd.Context(), data)
			if err != nil {
				return err
			}
			cmd.Printf("seeded %d user(s), %d student(s), %d homework, %d task(s), %d assignment(s)\n",
				n.Users, n.Students, n.Homework, n.Tasks, n.Assignments)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "fixtures.yaml", "the fixtures file")
	return cmd
}

// seed creates every fixture through the services, stopping at the first failure.
func (cli *commandLine) seed(ctx context.Context, data []byte) (seedCounts, error) {
	var n seedCounts
	var fx fixtures
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return n, errors.Wrap(err, "parsing fixtures")
	}
	if err := cli.connect(); err != nil {
		return n, err
	}
	svcs := cli.svcs

	users := make(map[string]int, len(fx.Users))
	for i, nu := range fx.Users {
		usr, err := svcs.users.Create(ctx, nu)
		if err != nil {
			return n, errors.Wrapf(err, "users[%d]", i)
		}
		users[usr.Email] = usr.ID
		n.Users++
	}
	// students may point at users created by an earlier seed
	userID := func(email string) int {
		email = core.CleanString(email, true /* lower */)
		if id, ok := users[email]; ok {
			return id
		}
		if usr, err := svcs.users.GetByEmail(ctx, email); err == nil {
			return usr.ID
		}
		return 0 // rejected by validation
	}

	students := make(map[string]int, len(fx.Students))
	for i, sf := range fx.Students {
		st, err := svcs.students.Create(ctx, student.NewStudent{
			Name:      sf.Name,
			Email:     sf.Email,
			ParentID:  userID(sf.Parent),
			TeacherID: userID(sf.Teacher),
			Classroom: sf.Classroom,
		})
		if err != nil {
			return n, errors.Wrapf(err, "students[%d]", i)
		}
		students[st.Email] = st.ID
		n.Students++
	}

	hws := make(map[string]int, len(fx.Homework))
	for i, hf := range fx.Homework {
		nh, err := hf.newHomework()
		if err != nil {
			return n, errors.Wrapf(err, "homework[%d]", i)
		}
		hw, err := svcs.homework.Create(ctx, nh)
		if err != nil {
			return n, errors.Wrapf(err, "homework[%d]", i)
		}
		hws[hw.Title] = hw.ID
		n.Homework++
	}

	tasks := make(map[string]int, len(fx.Tasks))
	for i, tf := range fx.Tasks {
		nt, err := tf.newTask()
		if err != nil {
			return n, errors.Wrapf(err, "tasks[%d]", i)
		}
		tsk, err := svcs.tasks.Create(ctx, nt)
		if err != nil {
			return n, errors.Wrapf(err, "tasks[%d]", i)
		}
		tasks[tsk.Title] = tsk.ID
		n.Tasks++
	}

	for i, af := range fx.Assignments {
		na := assignment.NewAssignment{StudentID: students[core.CleanString(af.Student, true /* lower */)]}
		if af.Homework != "" {
			na.HomeworkID = null.IntFrom(hws[af.Homework])
		}
		if af.Task != "" {
			na.TaskID = null.IntFrom(tasks[af.Task])
		}
		if _, err := svcs.assignments.Create(ctx, na); err != nil {
			return n, errors.Wrapf(err, "assignments[%d]", i)
		}
		n.Assignments++
	}
	return n, nil
}

func (hf homeworkFixture) newHomework() (homework.NewHomework, error) {
	nh := homework.NewHomework{
		Title:        hf.Title,
		Description:  hf.Description,
		ChapterStart: null.IntFromPtr(hf.ChapterStart),
		ChapterEnd:   null.IntFromPtr(hf.ChapterEnd),
		VerseStart:   null.IntFromPtr(hf.VerseStart),
		VerseEnd:     null.IntFromPtr(hf.VerseEnd),
		Status:       hf.Status,
	}
	if hf.DueDate != "" {
		d, err := core.ParseDate(hf.DueDate)
		if err != nil {
			return nh, core.NewValidationError(nil, core.FieldError{Field: "due_date", Error: "must be a YYYY-MM-DD date"})
		}
		nh.DueDate = d
	}
	return nh, nil
}

func (tf taskFixture) newTask() (task.NewTask, error) {
	nt := task.NewTask{Title: tf.Title, Description: tf.Description, Status: tf.Status}
	var flds []core.FieldError
	for _, fld := range []struct {
		name string
		val  string
		dest *core.Date
	}{
		{"start_date", tf.StartDate, &nt.StartDate},
		{"end_date", tf.EndDate, &nt.EndDate},
	} {
		if fld.val == "" {
			continue // reported as required by the service
		}
		d, err := core.ParseDate(fld.val)
		if err != nil {
			flds = append(flds, core.FieldError{Field: fld.name, Error: "must be a YYYY-MM-DD date"})
			continue
		}
		*fld.dest = d
	}
	if len(flds) > 0 {
		return nt, core.NewValidationError(nil, flds...)
	}
	return nt, nil
}
