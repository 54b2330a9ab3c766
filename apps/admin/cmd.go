package main

import (
	"fmt"
	"syscall"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/assignment"
	"github.com/trezcool/shule/core/homework"
	"github.com/trezcool/shule/core/student"
	"github.com/trezcool/shule/core/task"
	"github.com/trezcool/shule/core/user"
	"github.com/trezcool/shule/storage/database"
	"github.com/trezcool/shule/storage/database/sqlx"
)

var readPasswordFunc = term.ReadPassword // mockable

type services struct {
	users       user.Service
	students    student.Service
	homework    homework.Service
	tasks       task.Service
	assignments assignment.Service
}

type commandLine struct {
	conf   *core.Config
	logger core.Logger
	db     *sqlx.DB // opened on first use
	svcs   *services
}

// connect opens the database and builds the services, once.
func (cli *commandLine) connect() error {
	if cli.db == nil {
		db, err := database.Open(cli.conf)
		if err != nil {
			return err
		}
		cli.db = db
	}
	if cli.svcs == nil {
		repos := sqlxrepos.NewRepositories(cli.db, sqlxrepos.Options{
			DeletePolicy: cli.conf.Database.DeletePolicy,
			Logger:       cli.logger,
		})
		v := core.NewValidator()
		cli.svcs = &services{
			users:       user.NewService(repos.Users, v),
			students:    student.NewService(repos.Students, v),
			homework:    homework.NewService(repos.Homework, v),
			tasks:       task.NewService(repos.Tasks, v),
			assignments: assignment.NewService(repos.Assignments, v),
		}
	}
	return nil
}

func (cli *commandLine) close() error {
	if cli.db == nil {
		return nil
	}
	return cli.db.Close()
}

func (cli *commandLine) rootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "admin",
		Short:         cli.conf.AppName + " admin tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(
		cli.migrateCommand(),
		cli.createDBCommand(),
		cli.addUserCommand(),
		cli.resetPasswordCommand(),
		cli.seedCommand(),
	)
	return cmd
}

// promptPassword reads a password from the terminal without echoing it.
func promptPassword(cmd *cobra.Command) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), "Enter password:")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Fprintln(cmd.OutOrStdout())
	if err != nil {
		return "", err
	}
	if len(pwd) == 0 {
		return "", errEmptyPassword
	}
	return string(pwd), nil
}
