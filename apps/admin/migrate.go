package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/trezcool/goose"

	"github.com/trezcool/shule/fs"
	"github.com/trezcool/shule/storage/database"
)

var gooseRunFunc = goose.RunFS // mockable

func (cli *commandLine) migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate <command> [args]",
		Short: "Run a goose migration command (up, down, status, redo, ...)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.migrate(args)
		},
	}
}

func (cli *commandLine) migrate(args []string) error {
	if err := cli.connect(); err != nil {
		return err
	}
	engine := cli.db.DriverName()
	if err := goose.SetDialect(engine); err != nil {
		return errors.Wrap(err, "setting goose dialect")
	}
	return gooseRunFunc(args[0], cli.db.DB, appfs.FS, database.MigrationsDir(engine), args[1:]...)
}

func (cli *commandLine) createDBCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "createdb",
		Short: "Create the database (and its app user) if it does not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := database.CreateIfNotExist(cli.conf); err != nil {
				return err
			}
			cmd.Printf("%s database is ready\n", cli.conf.Database.Engine)
			return nil
		},
	}
}
