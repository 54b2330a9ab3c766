package main

import (
	"context"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/trezcool/shule/core/user"
)

var errEmptyPassword = errors.New("password cannot be empty")

func (cli *commandLine) addUserCommand() *cobra.Command {
	var nu user.NewUser
	cmd := &cobra.Command{
		Use:   "adduser",
		Short: "Create a user. The password is prompted next.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pwd, err := promptPassword(cmd)
			if err != nil {
				return err
			}
			nu.Password = pwd
			usr, err := cli.addUser(cmd.Context(), nu)
			if err != nil {
				return err
			}
			cmd.Printf("created %s %q (id %d)\n", usr.Role, usr.Email, usr.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&nu.Email, "email", "", "the user's email")
	cmd.Flags().StringVar(&nu.Name, "name", "", "the user's name")
	cmd.Flags().StringVar(&nu.Role, "role", user.RoleAdmin, "one of: admin, teacher, parent")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func (cli *commandLine) addUser(ctx context.Context, nu user.NewUser) (user.User, error) {
	if err := cli.connect(); err != nil {
		return user.User{}, err
	}
	return cli.svcs.users.Create(ctx, nu)
}

func (cli *commandLine) resetPasswordCommand() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "resetpassword",
		Short: "Reset a user's password. The password is prompted next.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pwd, err := promptPassword(cmd)
			if err != nil {
				return err
			}
			return cli.resetPassword(cmd.Context(), email, pwd)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "the user's email")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (cli *commandLine) resetPassword(ctx context.Context, email, pwd string) error {
	if err := cli.connect(); err != nil {
		return err
	}
	usr, err := cli.svcs.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	_, err = cli.svcs.users.Update(ctx, usr.ID, user.UpdateUser{Password: &pwd})
	return err
}
