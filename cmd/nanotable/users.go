package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/nanotable/internal/admin"
)

func (cli *CLI) usersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage admin user accounts",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List admin users",
		Example: `  nanotable users list --status active
  nanotable users list --q sarah -f json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listRecords(cli, cmd, cli.console.Users)
		},
	}
	addListFlags(list)

	add := &cobra.Command{
		Use:   "add",
		Short: "Add an admin user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := admin.NewUser{}
			in.Name, _ = cmd.Flags().GetString("name")
			in.Email, _ = cmd.Flags().GetString("email")
			in.Role, _ = cmd.Flags().GetString("role")
			in.Permissions, _ = cmd.Flags().GetStringSlice("permissions")
			u, err := cli.console.AddUser(in)
			if err != nil {
				return WrapError("add user", err)
			}
			return cli.render(cmd, u)
		},
	}
	add.Flags().String("name", "", "Full name")
	add.Flags().String("email", "", "Email address (must be unique)")
	add.Flags().String("role", admin.RoleAdmin, fmt.Sprintf("Role (%s|%s|%s)", admin.RoleSuperAdmin, admin.RoleAdmin, admin.RoleModerator))
	add.Flags().StringSlice("permissions", []string{"read"}, fmt.Sprintf("Permissions (%s)", strings.Join(admin.Permissions, ",")))

	update := &cobra.Command{
		Use:   "update ID",
		Short: "Edit a user's profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var p admin.UserPatch
			flags := cmd.Flags()
			for name, dst := range map[string]**string{"name": &p.Name, "email": &p.Email, "role": &p.Role} {
				if flags.Changed(name) {
					v, _ := flags.GetString(name)
					*dst = &v
				}
			}
			if flags.Changed("permissions") {
				p.Permissions, _ = flags.GetStringSlice("permissions")
			}
			u, err := cli.console.UpdateUser(args[0], p)
			if err != nil {
				return WrapError("update user", err)
			}
			return cli.render(cmd, u)
		},
	}
	update.Flags().String("name", "", "Full name")
	update.Flags().String("email", "", "Email address")
	update.Flags().String("role", "", "Role")
	update.Flags().StringSlice("permissions", nil, "Permissions")

	cmd.AddCommand(list, add, update,
		idCommand(cli, "suspend", "Suspend a user", "suspend user", func(id string) (admin.User, error) { return cli.console.SuspendUser(id) }),
		idCommand(cli, "deactivate", "Deactivate an active user", "deactivate user", func(id string) (admin.User, error) { return cli.console.DeactivateUser(id) }),
		idCommand(cli, "toggle", "Suspend an active user", "toggle user", func(id string) (admin.User, error) { return cli.console.ToggleUser(id) }),
		deleteCommand(cli, "user", func(id string) error { return cli.console.DeleteUser(id) }),
	)
	return cmd
}
