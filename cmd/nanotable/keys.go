package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/nanotable/internal/admin"
)

func (cli *CLI) keysCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage API keys",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List API keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listRecords(cli, cmd, cli.console.Keys)
		},
	}
	addListFlags(list)

	add := &cobra.Command{
		Use:   "add NAME",
		Short: "Create an API key with a fresh secret",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			perms, _ := cmd.Flags().GetStringSlice("permissions")
			k, err := cli.console.AddAPIKey(args[0], perms)
			if err != nil {
				return WrapError("add API key", err)
			}
			return cli.render(cmd, k)
		},
	}
	add.Flags().StringSlice("permissions", []string{"read"}, fmt.Sprintf("Permissions (%s)", strings.Join(admin.Permissions, ",")))

	cmd.AddCommand(list, add,
		idCommand(cli, "rotate", "Replace an active key's secret", "rotate API key", func(id string) (admin.APIKey, error) { return cli.console.RotateAPIKey(id) }),
		idCommand(cli, "deactivate", "Deactivate an active key", "deactivate API key", func(id string) (admin.APIKey, error) { return cli.console.DeactivateAPIKey(id) }),
		idCommand(cli, "expire", "Mark a key as expired", "expire API key", func(id string) (admin.APIKey, error) { return cli.console.ExpireAPIKey(id) }),
		deleteCommand(cli, "API key", func(id string) error { return cli.console.DeleteAPIKey(id) }),
	)
	return cmd
}
