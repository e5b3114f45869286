package main

import (
	"github.com/spf13/cobra"
)

func (cli *CLI) logsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Browse and prune the audit trail",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List audit entries, newest first",
		Long: `List audit entries, newest first. --status matches the action name and
--actor the user who performed it.`,
		Example: `  nanotable logs list --actor "John Admin"
  nanotable logs list --status "Update Settings" --from 2024-01-14`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listRecords(cli, cmd, cli.console.Activity)
		},
	}
	addListFlags(list)

	del := &cobra.Command{
		Use:   "delete [ID...]",
		Short: "Delete audit entries by ID, or the visible page with --visible",
		Example: `  nanotable logs delete 3 4
  nanotable logs delete --visible --actor "Sarah Manager"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return deleteRecords(cli, cmd, cli.console.Activity, args)
		},
	}
	addListFlags(del)
	del.Flags().Bool("visible", false, "Delete every entry on the filtered page")

	cmd.AddCommand(list, del)
	return cmd
}

func (cli *CLI) sysLogsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "syslogs",
		Short: "Browse system logs",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List system log records; --status matches the level",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listRecords(cli, cmd, cli.console.SystemLogs)
		},
	}
	addListFlags(list)

	cmd.AddCommand(list)
	return cmd
}
