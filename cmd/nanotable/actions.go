package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// idCommand builds a command that applies fn to the record named by its
// only argument and renders the result. fn must reach the console or the
// hub through cli, since neither exists before the command runs.
func idCommand[T any](cli *CLI, name, short, operation string, fn func(id string) (T, error)) *cobra.Command {
	return &cobra.Command{
		Use:   name + " ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := fn(args[0])
			if err != nil {
				return WrapError(operation, err)
			}
			return cli.render(cmd, rec)
		},
	}
}

// deleteCommand builds a command that deletes the record named by its only
// argument
func deleteCommand(cli *CLI, resource string, fn func(id string) error) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a " + resource,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := fn(args[0]); err != nil {
				return WrapError("delete "+resource, err)
			}
			cli.logger.Info("record deleted", "resource", resource, "id", args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s %s\n", resource, args[0])
			return nil
		},
	}
}
