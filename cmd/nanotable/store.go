package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/nanotable/internal/admin"
	"github.com/arthur-debert/nanotable/internal/finance"
	"github.com/arthur-debert/nanotable/internal/vetting"
)

// persistedKeys lists every key the consoles write, in lexical order
func persistedKeys() []string {
	keys := []string{
		admin.UsersKey, admin.KeysKey, admin.ActivityKey, admin.NotificationsKey, admin.SettingsKey,
		finance.EscrowKey, finance.MilestoneKey, finance.RevenueKey, finance.FailedKey, finance.DisputeKey,
		vetting.AuditorsKey, vetting.RequestsKey,
	}
	slices.Sort(keys)
	return keys
}

type snapshotInfo struct {
	Key   string `json:"key"`
	Bytes int    `json:"bytes"`
}

func (cli *CLI) storeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Inspect and reset persisted snapshots",
	}

	keys := &cobra.Command{
		Use:   "keys",
		Short: "List the snapshots held by the configured store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			names, err := cli.blob.Keys(ctx)
			if err != nil {
				return NewStoreError("list snapshots", err, CommonSuggestions.CheckConfig)
			}
			infos := make([]snapshotInfo, 0, len(names))
			for _, name := range names {
				data, err := cli.blob.Get(ctx, name)
				if err != nil {
					return NewStoreError("read snapshot", err)
				}
				infos = append(infos, snapshotInfo{Key: name, Bytes: len(data)})
			}
			return cli.render(cmd, infos)
		},
	}

	reset := &cobra.Command{
		Use:   "reset [KEY...]",
		Short: "Drop snapshots so the next run starts from seed data",
		Long: `Drop the named snapshots, or every snapshot with --all. Collections
without a snapshot are loaded from seed data on the next run.`,
		Example: `  nanotable store reset admin_users api_keys
  nanotable store reset --all`,
		RunE: func(cmd *cobra.Command, args []string) error {
			all, _ := cmd.Flags().GetBool("all")
			switch {
			case all && len(args) > 0:
				return NewValidationError("reset store", "arguments", strings.Join(args, " "), "Pass keys or --all, not both")
			case !all && len(args) == 0:
				return NewValidationError("reset store", "arguments", "", "Pass one or more keys, or --all",
					"Known keys: "+strings.Join(persistedKeys(), ", "))
			}

			targets := args
			if all {
				names, err := cli.blob.Keys(cmd.Context())
				if err != nil {
					return NewStoreError("list snapshots", err, CommonSuggestions.CheckConfig)
				}
				targets = names
			}
			for _, key := range args {
				if !slices.Contains(persistedKeys(), key) {
					return NewValidationError("reset store", "key", key, "Known keys: "+strings.Join(persistedKeys(), ", "))
				}
			}

			for _, key := range targets {
				cli.adapter.Delete(key)
			}
			cli.logger.Info("snapshots reset", "keys", targets)
			fmt.Fprintf(cmd.OutOrStdout(), "reset %d snapshot(s)\n", len(targets))
			return nil
		},
	}
	reset.Flags().Bool("all", false, "Drop every snapshot")

	cmd.AddCommand(keys, reset)
	return cmd
}
