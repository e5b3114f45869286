package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/nanotable/internal/finance"
)

func (cli *CLI) escrowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "escrow",
		Short: "Review escrow transactions",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List escrow transactions",
		Example: `  nanotable escrow list --status pending
  nanotable escrow list --min 2500 --max 6000 --actor "TechCorp Inc."`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listRecords(cli, cmd, cli.hub.Escrows)
		},
	}
	addListFlags(list)

	cmd.AddCommand(list,
		idCommand(cli, "release", "Pay out a pending or disputed escrow", "release escrow", func(id string) (finance.Escrow, error) { return cli.hub.ReleaseEscrow(id) }),
		idCommand(cli, "refund", "Return an escrow to the client", "refund escrow", func(id string) (finance.Escrow, error) { return cli.hub.RefundEscrow(id) }),
	)
	return cmd
}

func (cli *CLI) milestonesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "milestones",
		Short: "Review milestone payments",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List milestone payments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listRecords(cli, cmd, cli.hub.Milestones)
		},
	}
	addListFlags(list)

	dispute := &cobra.Command{
		Use:   "dispute ID",
		Short: "Flag a pending milestone as disputed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reason, _ := cmd.Flags().GetString("reason")
			m, err := cli.hub.DisputeMilestone(args[0], reason)
			if err != nil {
				return WrapError("dispute milestone", err)
			}
			return cli.render(cmd, m)
		},
	}
	dispute.Flags().String("reason", "", "Why the milestone is disputed (required)")

	progress := &cobra.Command{
		Use:   "progress ID PERCENT",
		Short: "Record progress on a milestone; 100 approves it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pct, err := strconv.Atoi(args[1])
			if err != nil {
				return NewValidationError("record progress", "percent", args[1], "Pass a whole number between 0 and 100")
			}
			m, err := cli.hub.SetMilestoneProgress(args[0], pct)
			if err != nil {
				return WrapError("record progress", err)
			}
			return cli.render(cmd, m)
		},
	}

	cmd.AddCommand(list, dispute, progress,
		idCommand(cli, "approve", "Complete a milestone", "approve milestone", func(id string) (finance.Milestone, error) { return cli.hub.ApproveMilestone(id) }),
	)
	return cmd
}

func (cli *CLI) failedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "failed",
		Short: "Handle failed transactions",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List failed transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listRecords(cli, cmd, cli.hub.Failed)
		},
	}
	addListFlags(list)

	resolve := &cobra.Command{
		Use:   "resolve ID",
		Short: "Close a failed transaction with notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			notes, _ := cmd.Flags().GetString("notes")
			f, err := cli.hub.ResolveFailed(args[0], notes)
			if err != nil {
				return WrapError("resolve failed transaction", err)
			}
			return cli.render(cmd, f)
		},
	}
	resolve.Flags().String("notes", "", "Resolution notes (required)")

	cmd.AddCommand(list, resolve,
		idCommand(cli, "refund", "Refund a failed transaction in full", "refund failed transaction", func(id string) (finance.FailedTransaction, error) { return cli.hub.RefundFailed(id) }),
	)
	return cmd
}

func (cli *CLI) disputesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "disputes",
		Short: "Settle disputed transactions",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List disputes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listRecords(cli, cmd, cli.hub.Disputes)
		},
	}
	addListFlags(list)

	resolve := &cobra.Command{
		Use:   "resolve ID",
		Short: "Settle a dispute and apply the outcome to the disputed transaction",
		Example: `  nanotable disputes resolve DISP-001 --action release --notes "work accepted"
  nanotable disputes resolve DISP-002 --action refund --notes "deadline missed"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			notes, _ := cmd.Flags().GetString("notes")
			action, _ := cmd.Flags().GetString("action")
			res, err := finance.ParseResolution(action)
			if err != nil {
				return NewValidationError("resolve dispute", "action", action, "Use --action release or --action refund")
			}
			d, err := cli.hub.ResolveDispute(args[0], notes, res)
			if err != nil {
				return WrapError("resolve dispute", err)
			}
			return cli.render(cmd, d)
		},
	}
	resolve.Flags().String("notes", "", "Resolution notes (required)")
	resolve.Flags().String("action", string(finance.Release), "Outcome: release pays the freelancer, refund returns the money")

	cmd.AddCommand(list, resolve,
		idCommand(cli, "review", "Move an open dispute under review", "review dispute", func(id string) (finance.Dispute, error) { return cli.hub.ReviewDispute(id) }),
	)
	return cmd
}

// collectionSize is one line of the refresh summary
type collectionSize struct {
	Collection string `json:"collection"`
	Records    int    `json:"records"`
}

func (cli *CLI) financeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "finance",
		Short: "Finance dashboard figures",
	}

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Show the dashboard statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.render(cmd, cli.hub.Stats())
		},
	}

	revenue := &cobra.Command{
		Use:   "revenue",
		Short: "List platform revenue by period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listRecords(cli, cmd, cli.hub.Revenue)
		},
	}
	addListFlags(revenue)

	refresh := &cobra.Command{
		Use:   "refresh",
		Short: "Reload every finance collection from the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.hub.Refresh(cmd.Context()); err != nil {
				return WrapError("refresh finance data", err)
			}
			return cli.render(cmd, []collectionSize{
				{finance.EscrowKey, cli.hub.Escrows.Len()},
				{finance.MilestoneKey, cli.hub.Milestones.Len()},
				{finance.RevenueKey, cli.hub.Revenue.Len()},
				{finance.FailedKey, cli.hub.Failed.Len()},
				{finance.DisputeKey, cli.hub.Disputes.Len()},
			})
		},
	}

	cmd.AddCommand(stats, revenue, refresh)
	return cmd
}
