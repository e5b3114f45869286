package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/nanotable/internal/vetting"
)

func (cli *CLI) auditorsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auditors",
		Short: "Vet audit firms",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List auditors",
		Example: `  nanotable auditors list --status pending
  nanotable auditors list --status needs_reverification`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listRecords(cli, cmd, cli.center.Auditors)
		},
	}
	addListFlags(list)

	invite := &cobra.Command{
		Use:   "invite FIRM",
		Short: "Invite a firm to apply as an auditor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			in := vetting.Invitation{FirmName: args[0]}
			in.FullName, _ = flags.GetString("name")
			in.Email, _ = flags.GetString("email")
			in.LicenseID, _ = flags.GetString("license")
			in.VATID, _ = flags.GetString("vat")
			in.Specializations, _ = flags.GetStringSlice("specializations")
			a, err := cli.center.InviteAuditor(in)
			if err != nil {
				return WrapError("invite auditor", err)
			}
			return cli.render(cmd, a)
		},
	}
	invite.Flags().String("name", "", "Contact's full name")
	invite.Flags().String("email", "", "Contact email (required)")
	invite.Flags().String("license", "", "Licence number")
	invite.Flags().String("vat", "", "VAT number")
	invite.Flags().StringSlice("specializations", nil, fmt.Sprintf("Specializations (%s)", strings.Join(vetting.Specializations, ",")))

	flag := &cobra.Command{
		Use:   "flag ID",
		Short: "Tag an auditor for review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag, _ := cmd.Flags().GetString("tag")
			a, err := cli.center.FlagAuditor(args[0], tag)
			if err != nil {
				return WrapError("flag auditor", err)
			}
			return cli.render(cmd, a)
		},
	}
	flag.Flags().String("tag", vetting.RiskWatchlist, fmt.Sprintf("Risk tag (%s)", strings.Join(vetting.RiskTags, "|")))

	note := &cobra.Command{
		Use:   "note ID TEXT",
		Short: "Add an internal note",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := cli.center.AddNote(args[0], args[1])
			if err != nil {
				return WrapError("add note", err)
			}
			return cli.render(cmd, a)
		},
	}

	cmd.AddCommand(list, invite, flag, note,
		idCommand(cli, "approve", "Accredit an application for two years", "approve auditor", func(id string) (vetting.Auditor, error) { return cli.center.ApproveAuditor(id) }),
		reasonCommand(cli, "reject", "Reject an application", "reject auditor", (*vetting.Center).RejectAuditor),
		reasonCommand(cli, "request-info", "Ask an applicant for more documents", "request documents", (*vetting.Center).RequestInfo),
		idCommand(cli, "reverify", "Send an active auditor back for re-verification", "reverify auditor", func(id string) (vetting.Auditor, error) { return cli.center.ReverifyAuditor(id) }),
		reasonCommand(cli, "suspend", "Suspend an accredited auditor", "suspend auditor", (*vetting.Center).SuspendAuditor),
	)
	return cmd
}

// reasonCommand builds an auditor action taking an optional --reason,
// which is kept as an internal note
func reasonCommand(cli *CLI, name, short, operation string, fn func(c *vetting.Center, id, reason string) (vetting.Auditor, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   name + " ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reason, _ := cmd.Flags().GetString("reason")
			a, err := fn(cli.center, args[0], reason)
			if err != nil {
				return WrapError(operation, err)
			}
			return cli.render(cmd, a)
		},
	}
	cmd.Flags().String("reason", "", "Why, kept as an internal note")
	return cmd
}

func (cli *CLI) requestsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "requests",
		Short: "Moderate client requests",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List client requests",
		Example: `  nanotable requests list --status open
  nanotable requests list --actor "Phoenix Corp."`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listRecords(cli, cmd, cli.center.Requests)
		},
	}
	addListFlags(list)

	mark := &cobra.Command{
		Use:   "mark ID MARKER",
		Short: fmt.Sprintf("Set the risk marker (%s)", strings.Join(vetting.Markers, "|")),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := cli.center.MarkRequest(args[0], args[1])
			if err != nil {
				return WrapError("mark request", err)
			}
			return cli.render(cmd, r)
		},
	}

	cmd.AddCommand(list, mark,
		idCommand(cli, "accept", "Publish an open request", "accept request", func(id string) (vetting.ClientRequest, error) { return cli.center.AcceptRequest(id) }),
		idCommand(cli, "close", "Close an open or accepted request", "close request", func(id string) (vetting.ClientRequest, error) { return cli.center.CloseRequest(id) }),
		idCommand(cli, "hide", "Hide a request from every listing", "hide request", func(id string) (vetting.ClientRequest, error) { return cli.center.HideRequest(id) }),
		deleteCommand(cli, "request", func(id string) error { return cli.center.DeleteRequest(id) }),
	)
	return cmd
}
