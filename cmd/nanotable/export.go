package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/nanotable/nanotable/export"
)

func (cli *CLI) exportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export admin|finance|vetting",
		Short: "Export every record of a console as JSON, a workbook or both zipped",
		Long: `Export every record of a console. The file is named
<prefix>-export-YYYY-MM-DD.<ext> and written to --output, or to stdout
when --output is "-".`,
		Example: `  nanotable export finance --format xlsx --output ./reports
  nanotable export admin --format json --output - | jq .adminUsers`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"admin", "finance", "vetting"},
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("format")
			format, err := export.ParseFormat(name)
			if err != nil {
				return NewValidationError("export", "format", name, fmt.Sprintf("Use one of: %s", formatNames()))
			}

			var bundle export.Bundle
			date := cli.now()
			switch args[0] {
			case "admin":
				bundle = cli.console.Export(date)
			case "finance":
				bundle = cli.hub.Export(date)
			case "vetting":
				bundle = cli.center.Export(date)
			default:
				return NewValidationError("export", "console", args[0], "Use 'admin', 'finance' or 'vetting'")
			}

			dir, _ := cmd.Flags().GetString("output")
			if dir == "-" {
				return WrapError("export", export.Write(cmd.OutOrStdout(), bundle, format))
			}
			path, err := export.WriteFile(dir, bundle, format)
			if err != nil {
				return NewStoreError("export", err, CommonSuggestions.CheckPerms)
			}
			cli.logger.Info("export written", "path", path, "format", format)
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	// shadows the global --format, which picks the text renderer
	cmd.Flags().String("format", string(export.Archive), fmt.Sprintf("Export format (%s)", formatNames()))
	cmd.Flags().StringP("output", "o", ".", "Destination directory, or - for stdout")
	return cmd
}

func formatNames() string {
	names := make([]string, 0, len(export.Formats()))
	for _, f := range export.Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, "|")
}
