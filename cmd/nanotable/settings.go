package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/nanotable/internal/admin"
	"github.com/arthur-debert/nanotable/types"
)

func (cli *CLI) settingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change system settings",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show system settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.render(cmd, cli.console.Settings.Get())
		},
	}

	set := &cobra.Command{
		Use:   "set FIELD=VALUE...",
		Short: "Change one or more settings",
		Long: `Change one or more settings. Values are read as YAML scalars, so
true, 30 and [10.0.0.0/8, 192.168.1.1] have their natural types.`,
		Example: `  nanotable settings set maintenanceMode=true sessionTimeout=60
  nanotable settings set ipWhitelist=true "ipAddresses=[10.0.0.0/8]"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			next, err := applyAssignments(cli.console.Settings.Get(), args)
			if err != nil {
				return WrapError("update settings", err)
			}
			if err := cli.console.SetSettings(next); err != nil {
				return WrapError("update settings", err)
			}
			return cli.render(cmd, next)
		},
	}

	cmd.AddCommand(show, set)
	return cmd
}

func (cli *CLI) notifyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Show or change notification routing",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show notification settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.render(cmd, cli.console.Notifications.Get())
		},
	}

	set := &cobra.Command{
		Use:     "set FIELD=VALUE...",
		Short:   "Change notification switches",
		Example: `  nanotable notify set systemAlerts=false auditLogs=true`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			next, err := applyAssignments(cli.console.Notifications.Get(), args)
			if err != nil {
				return WrapError("update notifications", err)
			}
			if err := cli.console.SetNotifications(next); err != nil {
				return WrapError("update notifications", err)
			}
			return cli.render(cmd, next)
		},
	}

	recipient := func(name, short string, fn func(email string) (admin.NotificationConfig, error)) *cobra.Command {
		return &cobra.Command{
			Use:   name + " EMAIL",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				n, err := fn(args[0])
				if err != nil {
					return WrapError(strings.ReplaceAll(name, "-", " "), err)
				}
				return cli.render(cmd, n)
			},
		}
	}

	cmd.AddCommand(show, set,
		recipient("add-recipient", "Add an email recipient", func(email string) (admin.NotificationConfig, error) {
			return cli.console.AddRecipient(email)
		}),
		recipient("remove-recipient", "Remove an email recipient", func(email string) (admin.NotificationConfig, error) {
			return cli.console.RemoveRecipient(email)
		}),
	)
	return cmd
}

// applyAssignments sets FIELD=VALUE pairs on a copy of doc. Fields are the
// document's JSON names; values are parsed as YAML so they keep their types.
func applyAssignments[T any](doc T, assignments []string) (T, error) {
	var zero T
	data, err := json.Marshal(doc)
	if err != nil {
		return zero, err
	}
	fields := map[string]any{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return zero, err
	}

	for _, a := range assignments {
		key, raw, ok := strings.Cut(a, "=")
		if !ok || key == "" {
			return zero, NewValidationError("", "assignment", a, "Use FIELD=VALUE")
		}
		if _, known := fields[key]; !known {
			return zero, NewValidationError("", "field", key,
				fmt.Sprintf("Known fields: %s", strings.Join(sortedKeys(fields), ", ")))
		}
		var value any
		if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
			return zero, NewValidationError("", key, raw, "Quote the value or use YAML syntax for lists")
		}
		fields[key] = value
	}

	data, err = json.Marshal(fields)
	if err != nil {
		return zero, err
	}
	var next T
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&next); err != nil {
		return zero, fmt.Errorf("%w: %v", types.ErrValidation, err)
	}
	return next, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
