package main

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/nanotable/nanotable/collection"
	"github.com/arthur-debert/nanotable/nanotable/query"
	"github.com/arthur-debert/nanotable/types"
)

// addListFlags adds the filter and paging flags shared by list commands
func addListFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String("status", "", "Only records in this status ('all' for any)")
	flags.String("q", "", "Case-insensitive text search")
	flags.String("actor", "", "Only records involving this person")
	flags.Float64("min", 0, "Minimum amount")
	flags.Float64("max", 0, "Maximum amount")
	flags.String("from", "", "Earliest date (YYYY-MM-DD or RFC3339)")
	flags.String("to", "", "Latest date, inclusive (YYYY-MM-DD or RFC3339)")
	flags.Int("page", 1, "Page number, starting at 1")
}

// criteriaFromFlags builds the filter described by the list flags
func criteriaFromFlags(cmd *cobra.Command) (types.Criteria, error) {
	flags := cmd.Flags()
	var c types.Criteria
	c.Status, _ = flags.GetString("status")
	c.TextQuery, _ = flags.GetString("q")
	c.ActorName, _ = flags.GetString("actor")

	if flags.Changed("min") || flags.Changed("max") {
		r := types.AmountRange{Max: math.MaxFloat64}
		r.Min, _ = flags.GetFloat64("min")
		if flags.Changed("max") {
			r.Max, _ = flags.GetFloat64("max")
		}
		if r.Min > r.Max {
			return c, NewValidationError("list", "amount range", fmt.Sprintf("%g..%g", r.Min, r.Max),
				"--min must not exceed --max")
		}
		c.Amount = &r
	}

	from, _ := flags.GetString("from")
	to, _ := flags.GetString("to")
	if from != "" || to != "" {
		var r types.DateRange
		if from != "" {
			t, ok := query.ParseTimestamp(from)
			if !ok {
				return c, NewValidationError("list", "--from date", from, "Use YYYY-MM-DD or RFC3339")
			}
			r.Start = t
		}
		if to != "" {
			t, ok := query.ParseTimestamp(to)
			if !ok {
				return c, NewValidationError("list", "--to date", to, "Use YYYY-MM-DD or RFC3339")
			}
			// a bare date covers the whole day
			if len(to) == len("2006-01-02") {
				t = t.Add(24*time.Hour - time.Nanosecond)
			}
			r.End = t
		}
		c.Dates = &r
	}
	return c, nil
}

// listRecords renders the requested page of c. The table format gets a
// page footer on stderr so stdout stays parseable.
func listRecords[T types.Record[T]](cli *CLI, cmd *cobra.Command, c *collection.Collection[T]) error {
	tbl, err := tableFromFlags(cli, cmd, c)
	if err != nil {
		return err
	}
	view := tbl.View()
	if err := cli.render(cmd, view.Items); err != nil {
		return err
	}
	if cli.viperInst.GetString("format") == "table" {
		fmt.Fprintf(cmd.ErrOrStderr(), "page %d of %d (%d records)\n", view.Page+1, view.PageCount, view.Total)
	}
	return nil
}

// tableFromFlags binds c to a table view configured from the list flags
func tableFromFlags[T types.Record[T]](cli *CLI, cmd *cobra.Command, c *collection.Collection[T]) (*collection.Table[T], error) {
	criteria, err := criteriaFromFlags(cmd)
	if err != nil {
		return nil, err
	}
	tbl := collection.NewTable(c, cli.viperInst.GetInt("page-size"))
	tbl.SetCriteria(criteria)
	if page, _ := cmd.Flags().GetInt("page"); page > 1 {
		tbl.SetPage(page - 1)
	}
	return tbl, nil
}

// deleteRecords removes the given ids, or the visible page when --visible
// is set, through the collection's selection. Like any bulk delete it is
// best-effort: unknown ids are reported and skipped.
func deleteRecords[T types.Record[T]](cli *CLI, cmd *cobra.Command, c *collection.Collection[T], ids []string) error {
	tbl, err := tableFromFlags(cli, cmd, c)
	if err != nil {
		return err
	}
	c.Selection().Clear()
	if visible, _ := cmd.Flags().GetBool("visible"); visible {
		tbl.SelectAllVisible()
	} else {
		if len(ids) == 0 {
			return NewValidationError("delete", "arguments", "", "Pass one or more IDs, or --visible with list filters")
		}
		var unknown []string
		for _, id := range ids {
			if _, err := c.Get(id); err != nil {
				unknown = append(unknown, id)
			}
		}
		if len(unknown) > 0 {
			cli.logger.Warn("skipping unknown ids", "collection", c.Key(), "ids", unknown)
			fmt.Fprintf(cmd.ErrOrStderr(), "skipped %d unknown id(s): %s\n", len(unknown), strings.Join(unknown, ", "))
		}
		c.Selection().SelectAll(ids)
	}
	removed := tbl.DeleteSelected()
	cli.logger.Info("records deleted", "collection", c.Key(), "count", removed)
	fmt.Fprintf(cmd.OutOrStdout(), "deleted %d record(s)\n", removed)
	return nil
}
