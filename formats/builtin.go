package formats

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/nanotable/nanotable/export"
)

// Table prints aligned columns with an upper-case header. A single
// document prints as field/value pairs, one per line.
var Table = &OutputFormat{
	Name: "table",
	Render: func(w io.Writer, v any) error {
		header, rows, err := export.Table(v)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		if isDocument(v) {
			for i, name := range header {
				var value any
				if len(rows) > 0 {
					value = rows[0][i]
				}
				fmt.Fprintf(tw, "%s:\t%s\n", name, text(value))
			}
			return tw.Flush()
		}

		upper := make([]string, len(header))
		for i, h := range header {
			upper[i] = strings.ToUpper(h)
		}
		fmt.Fprintln(tw, strings.Join(upper, "\t"))
		for _, row := range rows {
			cells := make([]string, len(row))
			for i, c := range row {
				cells[i] = text(c)
			}
			fmt.Fprintln(tw, strings.Join(cells, "\t"))
		}
		return tw.Flush()
	},
}

// JSON prints indented JSON
var JSON = &OutputFormat{
	Name: "json",
	Render: func(w io.Writer, v any) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	},
}

// YAML prints YAML using the JSON field names
var YAML = &OutputFormat{
	Name: "yaml",
	Render: func(w io.Writer, v any) error {
		// go through JSON so the json tags name the keys
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		var generic any
		if err := yaml.Unmarshal(data, &generic); err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(generic); err != nil {
			return err
		}
		return enc.Close()
	},
}

// CSV prints a header row followed by one row per record
var CSV = &OutputFormat{
	Name: "csv",
	Render: func(w io.Writer, v any) error {
		header, rows, err := export.Table(v)
		if err != nil {
			return err
		}
		cw := csv.NewWriter(w)
		if err := cw.Write(header); err != nil {
			return err
		}
		for _, row := range rows {
			cells := make([]string, len(row))
			for i, c := range row {
				cells[i] = text(c)
			}
			if err := cw.Write(cells); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	},
}

func init() {
	mustRegister(Table)
	mustRegister(JSON)
	mustRegister(YAML)
	mustRegister(CSV)
}

func isDocument(v any) bool {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	return rv.Kind() == reflect.Struct
}

func text(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	default:
		return fmt.Sprint(c)
	}
}
